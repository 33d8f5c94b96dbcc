// Package analyze inspects processed documents through the lens of a persona
// and its job-to-be-done, producing per-document relevance, key extracts, and
// scored candidate sections for the ranker.
package analyze

import (
	"context"
	"regexp"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/anchal-dev/persona-document-intelligence/internal/embed"
	"github.com/anchal-dev/persona-document-intelligence/internal/ingest"
	"github.com/anchal-dev/persona-document-intelligence/internal/score"
)

const (
	maxKeyExtracts      = 10
	maxActionableItems  = 8
	maxSectionsPerDoc   = 5
	minExtractSentence  = 20
	embedCandidateChars = 1000
)

// Analyzer holds the read-only analysis context shared across documents.
// The zero Embedder is valid; the semantic signal then contributes nothing.
type Analyzer struct {
	Persona  string
	Job      string
	Embedder *embed.Embedder
	Weights  score.Weights
}

// ScoredSection is a candidate section with its relevance score.
type ScoredSection struct {
	Title     string
	Content   string
	StartLine int
	Score     float64
}

// DocumentAnalysis is the per-document output of the analyzer.
type DocumentAnalysis struct {
	Filename         string
	RelevanceScore   float64
	KeyExtracts      []string
	RelevantSections []ScoredSection
	Insights         []string
	ActionableItems  []string
}

// Result bundles all document analyses with the context that produced them.
type Result struct {
	Persona          string
	Job              string
	DocumentAnalyses []DocumentAnalysis
}

var sentenceSplitRe = regexp.MustCompile(`[.!?]+`)

var actionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(should|must|need to|recommended|suggest|advise)\b`),
	regexp.MustCompile(`(?i)\b(visit|try|taste|see|do|avoid|bring|book)\b`),
	regexp.MustCompile(`(?i)\b(tip|advice|recommendation|warning)\b`),
}

// AnalyzeDocuments analyzes every document independently. It never fails:
// embedding errors degrade to keyword-only scoring with a warning.
func (a *Analyzer) AnalyzeDocuments(ctx context.Context, docs []ingest.Document) Result {
	weights := a.Weights
	if weights == (score.Weights{}) {
		weights = score.DefaultWeights
	}
	profile := ProfileFor(a.Persona)
	queryVec := a.queryVector(ctx)

	res := Result{Persona: a.Persona, Job: a.Job}
	for _, doc := range docs {
		res.DocumentAnalyses = append(res.DocumentAnalyses, a.analyzeDocument(ctx, doc, profile, weights, queryVec))
	}
	return res
}

func (a *Analyzer) queryVector(ctx context.Context) []float32 {
	if a.Embedder == nil || a.Embedder.Client == nil {
		return nil
	}
	vecs, err := a.Embedder.Embed(ctx, []string{a.Persona + ". " + a.Job})
	if err != nil {
		log.Warn().Err(err).Msg("query embedding failed; scoring without semantic signal")
		return nil
	}
	return vecs[0]
}

func (a *Analyzer) analyzeDocument(ctx context.Context, doc ingest.Document, profile Profile, weights score.Weights, queryVec []float32) DocumentAnalysis {
	terms := append(jobKeywords(a.Job), profile.ExtractionKeywords...)

	sectionVecs := a.sectionVectors(ctx, doc, queryVec)

	var scored []ScoredSection
	for i, sec := range doc.Sections {
		text := sec.Title + " " + sec.Content
		s := score.Signals{
			Keyword:    score.KeywordOverlap(text, terms),
			Domain:     score.KeywordOverlap(text, profile.SectionVocabulary),
			Structural: score.StructuralPosition(i, len(doc.Sections)),
		}
		if queryVec != nil && i < len(sectionVecs) {
			s.Semantic = embed.Cosine(sectionVecs[i], queryVec)
		}
		combined := score.Combine(s, weights)
		if s.Keyword == 0 && s.Domain == 0 && s.Semantic == 0 {
			// Position alone is not evidence of relevance.
			continue
		}
		scored = append(scored, ScoredSection{
			Title:     sec.Title,
			Content:   strings.TrimSpace(sec.Content),
			StartLine: sec.StartLine,
			Score:     combined,
		})
	}
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })
	if len(scored) > maxSectionsPerDoc {
		scored = scored[:maxSectionsPerDoc]
	}

	docSignals := score.Signals{
		Keyword:    score.KeywordOverlap(doc.CleanText, terms),
		Domain:     score.KeywordOverlap(doc.CleanText, profile.SectionVocabulary),
		Structural: 1,
	}
	if queryVec != nil && len(sectionVecs) > len(doc.Sections) {
		// The document vector rides along at the end of the section batch.
		docSignals.Semantic = embed.Cosine(sectionVecs[len(sectionVecs)-1], queryVec)
	}

	return DocumentAnalysis{
		Filename:         doc.Filename,
		RelevanceScore:   score.Combine(docSignals, weights),
		KeyExtracts:      keyExtracts(doc.CleanText, profile.ExtractionKeywords),
		RelevantSections: scored,
		Insights:         personaInsights(a.Persona, doc.CleanText),
		ActionableItems:  actionableItems(doc.CleanText),
	}
}

// sectionVectors embeds every candidate section plus the document itself as
// the final entry. A failed call degrades to nil with a warning so scoring
// falls back to lexical signals only.
func (a *Analyzer) sectionVectors(ctx context.Context, doc ingest.Document, queryVec []float32) [][]float32 {
	if queryVec == nil || a.Embedder == nil {
		return nil
	}
	inputs := make([]string, 0, len(doc.Sections)+1)
	for _, sec := range doc.Sections {
		inputs = append(inputs, head(sec.Title+" "+sec.Content, embedCandidateChars))
	}
	inputs = append(inputs, head(doc.CleanText, embedCandidateChars))
	vecs, err := a.Embedder.Embed(ctx, inputs)
	if err != nil {
		log.Warn().Err(err).Str("file", doc.Filename).Msg("section embedding failed; falling back to lexical scores")
		return nil
	}
	return vecs
}

// keyExtracts returns sentences that carry persona vocabulary, longest
// first-come order preserved, capped.
func keyExtracts(text string, keywords []string) []string {
	var out []string
	for _, sentence := range sentenceSplitRe.Split(text, -1) {
		sentence = strings.TrimSpace(strings.Join(strings.Fields(sentence), " "))
		if len(sentence) <= minExtractSentence {
			continue
		}
		lower := strings.ToLower(sentence)
		for _, kw := range keywords {
			if strings.Contains(lower, strings.ToLower(kw)) {
				out = append(out, sentence)
				break
			}
		}
		if len(out) == maxKeyExtracts {
			break
		}
	}
	return out
}

func actionableItems(text string) []string {
	var out []string
	for _, sentence := range sentenceSplitRe.Split(text, -1) {
		sentence = strings.TrimSpace(strings.Join(strings.Fields(sentence), " "))
		if len(sentence) <= 15 {
			continue
		}
		for _, re := range actionPatterns {
			if re.MatchString(sentence) {
				out = append(out, sentence)
				break
			}
		}
		if len(out) == maxActionableItems {
			break
		}
	}
	return out
}

func personaInsights(persona, content string) []string {
	var insights []string
	lowerPersona := strings.ToLower(persona)
	lower := strings.ToLower(content)

	switch {
	case strings.Contains(lowerPersona, "travel") || strings.Contains(lowerPersona, "writer"):
		if strings.Contains(lower, "restaurant") || strings.Contains(lower, "food") {
			insights = append(insights, "Rich culinary content available for a food section")
		}
		if strings.Contains(lower, "history") || strings.Contains(lower, "culture") {
			insights = append(insights, "Cultural and historical context for authentic storytelling")
		}
		if strings.Contains(lower, "tip") || strings.Contains(lower, "recommend") {
			insights = append(insights, "Practical travel tips and recommendations identified")
		}
	case strings.Contains(lowerPersona, "research") || strings.Contains(lowerPersona, "phd"):
		if strings.Contains(lower, "method") || strings.Contains(lower, "study") {
			insights = append(insights, "Methodological information available")
		}
		if strings.Contains(lower, "data") || strings.Contains(lower, "result") {
			insights = append(insights, "Data and results content identified")
		}
	case strings.Contains(lowerPersona, "analyst"):
		if containsAny(lower, "trend", "growth", "market", "revenue") {
			insights = append(insights, "Market and trend information available")
		}
		if containsAny(lower, "percent", "%", "increase", "decrease") {
			insights = append(insights, "Quantitative data points identified")
		}
	}
	if len(insights) == 0 {
		insights = append(insights, "Content contains relevant information for the specified job")
	}
	return insights
}

func containsAny(s string, needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

func jobKeywords(job string) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, w := range strings.Fields(strings.ToLower(job)) {
		w = strings.Trim(w, ".,;:!?\"'()")
		if len(w) <= 3 {
			continue
		}
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}

func head(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
