// Package rank turns scored candidates into the final ordered list of
// extracted sections. Two sources feed it: analysis results when available,
// and a degraded-but-valid fallback built straight from the processed
// documents. The orchestrator picks the source.
package rank

import (
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/anchal-dev/persona-document-intelligence/internal/analyze"
	"github.com/anchal-dev/persona-document-intelligence/internal/extract"
	"github.com/anchal-dev/persona-document-intelligence/internal/ingest"
)

// MaxSections caps the emitted list.
const MaxSections = 5

// Section is one emitted record: document identity, derived title, dense
// importance rank, and a page number that is always at least 1.
type Section struct {
	Document       string `json:"document"`
	SectionTitle   string `json:"section_title"`
	ImportanceRank int    `json:"importance_rank"`
	PageNumber     int    `json:"page_number"`
}

// Candidate is a scored section before ranking.
type Candidate struct {
	Document string
	Title    string
	Page     int
	Score    float64
}

// Source produces ranked sections, at most limit of them.
type Source interface {
	Sections(limit int) []Section
}

// AnalysisSource ranks the relevant sections found by the persona analyzer.
type AnalysisSource struct {
	Documents map[string]ingest.Document
	Analyses  []analyze.DocumentAnalysis
}

// Sections collects candidates across all analyses, then ranks them by
// descending score with dense 1-based ranks. Ties keep their original order.
func (s *AnalysisSource) Sections(limit int) []Section {
	var cands []Candidate
	for _, da := range s.Analyses {
		doc, ok := s.Documents[da.Filename]
		for _, sec := range da.RelevantSections {
			page := 1
			if ok {
				page = sectionPage(sec, doc)
			}
			cands = append(cands, Candidate{
				Document: da.Filename,
				Title:    sec.Title,
				Page:     page,
				Score:    sec.Score,
			})
		}
	}
	return Rank(cands, limit)
}

// sectionPage locates a section's page by matching a prefix of its content
// against the raw text. Cleaned content rarely survives verbatim; those cases
// resolve to the document's first recorded page.
func sectionPage(sec analyze.ScoredSection, doc ingest.Document) int {
	probe := sec.Content
	if r := []rune(probe); len(r) > 80 {
		probe = string(r[:80])
	}
	if probe != "" {
		if page := extract.PageForExcerpt(probe, doc.RawText); page > 1 {
			return page
		}
	}
	return extract.PageNumber(doc.RawText)
}

// FallbackSource synthesizes one section per document, in input order, when
// no analysis data is available. Scores are omitted; rank follows position.
type FallbackSource struct {
	Documents []ingest.Document
}

func (s *FallbackSource) Sections(limit int) []Section {
	if limit <= 0 {
		limit = MaxSections
	}
	log.Info().Int("documents", len(s.Documents)).Msg("no analysis data; ranking documents in input order")
	out := make([]Section, 0, limit)
	for _, doc := range s.Documents {
		if len(out) == limit {
			break
		}
		out = append(out, Section{
			Document:       doc.Filename,
			SectionTitle:   extract.DeriveTitle(doc.CleanText, doc.Filename),
			ImportanceRank: len(out) + 1,
			PageNumber:     extract.PageNumber(doc.RawText),
		})
	}
	return out
}

// Rank orders candidates by descending score (stable, so equal scores keep
// input order), truncates to limit, and assigns dense 1..k ranks.
func Rank(cands []Candidate, limit int) []Section {
	if limit <= 0 {
		limit = MaxSections
	}
	sorted := make([]Candidate, len(cands))
	copy(sorted, cands)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Score > sorted[j].Score })
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	out := make([]Section, 0, len(sorted))
	for i, c := range sorted {
		page := c.Page
		if page < 1 {
			page = 1
		}
		title := c.Title
		if title == "" {
			title = extract.TitleFromFilename(c.Document)
		}
		out = append(out, Section{
			Document:       c.Document,
			SectionTitle:   title,
			ImportanceRank: i + 1,
			PageNumber:     page,
		})
	}
	return out
}
