// Package refine produces the subsection analysis: per document, up to two
// refined excerpts with their page numbers. Short extracts are treated as
// noise and skipped; everything else is passed through with at most a length
// cap, keeping the step deterministic.
package refine

import (
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/anchal-dev/persona-document-intelligence/internal/analyze"
	"github.com/anchal-dev/persona-document-intelligence/internal/extract"
	"github.com/anchal-dev/persona-document-intelligence/internal/ingest"
)

const (
	// MaxPerDocument caps retained excerpts per document.
	MaxPerDocument = 2
	// MinExtractChars is the noise floor for an extract's trimmed length.
	MinExtractChars = 50
	// MaxRefinedChars caps refined text before the ellipsis marker.
	MaxRefinedChars = 500
)

// Subsection is one emitted excerpt record.
type Subsection struct {
	Document    string `json:"document"`
	RefinedText string `json:"refined_text"`
	PageNumber  int    `json:"page_number"`
}

// FromAnalyses refines the key extracts of each document analysis, in the
// order the analyses appear. Documents missing from docs still produce
// records; their pages default to 1.
func FromAnalyses(analyses []analyze.DocumentAnalysis, docs map[string]ingest.Document) []Subsection {
	var out []Subsection
	for _, da := range analyses {
		raw := ""
		if doc, ok := docs[da.Filename]; ok {
			raw = doc.RawText
		}
		kept := 0
		for _, ext := range da.KeyExtracts {
			if kept == MaxPerDocument {
				break
			}
			sub, ok := refineExtract(da.Filename, ext, raw)
			if !ok {
				continue
			}
			out = append(out, sub)
			kept++
		}
	}
	return out
}

// FromDocuments synthesizes excerpts directly from processed documents when
// no analysis data exists: one derived excerpt per document, subject to the
// same noise floor.
func FromDocuments(docs []ingest.Document) []Subsection {
	log.Info().Int("documents", len(docs)).Msg("no analysis data; deriving excerpts from documents")
	var out []Subsection
	for _, doc := range docs {
		sub, ok := refineExtract(doc.Filename, extract.DeriveExcerpt(doc.CleanText), doc.RawText)
		if !ok {
			continue
		}
		out = append(out, sub)
	}
	return out
}

func refineExtract(filename, ext, rawText string) (Subsection, bool) {
	trimmed := strings.TrimSpace(ext)
	if len(trimmed) < MinExtractChars {
		return Subsection{}, false
	}
	page := extract.PageForExcerpt(trimmed, rawText)
	if page == 1 && rawText != "" && !strings.Contains(rawText, trimmed) {
		log.Debug().Str("file", filename).Msg("excerpt not found verbatim; page defaults to 1")
	}
	refined := strings.Join(strings.Fields(trimmed), " ")
	return Subsection{
		Document:    filename,
		RefinedText: extract.Truncate(refined, MaxRefinedChars),
		PageNumber:  page,
	}, true
}
