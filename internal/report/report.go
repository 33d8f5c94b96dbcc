// Package report assembles the final output envelope: run metadata plus the
// ranked sections and refined subsections, serialized as indented JSON, with
// an optional human-readable summary.
package report

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/anchal-dev/persona-document-intelligence/internal/analyze"
	"github.com/anchal-dev/persona-document-intelligence/internal/rank"
	"github.com/anchal-dev/persona-document-intelligence/internal/refine"
	"github.com/anchal-dev/persona-document-intelligence/internal/request"
)

// Metadata describes one analysis run.
type Metadata struct {
	InputDocuments      []string `json:"input_documents"`
	Persona             string   `json:"persona"`
	JobToBeDone         string   `json:"job_to_be_done"`
	ProcessingTimestamp string   `json:"processing_timestamp"`
	ElapsedSeconds      float64  `json:"elapsed_seconds"`
}

// Envelope is the complete output document.
type Envelope struct {
	Metadata           Metadata            `json:"metadata"`
	ExtractedSections  []rank.Section      `json:"extracted_sections"`
	SubsectionAnalysis []refine.Subsection `json:"subsection_analysis"`
}

// Build assembles the envelope. The section and subsection slices are always
// non-nil so empty runs serialize as empty lists, not null.
func Build(req request.Request, sections []rank.Section, subsections []refine.Subsection, startedAt time.Time, elapsed time.Duration) Envelope {
	if sections == nil {
		sections = []rank.Section{}
	}
	if subsections == nil {
		subsections = []refine.Subsection{}
	}
	names := make([]string, 0, len(req.Documents))
	for _, d := range req.Documents {
		names = append(names, d.Filename)
	}
	return Envelope{
		Metadata: Metadata{
			InputDocuments:      names,
			Persona:             req.Persona,
			JobToBeDone:         req.Job,
			ProcessingTimestamp: startedAt.UTC().Format(time.RFC3339),
			ElapsedSeconds:      elapsed.Seconds(),
		},
		ExtractedSections:  sections,
		SubsectionAnalysis: subsections,
	}
}

// MarshalIndent renders the envelope as indented JSON.
func (e Envelope) MarshalIndent() ([]byte, error) {
	b, err := json.MarshalIndent(e, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("marshal envelope: %w", err)
	}
	return b, nil
}

// DocumentDigest carries the per-document analysis details that the envelope
// contract has no room for: overall relevance, persona insights, and
// actionable items.
type DocumentDigest struct {
	Document        string   `json:"document"`
	RelevanceScore  float64  `json:"relevance_score"`
	Insights        []string `json:"insights"`
	ActionableItems []string `json:"actionable_items"`
}

// Digests condenses analysis results into sidecar digests, in analysis order.
func Digests(analyses []analyze.DocumentAnalysis) []DocumentDigest {
	out := make([]DocumentDigest, 0, len(analyses))
	for _, da := range analyses {
		out = append(out, DocumentDigest{
			Document:        da.Filename,
			RelevanceScore:  da.RelevanceScore,
			Insights:        da.Insights,
			ActionableItems: da.ActionableItems,
		})
	}
	return out
}

// Summary renders a human-readable digest of the envelope, suitable for a
// sidecar text file next to the JSON output.
func Summary(e Envelope, digests []DocumentDigest) string {
	var b strings.Builder
	rule := strings.Repeat("=", 60)
	b.WriteString(rule + "\n")
	b.WriteString("PERSONA-DRIVEN DOCUMENT INTELLIGENCE RESULTS\n")
	b.WriteString(rule + "\n\n")

	b.WriteString("METADATA:\n")
	fmt.Fprintf(&b, "Persona: %s\n", e.Metadata.Persona)
	fmt.Fprintf(&b, "Task: %s\n", e.Metadata.JobToBeDone)
	fmt.Fprintf(&b, "Documents: %d\n", len(e.Metadata.InputDocuments))
	fmt.Fprintf(&b, "Processed: %s (%.1fs)\n\n", e.Metadata.ProcessingTimestamp, e.Metadata.ElapsedSeconds)

	b.WriteString("KEY EXTRACTED SECTIONS:\n")
	for _, s := range e.ExtractedSections {
		fmt.Fprintf(&b, "%d. %s\n", s.ImportanceRank, s.SectionTitle)
		fmt.Fprintf(&b, "   Document: %s (page %d)\n", s.Document, s.PageNumber)
	}
	if len(e.ExtractedSections) == 0 {
		b.WriteString("(none)\n")
	}

	b.WriteString("\nDETAILED SUBSECTION ANALYSIS:\n")
	for i, s := range e.SubsectionAnalysis {
		preview := s.RefinedText
		if r := []rune(preview); len(r) > 200 {
			preview = string(r[:200]) + "..."
		}
		fmt.Fprintf(&b, "%d. Document: %s (page %d)\n", i+1, s.Document, s.PageNumber)
		fmt.Fprintf(&b, "   %s\n", preview)
	}
	if len(e.SubsectionAnalysis) == 0 {
		b.WriteString("(none)\n")
	}

	if len(digests) > 0 {
		b.WriteString("\nDOCUMENT ANALYSIS:\n")
		for _, d := range digests {
			fmt.Fprintf(&b, "%s (relevance %.2f)\n", d.Document, d.RelevanceScore)
			for _, ins := range d.Insights {
				fmt.Fprintf(&b, "   Insight: %s\n", ins)
			}
			for _, item := range d.ActionableItems {
				fmt.Fprintf(&b, "   Action: %s\n", item)
			}
		}
	}
	return b.String()
}
