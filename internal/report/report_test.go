package report

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/anchal-dev/persona-document-intelligence/internal/analyze"
	"github.com/anchal-dev/persona-document-intelligence/internal/rank"
	"github.com/anchal-dev/persona-document-intelligence/internal/refine"
	"github.com/anchal-dev/persona-document-intelligence/internal/request"
)

func sampleRequest() request.Request {
	return request.Request{
		ChallengeID: "round_1",
		Persona:     "Travel Planner",
		Job:         "Plan a 4-day trip",
		Documents: []request.DocumentRef{
			{Filename: "cities.pdf"},
			{Filename: "cuisine.pdf"},
		},
	}
}

func TestBuild_FieldNamesMatchContract(t *testing.T) {
	env := Build(sampleRequest(),
		[]rank.Section{{Document: "cities.pdf", SectionTitle: "Coastal Cities", ImportanceRank: 1, PageNumber: 2}},
		[]refine.Subsection{{Document: "cities.pdf", RefinedText: "Nice is lovely.", PageNumber: 2}},
		time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC), 1500*time.Millisecond)

	raw, err := env.MarshalIndent()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("output is not valid json: %v", err)
	}
	for _, key := range []string{"metadata", "extracted_sections", "subsection_analysis"} {
		if _, ok := decoded[key]; !ok {
			t.Fatalf("missing top-level key %q", key)
		}
	}
	text := string(raw)
	for _, field := range []string{
		`"input_documents"`, `"persona"`, `"job_to_be_done"`, `"processing_timestamp"`,
		`"document"`, `"section_title"`, `"importance_rank"`, `"page_number"`, `"refined_text"`,
	} {
		if !strings.Contains(text, field) {
			t.Fatalf("missing field %s in output:\n%s", field, text)
		}
	}
}

func TestBuild_EmptyListsNotNull(t *testing.T) {
	env := Build(sampleRequest(), nil, nil, time.Now(), 0)
	raw, err := env.MarshalIndent()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	text := string(raw)
	if strings.Contains(text, `"extracted_sections": null`) || strings.Contains(text, `"subsection_analysis": null`) {
		t.Fatalf("empty runs must serialize as empty lists:\n%s", text)
	}
}

func TestSummary_IncludesRanksAndDocuments(t *testing.T) {
	env := Build(sampleRequest(),
		[]rank.Section{
			{Document: "cities.pdf", SectionTitle: "Coastal Cities", ImportanceRank: 1, PageNumber: 2},
			{Document: "cuisine.pdf", SectionTitle: "Local Cuisine", ImportanceRank: 2, PageNumber: 1},
		},
		nil, time.Now(), time.Second)
	s := Summary(env, nil)
	for _, want := range []string{"Travel Planner", "1. Coastal Cities", "2. Local Cuisine", "cities.pdf", "page 2"} {
		if !strings.Contains(s, want) {
			t.Fatalf("summary missing %q:\n%s", want, s)
		}
	}
	if strings.Contains(s, "DOCUMENT ANALYSIS") {
		t.Fatalf("analysis section must be absent without digests:\n%s", s)
	}
}

func TestSummary_IncludesDocumentAnalysis(t *testing.T) {
	digests := Digests([]analyze.DocumentAnalysis{{
		Filename:        "cities.pdf",
		RelevanceScore:  0.42,
		Insights:        []string{"Rich culinary content available for a food section"},
		ActionableItems: []string{"You must book tickets in advance"},
	}})
	s := Summary(Build(sampleRequest(), nil, nil, time.Now(), 0), digests)
	for _, want := range []string{
		"DOCUMENT ANALYSIS:",
		"cities.pdf (relevance 0.42)",
		"Insight: Rich culinary content",
		"Action: You must book tickets",
	} {
		if !strings.Contains(s, want) {
			t.Fatalf("summary missing %q:\n%s", want, s)
		}
	}
}
