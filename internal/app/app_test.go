package app

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/anchal-dev/persona-document-intelligence/internal/report"
)

// neutral content: no travel vocabulary, so the analyzer finds nothing and
// the fallback path must carry the run.
const (
	ledgerText = "Quarterly Ledger Summary\n\nThe ledger held forty rows of figures, each row checked twice for balance and carried into the annual register without remark."
	minutesText = "Winter Assembly Records\n\nMinutes of the winter assembly were archived alongside the older volumes, with every entry numbered and bound in cloth for reference."
)

func writeInput(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func readEnvelope(t *testing.T, outDir string) report.Envelope {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(outDir, "challenge_output_*.json"))
	if err != nil || len(matches) != 1 {
		t.Fatalf("expected exactly one output file, got %v (err %v)", matches, err)
	}
	raw, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatal(err)
	}
	var env report.Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		t.Fatalf("output is not valid json: %v", err)
	}
	return env
}

func TestRun_FallbackPathEndToEnd(t *testing.T) {
	inDir := t.TempDir()
	outDir := t.TempDir()
	writeInput(t, inDir, map[string]string{
		"a_ledger.txt":  ledgerText,
		"b_minutes.txt": minutesText,
		"c_stub.txt":    "tiny",
	})

	cfg := Config{InputDir: inDir, OutputDir: outDir, Persona: "Travel Planner", Job: "Plan a 4-day trip"}
	a, err := New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer a.Close()
	if err := a.Run(context.Background()); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	env := readEnvelope(t, outDir)
	if env.Metadata.Persona != "Travel Planner" {
		t.Fatalf("metadata persona = %q", env.Metadata.Persona)
	}
	if len(env.Metadata.InputDocuments) != 3 {
		t.Fatalf("expected 3 input documents in metadata, got %v", env.Metadata.InputDocuments)
	}

	if len(env.ExtractedSections) != 3 {
		t.Fatalf("fallback should emit one section per document, got %d", len(env.ExtractedSections))
	}
	wantDocs := []string{"a_ledger.txt", "b_minutes.txt", "c_stub.txt"}
	for i, sec := range env.ExtractedSections {
		if sec.ImportanceRank != i+1 {
			t.Fatalf("rank at %d = %d, want %d", i, sec.ImportanceRank, i+1)
		}
		if sec.Document != wantDocs[i] {
			t.Fatalf("fallback must keep input order: got %q at %d", sec.Document, i)
		}
		if sec.PageNumber < 1 {
			t.Fatalf("page number must be >= 1")
		}
	}

	// Only the two documents with a substantial paragraph yield excerpts.
	if len(env.SubsectionAnalysis) != 2 {
		t.Fatalf("expected 2 subsection records, got %d: %+v", len(env.SubsectionAnalysis), env.SubsectionAnalysis)
	}
	seen := map[string]int{}
	for _, sub := range env.SubsectionAnalysis {
		seen[sub.Document]++
		if strings.TrimSpace(sub.RefinedText) == "" {
			t.Fatalf("empty refined text for %q", sub.Document)
		}
	}
	if seen["c_stub.txt"] != 0 {
		t.Fatalf("noise document must not produce subsection records")
	}

	// Per-document analysis surfaces in the summary sidecar and its own file.
	summaries, err := filepath.Glob(filepath.Join(outDir, "challenge_summary_*.txt"))
	if err != nil || len(summaries) != 1 {
		t.Fatalf("expected one summary file, got %v (err %v)", summaries, err)
	}
	text, err := os.ReadFile(summaries[0])
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(text), "DOCUMENT ANALYSIS:") || !strings.Contains(string(text), "a_ledger.txt (relevance") {
		t.Fatalf("summary missing per-document analysis:\n%s", text)
	}
	details, err := filepath.Glob(filepath.Join(outDir, "challenge_analysis_*.json"))
	if err != nil || len(details) != 1 {
		t.Fatalf("expected one analysis file, got %v (err %v)", details, err)
	}
	var digests []report.DocumentDigest
	raw, err := os.ReadFile(details[0])
	if err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal(raw, &digests); err != nil {
		t.Fatalf("analysis file is not valid json: %v", err)
	}
	if len(digests) != 3 {
		t.Fatalf("expected 3 analysis digests, got %d", len(digests))
	}
}

func TestRun_RequestFileFiltersDocuments(t *testing.T) {
	inDir := t.TempDir()
	outDir := t.TempDir()
	writeInput(t, inDir, map[string]string{
		"a_ledger.txt":  ledgerText,
		"b_minutes.txt": minutesText,
	})
	reqPath := filepath.Join(inDir, "request.json")
	reqJSON := `{
		"challenge_info": {"challenge_id": "t1"},
		"documents": [{"filename": "a_ledger.txt", "title": "Ledger"}],
		"persona": {"role": "Travel Planner"},
		"job_to_be_done": {"task": "Plan a 4-day trip"}
	}`
	if err := os.WriteFile(reqPath, []byte(reqJSON), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := Config{InputDir: inDir, OutputDir: outDir, RequestPath: reqPath}
	a, err := New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := a.Run(context.Background()); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	env := readEnvelope(t, outDir)
	for _, sec := range env.ExtractedSections {
		if sec.Document != "a_ledger.txt" {
			t.Fatalf("document outside the request leaked into output: %q", sec.Document)
		}
	}
	if len(env.ExtractedSections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(env.ExtractedSections))
	}
}

func TestRun_EmptyInputWritesEmptyListsAndSentinel(t *testing.T) {
	inDir := t.TempDir()
	outDir := t.TempDir()

	cfg := Config{InputDir: inDir, OutputDir: outDir}
	a, err := New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	runErr := a.Run(context.Background())
	if !errors.Is(runErr, ErrNoDocuments) {
		t.Fatalf("expected ErrNoDocuments, got %v", runErr)
	}
	env := readEnvelope(t, outDir)
	if len(env.ExtractedSections) != 0 || len(env.SubsectionAnalysis) != 0 {
		t.Fatalf("empty input must produce empty lists: %+v", env)
	}
}

func TestApplyFileConfig_FlagsWin(t *testing.T) {
	cfg := Config{InputDir: "explicit", OutputDir: "data/output", MaxSections: 5}
	fc := FileConfig{Input: "from-file", Output: "file-output"}
	fc.Max.Sections = 3
	ApplyFileConfig(&cfg, fc)
	if cfg.InputDir != "explicit" {
		t.Fatalf("explicit flag must win over file config, got %q", cfg.InputDir)
	}
	if cfg.OutputDir != "file-output" {
		t.Fatalf("default should be overridden by file config, got %q", cfg.OutputDir)
	}
	if cfg.MaxSections != 3 {
		t.Fatalf("default max should be overridden, got %d", cfg.MaxSections)
	}
}

func TestValidateConfig(t *testing.T) {
	if err := ValidateConfig(Config{OutputDir: "out"}); err == nil {
		t.Fatalf("missing input dir must fail validation")
	}
	if err := ValidateConfig(Config{InputDir: "in", OutputDir: "out", MaxSections: -1}); err == nil {
		t.Fatalf("negative limit must fail validation")
	}
	if err := ValidateConfig(Config{InputDir: "in", OutputDir: "out"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
