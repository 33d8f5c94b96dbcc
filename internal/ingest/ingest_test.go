package ingest

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/anchal-dev/persona-document-intelligence/internal/extract"
)

func TestCleanText_DropsArtifactsKeepsParagraphs(t *testing.T) {
	in := "Heading Line Here\n\n\n\nab\nA  paragraph   with\tspaces.\n\nNext paragraph."
	got := CleanText(in)
	want := "Heading Line Here\n\nA paragraph with spaces.\n\nNext paragraph."
	if got != want {
		t.Fatalf("clean text mismatch:\ngot:  %q\nwant: %q", got, want)
	}
}

func TestJoinPages_InjectsMarkers(t *testing.T) {
	got := joinPages([]string{"first", "second"})
	if !strings.Contains(got, extract.PageMarkerPrefix+"1 ---") || !strings.Contains(got, extract.PageMarkerPrefix+"2 ---") {
		t.Fatalf("expected markers for both pages, got %q", got)
	}
	if extract.PageForExcerpt("second", got) != 2 {
		t.Fatalf("expected second page content to resolve to page 2")
	}
}

func TestProcessAll_TextFiles(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	write("b.txt", "Beta Document Title\n\nBody of the beta document with enough words.")
	write("a.txt", "Alpha Document Title\n\nBody of the alpha document.")
	write("ignored.dat", "not a supported format")

	p := &Processor{InputDir: dir}
	docs, err := p.ProcessAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(docs))
	}
	if docs[0].Filename != "a.txt" || docs[1].Filename != "b.txt" {
		t.Fatalf("expected sorted order, got %s, %s", docs[0].Filename, docs[1].Filename)
	}
	if docs[0].WordCount == 0 {
		t.Fatalf("expected word count to be populated")
	}
}

func TestProcess_HTMLReadableText(t *testing.T) {
	dir := t.TempDir()
	page := `<html><head><title>t</title></head><body>
<nav>menu noise</nav>
<main><h1>Coastal Towns Overview</h1><p>The coastline hosts a dozen small towns worth a detour.</p></main>
<footer>footer noise</footer></body></html>`
	if err := os.WriteFile(filepath.Join(dir, "guide.html"), []byte(page), 0o644); err != nil {
		t.Fatal(err)
	}
	p := &Processor{InputDir: dir}
	doc, err := p.Process(filepath.Join(dir, "guide.html"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(doc.CleanText, "menu noise") || strings.Contains(doc.CleanText, "footer noise") {
		t.Fatalf("boilerplate should be skipped, got %q", doc.CleanText)
	}
	if !strings.Contains(doc.CleanText, "Coastal Towns Overview") {
		t.Fatalf("expected heading text, got %q", doc.CleanText)
	}
	if !strings.Contains(doc.CleanText, "dozen small towns") {
		t.Fatalf("expected paragraph text, got %q", doc.CleanText)
	}
}
