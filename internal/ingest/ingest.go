// Package ingest loads source documents from disk and prepares the text the
// analysis core operates on: raw text with page-boundary markers, cleaned
// text, and identified sections.
package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/anchal-dev/persona-document-intelligence/internal/extract"
)

// Document is one processed input file.
type Document struct {
	Filename  string
	RawText   string
	CleanText string
	WordCount int
	PageCount int
	Sections  []extract.Section
}

// Processor reads every supported file in InputDir.
type Processor struct {
	InputDir string
	// PdftotextFallback shells out to pdftotext when the Go PDF reader fails.
	PdftotextFallback bool
}

var supportedExt = map[string]bool{
	".pdf":  true,
	".html": true,
	".htm":  true,
	".txt":  true,
	".md":   true,
}

// Supported reports whether a filename has an extension the processor can
// load.
func Supported(name string) bool {
	return supportedExt[strings.ToLower(filepath.Ext(name))]
}

// ProcessAll loads every supported document under InputDir in sorted filename
// order. Files that fail to parse are logged and skipped; an unreadable
// directory is an error.
func (p *Processor) ProcessAll(ctx context.Context) ([]Document, error) {
	entries, err := os.ReadDir(p.InputDir)
	if err != nil {
		return nil, fmt.Errorf("read input dir: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if supportedExt[strings.ToLower(filepath.Ext(e.Name()))] {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	docs := make([]Document, 0, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return docs, err
		}
		doc, err := p.Process(filepath.Join(p.InputDir, name))
		if err != nil {
			log.Warn().Err(err).Str("file", name).Msg("skipping unreadable document")
			continue
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// Process loads a single file, dispatching on extension.
func (p *Processor) Process(path string) (Document, error) {
	var raw string
	var pages int
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		raw, pages, err = p.extractPDF(path)
	case ".html", ".htm":
		raw, err = readHTMLFile(path)
		pages = 1
	default:
		raw, err = readTextFile(path)
		pages = 1
	}
	if err != nil {
		return Document{}, err
	}

	clean := CleanText(raw)
	return Document{
		Filename:  filepath.Base(path),
		RawText:   raw,
		CleanText: clean,
		WordCount: len(strings.Fields(clean)),
		PageCount: pages,
		Sections:  extract.IdentifySections(clean),
	}, nil
}

// CleanText normalizes extracted text: per-line whitespace collapse, very
// short artifact lines dropped, consecutive blank lines folded to one so
// paragraph boundaries survive.
func CleanText(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		trimmed := strings.Join(strings.Fields(line), " ")
		if trimmed == "" {
			if len(out) > 0 && out[len(out)-1] == "" {
				continue
			}
			out = append(out, "")
			continue
		}
		if len(trimmed) <= 3 {
			continue
		}
		out = append(out, trimmed)
	}
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	for len(out) > 0 && out[0] == "" {
		out = out[1:]
	}
	return strings.Join(out, "\n")
}

func readTextFile(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}
	return strings.ReplaceAll(string(b), "\r\n", "\n"), nil
}
