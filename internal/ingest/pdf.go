package ingest

import (
	"fmt"
	"os/exec"
	"strings"

	pdflib "github.com/ledongthuc/pdf"

	"github.com/anchal-dev/persona-document-intelligence/internal/extract"
)

// extractPDF returns the document text with a page marker ahead of each
// page's content, plus the page count. When the Go reader fails and the
// fallback is enabled, pdftotext output (form-feed separated) is used
// instead.
func (p *Processor) extractPDF(path string) (string, int, error) {
	text, pages, err := extractPDFText(path)
	if err != nil && p.PdftotextFallback {
		text, pages, err = extractPdftotext(path)
	}
	if err != nil {
		return "", 0, fmt.Errorf("extract pdf text: %w", err)
	}
	return text, pages, nil
}

func extractPDFText(path string) (string, int, error) {
	f, reader, err := pdflib.Open(path)
	if err != nil {
		return "", 0, err
	}
	defer f.Close()

	pages := make([]string, 0, reader.NumPage())
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// A single unreadable page should not sink the document.
			pages = append(pages, "")
			continue
		}
		pages = append(pages, text)
	}
	return joinPages(pages), len(pages), nil
}

func extractPdftotext(path string) (string, int, error) {
	cmd := exec.Command("pdftotext", "-layout", path, "-")
	out, err := cmd.Output()
	if err != nil {
		return "", 0, fmt.Errorf("pdftotext: %w", err)
	}
	pages := strings.Split(string(out), "\f")
	return joinPages(pages), len(pages), nil
}

// joinPages concatenates page texts with the shared page-boundary marker
// ahead of each page.
func joinPages(pages []string) string {
	var b strings.Builder
	for i, page := range pages {
		b.WriteString(extract.PageBreak(i + 1))
		b.WriteString(page)
	}
	return b.String()
}
