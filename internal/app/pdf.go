package app

import (
	"bufio"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// writeSummaryPDF renders the plain-text run summary as a minimal PDF:
// section header lines in bold, everything else as body text. Layout is
// intentionally simple.
func writeSummaryPDF(summary string, outPath string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.AddPage()

	scanner := bufio.NewScanner(strings.NewReader(summary))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), " ")
		if strings.TrimSpace(line) == "" {
			pdf.Ln(4)
			continue
		}
		if isSummaryHeader(line) {
			pdf.SetFont("Helvetica", "B", 12)
			pdf.CellFormat(0, 7, strings.TrimSuffix(line, ":"), "", 1, "L", false, 0, "")
			pdf.SetFont("Helvetica", "", 11)
			continue
		}
		if strings.Trim(line, "=") == "" {
			// Rule lines from the text summary add nothing in PDF form.
			continue
		}
		pdf.MultiCell(0, 5, line, "", "L", false)
	}
	return pdf.OutputFileAndClose(outPath)
}

func isSummaryHeader(line string) bool {
	trimmed := strings.TrimSuffix(strings.TrimSpace(line), ":")
	if trimmed == "" || strings.Trim(trimmed, "=") == "" {
		return false
	}
	return trimmed == strings.ToUpper(trimmed) && trimmed != strings.ToLower(trimmed)
}
