package extract

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// PageMarkerPrefix is the literal sentinel the ingest layer injects between
// pages of extracted text. Everything that recovers page numbers downstream
// keys off this prefix.
const PageMarkerPrefix = "--- Page "

const (
	titleScanLines = 20
	minTitleChars  = 10
	maxTitleChars  = 80

	excerptParagraphMin = 100
	excerptMaxChars     = 500
	excerptFallbackMax  = 300
)

// PageBreak renders the marker for page n as it appears in raw document text.
func PageBreak(n int) string {
	return fmt.Sprintf("\n%s%d ---\n", PageMarkerPrefix, n)
}

// DeriveTitle scans the first lines of text for a plausible section title:
// a line between 10 and 80 characters that starts with an uppercase rune and
// is not a page marker. When nothing qualifies it falls back to a title
// derived from the filename.
func DeriveTitle(text, filename string) string {
	lines := strings.Split(text, "\n")
	if len(lines) > titleScanLines {
		lines = lines[:titleScanLines]
	}
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if n := utf8.RuneCountInString(line); n < minTitleChars || n > maxTitleChars {
			continue
		}
		if strings.HasPrefix(line, PageMarkerPrefix) {
			continue
		}
		runes := []rune(line)
		if !unicode.IsUpper(runes[0]) {
			continue
		}
		return line
	}
	return TitleFromFilename(filename)
}

// TitleFromFilename turns a document filename into a readable title:
// extension stripped, separators replaced with spaces, title-cased.
func TitleFromFilename(filename string) string {
	name := filepath.Base(filename)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	name = strings.NewReplacer("-", " ", "_", " ", ".", " ").Replace(name)
	name = strings.Join(strings.Fields(name), " ")
	if name == "" {
		return "Untitled Section"
	}
	return cases.Title(language.English).String(name)
}

// PageNumber returns the first page number recorded in text via the marker
// convention. Missing or malformed markers default to page 1; this never
// fails.
func PageNumber(text string) int {
	idx := strings.Index(text, PageMarkerPrefix)
	if idx < 0 {
		return 1
	}
	rest := text[idx+len(PageMarkerPrefix):]
	end := strings.Index(rest, "---")
	if end < 0 {
		return 1
	}
	n, err := strconv.Atoi(strings.TrimSpace(rest[:end]))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// PageForExcerpt locates an excerpt inside the raw document text and returns
// the number of page markers preceding its first occurrence, minimum 1.
// Excerpts that were reworded or truncated upstream will not match verbatim;
// those resolve to page 1, a known precision gap rather than an error.
func PageForExcerpt(excerpt, text string) int {
	pos := strings.Index(text, excerpt)
	if pos < 0 {
		return 1
	}
	count := strings.Count(text[:pos], PageMarkerPrefix)
	if count < 1 {
		return 1
	}
	return count
}

// DeriveExcerpt picks a representative excerpt from document text: the first
// blank-line separated paragraph longer than 100 characters, truncated to 500
// characters. When no paragraph qualifies it falls back to the first 300
// characters of whitespace-normalized text.
func DeriveExcerpt(text string) string {
	for _, para := range strings.Split(text, "\n\n") {
		para = strings.Join(strings.Fields(para), " ")
		if len(para) > excerptParagraphMin {
			return Truncate(para, excerptMaxChars)
		}
	}
	normalized := strings.Join(strings.Fields(text), " ")
	if r := []rune(normalized); len(r) > excerptFallbackMax {
		normalized = string(r[:excerptFallbackMax])
	}
	return normalized
}

// Truncate caps s at max characters, appending an ellipsis marker when the
// input was longer. Inputs at or under the cap pass through unchanged, so the
// operation is idempotent.
func Truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + "..."
}
