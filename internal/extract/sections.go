package extract

import (
	"regexp"
	"strings"
)

// Section is a contiguous run of document text under a detected heading.
type Section struct {
	Title     string
	Content   string
	StartLine int
	WordCount int
}

var titleCaseLineRe = regexp.MustCompile(`^[A-Z][A-Za-z\s]+$`)

// IdentifySections splits cleaned document text into sections using
// formatting heuristics: an all-caps line, a short line ending in a colon, or
// a short Title Case line starts a new section. Text before the first heading
// is not attributed to any section.
func IdentifySections(text string) []Section {
	var sections []Section
	var current *Section

	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if isHeadingLine(line) {
			if current != nil {
				sections = append(sections, *current)
			}
			current = &Section{Title: line, StartLine: i}
			continue
		}
		if current != nil {
			current.Content += line + " "
			current.WordCount = len(strings.Fields(current.Content))
		}
	}
	if current != nil {
		sections = append(sections, *current)
	}
	return sections
}

func isHeadingLine(line string) bool {
	if line == strings.ToUpper(line) && line != strings.ToLower(line) && len(line) > 3 && len(line) < 100 {
		return true
	}
	if strings.HasSuffix(line, ":") && len(line) < 80 {
		return true
	}
	if titleCaseLineRe.MatchString(line) && len(line) < 60 {
		return true
	}
	return false
}
