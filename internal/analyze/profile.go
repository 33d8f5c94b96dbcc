package analyze

import "strings"

// Profile captures the vocabulary a persona family cares about. The section
// vocabulary drives the domain-relevance signal; the extraction keywords
// drive key-extract selection and keyword overlap.
type Profile struct {
	Name               string
	SectionVocabulary  []string
	ExtractionKeywords []string
}

var profiles = []Profile{
	{
		Name:               "travel",
		SectionVocabulary:  []string{"attractions", "cuisine", "culture", "hotels", "restaurants", "tips", "history", "traditions"},
		ExtractionKeywords: []string{"visit", "taste", "experience", "stay", "eat", "see", "do", "recommend", "must", "best", "top"},
	},
	{
		Name:               "researcher",
		SectionVocabulary:  []string{"methodology", "results", "conclusions", "references", "data", "analysis"},
		ExtractionKeywords: []string{"study", "research", "method", "result", "conclusion", "data", "analysis", "finding"},
	},
	{
		Name:               "analyst",
		SectionVocabulary:  []string{"trends", "metrics", "performance", "market", "revenue", "growth"},
		ExtractionKeywords: []string{"trend", "increase", "decrease", "percent", "growth", "market", "revenue", "profit"},
	},
	{
		Name:               "student",
		SectionVocabulary:  []string{"concepts", "definitions", "examples", "formulas", "principles"},
		ExtractionKeywords: []string{"define", "concept", "principle", "formula", "example", "important", "key"},
	},
}

var defaultProfile = Profile{
	Name:               "default",
	SectionVocabulary:  []string{"overview", "main points", "details", "summary"},
	ExtractionKeywords: []string{"important", "key", "main", "significant", "notable"},
}

type alias struct {
	word    string
	profile string
}

// profileAliases maps extra role words onto a profile family. Order matters:
// when a compound role matches several aliases, the first one listed wins, so
// identical personas always resolve to the same profile.
var profileAliases = []alias{
	{"travel", "travel"},
	{"writer", "travel"},
	{"planner", "travel"},
	{"guide", "travel"},
	{"researcher", "researcher"},
	{"research", "researcher"},
	{"phd", "researcher"},
	{"scientist", "researcher"},
	{"analyst", "analyst"},
	{"investment", "analyst"},
	{"financial", "analyst"},
	{"student", "student"},
	{"learner", "student"},
}

// ProfileFor matches a persona role description to the closest profile,
// falling back to a generic one.
func ProfileFor(persona string) Profile {
	lower := strings.ToLower(persona)
	for _, word := range strings.Fields(lower) {
		word = strings.Trim(word, ".,;:!?")
		for _, a := range profileAliases {
			if a.word == word {
				return profileByName(a.profile)
			}
		}
	}
	// Substring match as a second chance for compound roles.
	for _, a := range profileAliases {
		if strings.Contains(lower, a.word) {
			return profileByName(a.profile)
		}
	}
	return defaultProfile
}

func profileByName(name string) Profile {
	for _, p := range profiles {
		if p.Name == name {
			return p
		}
	}
	return defaultProfile
}
