// Package score combines per-candidate relevance signals into a single
// weighted score. Every function here is a pure transformation of its inputs;
// scoring the same candidate twice always yields the same number.
package score

import "strings"

// Weights distributes the contribution of each signal. The defaults favor
// semantic similarity, then keyword overlap, then persona-domain relevance,
// with structural position as a tiebreaker-grade signal.
type Weights struct {
	Semantic   float64
	Keyword    float64
	Domain     float64
	Structural float64
}

// DefaultWeights is the production weighting: 0.40/0.30/0.20/0.10.
var DefaultWeights = Weights{Semantic: 0.40, Keyword: 0.30, Domain: 0.20, Structural: 0.10}

// Signals holds the four sub-scores for one candidate. Each is expected in
// [0,1]; out-of-range values are clamped rather than rejected.
type Signals struct {
	Semantic   float64
	Keyword    float64
	Domain     float64
	Structural float64
}

// Combine produces the weighted relevance score. The result is never
// negative.
func Combine(s Signals, w Weights) float64 {
	v := clamp01(s.Semantic)*w.Semantic +
		clamp01(s.Keyword)*w.Keyword +
		clamp01(s.Domain)*w.Domain +
		clamp01(s.Structural)*w.Structural
	if v < 0 {
		return 0
	}
	return v
}

// KeywordOverlap returns the fraction of terms present in text, both sides
// compared case-insensitively. No terms means no signal.
func KeywordOverlap(text string, terms []string) float64 {
	if len(terms) == 0 {
		return 0
	}
	lower := strings.ToLower(text)
	hits := 0
	for _, term := range terms {
		term = strings.ToLower(strings.TrimSpace(term))
		if term == "" {
			continue
		}
		if strings.Contains(lower, term) {
			hits++
		}
	}
	return float64(hits) / float64(len(terms))
}

// StructuralPosition scores a candidate by where it sits in the document:
// 1.0 at the first or last position, tapering to 0 in the middle. Sections
// near the edges tend to be introductions or conclusions.
func StructuralPosition(index, total int) float64 {
	if total <= 1 || index < 0 || index >= total {
		return 1
	}
	pos := float64(index) / float64(total-1)
	edge := pos
	if 1-pos < edge {
		edge = 1 - pos
	}
	return 1 - 2*edge
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
