package score

import (
	"math"
	"testing"
)

func TestCombine_WeightedSum(t *testing.T) {
	got := Combine(Signals{Semantic: 1, Keyword: 1, Domain: 1, Structural: 1}, DefaultWeights)
	if math.Abs(got-1.0) > 1e-9 {
		t.Fatalf("full signals should score 1.0, got %f", got)
	}
	got = Combine(Signals{Semantic: 0.5}, DefaultWeights)
	if math.Abs(got-0.2) > 1e-9 {
		t.Fatalf("semantic-only 0.5 should score 0.2, got %f", got)
	}
}

func TestCombine_ClampsAndNeverNegative(t *testing.T) {
	got := Combine(Signals{Semantic: -3, Keyword: 7}, DefaultWeights)
	if got < 0 {
		t.Fatalf("score must never be negative, got %f", got)
	}
	if math.Abs(got-0.3) > 1e-9 {
		t.Fatalf("expected clamped keyword signal only, got %f", got)
	}
}

func TestCombine_Deterministic(t *testing.T) {
	s := Signals{Semantic: 0.7, Keyword: 0.3, Domain: 0.9, Structural: 0.1}
	a := Combine(s, DefaultWeights)
	b := Combine(s, DefaultWeights)
	if a != b {
		t.Fatalf("repeated calls with identical inputs must match: %f vs %f", a, b)
	}
}

func TestKeywordOverlap(t *testing.T) {
	text := "Visit the old town and taste the local seafood."
	got := KeywordOverlap(text, []string{"visit", "taste", "museum", "seafood"})
	if math.Abs(got-0.75) > 1e-9 {
		t.Fatalf("expected 3/4 overlap, got %f", got)
	}
	if KeywordOverlap(text, nil) != 0 {
		t.Fatalf("no terms must yield zero signal")
	}
}

func TestStructuralPosition_EdgesScoreHighest(t *testing.T) {
	if got := StructuralPosition(0, 10); got != 1 {
		t.Fatalf("first section should score 1, got %f", got)
	}
	if got := StructuralPosition(9, 10); got != 1 {
		t.Fatalf("last section should score 1, got %f", got)
	}
	mid := StructuralPosition(5, 11)
	if mid > 0.01 {
		t.Fatalf("middle section should score near 0, got %f", mid)
	}
	if got := StructuralPosition(0, 1); got != 1 {
		t.Fatalf("single-section document should score 1, got %f", got)
	}
}
