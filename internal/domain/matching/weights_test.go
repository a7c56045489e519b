package matching

import (
	"errors"
	"math"
	"testing"

	"talent-match/internal/domain/match"
)

func TestPolicy_Resolve_DefaultsSumToOne(t *testing.T) {
	p := NewPolicy(nil)
	w, err := p.Resolve(nil)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	assertSumsToOne(t, w)
}

func TestPolicy_Resolve_OverridesRenormalized(t *testing.T) {
	p := NewPolicy(nil)
	w, err := p.Resolve(Weights{
		match.FactorSkills:     0.9,
		match.FactorExperience: 0.9,
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	assertSumsToOne(t, w)
	if w[match.FactorSkills] <= w[match.FactorAccessibility] {
		t.Fatalf("expected boosted skills weight to stay dominant after renormalization: %v", w)
	}
}

func TestPolicy_Resolve_NegativeRejected(t *testing.T) {
	p := NewPolicy(nil)
	_, err := p.Resolve(Weights{match.FactorCulture: -0.1})
	if !errors.Is(err, ErrNegativeWeight) {
		t.Fatalf("expected ErrNegativeWeight, got %v", err)
	}
}

func TestPolicy_Resolve_UnknownCategoryRejected(t *testing.T) {
	p := NewPolicy(nil)
	_, err := p.Resolve(Weights{match.FactorCategory("astrology"): 0.5})
	if !errors.Is(err, ErrUnknownFactor) {
		t.Fatalf("expected ErrUnknownFactor, got %v", err)
	}
}

func TestPolicy_Resolve_AllZeroRejected(t *testing.T) {
	p := NewPolicy(nil)
	zero := Weights{}
	for cat := range DefaultWeights() {
		zero[cat] = 0
	}
	_, err := p.Resolve(zero)
	if !errors.Is(err, ErrZeroWeightSum) {
		t.Fatalf("expected ErrZeroWeightSum, got %v", err)
	}
}

func assertSumsToOne(t *testing.T, w Weights) {
	t.Helper()
	var sum float64
	for _, v := range w {
		sum += v
	}
	if math.Abs(sum-1.0) > 1e-6 {
		t.Fatalf("expected weights to sum to 1.0 within 1e-6, got %v", sum)
	}
}
