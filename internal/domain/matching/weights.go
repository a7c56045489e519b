package matching

import (
	"errors"
	"fmt"
	"math"

	"talent-match/internal/domain/match"
)

var (
	ErrNegativeWeight = errors.New("negative factor weight")
	ErrZeroWeightSum  = errors.New("factor weights sum to zero")
	ErrUnknownFactor  = errors.New("unknown factor category")
)

// Weights maps factor categories to their share of the overall score.
type Weights map[match.FactorCategory]float64

// DefaultWeights is the tunable baseline vector. Overrides merge on top of
// it and the merged result is renormalized to sum to 1.0.
func DefaultWeights() Weights {
	return Weights{
		match.FactorSkills:        0.30,
		match.FactorExperience:    0.25,
		match.FactorAccessibility: 0.20,
		match.FactorLocation:      0.10,
		match.FactorCulture:       0.10,
		match.FactorCompensation:  0.05,
	}
}

// Policy resolves effective weight vectors from defaults plus per-request
// overrides.
type Policy struct {
	defaults Weights
}

func NewPolicy(defaults Weights) *Policy {
	if len(defaults) == 0 {
		defaults = DefaultWeights()
	}
	return &Policy{defaults: defaults}
}

// Resolve merges overrides over the defaults, rejects negative or unknown
// entries, and renormalizes proportionally so the result sums to 1.0.
func (p *Policy) Resolve(overrides Weights) (Weights, error) {
	merged := make(Weights, len(p.defaults))
	for cat, w := range p.defaults {
		merged[cat] = w
	}

	for cat, w := range overrides {
		if _, ok := merged[cat]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownFactor, cat)
		}
		if w < 0 {
			return nil, fmt.Errorf("%w: %s=%v", ErrNegativeWeight, cat, w)
		}
		merged[cat] = w
	}

	var sum float64
	for _, w := range merged {
		sum += w
	}
	if sum <= 0 || math.IsNaN(sum) || math.IsInf(sum, 0) {
		return nil, ErrZeroWeightSum
	}

	for cat, w := range merged {
		merged[cat] = w / sum
	}
	return merged, nil
}
