package matching

import (
	"fmt"
	"math"
	"sort"

	"talent-match/internal/domain/match"
)

const maxReasons = 3

var recommendationTemplates = map[match.FactorCategory]string{
	match.FactorSkills:        "close the missing skill gaps or highlight adjacent, transferable experience",
	match.FactorExperience:    "emphasize directly relevant project history to offset the experience gap",
	match.FactorLocation:      "explore remote or hybrid arrangements to bridge the location gap",
	match.FactorAccessibility: "review workplace accommodations: declared accessibility needs are not covered by this role",
	match.FactorCulture:       "surface shared working-style preferences during screening",
	match.FactorCompensation:  "align compensation expectations before moving forward",
}

// explain derives reasons from the highest-impact factors and a single
// recommendation from the weakest one. Deterministic for identical inputs.
func explain(factors []match.Factor) (reasons, recommendations []string) {
	type impactFactor struct {
		f      match.Factor
		impact float64
	}

	ranked := make([]impactFactor, 0, len(factors))
	for _, f := range factors {
		impact := f.Weight * (float64(f.RawScore) - neutralScore)
		if impact == 0 {
			continue
		}
		ranked = append(ranked, impactFactor{f: f, impact: impact})
	}

	sort.SliceStable(ranked, func(i, k int) bool {
		return math.Abs(ranked[i].impact) > math.Abs(ranked[k].impact)
	})
	if len(ranked) > maxReasons {
		ranked = ranked[:maxReasons]
	}

	// Positive drivers first, then the most damaging negatives.
	sort.SliceStable(ranked, func(i, k int) bool {
		if (ranked[i].impact > 0) != (ranked[k].impact > 0) {
			return ranked[i].impact > 0
		}
		if ranked[i].impact > 0 {
			return ranked[i].impact > ranked[k].impact
		}
		return ranked[i].impact < ranked[k].impact
	})

	reasons = make([]string, 0, len(ranked))
	for _, rf := range ranked {
		if rf.impact > 0 {
			reasons = append(reasons, fmt.Sprintf("strong %s fit: %s", rf.f.Category, rf.f.Detail))
		} else {
			reasons = append(reasons, fmt.Sprintf("weak %s fit: %s", rf.f.Category, rf.f.Detail))
		}
	}

	if weakest, ok := weakestFactor(factors); ok {
		if tpl, found := recommendationTemplates[weakest.Category]; found {
			recommendations = append(recommendations, tpl)
		}
	}
	return reasons, recommendations
}

// weakestFactor picks the lowest raw score below the neutral midpoint,
// breaking ties by canonical factor order. Neutral fallbacks are skipped:
// missing data is not actionable advice.
func weakestFactor(factors []match.Factor) (match.Factor, bool) {
	var weakest match.Factor
	found := false
	for _, f := range factors {
		if f.Detail == DetailInsufficientData {
			continue
		}
		if f.RawScore >= neutralScore {
			continue
		}
		if !found || f.RawScore < weakest.RawScore {
			weakest = f
			found = true
		}
	}
	return weakest, found
}
