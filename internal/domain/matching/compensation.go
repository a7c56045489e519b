package matching

import (
	"fmt"
	"math"

	"talent-match/internal/domain/candidate"
	"talent-match/internal/domain/job"
	"talent-match/internal/domain/match"
)

type CompensationScorer struct{}

func (CompensationScorer) Category() match.FactorCategory { return match.FactorCompensation }

func (CompensationScorer) Score(c candidate.Candidate, j job.Job) FactorScore {
	want := c.Compensation
	offer := j.Compensation
	if emptyRange(want.Min, want.Max) || emptyRange(offer.Min, offer.Max) {
		return neutralFactor(match.FactorCompensation)
	}

	// Offered band fully covers the expectation.
	if offer.Min <= want.Min && offer.Max >= want.Max {
		return FactorScore{
			Category: match.FactorCompensation,
			Score:    100,
			Detail:   "offered range fully covers the expected range",
			Positive: true,
		}
	}

	low := want.Min
	if offer.Min > low {
		low = offer.Min
	}
	high := want.Max
	if offer.Max < high {
		high = offer.Max
	}
	overlap := high - low
	if overlap <= 0 {
		detail := "offered range is below the expected range"
		if offer.Min > want.Max {
			detail = "offered range is above the expected range"
		}
		return FactorScore{
			Category: match.FactorCompensation,
			Score:    0,
			Detail:   detail,
			Positive: false,
		}
	}

	denom := want.Max - want.Min
	if denom <= 0 {
		// Point expectation inside the offered band.
		return FactorScore{
			Category: match.FactorCompensation,
			Score:    100,
			Detail:   "expectation falls inside the offered range",
			Positive: true,
		}
	}

	score := clampInt(int(math.Round(100*float64(overlap)/float64(denom))), 0, 100)
	return FactorScore{
		Category: match.FactorCompensation,
		Score:    score,
		Detail:   fmt.Sprintf("offered range covers %d%% of the expected range", score),
		Positive: score >= neutralScore,
	}
}

func emptyRange(minV, maxV int64) bool {
	return minV <= 0 && maxV <= 0
}
