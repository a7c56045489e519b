package matching

import (
	"fmt"
	"math"

	"talent-match/internal/domain/candidate"
	"talent-match/internal/domain/job"
	"talent-match/internal/domain/match"
)

// belowMinimumPenalty halves the proportional score when the candidate sits
// under the job's hard minimum.
const belowMinimumPenalty = 0.5

type ExperienceScorer struct{}

func (ExperienceScorer) Category() match.FactorCategory { return match.FactorExperience }

func (ExperienceScorer) Score(c candidate.Candidate, j job.Job) FactorScore {
	target := j.TargetYears
	if target <= 0 {
		return neutralFactor(match.FactorExperience)
	}

	minYears := j.MinYears
	if minYears > target {
		minYears = target
	}

	years := c.YearsExperience
	if years < 0 {
		years = 0
	}

	// At or above the target the factor is saturated: extra seniority adds
	// nothing, which keeps extreme over-qualification from dominating.
	if years >= target {
		return FactorScore{
			Category: match.FactorExperience,
			Score:    100,
			Detail:   fmt.Sprintf("%d years meets the %d-year target", years, target),
			Positive: true,
		}
	}

	ratio := float64(years) / float64(target)
	raw := 100 * ratio
	detail := fmt.Sprintf("%d of %d target years", years, target)
	if minYears > 0 && years < minYears {
		raw *= belowMinimumPenalty
		detail = fmt.Sprintf("%d years is below the %d-year minimum (target %d)", years, minYears, target)
	}

	score := clampInt(int(math.Round(raw)), 0, 100)
	return FactorScore{
		Category: match.FactorExperience,
		Score:    score,
		Detail:   detail,
		Positive: score >= neutralScore,
	}
}
