package matching

import (
	"fmt"
	"math"

	"talent-match/internal/domain/candidate"
	"talent-match/internal/domain/job"
	"talent-match/internal/domain/match"
)

const (
	// zeroCoverageFloor applies when none of the declared needs are covered
	// and the job offers no remote or flexible arrangement at all.
	zeroCoverageFloor = 5

	// zeroCoverageWithOverride applies when coverage is zero but a remote or
	// flexible arrangement exists that may partially compensate.
	zeroCoverageWithOverride = 40
)

type AccessibilityScorer struct{}

func (AccessibilityScorer) Category() match.FactorCategory { return match.FactorAccessibility }

func (AccessibilityScorer) Score(c candidate.Candidate, j job.Job) FactorScore {
	if len(c.AccommodationNeeds) == 0 {
		return FactorScore{
			Category: match.FactorAccessibility,
			Score:    100,
			Detail:   "no declared accommodation needs",
			Positive: true,
		}
	}

	features := make(map[string]struct{}, len(j.AccessibilityFeatures))
	for _, f := range j.AccessibilityFeatures {
		features[normalizeToken(string(f))] = struct{}{}
	}

	flexOverride := jobRemoteCompatible(j)

	covered := 0
	for _, need := range c.AccommodationNeeds {
		key := normalizeToken(string(need))
		if _, ok := features[key]; ok {
			covered++
			continue
		}
		if flexOverride && flexibleWorkCovers(need) {
			covered++
		}
	}

	total := len(c.AccommodationNeeds)
	score := clampInt(int(math.Round(100*float64(covered)/float64(total))), 0, 100)
	detail := fmt.Sprintf("covered %d of %d accommodation needs", covered, total)

	if covered == 0 {
		if flexOverride {
			score = zeroCoverageWithOverride
			detail = "no declared coverage, job offers a remote or flexible arrangement"
		} else {
			score = zeroCoverageFloor
			detail = "declared accommodation needs are not covered and no remote or flexible option exists"
		}
	}

	return FactorScore{
		Category: match.FactorAccessibility,
		Score:    score,
		Detail:   detail,
		Positive: score >= neutralScore,
	}
}

// flexibleWorkCovers reports whether a remote or flexible work arrangement
// satisfies the need even without an explicitly declared feature.
func flexibleWorkCovers(need candidate.AccommodationNeed) bool {
	switch need {
	case candidate.NeedFlexibleSchedule, candidate.NeedRemoteWork, candidate.NeedQuietWorkspace:
		return true
	}
	return false
}
