package matching

import (
	"fmt"

	"talent-match/internal/domain/candidate"
	"talent-match/internal/domain/job"
	"talent-match/internal/domain/match"
)

const sameRegionScore = 60

type LocationScorer struct{}

func (LocationScorer) Category() match.FactorCategory { return match.FactorLocation }

func (LocationScorer) Score(c candidate.Candidate, j job.Job) FactorScore {
	if candidateRemoteCompatible(c) && jobRemoteCompatible(j) {
		return FactorScore{
			Category: match.FactorLocation,
			Score:    100,
			Detail:   "remote-compatible work modes on both sides",
			Positive: true,
		}
	}

	cCity := normalizeToken(c.Location.City)
	jCity := normalizeToken(j.Location.City)
	cRegion := normalizeToken(c.Location.Region)
	jRegion := normalizeToken(j.Location.Region)

	if cCity == "" && cRegion == "" {
		return neutralFactor(match.FactorLocation)
	}
	if jCity == "" && jRegion == "" {
		return neutralFactor(match.FactorLocation)
	}

	if cCity != "" && cCity == jCity {
		return FactorScore{
			Category: match.FactorLocation,
			Score:    100,
			Detail:   fmt.Sprintf("both located in %s", j.Location.City),
			Positive: true,
		}
	}

	if cRegion != "" && cRegion == jRegion {
		return FactorScore{
			Category: match.FactorLocation,
			Score:    sameRegionScore,
			Detail:   fmt.Sprintf("same region (%s), different city", j.Location.Region),
			Positive: true,
		}
	}

	return FactorScore{
		Category: match.FactorLocation,
		Score:    0,
		Detail:   "no location overlap and no shared remote option",
		Positive: false,
	}
}

func candidateRemoteCompatible(c candidate.Candidate) bool {
	for _, m := range c.WorkModes {
		switch m {
		case candidate.WorkModeRemote, candidate.WorkModeHybrid, candidate.WorkModeFlexible:
			return true
		}
	}
	return false
}

func jobRemoteCompatible(j job.Job) bool {
	for _, m := range j.WorkModes {
		switch m {
		case job.WorkModeRemote, job.WorkModeHybrid, job.WorkModeFlexible:
			return true
		}
	}
	return false
}
