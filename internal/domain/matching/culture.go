package matching

import (
	"fmt"
	"math"

	"talent-match/internal/domain/candidate"
	"talent-match/internal/domain/job"
	"talent-match/internal/domain/match"
)

type CultureScorer struct{}

func (CultureScorer) Category() match.FactorCategory { return match.FactorCulture }

func (CultureScorer) Score(c candidate.Candidate, j job.Job) FactorScore {
	if len(j.CultureTags) == 0 || len(c.CultureTags) == 0 {
		return neutralFactor(match.FactorCulture)
	}

	have := make(map[string]struct{}, len(c.CultureTags))
	for _, t := range c.CultureTags {
		key := normalizeToken(t)
		if key == "" {
			continue
		}
		have[key] = struct{}{}
	}

	shared := 0
	total := 0
	for _, t := range j.CultureTags {
		key := normalizeToken(t)
		if key == "" {
			continue
		}
		total++
		if _, ok := have[key]; ok {
			shared++
		}
	}
	if total == 0 {
		return neutralFactor(match.FactorCulture)
	}

	score := clampInt(int(math.Round(100*float64(shared)/float64(total))), 0, 100)
	return FactorScore{
		Category: match.FactorCulture,
		Score:    score,
		Detail:   fmt.Sprintf("shares %d of %d culture tags", shared, total),
		Positive: score >= neutralScore,
	}
}
