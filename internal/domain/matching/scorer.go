package matching

import (
	"strings"

	"talent-match/internal/domain/candidate"
	"talent-match/internal/domain/job"
	"talent-match/internal/domain/match"
)

// DetailInsufficientData flags a factor that fell back to the neutral
// default because one side of the comparison carried no usable data.
const DetailInsufficientData = "insufficient data"

const neutralScore = 50

type FactorScore struct {
	Category match.FactorCategory
	Score    int
	Detail   string
	Positive bool
	Neutral  bool
}

// Scorer computes one compatibility dimension for a candidate/job pair.
// Implementations are pure: no I/O, no randomness, no shared state.
type Scorer interface {
	Category() match.FactorCategory
	Score(c candidate.Candidate, j job.Job) FactorScore
}

// DefaultScorers returns the full scorer set in canonical factor order.
func DefaultScorers() []Scorer {
	return []Scorer{
		SkillsScorer{},
		ExperienceScorer{},
		LocationScorer{},
		AccessibilityScorer{},
		CultureScorer{},
		CompensationScorer{},
	}
}

func neutralFactor(cat match.FactorCategory) FactorScore {
	return FactorScore{
		Category: cat,
		Score:    neutralScore,
		Detail:   DetailInsufficientData,
		Positive: false,
		Neutral:  true,
	}
}

func normalizeToken(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

func clampInt(v, minV, maxV int) int {
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}
