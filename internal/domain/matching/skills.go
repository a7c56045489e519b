package matching

import (
	"fmt"
	"math"
	"strings"

	"talent-match/internal/domain/candidate"
	"talent-match/internal/domain/job"
	"talent-match/internal/domain/match"
)

// verifiedBonus is added to a matched skill's contribution when the
// candidate's proficiency claim has been verified. Contributions cap at 1.0.
const verifiedBonus = 0.10

type SkillsScorer struct{}

func (SkillsScorer) Category() match.FactorCategory { return match.FactorSkills }

func (SkillsScorer) Score(c candidate.Candidate, j job.Job) FactorScore {
	if len(j.RequiredSkills) == 0 {
		return neutralFactor(match.FactorSkills)
	}

	byName := make(map[string]candidate.Skill, len(c.Skills))
	for _, s := range c.Skills {
		key := normalizeToken(s.Name)
		if key == "" {
			continue
		}
		byName[key] = s
	}

	var total float64
	matched := 0
	missing := make([]string, 0)

	for _, req := range j.RequiredSkills {
		key := normalizeToken(req.Name)
		if key == "" {
			continue
		}
		cs, ok := byName[key]
		if !ok {
			missing = append(missing, req.Name)
			continue
		}
		contrib := float64(clampInt(cs.Proficiency, 0, 100)) / 100.0
		if cs.Verified {
			contrib += verifiedBonus
		}
		if contrib > 1 {
			contrib = 1
		}
		total += contrib
		matched++
	}

	score := clampInt(int(math.Round(100*total/float64(len(j.RequiredSkills)))), 0, 100)

	detail := fmt.Sprintf("matched %d of %d required skills", matched, len(j.RequiredSkills))
	if len(missing) > 0 {
		detail += "; missing: " + strings.Join(missing, ", ")
	}

	return FactorScore{
		Category: match.FactorSkills,
		Score:    score,
		Detail:   detail,
		Positive: score >= neutralScore,
	}
}
