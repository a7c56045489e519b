package matching

import (
	"talent-match/internal/domain/candidate"
	"talent-match/internal/domain/job"
	"talent-match/internal/domain/match"
)

// Engine runs the full scoring pass for one candidate/job pair: resolve
// weights, score every factor, aggregate, explain. The returned result has
// no identity or timestamps; the repository assigns those on save, which
// keeps Evaluate deterministic for identical inputs.
type Engine struct {
	policy  *Policy
	scorers []Scorer
}

func NewEngine(policy *Policy, scorers ...Scorer) *Engine {
	if policy == nil {
		policy = NewPolicy(nil)
	}
	if len(scorers) == 0 {
		scorers = DefaultScorers()
	}
	return &Engine{policy: policy, scorers: scorers}
}

func (e *Engine) Policy() *Policy { return e.policy }

func (e *Engine) Evaluate(c candidate.Candidate, j job.Job, overrides Weights) (match.Result, error) {
	weights, err := e.policy.Resolve(overrides)
	if err != nil {
		return match.Result{}, err
	}

	scores := make([]FactorScore, 0, len(e.scorers))
	factors := make([]match.Factor, 0, len(e.scorers))
	for _, s := range e.scorers {
		fs := s.Score(c, j)
		scores = append(scores, fs)
		factors = append(factors, match.Factor{
			Category: fs.Category,
			Weight:   weights[fs.Category],
			RawScore: fs.Score,
			Detail:   fs.Detail,
			Positive: fs.Positive,
		})
	}

	score, confidence := aggregate(scores, weights)
	reasons, recommendations := explain(factors)

	return match.Result{
		CandidateID:     c.ID,
		JobID:           j.ID,
		Score:           score,
		Confidence:      confidence,
		Factors:         factors,
		Reasons:         reasons,
		Recommendations: recommendations,
		Status:          match.StatusPending,
	}, nil
}
