package usecase

import (
	"context"
	"fmt"
	"math"
	"time"

	"talent-match/internal/domain/match"
	"talent-match/internal/domain/matching"
	"talent-match/internal/repository"

	"go.uber.org/zap"
)

const (
	statsCacheKey       = "matching:stats"
	defaultStatsTTL     = 5 * time.Minute
	defaultSuccessScore = 70
)

type StatsUsecase interface {
	Stats(ctx context.Context) (match.Stats, error)
	Insights(ctx context.Context) ([]match.Insight, error)
}

// Stats recomputes rolling aggregates from repository outcomes. The
// computation is eventually consistent and cached; it never blocks
// match submission.
type Stats struct {
	matches   repository.MatchRepository
	cache     StatsCache
	threshold int
	ttl       time.Duration
	log       *zap.Logger
}

func NewStatsUsecase(matches repository.MatchRepository, cache StatsCache, threshold int, ttl time.Duration, log *zap.Logger) *Stats {
	if threshold <= 0 || threshold > 100 {
		threshold = defaultSuccessScore
	}
	if ttl <= 0 {
		ttl = defaultStatsTTL
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Stats{matches: matches, cache: cache, threshold: threshold, ttl: ttl, log: log}
}

func (u *Stats) Stats(ctx context.Context) (match.Stats, error) {
	if u.cache != nil {
		var cached match.Stats
		if hit, err := u.cache.GetJSON(ctx, statsCacheKey, &cached); err == nil && hit {
			return cached, nil
		}
	}

	results, err := u.matches.ListAll(ctx)
	if err != nil {
		return match.Stats{}, err
	}
	feedback, err := u.matches.ListFeedback(ctx)
	if err != nil {
		return match.Stats{}, err
	}

	stats := u.compute(ctx, results, feedback)

	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, statsCacheKey, stats, u.ttl); err != nil {
			u.log.Warn("stats cache write failed", zap.Error(err))
		}
	}
	return stats, nil
}

func (u *Stats) compute(ctx context.Context, results []match.Result, feedback []match.Feedback) match.Stats {
	stats := match.Stats{
		TotalMatches: len(results),
		GeneratedAt:  time.Now().UTC(),
	}

	if len(results) > 0 {
		var scoreSum, confSum float64
		for _, r := range results {
			scoreSum += float64(r.Score)
			confSum += r.Confidence
		}
		stats.AverageScore = round2(scoreSum / float64(len(results)))
		stats.AverageConfidence = round2(confSum / float64(len(results)))
	}

	// Success rate and classifier quality are computed over decided
	// outcomes only. The predicted label is score >= threshold, the
	// actual label is a hire.
	var hired, decided int
	var tp, fp, fn int
	for _, fb := range feedback {
		if !fb.Outcome.Decided() {
			continue
		}
		decided++
		isHire := fb.Outcome == match.OutcomeHired
		if isHire {
			hired++
		}

		res, err := u.matches.Get(ctx, fb.MatchID)
		if err != nil {
			continue
		}
		predicted := res.Score >= u.threshold
		switch {
		case predicted && isHire:
			tp++
		case predicted && !isHire:
			fp++
		case !predicted && isHire:
			fn++
		}
	}

	stats.DecidedOutcomes = decided
	if decided > 0 {
		stats.SuccessRate = round2(float64(hired) / float64(decided))
	}
	if tp+fp > 0 {
		stats.Precision = round2(float64(tp) / float64(tp+fp))
	}
	if tp+fn > 0 {
		stats.Recall = round2(float64(tp) / float64(tp+fn))
	}
	if stats.Precision+stats.Recall > 0 {
		stats.F1 = round2(2 * stats.Precision * stats.Recall / (stats.Precision + stats.Recall))
	}
	return stats
}

// Insights summarizes which factors drive or drag the current match
// population, skipping factors that had no usable data.
func (u *Stats) Insights(ctx context.Context) ([]match.Insight, error) {
	results, err := u.matches.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	sums := make(map[match.FactorCategory]float64)
	counts := make(map[match.FactorCategory]int)
	for _, r := range results {
		for _, f := range r.Factors {
			if f.Detail == matching.DetailInsufficientData {
				continue
			}
			sums[f.Category] += float64(f.RawScore)
			counts[f.Category]++
		}
	}

	out := make([]match.Insight, 0, len(match.FactorOrder))
	for _, cat := range match.FactorOrder {
		n := counts[cat]
		if n == 0 {
			continue
		}
		avg := round2(sums[cat] / float64(n))
		out = append(out, match.Insight{
			Category:   cat,
			Message:    insightMessage(cat, avg),
			AverageRaw: avg,
			SampleSize: n,
		})
	}
	return out, nil
}

func insightMessage(cat match.FactorCategory, avg float64) string {
	switch {
	case avg >= 70:
		return fmt.Sprintf("%s alignment is a strong driver across current matches (avg %.0f)", cat, avg)
	case avg < 40:
		return fmt.Sprintf("%s alignment is dragging scores down (avg %.0f)", cat, avg)
	default:
		return fmt.Sprintf("%s alignment is middling (avg %.0f)", cat, avg)
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
