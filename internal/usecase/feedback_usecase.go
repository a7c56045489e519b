package usecase

import (
	"context"
	"errors"

	"talent-match/internal/domain/match"
	"talent-match/internal/repository"

	"go.uber.org/zap"
)

type FeedbackUsecase interface {
	Submit(ctx context.Context, fb match.Feedback) (match.Feedback, error)
	List(ctx context.Context) ([]match.Feedback, error)
}

type Feedback struct {
	matches repository.MatchRepository
	cache   StatsCache
	log     *zap.Logger
}

func NewFeedbackUsecase(matches repository.MatchRepository, cache StatsCache, log *zap.Logger) *Feedback {
	if log == nil {
		log = zap.NewNop()
	}
	return &Feedback{matches: matches, cache: cache, log: log}
}

// Submit appends an outcome record. Feedback never mutates the score it
// refers to, it only feeds the rolling statistics, so the cached stats
// are invalidated here.
func (u *Feedback) Submit(ctx context.Context, fb match.Feedback) (match.Feedback, error) {
	if !fb.Outcome.Valid() {
		return match.Feedback{}, ErrInvalidFeedback
	}
	if fb.Rating != 0 && (fb.Rating < 1 || fb.Rating > 5) {
		return match.Feedback{}, ErrInvalidFeedback
	}

	saved, err := u.matches.AppendFeedback(ctx, fb)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return match.Feedback{}, ErrMatchNotFound
		}
		return match.Feedback{}, err
	}

	if u.cache != nil {
		if err := u.cache.Delete(ctx, statsCacheKey); err != nil {
			u.log.Warn("stats cache invalidation failed", zap.Error(err))
		}
	}

	u.log.Info("feedback recorded",
		zap.String("match_id", saved.MatchID.String()),
		zap.String("outcome", string(saved.Outcome)))
	return saved, nil
}

func (u *Feedback) List(ctx context.Context) ([]match.Feedback, error) {
	return u.matches.ListFeedback(ctx)
}
