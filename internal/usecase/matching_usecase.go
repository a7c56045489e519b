package usecase

import (
	"context"
	"errors"
	"time"

	"talent-match/internal/domain/match"
	"talent-match/internal/domain/matching"
	"talent-match/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultSingleTimeout = 2 * time.Second

type MatchRequest struct {
	CandidateID     uuid.UUID
	JobID           uuid.UUID
	WeightOverrides matching.Weights
}

type MatchingUsecase interface {
	Match(ctx context.Context, req MatchRequest) (match.Result, error)
	MatchPair(ctx context.Context, candidateID, jobID uuid.UUID, overrides matching.Weights) (match.Result, error)
	Get(ctx context.Context, id uuid.UUID) (match.Result, error)
	ListByJob(ctx context.Context, jobID uuid.UUID) ([]match.Result, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to match.Status) error
	Reopen(ctx context.Context, id uuid.UUID) error
}

type Matching struct {
	candidates repository.CandidateStore
	jobs       repository.JobStore
	matches    repository.MatchRepository
	engine     *matching.Engine
	timeout    time.Duration
	log        *zap.Logger
}

func NewMatchingUsecase(
	candidates repository.CandidateStore,
	jobs repository.JobStore,
	matches repository.MatchRepository,
	engine *matching.Engine,
	timeout time.Duration,
	log *zap.Logger,
) *Matching {
	if engine == nil {
		engine = matching.NewEngine(nil)
	}
	if timeout <= 0 {
		timeout = defaultSingleTimeout
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Matching{
		candidates: candidates,
		jobs:       jobs,
		matches:    matches,
		engine:     engine,
		timeout:    timeout,
		log:        log,
	}
}

// Match scores one pair synchronously. Scoring itself is CPU-bound and
// fast; the timeout bounds the record lookups.
func (u *Matching) Match(ctx context.Context, req MatchRequest) (match.Result, error) {
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	res, err := u.MatchPair(ctx, req.CandidateID, req.JobID, req.WeightOverrides)
	if errors.Is(err, context.DeadlineExceeded) {
		return match.Result{}, ErrMatchTimeout
	}
	return res, err
}

// MatchPair loads both records, evaluates the pair and persists the
// result under the versioned overwrite rules. Also the worker entry
// point for bulk batches.
func (u *Matching) MatchPair(ctx context.Context, candidateID, jobID uuid.UUID, overrides matching.Weights) (match.Result, error) {
	if candidateID == uuid.Nil || jobID == uuid.Nil {
		return match.Result{}, ErrInvalidCriteria
	}

	cand, err := u.candidates.Get(ctx, candidateID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return match.Result{}, ErrCandidateNotFound
		}
		return match.Result{}, err
	}

	j, err := u.jobs.Get(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return match.Result{}, ErrJobNotFound
		}
		return match.Result{}, err
	}

	res, err := u.engine.Evaluate(cand, j, overrides)
	if err != nil {
		u.log.Warn("weight resolution rejected",
			zap.String("candidate_id", candidateID.String()),
			zap.String("job_id", jobID.String()),
			zap.Error(err))
		return match.Result{}, ErrInvalidCriteria
	}

	saved, err := u.matches.Save(ctx, res)
	if err != nil {
		return match.Result{}, err
	}

	u.log.Debug("pair scored",
		zap.String("candidate_id", candidateID.String()),
		zap.String("job_id", jobID.String()),
		zap.Int("score", saved.Score),
		zap.Float64("confidence", saved.Confidence),
		zap.Int("version", saved.Version))
	return saved, nil
}

func (u *Matching) Get(ctx context.Context, id uuid.UUID) (match.Result, error) {
	res, err := u.matches.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return match.Result{}, ErrMatchNotFound
	}
	return res, err
}

func (u *Matching) ListByJob(ctx context.Context, jobID uuid.UUID) ([]match.Result, error) {
	if jobID == uuid.Nil {
		return nil, ErrJobNotFound
	}
	return u.matches.ListByJob(ctx, jobID)
}

func (u *Matching) UpdateStatus(ctx context.Context, id uuid.UUID, from, to match.Status) error {
	if !from.Valid() || !to.Valid() || from == to {
		return ErrInvalidStatus
	}
	err := u.matches.UpdateStatus(ctx, id, from, to)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return ErrMatchNotFound
	case errors.Is(err, repository.ErrStatusConflict):
		return ErrStatusConflict
	}
	return err
}

func (u *Matching) Reopen(ctx context.Context, id uuid.UUID) error {
	err := u.matches.Reopen(ctx, id)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return ErrMatchNotFound
	case errors.Is(err, repository.ErrStatusConflict):
		return ErrStatusConflict
	}
	return err
}
