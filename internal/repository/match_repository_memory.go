package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"talent-match/internal/domain/match"

	"github.com/google/uuid"
)

type pairKey struct {
	candidateID uuid.UUID
	jobID       uuid.UUID
}

// MemoryMatchRepository keeps all versions per (candidate, job) pair in
// process memory. Used by the test suites and as a cache-friendly default
// when no database is configured.
type MemoryMatchRepository struct {
	mu       sync.RWMutex
	versions map[pairKey][]match.Result
	byID     map[uuid.UUID]pairKey
	feedback []match.Feedback
}

func NewMemoryMatchRepository() *MemoryMatchRepository {
	return &MemoryMatchRepository{
		versions: make(map[pairKey][]match.Result),
		byID:     make(map[uuid.UUID]pairKey),
	}
}

func (r *MemoryMatchRepository) Save(_ context.Context, res match.Result) (match.Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	key := pairKey{candidateID: res.CandidateID, jobID: res.JobID}
	chain := r.versions[key]

	if len(chain) == 0 {
		res.ID = uuid.New()
		res.Version = 1
		res.PreviousID = nil
		res.CreatedAt = now
		res.UpdatedAt = now
		r.versions[key] = []match.Result{res}
		r.byID[res.ID] = key
		return res, nil
	}

	latest := chain[len(chain)-1]
	if latest.Status == match.StatusPending {
		res.ID = latest.ID
		res.Version = latest.Version
		res.PreviousID = latest.PreviousID
		res.CreatedAt = latest.CreatedAt
		res.UpdatedAt = now
		res.Status = match.StatusPending
		chain[len(chain)-1] = res
		return res, nil
	}

	prevID := latest.ID
	res.ID = uuid.New()
	res.Version = latest.Version + 1
	res.PreviousID = &prevID
	res.CreatedAt = now
	res.UpdatedAt = now
	res.Status = match.StatusPending
	r.versions[key] = append(chain, res)
	r.byID[res.ID] = key
	return res, nil
}

func (r *MemoryMatchRepository) Get(_ context.Context, id uuid.UUID) (match.Result, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.getLocked(id)
}

func (r *MemoryMatchRepository) getLocked(id uuid.UUID) (match.Result, error) {
	key, ok := r.byID[id]
	if !ok {
		return match.Result{}, ErrNotFound
	}
	for _, v := range r.versions[key] {
		if v.ID == id {
			return v, nil
		}
	}
	return match.Result{}, ErrNotFound
}

func (r *MemoryMatchRepository) Latest(_ context.Context, candidateID, jobID uuid.UUID) (match.Result, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	chain := r.versions[pairKey{candidateID: candidateID, jobID: jobID}]
	if len(chain) == 0 {
		return match.Result{}, ErrNotFound
	}
	return chain[len(chain)-1], nil
}

func (r *MemoryMatchRepository) ListByJob(_ context.Context, jobID uuid.UUID) ([]match.Result, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]match.Result, 0)
	for key, chain := range r.versions {
		if key.jobID != jobID || len(chain) == 0 {
			continue
		}
		out = append(out, chain[len(chain)-1])
	}
	sort.SliceStable(out, func(i, k int) bool {
		if out[i].Score != out[k].Score {
			return out[i].Score > out[k].Score
		}
		return out[i].CandidateID.String() < out[k].CandidateID.String()
	})
	return out, nil
}

func (r *MemoryMatchRepository) ListAll(_ context.Context) ([]match.Result, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]match.Result, 0)
	for _, chain := range r.versions {
		if len(chain) == 0 {
			continue
		}
		out = append(out, chain[len(chain)-1])
	}
	sort.SliceStable(out, func(i, k int) bool {
		return out[i].ID.String() < out[k].ID.String()
	})
	return out, nil
}

func (r *MemoryMatchRepository) UpdateStatus(_ context.Context, id uuid.UUID, from, to match.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	chain := r.versions[key]
	for i, v := range chain {
		if v.ID != id {
			continue
		}
		if v.Status != from {
			return ErrStatusConflict
		}
		v.Status = to
		v.UpdatedAt = time.Now().UTC()
		chain[i] = v
		return nil
	}
	return ErrNotFound
}

func (r *MemoryMatchRepository) Reopen(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	chain := r.versions[key]
	for i, v := range chain {
		if v.ID != id {
			continue
		}
		if !v.Status.Guarded() {
			return ErrStatusConflict
		}
		v.Status = match.StatusPending
		v.UpdatedAt = time.Now().UTC()
		chain[i] = v
		return nil
	}
	return ErrNotFound
}

func (r *MemoryMatchRepository) AppendFeedback(_ context.Context, fb match.Feedback) (match.Feedback, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[fb.MatchID]; !ok {
		return match.Feedback{}, ErrNotFound
	}
	if fb.ID == uuid.Nil {
		fb.ID = uuid.New()
	}
	if fb.CreatedAt.IsZero() {
		fb.CreatedAt = time.Now().UTC()
	}
	r.feedback = append(r.feedback, fb)
	return fb, nil
}

func (r *MemoryMatchRepository) ListFeedback(_ context.Context) ([]match.Feedback, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]match.Feedback, len(r.feedback))
	copy(out, r.feedback)
	return out, nil
}
