package repository

import (
	"context"
	"time"

	"talent-match/internal/domain/candidate"
	"talent-match/internal/domain/job"

	"github.com/google/uuid"
)

// Short-TTL read-through decorators. Single-match latency is bounded by
// these lookups, so both stores sit behind the injected RecordCache.

type CachedCandidateStore struct {
	inner CandidateStore
	cache RecordCache
	ttl   time.Duration
}

func NewCachedCandidateStore(inner CandidateStore, cache RecordCache, ttl time.Duration) *CachedCandidateStore {
	return &CachedCandidateStore{inner: inner, cache: cache, ttl: ttl}
}

func (s *CachedCandidateStore) Get(ctx context.Context, id uuid.UUID) (candidate.Candidate, error) {
	key := "record:candidate:" + id.String()
	if s.cache != nil {
		var c candidate.Candidate
		if hit, err := s.cache.GetJSON(ctx, key, &c); err == nil && hit {
			return c, nil
		}
	}

	c, err := s.inner.Get(ctx, id)
	if err != nil {
		return candidate.Candidate{}, err
	}
	if s.cache != nil {
		_ = s.cache.SetJSON(ctx, key, c, s.ttl)
	}
	return c, nil
}

func (s *CachedCandidateStore) ListIDs(ctx context.Context) ([]uuid.UUID, error) {
	return s.inner.ListIDs(ctx)
}

type CachedJobStore struct {
	inner JobStore
	cache RecordCache
	ttl   time.Duration
}

func NewCachedJobStore(inner JobStore, cache RecordCache, ttl time.Duration) *CachedJobStore {
	return &CachedJobStore{inner: inner, cache: cache, ttl: ttl}
}

func (s *CachedJobStore) Get(ctx context.Context, id uuid.UUID) (job.Job, error) {
	key := "record:job:" + id.String()
	if s.cache != nil {
		var j job.Job
		if hit, err := s.cache.GetJSON(ctx, key, &j); err == nil && hit {
			return j, nil
		}
	}

	j, err := s.inner.Get(ctx, id)
	if err != nil {
		return job.Job{}, err
	}
	if s.cache != nil {
		_ = s.cache.SetJSON(ctx, key, j, s.ttl)
	}
	return j, nil
}
