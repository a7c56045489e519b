package repository

import (
	"context"
	"sort"
	"sync"

	"talent-match/internal/domain/candidate"
	"talent-match/internal/domain/job"

	"github.com/google/uuid"
)

type MemoryCandidateStore struct {
	mu    sync.RWMutex
	items map[uuid.UUID]candidate.Candidate
}

func NewMemoryCandidateStore() *MemoryCandidateStore {
	return &MemoryCandidateStore{items: make(map[uuid.UUID]candidate.Candidate)}
}

func (s *MemoryCandidateStore) Put(c candidate.Candidate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[c.ID] = c
}

func (s *MemoryCandidateStore) Get(_ context.Context, id uuid.UUID) (candidate.Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.items[id]
	if !ok {
		return candidate.Candidate{}, ErrNotFound
	}
	return c, nil
}

func (s *MemoryCandidateStore) ListIDs(_ context.Context) ([]uuid.UUID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]uuid.UUID, 0, len(s.items))
	for id := range s.items {
		out = append(out, id)
	}
	sort.Slice(out, func(i, k int) bool { return out[i].String() < out[k].String() })
	return out, nil
}

type MemoryJobStore struct {
	mu    sync.RWMutex
	items map[uuid.UUID]job.Job
}

func NewMemoryJobStore() *MemoryJobStore {
	return &MemoryJobStore{items: make(map[uuid.UUID]job.Job)}
}

func (s *MemoryJobStore) Put(j job.Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[j.ID] = j
}

func (s *MemoryJobStore) Get(_ context.Context, id uuid.UUID) (job.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	j, ok := s.items[id]
	if !ok {
		return job.Job{}, ErrNotFound
	}
	return j, nil
}
