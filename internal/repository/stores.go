package repository

import (
	"context"
	"time"

	"talent-match/internal/domain/candidate"
	"talent-match/internal/domain/job"

	"github.com/google/uuid"
)

// CandidateStore and JobStore are read-only views over the external
// profile storage. The matching engine only ever reads snapshots.
type CandidateStore interface {
	Get(ctx context.Context, id uuid.UUID) (candidate.Candidate, error)
	ListIDs(ctx context.Context) ([]uuid.UUID, error)
}

type JobStore interface {
	Get(ctx context.Context, id uuid.UUID) (job.Job, error)
}

// RecordCache is the injected short-TTL cache in front of the stores.
// Implemented by the redis cache; a nil-safe bypass keeps lookups working
// when the cache is down.
type RecordCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
