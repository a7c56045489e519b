package usecase

import (
	"context"
	"time"
)

// StatsCache fronts the aggregated statistics with a short TTL so the
// recomputation never sits on the hot path. Implemented by the redis
// cache; nil-safe bypass when the cache is down.
type StatsCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
