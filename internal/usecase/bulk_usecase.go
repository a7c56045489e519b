package usecase

import (
	"context"

	"talent-match/internal/queue"

	"github.com/google/uuid"
)

type BulkMatchingUsecase interface {
	Submit(ctx context.Context, req queue.BulkRequest) (queue.Snapshot, error)
	SubmitSingle(ctx context.Context, req queue.SingleRequest) (queue.Snapshot, error)
	Get(ctx context.Context, id uuid.UUID) (queue.Snapshot, error)
	List(ctx context.Context) []queue.Snapshot
	Cancel(ctx context.Context, id uuid.UUID) error
}

// BulkMatching is a thin facade over the queue service so handlers stay
// decoupled from queue internals.
type BulkMatching struct {
	queue *queue.Service
}

func NewBulkMatchingUsecase(q *queue.Service) *BulkMatching {
	return &BulkMatching{queue: q}
}

func (u *BulkMatching) Submit(ctx context.Context, req queue.BulkRequest) (queue.Snapshot, error) {
	return u.queue.SubmitBulk(ctx, req)
}

func (u *BulkMatching) SubmitSingle(ctx context.Context, req queue.SingleRequest) (queue.Snapshot, error) {
	return u.queue.SubmitSingle(ctx, req)
}

func (u *BulkMatching) Get(ctx context.Context, id uuid.UUID) (queue.Snapshot, error) {
	return u.queue.Get(ctx, id)
}

func (u *BulkMatching) List(ctx context.Context) []queue.Snapshot {
	return u.queue.List(ctx)
}

func (u *BulkMatching) Cancel(ctx context.Context, id uuid.UUID) error {
	return u.queue.Cancel(ctx, id)
}
