package repository

import (
	"context"
	"errors"

	"talent-match/internal/domain/match"

	"github.com/google/uuid"
)

var (
	ErrNotFound       = errors.New("record not found")
	ErrStatusConflict = errors.New("status changed concurrently")
)

// MatchRepository stores scored match results with versioned overwrite
// rules: a later scoring pass replaces the latest version in place only
// while that version is still pending. Reviewed, accepted and rejected
// results stay untouched; the new computation lands as a superseding
// version instead. Feedback is append-only and never mutates a score.
type MatchRepository interface {
	Save(ctx context.Context, res match.Result) (match.Result, error)
	Get(ctx context.Context, id uuid.UUID) (match.Result, error)
	Latest(ctx context.Context, candidateID, jobID uuid.UUID) (match.Result, error)
	ListByJob(ctx context.Context, jobID uuid.UUID) ([]match.Result, error)
	ListAll(ctx context.Context) ([]match.Result, error)

	// UpdateStatus performs a compare-and-swap on the result status and
	// fails with ErrStatusConflict when the stored status is not `from`.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to match.Status) error

	// Reopen moves a guarded result back to pending. Administrative action.
	Reopen(ctx context.Context, id uuid.UUID) error

	AppendFeedback(ctx context.Context, fb match.Feedback) (match.Feedback, error)
	ListFeedback(ctx context.Context) ([]match.Feedback, error)
}
