package queue

import (
	"sync"
	"time"

	"talent-match/internal/domain/match"
	"talent-match/internal/domain/matching"

	"github.com/google/uuid"
)

type Kind string

const (
	KindSingle Kind = "single"
	KindBulk   Kind = "bulk"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityNormal, PriorityHigh:
		return true
	}
	return false
}

// rank orders priority tiers for the dispatch heap. Higher runs first.
func (p Priority) rank() int {
	switch p {
	case PriorityHigh:
		return 2
	case PriorityNormal:
		return 1
	default:
		return 0
	}
}

type Status string

const (
	StatusQueued     Status = "queued"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
	StatusCancelled  Status = "cancelled"
)

func (s Status) Terminal() bool {
	switch s {
	case StatusCompleted, StatusFailed, StatusCancelled:
		return true
	}
	return false
}

// PairFailure records why a single (candidate, job) pair produced no
// result. Failures never abort the rest of the batch.
type PairFailure struct {
	CandidateID uuid.UUID `json:"candidate_id"`
	JobID       uuid.UUID `json:"job_id"`
	Reason      string    `json:"reason"`
}

// BulkRequest asks for every candidate in CandidateIDs (or, when empty,
// every known candidate) to be scored against every job in JobIDs.
type BulkRequest struct {
	TenantID           string
	JobIDs             []uuid.UUID
	CandidateIDs       []uuid.UUID
	WeightOverrides    matching.Weights
	Priority           Priority
	NotifyOnCompletion bool
}

// SingleRequest is the queued form of a single match. Callers that want
// a synchronous answer go through the matching usecase instead.
type SingleRequest struct {
	TenantID        string
	CandidateID     uuid.UUID
	JobID           uuid.UUID
	WeightOverrides matching.Weights
	Priority        Priority
}

// Snapshot is the caller-visible view of a queue entry.
type Snapshot struct {
	ID                  uuid.UUID      `json:"id"`
	TenantID            string         `json:"tenant_id"`
	Kind                Kind           `json:"kind"`
	Priority            Priority       `json:"priority"`
	Status              Status         `json:"status"`
	TotalJobs           int            `json:"total_jobs"`
	ProcessedJobs       int            `json:"processed_jobs"`
	TotalPairs          int            `json:"total_pairs"`
	ProcessedPairs      int            `json:"processed_pairs"`
	Progress            float64        `json:"progress"`
	EstimatedCompletion *time.Time     `json:"estimated_completion,omitempty"`
	Failures            []PairFailure  `json:"failures,omitempty"`
	Results             []match.Result `json:"results,omitempty"`
	SubmittedAt         time.Time      `json:"submitted_at"`
	StartedAt           *time.Time     `json:"started_at,omitempty"`
	CompletedAt         *time.Time     `json:"completed_at,omitempty"`
}

type pair struct {
	candidateID uuid.UUID
	jobID       uuid.UUID
}

type entry struct {
	mu sync.Mutex

	id       uuid.UUID
	tenantID string
	kind     Kind
	priority Priority
	seq      uint64
	notify   bool

	jobIDs       []uuid.UUID
	candidateIDs []uuid.UUID
	overrides    matching.Weights

	status    Status
	cancelled bool

	totalJobs    int
	totalPairs   int
	settledPairs int
	jobRemaining map[uuid.UUID]int

	processedJobs  int
	processedPairs int
	failures       []PairFailure
	results        []match.Result

	submittedAt time.Time
	startedAt   *time.Time
	completedAt *time.Time
}

func (e *entry) snapshotLocked() Snapshot {
	snap := Snapshot{
		ID:             e.id,
		TenantID:       e.tenantID,
		Kind:           e.kind,
		Priority:       e.priority,
		Status:         e.status,
		TotalJobs:      e.totalJobs,
		ProcessedJobs:  e.processedJobs,
		TotalPairs:     e.totalPairs,
		ProcessedPairs: e.processedPairs,
		SubmittedAt:    e.submittedAt,
		StartedAt:      e.startedAt,
		CompletedAt:    e.completedAt,
	}
	if len(e.failures) > 0 {
		snap.Failures = append([]PairFailure(nil), e.failures...)
	}
	if len(e.results) > 0 {
		snap.Results = append([]match.Result(nil), e.results...)
	}
	snap.Progress = e.progressLocked()
	snap.EstimatedCompletion = e.estimateLocked()
	return snap
}

func (e *entry) progressLocked() float64 {
	if e.status.Terminal() {
		if e.status == StatusCompleted {
			return 100
		}
		if e.totalPairs == 0 {
			return 0
		}
		return 100 * float64(e.settledPairs) / float64(e.totalPairs)
	}
	if e.totalPairs == 0 {
		return 0
	}
	return 100 * float64(e.settledPairs) / float64(e.totalPairs)
}

// estimateLocked projects completion time from the observed per-pair
// rate. Nil until at least one pair has settled.
func (e *entry) estimateLocked() *time.Time {
	if e.status.Terminal() || e.startedAt == nil || e.settledPairs == 0 {
		return nil
	}
	remaining := e.totalPairs - e.settledPairs
	if remaining <= 0 {
		return nil
	}
	elapsed := time.Since(*e.startedAt)
	perPair := elapsed / time.Duration(e.settledPairs)
	eta := time.Now().Add(perPair * time.Duration(remaining))
	return &eta
}
