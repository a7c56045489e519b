package dto

import (
	"time"

	"talent-match/internal/queue"

	"github.com/google/uuid"
)

type PairFailureResponse struct {
	CandidateID uuid.UUID `json:"candidate_id"`
	JobID       uuid.UUID `json:"job_id"`
	Reason      string    `json:"reason"`
}

type QueueEntryResponse struct {
	ID                  uuid.UUID             `json:"id"`
	TenantID            string                `json:"tenant_id"`
	Kind                string                `json:"kind"`
	Priority            string                `json:"priority"`
	Status              string                `json:"status"`
	TotalJobs           int                   `json:"total_jobs"`
	ProcessedJobs       int                   `json:"processed_jobs"`
	TotalPairs          int                   `json:"total_pairs"`
	ProcessedPairs      int                   `json:"processed_pairs"`
	Progress            float64               `json:"progress"`
	EstimatedCompletion *time.Time            `json:"estimated_completion,omitempty"`
	Failures            []PairFailureResponse `json:"failures"`
	Results             []MatchResponse       `json:"results"`
	SubmittedAt         time.Time             `json:"submitted_at"`
	StartedAt           *time.Time            `json:"started_at,omitempty"`
	CompletedAt         *time.Time            `json:"completed_at,omitempty"`
}

func NewQueueEntryResponse(snap queue.Snapshot) QueueEntryResponse {
	out := QueueEntryResponse{
		ID:                  snap.ID,
		TenantID:            snap.TenantID,
		Kind:                string(snap.Kind),
		Priority:            string(snap.Priority),
		Status:              string(snap.Status),
		TotalJobs:           snap.TotalJobs,
		ProcessedJobs:       snap.ProcessedJobs,
		TotalPairs:          snap.TotalPairs,
		ProcessedPairs:      snap.ProcessedPairs,
		Progress:            snap.Progress,
		EstimatedCompletion: snap.EstimatedCompletion,
		Failures:            make([]PairFailureResponse, 0, len(snap.Failures)),
		Results:             NewMatchListResponse(snap.Results),
		SubmittedAt:         snap.SubmittedAt,
		StartedAt:           snap.StartedAt,
		CompletedAt:         snap.CompletedAt,
	}
	for _, f := range snap.Failures {
		out.Failures = append(out.Failures, PairFailureResponse{
			CandidateID: f.CandidateID,
			JobID:       f.JobID,
			Reason:      f.Reason,
		})
	}
	return out
}

func NewQueueEntryListResponse(snaps []queue.Snapshot) []QueueEntryResponse {
	out := make([]QueueEntryResponse, 0, len(snaps))
	for _, s := range snaps {
		out = append(out, NewQueueEntryResponse(s))
	}
	return out
}
