package dto

import (
	"time"

	"talent-match/internal/domain/match"

	"github.com/google/uuid"
)

type FactorResponse struct {
	Category string  `json:"category"`
	Weight   float64 `json:"weight"`
	RawScore int     `json:"raw_score"`
	Detail   string  `json:"detail"`
	Positive bool    `json:"positive"`
}

type MatchResponse struct {
	ID              uuid.UUID        `json:"id"`
	CandidateID     uuid.UUID        `json:"candidate_id"`
	JobID           uuid.UUID        `json:"job_id"`
	Version         int              `json:"version"`
	PreviousID      *uuid.UUID       `json:"previous_id,omitempty"`
	Score           int              `json:"score"`
	Confidence      float64          `json:"confidence"`
	Factors         []FactorResponse `json:"factors"`
	Reasons         []string         `json:"reasons"`
	Recommendations []string         `json:"recommendations"`
	Status          string           `json:"status"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

func NewMatchResponse(res match.Result) MatchResponse {
	out := MatchResponse{
		ID:              res.ID,
		CandidateID:     res.CandidateID,
		JobID:           res.JobID,
		Version:         res.Version,
		PreviousID:      res.PreviousID,
		Score:           res.Score,
		Confidence:      res.Confidence,
		Factors:         make([]FactorResponse, 0, len(res.Factors)),
		Reasons:         res.Reasons,
		Recommendations: res.Recommendations,
		Status:          string(res.Status),
		CreatedAt:       res.CreatedAt,
		UpdatedAt:       res.UpdatedAt,
	}
	if out.Reasons == nil {
		out.Reasons = []string{}
	}
	if out.Recommendations == nil {
		out.Recommendations = []string{}
	}
	for _, f := range res.Factors {
		out.Factors = append(out.Factors, FactorResponse{
			Category: string(f.Category),
			Weight:   f.Weight,
			RawScore: f.RawScore,
			Detail:   f.Detail,
			Positive: f.Positive,
		})
	}
	return out
}

func NewMatchListResponse(results []match.Result) []MatchResponse {
	out := make([]MatchResponse, 0, len(results))
	for _, res := range results {
		out = append(out, NewMatchResponse(res))
	}
	return out
}
