package dto

import (
	"time"

	"talent-match/internal/domain/match"
)

type StatsResponse struct {
	TotalMatches      int       `json:"total_matches"`
	AverageScore      float64   `json:"average_score"`
	AverageConfidence float64   `json:"average_confidence"`
	DecidedOutcomes   int       `json:"decided_outcomes"`
	SuccessRate       float64   `json:"success_rate"`
	Precision         float64   `json:"precision"`
	Recall            float64   `json:"recall"`
	F1                float64   `json:"f1"`
	GeneratedAt       time.Time `json:"generated_at"`
}

func NewStatsResponse(s match.Stats) StatsResponse {
	return StatsResponse(s)
}

type InsightResponse struct {
	Category   string  `json:"category"`
	Message    string  `json:"message"`
	AverageRaw float64 `json:"average_raw"`
	SampleSize int     `json:"sample_size"`
}

func NewInsightListResponse(insights []match.Insight) []InsightResponse {
	out := make([]InsightResponse, 0, len(insights))
	for _, in := range insights {
		out = append(out, InsightResponse{
			Category:   string(in.Category),
			Message:    in.Message,
			AverageRaw: in.AverageRaw,
			SampleSize: in.SampleSize,
		})
	}
	return out
}
