package dto

import (
	"time"

	"talent-match/internal/domain/match"

	"github.com/google/uuid"
)

type FeedbackResponse struct {
	ID        uuid.UUID `json:"id"`
	MatchID   uuid.UUID `json:"match_id"`
	Outcome   string    `json:"outcome"`
	Rating    int       `json:"rating,omitempty"`
	Comment   string    `json:"comment,omitempty"`
	UserID    uuid.UUID `json:"user_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func NewFeedbackResponse(fb match.Feedback) FeedbackResponse {
	return FeedbackResponse{
		ID:        fb.ID,
		MatchID:   fb.MatchID,
		Outcome:   string(fb.Outcome),
		Rating:    fb.Rating,
		Comment:   fb.Comment,
		UserID:    fb.UserID,
		CreatedAt: fb.CreatedAt,
	}
}

func NewFeedbackListResponse(all []match.Feedback) []FeedbackResponse {
	out := make([]FeedbackResponse, 0, len(all))
	for _, fb := range all {
		out = append(out, NewFeedbackResponse(fb))
	}
	return out
}
