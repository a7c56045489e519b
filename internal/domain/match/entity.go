package match

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusReviewed Status = "reviewed"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

// Guarded reports whether a result may no longer be overwritten in place
// by a later scoring pass.
func (s Status) Guarded() bool {
	return s == StatusReviewed || s == StatusAccepted || s == StatusRejected
}

// Terminal reports whether the result reached a final human decision.
func (s Status) Terminal() bool {
	return s == StatusAccepted || s == StatusRejected
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusReviewed, StatusAccepted, StatusRejected:
		return true
	}
	return false
}

type FactorCategory string

const (
	FactorSkills        FactorCategory = "skills"
	FactorExperience    FactorCategory = "experience"
	FactorLocation      FactorCategory = "location"
	FactorAccessibility FactorCategory = "accessibility"
	FactorCulture       FactorCategory = "culture"
	FactorCompensation  FactorCategory = "compensation"
)

// FactorOrder is the canonical ordering of factors in results and exports.
var FactorOrder = []FactorCategory{
	FactorSkills,
	FactorExperience,
	FactorLocation,
	FactorAccessibility,
	FactorCulture,
	FactorCompensation,
}

type Factor struct {
	Category FactorCategory `json:"category"`
	Weight   float64        `json:"weight"`
	RawScore int            `json:"raw_score"`
	Detail   string         `json:"detail"`
	Positive bool           `json:"positive"`
}

type Result struct {
	ID              uuid.UUID  `json:"id"`
	CandidateID     uuid.UUID  `json:"candidate_id"`
	JobID           uuid.UUID  `json:"job_id"`
	Version         int        `json:"version"`
	PreviousID      *uuid.UUID `json:"previous_id,omitempty"`
	Score           int        `json:"score"`
	Confidence      float64    `json:"confidence"`
	Factors         []Factor   `json:"factors"`
	Reasons         []string   `json:"reasons"`
	Recommendations []string   `json:"recommendations"`
	Status          Status     `json:"status"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

type FeedbackOutcome string

const (
	OutcomeHired      FeedbackOutcome = "hired"
	OutcomeRejected   FeedbackOutcome = "rejected"
	OutcomeNoResponse FeedbackOutcome = "no_response"
	OutcomeWithdrawn  FeedbackOutcome = "withdrawn"
)

func (o FeedbackOutcome) Valid() bool {
	switch o {
	case OutcomeHired, OutcomeRejected, OutcomeNoResponse, OutcomeWithdrawn:
		return true
	}
	return false
}

// Decided reports whether the outcome counts toward success-rate math.
func (o FeedbackOutcome) Decided() bool {
	return o == OutcomeHired || o == OutcomeRejected
}

type Feedback struct {
	ID        uuid.UUID       `json:"id"`
	MatchID   uuid.UUID       `json:"match_id"`
	Outcome   FeedbackOutcome `json:"outcome"`
	Rating    int             `json:"rating"`
	Comment   string          `json:"comment,omitempty"`
	UserID    uuid.UUID       `json:"user_id"`
	CreatedAt time.Time       `json:"created_at"`
}

type Stats struct {
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

type Insight struct {
	Category   FactorCategory `json:"category"`
	Message    string         `json:"message"`
	AverageRaw float64        `json:"average_raw"`
	SampleSize int            `json:"sample_size"`
}
