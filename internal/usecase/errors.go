package usecase

import "errors"

var (
	ErrInvalidCriteria   = errors.New("invalid matching criteria")
	ErrCandidateNotFound = errors.New("candidate not found")
	ErrJobNotFound       = errors.New("job not found")
	ErrMatchNotFound     = errors.New("match not found")
	ErrStatusConflict    = errors.New("match status changed concurrently")
	ErrInvalidStatus     = errors.New("invalid match status")
	ErrInvalidFeedback   = errors.New("invalid feedback")
	ErrMatchTimeout      = errors.New("match computation timed out")
	ErrInternal          = errors.New("internal error")
)
