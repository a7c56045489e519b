package usecase

import (
	"context"
	"errors"
	"testing"

	"talent-match/internal/domain/candidate"
	"talent-match/internal/domain/job"
	"talent-match/internal/domain/match"
	"talent-match/internal/domain/matching"
	"talent-match/internal/repository"

	"github.com/google/uuid"
)

func seedPair(t *testing.T, candidates *repository.MemoryCandidateStore, jobs *repository.MemoryJobStore) (uuid.UUID, uuid.UUID) {
	t.Helper()
	candID, jobID := uuid.New(), uuid.New()
	candidates.Put(candidate.Candidate{
		ID: candID,
		Skills: []candidate.Skill{
			{Name: "Go", Proficiency: 90},
			{Name: "SQL", Proficiency: 75},
		},
		YearsExperience: 6,
		Location:        candidate.Location{City: "Jakarta", Region: "Jakarta", Country: "ID"},
		WorkModes:       []candidate.WorkMode{candidate.WorkModeRemote},
		CultureTags:     []string{"async", "flat"},
	})
	jobs.Put(job.Job{
		ID:    jobID,
		Title: "Backend Engineer",
		RequiredSkills: []job.RequiredSkill{
			{Name: "Go"},
			{Name: "SQL"},
		},
		MinYears:    2,
		TargetYears: 5,
		Location:    job.Location{City: "Bandung", Region: "West Java", Country: "ID"},
		WorkModes:   []job.WorkMode{job.WorkModeRemote},
		CultureTags: []string{"async", "pairing"},
	})
	return candID, jobID
}

func newMatchingFixture(t *testing.T) (*Matching, *repository.MemoryCandidateStore, *repository.MemoryJobStore, *repository.MemoryMatchRepository) {
	t.Helper()
	candidates := repository.NewMemoryCandidateStore()
	jobs := repository.NewMemoryJobStore()
	matches := repository.NewMemoryMatchRepository()
	uc := NewMatchingUsecase(candidates, jobs, matches, matching.NewEngine(nil), 0, nil)
	return uc, candidates, jobs, matches
}

func TestMatchingMatchPersistsResult(t *testing.T) {
	uc, candidates, jobs, matches := newMatchingFixture(t)
	candID, jobID := seedPair(t, candidates, jobs)

	res, err := uc.Match(context.Background(), MatchRequest{CandidateID: candID, JobID: jobID})
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	if res.ID == uuid.Nil {
		t.Fatalf("expected persisted result to carry an id")
	}
	if res.Version != 1 {
		t.Fatalf("expected version 1, got %d", res.Version)
	}
	if res.Status != match.StatusPending {
		t.Fatalf("expected pending status, got %s", res.Status)
	}
	if res.Score < 0 || res.Score > 100 {
		t.Fatalf("score out of range: %d", res.Score)
	}

	stored, err := matches.Latest(context.Background(), candID, jobID)
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if stored.ID != res.ID {
		t.Fatalf("stored id mismatch")
	}
}

func TestMatchingMatchUnknownRecords(t *testing.T) {
	uc, candidates, jobs, _ := newMatchingFixture(t)
	candID, jobID := seedPair(t, candidates, jobs)

	if _, err := uc.Match(context.Background(), MatchRequest{CandidateID: uuid.New(), JobID: jobID}); !errors.Is(err, ErrCandidateNotFound) {
		t.Fatalf("expected ErrCandidateNotFound, got %v", err)
	}
	if _, err := uc.Match(context.Background(), MatchRequest{CandidateID: candID, JobID: uuid.New()}); !errors.Is(err, ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound, got %v", err)
	}
	if _, err := uc.Match(context.Background(), MatchRequest{}); !errors.Is(err, ErrInvalidCriteria) {
		t.Fatalf("expected ErrInvalidCriteria, got %v", err)
	}
}

func TestMatchingMatchRejectsBadOverrides(t *testing.T) {
	uc, candidates, jobs, _ := newMatchingFixture(t)
	candID, jobID := seedPair(t, candidates, jobs)

	_, err := uc.Match(context.Background(), MatchRequest{
		CandidateID:     candID,
		JobID:           jobID,
		WeightOverrides: matching.Weights{match.FactorSkills: -0.5},
	})
	if !errors.Is(err, ErrInvalidCriteria) {
		t.Fatalf("expected ErrInvalidCriteria for negative weight, got %v", err)
	}
}

func TestMatchingUpdateStatus(t *testing.T) {
	uc, candidates, jobs, _ := newMatchingFixture(t)
	candID, jobID := seedPair(t, candidates, jobs)

	res, err := uc.Match(context.Background(), MatchRequest{CandidateID: candID, JobID: jobID})
	if err != nil {
		t.Fatalf("Match: %v", err)
	}

	if err := uc.UpdateStatus(context.Background(), res.ID, match.StatusPending, match.StatusReviewed); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if err := uc.UpdateStatus(context.Background(), res.ID, match.StatusPending, match.StatusAccepted); !errors.Is(err, ErrStatusConflict) {
		t.Fatalf("expected ErrStatusConflict on stale transition, got %v", err)
	}
	if err := uc.UpdateStatus(context.Background(), res.ID, match.StatusReviewed, match.Status("archived")); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
	if err := uc.UpdateStatus(context.Background(), uuid.New(), match.StatusPending, match.StatusReviewed); !errors.Is(err, ErrMatchNotFound) {
		t.Fatalf("expected ErrMatchNotFound, got %v", err)
	}
}

func TestMatchingReopen(t *testing.T) {
	uc, candidates, jobs, _ := newMatchingFixture(t)
	candID, jobID := seedPair(t, candidates, jobs)

	res, err := uc.Match(context.Background(), MatchRequest{CandidateID: candID, JobID: jobID})
	if err != nil {
		t.Fatalf("Match: %v", err)
	}

	if err := uc.Reopen(context.Background(), res.ID); !errors.Is(err, ErrStatusConflict) {
		t.Fatalf("expected ErrStatusConflict reopening a pending match, got %v", err)
	}
	if err := uc.UpdateStatus(context.Background(), res.ID, match.StatusPending, match.StatusRejected); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if err := uc.Reopen(context.Background(), res.ID); err != nil {
		t.Fatalf("Reopen: %v", err)
	}

	got, err := uc.Get(context.Background(), res.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Status != match.StatusPending {
		t.Fatalf("expected pending after reopen, got %s", got.Status)
	}
}
