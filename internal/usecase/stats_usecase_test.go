package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"talent-match/internal/domain/match"
	"talent-match/internal/repository"

	"github.com/google/uuid"
)

type stubStatsCache struct {
	mu      sync.Mutex
	data    map[string][]byte
	deleted []string
}

func newStubStatsCache() *stubStatsCache {
	return &stubStatsCache{data: make(map[string][]byte)}
}

func (c *stubStatsCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, out)
}

func (c *stubStatsCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = raw
	return nil
}

func (c *stubStatsCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	c.deleted = append(c.deleted, key)
	return nil
}

func saveScored(t *testing.T, matches *repository.MemoryMatchRepository, score int) match.Result {
	t.Helper()
	res, err := matches.Save(context.Background(), match.Result{
		CandidateID: uuid.New(),
		JobID:       uuid.New(),
		Score:       score,
		Confidence:  0.9,
		Status:      match.StatusPending,
		Factors: []match.Factor{
			{Category: match.FactorSkills, Weight: 0.3, RawScore: score},
			{Category: match.FactorAccessibility, Weight: 0.2, RawScore: 100 - score},
		},
	})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	return res
}

func addFeedback(t *testing.T, matches *repository.MemoryMatchRepository, matchID uuid.UUID, outcome match.FeedbackOutcome) {
	t.Helper()
	if _, err := matches.AppendFeedback(context.Background(), match.Feedback{MatchID: matchID, Outcome: outcome}); err != nil {
		t.Fatalf("AppendFeedback: %v", err)
	}
}

func TestStatsSuccessRateAndClassifierQuality(t *testing.T) {
	matches := repository.NewMemoryMatchRepository()
	uc := NewStatsUsecase(matches, nil, 70, time.Minute, nil)

	hiredHigh := saveScored(t, matches, 80)  // true positive
	hiredLow := saveScored(t, matches, 60)   // false negative
	rejectedHigh := saveScored(t, matches, 90) // false positive
	rejectedLow := saveScored(t, matches, 40)  // true negative
	undecided := saveScored(t, matches, 55)

	addFeedback(t, matches, hiredHigh.ID, match.OutcomeHired)
	addFeedback(t, matches, hiredLow.ID, match.OutcomeHired)
	addFeedback(t, matches, rejectedHigh.ID, match.OutcomeRejected)
	addFeedback(t, matches, rejectedLow.ID, match.OutcomeRejected)
	addFeedback(t, matches, undecided.ID, match.OutcomeNoResponse)

	stats, err := uc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}

	if stats.TotalMatches != 5 {
		t.Fatalf("expected 5 matches, got %d", stats.TotalMatches)
	}
	if stats.AverageScore != 65 {
		t.Fatalf("expected average score 65, got %v", stats.AverageScore)
	}
	if stats.DecidedOutcomes != 4 {
		t.Fatalf("expected 4 decided outcomes, got %d", stats.DecidedOutcomes)
	}
	if stats.SuccessRate != 0.5 {
		t.Fatalf("expected success rate 0.5, got %v", stats.SuccessRate)
	}
	if stats.Precision != 0.5 || stats.Recall != 0.5 || stats.F1 != 0.5 {
		t.Fatalf("expected precision/recall/f1 0.5, got %v/%v/%v", stats.Precision, stats.Recall, stats.F1)
	}
}

func TestStatsEmptyRepository(t *testing.T) {
	uc := NewStatsUsecase(repository.NewMemoryMatchRepository(), nil, 0, 0, nil)

	stats, err := uc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.TotalMatches != 0 || stats.SuccessRate != 0 || stats.F1 != 0 {
		t.Fatalf("expected zeroed stats, got %+v", stats)
	}
}

func TestStatsServedFromCache(t *testing.T) {
	matches := repository.NewMemoryMatchRepository()
	cache := newStubStatsCache()
	uc := NewStatsUsecase(matches, cache, 70, time.Minute, nil)

	if _, err := uc.Stats(context.Background()); err != nil {
		t.Fatalf("Stats: %v", err)
	}

	// A match saved after the cache fill is invisible until the TTL or
	// an invalidation.
	saveScored(t, matches, 88)
	stats, err := uc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.TotalMatches != 0 {
		t.Fatalf("expected cached stats, got %+v", stats)
	}
}

func TestFeedbackSubmitInvalidatesStatsCache(t *testing.T) {
	matches := repository.NewMemoryMatchRepository()
	cache := newStubStatsCache()
	res := saveScored(t, matches, 77)

	uc := NewFeedbackUsecase(matches, cache, nil)
	if _, err := uc.Submit(context.Background(), match.Feedback{MatchID: res.ID, Outcome: match.OutcomeHired, Rating: 4}); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if len(cache.deleted) != 1 || cache.deleted[0] != statsCacheKey {
		t.Fatalf("expected stats cache invalidation, got %v", cache.deleted)
	}
}

func TestFeedbackSubmitValidation(t *testing.T) {
	matches := repository.NewMemoryMatchRepository()
	res := saveScored(t, matches, 77)
	uc := NewFeedbackUsecase(matches, nil, nil)

	if _, err := uc.Submit(context.Background(), match.Feedback{MatchID: res.ID, Outcome: "ghosted"}); !errors.Is(err, ErrInvalidFeedback) {
		t.Fatalf("expected ErrInvalidFeedback for unknown outcome, got %v", err)
	}
	if _, err := uc.Submit(context.Background(), match.Feedback{MatchID: res.ID, Outcome: match.OutcomeHired, Rating: 9}); !errors.Is(err, ErrInvalidFeedback) {
		t.Fatalf("expected ErrInvalidFeedback for out-of-range rating, got %v", err)
	}
	if _, err := uc.Submit(context.Background(), match.Feedback{MatchID: uuid.New(), Outcome: match.OutcomeHired}); !errors.Is(err, ErrMatchNotFound) {
		t.Fatalf("expected ErrMatchNotFound, got %v", err)
	}
}

func TestStatsInsights(t *testing.T) {
	matches := repository.NewMemoryMatchRepository()
	uc := NewStatsUsecase(matches, nil, 70, time.Minute, nil)

	saveScored(t, matches, 80) // skills raw 80, accessibility raw 20
	saveScored(t, matches, 90) // skills raw 90, accessibility raw 10

	insights, err := uc.Insights(context.Background())
	if err != nil {
		t.Fatalf("Insights: %v", err)
	}
	if len(insights) != 2 {
		t.Fatalf("expected insights for 2 categories, got %d", len(insights))
	}
	if insights[0].Category != match.FactorSkills || insights[0].AverageRaw != 85 {
		t.Fatalf("unexpected skills insight: %+v", insights[0])
	}
	if insights[1].Category != match.FactorAccessibility || insights[1].AverageRaw != 15 {
		t.Fatalf("unexpected accessibility insight: %+v", insights[1])
	}
	if insights[1].SampleSize != 2 {
		t.Fatalf("expected sample size 2, got %d", insights[1].SampleSize)
	}
}
