package queue

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"talent-match/internal/domain/match"
	"talent-match/internal/domain/matching"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubMatcher struct {
	mu    sync.Mutex
	calls []pair
	fn    func(ctx context.Context, candidateID, jobID uuid.UUID) (match.Result, error)
}

func (m *stubMatcher) MatchPair(ctx context.Context, candidateID, jobID uuid.UUID, _ matching.Weights) (match.Result, error) {
	m.mu.Lock()
	m.calls = append(m.calls, pair{candidateID: candidateID, jobID: jobID})
	fn := m.fn
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, candidateID, jobID)
	}
	return match.Result{
		ID:          uuid.New(),
		CandidateID: candidateID,
		JobID:       jobID,
		Score:       80,
		Confidence:  0.9,
		Status:      match.StatusPending,
	}, nil
}

func (m *stubMatcher) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

func (m *stubMatcher) calledJobs() []uuid.UUID {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]uuid.UUID, len(m.calls))
	for i, c := range m.calls {
		out[i] = c.jobID
	}
	return out
}

type fixedSource struct {
	ids []uuid.UUID
	err error
}

func (s fixedSource) ListIDs(context.Context) ([]uuid.UUID, error) { return s.ids, s.err }

type recordingNotifier struct {
	mu     sync.Mutex
	events []Event
}

func (n *recordingNotifier) Notify(e Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, e)
}

func (n *recordingNotifier) all() []Event {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]Event(nil), n.events...)
}

func jobIDs(n int) []uuid.UUID {
	out := make([]uuid.UUID, n)
	for i := range out {
		out[i] = uuid.New()
	}
	return out
}

func waitTerminal(t *testing.T, s *Service, id uuid.UUID) Snapshot {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		snap, err := s.Get(context.Background(), id)
		require.NoError(t, err)
		if snap.Status.Terminal() {
			return snap
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("entry never reached a terminal status")
	return Snapshot{}
}

func TestService_BulkCompletesAllJobs(t *testing.T) {
	matcher := &stubMatcher{}
	notifier := &recordingNotifier{}
	candID := uuid.New()
	svc := NewService(Config{Workers: 3}, matcher, fixedSource{}, notifier, nil)
	svc.Start(context.Background())
	defer svc.Stop()

	snap, err := svc.SubmitBulk(context.Background(), BulkRequest{
		TenantID:           "acme",
		JobIDs:             jobIDs(10),
		CandidateIDs:       []uuid.UUID{candID},
		Priority:           PriorityNormal,
		NotifyOnCompletion: true,
	})
	require.NoError(t, err)
	assert.Equal(t, StatusQueued, snap.Status)
	assert.Equal(t, 10, snap.TotalJobs)

	final := waitTerminal(t, svc, snap.ID)
	assert.Equal(t, StatusCompleted, final.Status)
	assert.Equal(t, 10, final.ProcessedJobs)
	assert.Equal(t, 10, final.ProcessedPairs)
	assert.InDelta(t, 100, final.Progress, 0.001)
	assert.Len(t, final.Results, 10)
	assert.Empty(t, final.Failures)
	require.NotNil(t, final.CompletedAt)

	events := notifier.all()
	require.Len(t, events, 1)
	assert.Equal(t, snap.ID, events[0].EntryID)
	assert.Equal(t, StatusCompleted, events[0].Status)
}

func TestService_PerPairFailureDoesNotAbortBatch(t *testing.T) {
	jobs := jobIDs(3)
	badJob := jobs[1]
	matcher := &stubMatcher{fn: func(_ context.Context, candidateID, jobID uuid.UUID) (match.Result, error) {
		if jobID == badJob {
			return match.Result{}, errors.New("job record missing")
		}
		return match.Result{ID: uuid.New(), CandidateID: candidateID, JobID: jobID, Score: 70}, nil
	}}
	svc := NewService(Config{Workers: 2}, matcher, fixedSource{}, nil, nil)
	svc.Start(context.Background())
	defer svc.Stop()

	snap, err := svc.SubmitBulk(context.Background(), BulkRequest{
		TenantID:     "acme",
		JobIDs:       jobs,
		CandidateIDs: []uuid.UUID{uuid.New()},
	})
	require.NoError(t, err)

	final := waitTerminal(t, svc, snap.ID)
	assert.Equal(t, StatusCompleted, final.Status, "one failed pair must not fail the batch")
	assert.Equal(t, 2, final.ProcessedPairs)
	require.Len(t, final.Failures, 1)
	assert.Equal(t, badJob, final.Failures[0].JobID)
	assert.Contains(t, final.Failures[0].Reason, "missing")
}

func TestService_AllPairsFailedMarksEntryFailed(t *testing.T) {
	matcher := &stubMatcher{fn: func(context.Context, uuid.UUID, uuid.UUID) (match.Result, error) {
		return match.Result{}, errors.New("boom")
	}}
	svc := NewService(Config{Workers: 2}, matcher, fixedSource{}, nil, nil)
	svc.Start(context.Background())
	defer svc.Stop()

	snap, err := svc.SubmitBulk(context.Background(), BulkRequest{
		TenantID:     "acme",
		JobIDs:       jobIDs(2),
		CandidateIDs: []uuid.UUID{uuid.New()},
	})
	require.NoError(t, err)

	final := waitTerminal(t, svc, snap.ID)
	assert.Equal(t, StatusFailed, final.Status)
	assert.Equal(t, 0, final.ProcessedPairs)
	assert.Len(t, final.Failures, 2)
}

func TestService_CancellationPreservesCompletedPairs(t *testing.T) {
	gate := make(chan struct{})
	started := make(chan struct{})
	var once sync.Once

	var calls int
	var mu sync.Mutex
	matcher := &stubMatcher{}
	matcher.fn = func(_ context.Context, candidateID, jobID uuid.UUID) (match.Result, error) {
		mu.Lock()
		calls++
		n := calls
		mu.Unlock()
		if n == 2 {
			once.Do(func() { close(started) })
			<-gate
		}
		return match.Result{ID: uuid.New(), CandidateID: candidateID, JobID: jobID, Score: 75}, nil
	}

	svc := NewService(Config{Workers: 1, ScorerTimeout: time.Minute}, matcher, fixedSource{}, nil, nil)
	svc.Start(context.Background())

	snap, err := svc.SubmitBulk(context.Background(), BulkRequest{
		TenantID:     "acme",
		JobIDs:       jobIDs(5),
		CandidateIDs: []uuid.UUID{uuid.New()},
	})
	require.NoError(t, err)

	<-started
	require.NoError(t, svc.Cancel(context.Background(), snap.ID))
	close(gate)

	final := waitTerminal(t, svc, snap.ID)
	svc.Stop()

	assert.Equal(t, StatusCancelled, final.Status)
	drained, err := svc.Get(context.Background(), snap.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, drained.ProcessedPairs)
	assert.Equal(t, 2, matcher.callCount(), "remaining pairs must never be scored after cancellation")

	err = svc.Cancel(context.Background(), snap.ID)
	assert.ErrorIs(t, err, ErrEntryTerminal)
}

func TestService_BackpressureRejectsWithoutEntry(t *testing.T) {
	matcher := &stubMatcher{}
	svc := NewService(Config{Workers: 1, MaxBulkPerTenant: 1}, matcher, fixedSource{}, nil, nil)
	// Not started: the first entry stays queued and holds the slot.

	_, err := svc.SubmitBulk(context.Background(), BulkRequest{
		TenantID:     "acme",
		JobIDs:       jobIDs(2),
		CandidateIDs: []uuid.UUID{uuid.New()},
	})
	require.NoError(t, err)

	_, err = svc.SubmitBulk(context.Background(), BulkRequest{
		TenantID:     "acme",
		JobIDs:       jobIDs(2),
		CandidateIDs: []uuid.UUID{uuid.New()},
	})
	assert.ErrorIs(t, err, ErrBackpressure)
	assert.Len(t, svc.List(context.Background()), 1, "rejected submissions must not create entries")

	// Other tenants are unaffected.
	_, err = svc.SubmitBulk(context.Background(), BulkRequest{
		TenantID:     "globex",
		JobIDs:       jobIDs(2),
		CandidateIDs: []uuid.UUID{uuid.New()},
	})
	assert.NoError(t, err)
}

func TestService_HighPriorityDispatchedFirst(t *testing.T) {
	matcher := &stubMatcher{}
	svc := NewService(Config{Workers: 1}, matcher, fixedSource{}, nil, nil)

	lowJob := uuid.New()
	highJob := uuid.New()
	cand := []uuid.UUID{uuid.New()}

	low, err := svc.SubmitBulk(context.Background(), BulkRequest{
		TenantID: "acme", JobIDs: []uuid.UUID{lowJob}, CandidateIDs: cand, Priority: PriorityLow,
	})
	require.NoError(t, err)
	high, err := svc.SubmitBulk(context.Background(), BulkRequest{
		TenantID: "acme", JobIDs: []uuid.UUID{highJob}, CandidateIDs: cand, Priority: PriorityHigh,
	})
	require.NoError(t, err)

	svc.Start(context.Background())
	defer svc.Stop()

	waitTerminal(t, svc, low.ID)
	waitTerminal(t, svc, high.ID)

	called := matcher.calledJobs()
	require.Len(t, called, 2)
	assert.Equal(t, highJob, called[0], "high priority tier must dispatch before low")
}

func TestService_ScorerTimeoutFailsOnlyThatPair(t *testing.T) {
	jobs := jobIDs(2)
	slowJob := jobs[0]
	matcher := &stubMatcher{fn: func(_ context.Context, candidateID, jobID uuid.UUID) (match.Result, error) {
		if jobID == slowJob {
			time.Sleep(200 * time.Millisecond)
		}
		return match.Result{ID: uuid.New(), CandidateID: candidateID, JobID: jobID, Score: 60}, nil
	}}
	svc := NewService(Config{Workers: 2, ScorerTimeout: 20 * time.Millisecond}, matcher, fixedSource{}, nil, nil)
	svc.Start(context.Background())
	defer svc.Stop()

	snap, err := svc.SubmitBulk(context.Background(), BulkRequest{
		TenantID:     "acme",
		JobIDs:       jobs,
		CandidateIDs: []uuid.UUID{uuid.New()},
	})
	require.NoError(t, err)

	final := waitTerminal(t, svc, snap.ID)
	assert.Equal(t, StatusCompleted, final.Status)
	assert.Equal(t, 1, final.ProcessedPairs)
	require.Len(t, final.Failures, 1)
	assert.Equal(t, slowJob, final.Failures[0].JobID)
	assert.Contains(t, final.Failures[0].Reason, "timed out")
}

func TestService_TimeoutStopsLatePersistence(t *testing.T) {
	var persisted int32
	matcher := &stubMatcher{fn: func(ctx context.Context, candidateID, jobID uuid.UUID) (match.Result, error) {
		select {
		case <-time.After(200 * time.Millisecond):
			atomic.AddInt32(&persisted, 1)
			return match.Result{ID: uuid.New(), CandidateID: candidateID, JobID: jobID, Score: 60}, nil
		case <-ctx.Done():
			return match.Result{}, ctx.Err()
		}
	}}
	svc := NewService(Config{Workers: 1, ScorerTimeout: 20 * time.Millisecond}, matcher, fixedSource{}, nil, nil)
	svc.Start(context.Background())
	defer svc.Stop()

	snap, err := svc.SubmitBulk(context.Background(), BulkRequest{
		TenantID:     "acme",
		JobIDs:       jobIDs(1),
		CandidateIDs: []uuid.UUID{uuid.New()},
	})
	require.NoError(t, err)

	final := waitTerminal(t, svc, snap.ID)
	assert.Equal(t, StatusFailed, final.Status)
	require.Len(t, final.Failures, 1)
	assert.Contains(t, final.Failures[0].Reason, "timed out")

	// Past the point where an uncancelled matcher would have written.
	time.Sleep(250 * time.Millisecond)
	assert.Equal(t, int32(0), atomic.LoadInt32(&persisted),
		"a timed-out pair must never persist a result behind the batch's back")
}

func TestService_TerminalEntriesPrunedAfterRetention(t *testing.T) {
	svc := NewService(Config{Workers: 1, Retention: 20 * time.Millisecond}, &stubMatcher{}, fixedSource{}, nil, nil)
	// Not started: the entry stays queued until cancelled.

	snap, err := svc.SubmitSingle(context.Background(), SingleRequest{
		TenantID:    "acme",
		CandidateID: uuid.New(),
		JobID:       uuid.New(),
	})
	require.NoError(t, err)
	require.NoError(t, svc.Cancel(context.Background(), snap.ID))

	assert.Len(t, svc.List(context.Background()), 1, "fresh terminal entries stay readable")

	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, svc.List(context.Background()))
	_, err = svc.Get(context.Background(), snap.ID)
	assert.ErrorIs(t, err, ErrEntryNotFound)
}

func TestService_SubmitSingleQueued(t *testing.T) {
	matcher := &stubMatcher{}
	svc := NewService(Config{Workers: 1}, matcher, fixedSource{}, nil, nil)
	svc.Start(context.Background())
	defer svc.Stop()

	snap, err := svc.SubmitSingle(context.Background(), SingleRequest{
		TenantID:    "acme",
		CandidateID: uuid.New(),
		JobID:       uuid.New(),
	})
	require.NoError(t, err)
	assert.Equal(t, KindSingle, snap.Kind)

	final := waitTerminal(t, svc, snap.ID)
	assert.Equal(t, StatusCompleted, final.Status)
	assert.Len(t, final.Results, 1)
}

func TestService_SubmitValidation(t *testing.T) {
	svc := NewService(Config{}, &stubMatcher{}, fixedSource{}, nil, nil)

	_, err := svc.SubmitBulk(context.Background(), BulkRequest{TenantID: "acme"})
	assert.ErrorIs(t, err, ErrInvalidRequest)

	_, err = svc.SubmitBulk(context.Background(), BulkRequest{
		TenantID: "acme", JobIDs: jobIDs(1), Priority: Priority("urgent"),
	})
	assert.ErrorIs(t, err, ErrInvalidRequest)

	_, err = svc.SubmitSingle(context.Background(), SingleRequest{TenantID: "acme"})
	assert.ErrorIs(t, err, ErrInvalidRequest)

	_, err = svc.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrEntryNotFound)

	err = svc.Cancel(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrEntryNotFound)
}
