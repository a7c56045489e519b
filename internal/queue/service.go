package queue

import (
	"container/heap"
	"context"
	"errors"
	"runtime"
	"sync"
	"time"

	"talent-match/internal/domain/match"
	"talent-match/internal/domain/matching"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrBackpressure   = errors.New("tenant at max concurrent bulk jobs")
	ErrEntryNotFound  = errors.New("queue entry not found")
	ErrEntryTerminal  = errors.New("queue entry already terminal")
	ErrInvalidRequest = errors.New("invalid queue request")
	ErrScorerTimeout  = errors.New("factor scoring timed out")
)

// Matcher scores one (candidate, job) pair and persists the result.
// Implemented by the matching usecase; declared here so the queue does
// not depend on it.
type Matcher interface {
	MatchPair(ctx context.Context, candidateID, jobID uuid.UUID, overrides matching.Weights) (match.Result, error)
}

// CandidateSource resolves the full candidate population for bulk
// requests submitted without an explicit candidate filter.
type CandidateSource interface {
	ListIDs(ctx context.Context) ([]uuid.UUID, error)
}

type Event struct {
	EntryID  uuid.UUID `json:"entry_id"`
	TenantID string    `json:"tenant_id"`
	Status   Status    `json:"status"`
	Snapshot Snapshot  `json:"snapshot"`
}

// NotificationDispatcher receives one event per bulk entry that reaches
// a terminal status with notifyOnCompletion set.
type NotificationDispatcher interface {
	Notify(event Event)
}

type Config struct {
	Workers          int
	Buffer           int
	MaxBulkPerTenant int
	ScorerTimeout    time.Duration

	// Retention is how long terminal entries stay readable before they
	// are dropped from the in-memory index.
	Retention time.Duration
}

func (c Config) withDefaults() Config {
	if c.Workers <= 0 {
		c.Workers = runtime.GOMAXPROCS(0)
	}
	if c.Buffer <= 0 {
		c.Buffer = c.Workers * 64
	}
	if c.MaxBulkPerTenant <= 0 {
		c.MaxBulkPerTenant = 4
	}
	if c.ScorerTimeout <= 0 {
		c.ScorerTimeout = time.Second
	}
	if c.Retention <= 0 {
		c.Retention = time.Hour
	}
	return c
}

// Service owns the bulk matching lifecycle: a priority heap of entries
// drained by a dispatcher goroutine that fans pairs out to a fixed
// worker pool.
type Service struct {
	cfg        Config
	log        *zap.Logger
	matcher    Matcher
	candidates CandidateSource
	notifier   NotificationDispatcher

	mu         sync.Mutex
	seq        uint64
	pending    entryHeap
	entries    map[uuid.UUID]*entry
	activeBulk map[string]int

	wake   chan struct{}
	pool   *WorkerPool
	cancel context.CancelFunc
	done   chan struct{}
}

func NewService(cfg Config, matcher Matcher, candidates CandidateSource, notifier NotificationDispatcher, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	cfg = cfg.withDefaults()
	return &Service{
		cfg:        cfg,
		log:        log,
		matcher:    matcher,
		candidates: candidates,
		notifier:   notifier,
		entries:    make(map[uuid.UUID]*entry),
		activeBulk: make(map[string]int),
		wake:       make(chan struct{}, 1),
		pool:       NewWorkerPool(cfg.Workers, cfg.Buffer),
		done:       make(chan struct{}),
	}
}

func (s *Service) Start(ctx context.Context) {
	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	poolDone := s.pool.Run(runCtx)
	go func() {
		defer close(s.done)
		s.dispatch(runCtx)
		s.pool.Close()
		<-poolDone
	}()
}

// Stop cancels the run context and waits for workers to drain their
// in-flight pairs.
func (s *Service) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	<-s.done
}

func (s *Service) SubmitBulk(_ context.Context, req BulkRequest) (Snapshot, error) {
	if len(req.JobIDs) == 0 {
		return Snapshot{}, ErrInvalidRequest
	}
	if req.Priority == "" {
		req.Priority = PriorityNormal
	}
	if !req.Priority.Valid() {
		return Snapshot{}, ErrInvalidRequest
	}

	s.mu.Lock()
	s.pruneLocked(time.Now())
	if s.activeBulk[req.TenantID] >= s.cfg.MaxBulkPerTenant {
		s.mu.Unlock()
		s.log.Warn("bulk submission rejected",
			zap.String("tenant_id", req.TenantID),
			zap.Int("limit", s.cfg.MaxBulkPerTenant))
		return Snapshot{}, ErrBackpressure
	}

	s.seq++
	e := &entry{
		id:           uuid.New(),
		tenantID:     req.TenantID,
		kind:         KindBulk,
		priority:     req.Priority,
		seq:          s.seq,
		notify:       req.NotifyOnCompletion,
		jobIDs:       append([]uuid.UUID(nil), req.JobIDs...),
		candidateIDs: append([]uuid.UUID(nil), req.CandidateIDs...),
		overrides:    req.WeightOverrides,
		status:       StatusQueued,
		totalJobs:    len(req.JobIDs),
		submittedAt:  time.Now(),
	}
	s.entries[e.id] = e
	s.activeBulk[req.TenantID]++
	heap.Push(&s.pending, e)
	s.mu.Unlock()

	s.signal()
	s.log.Info("bulk entry queued",
		zap.String("entry_id", e.id.String()),
		zap.String("tenant_id", e.tenantID),
		zap.Int("jobs", e.totalJobs),
		zap.String("priority", string(e.priority)))

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked(), nil
}

// SubmitSingle enqueues a single pair instead of scoring it inline.
// Queued singles skip the per-tenant bulk limit.
func (s *Service) SubmitSingle(_ context.Context, req SingleRequest) (Snapshot, error) {
	if req.CandidateID == uuid.Nil || req.JobID == uuid.Nil {
		return Snapshot{}, ErrInvalidRequest
	}
	if req.Priority == "" {
		req.Priority = PriorityNormal
	}
	if !req.Priority.Valid() {
		return Snapshot{}, ErrInvalidRequest
	}

	s.mu.Lock()
	s.pruneLocked(time.Now())
	s.seq++
	e := &entry{
		id:           uuid.New(),
		tenantID:     req.TenantID,
		kind:         KindSingle,
		priority:     req.Priority,
		seq:          s.seq,
		jobIDs:       []uuid.UUID{req.JobID},
		candidateIDs: []uuid.UUID{req.CandidateID},
		overrides:    req.WeightOverrides,
		status:       StatusQueued,
		totalJobs:    1,
		submittedAt:  time.Now(),
	}
	s.entries[e.id] = e
	heap.Push(&s.pending, e)
	s.mu.Unlock()

	s.signal()

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked(), nil
}

func (s *Service) Get(_ context.Context, id uuid.UUID) (Snapshot, error) {
	s.mu.Lock()
	e, ok := s.entries[id]
	s.mu.Unlock()
	if !ok {
		return Snapshot{}, ErrEntryNotFound
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked(), nil
}

func (s *Service) List(_ context.Context) []Snapshot {
	s.mu.Lock()
	s.pruneLocked(time.Now())
	all := make([]*entry, 0, len(s.entries))
	for _, e := range s.entries {
		all = append(all, e)
	}
	s.mu.Unlock()

	out := make([]Snapshot, 0, len(all))
	for _, e := range all {
		e.mu.Lock()
		out = append(out, e.snapshotLocked())
		e.mu.Unlock()
	}
	return out
}

// Cancel flips the cooperative cancellation flag. Workers observe it
// before starting each pair, so results already produced are kept and
// the entry lands on cancelled rather than failed.
func (s *Service) Cancel(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	e, ok := s.entries[id]
	s.mu.Unlock()
	if !ok {
		return ErrEntryNotFound
	}

	e.mu.Lock()
	if e.status.Terminal() {
		e.mu.Unlock()
		return ErrEntryTerminal
	}
	e.cancelled = true
	e.status = StatusCancelled
	now := time.Now()
	e.completedAt = &now
	snap := e.snapshotLocked()
	isBulk := e.kind == KindBulk
	notify := e.notify
	tenant := e.tenantID
	e.mu.Unlock()

	s.log.Info("queue entry cancelled",
		zap.String("entry_id", id.String()),
		zap.Int("processed_pairs", snap.ProcessedPairs))
	s.entryFinished(id, tenant, isBulk, notify, snap)
	return nil
}

// pruneLocked drops terminal entries older than the retention window.
// Runs on the submit and list paths so the index cannot grow without
// bound over the service lifetime. Caller holds s.mu.
func (s *Service) pruneLocked(now time.Time) {
	for id, e := range s.entries {
		e.mu.Lock()
		expired := e.status.Terminal() && e.completedAt != nil &&
			now.Sub(*e.completedAt) >= s.cfg.Retention
		e.mu.Unlock()
		if expired {
			delete(s.entries, id)
		}
	}
}

func (s *Service) signal() {
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

func (s *Service) dispatch(ctx context.Context) {
	for {
		e := s.nextEntry(ctx)
		if e == nil {
			return
		}
		s.process(ctx, e)
	}
}

func (s *Service) nextEntry(ctx context.Context) *entry {
	for {
		s.mu.Lock()
		for s.pending.Len() > 0 {
			e := heap.Pop(&s.pending).(*entry)
			e.mu.Lock()
			terminal := e.status.Terminal()
			e.mu.Unlock()
			if !terminal {
				s.mu.Unlock()
				return e
			}
		}
		s.mu.Unlock()

		select {
		case <-ctx.Done():
			return nil
		case <-s.wake:
		}
	}
}

func (s *Service) process(ctx context.Context, e *entry) {
	candidates := e.candidateIDs
	var resolveErr error
	if len(candidates) == 0 {
		candidates, resolveErr = s.candidates.ListIDs(ctx)
	}

	e.mu.Lock()
	if e.status.Terminal() {
		e.mu.Unlock()
		return
	}
	now := time.Now()
	e.status = StatusProcessing
	e.startedAt = &now

	if resolveErr != nil || len(candidates) == 0 {
		st := StatusFailed
		if resolveErr == nil {
			// An empty candidate population is not an error, there is
			// simply nothing to score.
			st = StatusCompleted
		}
		e.status = st
		done := time.Now()
		e.completedAt = &done
		snap := e.snapshotLocked()
		id, tenant, isBulk, notify := e.id, e.tenantID, e.kind == KindBulk, e.notify
		e.mu.Unlock()
		if resolveErr != nil {
			s.log.Error("candidate resolution failed",
				zap.String("entry_id", id.String()),
				zap.Error(resolveErr))
		}
		s.entryFinished(id, tenant, isBulk, notify, snap)
		return
	}

	pairs := make([]pair, 0, len(e.jobIDs)*len(candidates))
	e.jobRemaining = make(map[uuid.UUID]int, len(e.jobIDs))
	for _, jobID := range e.jobIDs {
		e.jobRemaining[jobID] = len(candidates)
		for _, candID := range candidates {
			pairs = append(pairs, pair{candidateID: candID, jobID: jobID})
		}
	}
	e.totalPairs = len(pairs)
	e.mu.Unlock()

	for _, p := range pairs {
		if !s.pool.Submit(ctx, s.pairTask(e, p)) {
			return
		}
	}
}

func (s *Service) pairTask(e *entry, p pair) Task {
	return func(ctx context.Context) {
		e.mu.Lock()
		if e.status != StatusProcessing || e.cancelled {
			e.mu.Unlock()
			return
		}
		overrides := e.overrides
		e.mu.Unlock()

		res, err := s.scorePair(ctx, p, overrides)

		var finishedSnap *Snapshot
		e.mu.Lock()
		e.settledPairs++
		if err != nil {
			e.failures = append(e.failures, PairFailure{
				CandidateID: p.candidateID,
				JobID:       p.jobID,
				Reason:      err.Error(),
			})
		} else {
			e.results = append(e.results, res)
			e.processedPairs++
		}
		if rem, ok := e.jobRemaining[p.jobID]; ok {
			rem--
			if rem == 0 {
				delete(e.jobRemaining, p.jobID)
				e.processedJobs++
			} else {
				e.jobRemaining[p.jobID] = rem
			}
		}
		if e.settledPairs >= e.totalPairs && !e.status.Terminal() {
			if e.processedPairs > 0 {
				e.status = StatusCompleted
			} else {
				e.status = StatusFailed
			}
			done := time.Now()
			e.completedAt = &done
			snap := e.snapshotLocked()
			finishedSnap = &snap
		}
		id, tenant, isBulk, notify := e.id, e.tenantID, e.kind == KindBulk, e.notify
		e.mu.Unlock()

		if finishedSnap != nil {
			s.log.Info("queue entry finished",
				zap.String("entry_id", id.String()),
				zap.String("status", string(finishedSnap.Status)),
				zap.Int("processed_pairs", finishedSnap.ProcessedPairs),
				zap.Int("failed_pairs", len(finishedSnap.Failures)))
			s.entryFinished(id, tenant, isBulk, notify, *finishedSnap)
		}
	}
}

// scorePair bounds a single scoring call. A pathological pair that
// hangs past the configured timeout fails only that pair. The matcher
// runs under a per-pair deadline context so its lookups and save
// observe the cancellation: a timed-out pair must never persist a
// result after the batch reported it as failed.
func (s *Service) scorePair(ctx context.Context, p pair, overrides matching.Weights) (match.Result, error) {
	pairCtx, cancel := context.WithTimeout(ctx, s.cfg.ScorerTimeout)
	defer cancel()

	type outcome struct {
		res match.Result
		err error
	}
	ch := make(chan outcome, 1)
	go func() {
		res, err := s.matcher.MatchPair(pairCtx, p.candidateID, p.jobID, overrides)
		ch <- outcome{res: res, err: err}
	}()

	select {
	case o := <-ch:
		if errors.Is(o.err, context.DeadlineExceeded) {
			return match.Result{}, ErrScorerTimeout
		}
		return o.res, o.err
	case <-pairCtx.Done():
		if errors.Is(pairCtx.Err(), context.DeadlineExceeded) {
			return match.Result{}, ErrScorerTimeout
		}
		return match.Result{}, pairCtx.Err()
	}
}

func (s *Service) entryFinished(id uuid.UUID, tenant string, isBulk, notify bool, snap Snapshot) {
	if isBulk {
		s.mu.Lock()
		if s.activeBulk[tenant] > 0 {
			s.activeBulk[tenant]--
		}
		if s.activeBulk[tenant] == 0 {
			delete(s.activeBulk, tenant)
		}
		s.mu.Unlock()
	}
	if isBulk && notify && s.notifier != nil {
		s.notifier.Notify(Event{
			EntryID:  id,
			TenantID: tenant,
			Status:   snap.Status,
			Snapshot: snap,
		})
	}
}
