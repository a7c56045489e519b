package queue

import (
	"context"
	"sync"
)

// Task is one unit of pool work, typically the scoring of a single
// (candidate, job) pair. Errors are handled inside the closure so the
// pool itself stays oblivious to batch bookkeeping.
type Task func(ctx context.Context)

type WorkerPool struct {
	workers int
	tasks   chan Task
	wg      sync.WaitGroup
	once    sync.Once
}

func NewWorkerPool(workers, buffer int) *WorkerPool {
	if workers <= 0 {
		workers = 1
	}
	if buffer < 0 {
		buffer = 0
	}
	return &WorkerPool{
		workers: workers,
		tasks:   make(chan Task, buffer),
	}
}

// Submit blocks while the task buffer is full. The dispatcher is the
// only submitter, so blocking here preserves priority order.
func (p *WorkerPool) Submit(ctx context.Context, t Task) bool {
	if p == nil || t == nil {
		return false
	}
	select {
	case <-ctx.Done():
		return false
	case p.tasks <- t:
		return true
	}
}

func (p *WorkerPool) Close() {
	if p == nil {
		return
	}
	p.once.Do(func() { close(p.tasks) })
}

// Run starts the workers and returns a channel closed once every worker
// has drained and exited.
func (p *WorkerPool) Run(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	if p == nil {
		close(done)
		return done
	}

	p.wg.Add(p.workers)
	for i := 0; i < p.workers; i++ {
		go func() {
			defer p.wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case t, ok := <-p.tasks:
					if !ok {
						return
					}
					if t == nil {
						continue
					}
					t(ctx)
				}
			}
		}()
	}

	go func() {
		p.wg.Wait()
		close(done)
	}()

	return done
}
