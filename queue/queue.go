package queue

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/queuekit/queuekit/backoff"
	"github.com/queuekit/queuekit/errors"
	"github.com/queuekit/queuekit/job"
)

// Queue is the scheduling engine: it accepts job submissions, dispatches
// pending jobs to a bounded pool of workers in FIFO order, applies the retry
// policy on failure, and exposes the store's query surface for polling.
type Queue struct {
	registry Registry
	store    Store
	config   *Config
	strategy backoff.Strategy

	mu      sync.Mutex // guards pending
	pending []string

	wake    chan struct{}
	jobChan chan *job.Job
	retries *retryScheduler

	activeWorkers int32

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a new queue with dependency injection
func New(registry Registry, store Store, options ...Option) *Queue {
	config := defaultConfig()
	for _, opt := range options {
		opt(config)
	}

	strategy := config.Backoff
	if strategy == nil {
		strategy = backoff.NewConstant(config.RetryDelay)
	}

	q := &Queue{
		registry: registry,
		store:    store,
		config:   config,
		strategy: strategy,
		wake:     make(chan struct{}, 1),
		jobChan:  make(chan *job.Job),
	}
	q.retries = newRetryScheduler(q.requeue)

	return q
}

// Submit validates the job type, records a pending job and returns its id.
// Execution is asynchronous; callers discover completion by polling.
func (q *Queue) Submit(jobType string, data interface{}) (string, error) {
	if jobType == "" {
		return "", errors.ErrEmptyJobType
	}
	if q.ctx != nil && q.ctx.Err() != nil {
		return "", errors.ErrShutdown
	}

	if _, ok := q.registry.Get(jobType); !ok {
		return "", errors.NewUnknownTypeError(jobType)
	}

	j := job.New(jobType, data)
	if err := q.store.Put(j); err != nil {
		return "", err
	}

	q.enqueue(j.ID)
	slog.Debug("Job submitted", "id", j.ID, "type", jobType)
	return j.ID, nil
}

// GetJob retrieves a copy of a job by id
func (q *Queue) GetJob(id string) (*job.Job, bool) {
	return q.store.Get(id)
}

// Jobs returns a snapshot of all jobs in submission order
func (q *Queue) Jobs() []*job.Job {
	return q.store.List()
}

// JobsByStatus returns a snapshot of all jobs with the given status
func (q *Queue) JobsByStatus(status job.Status) []*job.Job {
	return q.store.ListByStatus(status)
}

// ClearFinished removes all completed and failed jobs from the store and
// returns how many were removed
func (q *Queue) ClearFinished() int {
	return q.store.ClearFinished()
}

// Stats returns a point-in-time snapshot of queue state
func (q *Queue) Stats() QueueStats {
	counts := q.store.Counts()
	return QueueStats{
		Pending:       counts[job.StatusPending],
		Running:       counts[job.StatusRunning],
		Completed:     counts[job.StatusCompleted],
		Failed:        counts[job.StatusFailed],
		ActiveWorkers: int(atomic.LoadInt32(&q.activeWorkers)),
	}
}

// Start begins dispatching jobs
func (q *Queue) Start(ctx context.Context) error {
	q.ctx, q.cancel = context.WithCancel(ctx)

	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		q.retries.Start(q.ctx)
	}()

	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		q.dispatch(q.ctx)
	}()

	q.startWorkers(q.ctx)

	slog.Info("Queue started",
		"concurrency", q.config.Concurrency,
		"maxRetries", q.config.MaxRetries)
	return nil
}

// Stop gracefully shuts down the queue. Running handlers get until the
// shutdown timeout to finish; pending jobs stay in the store unexecuted.
func (q *Queue) Stop() error {
	if q.cancel == nil {
		return errors.ErrNotStarted
	}
	q.cancel()

	done := make(chan struct{})
	go func() {
		q.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		slog.Info("Queue stopped gracefully")
	case <-time.After(q.config.ShutdownTimeout):
		slog.Warn("Queue shutdown timeout exceeded")
	}

	return nil
}

// Run starts the queue and blocks until the context is cancelled or a
// shutdown signal is received. Convenience wrapper over Start + Stop.
func (q *Queue) Run(ctx context.Context) error {
	if err := q.Start(ctx); err != nil {
		return err
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case <-ctx.Done():
		slog.Info("Context cancelled, shutting down...")
	case sig := <-sigChan:
		slog.Info("Received signal, shutting down...", "signal", sig)
	}

	return q.Stop()
}

// enqueue appends a job id to the pending list and wakes the dispatcher
func (q *Queue) enqueue(id string) {
	q.mu.Lock()
	q.pending = append(q.pending, id)
	q.mu.Unlock()

	select {
	case q.wake <- struct{}{}:
	default:
	}
}

// requeue is invoked by the retry scheduler once a retry delay has elapsed.
// The job may have been purged while it waited; in that case it is dropped.
func (q *Queue) requeue(id string) {
	if !q.store.Requeue(id) {
		slog.Debug("Retry dropped, job no longer awaiting retry", "id", id)
		return
	}
	q.enqueue(id)
}

// dispatch hands pending jobs to workers in FIFO order. The send blocks
// until a worker is free, which is what bounds the number of running jobs.
func (q *Queue) dispatch(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(q.jobChan)
			slog.Debug("Dispatcher stopped")
			return
		case <-q.wake:
		}

		for {
			id, ok := q.popPending()
			if !ok {
				break
			}

			j, ok := q.store.Get(id)
			if !ok || j.Status != job.StatusPending {
				continue
			}

			select {
			case q.jobChan <- j:
			case <-ctx.Done():
				close(q.jobChan)
				slog.Debug("Dispatcher stopped")
				return
			}
		}
	}
}

// popPending removes and returns the oldest pending job id
func (q *Queue) popPending() (string, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.pending) == 0 {
		return "", false
	}

	id := q.pending[0]
	q.pending = q.pending[1:]
	return id, true
}
