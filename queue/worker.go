package queue

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/queuekit/queuekit/errors"
	"github.com/queuekit/queuekit/job"
)

// startWorkers launches the worker pool. Each worker receives jobs from the
// dispatcher over the shared channel and drives them to a final state.
func (q *Queue) startWorkers(ctx context.Context) {
	for i := 0; i < q.config.Concurrency; i++ {
		q.wg.Add(1)
		go func(id int) {
			defer q.wg.Done()
			q.worker(ctx, id)
		}(i)
	}
}

func (q *Queue) worker(ctx context.Context, workerID int) {
	slog.Debug("Worker started", "worker", workerID)

	for {
		select {
		case <-ctx.Done():
			slog.Debug("Worker stopping", "worker", workerID)
			return
		case j, ok := <-q.jobChan:
			if !ok {
				slog.Debug("Worker job channel closed", "worker", workerID)
				return
			}

			q.processJob(ctx, j)
		}
	}
}

// processJob handles a single job. Handler failures, including panics, are
// converted into job state; they never escape into the worker loop.
func (q *Queue) processJob(ctx context.Context, j *job.Job) {
	running, ok := q.store.MarkRunning(j.ID)
	if !ok {
		// The job was purged or picked up elsewhere between dispatch and
		// pickup; nothing to do.
		return
	}

	atomic.AddInt32(&q.activeWorkers, 1)
	defer atomic.AddInt32(&q.activeWorkers, -1)

	handler, ok := q.registry.Get(j.Type)
	if !ok {
		// Handlers register before dispatch starts; losing one mid-flight is
		// terminal for the job.
		q.store.MarkFailed(j.ID, errors.NewUnknownTypeError(j.Type).Error())
		slog.Error("Job failed, no handler", "id", j.ID, "type", j.Type)
		return
	}

	start := time.Now()
	result, err := q.execute(ctx, handler, running)
	if err != nil {
		q.handleFailure(running, err, time.Since(start))
		return
	}

	q.store.MarkCompleted(j.ID, result)
	slog.Debug("Job completed", "id", j.ID, "type", j.Type,
		"duration", time.Since(start))
}

// execute runs the handler with panic recovery
func (q *Queue) execute(ctx context.Context, handler HandlerFunc, j *job.Job) (result interface{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = errors.NewHandlerError(j.Type, j.ID, fmt.Errorf("panic: %v", r))
		}
	}()

	res, execErr := handler(ctx, j)
	if execErr != nil {
		return nil, errors.NewHandlerError(j.Type, j.ID, execErr)
	}

	return res, nil
}

// handleFailure applies the retry policy. A retry-eligible failure consumes
// one retry and schedules re-queueing after the backoff delay; otherwise the
// failure is terminal.
func (q *Queue) handleFailure(j *job.Job, err error, duration time.Duration) {
	if j.RetryCount < q.config.MaxRetries {
		updated, ok := q.store.MarkRetryScheduled(j.ID, err.Error())
		if !ok {
			return
		}

		delay := q.strategy.Delay(updated.RetryCount)
		q.retries.Schedule(j.ID, time.Now().Add(delay))

		slog.Warn("Job failed, retry scheduled", "id", j.ID, "type", j.Type,
			"retryCount", updated.RetryCount, "delay", delay,
			"duration", duration, "error", err)
		return
	}

	q.store.MarkFailed(j.ID, err.Error())
	slog.Error("Job failed", "id", j.ID, "type", j.Type,
		"retryCount", j.RetryCount, "duration", duration, "error", err)
}
