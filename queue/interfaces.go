package queue

import (
	"context"

	"github.com/queuekit/queuekit/job"
)

// HandlerFunc is the function signature for job handlers. The handler
// receives a copy of the job and returns the result recorded on completion.
// Handlers must not touch the job's bookkeeping fields; the scheduler owns
// them.
type HandlerFunc func(ctx context.Context, j *job.Job) (interface{}, error)

// Registry interface defines what the queue needs from a handler registry
type Registry interface {
	// Register adds a handler function for a job type
	Register(jobType string, handler HandlerFunc) error

	// Get retrieves a handler function by job type
	Get(jobType string) (HandlerFunc, bool)
}

// Store interface defines what the queue needs from a status store
type Store interface {
	// Put records a newly submitted job
	Put(j *job.Job) error

	// Get retrieves a copy of a job by id
	Get(id string) (*job.Job, bool)

	// List returns copies of all jobs in insertion order
	List() []*job.Job

	// ListByStatus returns copies of all jobs with the given status
	ListByStatus(status job.Status) []*job.Job

	// Counts returns the number of jobs per status
	Counts() map[job.Status]int

	// MarkRunning transitions a pending job to running and stamps StartedAt
	// on the first pickup
	MarkRunning(id string) (*job.Job, bool)

	// MarkCompleted records the result and stamps CompletedAt
	MarkCompleted(id string, result interface{}) (*job.Job, bool)

	// MarkRetryScheduled records the failure and consumes one retry; the job
	// stays non-terminal while the retry delay elapses
	MarkRetryScheduled(id string, errMsg string) (*job.Job, bool)

	// MarkFailed records a terminal failure and stamps CompletedAt
	MarkFailed(id string, errMsg string) (*job.Job, bool)

	// Requeue moves a retry-eligible failed job back to pending. It reports
	// false if the job was purged or is not awaiting retry.
	Requeue(id string) bool

	// ClearFinished removes all completed and failed jobs and returns how
	// many were removed
	ClearFinished() int
}

// QueueStats is a point-in-time snapshot of queue state.
type QueueStats struct {
	Pending       int `json:"pending"`
	Running       int `json:"running"`
	Completed     int `json:"completed"`
	Failed        int `json:"failed"`
	ActiveWorkers int `json:"activeWorkers"`
}
