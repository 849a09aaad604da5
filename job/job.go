package job

import (
	"time"

	"github.com/google/uuid"
)

// Status represents the lifecycle state of a job.
type Status string

const (
	// StatusPending means the job is waiting to be picked up by a worker.
	StatusPending Status = "pending"
	// StatusRunning means a worker is currently executing the job.
	StatusRunning Status = "running"
	// StatusCompleted means the job finished successfully.
	StatusCompleted Status = "completed"
	// StatusFailed means the most recent attempt failed. The job is terminal
	// once CompletedAt is set; before that a retry may still be scheduled.
	StatusFailed Status = "failed"
)

// Valid reports whether s is a known status value.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusRunning, StatusCompleted, StatusFailed:
		return true
	}
	return false
}

// Job is one submitted unit of asynchronous work. ID, Type, Data and
// CreatedAt are immutable after construction; the remaining fields are
// mutated only by the scheduler, through the store.
type Job struct {
	ID          string      `json:"id"`
	Type        string      `json:"type"`
	Data        interface{} `json:"data,omitempty"`
	Status      Status      `json:"status"`
	Result      interface{} `json:"result,omitempty"`
	Error       string      `json:"error,omitempty"`
	RetryCount  int         `json:"retryCount"`
	CreatedAt   time.Time   `json:"createdAt"`
	StartedAt   *time.Time  `json:"startedAt,omitempty"`
	CompletedAt *time.Time  `json:"completedAt,omitempty"`
}

// New creates a pending job with a generated id.
func New(jobType string, data interface{}) *Job {
	return &Job{
		ID:        uuid.NewString(),
		Type:      jobType,
		Data:      data,
		Status:    StatusPending,
		CreatedAt: time.Now().UTC(),
	}
}

// Clone returns a copy of the job. Data and Result are shared references;
// handlers and callers treat them as read-only.
func (j *Job) Clone() *Job {
	cp := *j
	if j.StartedAt != nil {
		t := *j.StartedAt
		cp.StartedAt = &t
	}
	if j.CompletedAt != nil {
		t := *j.CompletedAt
		cp.CompletedAt = &t
	}
	return &cp
}

// Finished reports whether the job is in a purgeable state.
func (j *Job) Finished() bool {
	return j.Status == StatusCompleted || j.Status == StatusFailed
}

// Terminal reports whether the job has reached its final state and no
// further attempt will be made.
func (j *Job) Terminal() bool {
	return j.Finished() && j.CompletedAt != nil
}
