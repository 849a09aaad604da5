// Package store provides the in-memory status store: the table of all
// submitted jobs, read concurrently by status-polling callers while the
// scheduler mutates it.
package store

import (
	"sync"
	"time"

	"github.com/queuekit/queuekit/errors"
	"github.com/queuekit/queuekit/job"
)

// Store is an in-memory job table keyed by id, preserving insertion order.
// All reads return clones so a reader never observes a half-updated job.
type Store struct {
	mu    sync.RWMutex
	jobs  map[string]*job.Job
	order []string
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		jobs: make(map[string]*job.Job),
	}
}

// Put records a newly submitted job
func (s *Store) Put(j *job.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.jobs[j.ID]; exists {
		return errors.ErrDuplicateJob
	}

	s.jobs[j.ID] = j.Clone()
	s.order = append(s.order, j.ID)
	return nil
}

// Get retrieves a copy of a job by id
func (s *Store) Get(id string) (*job.Job, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	j, ok := s.jobs[id]
	if !ok {
		return nil, false
	}
	return j.Clone(), true
}

// List returns copies of all jobs in insertion order
func (s *Store) List() []*job.Job {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*job.Job, 0, len(s.order))
	for _, id := range s.order {
		if j, ok := s.jobs[id]; ok {
			out = append(out, j.Clone())
		}
	}
	return out
}

// ListByStatus returns copies of all jobs with the given status, in
// insertion order
func (s *Store) ListByStatus(status job.Status) []*job.Job {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*job.Job
	for _, id := range s.order {
		if j, ok := s.jobs[id]; ok && j.Status == status {
			out = append(out, j.Clone())
		}
	}
	return out
}

// Counts returns the number of jobs per status
func (s *Store) Counts() map[job.Status]int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[job.Status]int, 4)
	for _, j := range s.jobs {
		counts[j.Status]++
	}
	return counts
}

// Len returns the number of stored jobs
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.jobs)
}

// MarkRunning transitions a pending job to running. StartedAt is stamped on
// the first pickup only.
func (s *Store) MarkRunning(id string) (*job.Job, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	j, ok := s.jobs[id]
	if !ok || j.Status != job.StatusPending {
		return nil, false
	}

	j.Status = job.StatusRunning
	if j.StartedAt == nil {
		now := time.Now().UTC()
		j.StartedAt = &now
	}
	return j.Clone(), true
}

// MarkCompleted records the handler result and stamps CompletedAt. A
// completed job carries no active error.
func (s *Store) MarkCompleted(id string, result interface{}) (*job.Job, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	j, ok := s.jobs[id]
	if !ok {
		return nil, false
	}

	now := time.Now().UTC()
	j.Status = job.StatusCompleted
	j.Result = result
	j.Error = ""
	j.CompletedAt = &now
	return j.Clone(), true
}

// MarkRetryScheduled records a retry-eligible failure: the error is visible
// to pollers, one retry is consumed, and the job stays non-terminal until
// the retry delay elapses.
func (s *Store) MarkRetryScheduled(id string, errMsg string) (*job.Job, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	j, ok := s.jobs[id]
	if !ok {
		return nil, false
	}

	j.Status = job.StatusFailed
	j.Error = errMsg
	j.RetryCount++
	return j.Clone(), true
}

// MarkFailed records a terminal failure and stamps CompletedAt
func (s *Store) MarkFailed(id string, errMsg string) (*job.Job, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	j, ok := s.jobs[id]
	if !ok {
		return nil, false
	}

	now := time.Now().UTC()
	j.Status = job.StatusFailed
	j.Error = errMsg
	j.Result = nil
	j.CompletedAt = &now
	return j.Clone(), true
}

// Requeue moves a failed job awaiting retry back to pending. It reports
// false if the job was purged in the meantime or is not awaiting retry.
func (s *Store) Requeue(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	j, ok := s.jobs[id]
	if !ok || j.Status != job.StatusFailed || j.CompletedAt != nil {
		return false
	}

	j.Status = job.StatusPending
	return true
}

// ClearFinished removes all completed and failed jobs and returns how many
// were removed. Pending and running jobs survive.
func (s *Store) ClearFinished() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	kept := s.order[:0]
	for _, id := range s.order {
		j, ok := s.jobs[id]
		if !ok {
			continue
		}
		if j.Finished() {
			delete(s.jobs, id)
			removed++
			continue
		}
		kept = append(kept, id)
	}
	s.order = kept
	return removed
}
