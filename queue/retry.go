package queue

import (
	"container/heap"
	"context"
	"sync/atomic"
	"time"
)

type retryItem struct {
	runAt time.Time // when the job becomes eligible for re-dispatch
	seq   int64     // tie-breaker for equal runAt
	id    string
}

type retryHeap []retryItem

func (h retryHeap) Len() int { return len(h) }
func (h retryHeap) Less(i, j int) bool {
	if h[i].runAt.Equal(h[j].runAt) {
		return h[i].seq < h[j].seq
	}
	return h[i].runAt.Before(h[j].runAt)
}
func (h retryHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *retryHeap) Push(x interface{}) { *h = append(*h, x.(retryItem)) }
func (h *retryHeap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// retryScheduler holds failed jobs until their retry delay elapses, then
// hands them back to the queue. Waiting jobs live in a min-heap ordered by
// eligibility time, watched by a single timer set to the head's deadline, so
// a waiting retry never occupies a worker slot.
type retryScheduler struct {
	requeue func(id string)
	in      chan retryItem
	seq     int64
	timer   *time.Timer
	pending retryHeap
}

func newRetryScheduler(requeue func(id string)) *retryScheduler {
	return &retryScheduler{
		requeue: requeue,
		in:      make(chan retryItem, 64),
		timer:   time.NewTimer(time.Hour), // reset before first use
	}
}

// Schedule makes the job eligible for re-dispatch no earlier than at.
// Safe to call from any worker goroutine.
func (m *retryScheduler) Schedule(id string, at time.Time) {
	m.in <- retryItem{runAt: at, seq: atomic.AddInt64(&m.seq, 1), id: id}
}

// Start runs the scheduler loop until the context is cancelled.
func (m *retryScheduler) Start(ctx context.Context) {
	heap.Init(&m.pending)

	// The constructor's timer may already be armed; disarm it so the first
	// deadline comes from the heap.
	_ = m.timer.Stop()

	for {
		var deadline <-chan time.Time

		if len(m.pending) > 0 {
			d := time.Until(m.pending[0].runAt)
			if d < 0 {
				d = 0
			}
			m.resetTimer(d)
			deadline = m.timer.C
		}

		select {
		case <-ctx.Done():
			_ = m.timer.Stop()
			return

		case it := <-m.in:
			heap.Push(&m.pending, it)

		case <-deadline:
			if len(m.pending) == 0 {
				continue
			}
			it := heap.Pop(&m.pending).(retryItem)
			m.requeue(it.id)
		}
	}
}

// resetTimer re-arms the shared timer to fire after d.
func (m *retryScheduler) resetTimer(d time.Duration) {
	if !m.timer.Stop() {
		select {
		case <-m.timer.C:
		default:
		}
	}
	m.timer.Reset(d)
}
