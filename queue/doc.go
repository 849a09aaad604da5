// Package queue implements an in-process background job queue: jobs are
// submitted by type with an opaque payload, executed by registered handlers
// under a concurrency cap, retried with a configurable delay on failure, and
// observable at any time through the status store.
//
// # Example
//
//	reg := registry.NewRegistry()
//	reg.Register("email", func(ctx context.Context, j *job.Job) (interface{}, error) {
//		return sendEmail(ctx, j.Data)
//	})
//
//	q := queue.New(reg, store.NewStore(),
//		queue.WithConcurrency(3),
//		queue.WithMaxRetries(2),
//		queue.WithRetryDelay(5*time.Second),
//	)
//
//	ctx, cancel := context.WithCancel(context.Background())
//	defer cancel()
//	q.Start(ctx)
//	defer q.Stop()
//
//	id, err := q.Submit("email", map[string]interface{}{"to": "user@example.com"})
//	if err != nil {
//		// unknown job type: no job record was created
//	}
//
//	// Poll for completion.
//	j, ok := q.GetJob(id)
//
// Submission never blocks on execution. Among pending jobs dispatch order is
// submission order; a retried job re-enters the pending set when its delay
// elapses, behind anything submitted in the meantime.
//
// There is no per-job execution timeout: a handler that never returns
// occupies its worker slot indefinitely. Handlers should honor the context
// they receive. Job state lives only in memory and is lost on process exit.
package queue
