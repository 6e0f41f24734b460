package storage

import (
	"context"

	"github.com/riverqueue/river"
)

// JobStorage defines the minimal interface for enqueueing background jobs on
// the durable queue. The args parameter carries the job payload; opts can
// customize insertion behavior (queue name, delay, priority). Implementations
// must be atomic with respect to any surrounding transaction when the backend
// supports it, so a scan row and its job appear together or not at all.
type JobStorage interface {
	// AddJob enqueues a new job with the given arguments. The boolean result
	// reports whether a job was actually inserted (false when uniqueness
	// constraints matched an existing job).
	AddJob(ctx context.Context, args river.JobArgs, opts *river.InsertOpts) (bool, error)
}
