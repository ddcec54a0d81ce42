package storage

import (
	"context"

	"github.com/riverqueue/river"
)

// JobStorage defines the minimal interface for enqueueing background jobs.
// Implementations are responsible for persisting the job into the underlying
// queue backend. The args parameter contains the job payload and opts can be
// used to customize insertion behavior (e.g., queue name, delay, priority).
// The insert should be atomic with respect to any surrounding transaction
// when supported by the backend.
type JobStorage interface {
	// AddJob enqueues a new job with the given arguments. The boolean result is
	// false when the backend skipped the insert because an equivalent unique
	// job already exists.
	AddJob(ctx context.Context, args river.JobArgs, opts *river.InsertOpts) (bool, error)
}
