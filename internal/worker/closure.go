package worker

import (
	"context"
	"errors"
	"fmt"

	"moveout/internal/closure"
	"moveout/pkg/domain"
	"moveout/pkg/logger"
	"moveout/pkg/metrics"
	"moveout/pkg/serrors"
	"moveout/pkg/storage"

	"github.com/riverqueue/river"
	"go.uber.org/zap"
)

// ClosureWorker is a River worker that runs the end-of-lease computation for
// a lease's pending closures. Failures are recorded on the pending rows so
// users can see the last error; the status only flips to failed once the
// attempt budget is exhausted.
type ClosureWorker struct {
	river.WorkerDefaults[closure.JobArgs]

	service     closure.Service
	storage     storage.Storage
	maxAttempts int
}

// NewClosureWorker constructs a ClosureWorker.
func NewClosureWorker(service closure.Service, strg storage.Storage, maxAttempts int) *ClosureWorker {
	return &ClosureWorker{
		service:     service,
		storage:     strg,
		maxAttempts: maxAttempts,
	}
}

// Work executes a single comparison job. A conflict means the job has nothing
// left to do (closures were deleted or prerequisites are missing for good),
// so it is canceled instead of retried.
func (w *ClosureWorker) Work(ctx context.Context, job *river.Job[closure.JobArgs]) error {
	ctx = logger.WithFields(ctx,
		zap.Int64("jobID", job.ID),
		zap.Stringer("leaseID", job.Args.LeaseID))

	err := w.service.Process(ctx, domain.LeaseID(job.Args.LeaseID))
	if err == nil {
		logger.Info(ctx, "lease closure processed successfully")
		metrics.ClosuresProcessed.WithLabelValues(metrics.OutcomeCompleted).Inc()

		return nil
	}

	if errors.Is(err, serrors.ErrConflict) {
		metrics.ClosuresProcessed.WithLabelValues(metrics.OutcomeCanceled).Inc()

		return river.JobCancel(err) //nolint: wrapcheck
	}

	logger.Error(ctx, "error processing lease closure", zap.Error(err))
	metrics.ClosuresProcessed.WithLabelValues(metrics.OutcomeFailed).Inc()

	lastError := err.Error()
	if updateErr := w.storage.UpdatePendingClosuresByLease(ctx,
		domain.LeaseID(job.Args.LeaseID), storage.ClosureUpdates{
			Status:      domain.ClosureStatusFailed,
			LastError:   &lastError,
			MaxAttempts: w.maxAttempts,
		}); updateErr != nil {
		logger.Error(ctx, "error recording closure failure", zap.Error(updateErr))
	}

	return fmt.Errorf("could not process lease closure: %w", err)
}
