package worker_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/rivertype"
	"github.com/stretchr/testify/require"

	"moveout/internal/closure"
	"moveout/internal/worker"
	"moveout/pkg/domain"
	"moveout/pkg/logger"
	"moveout/pkg/serrors"
	"moveout/pkg/storage"
	"moveout/pkg/storage/storagetest"
)

func TestMain(m *testing.M) {
	logger.Setup(logger.DevelopmentEnvironment)
	m.Run()
}

// stubService implements closure.Service; only Process is expected to run.
type stubService struct {
	closure.Service

	processFn func(ctx context.Context, leaseID domain.LeaseID) error
}

func (s stubService) Process(ctx context.Context, leaseID domain.LeaseID) error {
	return s.processFn(ctx, leaseID)
}

func makeJob(id int64, leaseID uuid.UUID) *river.Job[closure.JobArgs] {
	return &river.Job[closure.JobArgs]{
		JobRow: &rivertype.JobRow{ID: id},
		Args:   closure.JobArgs{LeaseID: leaseID},
	}
}

func TestClosureWorker_Work_Success(t *testing.T) {
	leaseID := uuid.New()
	svc := stubService{processFn: func(_ context.Context, l domain.LeaseID) error {
		require.Equal(t, domain.LeaseID(leaseID), l)

		return nil
	}}

	w := worker.NewClosureWorker(svc, &storagetest.Stub{}, 3)
	require.NoError(t, w.Work(context.Background(), makeJob(1, leaseID)))
}

func TestClosureWorker_Work_ConflictCancels(t *testing.T) {
	svc := stubService{processFn: func(_ context.Context, _ domain.LeaseID) error {
		return serrors.With(serrors.ErrConflict, "no pending closures")
	}}

	w := worker.NewClosureWorker(svc, &storagetest.Stub{}, 3)
	err := w.Work(context.Background(), makeJob(2, uuid.New()))
	require.Error(t, err)
	var cancelErr *river.JobCancelError
	require.ErrorAs(t, err, &cancelErr)
}

func TestClosureWorker_Work_FailureRecordedOnClosures(t *testing.T) {
	leaseID := uuid.New()
	processErr := errors.New("boom")

	var recorded *storage.ClosureUpdates
	st := &storagetest.Stub{
		UpdatePendingByLeaseFn: func(_ context.Context,
			l domain.LeaseID, updates storage.ClosureUpdates) error {
			require.Equal(t, domain.LeaseID(leaseID), l)
			recorded = &updates

			return nil
		},
	}

	svc := stubService{processFn: func(_ context.Context, _ domain.LeaseID) error {
		return processErr
	}}

	w := worker.NewClosureWorker(svc, st, 5)
	err := w.Work(context.Background(), makeJob(3, leaseID))
	require.ErrorIs(t, err, processErr)
	var cancelErr *river.JobCancelError
	require.NotErrorAs(t, err, &cancelErr)

	require.NotNil(t, recorded)
	require.Equal(t, domain.ClosureStatusFailed, recorded.Status)
	require.Equal(t, 5, recorded.MaxAttempts)
	require.NotNil(t, recorded.LastError)
	require.Contains(t, *recorded.LastError, "boom")
}
