package closure_test

import (
	"context"
	"testing"
	"time"

	"moveout/internal/closure"
	"moveout/internal/inspection"
	"moveout/pkg/domain"
	"moveout/pkg/serrors"
	"moveout/pkg/storage"
	"moveout/pkg/storage/storagetest"

	"github.com/google/uuid"
	"github.com/riverqueue/river"
	"github.com/stretchr/testify/require"
)

func testOptions() closure.Options {
	return closure.Options{
		MaxAttempts:    3,
		ResultCacheTTL: time.Hour,
		Policy:         inspection.DefaultPolicy(),
	}
}

func validStart() closure.StartInput {
	return closure.StartInput{
		Reason:               "job_loss",
		DepartureDate:        time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC),
		InspectionConformant: true,
		UnpaidRent:           50000,
	}
}

func TestStart_JobAdded(t *testing.T) {
	userID := domain.UserID(uuid.New())
	leaseID := domain.LeaseID(uuid.New())

	st := &storagetest.Stub{
		LeaseByIDFn: func(_ context.Context, u domain.UserID, l domain.LeaseID) (*domain.Lease, error) {
			require.Equal(t, userID, u)
			require.Equal(t, leaseID, l)

			return &domain.Lease{ID: l, UserID: u}, nil
		},
		StoreClosuresFn: func(_ context.Context, closures ...domain.Closure) ([]domain.Closure, error) {
			require.Len(t, closures, 1)
			require.Equal(t, domain.ClosureStatusPending, closures[0].Status)
			require.Equal(t, domain.ReasonJobLoss, closures[0].Reason)
			closures[0].ID = domain.ClosureID(uuid.New())

			return closures, nil
		},
		AddJobFn: func(_ context.Context, args river.JobArgs, _ *river.InsertOpts) (bool, error) {
			require.Equal(t, "CompareInspectionsJob", args.Kind())

			return true, nil
		},
	}

	c, err := closure.New(st, testOptions()).Start(context.Background(), userID, leaseID, validStart())
	require.NoError(t, err)
	require.NotNil(t, c)
	require.Equal(t, domain.ClosureStatusPending, c.Status)
}

func TestStart_DuplicateJobReusesCompletedResult(t *testing.T) {
	userID := domain.UserID(uuid.New())
	leaseID := domain.LeaseID(uuid.New())
	cached := domain.ClosureResult{NoticeMonths: 1, TenantDamageCost: 1500}

	st := &storagetest.Stub{
		LeaseByIDFn: func(_ context.Context, u domain.UserID, l domain.LeaseID) (*domain.Lease, error) {
			return &domain.Lease{ID: l, UserID: u}, nil
		},
		StoreClosuresFn: func(_ context.Context, closures ...domain.Closure) ([]domain.Closure, error) {
			closures[0].ID = domain.ClosureID(uuid.New())

			return closures, nil
		},
		AddJobFn: func(_ context.Context, _ river.JobArgs, _ *river.InsertOpts) (bool, error) {
			return false, nil
		},
		LastCompletedByLeaseFn: func(_ context.Context, _ domain.LeaseID) (*domain.Closure, error) {
			return &domain.Closure{Status: domain.ClosureStatusCompleted, Result: cached}, nil
		},
		UpdateClosureByIDFn: func(_ context.Context,
			id domain.ClosureID, updates storage.ClosureUpdates) (*domain.Closure, error) {
			require.Equal(t, domain.ClosureStatusCompleted, updates.Status)
			require.Equal(t, &cached, updates.Result)

			return &domain.Closure{ID: id, Status: updates.Status, Result: *updates.Result}, nil
		},
	}

	c, err := closure.New(st, testOptions()).Start(context.Background(), userID, leaseID, validStart())
	require.NoError(t, err)
	require.Equal(t, domain.ClosureStatusCompleted, c.Status)
	require.Equal(t, cached, c.Result)
}

func TestStart_UnknownReasonRejected(t *testing.T) {
	in := validStart()
	in.Reason = "because"

	_, err := closure.New(&storagetest.Stub{}, testOptions()).
		Start(context.Background(), domain.UserID(uuid.New()), domain.LeaseID(uuid.New()), in)
	require.ErrorIs(t, err, serrors.ErrBadRequest)
}

func TestStart_NegativeDeductionsRejected(t *testing.T) {
	in := validStart()
	in.CleaningCosts = -1

	_, err := closure.New(&storagetest.Stub{}, testOptions()).
		Start(context.Background(), domain.UserID(uuid.New()), domain.LeaseID(uuid.New()), in)
	require.ErrorIs(t, err, serrors.ErrBadRequest)
}

func TestStart_LeaseNotFound(t *testing.T) {
	st := &storagetest.Stub{
		LeaseByIDFn: func(_ context.Context, _ domain.UserID, _ domain.LeaseID) (*domain.Lease, error) {
			return nil, nil
		},
	}

	_, err := closure.New(st, testOptions()).
		Start(context.Background(), domain.UserID(uuid.New()), domain.LeaseID(uuid.New()), validStart())
	require.ErrorIs(t, err, serrors.ErrNotFound)
}

func TestProcess_ComputesAndStoresResult(t *testing.T) {
	userID := domain.UserID(uuid.New())
	leaseID := domain.LeaseID(uuid.New())
	start := time.Date(2018, time.March, 1, 0, 0, 0, 0, time.UTC)
	exitDate := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC) // 8 years in

	pending := &domain.Closure{
		ID:                   domain.ClosureID(uuid.New()),
		UserID:               userID,
		LeaseID:              leaseID,
		Status:               domain.ClosureStatusPending,
		Reason:               domain.ReasonStandard,
		DepartureDate:        time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC),
		InspectionConformant: false,
		UnpaidRent:           30000,
		CleaningCosts:        10000,
	}

	var stored *storage.ClosureUpdates
	st := &storagetest.Stub{
		PendingCountByLeaseFn: func(_ context.Context, _ domain.LeaseID) (int64, error) { return 1, nil },
		LastPendingByLeaseFn: func(_ context.Context, _ domain.LeaseID) (*domain.Closure, error) {
			return pending, nil
		},
		LeaseByIDFn: func(_ context.Context, _ domain.UserID, l domain.LeaseID) (*domain.Lease, error) {
			return &domain.Lease{ID: l, UserID: userID, Deposit: 150000, StartDate: start}, nil
		},
		InspectionByPhaseFn: func(_ context.Context,
			_ domain.LeaseID, phase domain.InspectionPhase) (*domain.Inspection, error) {
			if phase == domain.PhaseEntry {
				return &domain.Inspection{Items: []domain.InspectionItem{
					{Category: "parquet", Condition: domain.ConditionGood},
				}}, nil
			}

			return &domain.Inspection{
				PerformedAt: exitDate,
				Items: []domain.InspectionItem{
					{Category: "parquet", Status: domain.ExitProblem, EstimatedCost: 100000},
					{Category: "kitchen walls", Status: domain.ExitOK},
				},
			}, nil
		},
		UpdatePendingByLeaseFn: func(_ context.Context,
			_ domain.LeaseID, updates storage.ClosureUpdates) error {
			stored = &updates

			return nil
		},
	}

	err := closure.New(st, testOptions()).Process(context.Background(), leaseID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	require.Equal(t, domain.ClosureStatusCompleted, stored.Status)

	res := stored.Result
	require.NotNil(t, res)
	// 8-year lease: degradation is normal wear, 60/40 split
	require.Equal(t, domain.Money(40000), res.TenantDamageCost)
	require.Equal(t, domain.Money(60000), res.WearCost)
	require.Equal(t, 1, res.WearCount)
	require.Equal(t, 0, res.TenantDamageCount)
	// standard reason outside a tight zone keeps the full notice
	require.Equal(t, 3, res.NoticeMonths)
	// non-conformant inspection extends the refund deadline to two months
	require.Equal(t, time.Date(2026, time.August, 15, 0, 0, 0, 0, time.UTC), res.LegalDeadline)
	// deposit 1500 - (300 unpaid + 400 repairs + 100 cleaning) = 700 back
	require.Equal(t, domain.Money(80000), res.Settlement.TotalDeductions)
	require.Equal(t, domain.Money(70000), res.Settlement.AmountToReturn)
	require.Zero(t, res.Settlement.AmountToPay)
}

func TestProcess_NoPendingClosures(t *testing.T) {
	st := &storagetest.Stub{
		PendingCountByLeaseFn: func(_ context.Context, _ domain.LeaseID) (int64, error) { return 0, nil },
	}

	err := closure.New(st, testOptions()).Process(context.Background(), domain.LeaseID(uuid.New()))
	require.ErrorIs(t, err, serrors.ErrConflict)
}

func TestProcess_MissingExitInspection(t *testing.T) {
	userID := domain.UserID(uuid.New())
	st := &storagetest.Stub{
		PendingCountByLeaseFn: func(_ context.Context, _ domain.LeaseID) (int64, error) { return 1, nil },
		LastPendingByLeaseFn: func(_ context.Context, l domain.LeaseID) (*domain.Closure, error) {
			return &domain.Closure{UserID: userID, LeaseID: l, Status: domain.ClosureStatusPending}, nil
		},
		LeaseByIDFn: func(_ context.Context, _ domain.UserID, l domain.LeaseID) (*domain.Lease, error) {
			return &domain.Lease{ID: l, UserID: userID}, nil
		},
		InspectionByPhaseFn: func(_ context.Context,
			_ domain.LeaseID, _ domain.InspectionPhase) (*domain.Inspection, error) {
			return nil, nil
		},
	}

	err := closure.New(st, testOptions()).Process(context.Background(), domain.LeaseID(uuid.New()))
	require.ErrorIs(t, err, serrors.ErrConflict)
}

func TestResult_NotFound(t *testing.T) {
	st := &storagetest.Stub{
		ClosureByIDFn: func(_ context.Context, _ domain.UserID, _ domain.ClosureID) (*domain.Closure, error) {
			return nil, nil
		},
	}

	_, err := closure.New(st, testOptions()).
		Result(context.Background(), domain.UserID(uuid.New()), domain.ClosureID(uuid.New()))
	require.ErrorIs(t, err, serrors.ErrNotFound)
}

func TestUserClosures_InvalidCursor(t *testing.T) {
	_, _, err := closure.New(&storagetest.Stub{}, testOptions()).
		UserClosures(context.Background(), domain.UserID(uuid.New()), "", "not-a-time", 20)
	require.ErrorIs(t, err, serrors.ErrBadRequest)
}

func TestUserClosures_Pagination(t *testing.T) {
	next := time.Date(2026, time.May, 1, 0, 0, 0, 0, time.UTC)
	st := &storagetest.Stub{
		UserClosuresFn: func(_ context.Context,
			_ domain.UserID,
			status domain.ClosureStatus,
			cursor time.Time,
			limit uint) (storage.UserClosures, error) {
			require.Equal(t, domain.ClosureStatusCompleted, status)
			require.True(t, cursor.IsZero())
			require.Equal(t, uint(10), limit)

			return storage.UserClosures{
				Closures:   []domain.Closure{{Status: status}},
				NextCursor: &next,
			}, nil
		},
	}

	closures, nextCursor, err := closure.New(st, testOptions()).
		UserClosures(context.Background(), domain.UserID(uuid.New()), domain.ClosureStatusCompleted, "", 10)
	require.NoError(t, err)
	require.Len(t, closures, 1)
	require.Equal(t, next.Format(time.RFC3339), nextCursor)
}
