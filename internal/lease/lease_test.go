package lease_test

import (
	"context"
	"testing"
	"time"

	"moveout/internal/lease"
	"moveout/pkg/domain"
	"moveout/pkg/serrors"
	"moveout/pkg/storage/storagetest"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func validCreate() lease.CreateInput {
	return lease.CreateInput{
		TenantName:  "Jean Martin",
		Deposit:     150000,
		MonthlyRent: 75000,
		StartDate:   time.Date(2020, time.September, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestCreate(t *testing.T) {
	userID := domain.UserID(uuid.New())
	st := &storagetest.Stub{
		StoreLeasesFn: func(_ context.Context, leases ...domain.Lease) ([]domain.Lease, error) {
			require.Len(t, leases, 1)
			require.Equal(t, userID, leases[0].UserID)
			require.Equal(t, domain.Money(150000), leases[0].Deposit)
			leases[0].ID = domain.LeaseID(uuid.New())

			return leases, nil
		},
	}

	l, err := lease.New(st).Create(context.Background(), userID, validCreate())
	require.NoError(t, err)
	require.Equal(t, "Jean Martin", l.TenantName)
}

func TestCreate_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*lease.CreateInput)
	}{
		{"missing tenant name", func(in *lease.CreateInput) { in.TenantName = "" }},
		{"missing start date", func(in *lease.CreateInput) { in.StartDate = time.Time{} }},
		{"negative deposit", func(in *lease.CreateInput) { in.Deposit = -1 }},
		{"negative rent", func(in *lease.CreateInput) { in.MonthlyRent = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validCreate()
			tt.mutate(&in)

			_, err := lease.New(&storagetest.Stub{}).
				Create(context.Background(), domain.UserID(uuid.New()), in)
			require.ErrorIs(t, err, serrors.ErrBadRequest)
		})
	}
}

func validEntryInspection() lease.InspectionInput {
	return lease.InspectionInput{
		Phase:       "ENTRY",
		PerformedAt: time.Date(2020, time.September, 1, 0, 0, 0, 0, time.UTC),
		Items: []domain.InspectionItem{
			{Category: "parquet", Condition: domain.ConditionGood},
		},
	}
}

func TestAddInspection(t *testing.T) {
	userID := domain.UserID(uuid.New())
	leaseID := domain.LeaseID(uuid.New())

	st := &storagetest.Stub{
		LeaseByIDFn: func(_ context.Context, _ domain.UserID, l domain.LeaseID) (*domain.Lease, error) {
			return &domain.Lease{ID: l, UserID: userID}, nil
		},
		StoreInspectionFn: func(_ context.Context, in domain.Inspection) (*domain.Inspection, error) {
			require.Equal(t, domain.PhaseEntry, in.Phase)
			require.Equal(t, leaseID, in.LeaseID)
			in.ID = domain.InspectionID(uuid.New())

			return &in, nil
		},
	}

	insp, err := lease.New(st).AddInspection(context.Background(), userID, leaseID, validEntryInspection())
	require.NoError(t, err)
	require.Len(t, insp.Items, 1)
}

func TestAddInspection_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*lease.InspectionInput)
	}{
		{"unknown phase", func(in *lease.InspectionInput) { in.Phase = "MIDTERM" }},
		{"missing date", func(in *lease.InspectionInput) { in.PerformedAt = time.Time{} }},
		{"no items", func(in *lease.InspectionInput) { in.Items = nil }},
		{"missing category", func(in *lease.InspectionInput) { in.Items[0].Category = "" }},
		{"bad condition on entry", func(in *lease.InspectionInput) { in.Items[0].Condition = "pristine" }},
		{"negative cost", func(in *lease.InspectionInput) { in.Items[0].EstimatedCost = -1 }},
		{"bad status on exit", func(in *lease.InspectionInput) {
			in.Phase = "EXIT"
			in.Items[0].Status = "meh"
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validEntryInspection()
			tt.mutate(&in)

			_, err := lease.New(&storagetest.Stub{}).
				AddInspection(context.Background(), domain.UserID(uuid.New()), domain.LeaseID(uuid.New()), in)
			require.ErrorIs(t, err, serrors.ErrBadRequest)
		})
	}
}

func TestAddInspection_LeaseNotFound(t *testing.T) {
	st := &storagetest.Stub{
		LeaseByIDFn: func(_ context.Context, _ domain.UserID, _ domain.LeaseID) (*domain.Lease, error) {
			return nil, nil
		},
	}

	_, err := lease.New(st).AddInspection(context.Background(),
		domain.UserID(uuid.New()), domain.LeaseID(uuid.New()), validEntryInspection())
	require.ErrorIs(t, err, serrors.ErrNotFound)
}

func TestLease_NotFound(t *testing.T) {
	st := &storagetest.Stub{
		LeaseByIDFn: func(_ context.Context, _ domain.UserID, _ domain.LeaseID) (*domain.Lease, error) {
			return nil, nil
		},
	}

	_, err := lease.New(st).Lease(context.Background(),
		domain.UserID(uuid.New()), domain.LeaseID(uuid.New()))
	require.ErrorIs(t, err, serrors.ErrNotFound)
}
