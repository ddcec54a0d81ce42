package postgres_test

import (
	"context"
	"moveout/pkg/domain"
	"moveout/pkg/storage/postgres"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func storeTestLease(t *testing.T, pgSQL *postgres.PgSQL, userID domain.UserID) domain.Lease {
	t.Helper()

	stored, err := pgSQL.StoreLeases(context.Background(), domain.Lease{
		UserID:          userID,
		TenantName:      "Jean Martin",
		Deposit:         150000,
		MonthlyRent:     75000,
		StartDate:       time.Date(2018, time.March, 1, 0, 0, 0, 0, time.UTC),
		TightMarketZone: false,
	})
	require.NoError(t, err)
	require.Len(t, stored, 1)

	return stored[0]
}

func TestPgSQL_StoreLeases(t *testing.T) {
	t.Parallel()

	pgSQL, cleanup := setupTestDB(t)
	t.Cleanup(cleanup)

	ctx := context.Background()
	userID := domain.UserID(uuid.New())

	t.Run("store single lease", func(t *testing.T) {
		l := domain.Lease{
			UserID:          userID,
			TenantName:      "Claire Dubois",
			Deposit:         120000,
			MonthlyRent:     60000,
			StartDate:       time.Date(2020, time.September, 1, 0, 0, 0, 0, time.UTC),
			TightMarketZone: true,
		}

		res, err := pgSQL.StoreLeases(ctx, l)
		require.NoError(t, err)
		require.Len(t, res, 1)
		require.Equal(t, "Claire Dubois", res[0].TenantName)
		require.Equal(t, domain.Money(120000), res[0].Deposit)
		require.True(t, res[0].TightMarketZone)
		require.NotEqual(t, domain.LeaseID(uuid.Nil), res[0].ID)
		require.False(t, res[0].CreatedAt.IsZero())
	})

	t.Run("store multiple leases", func(t *testing.T) {
		l1 := domain.Lease{UserID: userID, TenantName: "A", StartDate: time.Now().UTC()}
		l2 := domain.Lease{UserID: userID, TenantName: "B", StartDate: time.Now().UTC()}

		res, err := pgSQL.StoreLeases(ctx, l1, l2)
		require.NoError(t, err)
		require.Len(t, res, 2)
	})

	t.Run("store empty leases", func(t *testing.T) {
		res, err := pgSQL.StoreLeases(ctx)
		require.NoError(t, err)
		require.Empty(t, res)
	})
}

func TestPgSQL_LeaseByID(t *testing.T) {
	t.Parallel()

	pgSQL, cleanup := setupTestDB(t)
	t.Cleanup(cleanup)
	ctx := context.Background()

	userA := domain.UserID(uuid.New())
	userB := domain.UserID(uuid.New())
	lease := storeTestLease(t, pgSQL, userA)

	// correct user & id
	got, err := pgSQL.LeaseByID(ctx, userA, lease.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, lease.ID, got.ID)
	require.Equal(t, lease.TenantName, got.TenantName)

	// wrong user should not see other's lease
	got2, err := pgSQL.LeaseByID(ctx, userB, lease.ID)
	require.NoError(t, err)
	require.Nil(t, got2)

	// unknown id
	got3, err := pgSQL.LeaseByID(ctx, userA, domain.LeaseID(uuid.New()))
	require.NoError(t, err)
	require.Nil(t, got3)
}
