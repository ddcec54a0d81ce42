package postgres_test

import (
	"context"
	"moveout/pkg/domain"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestPgSQL_StoreIdentityCheck(t *testing.T) {
	t.Parallel()

	pgSQL, cleanup := setupTestDB(t)
	t.Cleanup(cleanup)
	ctx := context.Background()

	userID := domain.UserID(uuid.New())

	stored, err := pgSQL.StoreIdentityCheck(ctx, domain.IdentityCheck{
		UserID: userID,
		Status: domain.IdentityStatusValid,
		Record: domain.MRZRecord{
			DocumentType:   "ID",
			CountryCode:    "FRA",
			DocumentNumber: "X4RTBPFW4",
			Nationality:    "FRA",
			Sex:            "M",
			DateOfBirth:    time.Date(1975, time.January, 15, 0, 0, 0, 0, time.UTC),
			ExpiryDate:     time.Date(2030, time.January, 14, 0, 0, 0, 0, time.UTC),
			LastName:       "MARTIN",
			FirstName:      "JEAN PIERRE",
			Valid:          true,
		},
	})
	require.NoError(t, err)
	require.NotNil(t, stored)
	require.NotEqual(t, domain.IdentityCheckID(uuid.Nil), stored.ID)
	require.Equal(t, domain.IdentityStatusValid, stored.Status)
	require.Equal(t, "X4RTBPFW4", stored.Record.DocumentNumber)
	require.Equal(t, "MARTIN", stored.Record.LastName)
	require.True(t, stored.Record.Valid)
	require.False(t, stored.CreatedAt.IsZero())
}

func TestPgSQL_IdentityChecksByUser(t *testing.T) {
	t.Parallel()

	pgSQL, cleanup := setupTestDB(t)
	t.Cleanup(cleanup)
	ctx := context.Background()

	userA := domain.UserID(uuid.New())
	userB := domain.UserID(uuid.New())

	for _, status := range []domain.IdentityStatus{
		domain.IdentityStatusNotFound,
		domain.IdentityStatusReview,
		domain.IdentityStatusValid,
	} {
		_, err := pgSQL.StoreIdentityCheck(ctx, domain.IdentityCheck{UserID: userA, Status: status})
		require.NoError(t, err)
	}
	_, err := pgSQL.StoreIdentityCheck(ctx, domain.IdentityCheck{UserID: userB, Status: domain.IdentityStatusValid})
	require.NoError(t, err)

	// only userA's checks, limited
	checks, err := pgSQL.IdentityChecksByUser(ctx, userA, 2)
	require.NoError(t, err)
	require.Len(t, checks, 2)

	checks, err = pgSQL.IdentityChecksByUser(ctx, userA, 10)
	require.NoError(t, err)
	require.Len(t, checks, 3)
	for _, c := range checks {
		require.Equal(t, userA, c.UserID)
	}
}
