package identity_test

import (
	"context"
	"testing"
	"time"

	"moveout/internal/identity"
	"moveout/internal/mrz"
	"moveout/pkg/domain"
	"moveout/pkg/serrors"
	"moveout/pkg/storage/storagetest"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

const validOCR = `CARTE NATIONALE D'IDENTITE
IDFRAX4RTBPFW46<<<<<<<<<<<<<<<
7501159M3001145FRA<<<<<<<<<<<<
MARTIN<<JEAN<PIERRE<<<<<<<<<<<`

func clock2026() time.Time {
	return time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
}

func storeStub(t *testing.T, want domain.IdentityStatus) *storagetest.Stub {
	t.Helper()

	return &storagetest.Stub{
		StoreIdentityCheckFn: func(_ context.Context,
			check domain.IdentityCheck) (*domain.IdentityCheck, error) {
			require.Equal(t, want, check.Status)
			check.ID = domain.IdentityCheckID(uuid.New())
			check.CreatedAt = time.Now()

			return &check, nil
		},
	}
}

func TestVerify_Valid(t *testing.T) {
	svc := identity.New(storeStub(t, domain.IdentityStatusValid), mrz.WithClock(clock2026))

	check, err := svc.Verify(context.Background(), domain.UserID(uuid.New()), validOCR)
	require.NoError(t, err)
	require.Equal(t, domain.IdentityStatusValid, check.Status)
	require.Equal(t, "X4RTBPFW4", check.Record.DocumentNumber)
	require.Equal(t, "FRA", check.Record.Nationality)
	require.Equal(t, "MARTIN", check.Record.LastName)
	require.Equal(t, "JEAN PIERRE", check.Record.FirstName)
	require.Equal(t, 1975, check.Record.DateOfBirth.Year())
	require.True(t, check.Record.Valid)
}

func TestVerify_ChecksumFailureNeedsReview(t *testing.T) {
	// corrupt the birth date so its check digit no longer matches
	ocr := `IDFRAX4RTBPFW46<<<<<<<<<<<<<<<
7501169M3001145FRA<<<<<<<<<<<<
MARTIN<<JEAN<PIERRE<<<<<<<<<<<`

	svc := identity.New(storeStub(t, domain.IdentityStatusReview), mrz.WithClock(clock2026))

	check, err := svc.Verify(context.Background(), domain.UserID(uuid.New()), ocr)
	require.NoError(t, err)
	require.Equal(t, domain.IdentityStatusReview, check.Status)
	require.False(t, check.Record.Valid)
}

func TestVerify_NoZoneFound(t *testing.T) {
	svc := identity.New(storeStub(t, domain.IdentityStatusNotFound), mrz.WithClock(clock2026))

	check, err := svc.Verify(context.Background(), domain.UserID(uuid.New()),
		"just a scanned utility bill, nothing machine readable")
	require.NoError(t, err)
	require.Equal(t, domain.IdentityStatusNotFound, check.Status)
	require.Empty(t, check.Record.DocumentNumber)
}

func TestVerify_EmptyOCRRejected(t *testing.T) {
	svc := identity.New(&storagetest.Stub{})

	_, err := svc.Verify(context.Background(), domain.UserID(uuid.New()), "")
	require.ErrorIs(t, err, serrors.ErrBadRequest)
}

func TestUserChecks(t *testing.T) {
	userID := domain.UserID(uuid.New())
	st := &storagetest.Stub{
		IdentityChecksByUserFn: func(_ context.Context,
			u domain.UserID, limit uint) ([]domain.IdentityCheck, error) {
			require.Equal(t, userID, u)
			require.Equal(t, uint(5), limit)

			return []domain.IdentityCheck{{UserID: u, Status: domain.IdentityStatusValid}}, nil
		},
	}

	checks, err := identity.New(st).UserChecks(context.Background(), userID, 5)
	require.NoError(t, err)
	require.Len(t, checks, 1)
}
