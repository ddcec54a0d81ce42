package storage

import (
	"context"

	"moveout/pkg/domain"
)

// IdentityStorage persists MRZ verification outcomes for audit.
type IdentityStorage interface {
	// StoreIdentityCheck inserts a verification record and returns the stored row.
	StoreIdentityCheck(ctx context.Context, check domain.IdentityCheck) (*domain.IdentityCheck, error)
	// IdentityChecksByUser returns the most recent checks for a user, newest
	// first, limited by limit.
	IdentityChecksByUser(ctx context.Context, userID domain.UserID, limit uint) ([]domain.IdentityCheck, error)
}
