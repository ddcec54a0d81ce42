package storage

import (
	"context"

	"moveout/pkg/domain"
)

// LeaseStorage defines CRUD and query operations related to leases.
// Implementations should handle soft deletes: deleted rows are excluded from
// all reads.
type LeaseStorage interface {
	// StoreLeases inserts one or more leases and returns the stored rows as
	// they exist in the database (including generated fields).
	StoreLeases(ctx context.Context, leases ...domain.Lease) ([]domain.Lease, error)
	// LeaseByID fetches a lease by its ID for the given user, excluding
	// soft-deleted records. Returns nil when not found.
	LeaseByID(ctx context.Context, userID domain.UserID, id domain.LeaseID) (*domain.Lease, error)
}
