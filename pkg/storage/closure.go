package storage

import (
	"context"
	"time"

	"moveout/pkg/domain"
)

// ClosureUpdates describes a set of optional fields that can be applied to an
// existing closure during an update. Only non-nil fields will be updated.
type ClosureUpdates struct {
	// Status is the new status to set for the closure.
	Status domain.ClosureStatus
	// Result, when provided, replaces the stored closure result payload.
	Result *domain.ClosureResult
	// LastError, when provided, sets the last error text. An empty string value
	// indicates the error should be cleared (set to NULL).
	LastError *string
	// MaxAttempts, when provided alongside a Failed status, ensures that status
	// is only updated to Failed if the current attempts after increment would
	// exceed this threshold. A value <= 0 disables this guard.
	MaxAttempts int
}

// UserClosures groups a page of closures returned for a user together with an
// optional NextCursor used for pagination.
type UserClosures struct {
	// Closures contains the current page of closure records.
	Closures []domain.Closure
	// NextCursor points to the timestamp to be used as the cursor for fetching
	// the next page. It is nil when there is no next page.
	NextCursor *time.Time
}

// ClosureStorage defines CRUD and query operations related to end-of-lease
// closures. Implementations should ensure idempotency and proper handling of
// soft-deletes where applicable.
type ClosureStorage interface {
	// StoreClosures inserts one or more closures and returns the stored rows as
	// they exist in the database (including generated fields).
	StoreClosures(ctx context.Context, closures ...domain.Closure) ([]domain.Closure, error)
	// UpdatePendingClosuresByLease updates all pending closures for the given
	// lease using the provided field set.
	// Notes:
	// - Attempts is incremented by 1 and updated_at is set automatically.
	// - If Status is Failed and MaxAttempts > 0, status is only set to Failed
	//   when the attempts after increment would exceed MaxAttempts; otherwise
	//   status remains unchanged (i.e., stays Pending).
	UpdatePendingClosuresByLease(ctx context.Context, leaseID domain.LeaseID, updates ClosureUpdates) error
	// PendingClosureCountByLease returns the total number of pending closures
	// for the given lease. Soft-deleted records are excluded from the count.
	PendingClosureCountByLease(ctx context.Context, leaseID domain.LeaseID) (int64, error)
	// UpdateClosureByID updates a single closure identified by its ID and returns the updated row.
	// The update ignores soft-deleted rows and sets updated_at automatically. Only provided fields are changed.
	UpdateClosureByID(ctx context.Context, id domain.ClosureID, updates ClosureUpdates) (*domain.Closure, error)
	// DeleteClosure performs a soft delete for the given closure ID and user ID
	// and returns the deleted closure, or nil if it was not found.
	DeleteClosure(ctx context.Context, userID domain.UserID, id domain.ClosureID) (*domain.Closure, error)
	// UserClosures returns a page of closures for a user created before the
	// optional cursor time, limited by the given limit. If status is non-empty,
	// results are filtered to records with the given status.
	UserClosures(ctx context.Context,
		userID domain.UserID,
		status domain.ClosureStatus,
		cursor time.Time,
		limit uint) (UserClosures, error)
	// ClosureByID fetches a closure by its ID for the given user, excluding
	// soft-deleted records. Returns nil when not found.
	ClosureByID(ctx context.Context, userID domain.UserID, id domain.ClosureID) (*domain.Closure, error)
	// LastCompletedClosureByLease returns the most recent completed closure for
	// a given lease. Returns nil when no completed closure exists.
	LastCompletedClosureByLease(ctx context.Context, leaseID domain.LeaseID) (*domain.Closure, error)
	// LastPendingClosureByLease returns the most recent pending closure for a
	// given lease, or nil. The background worker uses it to read the
	// termination inputs of the process it is about to run.
	LastPendingClosureByLease(ctx context.Context, leaseID domain.LeaseID) (*domain.Closure, error)
}
