package closure

import (
	"context"
	"time"

	"moveout/pkg/domain"
)

// StartInput carries the termination terms a landlord submits when starting
// an end-of-lease process.
type StartInput struct {
	// Reason is the tenant's termination ground (validated against the closed
	// enumeration).
	Reason string
	// DepartureDate is the announced move-out date.
	DepartureDate time.Time
	// InspectionConformant tells whether the exit inspection matched the entry one.
	InspectionConformant bool

	// UnpaidRent, CleaningCosts and OtherDeductions are deposit deductions in
	// cents. The tenant share of repair costs is computed from the inspection
	// comparison, not supplied here.
	UnpaidRent      domain.Money
	CleaningCosts   domain.Money
	OtherDeductions domain.Money
}

// Service coordinates end-of-lease closures: starting them, querying them and
// running the background comparison.
type Service interface {
	// Start validates the input, stores a pending closure for the lease and
	// enqueues the comparison job.
	Start(ctx context.Context, userID domain.UserID, leaseID domain.LeaseID, in StartInput) (*domain.Closure, error)
	// UserClosures returns a page of closures filtered by status, with
	// RFC3339 cursor pagination.
	UserClosures(ctx context.Context,
		userID domain.UserID,
		status domain.ClosureStatus,
		cursor string,
		limit uint) ([]domain.Closure, string, error)
	// Result fetches a single closure by ID for the given user.
	Result(ctx context.Context, userID domain.UserID, closureID domain.ClosureID) (*domain.Closure, error)
	// Delete removes a closure belonging to the given user.
	Delete(ctx context.Context, userID domain.UserID, closureID domain.ClosureID) error
	// Process runs the inspection comparison and settlement for every pending
	// closure of the lease. It is invoked by the background worker.
	Process(ctx context.Context, leaseID domain.LeaseID) error
}
