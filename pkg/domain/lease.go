package domain

import (
	"time"

	"github.com/google/uuid"
)

// LeaseID uniquely identifies a lease.
// It wraps uuid.UUID to provide type safety at the domain layer.
type LeaseID uuid.UUID

// Lease represents a rental agreement between a landlord (the user) and a
// tenant. It carries the financial figures the end-of-lease settlement needs:
// the security deposit, the monthly rent, the start date and whether the unit
// sits in a designated housing-scarcity zone ("zone tendue"), which shortens
// the tenant's notice period.
type Lease struct {
	// ID is the unique identifier of the lease.
	ID LeaseID `json:"id"`
	// UserID is the identifier of the landlord who owns the lease.
	UserID UserID `json:"userId"`

	// TenantName is the display name of the tenant on the agreement.
	TenantName string `json:"tenantName"`
	// Deposit is the security deposit held for the lease, in cents.
	Deposit Money `json:"deposit"`
	// MonthlyRent is the contractual rent amount, in cents.
	MonthlyRent Money `json:"monthlyRent"`
	// StartDate is the date the tenancy began.
	StartDate time.Time `json:"startDate"`
	// TightMarketZone marks leases located in a legally designated
	// housing-scarcity zone, which reduces the tenant notice period to one month.
	TightMarketZone bool `json:"tightMarketZone"`

	// CreatedAt is the time when the lease record was created.
	CreatedAt time.Time `json:"createdAt"`
	// UpdatedAt is the time when the lease was last updated.
	UpdatedAt time.Time `json:"updatedAt"`
	// DeletedAt marks when the lease was soft-deleted; zero value means not deleted.
	DeletedAt time.Time `json:"-"`
}
