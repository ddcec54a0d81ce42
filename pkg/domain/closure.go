package domain

import (
	"time"

	"github.com/google/uuid"
)

// ClosureID uniquely identifies an end-of-lease closure process.
type ClosureID uuid.UUID

// ClosureStatus represents the lifecycle state of a closure.
type ClosureStatus string

const (
	// ClosureStatusPending indicates the closure has been started but the
	// comparison has not been processed yet.
	ClosureStatusPending ClosureStatus = "PENDING"
	// ClosureStatusCompleted indicates the comparison finished and a result is available.
	ClosureStatusCompleted ClosureStatus = "COMPLETED"
	// ClosureStatusFailed indicates processing ended with an error; see LastError and Attempts.
	ClosureStatusFailed ClosureStatus = "FAILED"
)

// TerminationReason is the legally recognized ground the tenant gives for
// ending the lease. It is a closed enumeration: unknown strings are rejected
// at the boundary rather than silently treated as the standard case.
type TerminationReason string

const (
	// ReasonStandard is the default ground with the full three-month notice.
	ReasonStandard TerminationReason = "standard"
	// ReasonJobTransfer covers a professional transfer (mutation).
	ReasonJobTransfer TerminationReason = "job_transfer"
	// ReasonJobLoss covers an involuntary loss of employment.
	ReasonJobLoss TerminationReason = "job_loss"
	// ReasonNewJob covers taking a new job following a job loss.
	ReasonNewJob TerminationReason = "new_job"
	// ReasonHealth covers a medically attested health condition requiring a move.
	ReasonHealth TerminationReason = "health"
	// ReasonBenefitRSA covers tenants receiving the RSA means-tested benefit.
	ReasonBenefitRSA TerminationReason = "benefit_rsa"
	// ReasonBenefitAAH covers tenants receiving the AAH disability benefit.
	ReasonBenefitAAH TerminationReason = "benefit_aah"
	// ReasonFirstRental covers tenants granted housing for the first time.
	ReasonFirstRental TerminationReason = "first_rental"
)

// ItemClassification is the per-category outcome of the entry/exit comparison.
type ItemClassification struct {
	// Category names the inspected room or element.
	Category string `json:"category"`
	// HasDegradation tells whether the item counts as a degradation at all.
	HasDegradation bool `json:"hasDegradation"`
	// NeedsReview marks flagged items whose entry record was missing under the
	// FlagForReview policy; costs stay zero until a moderator decides.
	NeedsReview bool `json:"needsReview,omitempty"`
	// DamageType is tenant_damage or normal_wear when HasDegradation is true.
	DamageType DamageType `json:"damageType,omitempty"`
	// EstimatedCost is the original estimated repair cost, in cents.
	EstimatedCost Money `json:"estimatedCost"`
	// TenantCost is the tenant share of the cost, in cents.
	TenantCost Money `json:"tenantCost"`
	// LandlordCost is the landlord share of the cost, in cents.
	LandlordCost Money `json:"landlordCost"`
}

// Settlement is the computed deposit settlement of a closure.
type Settlement struct {
	// TotalDeductions is the sum of all deductions held against the deposit, in cents.
	TotalDeductions Money `json:"totalDeductions"`
	// AmountToReturn is what the landlord owes back to the tenant, in cents.
	AmountToReturn Money `json:"amountToReturn"`
	// AmountToPay is what the tenant still owes beyond the deposit, in cents.
	// At most one of AmountToReturn and AmountToPay is nonzero.
	AmountToPay Money `json:"amountToPay"`
}

// ClosureResult is the full outcome of an end-of-lease process: the notice
// terms, the per-item damage classifications with their running totals, and
// the final deposit settlement.
type ClosureResult struct {
	// NoticeMonths is the legally mandated notice period (1 or 3).
	NoticeMonths int `json:"noticeMonths"`
	// LegalDeadline is the date by which the deposit must be refunded.
	LegalDeadline time.Time `json:"legalDeadline"`

	// Items holds the classification of every exit inspection item.
	Items []ItemClassification `json:"items"`
	// TenantDamageCost is the total repair cost billed to the tenant, in cents.
	TenantDamageCost Money `json:"tenantDamageCost"`
	// WearCost is the total cost absorbed by the landlord as vetusty, in cents.
	WearCost Money `json:"wearCost"`
	// TenantDamageCount is the number of items classified as tenant damage.
	TenantDamageCount int `json:"tenantDamageCount"`
	// WearCount is the number of items classified as normal wear.
	WearCount int `json:"wearCount"`
	// ReviewCount is the number of flagged items set aside for manual review
	// (only under the FlagForReview missing-entry policy).
	ReviewCount int `json:"reviewCount"`

	// Settlement is the resulting deposit settlement.
	Settlement Settlement `json:"settlement"`
}

// Closure represents a single end-of-lease process and its current state.
// It captures the tenant's termination terms as input and carries the
// computed result once the background comparison has run.
type Closure struct {
	// ID is the unique identifier of the closure.
	ID ClosureID `json:"id"`
	// UserID is the identifier of the landlord who started the closure.
	UserID UserID `json:"userId"`
	// LeaseID is the lease being closed.
	LeaseID LeaseID `json:"leaseId"`

	// Status is the current lifecycle state of the closure.
	Status ClosureStatus `json:"status"`
	// Reason is the tenant's ground for terminating the lease.
	Reason TerminationReason `json:"reason"`
	// DepartureDate is the tenant's announced move-out date.
	DepartureDate time.Time `json:"departureDate"`
	// InspectionConformant tells whether the exit inspection matched the entry
	// one; a conformant inspection shortens the refund deadline to one month.
	InspectionConformant bool `json:"inspectionConformant"`

	// UnpaidRent is outstanding rent to deduct from the deposit, in cents.
	UnpaidRent Money `json:"unpaidRent"`
	// CleaningCosts is the cleaning deduction, in cents.
	CleaningCosts Money `json:"cleaningCosts"`
	// OtherDeductions groups any remaining deductions, in cents.
	OtherDeductions Money `json:"otherDeductions"`

	// Result contains the computed outcome once Status is COMPLETED.
	Result ClosureResult `json:"result"`

	// Attempts is the number of times the system has tried to process this closure.
	Attempts uint `json:"attempts"`
	// LastError stores the most recent processing error message, if any.
	LastError string `json:"-"`

	// CreatedAt is the time when the closure was started.
	CreatedAt time.Time `json:"createdAt"`
	// UpdatedAt is the time when the closure was last updated.
	UpdatedAt time.Time `json:"updatedAt"`
	// DeletedAt marks when the closure was soft-deleted; zero value means not deleted.
	DeletedAt time.Time `json:"-"`
}
