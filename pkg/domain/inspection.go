package domain

import (
	"time"

	"github.com/google/uuid"
)

// InspectionID uniquely identifies a state-of-premises inspection report.
type InspectionID uuid.UUID

// InspectionPhase tells whether an inspection was taken at move-in or move-out.
type InspectionPhase string

const (
	// PhaseEntry is the move-in inspection, recorded when the tenancy starts.
	PhaseEntry InspectionPhase = "ENTRY"
	// PhaseExit is the move-out inspection, recorded when the tenancy ends.
	PhaseExit InspectionPhase = "EXIT"
)

// Condition grades the state of an inspected category on the standard
// five-level scale used on French inspection reports.
type Condition string

const (
	ConditionNew      Condition = "neuf"
	ConditionGood     Condition = "bon"
	ConditionAverage  Condition = "moyen"
	ConditionPoor     Condition = "mauvais"
	ConditionVeryPoor Condition = "tres_mauvais"
)

// ExitStatus is the binary outcome recorded per category at move-out.
type ExitStatus string

const (
	// ExitOK means the category was found in acceptable state at move-out.
	ExitOK ExitStatus = "ok"
	// ExitProblem flags the category for the damage apportionment engine.
	ExitProblem ExitStatus = "problem"
)

// DamageType classifies a flagged exit item after comparison with the entry
// inspection.
type DamageType string

const (
	// DamageTenant means the degradation is billed in full to the tenant.
	DamageTenant DamageType = "tenant_damage"
	// DamageNormalWear means the degradation is apportioned between landlord
	// and tenant on the vetusty schedule.
	DamageNormalWear DamageType = "normal_wear"
)

// Inspection is a state-of-premises report (état des lieux) for a lease.
type Inspection struct {
	// ID is the unique identifier of the inspection.
	ID InspectionID `json:"id"`
	// LeaseID is the lease this inspection belongs to.
	LeaseID LeaseID `json:"leaseId"`

	// Phase tells whether this is the entry or the exit report.
	Phase InspectionPhase `json:"phase"`
	// PerformedAt is the date the inspection took place.
	PerformedAt time.Time `json:"performedAt"`
	// Items are the per-category findings of the report.
	Items []InspectionItem `json:"items"`

	// CreatedAt is the time when the inspection record was created.
	CreatedAt time.Time `json:"createdAt"`
	// DeletedAt marks when the inspection was soft-deleted; zero value means not deleted.
	DeletedAt time.Time `json:"-"`
}

// InspectionItem is a single inspected category (e.g. "kitchen walls") on a
// report. Entry items carry a Condition grade; exit items carry an ExitStatus
// and, when flagged, an estimated repair cost. The damage classification
// fields are filled in by the comparison engine and never mutated afterwards.
type InspectionItem struct {
	// Category names the inspected room or element. Exit items are matched
	// against entry items by exact category name.
	Category string `json:"category"`

	// Condition is the grade recorded at entry; empty on exit items.
	Condition Condition `json:"condition,omitempty"`
	// Status is the outcome recorded at exit; empty on entry items.
	Status ExitStatus `json:"status,omitempty"`
	// EstimatedCost is the estimated repair cost for flagged exit items, in cents.
	EstimatedCost Money `json:"estimatedCost"`
	// Photos holds storage references of photos taken for this category.
	Photos []string `json:"photos,omitempty"`

	// DamageType is set by the comparison engine when the item shows a
	// degradation; empty otherwise.
	DamageType DamageType `json:"damageType,omitempty"`
	// TenantCost is the share of the repair cost billed to the tenant, in cents.
	TenantCost Money `json:"tenantCost"`
	// LandlordCost is the share absorbed by the landlord as wear-and-tear, in cents.
	LandlordCost Money `json:"landlordCost"`
}
