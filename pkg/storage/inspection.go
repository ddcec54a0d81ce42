package storage

import (
	"context"

	"moveout/pkg/domain"
)

// InspectionStorage defines persistence operations for state-of-premises
// inspections. Items are stored as part of the report and never mutated after
// the comparison runs.
type InspectionStorage interface {
	// StoreInspection inserts an inspection report together with its items and
	// returns the stored row.
	StoreInspection(ctx context.Context, inspection domain.Inspection) (*domain.Inspection, error)
	// InspectionByPhase returns the report of the given phase for a lease, or
	// nil when none exists. When a lease has several reports of the same phase
	// the most recent one wins.
	InspectionByPhase(ctx context.Context,
		leaseID domain.LeaseID,
		phase domain.InspectionPhase) (*domain.Inspection, error)
}
