// Package lease manages rental agreements and their state-of-premises
// inspection reports.
package lease

import (
	"context"
	"fmt"
	"time"

	"moveout/pkg/domain"
	"moveout/pkg/serrors"
	"moveout/pkg/storage"
)

// CreateInput carries the fields a landlord submits when registering a lease.
type CreateInput struct {
	TenantName      string
	Deposit         domain.Money
	MonthlyRent     domain.Money
	StartDate       time.Time
	TightMarketZone bool
}

// InspectionInput carries a submitted state-of-premises report.
type InspectionInput struct {
	Phase       string
	PerformedAt time.Time
	Items       []domain.InspectionItem
}

// Service manages leases and their inspections.
type Service interface {
	// Create validates and stores a new lease for the user.
	Create(ctx context.Context, userID domain.UserID, in CreateInput) (*domain.Lease, error)
	// Lease fetches a lease by ID for the given user.
	Lease(ctx context.Context, userID domain.UserID, leaseID domain.LeaseID) (*domain.Lease, error)
	// AddInspection validates and stores an inspection report against the lease.
	AddInspection(ctx context.Context,
		userID domain.UserID,
		leaseID domain.LeaseID,
		in InspectionInput) (*domain.Inspection, error)
}

type service struct {
	storage storage.Storage
}

// New creates a Service backed by the provided storage.
func New(strg storage.Storage) Service {
	return &service{storage: strg}
}

func (s service) Create(ctx context.Context,
	userID domain.UserID, in CreateInput) (*domain.Lease, error) {
	if in.TenantName == "" {
		return nil, serrors.With(serrors.ErrBadRequest, "tenant name is required")
	}
	if in.StartDate.IsZero() {
		return nil, serrors.With(serrors.ErrBadRequest, "start date is required")
	}
	if in.Deposit.IsNegative() || in.MonthlyRent.IsNegative() {
		return nil, serrors.With(serrors.ErrBadRequest, "amounts must not be negative")
	}

	res, err := s.storage.StoreLeases(ctx, domain.Lease{
		UserID:          userID,
		TenantName:      in.TenantName,
		Deposit:         in.Deposit,
		MonthlyRent:     in.MonthlyRent,
		StartDate:       in.StartDate,
		TightMarketZone: in.TightMarketZone,
	})
	if err != nil {
		return nil, fmt.Errorf("could not store lease: %w", err)
	}

	return &res[0], nil
}

func (s service) Lease(ctx context.Context,
	userID domain.UserID, leaseID domain.LeaseID) (*domain.Lease, error) {
	lease, err := s.storage.LeaseByID(ctx, userID, leaseID)
	if err != nil {
		return nil, fmt.Errorf("could not get lease: %w", err)
	}
	if lease == nil {
		return nil, serrors.With(serrors.ErrNotFound, "lease not found")
	}

	return lease, nil
}

// parsePhase validates the submitted inspection phase.
func parsePhase(s string) (domain.InspectionPhase, error) {
	switch p := domain.InspectionPhase(s); p {
	case domain.PhaseEntry, domain.PhaseExit:
		return p, nil
	default:
		return "", serrors.With(serrors.ErrBadRequest, "unknown inspection phase: %q", s)
	}
}

// validCondition reports whether c is one of the five grades.
func validCondition(c domain.Condition) bool {
	switch c {
	case domain.ConditionNew, domain.ConditionGood, domain.ConditionAverage,
		domain.ConditionPoor, domain.ConditionVeryPoor:
		return true
	default:
		return false
	}
}

// validateItems checks the per-category findings against the phase: entry
// items carry a condition grade, exit items carry an ok/problem status and a
// non-negative cost estimate.
func validateItems(phase domain.InspectionPhase, items []domain.InspectionItem) error {
	if len(items) == 0 {
		return serrors.With(serrors.ErrBadRequest, "at least one inspection item is required")
	}

	for i, item := range items {
		if item.Category == "" {
			return serrors.With(serrors.ErrBadRequest, "item %d: category is required", i)
		}
		if item.EstimatedCost.IsNegative() {
			return serrors.With(serrors.ErrBadRequest, "item %d: estimated cost must not be negative", i)
		}

		switch phase {
		case domain.PhaseEntry:
			if !validCondition(item.Condition) {
				return serrors.With(serrors.ErrBadRequest, "item %d: unknown condition: %q", i, item.Condition)
			}
		case domain.PhaseExit:
			if item.Status != domain.ExitOK && item.Status != domain.ExitProblem {
				return serrors.With(serrors.ErrBadRequest, "item %d: unknown exit status: %q", i, item.Status)
			}
		}
	}

	return nil
}

func (s service) AddInspection(ctx context.Context,
	userID domain.UserID,
	leaseID domain.LeaseID,
	in InspectionInput) (*domain.Inspection, error) {
	phase, err := parsePhase(in.Phase)
	if err != nil {
		return nil, err
	}
	if in.PerformedAt.IsZero() {
		return nil, serrors.With(serrors.ErrBadRequest, "performed at date is required")
	}
	if err := validateItems(phase, in.Items); err != nil {
		return nil, err
	}

	lease, err := s.storage.LeaseByID(ctx, userID, leaseID)
	if err != nil {
		return nil, fmt.Errorf("could not get lease: %w", err)
	}
	if lease == nil {
		return nil, serrors.With(serrors.ErrNotFound, "lease not found")
	}

	res, err := s.storage.StoreInspection(ctx, domain.Inspection{
		LeaseID:     leaseID,
		Phase:       phase,
		PerformedAt: in.PerformedAt,
		Items:       in.Items,
	})
	if err != nil {
		return nil, fmt.Errorf("could not store inspection: %w", err)
	}

	return res, nil
}
