package postgres

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"moveout/pkg/domain"
	"time"

	"github.com/google/uuid"
)

type PgLease struct {
	ID     uuid.UUID `db:"id"      goqu:"skipinsert"`
	UserID uuid.UUID `db:"user_id"`

	TenantName      string    `db:"tenant_name"`
	Deposit         int64     `db:"deposit"`
	MonthlyRent     int64     `db:"monthly_rent"`
	StartDate       time.Time `db:"start_date"`
	TightMarketZone bool      `db:"tight_market_zone"`

	CreatedAt time.Time    `db:"created_at" goqu:"skipinsert"`
	UpdatedAt sql.NullTime `db:"updated_at" goqu:"skipinsert"`
	DeletedAt sql.NullTime `db:"deleted_at" goqu:"skipinsert"`
}

func (p *PgLease) ToDomain() *domain.Lease {
	return &domain.Lease{
		ID:              domain.LeaseID(p.ID),
		UserID:          domain.UserID(p.UserID),
		TenantName:      p.TenantName,
		Deposit:         domain.Money(p.Deposit),
		MonthlyRent:     domain.Money(p.MonthlyRent),
		StartDate:       p.StartDate,
		TightMarketZone: p.TightMarketZone,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt.Time,
		DeletedAt:       p.DeletedAt.Time,
	}
}

func (p *PgLease) FromDomain(lease domain.Lease) {
	*p = PgLease{
		ID:              uuid.UUID(lease.ID),
		UserID:          uuid.UUID(lease.UserID),
		TenantName:      lease.TenantName,
		Deposit:         int64(lease.Deposit),
		MonthlyRent:     int64(lease.MonthlyRent),
		StartDate:       lease.StartDate,
		TightMarketZone: lease.TightMarketZone,
		CreatedAt:       lease.CreatedAt,
		UpdatedAt: sql.NullTime{
			Time:  lease.UpdatedAt,
			Valid: !lease.UpdatedAt.IsZero(),
		},
		DeletedAt: sql.NullTime{
			Time:  lease.DeletedAt,
			Valid: !lease.DeletedAt.IsZero(),
		},
	}
}

type PgInspection struct {
	ID      uuid.UUID `db:"id"       goqu:"skipinsert"`
	LeaseID uuid.UUID `db:"lease_id"`

	Phase       string          `db:"phase"`
	PerformedAt time.Time       `db:"performed_at"`
	Items       json.RawMessage `db:"items"`

	CreatedAt time.Time    `db:"created_at" goqu:"skipinsert"`
	DeletedAt sql.NullTime `db:"deleted_at" goqu:"skipinsert"`
}

func (p *PgInspection) ToDomain() (*domain.Inspection, error) {
	var items []domain.InspectionItem
	if err := json.Unmarshal(p.Items, &items); err != nil {
		return nil, fmt.Errorf("could not unmarshal inspection items: %w", err)
	}

	return &domain.Inspection{
		ID:          domain.InspectionID(p.ID),
		LeaseID:     domain.LeaseID(p.LeaseID),
		Phase:       domain.InspectionPhase(p.Phase),
		PerformedAt: p.PerformedAt,
		Items:       items,
		CreatedAt:   p.CreatedAt,
		DeletedAt:   p.DeletedAt.Time,
	}, nil
}

func (p *PgInspection) FromDomain(inspection domain.Inspection) error {
	items, err := json.Marshal(inspection.Items)
	if err != nil {
		return fmt.Errorf("could not marshal inspection items: %w", err)
	}

	*p = PgInspection{
		ID:          uuid.UUID(inspection.ID),
		LeaseID:     uuid.UUID(inspection.LeaseID),
		Phase:       string(inspection.Phase),
		PerformedAt: inspection.PerformedAt,
		Items:       items,
		CreatedAt:   inspection.CreatedAt,
		DeletedAt: sql.NullTime{
			Time:  inspection.DeletedAt,
			Valid: !inspection.DeletedAt.IsZero(),
		},
	}

	return nil
}

type PgClosure struct {
	ID      uuid.UUID `db:"id"       goqu:"skipinsert"`
	UserID  uuid.UUID `db:"user_id"`
	LeaseID uuid.UUID `db:"lease_id"`

	Status               string          `db:"status"`
	Reason               string          `db:"reason"`
	DepartureDate        time.Time       `db:"departure_date"`
	InspectionConformant bool            `db:"inspection_conformant"`
	UnpaidRent           int64           `db:"unpaid_rent"`
	CleaningCosts        int64           `db:"cleaning_costs"`
	OtherDeductions      int64           `db:"other_deductions"`
	Result               json.RawMessage `db:"result" goqu:"skipinsert"`

	Attempts  uint           `db:"attempts"   goqu:"skipinsert"`
	LastError sql.NullString `db:"last_error" goqu:"skipinsert"`

	CreatedAt time.Time    `db:"created_at" goqu:"skipinsert"`
	UpdatedAt sql.NullTime `db:"updated_at" goqu:"skipinsert"`
	DeletedAt sql.NullTime `db:"deleted_at" goqu:"skipinsert"`
}

func (p *PgClosure) ToDomain() (*domain.Closure, error) {
	var result domain.ClosureResult
	if err := json.Unmarshal(p.Result, &result); err != nil {
		return nil, fmt.Errorf("could not unmarshal closure result: %w", err)
	}

	return &domain.Closure{
		ID:                   domain.ClosureID(p.ID),
		UserID:               domain.UserID(p.UserID),
		LeaseID:              domain.LeaseID(p.LeaseID),
		Status:               domain.ClosureStatus(p.Status),
		Reason:               domain.TerminationReason(p.Reason),
		DepartureDate:        p.DepartureDate,
		InspectionConformant: p.InspectionConformant,
		UnpaidRent:           domain.Money(p.UnpaidRent),
		CleaningCosts:        domain.Money(p.CleaningCosts),
		OtherDeductions:      domain.Money(p.OtherDeductions),
		Result:               result,
		Attempts:             p.Attempts,
		LastError:            p.LastError.String,
		CreatedAt:            p.CreatedAt,
		UpdatedAt:            p.UpdatedAt.Time,
		DeletedAt:            p.DeletedAt.Time,
	}, nil
}

func (p *PgClosure) FromDomain(closure domain.Closure) error {
	result, err := json.Marshal(closure.Result)
	if err != nil {
		return fmt.Errorf("could not marshal closure result: %w", err)
	}

	*p = PgClosure{
		ID:                   uuid.UUID(closure.ID),
		UserID:               uuid.UUID(closure.UserID),
		LeaseID:              uuid.UUID(closure.LeaseID),
		Status:               string(closure.Status),
		Reason:               string(closure.Reason),
		DepartureDate:        closure.DepartureDate,
		InspectionConformant: closure.InspectionConformant,
		UnpaidRent:           int64(closure.UnpaidRent),
		CleaningCosts:        int64(closure.CleaningCosts),
		OtherDeductions:      int64(closure.OtherDeductions),
		Result:               result,
		Attempts:             closure.Attempts,
		LastError: sql.NullString{
			String: closure.LastError,
			Valid:  closure.LastError != "",
		},
		CreatedAt: closure.CreatedAt,
		UpdatedAt: sql.NullTime{
			Time:  closure.UpdatedAt,
			Valid: !closure.UpdatedAt.IsZero(),
		},
		DeletedAt: sql.NullTime{
			Time:  closure.DeletedAt,
			Valid: !closure.DeletedAt.IsZero(),
		},
	}

	return nil
}

func domainClosuresToPg(closures []domain.Closure) ([]PgClosure, error) {
	out := make([]PgClosure, len(closures))
	for i := range out {
		if err := out[i].FromDomain(closures[i]); err != nil {
			return nil, err
		}
	}

	return out, nil
}

func pgClosuresToDomain(closures []PgClosure) ([]domain.Closure, error) {
	out := make([]domain.Closure, 0, len(closures))
	for _, closure := range closures {
		d, err := closure.ToDomain()
		if err != nil {
			return nil, err
		}

		out = append(out, *d)
	}

	return out, nil
}

type PgIdentityCheck struct {
	ID     uuid.UUID `db:"id" goqu:"skipinsert"`
	UserID uuid.UUID `db:"user_id"`

	Status string          `db:"status"`
	Record json.RawMessage `db:"record"`

	CreatedAt time.Time `db:"created_at" goqu:"skipinsert"`
}

func (p *PgIdentityCheck) ToDomain() (*domain.IdentityCheck, error) {
	var record domain.MRZRecord
	if err := json.Unmarshal(p.Record, &record); err != nil {
		return nil, fmt.Errorf("could not unmarshal mrz record: %w", err)
	}

	return &domain.IdentityCheck{
		ID:        domain.IdentityCheckID(p.ID),
		UserID:    domain.UserID(p.UserID),
		Status:    domain.IdentityStatus(p.Status),
		Record:    record,
		CreatedAt: p.CreatedAt,
	}, nil
}

func (p *PgIdentityCheck) FromDomain(check domain.IdentityCheck) error {
	record, err := json.Marshal(check.Record)
	if err != nil {
		return fmt.Errorf("could not marshal mrz record: %w", err)
	}

	*p = PgIdentityCheck{
		ID:        uuid.UUID(check.ID),
		UserID:    uuid.UUID(check.UserID),
		Status:    string(check.Status),
		Record:    record,
		CreatedAt: check.CreatedAt,
	}

	return nil
}
