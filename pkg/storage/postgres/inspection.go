package postgres

import (
	"context"
	"fmt"
	"moveout/pkg/domain"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
)

const (
	inspectionsTable = "inspections"
)

func (p *PgSQL) StoreInspection(ctx context.Context,
	inspection domain.Inspection) (*domain.Inspection, error) {
	var pg PgInspection
	if err := pg.FromDomain(inspection); err != nil {
		return nil, err
	}

	var row PgInspection
	found, err := p.Builder.Insert(inspectionsTable).
		Rows(pg).
		Returning(&PgInspection{}).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not store inspection into pg: %w", err)
	}
	if !found {
		return nil, fmt.Errorf("insert returned no inspection row")
	}

	return row.ToDomain()
}

// InspectionByPhase returns the most recent report of the given phase for a
// lease, excluding soft-deleted rows. Returns nil when none exists.
func (p *PgSQL) InspectionByPhase(ctx context.Context,
	leaseID domain.LeaseID,
	phase domain.InspectionPhase) (*domain.Inspection, error) {
	var row PgInspection
	found, err := p.Builder.From(inspectionsTable).
		Where(
			goqu.I("lease_id").Eq(uuid.UUID(leaseID)),
			goqu.I("phase").Eq(string(phase)),
			goqu.I("deleted_at").IsNull(),
		).
		Order(goqu.I("performed_at").Desc(), goqu.I("id").Desc()).
		Limit(1).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not fetch inspection by phase: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain()
}
