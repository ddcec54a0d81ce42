package postgres

import (
	"context"
	"fmt"
	"moveout/pkg/domain"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
)

const (
	leasesTable = "leases"
)

func (p *PgSQL) StoreLeases(ctx context.Context, leases ...domain.Lease) ([]domain.Lease, error) {
	if len(leases) == 0 {
		return nil, nil
	}

	pgLeases := make([]PgLease, len(leases))
	for i := range pgLeases {
		pgLeases[i].FromDomain(leases[i])
	}

	var result []PgLease
	if err := p.Builder.Insert(leasesTable).
		Rows(pgLeases).
		Returning(&PgLease{}).
		Executor().ScanStructsContext(ctx, &result); err != nil {
		return nil, fmt.Errorf("could not store leases into pg: %w", err)
	}

	out := make([]domain.Lease, 0, len(result))
	for i := range result {
		out = append(out, *result[i].ToDomain())
	}

	return out, nil
}

// LeaseByID returns a lease by its ID, excluding soft-deleted rows.
func (p *PgSQL) LeaseByID(ctx context.Context, userID domain.UserID, id domain.LeaseID) (*domain.Lease, error) {
	var row PgLease
	found, err := p.Builder.From(leasesTable).
		Where(
			goqu.I("id").Eq(uuid.UUID(id)),
			goqu.I("user_id").Eq(uuid.UUID(userID)),
			goqu.I("deleted_at").IsNull(),
		).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not fetch lease by id: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain(), nil
}
