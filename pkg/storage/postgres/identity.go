package postgres

import (
	"context"
	"fmt"
	"moveout/pkg/domain"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
)

const (
	identityChecksTable = "identity_checks"
)

func (p *PgSQL) StoreIdentityCheck(ctx context.Context,
	check domain.IdentityCheck) (*domain.IdentityCheck, error) {
	var pg PgIdentityCheck
	if err := pg.FromDomain(check); err != nil {
		return nil, err
	}

	var row PgIdentityCheck
	found, err := p.Builder.Insert(identityChecksTable).
		Rows(pg).
		Returning(&PgIdentityCheck{}).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not store identity check into pg: %w", err)
	}
	if !found {
		return nil, fmt.Errorf("insert returned no identity check row")
	}

	return row.ToDomain()
}

// IdentityChecksByUser returns the most recent checks for a user, newest first.
func (p *PgSQL) IdentityChecksByUser(ctx context.Context,
	userID domain.UserID,
	limit uint) ([]domain.IdentityCheck, error) {
	var rows []PgIdentityCheck
	if err := p.Builder.From(identityChecksTable).
		Where(goqu.I("user_id").Eq(uuid.UUID(userID))).
		Order(goqu.I("created_at").Desc(), goqu.I("id").Desc()).
		Limit(limit).
		Executor().ScanStructsContext(ctx, &rows); err != nil {
		return nil, fmt.Errorf("could not fetch identity checks from pg: %w", err)
	}

	out := make([]domain.IdentityCheck, 0, len(rows))
	for i := range rows {
		d, err := rows[i].ToDomain()
		if err != nil {
			return nil, err
		}

		out = append(out, *d)
	}

	return out, nil
}
