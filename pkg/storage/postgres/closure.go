package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"moveout/pkg/domain"
	"moveout/pkg/storage"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
)

const (
	closuresTable = "closures"
)

func (p *PgSQL) StoreClosures(ctx context.Context, closures ...domain.Closure) ([]domain.Closure, error) {
	if len(closures) == 0 {
		return nil, nil
	}

	pgClosures, err := domainClosuresToPg(closures)
	if err != nil {
		return nil, err
	}

	var result []PgClosure
	if err := p.Builder.Insert(closuresTable).
		Rows(pgClosures).
		Returning(&PgClosure{}).
		Executor().ScanStructsContext(ctx, &result); err != nil {
		return nil, fmt.Errorf("could not store closures into pg: %w", err)
	}

	return pgClosuresToDomain(result)
}

// UpdatePendingClosuresByLease updates all pending closures for the given lease with provided fields.
// Only non-nil fields from updates are set. Attempts is incremented by 1 and updated_at is set.
// When updates.Status is Failed and MaxAttempts > 0, the status only flips to
// Failed once the incremented attempts would exceed MaxAttempts.
func (p *PgSQL) UpdatePendingClosuresByLease(ctx context.Context,
	leaseID domain.LeaseID,
	updates storage.ClosureUpdates) error {
	status := goqu.L("?", string(updates.Status))
	if updates.Status == domain.ClosureStatusFailed && updates.MaxAttempts > 0 {
		status = goqu.L("CASE WHEN attempts + 1 >= ? THEN ? ELSE status END",
			updates.MaxAttempts, string(domain.ClosureStatusFailed))
	}

	rec := goqu.Record{
		"updated_at": goqu.L("CURRENT_TIMESTAMP"),
		"attempts":   goqu.L("attempts + 1"),
		"status":     status,
	}
	if updates.Result != nil {
		b, err := json.Marshal(updates.Result)
		if err != nil {
			return fmt.Errorf("could not marshal result: %w", err)
		}

		rec["result"] = b
	}
	if updates.LastError != nil {
		if *updates.LastError == "" {
			// set to NULL when empty string provided
			rec["last_error"] = goqu.L("NULL")
		} else {
			rec["last_error"] = *updates.LastError
		}
	}

	_, err := p.Builder.Update(closuresTable).
		Set(rec).Where(
		goqu.I("lease_id").Eq(uuid.UUID(leaseID)),
		goqu.I("status").Eq(string(domain.ClosureStatusPending)),
		goqu.I("deleted_at").IsNull(),
	).Executor().ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("could not update pending closures by lease in pg: %w", err)
	}

	return nil
}

// PendingClosureCountByLease counts pending, non-deleted closures for a lease.
func (p *PgSQL) PendingClosureCountByLease(ctx context.Context, leaseID domain.LeaseID) (int64, error) {
	count, err := p.Builder.From(closuresTable).
		Where(
			goqu.I("lease_id").Eq(uuid.UUID(leaseID)),
			goqu.I("status").Eq(string(domain.ClosureStatusPending)),
			goqu.I("deleted_at").IsNull(),
		).
		CountContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("could not count pending closures in pg: %w", err)
	}

	return count, nil
}

// UpdateClosureByID updates a single closure identified by its ID and returns the updated row.
// The update ignores soft-deleted rows and sets updated_at automatically. Only provided fields are changed.
func (p *PgSQL) UpdateClosureByID(ctx context.Context,
	id domain.ClosureID,
	updates storage.ClosureUpdates) (*domain.Closure, error) {
	rec := goqu.Record{
		"updated_at": goqu.L("CURRENT_TIMESTAMP"),
		"status":     string(updates.Status),
	}
	if updates.Result != nil {
		b, err := json.Marshal(updates.Result)
		if err != nil {
			return nil, fmt.Errorf("could not marshal result: %w", err)
		}

		rec["result"] = b
	}
	if updates.LastError != nil {
		if *updates.LastError == "" {
			rec["last_error"] = goqu.L("NULL")
		} else {
			rec["last_error"] = *updates.LastError
		}
	}

	var row PgClosure
	found, err := p.Builder.Update(closuresTable).
		Set(rec).Where(
		goqu.I("id").Eq(uuid.UUID(id)),
		goqu.I("deleted_at").IsNull(),
	).Returning(&PgClosure{}).Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not update closure by id in pg: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain()
}

// DeleteClosure performs a soft delete by setting deleted_at timestamp
// for a given closure id and user, returning the deleted record.
func (p *PgSQL) DeleteClosure(ctx context.Context,
	userID domain.UserID,
	id domain.ClosureID) (*domain.Closure, error) {
	var row PgClosure
	found, err := p.Builder.Update(closuresTable).
		Set(goqu.Record{
			"deleted_at": goqu.L("CURRENT_TIMESTAMP"),
		}).Where(
		goqu.I("id").Eq(uuid.UUID(id)),
		goqu.I("user_id").Eq(uuid.UUID(userID)),
		goqu.I("deleted_at").IsNull(),
	).Returning(&PgClosure{}).Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not delete closure in pg: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain()
}

// UserClosures returns a list of closures for a user filtered by optional status and
// cursor, limited by limit. Results are ordered by created_at DESC, id DESC.
// Returns the next cursor when more results are available.
func (p *PgSQL) UserClosures(ctx context.Context,
	userID domain.UserID,
	status domain.ClosureStatus,
	cursor time.Time,
	limit uint) (storage.UserClosures, error) {
	w := []goqu.Expression{
		goqu.I("user_id").Eq(uuid.UUID(userID)),
		goqu.I("deleted_at").IsNull(),
	}
	if status != "" {
		w = append(w, goqu.I("status").Eq(string(status)))
	}
	if !cursor.IsZero() {
		w = append(w, goqu.I("created_at").Lt(cursor))
	}

	// fetch one extra to determine if there is a next page
	fetch := limit + 1
	ds := p.Builder.From(closuresTable).
		Where(w...).
		Order(goqu.I("created_at").Desc(), goqu.I("id").Desc()).
		Limit(fetch)

	var rows []PgClosure
	if err := ds.Executor().ScanStructsContext(ctx, &rows); err != nil {
		return storage.UserClosures{}, fmt.Errorf("could not fetch user closures from pg: %w", err)
	}

	// if we fetched more than the limit, there is a next page
	var nextCursor *time.Time
	if uint(len(rows)) > limit {
		trimmed := rows[:limit]
		nextCursor = &trimmed[len(trimmed)-1].CreatedAt
		rows = trimmed
	}

	domainRows, err := pgClosuresToDomain(rows)
	if err != nil {
		return storage.UserClosures{}, err
	}

	return storage.UserClosures{
		Closures:   domainRows,
		NextCursor: nextCursor,
	}, nil
}

// ClosureByID returns a closure by its ID, excluding soft-deleted rows.
func (p *PgSQL) ClosureByID(ctx context.Context,
	userID domain.UserID,
	id domain.ClosureID) (*domain.Closure, error) {
	var row PgClosure
	found, err := p.Builder.From(closuresTable).
		Where(
			goqu.I("id").Eq(uuid.UUID(id)),
			goqu.I("user_id").Eq(uuid.UUID(userID)),
			goqu.I("deleted_at").IsNull(),
		).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not fetch closure by id: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain()
}

// LastCompletedClosureByLease returns the most recent completed closure for a given lease.
// Returns nil when no completed closure exists.
func (p *PgSQL) LastCompletedClosureByLease(ctx context.Context,
	leaseID domain.LeaseID) (*domain.Closure, error) {
	return p.lastClosureByLease(ctx, leaseID, domain.ClosureStatusCompleted)
}

// LastPendingClosureByLease returns the most recent pending closure for a given lease.
// Returns nil when no pending closure exists.
func (p *PgSQL) LastPendingClosureByLease(ctx context.Context,
	leaseID domain.LeaseID) (*domain.Closure, error) {
	return p.lastClosureByLease(ctx, leaseID, domain.ClosureStatusPending)
}

func (p *PgSQL) lastClosureByLease(ctx context.Context,
	leaseID domain.LeaseID,
	status domain.ClosureStatus) (*domain.Closure, error) {
	var row PgClosure
	found, err := p.Builder.From(closuresTable).
		Where(
			goqu.I("lease_id").Eq(uuid.UUID(leaseID)),
			goqu.I("status").Eq(string(status)),
			goqu.I("deleted_at").IsNull(),
		).
		Order(goqu.I("created_at").Desc(), goqu.I("id").Desc()).
		Limit(1).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not fetch last %s closure: %w", status, err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain()
}
