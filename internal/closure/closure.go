// Package closure implements the end-of-lease process: it stores pending
// closures, enqueues the background comparison, and computes the inspection
// diff, notice terms and deposit settlement when the job runs.
package closure

import (
	"context"
	"fmt"
	"time"

	"moveout/internal/config"
	"moveout/internal/inspection"
	"moveout/internal/notice"
	"moveout/internal/settlement"
	"moveout/pkg/domain"
	"moveout/pkg/serrors"
	"moveout/pkg/storage"

	"github.com/google/uuid"
)

// Options configure how closure jobs are enqueued, how results are cached and
// which apportionment policy the comparison uses.
type Options struct {
	// MaxAttempts is the maximum number of attempts the background worker should
	// make when processing a closure before marking it failed.
	MaxAttempts int
	// ResultCacheTTL is the duration during which a completed result makes new
	// closures for the same lease reuse that result instead of enqueueing a
	// duplicate job.
	ResultCacheTTL time.Duration
	// Policy holds the wear apportionment constants.
	Policy inspection.Policy
}

// NewOptions constructs an Options value from the provided application config.
func NewOptions(cfg *config.Config) (Options, error) {
	missing, err := inspection.ParseMissingEntryPolicy(cfg.Closure.MissingEntryPolicy)
	if err != nil {
		return Options{}, err
	}

	return Options{
		MaxAttempts:    cfg.Closure.MaxAttempts,
		ResultCacheTTL: cfg.Closure.ResultCacheTTL,
		Policy: inspection.Policy{
			WearThresholdYears: cfg.Closure.WearThresholdYears,
			WearLandlordShare:  cfg.Closure.WearLandlordShare,
			MissingEntry:       missing,
		},
	}, nil
}

// service is the concrete implementation of the Service interface.
// It coordinates persistence with the storage layer and job enqueueing.
type service struct {
	// options holds runtime configuration that affects enqueueing, caching and
	// the apportionment policy.
	options Options
	// storage is the persistence layer used to store closures and manage jobs.
	storage storage.Storage
	// comparer runs the entry/exit classification.
	comparer *inspection.Comparer
}

// New creates a new Service backed by the provided storage and configured
// with the given options.
func New(strg storage.Storage, options Options) Service {
	return &service{
		options:  options,
		storage:  strg,
		comparer: inspection.New(options.Policy),
	}
}

// validate checks a StartInput against the closed reason enumeration and the
// non-negative money contract.
func validate(in StartInput) (domain.TerminationReason, error) {
	reason, err := notice.ParseReason(in.Reason)
	if err != nil {
		return "", err
	}
	if in.DepartureDate.IsZero() {
		return "", serrors.With(serrors.ErrBadRequest, "departure date is required")
	}
	if in.UnpaidRent.IsNegative() || in.CleaningCosts.IsNegative() || in.OtherDeductions.IsNegative() {
		return "", serrors.With(serrors.ErrBadRequest, "deductions must not be negative")
	}

	return reason, nil
}

// Start stores a new pending closure for the lease and attempts to enqueue a
// background job to process it. If a recent completed result exists for the
// same lease (within ResultCacheTTL), the new closure is immediately marked
// as completed with that result.
func (s service) Start(ctx context.Context,
	userID domain.UserID,
	leaseID domain.LeaseID,
	in StartInput) (*domain.Closure, error) {
	reason, err := validate(in)
	if err != nil {
		return nil, err
	}

	var c *domain.Closure
	if err := s.storage.WithTx(ctx, func(tx storage.AllStorage) error {
		lease, err := tx.LeaseByID(ctx, userID, leaseID)
		if err != nil {
			return fmt.Errorf("could not get lease: %w", err)
		}
		if lease == nil {
			return serrors.With(serrors.ErrNotFound, "lease not found")
		}

		res, err := tx.StoreClosures(ctx, domain.Closure{
			UserID:               userID,
			LeaseID:              leaseID,
			Status:               domain.ClosureStatusPending,
			Reason:               reason,
			DepartureDate:        in.DepartureDate,
			InspectionConformant: in.InspectionConformant,
			UnpaidRent:           in.UnpaidRent,
			CleaningCosts:        in.CleaningCosts,
			OtherDeductions:      in.OtherDeductions,
		})
		if err != nil {
			return fmt.Errorf("could not store closure: %w", err)
		}
		c = &res[0]

		jobAdded, err := tx.AddJob(ctx, JobArgs{
			LeaseID:         uuid.UUID(leaseID),
			maxAttempts:     s.options.MaxAttempts,
			uniqueJobPeriod: s.options.ResultCacheTTL,
		}, nil)
		if err != nil {
			return fmt.Errorf("could not add job: %w", err)
		}

		// if a job was not added, it means that another job already exists for
		// this lease. river unique jobs prevent duplicate comparisons.
		if !jobAdded {
			// if the existing job already completed, reuse its result for the
			// new closure
			last, err := tx.LastCompletedClosureByLease(ctx, leaseID)
			if err != nil {
				return fmt.Errorf("could not get last completed closure: %w", err)
			}

			if last != nil {
				updated, err := tx.UpdateClosureByID(ctx, c.ID, storage.ClosureUpdates{
					Status: domain.ClosureStatusCompleted,
					Result: &last.Result,
				})
				if err != nil {
					return fmt.Errorf("could not update closure: %w", err)
				}
				c = updated
			} // else: the job is in the queue and will be processed soon.
			// The job updates all pending closures by lease upon completion.
		}

		return nil
	}); err != nil {
		return nil, fmt.Errorf("could not start closure: %w", err)
	}

	return c, nil
}

// UserClosures returns a page of closures for the given user filtered by
// status. It supports cursor-based pagination using an RFC3339 timestamp
// string and returns the next cursor when more results are available.
func (s service) UserClosures(ctx context.Context,
	userID domain.UserID,
	status domain.ClosureStatus,
	cursor string,
	limit uint) ([]domain.Closure, string, error) {
	var cursorTime time.Time
	if cursor != "" {
		t, err := time.Parse(time.RFC3339, cursor)
		if err != nil {
			return nil, "", serrors.Wrap(serrors.ErrBadRequest, err, "invalid cursor")
		}
		cursorTime = t
	}

	page, err := s.storage.UserClosures(ctx, userID, status, cursorTime, limit)
	if err != nil {
		return nil, "", fmt.Errorf("could not get user closures: %w", err)
	}

	var next string
	if page.NextCursor != nil {
		next = page.NextCursor.Format(time.RFC3339)
	}

	return page.Closures, next, nil
}

// Result fetches a single closure by ID for the given user. It returns a
// not-found error when no matching closure exists.
func (s service) Result(ctx context.Context,
	userID domain.UserID,
	closureID domain.ClosureID) (*domain.Closure, error) {
	res, err := s.storage.ClosureByID(ctx, userID, closureID)
	if err != nil {
		return nil, fmt.Errorf("could not get closure: %w", err)
	}
	if res == nil {
		return nil, serrors.With(serrors.ErrNotFound, "closure not found")
	}

	return res, nil
}

// Delete removes a closure belonging to the given user. If the closure does
// not exist, a not-found error is returned. Jobs are not cancelled here
// because other pending closures may still depend on the same lease job.
func (s service) Delete(ctx context.Context,
	userID domain.UserID,
	closureID domain.ClosureID) error {
	res, err := s.storage.DeleteClosure(ctx, userID, closureID)
	if err != nil {
		return fmt.Errorf("could not delete closure: %w", err)
	}
	if res == nil {
		return serrors.With(serrors.ErrNotFound, "closure not found")
	}

	// we don't delete jobs from the queue here because there might be other
	// closures depending on the job. The worker makes sure there are still
	// pending closures for the lease before processing.

	return nil
}

// Process runs the end-of-lease computation for a lease: it diffs the entry
// and exit inspections, apportions repair costs, resolves the notice terms
// and nets the deposit, then marks every pending closure completed with the
// result.
func (s service) Process(ctx context.Context, leaseID domain.LeaseID) error {
	pending, err := s.storage.PendingClosureCountByLease(ctx, leaseID)
	if err != nil {
		return fmt.Errorf("could not count pending closures: %w", err)
	}
	if pending == 0 {
		// every closure for this lease was deleted or already resolved
		return serrors.With(serrors.ErrConflict, "no pending closures for lease")
	}

	c, err := s.storage.LastPendingClosureByLease(ctx, leaseID)
	if err != nil {
		return fmt.Errorf("could not get pending closure: %w", err)
	}
	if c == nil {
		return serrors.With(serrors.ErrConflict, "no pending closures for lease")
	}

	lease, err := s.storage.LeaseByID(ctx, c.UserID, leaseID)
	if err != nil {
		return fmt.Errorf("could not get lease: %w", err)
	}
	if lease == nil {
		return serrors.With(serrors.ErrConflict, "lease no longer exists")
	}

	exit, err := s.storage.InspectionByPhase(ctx, leaseID, domain.PhaseExit)
	if err != nil {
		return fmt.Errorf("could not get exit inspection: %w", err)
	}
	if exit == nil {
		return serrors.With(serrors.ErrConflict, "no exit inspection for lease")
	}

	entry, err := s.storage.InspectionByPhase(ctx, leaseID, domain.PhaseEntry)
	if err != nil {
		return fmt.Errorf("could not get entry inspection: %w", err)
	}
	var entryItems []domain.InspectionItem
	if entry != nil {
		entryItems = entry.Items
	}

	ageYears := inspection.AgeYears(lease.StartDate, exit.PerformedAt)
	items, totals, err := s.comparer.Compare(exit.Items, entryItems, ageYears)
	if err != nil {
		return fmt.Errorf("could not compare inspections: %w", err)
	}

	result := domain.ClosureResult{
		NoticeMonths:      notice.Period(c.Reason, lease.TightMarketZone),
		LegalDeadline:     notice.LegalDeadline(c.DepartureDate, c.InspectionConformant),
		Items:             items,
		TenantDamageCost:  totals.TenantDamageCost,
		WearCost:          totals.WearCost,
		TenantDamageCount: totals.TenantDamageCount,
		WearCount:         totals.WearCount,
		ReviewCount:       totals.ReviewCount,
		Settlement: settlement.Compute(settlement.Input{
			Deposit:         lease.Deposit,
			UnpaidRent:      c.UnpaidRent,
			RepairCosts:     totals.TenantDamageCost,
			CleaningCosts:   c.CleaningCosts,
			OtherDeductions: c.OtherDeductions,
		}),
	}

	clearErr := ""
	if err := s.storage.UpdatePendingClosuresByLease(ctx, leaseID, storage.ClosureUpdates{
		Status:    domain.ClosureStatusCompleted,
		Result:    &result,
		LastError: &clearErr,
	}); err != nil {
		return fmt.Errorf("could not update pending closures: %w", err)
	}

	return nil
}
