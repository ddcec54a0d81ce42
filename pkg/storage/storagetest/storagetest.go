// Package storagetest provides a function-field stub of storage.Storage for
// service-level tests. Each test wires only the calls it expects; unwired
// methods panic with a nil dereference, which surfaces unexpected calls.
package storagetest

import (
	"context"
	"time"

	"moveout/pkg/domain"
	"moveout/pkg/storage"

	"github.com/riverqueue/river"
)

// Stub implements storage.Storage through optional function fields.
type Stub struct {
	StoreLeasesFn          func(ctx context.Context, leases ...domain.Lease) ([]domain.Lease, error)
	LeaseByIDFn            func(ctx context.Context, userID domain.UserID, id domain.LeaseID) (*domain.Lease, error)
	StoreInspectionFn      func(ctx context.Context, in domain.Inspection) (*domain.Inspection, error)
	InspectionByPhaseFn    func(ctx context.Context, leaseID domain.LeaseID, phase domain.InspectionPhase) (*domain.Inspection, error)
	StoreClosuresFn        func(ctx context.Context, closures ...domain.Closure) ([]domain.Closure, error)
	UpdatePendingByLeaseFn func(ctx context.Context, leaseID domain.LeaseID, updates storage.ClosureUpdates) error
	PendingCountByLeaseFn  func(ctx context.Context, leaseID domain.LeaseID) (int64, error)
	UpdateClosureByIDFn    func(ctx context.Context, id domain.ClosureID, updates storage.ClosureUpdates) (*domain.Closure, error)
	DeleteClosureFn        func(ctx context.Context, userID domain.UserID, id domain.ClosureID) (*domain.Closure, error)
	UserClosuresFn         func(ctx context.Context, userID domain.UserID, status domain.ClosureStatus, cursor time.Time, limit uint) (storage.UserClosures, error)
	ClosureByIDFn          func(ctx context.Context, userID domain.UserID, id domain.ClosureID) (*domain.Closure, error)
	LastCompletedByLeaseFn func(ctx context.Context, leaseID domain.LeaseID) (*domain.Closure, error)
	LastPendingByLeaseFn   func(ctx context.Context, leaseID domain.LeaseID) (*domain.Closure, error)
	StoreIdentityCheckFn   func(ctx context.Context, check domain.IdentityCheck) (*domain.IdentityCheck, error)
	IdentityChecksByUserFn func(ctx context.Context, userID domain.UserID, limit uint) ([]domain.IdentityCheck, error)
	AddJobFn               func(ctx context.Context, args river.JobArgs, opts *river.InsertOpts) (bool, error)
}

func (s *Stub) StoreLeases(ctx context.Context, leases ...domain.Lease) ([]domain.Lease, error) {
	return s.StoreLeasesFn(ctx, leases...)
}

func (s *Stub) LeaseByID(ctx context.Context,
	userID domain.UserID, id domain.LeaseID) (*domain.Lease, error) {
	return s.LeaseByIDFn(ctx, userID, id)
}

func (s *Stub) StoreInspection(ctx context.Context,
	in domain.Inspection) (*domain.Inspection, error) {
	return s.StoreInspectionFn(ctx, in)
}

func (s *Stub) InspectionByPhase(ctx context.Context,
	leaseID domain.LeaseID, phase domain.InspectionPhase) (*domain.Inspection, error) {
	return s.InspectionByPhaseFn(ctx, leaseID, phase)
}

func (s *Stub) StoreClosures(ctx context.Context,
	closures ...domain.Closure) ([]domain.Closure, error) {
	return s.StoreClosuresFn(ctx, closures...)
}

func (s *Stub) UpdatePendingClosuresByLease(ctx context.Context,
	leaseID domain.LeaseID, updates storage.ClosureUpdates) error {
	return s.UpdatePendingByLeaseFn(ctx, leaseID, updates)
}

func (s *Stub) PendingClosureCountByLease(ctx context.Context,
	leaseID domain.LeaseID) (int64, error) {
	return s.PendingCountByLeaseFn(ctx, leaseID)
}

func (s *Stub) UpdateClosureByID(ctx context.Context,
	id domain.ClosureID, updates storage.ClosureUpdates) (*domain.Closure, error) {
	return s.UpdateClosureByIDFn(ctx, id, updates)
}

func (s *Stub) DeleteClosure(ctx context.Context,
	userID domain.UserID, id domain.ClosureID) (*domain.Closure, error) {
	return s.DeleteClosureFn(ctx, userID, id)
}

func (s *Stub) UserClosures(ctx context.Context,
	userID domain.UserID,
	status domain.ClosureStatus,
	cursor time.Time,
	limit uint) (storage.UserClosures, error) {
	return s.UserClosuresFn(ctx, userID, status, cursor, limit)
}

func (s *Stub) ClosureByID(ctx context.Context,
	userID domain.UserID, id domain.ClosureID) (*domain.Closure, error) {
	return s.ClosureByIDFn(ctx, userID, id)
}

func (s *Stub) LastCompletedClosureByLease(ctx context.Context,
	leaseID domain.LeaseID) (*domain.Closure, error) {
	return s.LastCompletedByLeaseFn(ctx, leaseID)
}

func (s *Stub) LastPendingClosureByLease(ctx context.Context,
	leaseID domain.LeaseID) (*domain.Closure, error) {
	return s.LastPendingByLeaseFn(ctx, leaseID)
}

func (s *Stub) StoreIdentityCheck(ctx context.Context,
	check domain.IdentityCheck) (*domain.IdentityCheck, error) {
	return s.StoreIdentityCheckFn(ctx, check)
}

func (s *Stub) IdentityChecksByUser(ctx context.Context,
	userID domain.UserID, limit uint) ([]domain.IdentityCheck, error) {
	return s.IdentityChecksByUserFn(ctx, userID, limit)
}

func (s *Stub) AddJob(ctx context.Context,
	args river.JobArgs, opts *river.InsertOpts) (bool, error) {
	return s.AddJobFn(ctx, args, opts)
}

func (s *Stub) Close() error { return nil }

func (s *Stub) Begin(ctx context.Context) (storage.TxStorage, error) {
	return nil, storage.ErrAlreadyInTx
}

// WithTx runs the callback against the stub itself; transactional semantics
// are covered by the postgres tests.
func (s *Stub) WithTx(ctx context.Context, cb func(storage storage.AllStorage) error) error {
	return cb(s)
}
