// Package identity verifies tenant identity documents by locating and parsing
// the machine-readable zone in OCR'd text.
package identity

import (
	"context"
	"fmt"

	"moveout/internal/mrz"
	"moveout/pkg/domain"
	"moveout/pkg/metrics"
	"moveout/pkg/serrors"
	"moveout/pkg/storage"
)

// Service verifies identity documents and keeps an audit trail of checks.
type Service interface {
	// Verify parses the OCR text, classifies the outcome and stores the check.
	Verify(ctx context.Context, userID domain.UserID, ocr string) (*domain.IdentityCheck, error)
	// UserChecks returns the most recent checks for the given user.
	UserChecks(ctx context.Context, userID domain.UserID, limit uint) ([]domain.IdentityCheck, error)
}

type service struct {
	storage storage.Storage
	parser  *mrz.Parser
}

// New creates a Service backed by the provided storage.
func New(strg storage.Storage, opts ...mrz.Option) Service {
	return &service{
		storage: strg,
		parser:  mrz.New(opts...),
	}
}

// Verify scans the submitted OCR text for a TD1 zone. A zone with all
// checksums passing is VALID, one with a failing checksum is routed to manual
// REVIEW, and text without any zone yields NOT_FOUND. Every outcome is
// persisted for audit.
func (s service) Verify(ctx context.Context,
	userID domain.UserID, ocr string) (*domain.IdentityCheck, error) {
	if ocr == "" {
		return nil, serrors.With(serrors.ErrBadRequest, "ocr text is required")
	}

	check := domain.IdentityCheck{
		UserID: userID,
		Status: domain.IdentityStatusNotFound,
	}

	if doc, found := s.parser.Find(ocr); found {
		check.Status = domain.IdentityStatusReview
		if doc.Valid {
			check.Status = domain.IdentityStatusValid
		}
		check.Record = domain.MRZRecord{
			DocumentType:   doc.DocumentType,
			CountryCode:    doc.CountryCode,
			DocumentNumber: doc.DocumentNumber,
			Nationality:    doc.Nationality,
			Sex:            doc.Sex,
			DateOfBirth:    doc.DateOfBirth,
			ExpiryDate:     doc.ExpiryDate,
			LastName:       doc.LastName,
			FirstName:      doc.FirstName,
			Valid:          doc.Valid,
		}
	}

	stored, err := s.storage.StoreIdentityCheck(ctx, check)
	if err != nil {
		return nil, fmt.Errorf("could not store identity check: %w", err)
	}

	metrics.IdentityChecks.WithLabelValues(string(stored.Status)).Inc()

	return stored, nil
}

// UserChecks lists the user's checks, most recent first.
func (s service) UserChecks(ctx context.Context,
	userID domain.UserID, limit uint) ([]domain.IdentityCheck, error) {
	checks, err := s.storage.IdentityChecksByUser(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("could not get identity checks: %w", err)
	}

	return checks, nil
}
