package domain

import (
	"time"

	"github.com/google/uuid"
)

// IdentityCheckID uniquely identifies an identity document verification.
type IdentityCheckID uuid.UUID

// IdentityStatus is the outcome of an MRZ verification.
type IdentityStatus string

const (
	// IdentityStatusValid means an MRZ was found and all checksums passed.
	IdentityStatusValid IdentityStatus = "VALID"
	// IdentityStatusReview means an MRZ was found but at least one checksum
	// failed; the document needs manual review.
	IdentityStatusReview IdentityStatus = "REVIEW"
	// IdentityStatusNotFound means no machine-readable zone was located in the
	// submitted OCR text.
	IdentityStatusNotFound IdentityStatus = "NOT_FOUND"
)

// MRZRecord holds the structured fields extracted from a TD1 machine-readable
// zone. It is a read-only derivation: callers decide whether to store it.
type MRZRecord struct {
	// DocumentType is the two-character document type code (e.g. "ID").
	DocumentType string `json:"documentType"`
	// CountryCode is the three-letter issuing state code.
	CountryCode string `json:"countryCode"`
	// DocumentNumber is the document number as printed in the MRZ.
	DocumentNumber string `json:"documentNumber"`
	// Nationality is the three-letter nationality code.
	Nationality string `json:"nationality"`
	// Sex is "M", "F" or empty when unspecified.
	Sex string `json:"sex"`
	// DateOfBirth is the holder's birth date.
	DateOfBirth time.Time `json:"dateOfBirth"`
	// ExpiryDate is the document expiry date.
	ExpiryDate time.Time `json:"expiryDate"`
	// LastName is the holder's surname.
	LastName string `json:"lastName"`
	// FirstName is the holder's given name(s).
	FirstName string `json:"firstName"`
	// Valid is true when the document number, birth date and expiry date
	// checksums all pass.
	Valid bool `json:"valid"`
}

// IdentityCheck is the persisted record of one MRZ verification, kept for
// audit so moderators can review failed documents.
type IdentityCheck struct {
	// ID is the unique identifier of the check.
	ID IdentityCheckID `json:"id"`
	// UserID is the identifier of the user who submitted the document.
	UserID UserID `json:"userId"`

	// Status is the verification outcome.
	Status IdentityStatus `json:"status"`
	// Record holds the parsed MRZ fields; zero value when Status is NOT_FOUND.
	Record MRZRecord `json:"record"`

	// CreatedAt is the time when the check was performed.
	CreatedAt time.Time `json:"createdAt"`
}
