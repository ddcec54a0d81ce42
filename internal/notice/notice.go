// Package notice resolves the legally mandated notice period for a lease
// termination and the deadline by which the deposit must be refunded.
package notice

import (
	"time"

	"moveout/pkg/domain"
	"moveout/pkg/serrors"
)

const (
	// StandardMonths is the default notice period.
	StandardMonths = 3
	// ReducedMonths applies in tight market zones and for the reduced-notice
	// termination grounds.
	ReducedMonths = 1
)

// reducedReasons are the termination grounds that grant the shortened notice
// period regardless of zone.
var reducedReasons = map[domain.TerminationReason]bool{
	domain.ReasonJobTransfer: true,
	domain.ReasonJobLoss:     true,
	domain.ReasonNewJob:      true,
	domain.ReasonHealth:      true,
	domain.ReasonBenefitRSA:  true,
	domain.ReasonBenefitAAH:  true,
	domain.ReasonFirstRental: true,
}

// ParseReason validates a termination reason string against the closed
// enumeration. Unknown values are a bad-request error rather than a silent
// fallthrough to the standard notice.
func ParseReason(s string) (domain.TerminationReason, error) {
	r := domain.TerminationReason(s)
	if r == domain.ReasonStandard || reducedReasons[r] {
		return r, nil
	}

	return "", serrors.With(serrors.ErrBadRequest, "unknown termination reason: %q", s)
}

// Period returns the notice period in months for the given termination ground.
// A tight market zone grants the reduced period for any reason.
func Period(reason domain.TerminationReason, tightZone bool) int {
	if tightZone || reducedReasons[reason] {
		return ReducedMonths
	}

	return StandardMonths
}

// LegalDeadline returns the date by which the deposit must be refunded: one
// calendar month after departure when the exit inspection was conformant, two
// otherwise. Calendar-month arithmetic rolls over year boundaries and clamps
// day-of-month overflow per time.AddDate semantics.
func LegalDeadline(departure time.Time, inspectionConformant bool) time.Time {
	months := 2
	if inspectionConformant {
		months = 1
	}

	return departure.AddDate(0, months, 0)
}
