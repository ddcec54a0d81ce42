// Package settlement computes the deposit settlement at the end of a lease:
// deductions are summed, netted against the security deposit, and the balance
// is split into an amount to return to the tenant and an amount still owed.
package settlement

import (
	"moveout/pkg/domain"
	"moveout/pkg/serrors"
)

// Input carries the security deposit and the itemized deduction categories.
// All amounts are in cents and must be non-negative.
type Input struct {
	// Deposit is the security deposit held for the lease.
	Deposit domain.Money
	// UnpaidRent is outstanding rent owed by the tenant.
	UnpaidRent domain.Money
	// RepairCosts is the tenant share of repair costs from the inspection comparison.
	RepairCosts domain.Money
	// CleaningCosts is the cleaning deduction.
	CleaningCosts domain.Money
	// OtherDeductions groups any remaining deductions.
	OtherDeductions domain.Money
}

// Validate rejects negative amounts. Compute assumes validated input.
func (in Input) Validate() error {
	fields := map[string]domain.Money{
		"deposit":         in.Deposit,
		"unpaidRent":      in.UnpaidRent,
		"repairCosts":     in.RepairCosts,
		"cleaningCosts":   in.CleaningCosts,
		"otherDeductions": in.OtherDeductions,
	}
	for name, v := range fields {
		if v.IsNegative() {
			return serrors.With(serrors.ErrBadRequest, "%s must not be negative", name)
		}
	}

	return nil
}

// Compute nets the deductions against the deposit. The result satisfies
// amountToReturn - amountToPay == deposit - totalDeductions, and at most one
// of the two outputs is nonzero. It is pure and deterministic.
func Compute(in Input) domain.Settlement {
	total := in.UnpaidRent + in.RepairCosts + in.CleaningCosts + in.OtherDeductions
	balance := in.Deposit - total

	s := domain.Settlement{TotalDeductions: total}
	if balance >= 0 {
		s.AmountToReturn = balance
	} else {
		s.AmountToPay = -balance
	}

	return s
}
