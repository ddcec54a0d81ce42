// Package inspection compares entry and exit state-of-premises reports and
// apportions repair costs between tenant-caused damage and normal wear
// ("vetusté") according to a configurable depreciation policy.
package inspection

import (
	"time"

	"moveout/pkg/domain"
	"moveout/pkg/serrors"
)

// MissingEntryPolicy decides the baseline condition when a flagged exit item
// has no matching entry record.
type MissingEntryPolicy string

const (
	// AssumeGood treats a missing entry record as a "bon" baseline, so the
	// flagged item counts as a degradation. This mirrors the historical
	// behavior and is lenient toward under-detection of pre-existing damage.
	AssumeGood MissingEntryPolicy = "assume_good"
	// RequireMatch makes a missing entry record a hard error.
	RequireMatch MissingEntryPolicy = "require_match"
	// FlagForReview sets the item aside for manual review instead of
	// classifying it; its costs stay zero.
	FlagForReview MissingEntryPolicy = "flag_for_review"
)

// ParseMissingEntryPolicy validates a policy string from configuration.
func ParseMissingEntryPolicy(s string) (MissingEntryPolicy, error) {
	switch p := MissingEntryPolicy(s); p {
	case AssumeGood, RequireMatch, FlagForReview:
		return p, nil
	default:
		return "", serrors.With(serrors.ErrBadRequest, "unknown missing entry policy: %q", s)
	}
}

// Policy holds the jurisdiction-specific depreciation constants. These are
// configuration, not code: real depreciation schedules vary by rule set.
type Policy struct {
	// WearThresholdYears is the lease age above which a degradation counts as
	// normal wear instead of tenant damage.
	WearThresholdYears int
	// WearLandlordShare is the percentage of the repair cost the landlord
	// absorbs for normal wear.
	WearLandlordShare int
	// MissingEntry decides the baseline when an entry record cannot be matched.
	MissingEntry MissingEntryPolicy
}

// DefaultPolicy is the standard French apportionment: five-year threshold,
// 60/40 landlord/tenant split, missing entries assumed good.
func DefaultPolicy() Policy {
	return Policy{
		WearThresholdYears: 5,
		WearLandlordShare:  60,
		MissingEntry:       AssumeGood,
	}
}

// Totals accumulates the lease-wide outcome of a comparison.
type Totals struct {
	// TenantDamageCost is the summed tenant share across all items, in cents.
	TenantDamageCost domain.Money
	// WearCost is the summed landlord share across all items, in cents.
	WearCost domain.Money
	// TenantDamageCount counts items classified as tenant damage.
	TenantDamageCount int
	// WearCount counts items classified as normal wear.
	WearCount int
	// ReviewCount counts items set aside for manual review.
	ReviewCount int
}

// Comparer classifies exit inspection items against their entry counterparts.
type Comparer struct {
	policy Policy
}

// New returns a Comparer using the given policy.
func New(policy Policy) *Comparer {
	return &Comparer{policy: policy}
}

// AgeYears returns the lease's elapsed duration in whole years between its
// start date and the exit inspection date.
func AgeYears(start, exit time.Time) int {
	if exit.Before(start) {
		return 0
	}
	days := exit.Sub(start).Hours() / 24

	return int(days / 365.25)
}

// Classify decides the damage classification for a single exit item. entry is
// nil when no entry record matched the item's category. ageYears is the
// lease-wide elapsed duration; the classification depends only on the item,
// its entry counterpart and that scalar, so callers may classify items
// concurrently.
func (c *Comparer) Classify(item domain.InspectionItem,
	entry *domain.InspectionItem,
	ageYears int) (domain.ItemClassification, error) {
	out := domain.ItemClassification{
		Category:      item.Category,
		EstimatedCost: item.EstimatedCost,
	}

	// items not flagged at exit pass through unchanged
	if item.Status != domain.ExitProblem {
		return out, nil
	}

	baseline := domain.ConditionGood
	if entry != nil {
		baseline = entry.Condition
	} else {
		switch c.policy.MissingEntry {
		case RequireMatch:
			return out, serrors.With(serrors.ErrBadRequest,
				"no entry inspection record for category %q", item.Category)
		case FlagForReview:
			out.NeedsReview = true

			return out, nil
		case AssumeGood:
			// baseline stays "bon"
		}
	}

	if baseline != domain.ConditionGood {
		// the category was already degraded at move-in
		return out, nil
	}

	out.HasDegradation = true
	if ageYears > c.policy.WearThresholdYears {
		out.DamageType = domain.DamageNormalWear
		out.LandlordCost = item.EstimatedCost * domain.Money(c.policy.WearLandlordShare) / 100
		// tenant share is the remainder so the split always sums back exactly
		out.TenantCost = item.EstimatedCost - out.LandlordCost
	} else {
		out.DamageType = domain.DamageTenant
		out.TenantCost = item.EstimatedCost
	}

	return out, nil
}

// Compare classifies every exit item against the entry report and accumulates
// lease-wide totals. Entry items are matched by exact category name; the
// first match wins when duplicates exist. The process is record-by-record and
// order independent.
func (c *Comparer) Compare(exitItems, entryItems []domain.InspectionItem,
	ageYears int) ([]domain.ItemClassification, Totals, error) {
	byCategory := make(map[string]*domain.InspectionItem, len(entryItems))
	for i := range entryItems {
		if _, ok := byCategory[entryItems[i].Category]; !ok {
			byCategory[entryItems[i].Category] = &entryItems[i]
		}
	}

	classifications := make([]domain.ItemClassification, 0, len(exitItems))
	var totals Totals
	for _, item := range exitItems {
		cls, err := c.Classify(item, byCategory[item.Category], ageYears)
		if err != nil {
			return nil, Totals{}, err
		}

		switch {
		case cls.NeedsReview:
			totals.ReviewCount++
		case cls.DamageType == domain.DamageTenant:
			totals.TenantDamageCount++
		case cls.DamageType == domain.DamageNormalWear:
			totals.WearCount++
		}
		totals.TenantDamageCost += cls.TenantCost
		totals.WearCost += cls.LandlordCost

		classifications = append(classifications, cls)
	}

	return classifications, totals, nil
}
