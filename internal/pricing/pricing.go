// Package pricing resolves the per-day rate for a rental from a product's
// duration-based pricing tiers.
package pricing

import (
	"errors"
	"math"

	"rentdesk-backend/internal/domain"
)

var ErrInvalidInput = errors.New("base daily price must be positive")

// PriceCalculation is a pure function result; it has no identity and is
// never persisted.
type PriceCalculation struct {
	PricePerDayCents   int64  `json:"price_per_day_cents"`
	TotalPriceCents    int64  `json:"total_price_cents"`
	OriginalPriceCents int64  `json:"original_price_cents"`
	SavingsCents       int64  `json:"savings_cents"`
	IsDiscounted       bool   `json:"is_discounted"`
	TierName           string `json:"tier_name,omitempty"`
}

// DisplayPrice is the storefront projection of a PriceCalculation.
type DisplayPrice struct {
	CurrentCents  int64 `json:"current_cents"`
	OriginalCents int64 `json:"original_cents"`
	PercentSaved  int   `json:"percent_saved"`
}

// Resolve selects the applicable per-day rate for a rental.
//
// Tiers are scanned in the order supplied and the first tier whose range
// contains rentalDays wins; the caller is responsible for a sensible order
// (the repository fetches active tiers ascending by min_days). A rental of
// zero or negative days bills as a single base-rate day and bypasses tiers
// entirely.
func Resolve(baseDailyPriceCents int64, rentalDays int, tiers []domain.PricingTier) (PriceCalculation, error) {
	if baseDailyPriceCents <= 0 {
		return PriceCalculation{}, ErrInvalidInput
	}

	if rentalDays <= 0 || len(tiers) == 0 {
		return basePrice(baseDailyPriceCents, rentalDays), nil
	}

	for _, tier := range tiers {
		if !tier.Matches(rentalDays) {
			continue
		}
		total := tier.PricePerDayCents * int64(rentalDays)
		original := baseDailyPriceCents * int64(rentalDays)
		savings := original - total
		return PriceCalculation{
			PricePerDayCents:   tier.PricePerDayCents,
			TotalPriceCents:    total,
			OriginalPriceCents: original,
			SavingsCents:       savings,
			IsDiscounted:       savings > 0,
			TierName:           tier.TierName,
		}, nil
	}

	// No tier covers this duration; rentalDays is known positive here.
	return basePrice(baseDailyPriceCents, rentalDays), nil
}

func basePrice(baseDailyPriceCents int64, rentalDays int) PriceCalculation {
	days := int64(rentalDays)
	if days < 1 {
		days = 1
	}
	total := baseDailyPriceCents * days
	return PriceCalculation{
		PricePerDayCents:   baseDailyPriceCents,
		TotalPriceCents:    total,
		OriginalPriceCents: total,
		SavingsCents:       0,
		IsDiscounted:       false,
	}
}

// FormatWithDiscount derives the storefront display triple from a
// calculation. PercentSaved is 0 when the original price is zero.
func FormatWithDiscount(calc PriceCalculation) DisplayPrice {
	percent := 0
	if calc.OriginalPriceCents > 0 {
		percent = int(math.Round(float64(calc.SavingsCents) / float64(calc.OriginalPriceCents) * 100))
	}
	return DisplayPrice{
		CurrentCents:  calc.TotalPriceCents,
		OriginalCents: calc.OriginalPriceCents,
		PercentSaved:  percent,
	}
}

// ValidateDisjoint checks that candidate does not overlap any of the active
// tiers already configured for a product. Ranges are inclusive on both ends;
// a nil MaxDays extends to infinity.
func ValidateDisjoint(candidate domain.PricingTier, existing []domain.PricingTier) error {
	for _, t := range existing {
		if t.ID == candidate.ID {
			continue // updating in place
		}
		if rangesOverlap(candidate.MinDays, candidate.MaxDays, t.MinDays, t.MaxDays) {
			return domain.ErrTierOverlap
		}
	}
	return nil
}

func rangesOverlap(aMin int, aMax *int, bMin int, bMax *int) bool {
	if aMax != nil && *aMax < bMin {
		return false
	}
	if bMax != nil && *bMax < aMin {
		return false
	}
	return true
}
