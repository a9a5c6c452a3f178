package domain

import "time"

type Product struct {
	ID               int32     `json:"id"`
	Name             string    `json:"name"`
	Description      string    `json:"description"`
	Category         string    `json:"category"`
	PricePerDayCents int64     `json:"price_per_day_cents"`
	IsActive         bool      `json:"is_active"`
	CreatedOn        time.Time `json:"created_on"`
}

type ProductUnitStatus string

const (
	UnitStatusAvailable   ProductUnitStatus = "available"
	UnitStatusRented      ProductUnitStatus = "rented"
	UnitStatusMaintenance ProductUnitStatus = "maintenance"
	UnitStatusInactive    ProductUnitStatus = "inactive"
)

// ProductUnit is one physical, individually tracked instance of a product.
// StorageID is nil while the unit is out with a customer.
type ProductUnit struct {
	ID         int32             `json:"id"`
	ProductID  int32             `json:"product_id"`
	SerialCode string            `json:"serial_code"`
	Status     ProductUnitStatus `json:"status"`
	StorageID  *int32            `json:"storage_id,omitempty"`
	CreatedOn  time.Time         `json:"created_on"`
}

// PricingTier is a duration range with a per-day rate, used to offer
// long-rental discounts. MaxDays nil means no upper bound.
type PricingTier struct {
	ID               int32     `json:"id"`
	ProductID        int32     `json:"product_id"`
	MinDays          int       `json:"min_days"`
	MaxDays          *int      `json:"max_days,omitempty"`
	PricePerDayCents int64     `json:"price_per_day_cents"`
	TierName         string    `json:"tier_name,omitempty"`
	IsActive         bool      `json:"is_active"`
	CreatedOn        time.Time `json:"created_on"`
}

// Matches reports whether rentalDays falls inside this tier's range.
func (t PricingTier) Matches(rentalDays int) bool {
	if rentalDays < t.MinDays {
		return false
	}
	return t.MaxDays == nil || rentalDays <= *t.MaxDays
}
