package domain

import "time"

type ReservationStatus string

const (
	ReservationStatusPending   ReservationStatus = "pending"
	ReservationStatusConfirmed ReservationStatus = "confirmed"
	ReservationStatusActive    ReservationStatus = "active"
	ReservationStatusCompleted ReservationStatus = "completed"
	ReservationStatusCancelled ReservationStatus = "cancelled"
)

type Reservation struct {
	ID        int32             `json:"id"`
	Code      string            `json:"code"` // public reference, uuid
	ClientID  int32             `json:"client_id"`
	StartDate string            `json:"start_date"` // yyyy-mm-dd
	EndDate   string            `json:"end_date"`
	Status    ReservationStatus `json:"status"`

	// Delivery destination. Pickup fields fall back to these when unset.
	DeliveryAddress    string `json:"delivery_address"`
	DeliveryCity       string `json:"delivery_city"`
	DeliveryState      string `json:"delivery_state"`
	DeliveryPostalCode string `json:"delivery_postal_code"`
	DeliveryCountry    string `json:"delivery_country"`

	PickupAddress    *string `json:"pickup_address,omitempty"`
	PickupCity       *string `json:"pickup_city,omitempty"`
	PickupState      *string `json:"pickup_state,omitempty"`
	PickupPostalCode *string `json:"pickup_postal_code,omitempty"`
	PickupCountry    *string `json:"pickup_country,omitempty"`

	TotalCents int64     `json:"total_cents"`
	CreatedOn  time.Time `json:"created_on"`
}

type ReservationItem struct {
	ID               int32 `json:"id"`
	ReservationID    int32 `json:"reservation_id"`
	ProductID        int32 `json:"product_id"`
	Quantity         int32 `json:"quantity"`
	RentalDays       int32 `json:"rental_days"`
	PricePerDayCents int64 `json:"price_per_day_cents"`
	TotalCents       int64 `json:"total_cents"`
}
