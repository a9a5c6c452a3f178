package domain

import "time"

type DeliveryPickupType string

const (
	HandoffTypeDelivery DeliveryPickupType = "delivery"
	HandoffTypePickup   DeliveryPickupType = "pickup"
)

type DeliveryPickupStatus string

const (
	HandoffStatusPending    DeliveryPickupStatus = "pending"
	HandoffStatusAssigned   DeliveryPickupStatus = "assigned"
	HandoffStatusInProgress DeliveryPickupStatus = "in_progress"
	HandoffStatusCompleted  DeliveryPickupStatus = "completed"
	HandoffStatusCancelled  DeliveryPickupStatus = "cancelled"
)

// IsTerminal reports whether no further transition or scan is allowed.
func (s DeliveryPickupStatus) IsTerminal() bool {
	return s == HandoffStatusCompleted || s == HandoffStatusCancelled
}

// DeliveryPickup is one leg (delivery or pickup) of getting a rented unit
// to or from a customer. The type is fixed at creation; only status and the
// status timestamps move afterwards.
type DeliveryPickup struct {
	ID             int32                `json:"id"`
	ReservationID  int32                `json:"reservation_id"`
	ClientID       int32                `json:"client_id"`
	ProductID      int32                `json:"product_id"`
	ProductUnitID  *int32               `json:"product_unit_id,omitempty"`
	AssignedToID   *int32               `json:"assigned_to_id,omitempty"`
	AssignedToName string               `json:"assigned_to_name,omitempty"`
	Type           DeliveryPickupType   `json:"type"`
	Status         DeliveryPickupStatus `json:"status"`

	ScheduledDate      string `json:"scheduled_date"` // yyyy-mm-dd
	ScheduledTimeStart string `json:"scheduled_time_start"`
	ScheduledTimeEnd   string `json:"scheduled_time_end"`

	Address    string   `json:"address"`
	City       string   `json:"city"`
	State      string   `json:"state"`
	PostalCode string   `json:"postal_code"`
	Country    string   `json:"country"`
	Latitude   *float64 `json:"latitude,omitempty"`
	Longitude  *float64 `json:"longitude,omitempty"`

	AssignedAt  *time.Time `json:"assigned_at,omitempty"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedOn   time.Time  `json:"created_on"`
	UpdatedOn   time.Time  `json:"updated_on"`
}

type DeliveryPickupEventType string

const (
	EventAssigned                 DeliveryPickupEventType = "assigned"
	EventStarted                  DeliveryPickupEventType = "started"
	EventCompleted                DeliveryPickupEventType = "completed"
	EventCancelled                DeliveryPickupEventType = "cancelled"
	EventScannedAtStorageDelivery DeliveryPickupEventType = "scanned_at_storage_delivery"
	EventScannedAtStorageReturn   DeliveryPickupEventType = "scanned_at_storage_return"
	EventScannedAtDelivery        DeliveryPickupEventType = "scanned_at_delivery"
	EventScannedAtPickup          DeliveryPickupEventType = "scanned_at_pickup"
)

// DeliveryPickupEvent is one row of the append-only history of a handoff.
// Events are immutable once written and ordered by EventTime.
type DeliveryPickupEvent struct {
	ID               int32                   `json:"id"`
	DeliveryPickupID int32                   `json:"delivery_pickup_id"`
	Type             DeliveryPickupEventType `json:"type"`
	UserID           int32                   `json:"user_id"`
	UserName         string                  `json:"user_name"`
	EventTime        time.Time               `json:"event_time"`
	Location         string                  `json:"location,omitempty"`
	Latitude         *float64                `json:"latitude,omitempty"`
	Longitude        *float64                `json:"longitude,omitempty"`
	Notes            string                  `json:"notes,omitempty"`
	UnitID           *int32                  `json:"unit_id,omitempty"`
	StorageID        *int32                  `json:"storage_id,omitempty"`
}
