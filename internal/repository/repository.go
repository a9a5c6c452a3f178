package repository

import (
	"context"

	"rentdesk-backend/internal/domain"
)

// HandoffFilter narrows List queries. Zero values mean "no filter".
type HandoffFilter struct {
	Type          domain.DeliveryPickupType
	Status        domain.DeliveryPickupStatus
	ScheduledDate string // yyyy-mm-dd
	AssignedToID  *int32
}

// UnitScanMutation describes the product-unit side effect of a scan, applied
// in the same transaction as the event append.
type UnitScanMutation struct {
	UnitID    int32
	Status    domain.ProductUnitStatus
	StorageID *int32 // nil clears the unit's storage
}

type DeliveryRepository interface {
	// CreateBatch inserts all handoffs in one transaction; any failure
	// rolls back the whole batch.
	CreateBatch(ctx context.Context, handoffs []*domain.DeliveryPickup) error

	// GetByID returns (nil, nil) when no handoff matches.
	GetByID(ctx context.Context, id int32) (*domain.DeliveryPickup, error)
	List(ctx context.Context, filter HandoffFilter) ([]domain.DeliveryPickup, error)
	ListOverdue(ctx context.Context, beforeDate string) ([]domain.DeliveryPickup, error)

	// The Mark* methods perform the conditional status update and the event
	// append in one transaction. When the guard matches zero rows they
	// return domain.ErrInvalidTransition and write nothing.
	MarkAssigned(ctx context.Context, id, staffID int32, staffName string, event *domain.DeliveryPickupEvent) error
	MarkStarted(ctx context.Context, id, staffID int32, event *domain.DeliveryPickupEvent) error
	MarkCompleted(ctx context.Context, id, staffID int32, event *domain.DeliveryPickupEvent) error
	MarkCancelled(ctx context.Context, id int32, event *domain.DeliveryPickupEvent) error

	// RecordScan appends a scan event and applies the optional unit mutation
	// and unit binding in one transaction.
	RecordScan(ctx context.Context, handoffID int32, event *domain.DeliveryPickupEvent, mutation *UnitScanMutation, bindUnitID *int32) error

	ListEvents(ctx context.Context, handoffID int32) ([]domain.DeliveryPickupEvent, error)
}

type ReservationRepository interface {
	// GetWithItems returns domain.ErrReservationNotFound when the
	// reservation does not exist.
	GetWithItems(ctx context.Context, id int32) (*domain.Reservation, []domain.ReservationItem, error)
}

type ProductRepository interface {
	GetByID(ctx context.Context, id int32) (*domain.Product, error)
	GetUnitByID(ctx context.Context, unitID int32) (*domain.ProductUnit, error)
	// ListAvailableStorages returns the distinct storage locations holding
	// at least one available unit of the product.
	ListAvailableStorages(ctx context.Context, productID int32) ([]domain.StorageLocation, error)
}

type PricingTierRepository interface {
	Create(ctx context.Context, tier *domain.PricingTier) error
	Update(ctx context.Context, tier *domain.PricingTier) error
	Deactivate(ctx context.Context, id int32) error
	// ListActiveByProduct returns active tiers ordered by min_days ascending.
	ListActiveByProduct(ctx context.Context, productID int32) ([]domain.PricingTier, error)
}

type StaffRepository interface {
	GetByID(ctx context.Context, id int32) (*domain.Staff, error)
	GetByEmail(ctx context.Context, email string) (*domain.Staff, error)
}

type ClientRepository interface {
	GetByID(ctx context.Context, id int32) (*domain.Client, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	List(ctx context.Context, staffID int32, limit, offset int32) ([]domain.Notification, error)
	MarkAsRead(ctx context.Context, id, staffID int32) error
}
