package service

import (
	"context"

	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/pricing"
	"rentdesk-backend/internal/repository"
)

type DeliveryService interface {
	// CreateFromReservation creates one delivery and one pickup handoff per
	// reservation line item, all in one transaction.
	CreateFromReservation(ctx context.Context, reservationID int32) ([]domain.DeliveryPickup, error)

	Assign(ctx context.Context, handoffID, staffID int32) (*domain.DeliveryPickup, error)
	Start(ctx context.Context, handoffID, staffID int32, lat, lon *float64) (*domain.DeliveryPickup, error)
	Complete(ctx context.Context, handoffID, staffID int32, lat, lon *float64) (*domain.DeliveryPickup, error)
	Cancel(ctx context.Context, handoffID, staffID int32, reason string) (*domain.DeliveryPickup, error)

	ScanAtStorage(ctx context.Context, handoffID, unitID, storageID, staffID int32) error
	ScanAtLocation(ctx context.Context, handoffID, unitID, staffID int32) error

	List(ctx context.Context, filter repository.HandoffFilter) ([]domain.DeliveryPickup, error)
	Get(ctx context.Context, handoffID int32) (*domain.DeliveryPickup, error)
	GetEvents(ctx context.Context, handoffID int32) ([]domain.DeliveryPickupEvent, error)
	AvailableStorages(ctx context.Context, productID int32) ([]domain.StorageLocation, error)
}

type PricingService interface {
	// QuoteProduct resolves the rental price for a product and duration from
	// its active tiers.
	QuoteProduct(ctx context.Context, productID int32, rentalDays int) (pricing.PriceCalculation, error)

	CreateTier(ctx context.Context, tier *domain.PricingTier) error
	UpdateTier(ctx context.Context, tier *domain.PricingTier) error
	DeactivateTier(ctx context.Context, tierID int32) error
	ListTiers(ctx context.Context, productID int32) ([]domain.PricingTier, error)
}

type AuthService interface {
	// Login returns a signed access token for an active staff member.
	Login(ctx context.Context, email, password string) (string, *domain.Staff, error)
}

type NotificationService interface {
	List(ctx context.Context, staffID int32, page, pageSize int32) ([]domain.Notification, error)
	MarkAsRead(ctx context.Context, staffID, notificationID int32) error
}

type EmailService interface {
	SendHandoffAssignedNotification(ctx context.Context, staffEmail, staffName, clientName string, handoff *domain.DeliveryPickup) error
	SendHandoffCompletedNotification(ctx context.Context, staffEmail, staffName string, handoff *domain.DeliveryPickup) error
	SendScheduleReminder(ctx context.Context, staffEmail, staffName, date string, handoffCount int) error
}
