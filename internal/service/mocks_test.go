package service_test

import (
	"context"

	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/repository"

	"github.com/stretchr/testify/mock"
)

// MockDeliveryRepo
type MockDeliveryRepo struct {
	mock.Mock
}

func (m *MockDeliveryRepo) CreateBatch(ctx context.Context, handoffs []*domain.DeliveryPickup) error {
	args := m.Called(ctx, handoffs)
	return args.Error(0)
}
func (m *MockDeliveryRepo) GetByID(ctx context.Context, id int32) (*domain.DeliveryPickup, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DeliveryPickup), args.Error(1)
}
func (m *MockDeliveryRepo) List(ctx context.Context, filter repository.HandoffFilter) ([]domain.DeliveryPickup, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.DeliveryPickup), args.Error(1)
}
func (m *MockDeliveryRepo) ListOverdue(ctx context.Context, beforeDate string) ([]domain.DeliveryPickup, error) {
	args := m.Called(ctx, beforeDate)
	return args.Get(0).([]domain.DeliveryPickup), args.Error(1)
}
func (m *MockDeliveryRepo) MarkAssigned(ctx context.Context, id, staffID int32, staffName string, event *domain.DeliveryPickupEvent) error {
	args := m.Called(ctx, id, staffID, staffName, event)
	return args.Error(0)
}
func (m *MockDeliveryRepo) MarkStarted(ctx context.Context, id, staffID int32, event *domain.DeliveryPickupEvent) error {
	args := m.Called(ctx, id, staffID, event)
	return args.Error(0)
}
func (m *MockDeliveryRepo) MarkCompleted(ctx context.Context, id, staffID int32, event *domain.DeliveryPickupEvent) error {
	args := m.Called(ctx, id, staffID, event)
	return args.Error(0)
}
func (m *MockDeliveryRepo) MarkCancelled(ctx context.Context, id int32, event *domain.DeliveryPickupEvent) error {
	args := m.Called(ctx, id, event)
	return args.Error(0)
}
func (m *MockDeliveryRepo) RecordScan(ctx context.Context, handoffID int32, event *domain.DeliveryPickupEvent, mutation *repository.UnitScanMutation, bindUnitID *int32) error {
	args := m.Called(ctx, handoffID, event, mutation, bindUnitID)
	return args.Error(0)
}
func (m *MockDeliveryRepo) ListEvents(ctx context.Context, handoffID int32) ([]domain.DeliveryPickupEvent, error) {
	args := m.Called(ctx, handoffID)
	return args.Get(0).([]domain.DeliveryPickupEvent), args.Error(1)
}

// MockReservationRepo
type MockReservationRepo struct {
	mock.Mock
}

func (m *MockReservationRepo) GetWithItems(ctx context.Context, id int32) (*domain.Reservation, []domain.ReservationItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Reservation), args.Get(1).([]domain.ReservationItem), args.Error(2)
}

// MockProductRepo
type MockProductRepo struct {
	mock.Mock
}

func (m *MockProductRepo) GetByID(ctx context.Context, id int32) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}
func (m *MockProductRepo) GetUnitByID(ctx context.Context, unitID int32) (*domain.ProductUnit, error) {
	args := m.Called(ctx, unitID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProductUnit), args.Error(1)
}
func (m *MockProductRepo) ListAvailableStorages(ctx context.Context, productID int32) ([]domain.StorageLocation, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).([]domain.StorageLocation), args.Error(1)
}

// MockPricingTierRepo
type MockPricingTierRepo struct {
	mock.Mock
}

func (m *MockPricingTierRepo) Create(ctx context.Context, tier *domain.PricingTier) error {
	args := m.Called(ctx, tier)
	return args.Error(0)
}
func (m *MockPricingTierRepo) Update(ctx context.Context, tier *domain.PricingTier) error {
	args := m.Called(ctx, tier)
	return args.Error(0)
}
func (m *MockPricingTierRepo) Deactivate(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockPricingTierRepo) ListActiveByProduct(ctx context.Context, productID int32) ([]domain.PricingTier, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).([]domain.PricingTier), args.Error(1)
}

// MockStaffRepo
type MockStaffRepo struct {
	mock.Mock
}

func (m *MockStaffRepo) GetByID(ctx context.Context, id int32) (*domain.Staff, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Staff), args.Error(1)
}
func (m *MockStaffRepo) GetByEmail(ctx context.Context, email string) (*domain.Staff, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Staff), args.Error(1)
}

// MockClientRepo
type MockClientRepo struct {
	mock.Mock
}

func (m *MockClientRepo) GetByID(ctx context.Context, id int32) (*domain.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

// MockNotificationRepo
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, note *domain.Notification) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}
func (m *MockNotificationRepo) List(ctx context.Context, staffID int32, limit, offset int32) ([]domain.Notification, error) {
	args := m.Called(ctx, staffID, limit, offset)
	return args.Get(0).([]domain.Notification), args.Error(1)
}
func (m *MockNotificationRepo) MarkAsRead(ctx context.Context, id, staffID int32) error {
	args := m.Called(ctx, id, staffID)
	return args.Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendHandoffAssignedNotification(ctx context.Context, staffEmail, staffName, clientName string, handoff *domain.DeliveryPickup) error {
	args := m.Called(ctx, staffEmail, staffName, clientName, handoff)
	return args.Error(0)
}
func (m *MockEmailService) SendHandoffCompletedNotification(ctx context.Context, staffEmail, staffName string, handoff *domain.DeliveryPickup) error {
	args := m.Called(ctx, staffEmail, staffName, handoff)
	return args.Error(0)
}
func (m *MockEmailService) SendScheduleReminder(ctx context.Context, staffEmail, staffName, date string, handoffCount int) error {
	args := m.Called(ctx, staffEmail, staffName, date, handoffCount)
	return args.Error(0)
}
