package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/repository"
	"rentdesk-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newDeliveryService(deliveryRepo repository.DeliveryRepository, resRepo *MockReservationRepo, productRepo *MockProductRepo, staffRepo *MockStaffRepo, clientRepo *MockClientRepo, noteRepo *MockNotificationRepo, emailSvc *MockEmailService) service.DeliveryService {
	return service.NewDeliveryService(deliveryRepo, resRepo, productRepo, staffRepo, clientRepo, noteRepo, emailSvc)
}

func TestDeliveryService_CreateFromReservation(t *testing.T) {
	mockDeliveryRepo := new(MockDeliveryRepo)
	mockResRepo := new(MockReservationRepo)
	svc := newDeliveryService(mockDeliveryRepo, mockResRepo, nil, nil, nil, nil, nil)
	ctx := context.Background()

	pickupAddr := "12 Depot Rd"
	res := &domain.Reservation{
		ID:                 7,
		ClientID:           3,
		StartDate:          "2026-09-01",
		EndDate:            "2026-09-08",
		DeliveryAddress:    "5 Main St",
		DeliveryCity:       "Springfield",
		DeliveryState:      "IL",
		DeliveryPostalCode: "62701",
		DeliveryCountry:    "US",
		PickupAddress:      &pickupAddr,
	}
	items := []domain.ReservationItem{
		{ID: 1, ReservationID: 7, ProductID: 10},
		{ID: 2, ReservationID: 7, ProductID: 20},
	}
	mockResRepo.On("GetWithItems", ctx, int32(7)).Return(res, items, nil).Once()
	mockDeliveryRepo.On("CreateBatch", ctx, mock.MatchedBy(func(handoffs []*domain.DeliveryPickup) bool {
		return len(handoffs) == 4
	})).Return(nil).Once()

	created, err := svc.CreateFromReservation(ctx, 7)
	assert.NoError(t, err)
	assert.Len(t, created, 4)

	// One delivery and one pickup per line item, deliveries on the start
	// date in the morning window, pickups on the end date in the afternoon.
	delivery, pickup := created[0], created[1]
	assert.Equal(t, domain.HandoffTypeDelivery, delivery.Type)
	assert.Equal(t, domain.HandoffStatusPending, delivery.Status)
	assert.Equal(t, "2026-09-01", delivery.ScheduledDate)
	assert.Equal(t, "09:00", delivery.ScheduledTimeStart)
	assert.Equal(t, "12:00", delivery.ScheduledTimeEnd)
	assert.Equal(t, "5 Main St", delivery.Address)

	assert.Equal(t, domain.HandoffTypePickup, pickup.Type)
	assert.Equal(t, "2026-09-08", pickup.ScheduledDate)
	assert.Equal(t, "14:00", pickup.ScheduledTimeStart)
	assert.Equal(t, "18:00", pickup.ScheduledTimeEnd)
	// Pickup address set explicitly, city falls back to the delivery city.
	assert.Equal(t, "12 Depot Rd", pickup.Address)
	assert.Equal(t, "Springfield", pickup.City)

	assert.Equal(t, int32(10), created[0].ProductID)
	assert.Equal(t, int32(20), created[2].ProductID)

	mockDeliveryRepo.AssertExpectations(t)
	mockResRepo.AssertExpectations(t)
}

func TestDeliveryService_CreateFromReservation_NotFound(t *testing.T) {
	mockResRepo := new(MockReservationRepo)
	svc := newDeliveryService(new(MockDeliveryRepo), mockResRepo, nil, nil, nil, nil, nil)
	ctx := context.Background()

	mockResRepo.On("GetWithItems", ctx, int32(99)).Return(nil, nil, domain.ErrReservationNotFound).Once()

	_, err := svc.CreateFromReservation(ctx, 99)
	assert.ErrorIs(t, err, domain.ErrReservationNotFound)
}

func TestDeliveryService_Assign(t *testing.T) {
	ctx := context.Background()
	staff := &domain.Staff{ID: 5, Name: "Dana", Email: "dana@rentdesk.local", IsActive: true}
	client := &domain.Client{ID: 3, Name: "Acme Builders"}

	t.Run("pending handoff is assigned and staff notified", func(t *testing.T) {
		mockDeliveryRepo := new(MockDeliveryRepo)
		mockStaffRepo := new(MockStaffRepo)
		mockClientRepo := new(MockClientRepo)
		mockNoteRepo := new(MockNotificationRepo)
		mockEmailSvc := new(MockEmailService)
		svc := newDeliveryService(mockDeliveryRepo, nil, nil, mockStaffRepo, mockClientRepo, mockNoteRepo, mockEmailSvc)

		sid := int32(5)
		pending := &domain.DeliveryPickup{ID: 1, ClientID: 3, Type: domain.HandoffTypeDelivery, Status: domain.HandoffStatusPending}
		assigned := &domain.DeliveryPickup{ID: 1, ClientID: 3, Type: domain.HandoffTypeDelivery, Status: domain.HandoffStatusAssigned, AssignedToID: &sid, AssignedToName: "Dana"}

		mockStaffRepo.On("GetByID", ctx, int32(5)).Return(staff, nil).Once()
		mockDeliveryRepo.On("GetByID", ctx, int32(1)).Return(pending, nil).Once()
		mockDeliveryRepo.On("MarkAssigned", ctx, int32(1), int32(5), "Dana", mock.MatchedBy(func(e *domain.DeliveryPickupEvent) bool {
			return e.Type == domain.EventAssigned && e.UserID == 5 && e.UserName == "Dana"
		})).Return(nil).Once()
		// The client is resolved so the notification text can name them.
		mockClientRepo.On("GetByID", ctx, int32(3)).Return(client, nil).Once()
		mockEmailSvc.On("SendHandoffAssignedNotification", ctx, "dana@rentdesk.local", "Dana", "Acme Builders", pending).Return(nil).Once()
		mockNoteRepo.On("Create", ctx, mock.MatchedBy(func(n *domain.Notification) bool {
			return n.StaffID == 5 && n.Attributes["type"] == "HANDOFF_ASSIGNED" &&
				strings.Contains(n.Message, "Acme Builders")
		})).Return(nil).Once()
		mockDeliveryRepo.On("GetByID", ctx, int32(1)).Return(assigned, nil).Once()

		dp, err := svc.Assign(ctx, 1, 5)
		assert.NoError(t, err)
		assert.Equal(t, domain.HandoffStatusAssigned, dp.Status)
		assert.Equal(t, "Dana", dp.AssignedToName)

		mockDeliveryRepo.AssertExpectations(t)
		mockClientRepo.AssertExpectations(t)
		mockEmailSvc.AssertExpectations(t)
		mockNoteRepo.AssertExpectations(t)
	})

	t.Run("email failure does not block the assignment", func(t *testing.T) {
		mockDeliveryRepo := new(MockDeliveryRepo)
		mockStaffRepo := new(MockStaffRepo)
		mockClientRepo := new(MockClientRepo)
		mockNoteRepo := new(MockNotificationRepo)
		mockEmailSvc := new(MockEmailService)
		svc := newDeliveryService(mockDeliveryRepo, nil, nil, mockStaffRepo, mockClientRepo, mockNoteRepo, mockEmailSvc)

		sid := int32(5)
		pending := &domain.DeliveryPickup{ID: 1, ClientID: 3, Status: domain.HandoffStatusPending}
		assigned := &domain.DeliveryPickup{ID: 1, ClientID: 3, Status: domain.HandoffStatusAssigned, AssignedToID: &sid}

		mockStaffRepo.On("GetByID", ctx, int32(5)).Return(staff, nil).Once()
		mockDeliveryRepo.On("GetByID", ctx, int32(1)).Return(pending, nil).Once()
		mockDeliveryRepo.On("MarkAssigned", ctx, int32(1), int32(5), "Dana", mock.Anything).Return(nil).Once()
		mockClientRepo.On("GetByID", ctx, int32(3)).Return(nil, errors.New("client table unavailable")).Once()
		mockEmailSvc.On("SendHandoffAssignedNotification", ctx, "dana@rentdesk.local", "Dana", "", pending).
			Return(errors.New("smtp down")).Once()
		mockNoteRepo.On("Create", ctx, mock.Anything).Return(nil).Once()
		mockDeliveryRepo.On("GetByID", ctx, int32(1)).Return(assigned, nil).Once()

		dp, err := svc.Assign(ctx, 1, 5)
		assert.NoError(t, err)
		assert.Equal(t, domain.HandoffStatusAssigned, dp.Status)
		mockEmailSvc.AssertExpectations(t)
	})

	t.Run("non-pending handoff is rejected", func(t *testing.T) {
		mockDeliveryRepo := new(MockDeliveryRepo)
		mockStaffRepo := new(MockStaffRepo)
		svc := newDeliveryService(mockDeliveryRepo, nil, nil, mockStaffRepo, nil, nil, nil)

		mockStaffRepo.On("GetByID", ctx, int32(5)).Return(staff, nil).Once()
		mockDeliveryRepo.On("GetByID", ctx, int32(1)).Return(&domain.DeliveryPickup{ID: 1, Status: domain.HandoffStatusCompleted}, nil).Once()

		_, err := svc.Assign(ctx, 1, 5)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
		mockDeliveryRepo.AssertNotCalled(t, "MarkAssigned", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown staff is rejected", func(t *testing.T) {
		mockStaffRepo := new(MockStaffRepo)
		svc := newDeliveryService(new(MockDeliveryRepo), nil, nil, mockStaffRepo, nil, nil, nil)

		mockStaffRepo.On("GetByID", ctx, int32(42)).Return(nil, nil).Once()

		_, err := svc.Assign(ctx, 1, 42)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestDeliveryService_StartAndComplete(t *testing.T) {
	ctx := context.Background()
	sid := int32(5)
	staff := &domain.Staff{ID: 5, Name: "Dana", Email: "dana@rentdesk.local"}

	t.Run("assigned staff walks the full lifecycle", func(t *testing.T) {
		mockDeliveryRepo := new(MockDeliveryRepo)
		mockStaffRepo := new(MockStaffRepo)
		mockNoteRepo := new(MockNotificationRepo)
		mockEmailSvc := new(MockEmailService)
		svc := newDeliveryService(mockDeliveryRepo, nil, nil, mockStaffRepo, nil, mockNoteRepo, mockEmailSvc)

		lat, lon := 41.88, -87.63
		assigned := &domain.DeliveryPickup{ID: 1, Status: domain.HandoffStatusAssigned, AssignedToID: &sid, AssignedToName: "Dana"}
		inProgress := &domain.DeliveryPickup{ID: 1, Status: domain.HandoffStatusInProgress, AssignedToID: &sid, AssignedToName: "Dana"}
		completed := &domain.DeliveryPickup{ID: 1, Status: domain.HandoffStatusCompleted, AssignedToID: &sid, AssignedToName: "Dana"}

		mockDeliveryRepo.On("GetByID", ctx, int32(1)).Return(assigned, nil).Once()
		mockDeliveryRepo.On("MarkStarted", ctx, int32(1), sid, mock.MatchedBy(func(e *domain.DeliveryPickupEvent) bool {
			return e.Type == domain.EventStarted && e.Latitude != nil && *e.Latitude == lat
		})).Return(nil).Once()
		mockDeliveryRepo.On("GetByID", ctx, int32(1)).Return(inProgress, nil).Once()

		dp, err := svc.Start(ctx, 1, sid, &lat, &lon)
		assert.NoError(t, err)
		assert.Equal(t, domain.HandoffStatusInProgress, dp.Status)

		mockDeliveryRepo.On("GetByID", ctx, int32(1)).Return(inProgress, nil).Once()
		mockDeliveryRepo.On("MarkCompleted", ctx, int32(1), sid, mock.MatchedBy(func(e *domain.DeliveryPickupEvent) bool {
			return e.Type == domain.EventCompleted
		})).Return(nil).Once()
		mockStaffRepo.On("GetByID", ctx, sid).Return(staff, nil).Once()
		mockEmailSvc.On("SendHandoffCompletedNotification", ctx, "dana@rentdesk.local", "Dana", inProgress).Return(nil).Once()
		mockNoteRepo.On("Create", ctx, mock.MatchedBy(func(n *domain.Notification) bool {
			return n.Attributes["type"] == "HANDOFF_COMPLETED"
		})).Return(nil).Once()
		mockDeliveryRepo.On("GetByID", ctx, int32(1)).Return(completed, nil).Once()

		dp, err = svc.Complete(ctx, 1, sid, nil, nil)
		assert.NoError(t, err)
		assert.Equal(t, domain.HandoffStatusCompleted, dp.Status)

		mockDeliveryRepo.AssertExpectations(t)
	})

	t.Run("start from pending is rejected", func(t *testing.T) {
		mockDeliveryRepo := new(MockDeliveryRepo)
		svc := newDeliveryService(mockDeliveryRepo, nil, nil, nil, nil, nil, nil)

		mockDeliveryRepo.On("GetByID", ctx, int32(1)).Return(&domain.DeliveryPickup{ID: 1, Status: domain.HandoffStatusPending}, nil).Once()

		_, err := svc.Start(ctx, 1, sid, nil, nil)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	})

	t.Run("someone else's handoff is rejected", func(t *testing.T) {
		mockDeliveryRepo := new(MockDeliveryRepo)
		svc := newDeliveryService(mockDeliveryRepo, nil, nil, nil, nil, nil, nil)

		other := int32(9)
		mockDeliveryRepo.On("GetByID", ctx, int32(1)).Return(&domain.DeliveryPickup{ID: 1, Status: domain.HandoffStatusAssigned, AssignedToID: &other}, nil).Twice()

		_, err := svc.Start(ctx, 1, sid, nil, nil)
		assert.ErrorIs(t, err, domain.ErrUnauthorizedAssignee)

		mockDeliveryRepo.On("GetByID", ctx, int32(2)).Return(&domain.DeliveryPickup{ID: 2, Status: domain.HandoffStatusInProgress, AssignedToID: &other}, nil).Once()
		_, err = svc.Complete(ctx, 2, sid, nil, nil)
		assert.ErrorIs(t, err, domain.ErrUnauthorizedAssignee)

		_, err = svc.Complete(ctx, 1, sid, nil, nil)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	})
}

// lifecycleRepo is a stateful in-memory DeliveryRepository that applies the
// same guarded transitions and event appends as the postgres implementation,
// stamping strictly increasing times.
type lifecycleRepo struct {
	handoff domain.DeliveryPickup
	events  []domain.DeliveryPickupEvent
	clock   time.Time
}

func (r *lifecycleRepo) tick() time.Time {
	r.clock = r.clock.Add(time.Second)
	return r.clock
}

func (r *lifecycleRepo) GetByID(ctx context.Context, id int32) (*domain.DeliveryPickup, error) {
	dp := r.handoff
	return &dp, nil
}

func (r *lifecycleRepo) appendEvent(event *domain.DeliveryPickupEvent, at time.Time) {
	event.EventTime = at
	event.ID = int32(len(r.events) + 1)
	r.events = append(r.events, *event)
}

func (r *lifecycleRepo) MarkAssigned(ctx context.Context, id, staffID int32, staffName string, event *domain.DeliveryPickupEvent) error {
	if r.handoff.Status != domain.HandoffStatusPending {
		return domain.ErrInvalidTransition
	}
	now := r.tick()
	r.handoff.Status = domain.HandoffStatusAssigned
	r.handoff.AssignedToID = &staffID
	r.handoff.AssignedToName = staffName
	r.handoff.AssignedAt = &now
	r.appendEvent(event, now)
	return nil
}

func (r *lifecycleRepo) MarkStarted(ctx context.Context, id, staffID int32, event *domain.DeliveryPickupEvent) error {
	if r.handoff.Status != domain.HandoffStatusAssigned || r.handoff.AssignedToID == nil || *r.handoff.AssignedToID != staffID {
		return domain.ErrInvalidTransition
	}
	now := r.tick()
	r.handoff.Status = domain.HandoffStatusInProgress
	r.handoff.StartedAt = &now
	r.appendEvent(event, now)
	return nil
}

func (r *lifecycleRepo) MarkCompleted(ctx context.Context, id, staffID int32, event *domain.DeliveryPickupEvent) error {
	if r.handoff.Status != domain.HandoffStatusInProgress || r.handoff.AssignedToID == nil || *r.handoff.AssignedToID != staffID {
		return domain.ErrInvalidTransition
	}
	now := r.tick()
	r.handoff.Status = domain.HandoffStatusCompleted
	r.handoff.CompletedAt = &now
	r.appendEvent(event, now)
	return nil
}

func (r *lifecycleRepo) MarkCancelled(ctx context.Context, id int32, event *domain.DeliveryPickupEvent) error {
	if r.handoff.Status.IsTerminal() {
		return domain.ErrInvalidTransition
	}
	now := r.tick()
	r.handoff.Status = domain.HandoffStatusCancelled
	r.appendEvent(event, now)
	return nil
}

func (r *lifecycleRepo) CreateBatch(ctx context.Context, handoffs []*domain.DeliveryPickup) error {
	return nil
}

func (r *lifecycleRepo) List(ctx context.Context, filter repository.HandoffFilter) ([]domain.DeliveryPickup, error) {
	return []domain.DeliveryPickup{r.handoff}, nil
}

func (r *lifecycleRepo) ListOverdue(ctx context.Context, beforeDate string) ([]domain.DeliveryPickup, error) {
	return nil, nil
}

func (r *lifecycleRepo) RecordScan(ctx context.Context, handoffID int32, event *domain.DeliveryPickupEvent, mutation *repository.UnitScanMutation, bindUnitID *int32) error {
	r.appendEvent(event, r.tick())
	return nil
}

func (r *lifecycleRepo) ListEvents(ctx context.Context, handoffID int32) ([]domain.DeliveryPickupEvent, error) {
	return r.events, nil
}

func TestDeliveryService_LifecycleEventOrdering(t *testing.T) {
	ctx := context.Background()
	repo := &lifecycleRepo{
		handoff: domain.DeliveryPickup{ID: 1, ClientID: 3, Type: domain.HandoffTypeDelivery, Status: domain.HandoffStatusPending},
		clock:   time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC),
	}
	mockStaffRepo := new(MockStaffRepo)
	mockClientRepo := new(MockClientRepo)
	mockNoteRepo := new(MockNotificationRepo)
	mockEmailSvc := new(MockEmailService)
	svc := newDeliveryService(repo, nil, nil, mockStaffRepo, mockClientRepo, mockNoteRepo, mockEmailSvc)

	staff := &domain.Staff{ID: 5, Name: "Dana", Email: "dana@rentdesk.local"}
	mockStaffRepo.On("GetByID", ctx, int32(5)).Return(staff, nil)
	mockClientRepo.On("GetByID", ctx, int32(3)).Return(&domain.Client{ID: 3, Name: "Acme Builders"}, nil)
	mockNoteRepo.On("Create", ctx, mock.Anything).Return(nil)
	mockEmailSvc.On("SendHandoffAssignedNotification", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	mockEmailSvc.On("SendHandoffCompletedNotification", ctx, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	_, err := svc.Assign(ctx, 1, 5)
	require.NoError(t, err)
	_, err = svc.Start(ctx, 1, 5, nil, nil)
	require.NoError(t, err)
	dp, err := svc.Complete(ctx, 1, 5, nil, nil)
	require.NoError(t, err)

	// Exactly three events, in lifecycle order, with non-decreasing times.
	events, err := svc.GetEvents(ctx, 1)
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, domain.EventAssigned, events[0].Type)
	assert.Equal(t, domain.EventStarted, events[1].Type)
	assert.Equal(t, domain.EventCompleted, events[2].Type)
	assert.False(t, events[1].EventTime.Before(events[0].EventTime))
	assert.False(t, events[2].EventTime.Before(events[1].EventTime))

	// Status timestamps are set once and move monotonically.
	require.NotNil(t, dp.AssignedAt)
	require.NotNil(t, dp.StartedAt)
	require.NotNil(t, dp.CompletedAt)
	assert.False(t, dp.StartedAt.Before(*dp.AssignedAt))
	assert.False(t, dp.CompletedAt.Before(*dp.StartedAt))

	// A fourth transition is refused: the record is terminal.
	_, err = svc.Cancel(ctx, 1, 5, "")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	events, err = svc.GetEvents(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, events, 3)
}

func TestDeliveryService_Cancel(t *testing.T) {
	ctx := context.Background()
	staff := &domain.Staff{ID: 5, Name: "Dana"}

	t.Run("active handoff cancels with reason", func(t *testing.T) {
		mockDeliveryRepo := new(MockDeliveryRepo)
		mockStaffRepo := new(MockStaffRepo)
		svc := newDeliveryService(mockDeliveryRepo, nil, nil, mockStaffRepo, nil, nil, nil)

		mockStaffRepo.On("GetByID", ctx, int32(5)).Return(staff, nil).Once()
		mockDeliveryRepo.On("GetByID", ctx, int32(1)).Return(&domain.DeliveryPickup{ID: 1, Status: domain.HandoffStatusAssigned}, nil).Once()
		mockDeliveryRepo.On("MarkCancelled", ctx, int32(1), mock.MatchedBy(func(e *domain.DeliveryPickupEvent) bool {
			return e.Type == domain.EventCancelled && e.Notes == "client rescheduled"
		})).Return(nil).Once()
		mockDeliveryRepo.On("GetByID", ctx, int32(1)).Return(&domain.DeliveryPickup{ID: 1, Status: domain.HandoffStatusCancelled}, nil).Once()

		dp, err := svc.Cancel(ctx, 1, 5, "client rescheduled")
		assert.NoError(t, err)
		assert.Equal(t, domain.HandoffStatusCancelled, dp.Status)
	})

	t.Run("terminal handoff cannot be cancelled", func(t *testing.T) {
		mockDeliveryRepo := new(MockDeliveryRepo)
		mockStaffRepo := new(MockStaffRepo)
		svc := newDeliveryService(mockDeliveryRepo, nil, nil, mockStaffRepo, nil, nil, nil)

		mockStaffRepo.On("GetByID", ctx, int32(5)).Return(staff, nil).Once()
		mockDeliveryRepo.On("GetByID", ctx, int32(1)).Return(&domain.DeliveryPickup{ID: 1, Status: domain.HandoffStatusCompleted}, nil).Once()

		_, err := svc.Cancel(ctx, 1, 5, "")
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
		mockDeliveryRepo.AssertNotCalled(t, "MarkCancelled", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestDeliveryService_Scans(t *testing.T) {
	ctx := context.Background()
	staff := &domain.Staff{ID: 5, Name: "Dana"}
	unit := &domain.ProductUnit{ID: 30, ProductID: 10, Status: domain.UnitStatusAvailable}

	t.Run("storage scan on delivery binds the unit", func(t *testing.T) {
		mockDeliveryRepo := new(MockDeliveryRepo)
		mockStaffRepo := new(MockStaffRepo)
		mockProductRepo := new(MockProductRepo)
		svc := newDeliveryService(mockDeliveryRepo, nil, mockProductRepo, mockStaffRepo, nil, nil, nil)

		mockDeliveryRepo.On("GetByID", ctx, int32(1)).Return(&domain.DeliveryPickup{ID: 1, Type: domain.HandoffTypeDelivery, Status: domain.HandoffStatusInProgress}, nil).Once()
		mockStaffRepo.On("GetByID", ctx, int32(5)).Return(staff, nil).Once()
		mockProductRepo.On("GetUnitByID", ctx, int32(30)).Return(unit, nil).Once()
		mockDeliveryRepo.On("RecordScan", ctx, int32(1), mock.MatchedBy(func(e *domain.DeliveryPickupEvent) bool {
			return e.Type == domain.EventScannedAtStorageDelivery && e.UnitID != nil && *e.UnitID == 30
		}), (*repository.UnitScanMutation)(nil), mock.MatchedBy(func(bind *int32) bool {
			return bind != nil && *bind == 30
		})).Return(nil).Once()

		err := svc.ScanAtStorage(ctx, 1, 30, 2, 5)
		assert.NoError(t, err)
		mockDeliveryRepo.AssertExpectations(t)
	})

	t.Run("storage scan on pickup returns the unit to the shelf", func(t *testing.T) {
		mockDeliveryRepo := new(MockDeliveryRepo)
		mockStaffRepo := new(MockStaffRepo)
		mockProductRepo := new(MockProductRepo)
		svc := newDeliveryService(mockDeliveryRepo, nil, mockProductRepo, mockStaffRepo, nil, nil, nil)

		uid := int32(30)
		mockDeliveryRepo.On("GetByID", ctx, int32(2)).Return(&domain.DeliveryPickup{ID: 2, Type: domain.HandoffTypePickup, Status: domain.HandoffStatusInProgress, ProductUnitID: &uid}, nil).Once()
		mockStaffRepo.On("GetByID", ctx, int32(5)).Return(staff, nil).Once()
		mockProductRepo.On("GetUnitByID", ctx, int32(30)).Return(unit, nil).Once()
		mockDeliveryRepo.On("RecordScan", ctx, int32(2), mock.MatchedBy(func(e *domain.DeliveryPickupEvent) bool {
			return e.Type == domain.EventScannedAtStorageReturn
		}), mock.MatchedBy(func(mut *repository.UnitScanMutation) bool {
			return mut != nil && mut.UnitID == 30 && mut.Status == domain.UnitStatusAvailable && mut.StorageID != nil && *mut.StorageID == 2
		}), (*int32)(nil)).Return(nil).Once()

		err := svc.ScanAtStorage(ctx, 2, 30, 2, 5)
		assert.NoError(t, err)
		mockDeliveryRepo.AssertExpectations(t)
	})

	t.Run("location scan on delivery marks the unit rented", func(t *testing.T) {
		mockDeliveryRepo := new(MockDeliveryRepo)
		mockStaffRepo := new(MockStaffRepo)
		mockProductRepo := new(MockProductRepo)
		svc := newDeliveryService(mockDeliveryRepo, nil, mockProductRepo, mockStaffRepo, nil, nil, nil)

		mockDeliveryRepo.On("GetByID", ctx, int32(1)).Return(&domain.DeliveryPickup{ID: 1, Type: domain.HandoffTypeDelivery, Status: domain.HandoffStatusInProgress}, nil).Once()
		mockStaffRepo.On("GetByID", ctx, int32(5)).Return(staff, nil).Once()
		mockProductRepo.On("GetUnitByID", ctx, int32(30)).Return(unit, nil).Once()
		mockDeliveryRepo.On("RecordScan", ctx, int32(1), mock.MatchedBy(func(e *domain.DeliveryPickupEvent) bool {
			return e.Type == domain.EventScannedAtDelivery
		}), mock.MatchedBy(func(mut *repository.UnitScanMutation) bool {
			return mut != nil && mut.Status == domain.UnitStatusRented && mut.StorageID == nil
		}), (*int32)(nil)).Return(nil).Once()

		err := svc.ScanAtLocation(ctx, 1, 30, 5)
		assert.NoError(t, err)
	})

	t.Run("location scan on pickup records the event only", func(t *testing.T) {
		mockDeliveryRepo := new(MockDeliveryRepo)
		mockStaffRepo := new(MockStaffRepo)
		mockProductRepo := new(MockProductRepo)
		svc := newDeliveryService(mockDeliveryRepo, nil, mockProductRepo, mockStaffRepo, nil, nil, nil)

		mockDeliveryRepo.On("GetByID", ctx, int32(2)).Return(&domain.DeliveryPickup{ID: 2, Type: domain.HandoffTypePickup, Status: domain.HandoffStatusInProgress}, nil).Once()
		mockStaffRepo.On("GetByID", ctx, int32(5)).Return(staff, nil).Once()
		mockProductRepo.On("GetUnitByID", ctx, int32(30)).Return(unit, nil).Once()
		mockDeliveryRepo.On("RecordScan", ctx, int32(2), mock.MatchedBy(func(e *domain.DeliveryPickupEvent) bool {
			return e.Type == domain.EventScannedAtPickup
		}), (*repository.UnitScanMutation)(nil), (*int32)(nil)).Return(nil).Once()

		err := svc.ScanAtLocation(ctx, 2, 30, 5)
		assert.NoError(t, err)
	})

	t.Run("scan on terminal handoff is rejected", func(t *testing.T) {
		mockDeliveryRepo := new(MockDeliveryRepo)
		svc := newDeliveryService(mockDeliveryRepo, nil, nil, nil, nil, nil, nil)

		mockDeliveryRepo.On("GetByID", ctx, int32(1)).Return(&domain.DeliveryPickup{ID: 1, Status: domain.HandoffStatusCancelled}, nil).Once()

		err := svc.ScanAtStorage(ctx, 1, 30, 2, 5)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
		mockDeliveryRepo.AssertNotCalled(t, "RecordScan", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}
