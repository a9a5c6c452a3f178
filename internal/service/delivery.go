package service

import (
	"context"
	"fmt"

	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/logger"
	"rentdesk-backend/internal/repository"
)

const (
	deliveryWindowStart = "09:00"
	deliveryWindowEnd   = "12:00"
	pickupWindowStart   = "14:00"
	pickupWindowEnd     = "18:00"
)

type deliveryService struct {
	deliveryRepo repository.DeliveryRepository
	resRepo      repository.ReservationRepository
	productRepo  repository.ProductRepository
	staffRepo    repository.StaffRepository
	clientRepo   repository.ClientRepository
	noteRepo     repository.NotificationRepository
	emailSvc     EmailService
}

func NewDeliveryService(
	deliveryRepo repository.DeliveryRepository,
	resRepo repository.ReservationRepository,
	productRepo repository.ProductRepository,
	staffRepo repository.StaffRepository,
	clientRepo repository.ClientRepository,
	noteRepo repository.NotificationRepository,
	emailSvc EmailService,
) DeliveryService {
	return &deliveryService{
		deliveryRepo: deliveryRepo,
		resRepo:      resRepo,
		productRepo:  productRepo,
		staffRepo:    staffRepo,
		clientRepo:   clientRepo,
		noteRepo:     noteRepo,
		emailSvc:     emailSvc,
	}
}

func (s *deliveryService) CreateFromReservation(ctx context.Context, reservationID int32) ([]domain.DeliveryPickup, error) {
	res, items, err := s.resRepo.GetWithItems(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	var handoffs []*domain.DeliveryPickup
	for _, item := range items {
		delivery := &domain.DeliveryPickup{
			ReservationID:      res.ID,
			ClientID:           res.ClientID,
			ProductID:          item.ProductID,
			Type:               domain.HandoffTypeDelivery,
			Status:             domain.HandoffStatusPending,
			ScheduledDate:      res.StartDate,
			ScheduledTimeStart: deliveryWindowStart,
			ScheduledTimeEnd:   deliveryWindowEnd,
			Address:            res.DeliveryAddress,
			City:               res.DeliveryCity,
			State:              res.DeliveryState,
			PostalCode:         res.DeliveryPostalCode,
			Country:            res.DeliveryCountry,
		}
		pickup := &domain.DeliveryPickup{
			ReservationID:      res.ID,
			ClientID:           res.ClientID,
			ProductID:          item.ProductID,
			Type:               domain.HandoffTypePickup,
			Status:             domain.HandoffStatusPending,
			ScheduledDate:      res.EndDate,
			ScheduledTimeStart: pickupWindowStart,
			ScheduledTimeEnd:   pickupWindowEnd,
			Address:            fallback(res.PickupAddress, res.DeliveryAddress),
			City:               fallback(res.PickupCity, res.DeliveryCity),
			State:              fallback(res.PickupState, res.DeliveryState),
			PostalCode:         fallback(res.PickupPostalCode, res.DeliveryPostalCode),
			Country:            fallback(res.PickupCountry, res.DeliveryCountry),
		}
		handoffs = append(handoffs, delivery, pickup)
	}

	if err := s.deliveryRepo.CreateBatch(ctx, handoffs); err != nil {
		logger.Error("Failed to create handoffs for reservation", "reservation_id", reservationID, "error", err)
		return nil, err
	}

	created := make([]domain.DeliveryPickup, 0, len(handoffs))
	for _, dp := range handoffs {
		created = append(created, *dp)
	}
	logger.Info("Created handoffs for reservation", "reservation_id", reservationID, "count", len(created))
	return created, nil
}

func fallback(v *string, def string) string {
	if v != nil && *v != "" {
		return *v
	}
	return def
}

func (s *deliveryService) Assign(ctx context.Context, handoffID, staffID int32) (*domain.DeliveryPickup, error) {
	staff, err := s.staffRepo.GetByID(ctx, staffID)
	if err != nil {
		return nil, err
	}
	if staff == nil {
		return nil, domain.ErrNotFound
	}

	dp, err := s.getHandoff(ctx, handoffID)
	if err != nil {
		return nil, err
	}
	if dp.Status != domain.HandoffStatusPending {
		return nil, domain.ErrInvalidTransition
	}

	event := &domain.DeliveryPickupEvent{
		DeliveryPickupID: handoffID,
		Type:             domain.EventAssigned,
		UserID:           staffID,
		UserName:         staff.Name,
	}
	// The repository re-asserts the pending guard in its conditional update;
	// a concurrent assignment surfaces as ErrInvalidTransition here.
	if err := s.deliveryRepo.MarkAssigned(ctx, handoffID, staffID, staff.Name, event); err != nil {
		return nil, err
	}

	s.notifyAssignment(ctx, staff, s.clientName(ctx, dp.ClientID), dp)
	return s.getHandoff(ctx, handoffID)
}

// clientName resolves the client for notification text; best effort, a
// lookup failure just leaves the name blank.
func (s *deliveryService) clientName(ctx context.Context, clientID int32) string {
	client, err := s.clientRepo.GetByID(ctx, clientID)
	if err != nil {
		logger.Warn("Failed to look up client", "client_id", clientID, "error", err)
		return ""
	}
	if client == nil {
		return ""
	}
	return client.Name
}

func (s *deliveryService) Start(ctx context.Context, handoffID, staffID int32, lat, lon *float64) (*domain.DeliveryPickup, error) {
	dp, err := s.getHandoff(ctx, handoffID)
	if err != nil {
		return nil, err
	}
	if dp.Status != domain.HandoffStatusAssigned {
		return nil, domain.ErrInvalidTransition
	}
	if dp.AssignedToID == nil || *dp.AssignedToID != staffID {
		return nil, domain.ErrUnauthorizedAssignee
	}

	event := &domain.DeliveryPickupEvent{
		DeliveryPickupID: handoffID,
		Type:             domain.EventStarted,
		UserID:           staffID,
		UserName:         dp.AssignedToName,
		Latitude:         lat,
		Longitude:        lon,
	}
	if err := s.deliveryRepo.MarkStarted(ctx, handoffID, staffID, event); err != nil {
		return nil, err
	}
	return s.getHandoff(ctx, handoffID)
}

func (s *deliveryService) Complete(ctx context.Context, handoffID, staffID int32, lat, lon *float64) (*domain.DeliveryPickup, error) {
	dp, err := s.getHandoff(ctx, handoffID)
	if err != nil {
		return nil, err
	}
	if dp.Status != domain.HandoffStatusInProgress {
		return nil, domain.ErrInvalidTransition
	}
	if dp.AssignedToID == nil || *dp.AssignedToID != staffID {
		return nil, domain.ErrUnauthorizedAssignee
	}

	event := &domain.DeliveryPickupEvent{
		DeliveryPickupID: handoffID,
		Type:             domain.EventCompleted,
		UserID:           staffID,
		UserName:         dp.AssignedToName,
		Latitude:         lat,
		Longitude:        lon,
	}
	if err := s.deliveryRepo.MarkCompleted(ctx, handoffID, staffID, event); err != nil {
		return nil, err
	}

	s.notifyCompletion(ctx, staffID, dp)
	return s.getHandoff(ctx, handoffID)
}

func (s *deliveryService) Cancel(ctx context.Context, handoffID, staffID int32, reason string) (*domain.DeliveryPickup, error) {
	staff, err := s.staffRepo.GetByID(ctx, staffID)
	if err != nil {
		return nil, err
	}
	if staff == nil {
		return nil, domain.ErrNotFound
	}

	dp, err := s.getHandoff(ctx, handoffID)
	if err != nil {
		return nil, err
	}
	if dp.Status.IsTerminal() {
		return nil, domain.ErrInvalidTransition
	}

	event := &domain.DeliveryPickupEvent{
		DeliveryPickupID: handoffID,
		Type:             domain.EventCancelled,
		UserID:           staffID,
		UserName:         staff.Name,
		Notes:            reason,
	}
	if err := s.deliveryRepo.MarkCancelled(ctx, handoffID, event); err != nil {
		return nil, err
	}
	return s.getHandoff(ctx, handoffID)
}

func (s *deliveryService) ScanAtStorage(ctx context.Context, handoffID, unitID, storageID, staffID int32) error {
	dp, staff, unit, err := s.scanPreamble(ctx, handoffID, unitID, staffID)
	if err != nil {
		return err
	}

	event := &domain.DeliveryPickupEvent{
		DeliveryPickupID: handoffID,
		UserID:           staffID,
		UserName:         staff.Name,
		UnitID:           &unit.ID,
		StorageID:        &storageID,
	}

	if dp.Type == domain.HandoffTypeDelivery {
		event.Type = domain.EventScannedAtStorageDelivery
		var bind *int32
		if dp.ProductUnitID == nil {
			bind = &unit.ID
		}
		return s.deliveryRepo.RecordScan(ctx, handoffID, event, nil, bind)
	}

	// Pickup leg returning to storage: the unit goes back on the shelf.
	event.Type = domain.EventScannedAtStorageReturn
	mutation := &repository.UnitScanMutation{
		UnitID:    unit.ID,
		Status:    domain.UnitStatusAvailable,
		StorageID: &storageID,
	}
	return s.deliveryRepo.RecordScan(ctx, handoffID, event, mutation, nil)
}

func (s *deliveryService) ScanAtLocation(ctx context.Context, handoffID, unitID, staffID int32) error {
	dp, staff, unit, err := s.scanPreamble(ctx, handoffID, unitID, staffID)
	if err != nil {
		return err
	}

	event := &domain.DeliveryPickupEvent{
		DeliveryPickupID: handoffID,
		UserID:           staffID,
		UserName:         staff.Name,
		UnitID:           &unit.ID,
	}

	if dp.Type == domain.HandoffTypeDelivery {
		// Handed to the customer: out of storage, rented.
		event.Type = domain.EventScannedAtDelivery
		mutation := &repository.UnitScanMutation{
			UnitID:    unit.ID,
			Status:    domain.UnitStatusRented,
			StorageID: nil,
		}
		return s.deliveryRepo.RecordScan(ctx, handoffID, event, mutation, nil)
	}

	// Pickup scan at the customer's location only records the sighting; the
	// unit mutation happens on the later storage scan.
	event.Type = domain.EventScannedAtPickup
	return s.deliveryRepo.RecordScan(ctx, handoffID, event, nil, nil)
}

func (s *deliveryService) scanPreamble(ctx context.Context, handoffID, unitID, staffID int32) (*domain.DeliveryPickup, *domain.Staff, *domain.ProductUnit, error) {
	dp, err := s.getHandoff(ctx, handoffID)
	if err != nil {
		return nil, nil, nil, err
	}
	if dp.Status.IsTerminal() {
		return nil, nil, nil, domain.ErrInvalidTransition
	}
	staff, err := s.staffRepo.GetByID(ctx, staffID)
	if err != nil {
		return nil, nil, nil, err
	}
	if staff == nil {
		return nil, nil, nil, domain.ErrNotFound
	}
	unit, err := s.productRepo.GetUnitByID(ctx, unitID)
	if err != nil {
		return nil, nil, nil, err
	}
	if unit == nil {
		return nil, nil, nil, domain.ErrNotFound
	}
	return dp, staff, unit, nil
}

func (s *deliveryService) List(ctx context.Context, filter repository.HandoffFilter) ([]domain.DeliveryPickup, error) {
	return s.deliveryRepo.List(ctx, filter)
}

func (s *deliveryService) Get(ctx context.Context, handoffID int32) (*domain.DeliveryPickup, error) {
	return s.getHandoff(ctx, handoffID)
}

func (s *deliveryService) GetEvents(ctx context.Context, handoffID int32) ([]domain.DeliveryPickupEvent, error) {
	return s.deliveryRepo.ListEvents(ctx, handoffID)
}

func (s *deliveryService) AvailableStorages(ctx context.Context, productID int32) ([]domain.StorageLocation, error) {
	return s.productRepo.ListAvailableStorages(ctx, productID)
}

func (s *deliveryService) getHandoff(ctx context.Context, handoffID int32) (*domain.DeliveryPickup, error) {
	dp, err := s.deliveryRepo.GetByID(ctx, handoffID)
	if err != nil {
		return nil, err
	}
	if dp == nil {
		return nil, domain.ErrNotFound
	}
	return dp, nil
}

func (s *deliveryService) notifyAssignment(ctx context.Context, staff *domain.Staff, clientName string, dp *domain.DeliveryPickup) {
	if err := s.emailSvc.SendHandoffAssignedNotification(ctx, staff.Email, staff.Name, clientName, dp); err != nil {
		logger.Warn("Failed to send assignment email", "delivery_pickup_id", dp.ID, "error", err)
	}

	message := fmt.Sprintf("You were assigned %s #%d scheduled %s %s-%s", dp.Type, dp.ID, dp.ScheduledDate, dp.ScheduledTimeStart, dp.ScheduledTimeEnd)
	if clientName != "" {
		message = fmt.Sprintf("%s for %s", message, clientName)
	}
	note := &domain.Notification{
		StaffID: staff.ID,
		Title:   "Handoff Assigned",
		Message: message,
		Attributes: map[string]string{
			"type":               "HANDOFF_ASSIGNED",
			"delivery_pickup_id": fmt.Sprintf("%d", dp.ID),
		},
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		logger.Warn("Failed to record assignment notification", "delivery_pickup_id", dp.ID, "error", err)
	}
}

func (s *deliveryService) notifyCompletion(ctx context.Context, staffID int32, dp *domain.DeliveryPickup) {
	staff, err := s.staffRepo.GetByID(ctx, staffID)
	if err != nil || staff == nil {
		return
	}
	if err := s.emailSvc.SendHandoffCompletedNotification(ctx, staff.Email, staff.Name, dp); err != nil {
		logger.Warn("Failed to send completion email", "delivery_pickup_id", dp.ID, "error", err)
	}

	note := &domain.Notification{
		StaffID: staff.ID,
		Title:   "Handoff Completed",
		Message: fmt.Sprintf("%s #%d for reservation %d completed", dp.Type, dp.ID, dp.ReservationID),
		Attributes: map[string]string{
			"type":               "HANDOFF_COMPLETED",
			"delivery_pickup_id": fmt.Sprintf("%d", dp.ID),
		},
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		logger.Warn("Failed to record completion notification", "delivery_pickup_id", dp.ID, "error", err)
	}
}
