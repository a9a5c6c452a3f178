package postgres

import (
	"database/sql"

	"rentdesk-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.DeliveryRepository
	repository.ReservationRepository
	repository.ProductRepository
	repository.PricingTierRepository
	repository.StaffRepository
	repository.ClientRepository
	repository.NotificationRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		DeliveryRepository:     NewDeliveryRepository(db),
		ReservationRepository:  NewReservationRepository(db),
		ProductRepository:      NewProductRepository(db),
		PricingTierRepository:  NewPricingTierRepository(db),
		StaffRepository:        NewStaffRepository(db),
		ClientRepository:       NewClientRepository(db),
		NotificationRepository: NewNotificationRepository(db),
	}
}
