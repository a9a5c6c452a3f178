package postgres

import (
	"context"
	"database/sql"

	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/repository"
)

type reservationRepository struct {
	db *sql.DB
}

func NewReservationRepository(db *sql.DB) repository.ReservationRepository {
	return &reservationRepository{db: db}
}

func (r *reservationRepository) GetWithItems(ctx context.Context, id int32) (*domain.Reservation, []domain.ReservationItem, error) {
	res := &domain.Reservation{}
	query := `SELECT id, code, client_id, to_char(start_date, 'YYYY-MM-DD'), to_char(end_date, 'YYYY-MM-DD'), status,
	              delivery_address, delivery_city, delivery_state, delivery_postal_code, delivery_country,
	              pickup_address, pickup_city, pickup_state, pickup_postal_code, pickup_country,
	              total_cents, created_on
	          FROM reservations WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&res.ID, &res.Code, &res.ClientID, &res.StartDate, &res.EndDate, &res.Status,
		&res.DeliveryAddress, &res.DeliveryCity, &res.DeliveryState, &res.DeliveryPostalCode, &res.DeliveryCountry,
		&res.PickupAddress, &res.PickupCity, &res.PickupState, &res.PickupPostalCode, &res.PickupCountry,
		&res.TotalCents, &res.CreatedOn)
	if err == sql.ErrNoRows {
		return nil, nil, domain.ErrReservationNotFound
	}
	if err != nil {
		return nil, nil, err
	}

	itemQuery := `SELECT id, reservation_id, product_id, quantity, rental_days, price_per_day_cents, total_cents
	              FROM reservation_items WHERE reservation_id = $1 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, itemQuery, id)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var items []domain.ReservationItem
	for rows.Next() {
		var it domain.ReservationItem
		if err := rows.Scan(&it.ID, &it.ReservationID, &it.ProductID, &it.Quantity, &it.RentalDays, &it.PricePerDayCents, &it.TotalCents); err != nil {
			return nil, nil, err
		}
		items = append(items, it)
	}
	return res, items, rows.Err()
}
