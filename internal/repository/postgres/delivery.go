package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/repository"
)

type deliveryRepository struct {
	db *sql.DB
}

func NewDeliveryRepository(db *sql.DB) repository.DeliveryRepository {
	return &deliveryRepository{db: db}
}

const handoffColumns = `id, reservation_id, client_id, product_id, product_unit_id, assigned_to_id, assigned_to_name,
	type, status, to_char(scheduled_date, 'YYYY-MM-DD'), scheduled_time_start, scheduled_time_end,
	address, city, state, postal_code, country, latitude, longitude,
	assigned_at, started_at, completed_at, created_on, updated_on`

func scanHandoff(row interface{ Scan(...interface{}) error }) (*domain.DeliveryPickup, error) {
	dp := &domain.DeliveryPickup{}
	var assignedToName sql.NullString
	err := row.Scan(&dp.ID, &dp.ReservationID, &dp.ClientID, &dp.ProductID, &dp.ProductUnitID,
		&dp.AssignedToID, &assignedToName, &dp.Type, &dp.Status,
		&dp.ScheduledDate, &dp.ScheduledTimeStart, &dp.ScheduledTimeEnd,
		&dp.Address, &dp.City, &dp.State, &dp.PostalCode, &dp.Country,
		&dp.Latitude, &dp.Longitude,
		&dp.AssignedAt, &dp.StartedAt, &dp.CompletedAt, &dp.CreatedOn, &dp.UpdatedOn)
	if err != nil {
		return nil, err
	}
	dp.AssignedToName = assignedToName.String
	return dp, nil
}

func (r *deliveryRepository) CreateBatch(ctx context.Context, handoffs []*domain.DeliveryPickup) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `INSERT INTO delivery_pickups (reservation_id, client_id, product_id, type, status,
	              scheduled_date, scheduled_time_start, scheduled_time_end,
	              address, city, state, postal_code, country, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15) RETURNING id`
	now := time.Now()
	for _, dp := range handoffs {
		err := tx.QueryRowContext(ctx, query,
			dp.ReservationID, dp.ClientID, dp.ProductID, dp.Type, dp.Status,
			dp.ScheduledDate, dp.ScheduledTimeStart, dp.ScheduledTimeEnd,
			dp.Address, dp.City, dp.State, dp.PostalCode, dp.Country, now, now).Scan(&dp.ID)
		if err != nil {
			return fmt.Errorf("insert %s handoff for reservation %d: %w", dp.Type, dp.ReservationID, err)
		}
	}
	return tx.Commit()
}

func (r *deliveryRepository) GetByID(ctx context.Context, id int32) (*domain.DeliveryPickup, error) {
	query := `SELECT ` + handoffColumns + ` FROM delivery_pickups WHERE id = $1`
	dp, err := scanHandoff(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return dp, nil
}

func (r *deliveryRepository) List(ctx context.Context, filter repository.HandoffFilter) ([]domain.DeliveryPickup, error) {
	query := `SELECT ` + handoffColumns + ` FROM delivery_pickups WHERE 1=1`
	args := []interface{}{}
	argIdx := 1

	if filter.Type != "" {
		query += fmt.Sprintf(" AND type = $%d", argIdx)
		args = append(args, filter.Type)
		argIdx++
	}
	if filter.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, filter.Status)
		argIdx++
	}
	if filter.ScheduledDate != "" {
		query += fmt.Sprintf(" AND scheduled_date = $%d", argIdx)
		args = append(args, filter.ScheduledDate)
		argIdx++
	}
	if filter.AssignedToID != nil {
		query += fmt.Sprintf(" AND assigned_to_id = $%d", argIdx)
		args = append(args, *filter.AssignedToID)
		argIdx++
	}
	query += " ORDER BY scheduled_date, scheduled_time_start, id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var handoffs []domain.DeliveryPickup
	for rows.Next() {
		dp, err := scanHandoff(rows)
		if err != nil {
			return nil, err
		}
		handoffs = append(handoffs, *dp)
	}
	return handoffs, rows.Err()
}

func (r *deliveryRepository) ListOverdue(ctx context.Context, beforeDate string) ([]domain.DeliveryPickup, error) {
	query := `SELECT ` + handoffColumns + ` FROM delivery_pickups
	          WHERE status IN ('pending', 'assigned') AND scheduled_date < $1
	          ORDER BY scheduled_date, id`
	rows, err := r.db.QueryContext(ctx, query, beforeDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var handoffs []domain.DeliveryPickup
	for rows.Next() {
		dp, err := scanHandoff(rows)
		if err != nil {
			return nil, err
		}
		handoffs = append(handoffs, *dp)
	}
	return handoffs, rows.Err()
}

// transition runs a guarded status update plus the event append in one
// transaction. The update must name the expected prior status (and assignee
// where relevant) in its WHERE clause; zero affected rows means the guard
// failed and nothing is written.
func (r *deliveryRepository) transition(ctx context.Context, update string, updateArgs []interface{}, event *domain.DeliveryPickupEvent) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, update, updateArgs...)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrInvalidTransition
	}

	if err := insertEvent(ctx, tx, event); err != nil {
		return err
	}
	return tx.Commit()
}

func insertEvent(ctx context.Context, tx *sql.Tx, ev *domain.DeliveryPickupEvent) error {
	query := `INSERT INTO delivery_pickup_events (delivery_pickup_id, type, user_id, user_name, event_time,
	              location, latitude, longitude, notes, unit_id, storage_id)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`
	if ev.EventTime.IsZero() {
		ev.EventTime = time.Now()
	}
	return tx.QueryRowContext(ctx, query,
		ev.DeliveryPickupID, ev.Type, ev.UserID, ev.UserName, ev.EventTime,
		ev.Location, ev.Latitude, ev.Longitude, ev.Notes, ev.UnitID, ev.StorageID).Scan(&ev.ID)
}

func (r *deliveryRepository) MarkAssigned(ctx context.Context, id, staffID int32, staffName string, event *domain.DeliveryPickupEvent) error {
	now := time.Now()
	update := `UPDATE delivery_pickups
	           SET status = 'assigned', assigned_to_id = $1, assigned_to_name = $2, assigned_at = $3, updated_on = $3
	           WHERE id = $4 AND status = 'pending'`
	return r.transition(ctx, update, []interface{}{staffID, staffName, now, id}, event)
}

func (r *deliveryRepository) MarkStarted(ctx context.Context, id, staffID int32, event *domain.DeliveryPickupEvent) error {
	now := time.Now()
	update := `UPDATE delivery_pickups
	           SET status = 'in_progress', started_at = $1, updated_on = $1
	           WHERE id = $2 AND status = 'assigned' AND assigned_to_id = $3`
	return r.transition(ctx, update, []interface{}{now, id, staffID}, event)
}

func (r *deliveryRepository) MarkCompleted(ctx context.Context, id, staffID int32, event *domain.DeliveryPickupEvent) error {
	now := time.Now()
	update := `UPDATE delivery_pickups
	           SET status = 'completed', completed_at = $1, updated_on = $1
	           WHERE id = $2 AND status = 'in_progress' AND assigned_to_id = $3`
	return r.transition(ctx, update, []interface{}{now, id, staffID}, event)
}

func (r *deliveryRepository) MarkCancelled(ctx context.Context, id int32, event *domain.DeliveryPickupEvent) error {
	now := time.Now()
	update := `UPDATE delivery_pickups
	           SET status = 'cancelled', updated_on = $1
	           WHERE id = $2 AND status IN ('pending', 'assigned', 'in_progress')`
	return r.transition(ctx, update, []interface{}{now, id}, event)
}

func (r *deliveryRepository) RecordScan(ctx context.Context, handoffID int32, event *domain.DeliveryPickupEvent, mutation *repository.UnitScanMutation, bindUnitID *int32) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if bindUnitID != nil {
		// Bind only when no unit is attached yet; a repeat scan keeps the
		// first binding.
		query := `UPDATE delivery_pickups SET product_unit_id = $1, updated_on = $2
		          WHERE id = $3 AND product_unit_id IS NULL`
		if _, err := tx.ExecContext(ctx, query, *bindUnitID, time.Now(), handoffID); err != nil {
			return err
		}
	}

	if mutation != nil {
		query := `UPDATE product_units SET status = $1, storage_id = $2 WHERE id = $3`
		if _, err := tx.ExecContext(ctx, query, mutation.Status, mutation.StorageID, mutation.UnitID); err != nil {
			return err
		}
	}

	if err := insertEvent(ctx, tx, event); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *deliveryRepository) ListEvents(ctx context.Context, handoffID int32) ([]domain.DeliveryPickupEvent, error) {
	query := `SELECT id, delivery_pickup_id, type, user_id, user_name, event_time,
	              location, latitude, longitude, notes, unit_id, storage_id
	          FROM delivery_pickup_events WHERE delivery_pickup_id = $1 ORDER BY event_time, id`
	rows, err := r.db.QueryContext(ctx, query, handoffID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []domain.DeliveryPickupEvent
	for rows.Next() {
		var ev domain.DeliveryPickupEvent
		var location, notes sql.NullString
		if err := rows.Scan(&ev.ID, &ev.DeliveryPickupID, &ev.Type, &ev.UserID, &ev.UserName, &ev.EventTime,
			&location, &ev.Latitude, &ev.Longitude, &notes, &ev.UnitID, &ev.StorageID); err != nil {
			return nil, err
		}
		ev.Location = location.String
		ev.Notes = notes.String
		events = append(events, ev)
	}
	return events, rows.Err()
}
