package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/repository"
)

type notificationRepository struct {
	db *sql.DB
}

func NewNotificationRepository(db *sql.DB) repository.NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, note *domain.Notification) error {
	attrs, err := json.Marshal(note.Attributes)
	if err != nil {
		return err
	}
	query := `INSERT INTO notifications (staff_id, title, message, is_read, attributes, created_on)
	          VALUES ($1, $2, $3, false, $4, $5) RETURNING id`
	return r.db.QueryRowContext(ctx, query, note.StaffID, note.Title, note.Message, attrs, time.Now()).Scan(&note.ID)
}

func (r *notificationRepository) List(ctx context.Context, staffID int32, limit, offset int32) ([]domain.Notification, error) {
	query := `SELECT id, staff_id, title, message, is_read, attributes, created_on
	          FROM notifications WHERE staff_id = $1 ORDER BY created_on DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, staffID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []domain.Notification
	for rows.Next() {
		var n domain.Notification
		var attrs []byte
		if err := rows.Scan(&n.ID, &n.StaffID, &n.Title, &n.Message, &n.IsRead, &attrs, &n.CreatedOn); err != nil {
			return nil, err
		}
		if len(attrs) > 0 {
			if err := json.Unmarshal(attrs, &n.Attributes); err != nil {
				return nil, err
			}
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

func (r *notificationRepository) MarkAsRead(ctx context.Context, id, staffID int32) error {
	query := `UPDATE notifications SET is_read = true WHERE id = $1 AND staff_id = $2`
	res, err := r.db.ExecContext(ctx, query, id, staffID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
