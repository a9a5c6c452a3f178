package postgres

import (
	"context"
	"database/sql"

	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/repository"
)

type staffRepository struct {
	db *sql.DB
}

func NewStaffRepository(db *sql.DB) repository.StaffRepository {
	return &staffRepository{db: db}
}

const staffColumns = `id, name, email, password_hash, role, is_active, created_on`

func (r *staffRepository) GetByID(ctx context.Context, id int32) (*domain.Staff, error) {
	return r.getOne(ctx, `SELECT `+staffColumns+` FROM staff WHERE id = $1`, id)
}

func (r *staffRepository) GetByEmail(ctx context.Context, email string) (*domain.Staff, error) {
	return r.getOne(ctx, `SELECT `+staffColumns+` FROM staff WHERE email = $1`, email)
}

func (r *staffRepository) getOne(ctx context.Context, query string, arg interface{}) (*domain.Staff, error) {
	s := &domain.Staff{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&s.ID, &s.Name, &s.Email, &s.PasswordHash, &s.Role, &s.IsActive, &s.CreatedOn)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}
