package postgres

import (
	"context"
	"database/sql"

	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/repository"
)

type clientRepository struct {
	db *sql.DB
}

func NewClientRepository(db *sql.DB) repository.ClientRepository {
	return &clientRepository{db: db}
}

func (r *clientRepository) GetByID(ctx context.Context, id int32) (*domain.Client, error) {
	c := &domain.Client{}
	query := `SELECT id, name, email, phone, created_on FROM clients WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.CreatedOn)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}
