package postgres

import (
	"context"
	"database/sql"

	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/repository"
)

type productRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) repository.ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) GetByID(ctx context.Context, id int32) (*domain.Product, error) {
	p := &domain.Product{}
	query := `SELECT id, name, description, category, price_per_day_cents, is_active, created_on
	          FROM products WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Description, &p.Category, &p.PricePerDayCents, &p.IsActive, &p.CreatedOn)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *productRepository) GetUnitByID(ctx context.Context, unitID int32) (*domain.ProductUnit, error) {
	u := &domain.ProductUnit{}
	query := `SELECT id, product_id, serial_code, status, storage_id, created_on
	          FROM product_units WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, unitID).Scan(
		&u.ID, &u.ProductID, &u.SerialCode, &u.Status, &u.StorageID, &u.CreatedOn)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *productRepository) ListAvailableStorages(ctx context.Context, productID int32) ([]domain.StorageLocation, error) {
	query := `SELECT DISTINCT s.id, s.name, s.address, s.city, s.is_active, s.created_on
	          FROM storage_locations s
	          JOIN product_units u ON u.storage_id = s.id
	          WHERE u.product_id = $1 AND u.status = 'available' AND s.is_active = true
	          ORDER BY s.name`
	rows, err := r.db.QueryContext(ctx, query, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var storages []domain.StorageLocation
	for rows.Next() {
		var s domain.StorageLocation
		if err := rows.Scan(&s.ID, &s.Name, &s.Address, &s.City, &s.IsActive, &s.CreatedOn); err != nil {
			return nil, err
		}
		storages = append(storages, s)
	}
	return storages, rows.Err()
}
