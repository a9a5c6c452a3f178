package postgres

import (
	"context"
	"database/sql"
	"time"

	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/repository"
)

type pricingTierRepository struct {
	db *sql.DB
}

func NewPricingTierRepository(db *sql.DB) repository.PricingTierRepository {
	return &pricingTierRepository{db: db}
}

func (r *pricingTierRepository) Create(ctx context.Context, tier *domain.PricingTier) error {
	query := `INSERT INTO pricing_tiers (product_id, min_days, max_days, price_per_day_cents, tier_name, is_active, created_on)
	          VALUES ($1, $2, $3, $4, $5, true, $6) RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		tier.ProductID, tier.MinDays, tier.MaxDays, tier.PricePerDayCents, tier.TierName, time.Now()).Scan(&tier.ID)
}

func (r *pricingTierRepository) Update(ctx context.Context, tier *domain.PricingTier) error {
	query := `UPDATE pricing_tiers SET min_days = $1, max_days = $2, price_per_day_cents = $3, tier_name = $4
	          WHERE id = $5 AND is_active = true`
	res, err := r.db.ExecContext(ctx, query, tier.MinDays, tier.MaxDays, tier.PricePerDayCents, tier.TierName, tier.ID)
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

// Deactivate soft-deletes a tier; tiers are never removed.
func (r *pricingTierRepository) Deactivate(ctx context.Context, id int32) error {
	query := `UPDATE pricing_tiers SET is_active = false WHERE id = $1 AND is_active = true`
	res, err := r.db.ExecContext(ctx, query, id)
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

func (r *pricingTierRepository) ListActiveByProduct(ctx context.Context, productID int32) ([]domain.PricingTier, error) {
	query := `SELECT id, product_id, min_days, max_days, price_per_day_cents, tier_name, is_active, created_on
	          FROM pricing_tiers WHERE product_id = $1 AND is_active = true ORDER BY min_days`
	rows, err := r.db.QueryContext(ctx, query, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tiers []domain.PricingTier
	for rows.Next() {
		var t domain.PricingTier
		var name sql.NullString
		if err := rows.Scan(&t.ID, &t.ProductID, &t.MinDays, &t.MaxDays, &t.PricePerDayCents, &name, &t.IsActive, &t.CreatedOn); err != nil {
			return nil, err
		}
		t.TierName = name.String
		tiers = append(tiers, t)
	}
	return tiers, rows.Err()
}
