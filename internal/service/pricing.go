package service

import (
	"context"
	"errors"

	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/pricing"
	"rentdesk-backend/internal/repository"
)

var (
	ErrInvalidTierRange = errors.New("tier min_days must be >= 1 and max_days >= min_days")
	ErrInvalidTierPrice = errors.New("tier price_per_day_cents must be positive")
)

type pricingService struct {
	tierRepo    repository.PricingTierRepository
	productRepo repository.ProductRepository
}

func NewPricingService(tierRepo repository.PricingTierRepository, productRepo repository.ProductRepository) PricingService {
	return &pricingService{
		tierRepo:    tierRepo,
		productRepo: productRepo,
	}
}

func (s *pricingService) QuoteProduct(ctx context.Context, productID int32, rentalDays int) (pricing.PriceCalculation, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return pricing.PriceCalculation{}, err
	}
	if product == nil {
		return pricing.PriceCalculation{}, domain.ErrNotFound
	}

	tiers, err := s.tierRepo.ListActiveByProduct(ctx, productID)
	if err != nil {
		return pricing.PriceCalculation{}, err
	}
	return pricing.Resolve(product.PricePerDayCents, rentalDays, tiers)
}

func (s *pricingService) CreateTier(ctx context.Context, tier *domain.PricingTier) error {
	if err := validateTier(tier); err != nil {
		return err
	}
	existing, err := s.tierRepo.ListActiveByProduct(ctx, tier.ProductID)
	if err != nil {
		return err
	}
	if err := pricing.ValidateDisjoint(*tier, existing); err != nil {
		return err
	}
	return s.tierRepo.Create(ctx, tier)
}

func (s *pricingService) UpdateTier(ctx context.Context, tier *domain.PricingTier) error {
	if err := validateTier(tier); err != nil {
		return err
	}
	existing, err := s.tierRepo.ListActiveByProduct(ctx, tier.ProductID)
	if err != nil {
		return err
	}
	if err := pricing.ValidateDisjoint(*tier, existing); err != nil {
		return err
	}
	return s.tierRepo.Update(ctx, tier)
}

func (s *pricingService) DeactivateTier(ctx context.Context, tierID int32) error {
	return s.tierRepo.Deactivate(ctx, tierID)
}

func (s *pricingService) ListTiers(ctx context.Context, productID int32) ([]domain.PricingTier, error) {
	return s.tierRepo.ListActiveByProduct(ctx, productID)
}

func validateTier(tier *domain.PricingTier) error {
	if tier.MinDays < 1 {
		return ErrInvalidTierRange
	}
	if tier.MaxDays != nil && *tier.MaxDays < tier.MinDays {
		return ErrInvalidTierRange
	}
	if tier.PricePerDayCents <= 0 {
		return ErrInvalidTierPrice
	}
	return nil
}
