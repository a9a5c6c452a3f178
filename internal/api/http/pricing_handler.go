package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/pricing"
	"rentdesk-backend/internal/service"
)

// PricingHandler exposes price quotes and tier administration.
type PricingHandler struct {
	svc service.PricingService
}

func NewPricingHandler(svc service.PricingService) *PricingHandler {
	return &PricingHandler{svc: svc}
}

type quoteResponse struct {
	pricing.PriceCalculation
	Display pricing.DisplayPrice `json:"display"`
}

func (h *PricingHandler) Quote(w http.ResponseWriter, r *http.Request) {
	productID, err := pathID(r, "productID")
	if err != nil {
		respondBadRequest(w, "invalid product id")
		return
	}
	days, err := strconv.Atoi(r.URL.Query().Get("days"))
	if err != nil {
		respondBadRequest(w, "days query parameter is required")
		return
	}

	calc, err := h.svc.QuoteProduct(r.Context(), productID, days)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, quoteResponse{PriceCalculation: calc, Display: pricing.FormatWithDiscount(calc)})
}

type tierRequest struct {
	ProductID        int32  `json:"product_id"`
	TierName         string `json:"tier_name"`
	MinDays          int    `json:"min_days"`
	MaxDays          *int   `json:"max_days"`
	PricePerDayCents int64  `json:"price_per_day_cents"`
}

func (h *PricingHandler) CreateTier(w http.ResponseWriter, r *http.Request) {
	var req tierRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ProductID == 0 {
		respondBadRequest(w, "product_id is required")
		return
	}

	tier := &domain.PricingTier{
		ProductID:        req.ProductID,
		TierName:         req.TierName,
		MinDays:          req.MinDays,
		MaxDays:          req.MaxDays,
		PricePerDayCents: req.PricePerDayCents,
		IsActive:         true,
	}
	if err := h.svc.CreateTier(r.Context(), tier); err != nil {
		respondError(w, err)
		return
	}
	respondCreated(w, tier)
}

func (h *PricingHandler) UpdateTier(w http.ResponseWriter, r *http.Request) {
	tierID, err := pathID(r, "id")
	if err != nil {
		respondBadRequest(w, "invalid tier id")
		return
	}
	var req tierRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ProductID == 0 {
		respondBadRequest(w, "product_id is required")
		return
	}

	tier := &domain.PricingTier{
		ID:               tierID,
		ProductID:        req.ProductID,
		TierName:         req.TierName,
		MinDays:          req.MinDays,
		MaxDays:          req.MaxDays,
		PricePerDayCents: req.PricePerDayCents,
		IsActive:         true,
	}
	if err := h.svc.UpdateTier(r.Context(), tier); err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, tier)
}

func (h *PricingHandler) DeactivateTier(w http.ResponseWriter, r *http.Request) {
	tierID, err := pathID(r, "id")
	if err != nil {
		respondBadRequest(w, "invalid tier id")
		return
	}
	if err := h.svc.DeactivateTier(r.Context(), tierID); err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, nil)
}

func (h *PricingHandler) ListTiers(w http.ResponseWriter, r *http.Request) {
	productID, err := pathID(r, "productID")
	if err != nil {
		respondBadRequest(w, "invalid product id")
		return
	}
	tiers, err := h.svc.ListTiers(r.Context(), productID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, tiers)
}
