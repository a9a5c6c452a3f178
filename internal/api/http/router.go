package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"rentdesk-backend/internal/security"
	"rentdesk-backend/internal/service"
)

// NewRouter wires all API routes. Everything under /api/v1 requires a valid
// bearer token except login and price quotes.
func NewRouter(
	tokens security.TokenManager,
	authSvc service.AuthService,
	deliverySvc service.DeliveryService,
	pricingSvc service.PricingService,
	notificationSvc service.NotificationService,
) *mux.Router {
	authHandler := NewAuthHandler(authSvc)
	deliveryHandler := NewDeliveryHandler(deliverySvc)
	pricingHandler := NewPricingHandler(pricingSvc)
	notificationHandler := NewNotificationHandler(notificationSvc)

	router := mux.NewRouter()
	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		respondOK(w, map[string]string{"status": "ok"})
	}).Methods("GET")

	public := router.PathPrefix("/api/v1").Subrouter()
	public.HandleFunc("/auth/login", authHandler.Login).Methods("POST")
	public.HandleFunc("/products/{productID}/quote", pricingHandler.Quote).Methods("GET")
	public.HandleFunc("/products/{productID}/tiers", pricingHandler.ListTiers).Methods("GET")

	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(AuthMiddleware(tokens))

	api.HandleFunc("/handoffs", deliveryHandler.CreateFromReservation).Methods("POST")
	api.HandleFunc("/handoffs", deliveryHandler.List).Methods("GET")
	api.HandleFunc("/handoffs/{id}", deliveryHandler.Get).Methods("GET")
	api.HandleFunc("/handoffs/{id}/events", deliveryHandler.GetEvents).Methods("GET")
	api.HandleFunc("/handoffs/{id}/assign", deliveryHandler.Assign).Methods("POST")
	api.HandleFunc("/handoffs/{id}/start", deliveryHandler.Start).Methods("POST")
	api.HandleFunc("/handoffs/{id}/complete", deliveryHandler.Complete).Methods("POST")
	api.HandleFunc("/handoffs/{id}/cancel", deliveryHandler.Cancel).Methods("POST")
	api.HandleFunc("/handoffs/{id}/scan/storage", deliveryHandler.ScanAtStorage).Methods("POST")
	api.HandleFunc("/handoffs/{id}/scan/location", deliveryHandler.ScanAtLocation).Methods("POST")

	api.HandleFunc("/products/{productID}/storages", deliveryHandler.AvailableStorages).Methods("GET")

	api.HandleFunc("/tiers", pricingHandler.CreateTier).Methods("POST")
	api.HandleFunc("/tiers/{id}", pricingHandler.UpdateTier).Methods("PUT")
	api.HandleFunc("/tiers/{id}", pricingHandler.DeactivateTier).Methods("DELETE")

	api.HandleFunc("/notifications", notificationHandler.List).Methods("GET")
	api.HandleFunc("/notifications/{id}/read", notificationHandler.MarkAsRead).Methods("POST")

	return router
}
