package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/repository"
	"rentdesk-backend/internal/service"

	"github.com/gorilla/mux"
)

// DeliveryHandler exposes the delivery/pickup lifecycle over HTTP.
type DeliveryHandler struct {
	svc service.DeliveryService
}

func NewDeliveryHandler(svc service.DeliveryService) *DeliveryHandler {
	return &DeliveryHandler{svc: svc}
}

func pathID(r *http.Request, name string) (int32, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return int32(id), nil
}

func staffID(r *http.Request) (int32, bool) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		return 0, false
	}
	return claims.StaffID, true
}

type createFromReservationRequest struct {
	ReservationID int32 `json:"reservation_id"`
}

func (h *DeliveryHandler) CreateFromReservation(w http.ResponseWriter, r *http.Request) {
	var req createFromReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ReservationID == 0 {
		respondBadRequest(w, "reservation_id is required")
		return
	}

	handoffs, err := h.svc.CreateFromReservation(r.Context(), req.ReservationID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondCreated(w, handoffs)
}

func (h *DeliveryHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := repository.HandoffFilter{
		Type:          domain.DeliveryPickupType(q.Get("type")),
		Status:        domain.DeliveryPickupStatus(q.Get("status")),
		ScheduledDate: q.Get("date"),
	}
	if raw := q.Get("assigned_to"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			respondBadRequest(w, "invalid assigned_to")
			return
		}
		sid := int32(id)
		filter.AssignedToID = &sid
	}

	handoffs, err := h.svc.List(r.Context(), filter)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, handoffs)
}

func (h *DeliveryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondBadRequest(w, "invalid handoff id")
		return
	}
	dp, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, dp)
}

func (h *DeliveryHandler) GetEvents(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondBadRequest(w, "invalid handoff id")
		return
	}
	events, err := h.svc.GetEvents(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, events)
}

type assignRequest struct {
	StaffID int32 `json:"staff_id"`
}

func (h *DeliveryHandler) Assign(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondBadRequest(w, "invalid handoff id")
		return
	}
	var req assignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.StaffID == 0 {
		respondBadRequest(w, "staff_id is required")
		return
	}

	dp, err := h.svc.Assign(r.Context(), id, req.StaffID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, dp)
}

type positionRequest struct {
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

func (h *DeliveryHandler) Start(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.svc.Start)
}

func (h *DeliveryHandler) Complete(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.svc.Complete)
}

func (h *DeliveryHandler) transition(w http.ResponseWriter, r *http.Request,
	op func(ctx context.Context, handoffID, staffID int32, lat, lon *float64) (*domain.DeliveryPickup, error)) {
	id, err := pathID(r, "id")
	if err != nil {
		respondBadRequest(w, "invalid handoff id")
		return
	}
	sid, ok := staffID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, response{Success: false, Error: "authentication required"})
		return
	}
	var req positionRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	dp, err := op(r.Context(), id, sid, req.Latitude, req.Longitude)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, dp)
}

type cancelRequest struct {
	Reason string `json:"reason"`
}

func (h *DeliveryHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondBadRequest(w, "invalid handoff id")
		return
	}
	sid, ok := staffID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, response{Success: false, Error: "authentication required"})
		return
	}
	var req cancelRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	dp, err := h.svc.Cancel(r.Context(), id, sid, req.Reason)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, dp)
}

type scanStorageRequest struct {
	UnitID    int32 `json:"unit_id"`
	StorageID int32 `json:"storage_id"`
}

func (h *DeliveryHandler) ScanAtStorage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondBadRequest(w, "invalid handoff id")
		return
	}
	sid, ok := staffID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, response{Success: false, Error: "authentication required"})
		return
	}
	var req scanStorageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UnitID == 0 || req.StorageID == 0 {
		respondBadRequest(w, "unit_id and storage_id are required")
		return
	}

	if err := h.svc.ScanAtStorage(r.Context(), id, req.UnitID, req.StorageID, sid); err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, nil)
}

type scanLocationRequest struct {
	UnitID int32 `json:"unit_id"`
}

func (h *DeliveryHandler) ScanAtLocation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondBadRequest(w, "invalid handoff id")
		return
	}
	sid, ok := staffID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, response{Success: false, Error: "authentication required"})
		return
	}
	var req scanLocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UnitID == 0 {
		respondBadRequest(w, "unit_id is required")
		return
	}

	if err := h.svc.ScanAtLocation(r.Context(), id, req.UnitID, sid); err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, nil)
}

func (h *DeliveryHandler) AvailableStorages(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "productID")
	if err != nil {
		respondBadRequest(w, "invalid product id")
		return
	}
	storages, err := h.svc.AvailableStorages(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, storages)
}
