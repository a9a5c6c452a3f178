package http

import (
	"net/http"
	"strconv"

	"rentdesk-backend/internal/service"
)

type NotificationHandler struct {
	svc service.NotificationService
}

func NewNotificationHandler(svc service.NotificationService) *NotificationHandler {
	return &NotificationHandler{svc: svc}
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	sid, ok := staffID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, response{Success: false, Error: "authentication required"})
		return
	}

	q := r.URL.Query()
	page, _ := strconv.ParseInt(q.Get("page"), 10, 32)
	pageSize, _ := strconv.ParseInt(q.Get("page_size"), 10, 32)

	notes, err := h.svc.List(r.Context(), sid, int32(page), int32(pageSize))
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, notes)
}

func (h *NotificationHandler) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	sid, ok := staffID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, response{Success: false, Error: "authentication required"})
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		respondBadRequest(w, "invalid notification id")
		return
	}

	if err := h.svc.MarkAsRead(r.Context(), sid, id); err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, nil)
}
