package http

import (
	"encoding/json"
	"net/http"

	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/service"
)

type AuthHandler struct {
	svc service.AuthService
}

func NewAuthHandler(svc service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string        `json:"access_token"`
	Staff       *domain.Staff `json:"staff"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" {
		respondBadRequest(w, "email and password are required")
		return
	}

	token, staff, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, loginResponse{AccessToken: token, Staff: staff})
}
