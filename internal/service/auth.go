package service

import (
	"context"
	"errors"

	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/repository"
	"rentdesk-backend/internal/security"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountDisabled    = errors.New("account is disabled")
)

type authService struct {
	staffRepo repository.StaffRepository
	tokens    security.TokenManager
}

func NewAuthService(staffRepo repository.StaffRepository, tokens security.TokenManager) AuthService {
	return &authService{
		staffRepo: staffRepo,
		tokens:    tokens,
	}
}

func (s *authService) Login(ctx context.Context, email, password string) (string, *domain.Staff, error) {
	staff, err := s.staffRepo.GetByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}
	if staff == nil {
		return "", nil, ErrInvalidCredentials
	}
	if !staff.IsActive {
		return "", nil, ErrAccountDisabled
	}
	if !security.CheckPassword(staff.PasswordHash, password) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateAccessToken(staff.ID, staff.Email, string(staff.Role))
	if err != nil {
		return "", nil, err
	}
	return token, staff, nil
}
