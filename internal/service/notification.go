package service

import (
	"context"

	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/repository"
)

type notificationService struct {
	noteRepo repository.NotificationRepository
}

func NewNotificationService(noteRepo repository.NotificationRepository) NotificationService {
	return &notificationService{noteRepo: noteRepo}
}

func (s *notificationService) List(ctx context.Context, staffID int32, page, pageSize int32) ([]domain.Notification, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	return s.noteRepo.List(ctx, staffID, pageSize, (page-1)*pageSize)
}

func (s *notificationService) MarkAsRead(ctx context.Context, staffID, notificationID int32) error {
	return s.noteRepo.MarkAsRead(ctx, notificationID, staffID)
}
