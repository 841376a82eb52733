package service

import (
	"context"

	"github.com/google/uuid"

	"rentivo-backend/internal/domain"
	"rentivo-backend/internal/repository"
)

type notificationService struct {
	deviceRepo repository.DeviceRepository
	noteRepo   repository.NotificationRepository
}

func NewNotificationService(deviceRepo repository.DeviceRepository, noteRepo repository.NotificationRepository) NotificationService {
	return &notificationService{
		deviceRepo: deviceRepo,
		noteRepo:   noteRepo,
	}
}

func (s *notificationService) RegisterDevice(ctx context.Context, userID, token, platform string) (*domain.Device, error) {
	if token == "" {
		return nil, domain.Errf(domain.CodeValidation, "push token is required")
	}

	device := &domain.Device{
		ID:       uuid.NewString(),
		UserID:   userID,
		Token:    token,
		Platform: platform,
	}
	if err := s.deviceRepo.Create(ctx, device); err != nil {
		return nil, err
	}
	return device, nil
}

func (s *notificationService) ListNotifications(ctx context.Context, userID string) ([]domain.Notification, error) {
	return s.noteRepo.ListByUser(ctx, userID)
}
