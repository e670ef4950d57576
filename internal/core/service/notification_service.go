package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/collabhub/collab-platform/internal/core/domain"
	"github.com/collabhub/collab-platform/internal/core/ports"
)

// NotificationService exposes the read/ack surface over notifications.
// Creation is the notifier's job alone.
type NotificationService struct {
	repo ports.NotificationRepository
	log  zerolog.Logger
}

func NewNotificationService(repo ports.NotificationRepository, log zerolog.Logger) *NotificationService {
	return &NotificationService{repo: repo, log: log}
}

func (s *NotificationService) List(ctx context.Context, userID string) ([]*domain.Notification, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *NotificationService) MarkRead(ctx context.Context, id, userID string) error {
	return s.repo.MarkRead(ctx, id, userID)
}

// Delete removes the notification only when userID owns it. An ownership
// mismatch or unknown id is a silent no-op, which also makes concurrent
// deletes of the same id safe.
func (s *NotificationService) Delete(ctx context.Context, id, userID string) error {
	return s.repo.DeleteOwned(ctx, id, userID)
}
