package ports

import (
	"context"

	"github.com/collabhub/collab-platform/internal/core/domain"
)

// NotificationRepository defines persistence for user notifications.
type NotificationRepository interface {
	Insert(ctx context.Context, n *domain.Notification) error
	ListByUser(ctx context.Context, userID string) ([]*domain.Notification, error)
	MarkRead(ctx context.Context, id, userID string) error
	// DeleteOwned removes the notification only when it belongs to userID.
	// A miss (wrong owner or unknown id) is not an error.
	DeleteOwned(ctx context.Context, id, userID string) error
}

// NotificationService is the read/ack surface exposed to route handlers.
// Creation happens exclusively through the Notifier.
type NotificationService interface {
	List(ctx context.Context, userID string) ([]*domain.Notification, error)
	MarkRead(ctx context.Context, id, userID string) error
	Delete(ctx context.Context, id, userID string) error
}
