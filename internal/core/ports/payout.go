package ports

import (
	"context"

	"github.com/collabhub/collab-platform/internal/core/domain"
)

// PayoutTask is the unit of work handed to the payout dispatcher. Sharding
// on CreatorID preserves per-creator processing order.
type PayoutTask struct {
	PayoutID  string
	CreatorID string
}

// PayoutRepository defines persistence operations for payouts.
type PayoutRepository interface {
	Create(ctx context.Context, p *domain.Payout) error
	FindByID(ctx context.Context, id string) (*domain.Payout, error)
	ListByCreator(ctx context.Context, creatorID string) ([]*domain.Payout, error)
	UpdateStatus(ctx context.Context, id string, status domain.PayoutStatus) error
}

// PayoutService defines use-case operations for payouts.
type PayoutService interface {
	Request(ctx context.Context, creatorID string, amount float64) (*domain.Payout, error)
	ListByCreator(ctx context.Context, creatorID string) ([]*domain.Payout, error)
}

// PayoutProcessor advances one requested payout through processing. It is
// driven by the queue dispatcher, not by request handlers.
type PayoutProcessor interface {
	Process(ctx context.Context, task PayoutTask) error
}
