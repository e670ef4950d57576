package ports

import (
	"context"

	"github.com/collabhub/collab-platform/internal/core/domain"
)

// SavedCreatorRepository manages the unique (brand, creator) join records.
type SavedCreatorRepository interface {
	// Save inserts the pair if absent and reports whether a new record was
	// created. Saving an already-saved pair is a no-op.
	Save(ctx context.Context, brandID, creatorProfileID string) (bool, error)
	Unsave(ctx context.Context, brandID, creatorProfileID string) error
	ListByBrand(ctx context.Context, brandID string) ([]*domain.SavedCreator, error)
}

// InboxReadRepository upserts per-user read markers, unique per (user, item).
type InboxReadRepository interface {
	MarkRead(ctx context.Context, userID, itemID string) error
	CountByUser(ctx context.Context, userID string) (int64, error)
}

// EngagementService groups the lightweight tracking operations: saved
// creators for brands and inbox read markers for everyone.
type EngagementService interface {
	SaveCreator(ctx context.Context, brandID, creatorProfileID string) error
	UnsaveCreator(ctx context.Context, brandID, creatorProfileID string) error
	ListSavedCreators(ctx context.Context, brandID string) ([]*domain.SavedCreator, error)
	MarkInboxRead(ctx context.Context, userID, itemID string) error
}
