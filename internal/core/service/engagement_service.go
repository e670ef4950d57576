package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/collabhub/collab-platform/internal/core/domain"
	"github.com/collabhub/collab-platform/internal/core/ports"
)

// EngagementService groups saved-creator bookmarks and inbox read markers.
type EngagementService struct {
	saved    ports.SavedCreatorRepository
	inbox    ports.InboxReadRepository
	profiles ports.ProfileRepository
	auditor  ports.AuditRecorder
	log      zerolog.Logger
}

func NewEngagementService(
	saved ports.SavedCreatorRepository,
	inbox ports.InboxReadRepository,
	profiles ports.ProfileRepository,
	auditor ports.AuditRecorder,
	log zerolog.Logger,
) *EngagementService {
	return &EngagementService{saved: saved, inbox: inbox, profiles: profiles, auditor: auditor, log: log}
}

// SaveCreator bookmarks a creator profile for a brand. The unique (brand,
// creator) pair makes a repeat save a no-op, and a no-op save records no
// audit fact: only the insert that actually created the pair is audited.
func (s *EngagementService) SaveCreator(ctx context.Context, brandID, creatorProfileID string) error {
	profile, err := s.profiles.FindCreatorProfile(ctx, creatorProfileID)
	if err != nil {
		return err
	}

	created, err := s.saved.Save(ctx, brandID, creatorProfileID)
	if err != nil {
		return err
	}
	if !created {
		return nil
	}

	return s.auditor.Record(ctx, ports.AuditFact{
		ActorType:  domain.ActorUser,
		ActorID:    brandID,
		Action:     domain.ActionCreatorSaved,
		EntityType: "creator_profile",
		EntityID:   creatorProfileID,
		Metadata: map[string]string{
			"creator_id": profile.UserID,
		},
	})
}

func (s *EngagementService) UnsaveCreator(ctx context.Context, brandID, creatorProfileID string) error {
	return s.saved.Unsave(ctx, brandID, creatorProfileID)
}

func (s *EngagementService) ListSavedCreators(ctx context.Context, brandID string) ([]*domain.SavedCreator, error) {
	return s.saved.ListByBrand(ctx, brandID)
}

// MarkInboxRead upserts the (user, item) read marker. Calling it twice for
// the same pair leaves exactly one record.
func (s *EngagementService) MarkInboxRead(ctx context.Context, userID, itemID string) error {
	return s.inbox.MarkRead(ctx, userID, itemID)
}
