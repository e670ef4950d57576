package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/collabhub/collab-platform/internal/core/domain"
	"github.com/collabhub/collab-platform/internal/core/ports"
)

// ProfileService applies partial profile updates. The owning user id always
// comes from the resolved session, so a user can only ever touch its own
// profile document.
type ProfileService struct {
	repo    ports.ProfileRepository
	auditor ports.AuditRecorder
	log     zerolog.Logger
}

func NewProfileService(repo ports.ProfileRepository, auditor ports.AuditRecorder, log zerolog.Logger) *ProfileService {
	return &ProfileService{repo: repo, auditor: auditor, log: log}
}

func (s *ProfileService) GetCreator(ctx context.Context, userID string) (*domain.CreatorProfile, error) {
	return s.repo.FindCreatorByUserID(ctx, userID)
}

func (s *ProfileService) GetAgency(ctx context.Context, userID string) (*domain.AgencyProfile, error) {
	return s.repo.FindAgencyByUserID(ctx, userID)
}

func (s *ProfileService) UpdateCreator(ctx context.Context, userID string, patch ports.CreatorProfilePatch) (*domain.CreatorProfile, error) {
	profile, err := s.repo.UpsertCreator(ctx, userID, patch)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Msg("failed to update creator profile")
		return nil, err
	}

	if err := s.recordUpdate(ctx, userID, profile.ID, "creator_profile"); err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", userID).Msg("creator profile updated")
	return profile, nil
}

func (s *ProfileService) UpdateAgency(ctx context.Context, userID string, patch ports.AgencyProfilePatch) (*domain.AgencyProfile, error) {
	profile, err := s.repo.UpsertAgency(ctx, userID, patch)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Msg("failed to update agency profile")
		return nil, err
	}

	if err := s.recordUpdate(ctx, userID, profile.ID, "agency_profile"); err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", userID).Msg("agency profile updated")
	return profile, nil
}

func (s *ProfileService) recordUpdate(ctx context.Context, userID, profileID, entityType string) error {
	return s.auditor.Record(ctx, ports.AuditFact{
		ActorType:  domain.ActorUser,
		ActorID:    userID,
		Action:     domain.ActionProfileUpdated,
		EntityType: entityType,
		EntityID:   profileID,
	})
}
