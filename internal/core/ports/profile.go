package ports

import (
	"context"

	"github.com/collabhub/collab-platform/internal/core/domain"
)

// CreatorProfilePatch is a partial update: nil fields are left untouched.
type CreatorProfilePatch struct {
	DisplayName *string
	Niche       *string
	Platforms   *[]string
	Rate        *float64
	Bio         *string
}

// AgencyProfilePatch is a partial update: nil fields are left untouched.
type AgencyProfilePatch struct {
	AgencyName *string
	Website    *string
	TeamSize   *int
	RosterSize *int
}

// ProfileRepository defines persistence for role-specific profiles, keyed
// by the owning user id (unique per user).
type ProfileRepository interface {
	FindCreatorByUserID(ctx context.Context, userID string) (*domain.CreatorProfile, error)
	FindAgencyByUserID(ctx context.Context, userID string) (*domain.AgencyProfile, error)
	UpsertCreator(ctx context.Context, userID string, patch CreatorProfilePatch) (*domain.CreatorProfile, error)
	UpsertAgency(ctx context.Context, userID string, patch AgencyProfilePatch) (*domain.AgencyProfile, error)
	FindCreatorProfile(ctx context.Context, profileID string) (*domain.CreatorProfile, error)
}

// ProfileService applies partial profile updates keyed by the resolved
// user id, never by a client-supplied id.
type ProfileService interface {
	GetCreator(ctx context.Context, userID string) (*domain.CreatorProfile, error)
	GetAgency(ctx context.Context, userID string) (*domain.AgencyProfile, error)
	UpdateCreator(ctx context.Context, userID string, patch CreatorProfilePatch) (*domain.CreatorProfile, error)
	UpdateAgency(ctx context.Context, userID string, patch AgencyProfilePatch) (*domain.AgencyProfile, error)
}
