package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/collabhub/collab-platform/internal/core/domain"
	"github.com/collabhub/collab-platform/internal/core/ports"
)

const (
	collectionCreatorProfiles = "creator_profiles"
	collectionAgencyProfiles  = "agency_profiles"
)

type ProfileRepository struct {
	creators *mongo.Collection
	agencies *mongo.Collection
}

func NewProfileRepository(db *mongo.Database) *ProfileRepository {
	return &ProfileRepository{
		creators: db.Collection(collectionCreatorProfiles),
		agencies: db.Collection(collectionAgencyProfiles),
	}
}

func (r *ProfileRepository) FindCreatorByUserID(ctx context.Context, userID string) (*domain.CreatorProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var p domain.CreatorProfile
	if err := r.creators.FindOne(ctx, bson.M{"user_id": userID}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("find creator profile: %w", err)
	}
	return &p, nil
}

func (r *ProfileRepository) FindAgencyByUserID(ctx context.Context, userID string) (*domain.AgencyProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var p domain.AgencyProfile
	if err := r.agencies.FindOne(ctx, bson.M{"user_id": userID}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("find agency profile: %w", err)
	}
	return &p, nil
}

func (r *ProfileRepository) FindCreatorProfile(ctx context.Context, profileID string) (*domain.CreatorProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(profileID)
	if err != nil {
		return nil, domain.ErrProfileNotFound
	}

	var p domain.CreatorProfile
	if err := r.creators.FindOne(ctx, bson.M{"_id": oid}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("find creator profile: %w", err)
	}
	return &p, nil
}

// UpsertCreator applies a partial update keyed by the unique user_id,
// creating the profile document on first write.
func (r *ProfileRepository) UpsertCreator(ctx context.Context, userID string, patch ports.CreatorProfilePatch) (*domain.CreatorProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{"updated_at": time.Now().UTC()}
	if patch.DisplayName != nil {
		set["display_name"] = *patch.DisplayName
	}
	if patch.Niche != nil {
		set["niche"] = *patch.Niche
	}
	if patch.Platforms != nil {
		set["platforms"] = *patch.Platforms
	}
	if patch.Rate != nil {
		set["rate"] = *patch.Rate
	}
	if patch.Bio != nil {
		set["bio"] = *patch.Bio
	}

	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var p domain.CreatorProfile
	err := r.creators.FindOneAndUpdate(ctx,
		bson.M{"user_id": userID},
		bson.M{"$set": set, "$setOnInsert": bson.M{"user_id": userID}},
		opts,
	).Decode(&p)
	if err != nil {
		return nil, fmt.Errorf("upsert creator profile: %w", err)
	}
	return &p, nil
}

// UpsertAgency is the agency counterpart of UpsertCreator.
func (r *ProfileRepository) UpsertAgency(ctx context.Context, userID string, patch ports.AgencyProfilePatch) (*domain.AgencyProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{"updated_at": time.Now().UTC()}
	if patch.AgencyName != nil {
		set["agency_name"] = *patch.AgencyName
	}
	if patch.Website != nil {
		set["website"] = *patch.Website
	}
	if patch.TeamSize != nil {
		set["team_size"] = *patch.TeamSize
	}
	if patch.RosterSize != nil {
		set["roster_size"] = *patch.RosterSize
	}

	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var p domain.AgencyProfile
	err := r.agencies.FindOneAndUpdate(ctx,
		bson.M{"user_id": userID},
		bson.M{"$set": set, "$setOnInsert": bson.M{"user_id": userID}},
		opts,
	).Decode(&p)
	if err != nil {
		return nil, fmt.Errorf("upsert agency profile: %w", err)
	}
	return &p, nil
}

// EnsureIndexes creates the unique user_id index on both profile collections.
func (r *ProfileRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	model := mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := r.creators.Indexes().CreateOne(ctx, model); err != nil {
		return err
	}
	_, err := r.agencies.Indexes().CreateOne(ctx, model)
	return err
}
