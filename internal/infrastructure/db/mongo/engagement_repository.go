package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/collabhub/collab-platform/internal/core/domain"
)

const (
	collectionSavedCreators = "saved_creators"
	collectionInboxReads    = "inbox_reads"
)

// SavedCreatorRepository manages the unique (brand, creator) join collection.
type SavedCreatorRepository struct {
	col *mongo.Collection
}

func NewSavedCreatorRepository(db *mongo.Database) *SavedCreatorRepository {
	return &SavedCreatorRepository{col: db.Collection(collectionSavedCreators)}
}

// Save upserts on the unique pair, so repeating a save changes nothing.
// The returned flag is true only when a new document was inserted.
func (r *SavedCreatorRepository) Save(ctx context.Context, brandID, creatorProfileID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"brand_id": brandID, "creator_profile_id": creatorProfileID}
	update := bson.M{"$setOnInsert": bson.M{
		"brand_id":           brandID,
		"creator_profile_id": creatorProfileID,
		"created_at":         time.Now().UTC(),
	}}

	res, err := r.col.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return false, fmt.Errorf("save creator: %w", err)
	}
	return res.UpsertedCount > 0, nil
}

func (r *SavedCreatorRepository) Unsave(ctx context.Context, brandID, creatorProfileID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.DeleteOne(ctx, bson.M{"brand_id": brandID, "creator_profile_id": creatorProfileID})
	return err
}

func (r *SavedCreatorRepository) ListByBrand(ctx context.Context, brandID string) ([]*domain.SavedCreator, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"brand_id": brandID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list saved creators: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.SavedCreator
	for cur.Next(ctx) {
		var doc struct {
			ID               primitive.ObjectID `bson:"_id"`
			BrandID          string             `bson:"brand_id"`
			CreatorProfileID string             `bson:"creator_profile_id"`
			CreatedAt        time.Time          `bson:"created_at"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode saved creator: %w", err)
		}
		out = append(out, &domain.SavedCreator{
			ID:               doc.ID.Hex(),
			BrandID:          doc.BrandID,
			CreatorProfileID: doc.CreatorProfileID,
			CreatedAt:        doc.CreatedAt,
		})
	}
	return out, cur.Err()
}

// EnsureIndexes creates the unique pair index.
func (r *SavedCreatorRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "brand_id", Value: 1}, {Key: "creator_profile_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// InboxReadRepository upserts per-user read markers.
type InboxReadRepository struct {
	col *mongo.Collection
}

func NewInboxReadRepository(db *mongo.Database) *InboxReadRepository {
	return &InboxReadRepository{col: db.Collection(collectionInboxReads)}
}

// MarkRead upserts on the unique (user, item) pair: two calls for the same
// pair leave exactly one document.
func (r *InboxReadRepository) MarkRead(ctx context.Context, userID, itemID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"user_id": userID, "item_id": itemID}
	update := bson.M{
		"$set":         bson.M{"read_at": time.Now().UTC()},
		"$setOnInsert": bson.M{"user_id": userID, "item_id": itemID},
	}

	_, err := r.col.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("mark inbox read: %w", err)
	}
	return nil
}

func (r *InboxReadRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{"user_id": userID})
	if err != nil {
		return 0, fmt.Errorf("count inbox reads: %w", err)
	}
	return n, nil
}

// EnsureIndexes creates the unique pair index.
func (r *InboxReadRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "item_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
