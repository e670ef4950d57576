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
)

const collectionPayouts = "payouts"

type PayoutRepository struct {
	col *mongo.Collection
}

func NewPayoutRepository(db *mongo.Database) *PayoutRepository {
	return &PayoutRepository{col: db.Collection(collectionPayouts)}
}

type mongoPayout struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	CreatorID   string             `bson:"creator_id"`
	Amount      float64            `bson:"amount"`
	Status      string             `bson:"status"`
	RequestedAt time.Time          `bson:"requested_at"`
	ProcessedAt *time.Time         `bson:"processed_at,omitempty"`
}

func (mp mongoPayout) toDomain() *domain.Payout {
	return &domain.Payout{
		ID:          mp.ID.Hex(),
		CreatorID:   mp.CreatorID,
		Amount:      mp.Amount,
		Status:      domain.PayoutStatus(mp.Status),
		RequestedAt: mp.RequestedAt,
		ProcessedAt: mp.ProcessedAt,
	}
}

func (r *PayoutRepository) Create(ctx context.Context, p *domain.Payout) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoPayout{
		CreatorID:   p.CreatorID,
		Amount:      p.Amount,
		Status:      string(p.Status),
		RequestedAt: p.RequestedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("insert payout: %w", err)
	}
	p.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return nil
}

func (r *PayoutRepository) FindByID(ctx context.Context, id string) (*domain.Payout, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrPayoutNotFound
	}

	var mp mongoPayout
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&mp); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPayoutNotFound
		}
		return nil, fmt.Errorf("find payout: %w", err)
	}
	return mp.toDomain(), nil
}

func (r *PayoutRepository) ListByCreator(ctx context.Context, creatorID string) ([]*domain.Payout, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "requested_at", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"creator_id": creatorID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list payouts: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Payout
	for cur.Next(ctx) {
		var mp mongoPayout
		if err := cur.Decode(&mp); err != nil {
			return nil, fmt.Errorf("decode payout: %w", err)
		}
		out = append(out, mp.toDomain())
	}
	return out, cur.Err()
}

// UpdateStatus sets the payout status. Terminal statuses also stamp
// processed_at.
func (r *PayoutRepository) UpdateStatus(ctx context.Context, id string, status domain.PayoutStatus) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrPayoutNotFound
	}

	set := bson.M{"status": string(status)}
	if status == domain.PayoutCompleted || status == domain.PayoutFailed {
		set["processed_at"] = time.Now().UTC()
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update payout status: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrPayoutNotFound
	}
	return nil
}

// EnsureIndexes creates the per-creator listing index.
func (r *PayoutRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "creator_id", Value: 1}, {Key: "requested_at", Value: -1}},
	})
	return err
}
