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

const collectionAuditLogs = "audit_logs"

// AuditRepository appends to the audit_logs collection. There is no update
// or delete path: the collection is append-only by construction.
type AuditRepository struct {
	col *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{col: db.Collection(collectionAuditLogs)}
}

type mongoAuditLog struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	ActorType  string             `bson:"actor_type"`
	ActorID    string             `bson:"actor_id,omitempty"`
	Action     string             `bson:"action"`
	EntityType string             `bson:"entity_type"`
	EntityID   string             `bson:"entity_id"`
	Metadata   map[string]string  `bson:"metadata,omitempty"`
	CreatedAt  time.Time          `bson:"created_at"`
}

func (r *AuditRepository) Insert(ctx context.Context, log *domain.AuditLog) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoAuditLog{
		ActorType:  string(log.ActorType),
		ActorID:    log.ActorID,
		Action:     log.Action,
		EntityType: log.EntityType,
		EntityID:   log.EntityID,
		Metadata:   log.Metadata,
		CreatedAt:  log.CreatedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}
	log.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return nil
}

func (r *AuditRepository) ListByEntity(ctx context.Context, entityType, entityID string) ([]*domain.AuditLog, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cur, err := r.col.Find(ctx, bson.M{"entity_type": entityType, "entity_id": entityID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.AuditLog
	for cur.Next(ctx) {
		var ml mongoAuditLog
		if err := cur.Decode(&ml); err != nil {
			return nil, fmt.Errorf("decode audit log: %w", err)
		}
		out = append(out, &domain.AuditLog{
			ID:         ml.ID.Hex(),
			ActorType:  domain.ActorType(ml.ActorType),
			ActorID:    ml.ActorID,
			Action:     ml.Action,
			EntityType: ml.EntityType,
			EntityID:   ml.EntityID,
			Metadata:   ml.Metadata,
			CreatedAt:  ml.CreatedAt,
		})
	}
	return out, cur.Err()
}

// EnsureIndexes creates the entity lookup index.
func (r *AuditRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "entity_type", Value: 1}, {Key: "entity_id", Value: 1}, {Key: "created_at", Value: 1}},
	})
	return err
}
