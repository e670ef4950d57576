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

const collectionMilestones = "milestones"

type MilestoneRepository struct {
	col *mongo.Collection
}

func NewMilestoneRepository(db *mongo.Database) *MilestoneRepository {
	return &MilestoneRepository{col: db.Collection(collectionMilestones)}
}

type mongoMilestone struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty"`
	AgreementID  string               `bson:"agreement_id"`
	CreatorID    string               `bson:"creator_id"`
	BrandID      string               `bson:"brand_id"`
	Title        string               `bson:"title"`
	Amount       float64              `bson:"amount"`
	Status       string               `bson:"status"`
	DueDate      *time.Time           `bson:"due_date,omitempty"`
	Deliverables []domain.Deliverable `bson:"deliverables"`
	CreatedAt    time.Time            `bson:"created_at"`
	UpdatedAt    time.Time            `bson:"updated_at"`
}

func (mm mongoMilestone) toDomain() *domain.Milestone {
	return &domain.Milestone{
		ID:           mm.ID.Hex(),
		AgreementID:  mm.AgreementID,
		CreatorID:    mm.CreatorID,
		BrandID:      mm.BrandID,
		Title:        mm.Title,
		Amount:       mm.Amount,
		Status:       domain.MilestoneStatus(mm.Status),
		DueDate:      mm.DueDate,
		Deliverables: mm.Deliverables,
		CreatedAt:    mm.CreatedAt,
		UpdatedAt:    mm.UpdatedAt,
	}
}

// Create inserts the milestone and writes the generated id back onto m.
func (r *MilestoneRepository) Create(ctx context.Context, m *domain.Milestone) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoMilestone{
		AgreementID:  m.AgreementID,
		CreatorID:    m.CreatorID,
		BrandID:      m.BrandID,
		Title:        m.Title,
		Amount:       m.Amount,
		Status:       string(m.Status),
		DueDate:      m.DueDate,
		Deliverables: m.Deliverables,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("insert milestone: %w", err)
	}
	m.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return nil
}

func (r *MilestoneRepository) FindByID(ctx context.Context, id string) (*domain.Milestone, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrMilestoneNotFound
	}

	var mm mongoMilestone
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&mm); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrMilestoneNotFound
		}
		return nil, fmt.Errorf("find milestone: %w", err)
	}
	return mm.toDomain(), nil
}

func (r *MilestoneRepository) ListByAgreement(ctx context.Context, agreementID string) ([]*domain.Milestone, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cur, err := r.col.Find(ctx, bson.M{"agreement_id": agreementID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list milestones: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Milestone
	for cur.Next(ctx) {
		var mm mongoMilestone
		if err := cur.Decode(&mm); err != nil {
			return nil, fmt.Errorf("decode milestone: %w", err)
		}
		out = append(out, mm.toDomain())
	}
	return out, cur.Err()
}

func (r *MilestoneRepository) UpdateStatus(ctx context.Context, id string, status domain.MilestoneStatus) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrMilestoneNotFound
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{
		"$set": bson.M{"status": string(status), "updated_at": time.Now().UTC()},
	})
	if err != nil {
		return fmt.Errorf("update milestone status: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrMilestoneNotFound
	}
	return nil
}

func (r *MilestoneRepository) AppendDeliverable(ctx context.Context, id string, d domain.Deliverable) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrMilestoneNotFound
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{
		"$push": bson.M{"deliverables": d},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	})
	if err != nil {
		return fmt.Errorf("append deliverable: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrMilestoneNotFound
	}
	return nil
}

// EnsureIndexes creates the agreement_id lookup index.
func (r *MilestoneRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "agreement_id", Value: 1}}},
		{Keys: bson.D{{Key: "creator_id", Value: 1}}},
	})
	return err
}
