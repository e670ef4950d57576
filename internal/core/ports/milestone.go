package ports

import (
	"context"
	"time"

	"github.com/collabhub/collab-platform/internal/core/domain"
)

// CreateMilestoneInput carries all data needed to create a milestone.
type CreateMilestoneInput struct {
	AgreementID string
	CreatorID   string
	BrandID     string
	Title       string
	Amount      float64
	DueDate     *time.Time
}

// UpdateMilestoneStatusInput moves a milestone along its lifecycle. Actor
// fields feed the audit record.
type UpdateMilestoneStatusInput struct {
	MilestoneID string
	Status      domain.MilestoneStatus
	ActorID     string
	ActorRole   domain.Role
}

// MilestoneRepository defines persistence operations for milestones.
type MilestoneRepository interface {
	Create(ctx context.Context, m *domain.Milestone) error
	FindByID(ctx context.Context, id string) (*domain.Milestone, error)
	ListByAgreement(ctx context.Context, agreementID string) ([]*domain.Milestone, error)
	UpdateStatus(ctx context.Context, id string, status domain.MilestoneStatus) error
	// AppendDeliverable pushes a deliverable reference onto the milestone.
	AppendDeliverable(ctx context.Context, id string, d domain.Deliverable) error
}

// MilestoneService defines use-case operations for milestones.
type MilestoneService interface {
	Create(ctx context.Context, input CreateMilestoneInput) (*domain.Milestone, error)
	Get(ctx context.Context, id string) (*domain.Milestone, error)
	ListByAgreement(ctx context.Context, agreementID string) ([]*domain.Milestone, error)
	UpdateStatus(ctx context.Context, input UpdateMilestoneStatusInput) (*domain.Milestone, error)
	AddDeliverable(ctx context.Context, milestoneID, fileName, actorID string) (*domain.Milestone, error)
}
