package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/collabhub/collab-platform/internal/core/domain"
	"github.com/collabhub/collab-platform/internal/core/ports"
)

// MilestoneService implements milestone use cases. Mutations are audited,
// which in turn drives the notification fan-out.
type MilestoneService struct {
	repo    ports.MilestoneRepository
	auditor ports.AuditRecorder
	log     zerolog.Logger
}

func NewMilestoneService(repo ports.MilestoneRepository, auditor ports.AuditRecorder, log zerolog.Logger) *MilestoneService {
	return &MilestoneService{repo: repo, auditor: auditor, log: log}
}

func (s *MilestoneService) Create(ctx context.Context, input ports.CreateMilestoneInput) (*domain.Milestone, error) {
	now := time.Now().UTC()
	m := &domain.Milestone{
		AgreementID:  input.AgreementID,
		CreatorID:    input.CreatorID,
		BrandID:      input.BrandID,
		Title:        input.Title,
		Amount:       input.Amount,
		Status:       domain.MilestonePending,
		DueDate:      input.DueDate,
		Deliverables: []domain.Deliverable{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, m); err != nil {
		s.log.Error().Err(err).Str("agreement_id", input.AgreementID).Msg("failed to create milestone")
		return nil, err
	}

	err := s.auditor.Record(ctx, ports.AuditFact{
		ActorType:  domain.ActorUser,
		ActorID:    input.BrandID,
		Action:     domain.ActionMilestoneCreated,
		EntityType: "milestone",
		EntityID:   m.ID,
		Metadata: map[string]string{
			"title":      m.Title,
			"creator_id": m.CreatorID,
		},
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("milestone_id", m.ID).Str("agreement_id", m.AgreementID).Msg("milestone created")
	return m, nil
}

func (s *MilestoneService) Get(ctx context.Context, id string) (*domain.Milestone, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *MilestoneService) ListByAgreement(ctx context.Context, agreementID string) ([]*domain.Milestone, error) {
	return s.repo.ListByAgreement(ctx, agreementID)
}

// UpdateStatus validates ownership and the forward-only state machine
// before persisting, then records the transition for fan-out. Ownership is
// re-derived from the stored record on every call: the actor must be one of
// the milestone's two parties, whatever role the request arrived with.
func (s *MilestoneService) UpdateStatus(ctx context.Context, input ports.UpdateMilestoneStatusInput) (*domain.Milestone, error) {
	m, err := s.repo.FindByID(ctx, input.MilestoneID)
	if err != nil {
		return nil, err
	}

	if input.ActorID != m.BrandID && input.ActorID != m.CreatorID {
		return nil, domain.ErrForbidden
	}

	if !m.Status.CanTransitionTo(input.Status) {
		return nil, fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, m.Status, input.Status)
	}

	if err := s.repo.UpdateStatus(ctx, m.ID, input.Status); err != nil {
		return nil, err
	}
	m.Status = input.Status

	err = s.auditor.Record(ctx, ports.AuditFact{
		ActorType:  domain.ActorUser,
		ActorID:    input.ActorID,
		Action:     domain.ActionMilestoneStatus,
		EntityType: "milestone",
		EntityID:   m.ID,
		Metadata: map[string]string{
			"title":      m.Title,
			"status":     string(input.Status),
			"creator_id": m.CreatorID,
			"brand_id":   m.BrandID,
		},
	})
	if err != nil {
		return nil, err
	}

	return m, nil
}

// AddDeliverable attaches a file reference to the milestone. The file itself
// lives under the uploads root; only its name is stored here. Only the
// milestone's own creator may attach deliverables, checked against the
// stored record rather than anything the client sent.
func (s *MilestoneService) AddDeliverable(ctx context.Context, milestoneID, fileName, actorID string) (*domain.Milestone, error) {
	m, err := s.repo.FindByID(ctx, milestoneID)
	if err != nil {
		return nil, err
	}

	if actorID != m.CreatorID {
		return nil, domain.ErrForbidden
	}

	d := domain.Deliverable{FileName: fileName, UploadedAt: time.Now().UTC()}
	if err := s.repo.AppendDeliverable(ctx, m.ID, d); err != nil {
		return nil, err
	}
	m.Deliverables = append(m.Deliverables, d)

	err = s.auditor.Record(ctx, ports.AuditFact{
		ActorType:  domain.ActorUser,
		ActorID:    actorID,
		Action:     domain.ActionDeliverableAdded,
		EntityType: "milestone",
		EntityID:   m.ID,
		Metadata: map[string]string{
			"file_name": fileName,
			"brand_id":  m.BrandID,
		},
	})
	if err != nil {
		return nil, err
	}

	return m, nil
}
