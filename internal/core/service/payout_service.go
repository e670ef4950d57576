package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/collabhub/collab-platform/internal/core/domain"
	"github.com/collabhub/collab-platform/internal/core/ports"
)

// PayoutEnqueuer hands a requested payout to the background processor.
type PayoutEnqueuer interface {
	Enqueue(task ports.PayoutTask)
}

// PayoutService implements payout requests and listing. Processing of a
// requested payout happens asynchronously via the dispatcher.
type PayoutService struct {
	repo    ports.PayoutRepository
	auditor ports.AuditRecorder
	queue   PayoutEnqueuer
	log     zerolog.Logger
}

func NewPayoutService(repo ports.PayoutRepository, auditor ports.AuditRecorder, queue PayoutEnqueuer, log zerolog.Logger) *PayoutService {
	return &PayoutService{repo: repo, auditor: auditor, queue: queue, log: log}
}

func (s *PayoutService) Request(ctx context.Context, creatorID string, amount float64) (*domain.Payout, error) {
	if amount <= 0 {
		return nil, domain.ErrInvalidPayoutAmount
	}

	p := &domain.Payout{
		CreatorID:   creatorID,
		Amount:      amount,
		Status:      domain.PayoutRequested,
		RequestedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	err := s.auditor.Record(ctx, ports.AuditFact{
		ActorType:  domain.ActorUser,
		ActorID:    creatorID,
		Action:     domain.ActionPayoutRequested,
		EntityType: "payout",
		EntityID:   p.ID,
		Metadata: map[string]string{
			"amount":     strconv.FormatFloat(amount, 'f', 2, 64),
			"creator_id": creatorID,
		},
	})
	if err != nil {
		return nil, err
	}

	if s.queue != nil {
		s.queue.Enqueue(ports.PayoutTask{PayoutID: p.ID, CreatorID: creatorID})
	}

	s.log.Info().Str("payout_id", p.ID).Str("creator_id", creatorID).Msg("payout requested")
	return p, nil
}

func (s *PayoutService) ListByCreator(ctx context.Context, creatorID string) ([]*domain.Payout, error) {
	return s.repo.ListByCreator(ctx, creatorID)
}

// PayoutProcessorService advances a requested payout to processing and then
// to completed, auditing each transition. One task maps to one payout.
type PayoutProcessorService struct {
	repo    ports.PayoutRepository
	auditor ports.AuditRecorder
	log     zerolog.Logger
}

func NewPayoutProcessor(repo ports.PayoutRepository, auditor ports.AuditRecorder, log zerolog.Logger) *PayoutProcessorService {
	return &PayoutProcessorService{repo: repo, auditor: auditor, log: log}
}

func (s *PayoutProcessorService) Process(ctx context.Context, task ports.PayoutTask) error {
	p, err := s.repo.FindByID(ctx, task.PayoutID)
	if err != nil {
		return fmt.Errorf("process payout: %w", err)
	}

	for _, next := range []domain.PayoutStatus{domain.PayoutProcessing, domain.PayoutCompleted} {
		if !p.Status.CanTransitionTo(next) {
			return fmt.Errorf("process payout: %w (from %s to %s)", domain.ErrInvalidTransition, p.Status, next)
		}
		if err := s.repo.UpdateStatus(ctx, p.ID, next); err != nil {
			return fmt.Errorf("process payout: update status: %w", err)
		}
		p.Status = next

		err := s.auditor.Record(ctx, ports.AuditFact{
			ActorType:  domain.ActorSystem,
			Action:     domain.ActionPayoutStatus,
			EntityType: "payout",
			EntityID:   p.ID,
			Metadata: map[string]string{
				"status":     string(next),
				"creator_id": p.CreatorID,
			},
		})
		if err != nil {
			// The status change is already durable. Log and keep going so a
			// notification hiccup cannot wedge the payout mid-flight.
			s.log.Warn().Err(err).Str("payout_id", p.ID).Msg("payout audit failed")
		}
	}

	s.log.Info().Str("payout_id", p.ID).Str("creator_id", p.CreatorID).Msg("payout completed")
	return nil
}
