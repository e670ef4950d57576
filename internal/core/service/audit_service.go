package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/collabhub/collab-platform/internal/api/metrics"
	"github.com/collabhub/collab-platform/internal/core/domain"
	"github.com/collabhub/collab-platform/internal/core/ports"
)

// AuditService records immutable audit facts and triggers the notification
// fan-out derived from them.
type AuditService struct {
	repo     ports.AuditRepository
	notifier ports.Notifier
	log      zerolog.Logger
}

func NewAuditService(repo ports.AuditRepository, notifier ports.Notifier, log zerolog.Logger) *AuditService {
	return &AuditService{repo: repo, notifier: notifier, log: log}
}

// Record appends the audit record, then synchronously fans out
// notifications. The log write is durable: a fan-out failure propagates to
// the caller but never rolls the record back. Callers must not read a
// Record error as "no audit trail was written".
func (s *AuditService) Record(ctx context.Context, fact ports.AuditFact) error {
	entry := &domain.AuditLog{
		ActorType:  fact.ActorType,
		ActorID:    fact.ActorID,
		Action:     fact.Action,
		EntityType: fact.EntityType,
		EntityID:   fact.EntityID,
		Metadata:   fact.Metadata,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.repo.Insert(ctx, entry); err != nil {
		metrics.AuditErrorsTotal.WithLabelValues("log_write").Inc()
		return fmt.Errorf("audit record: %w", err)
	}
	metrics.AuditRecordsTotal.WithLabelValues(fact.Action).Inc()

	if err := s.notifier.NotifyFromAudit(ctx, fact); err != nil {
		metrics.AuditErrorsTotal.WithLabelValues("fan_out").Inc()
		s.log.Error().Err(err).
			Str("action", fact.Action).
			Str("entity_id", fact.EntityID).
			Msg("notification fan-out failed after audit write")
		return fmt.Errorf("audit fan-out: %w", err)
	}

	return nil
}

// History returns the audit trail for one entity, oldest first.
func (s *AuditService) History(ctx context.Context, entityType, entityID string) ([]*domain.AuditLog, error) {
	return s.repo.ListByEntity(ctx, entityType, entityID)
}
