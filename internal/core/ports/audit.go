package ports

import (
	"context"

	"github.com/collabhub/collab-platform/internal/core/domain"
)

// AuditFact describes one audited action. It is the input to both the audit
// log write and the notification fan-out.
type AuditFact struct {
	ActorType  domain.ActorType
	ActorID    string // optional: empty for system actors
	Action     string
	EntityType string
	EntityID   string
	Metadata   map[string]string // optional
}

// AuditRepository appends immutable audit records.
type AuditRepository interface {
	Insert(ctx context.Context, log *domain.AuditLog) error
	// ListByEntity returns records for one entity, oldest first.
	ListByEntity(ctx context.Context, entityType, entityID string) ([]*domain.AuditLog, error)
}

// AuditRecorder is the two-step pipeline: durable log write, then
// synchronous notification fan-out. The log write surviving a fan-out
// failure is part of the contract.
type AuditRecorder interface {
	Record(ctx context.Context, fact AuditFact) error
}

// AuditReader exposes the audit trail for one entity.
type AuditReader interface {
	History(ctx context.Context, entityType, entityID string) ([]*domain.AuditLog, error)
}

// Notifier derives zero or more notifications from an audited fact.
type Notifier interface {
	NotifyFromAudit(ctx context.Context, fact AuditFact) error
}
