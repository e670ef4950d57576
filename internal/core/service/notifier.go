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

// DedupChecker abstracts the fan-out idempotency store (Redis).
type DedupChecker interface {
	IsDuplicate(ctx context.Context, fact ports.AuditFact) (bool, error)
	Mark(ctx context.Context, fact ports.AuditFact) error
}

// recipient is one (user, role) pair a fact resolves to.
type recipient struct {
	userID string
	role   domain.Role
}

// fanoutRule maps an audit action to its recipients and message templates.
// Recipient ids come from the fact's metadata; a rule with no resolvable
// recipients produces no notifications.
type fanoutRule struct {
	title      string
	message    func(fact ports.AuditFact) string
	recipients func(fact ports.AuditFact) []recipient
}

var fanoutRules = map[string]fanoutRule{
	domain.ActionMilestoneCreated: {
		title:   "New milestone",
		message: func(f ports.AuditFact) string { return "A milestone was added: " + f.Metadata["title"] },
		recipients: func(f ports.AuditFact) []recipient {
			return metaRecipients(f, metaPair{"creator_id", domain.RoleCreator})
		},
	},
	domain.ActionMilestoneStatus: {
		title: "Milestone updated",
		message: func(f ports.AuditFact) string {
			return fmt.Sprintf("Milestone %q moved to %s", f.Metadata["title"], f.Metadata["status"])
		},
		recipients: func(f ports.AuditFact) []recipient {
			return metaRecipients(f,
				metaPair{"creator_id", domain.RoleCreator},
				metaPair{"brand_id", domain.RoleBrand},
			)
		},
	},
	domain.ActionDeliverableAdded: {
		title:   "Deliverable uploaded",
		message: func(f ports.AuditFact) string { return "A deliverable was uploaded: " + f.Metadata["file_name"] },
		recipients: func(f ports.AuditFact) []recipient {
			return metaRecipients(f, metaPair{"brand_id", domain.RoleBrand})
		},
	},
	domain.ActionPayoutRequested: {
		title:   "Payout requested",
		message: func(f ports.AuditFact) string { return "Payout of " + f.Metadata["amount"] + " was requested" },
		recipients: func(f ports.AuditFact) []recipient {
			return metaRecipients(f, metaPair{"creator_id", domain.RoleCreator})
		},
	},
	domain.ActionPayoutStatus: {
		title:   "Payout update",
		message: func(f ports.AuditFact) string { return "Your payout is now " + f.Metadata["status"] },
		recipients: func(f ports.AuditFact) []recipient {
			return metaRecipients(f, metaPair{"creator_id", domain.RoleCreator})
		},
	},
	domain.ActionCreatorSaved: {
		title:   "New follower",
		message: func(f ports.AuditFact) string { return "A brand saved your profile" },
		recipients: func(f ports.AuditFact) []recipient {
			return metaRecipients(f, metaPair{"creator_id", domain.RoleCreator})
		},
	},
}

type metaPair struct {
	key  string
	role domain.Role
}

// metaRecipients pulls recipient user ids out of fact metadata, skipping
// absent keys and the actor (no self-notification).
func metaRecipients(f ports.AuditFact, pairs ...metaPair) []recipient {
	var out []recipient
	for _, p := range pairs {
		id := f.Metadata[p.key]
		if id == "" || id == f.ActorID {
			continue
		}
		out = append(out, recipient{userID: id, role: p.role})
	}
	return out
}

// AuditNotifier maps audited facts to notification records. Delivery is
// at-least-once: the dedup check is a best-effort guard against replays,
// and its failure never blocks the fan-out.
type AuditNotifier struct {
	repo  ports.NotificationRepository
	dedup DedupChecker
	log   zerolog.Logger
}

func NewAuditNotifier(repo ports.NotificationRepository, dedup DedupChecker, log zerolog.Logger) *AuditNotifier {
	return &AuditNotifier{repo: repo, dedup: dedup, log: log}
}

func (n *AuditNotifier) NotifyFromAudit(ctx context.Context, fact ports.AuditFact) error {
	rule, ok := fanoutRules[fact.Action]
	if !ok {
		// Not every audited action notifies anyone.
		return nil
	}

	if n.dedup != nil {
		isDup, err := n.dedup.IsDuplicate(ctx, fact)
		if err != nil {
			n.log.Warn().Err(err).Str("action", fact.Action).Msg("fan-out dedup check failed, delivering anyway")
		} else if isDup {
			metrics.FanoutDedupTotal.WithLabelValues("hit").Inc()
			n.log.Debug().Str("action", fact.Action).Str("entity_id", fact.EntityID).Msg("duplicate fact, fan-out skipped")
			return nil
		} else {
			metrics.FanoutDedupTotal.WithLabelValues("miss").Inc()
		}
	}

	now := time.Now().UTC()
	for _, rcpt := range rule.recipients(fact) {
		notification := &domain.Notification{
			UserID:     rcpt.userID,
			Role:       rcpt.role,
			Title:      rule.title,
			Message:    rule.message(fact),
			EntityType: fact.EntityType,
			EntityID:   fact.EntityID,
			CreatedAt:  now,
		}
		if err := n.repo.Insert(ctx, notification); err != nil {
			return fmt.Errorf("notify %s: %w", rcpt.userID, err)
		}
		metrics.NotificationsCreatedTotal.WithLabelValues(fact.Action).Inc()
	}

	if n.dedup != nil {
		if err := n.dedup.Mark(ctx, fact); err != nil {
			n.log.Warn().Err(err).Str("action", fact.Action).Msg("failed to set fan-out dedup key")
		}
	}

	return nil
}
