package domain

import "time"

// ActorType classifies who performed an audited action.
type ActorType string

const (
	ActorUser   ActorType = "user"
	ActorSystem ActorType = "system"
)

// AuditLog is an append-only fact about an action. Records are never
// updated or deleted; ordering is by creation time.
type AuditLog struct {
	ID         string            `json:"id" bson:"_id,omitempty"`
	ActorType  ActorType         `json:"actor_type" bson:"actor_type"`
	ActorID    string            `json:"actor_id,omitempty" bson:"actor_id,omitempty"`
	Action     string            `json:"action" bson:"action"`
	EntityType string            `json:"entity_type" bson:"entity_type"`
	EntityID   string            `json:"entity_id" bson:"entity_id"`
	Metadata   map[string]string `json:"metadata,omitempty" bson:"metadata,omitempty"`
	CreatedAt  time.Time         `json:"created_at" bson:"created_at"`
}

// Audit action labels. Handlers record these; the notifier maps them to
// recipients.
const (
	ActionMilestoneCreated = "milestone.created"
	ActionMilestoneStatus  = "milestone.status_changed"
	ActionDeliverableAdded = "milestone.deliverable_added"
	ActionPayoutRequested  = "payout.requested"
	ActionPayoutStatus     = "payout.status_changed"
	ActionCreatorSaved     = "creator.saved"
	ActionProfileUpdated   = "profile.updated"
)
