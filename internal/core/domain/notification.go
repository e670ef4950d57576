package domain

import "time"

// Notification is addressed to one user+role. It is only ever created as a
// downstream effect of an audited domain event, never directly by a client.
type Notification struct {
	ID         string    `json:"id" bson:"_id,omitempty"`
	UserID     string    `json:"user_id" bson:"user_id"`
	Role       Role      `json:"role" bson:"role"`
	Title      string    `json:"title" bson:"title"`
	Message    string    `json:"message" bson:"message"`
	EntityType string    `json:"entity_type,omitempty" bson:"entity_type,omitempty"`
	EntityID   string    `json:"entity_id,omitempty" bson:"entity_id,omitempty"`
	Read       bool      `json:"read" bson:"read"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
}
