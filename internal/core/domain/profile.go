package domain

import (
	"errors"
	"time"
)

var ErrProfileNotFound = errors.New("profile not found")
var ErrProfileExists = errors.New("profile already exists")

// CreatorProfile holds creator-specific attributes, 1:1 with a User via
// a unique user_id index.
type CreatorProfile struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	UserID      string    `json:"user_id" bson:"user_id"`
	DisplayName string    `json:"display_name" bson:"display_name"`
	Niche       string    `json:"niche" bson:"niche"`
	Platforms   []string  `json:"platforms" bson:"platforms"`
	Rate        float64   `json:"rate" bson:"rate"`
	Bio         string    `json:"bio,omitempty" bson:"bio,omitempty"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

// AgencyProfile holds agency-specific attributes, 1:1 with a User.
type AgencyProfile struct {
	ID         string    `json:"id" bson:"_id,omitempty"`
	UserID     string    `json:"user_id" bson:"user_id"`
	AgencyName string    `json:"agency_name" bson:"agency_name"`
	Website    string    `json:"website,omitempty" bson:"website,omitempty"`
	TeamSize   int       `json:"team_size" bson:"team_size"`
	RosterSize int       `json:"roster_size" bson:"roster_size"`
	UpdatedAt  time.Time `json:"updated_at" bson:"updated_at"`
}
