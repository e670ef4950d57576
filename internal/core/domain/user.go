package domain

import (
	"errors"
	"time"
)

// Role identifies which side of a collaboration a user acts on.
type Role string

const (
	RoleCreator Role = "creator"
	RoleBrand   Role = "brand"
	RoleAgency  Role = "agency"
)

// ValidRole reports whether r is one of the known platform roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleCreator, RoleBrand, RoleAgency:
		return true
	}
	return false
}

var ErrUserExists = errors.New("user already exists")
var ErrUserNotFound = errors.New("user not found")
var ErrInvalidCredentials = errors.New("invalid credentials")

// User models an account on the platform. A user owns at most one profile
// of the type matching its role.
type User struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	Email        string    `json:"email" bson:"email"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	Role         Role      `json:"role" bson:"role"`
	Verified     bool      `json:"verified" bson:"verified"`
	Onboarded    bool      `json:"onboarded" bson:"onboarded"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}
