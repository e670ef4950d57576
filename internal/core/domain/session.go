package domain

import (
	"errors"
	"time"
)

var ErrUnauthenticated = errors.New("not authenticated")
var ErrForbidden = errors.New("access forbidden")
var ErrSessionNotFound = errors.New("session not found")

// Session is a server-side login record keyed by an opaque token. The token
// travels in a cookie; everything else stays on this side.
type Session struct {
	Token     string    `json:"token" bson:"token"`
	UserID    string    `json:"user_id" bson:"user_id"`
	Role      Role      `json:"role" bson:"role"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// Identity is the resolved acting user for a request. Role here comes from
// the session record, never from a client-cached value.
type Identity struct {
	UserID string
	Role   Role
}
