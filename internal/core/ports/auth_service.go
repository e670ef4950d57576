package ports

import (
	"context"

	"github.com/collabhub/collab-platform/internal/core/domain"
)

// AuthService implements registration, login and logout. Login returns the
// opaque session token the transport layer sets as a cookie.
type AuthService interface {
	Register(ctx context.Context, email, password string, role domain.Role) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	Logout(ctx context.Context, token string) error
}

// SessionResolver turns a session token into the acting identity.
// Returns domain.ErrUnauthenticated when the token is absent or unknown.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (domain.Identity, error)
}
