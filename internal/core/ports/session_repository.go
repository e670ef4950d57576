package ports

import (
	"context"

	"github.com/collabhub/collab-platform/internal/core/domain"
)

// SessionRepository stores server-side login sessions keyed by opaque token.
type SessionRepository interface {
	Create(ctx context.Context, session *domain.Session) error
	FindByToken(ctx context.Context, token string) (*domain.Session, error)
	// Delete removes the session for token. Deleting a token that does not
	// exist is not an error.
	Delete(ctx context.Context, token string) error
}
