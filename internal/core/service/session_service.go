package service

import (
	"context"
	"errors"

	"github.com/collabhub/collab-platform/internal/core/domain"
	"github.com/collabhub/collab-platform/internal/core/ports"
)

// SessionService resolves opaque session tokens to identities. The role is
// always read back from the stored session record; the client-cached role
// cookie is a UI hint and never consulted here.
type SessionService struct {
	sessions ports.SessionRepository
}

func NewSessionService(sessions ports.SessionRepository) *SessionService {
	return &SessionService{sessions: sessions}
}

func (s *SessionService) Resolve(ctx context.Context, token string) (domain.Identity, error) {
	if token == "" {
		return domain.Identity{}, domain.ErrUnauthenticated
	}

	session, err := s.sessions.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return domain.Identity{}, domain.ErrUnauthenticated
		}
		return domain.Identity{}, err
	}

	return domain.Identity{UserID: session.UserID, Role: session.Role}, nil
}
