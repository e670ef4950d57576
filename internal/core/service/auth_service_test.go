package service

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/collabhub/collab-platform/internal/core/domain"
)

type stubUserRepo struct {
	byEmail map[string]*domain.User
	nextID  int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byEmail: make(map[string]*domain.User)}
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, ok := r.byEmail[user.Email]; ok {
		return nil, domain.ErrUserExists
	}
	r.nextID++
	user.ID = "u_" + string(rune('0'+r.nextID))
	clone := *user
	r.byEmail[user.Email] = &clone
	return user, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range r.byEmail {
		if u.ID == id {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

type stubSessionRepo struct {
	byToken map[string]*domain.Session
	deleted []string
}

func newStubSessionRepo() *stubSessionRepo {
	return &stubSessionRepo{byToken: make(map[string]*domain.Session)}
}

func (r *stubSessionRepo) Create(_ context.Context, session *domain.Session) error {
	clone := *session
	r.byToken[session.Token] = &clone
	return nil
}

func (r *stubSessionRepo) FindByToken(_ context.Context, token string) (*domain.Session, error) {
	s, ok := r.byToken[token]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	clone := *s
	return &clone, nil
}

func (r *stubSessionRepo) Delete(_ context.Context, token string) error {
	delete(r.byToken, token)
	r.deleted = append(r.deleted, token)
	return nil
}

func TestAuthService_Register_HashesPassword(t *testing.T) {
	users := newStubUserRepo()
	svc := NewAuthService(users, newStubSessionRepo())

	user, err := svc.Register(context.Background(), "  Brand@Example.COM ", "hunter22", domain.RoleBrand)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if user.Email != "brand@example.com" {
		t.Errorf("email = %q, want normalized lowercase", user.Email)
	}
	if user.PasswordHash == "hunter22" {
		t.Fatal("password stored in plaintext")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("hunter22")) != nil {
		t.Error("stored hash does not verify against the original password")
	}
}

func TestAuthService_Register_RejectsUnknownRole(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), newStubSessionRepo())

	_, err := svc.Register(context.Background(), "a@b.com", "pw", domain.Role("admin"))
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	users := newStubUserRepo()
	svc := NewAuthService(users, newStubSessionRepo())

	if _, err := svc.Register(context.Background(), "a@b.com", "pw", domain.RoleCreator); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	_, err := svc.Register(context.Background(), "A@B.com", "other", domain.RoleBrand)
	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Login_OpensSession(t *testing.T) {
	users := newStubUserRepo()
	sessions := newStubSessionRepo()
	svc := NewAuthService(users, sessions)

	if _, err := svc.Register(context.Background(), "c@d.com", "secret", domain.RoleCreator); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	token, user, err := svc.Login(context.Background(), "c@d.com", "secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty session token")
	}

	stored, ok := sessions.byToken[token]
	if !ok {
		t.Fatal("session not persisted under returned token")
	}
	if stored.UserID != user.ID {
		t.Errorf("session user = %q, want %q", stored.UserID, user.ID)
	}
	if stored.Role != domain.RoleCreator {
		t.Errorf("session role = %q, want %q", stored.Role, domain.RoleCreator)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	users := newStubUserRepo()
	sessions := newStubSessionRepo()
	svc := NewAuthService(users, sessions)

	if _, err := svc.Register(context.Background(), "c@d.com", "secret", domain.RoleCreator); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	_, _, err := svc.Login(context.Background(), "c@d.com", "wrong")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if len(sessions.byToken) != 0 {
		t.Error("no session may be created on failed login")
	}
}

func TestAuthService_Logout_DeletesSession(t *testing.T) {
	users := newStubUserRepo()
	sessions := newStubSessionRepo()
	svc := NewAuthService(users, sessions)

	if _, err := svc.Register(context.Background(), "c@d.com", "secret", domain.RoleCreator); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	token, _, err := svc.Login(context.Background(), "c@d.com", "secret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if err := svc.Logout(context.Background(), token); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := sessions.byToken[token]; ok {
		t.Error("session still present after logout")
	}

	// Logging out twice is harmless.
	if err := svc.Logout(context.Background(), token); err != nil {
		t.Fatalf("second logout errored: %v", err)
	}
}
