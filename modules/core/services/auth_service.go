package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/docesofia/storefront/modules/core/domain/aggregates/user"
	"github.com/docesofia/storefront/modules/core/domain/entities/session"
	"github.com/docesofia/storefront/pkg/serrors"
)

type AuthService struct {
	users           user.Repository
	sessions        session.Repository
	sessionDuration time.Duration
}

func NewAuthService(users user.Repository, sessions session.Repository, sessionDuration time.Duration) *AuthService {
	return &AuthService{
		users:           users,
		sessions:        sessions,
		sessionDuration: sessionDuration,
	}
}

// Login verifies credentials and opens a new session. Unknown emails and
// wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*user.User, *session.Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, nil, serrors.NewFieldRequired("email")
	}
	if password == "" {
		return nil, nil, serrors.NewFieldRequired("password")
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, nil, serrors.NewUnauthorized()
	}
	if !u.CheckPassword(password) {
		return nil, nil, serrors.NewUnauthorized()
	}

	sess := &session.Session{
		Token:     uuid.NewString(),
		UserID:    u.ID,
		ExpiresAt: time.Now().Add(s.sessionDuration),
	}
	if err := s.sessions.Create(ctx, sess); err != nil {
		return nil, nil, err
	}
	return u, sess, nil
}

func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.DeleteByToken(ctx, token)
}

// UserBySessionToken resolves the user behind a session cookie. Expired
// sessions behave exactly like absent ones.
func (s *AuthService) UserBySessionToken(ctx context.Context, token string) (*user.User, error) {
	sess, err := s.sessions.GetByToken(ctx, token)
	if err != nil {
		return nil, serrors.NewUnauthorized()
	}
	if sess.Expired() {
		return nil, serrors.NewUnauthorized()
	}
	return s.users.GetByID(ctx, sess.UserID)
}

// Reauthenticate re-verifies the current user's password before a sensitive
// operation.
func (s *AuthService) Reauthenticate(ctx context.Context, u *user.User, password string) error {
	if !u.CheckPassword(password) {
		return serrors.NewUnauthorized()
	}
	return nil
}
