package persistence

import (
	"context"

	"github.com/docesofia/storefront/modules/core/domain/entities/session"
	"github.com/docesofia/storefront/pkg/composables"
	"github.com/docesofia/storefront/pkg/serrors"
)

type SessionRepository struct{}

func NewSessionRepository() session.Repository {
	return &SessionRepository{}
}

func (r *SessionRepository) Create(ctx context.Context, s *session.Session) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `
INSERT INTO sessions (token, user_id, expires_at)
VALUES ($1, $2, $3)
`, s.Token, s.UserID, s.ExpiresAt)
	return serrors.FromPg(err, "session")
}

func (r *SessionRepository) GetByToken(ctx context.Context, token string) (*session.Session, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	var s session.Session
	err = tx.QueryRow(ctx, `
SELECT token, user_id, expires_at, created_at
FROM sessions
WHERE token = $1
`, token).Scan(&s.Token, &s.UserID, &s.ExpiresAt, &s.CreatedAt)
	if err != nil {
		return nil, serrors.FromPg(err, "session")
	}
	return &s, nil
}

func (r *SessionRepository) DeleteByToken(ctx context.Context, token string) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, `DELETE FROM sessions WHERE token = $1`, token)
	return serrors.FromPg(err, "session")
}

func (r *SessionRepository) DeleteExpired(ctx context.Context) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, `DELETE FROM sessions WHERE expires_at < now()`)
	return serrors.FromPg(err, "session")
}
