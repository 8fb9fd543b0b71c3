package persistence

import (
	"context"

	"github.com/google/uuid"

	"github.com/docesofia/storefront/modules/core/domain/aggregates/user"
	"github.com/docesofia/storefront/pkg/composables"
	"github.com/docesofia/storefront/pkg/serrors"
)

type UserRepository struct{}

func NewUserRepository() user.Repository {
	return &UserRepository{}
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) (*user.User, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	out := *u
	err = tx.QueryRow(ctx, `
INSERT INTO users (email, password_hash, role)
VALUES ($1, $2, $3)
RETURNING id, created_at
`, u.Email, u.PasswordHash, u.Role).Scan(&out.ID, &out.CreatedAt)
	if err != nil {
		return nil, serrors.FromPg(err, "user")
	}
	return &out, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	var u user.User
	err = tx.QueryRow(ctx, `
SELECT id, email, password_hash, role, created_at
FROM users
WHERE id = $1
`, id).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if err != nil {
		return nil, serrors.FromPg(err, "user")
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	var u user.User
	err = tx.QueryRow(ctx, `
SELECT id, email, password_hash, role, created_at
FROM users
WHERE lower(email) = lower($1)
`, email).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if err != nil {
		return nil, serrors.FromPg(err, "user")
	}
	return &u, nil
}
