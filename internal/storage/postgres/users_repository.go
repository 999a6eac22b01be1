package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/gatherly/server/internal/domain/users"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var _ users.Repository = (*UserRepository)(nil)

func (r *UserRepository) Create(ctx context.Context, params users.CreateParams) (*users.User, error) {
	row := r.queryer().QueryRow(ctx, `
INSERT INTO users (username, email, password_hash)
VALUES ($1, $2, $3)
RETURNING id, username, email, password_hash, created_at
`,
		params.Username, params.Email, params.PasswordHash)

	user, err := scanUser(row)
	if err != nil {
		if isUniqueViolation(err, "users_username_key") {
			return nil, users.ErrUsernameTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*users.User, error) {
	row := r.queryer().QueryRow(ctx, `
SELECT id, username, email, password_hash, created_at FROM users WHERE id = $1
`, id)

	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, users.ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*users.User, error) {
	row := r.queryer().QueryRow(ctx, `
SELECT id, username, email, password_hash, created_at FROM users WHERE username = $1
`, username)

	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, users.ErrNotFound
		}
		return nil, fmt.Errorf("get user by username: %w", err)
	}
	return user, nil
}

func (r *UserRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	row := r.queryer().QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, id)

	var exists bool
	if err := row.Scan(&exists); err != nil {
		return false, fmt.Errorf("check user: %w", err)
	}
	return exists, nil
}

func scanUser(row eventScanner) (*users.User, error) {
	var user users.User
	if err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) queryer() queryer {
	return pick(r.tx, r.pool)
}
