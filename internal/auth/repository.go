package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/odyssey-erp/supplydesk/internal/shared"
)

// PGStore implements UserStore over the app_users table.
type PGStore struct {
	pool *pgxpool.Pool
}

// NewPGStore constructs a PostgreSQL-backed user store.
func NewPGStore(pool *pgxpool.Pool) *PGStore {
	return &PGStore{pool: pool}
}

// Lookup fetches a user by case-insensitive username.
func (s *PGStore) Lookup(ctx context.Context, username string) (User, error) {
	const query = `SELECT username, password_hash, role, is_active FROM app_users WHERE lower(username) = $1`
	var user User
	err := s.pool.QueryRow(ctx, query, strings.ToLower(username)).
		Scan(&user.Username, &user.PasswordHash, &user.Role, &user.IsActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, shared.ErrNotFound
		}
		return User{}, err
	}
	return user, nil
}

var _ UserStore = (*PGStore)(nil)
