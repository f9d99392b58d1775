package auth

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/odyssey-erp/supplydesk/internal/shared"
)

// maxPasswordBytes is the bcrypt input limit; longer passwords would match
// on their first 72 bytes only.
const maxPasswordBytes = 72

// Service wraps authentication business rules.
type Service struct {
	store UserStore
}

// NewService constructs a new Service.
func NewService(store UserStore) *Service {
	return &Service{store: store}
}

// Authenticate validates username/password credentials. Unknown users,
// inactive users and wrong passwords are indistinguishable to the caller;
// only store failures other than not-found surface as their own error.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*User, error) {
	user, err := s.store.Lookup(ctx, strings.ToLower(strings.TrimSpace(username)))
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrInvalidCredentials
		}
		return nil, shared.Internal("lookup user", err)
	}
	if !user.IsActive || len(password) > maxPasswordBytes {
		return nil, shared.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, shared.ErrInvalidCredentials
	}
	return &user, nil
}
