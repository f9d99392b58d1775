package auth

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/odyssey-erp/supplydesk/internal/rbac"
	"github.com/odyssey-erp/supplydesk/internal/shared"
)

// UserStore looks up accounts by lower-cased username. Implementations
// return shared.ErrNotFound for unknown names.
type UserStore interface {
	Lookup(ctx context.Context, username string) (User, error)
}

// Credential is one row of the static credential table.
type Credential struct {
	Username string
	Password string
	Role     string
}

// ParseCredentials reads "name:password:role" entries.
func ParseCredentials(entries []string) ([]Credential, error) {
	creds := make([]Credential, 0, len(entries))
	for _, entry := range entries {
		parts := strings.SplitN(strings.TrimSpace(entry), ":", 3)
		if len(parts) != 3 || parts[0] == "" || parts[1] == "" {
			return nil, fmt.Errorf("auth: malformed credential entry %q", entry)
		}
		role := strings.ToLower(strings.TrimSpace(parts[2]))
		if !rbac.ValidRole(role) {
			return nil, fmt.Errorf("auth: unknown role %q for %s", parts[2], parts[0])
		}
		creds = append(creds, Credential{Username: parts[0], Password: parts[1], Role: role})
	}
	return creds, nil
}

// StaticStore serves a fixed, in-memory credential table.
type StaticStore struct {
	users map[string]User
}

// NewStaticStore hashes the given credentials into a lookup table.
func NewStaticStore(creds []Credential) (*StaticStore, error) {
	return newStaticStore(creds, bcrypt.DefaultCost)
}

func newStaticStore(creds []Credential, cost int) (*StaticStore, error) {
	users := make(map[string]User, len(creds))
	for _, c := range creds {
		hash, err := bcrypt.GenerateFromPassword([]byte(c.Password), cost)
		if err != nil {
			return nil, fmt.Errorf("auth: hash password for %s: %w", c.Username, err)
		}
		name := strings.ToLower(c.Username)
		users[name] = User{Username: name, PasswordHash: string(hash), Role: c.Role, IsActive: true}
	}
	return &StaticStore{users: users}, nil
}

// Lookup implements UserStore.
func (s *StaticStore) Lookup(ctx context.Context, username string) (User, error) {
	user, ok := s.users[strings.ToLower(username)]
	if !ok {
		return User{}, shared.ErrNotFound
	}
	return user, nil
}

var _ UserStore = (*StaticStore)(nil)
