package rbac

import "strings"

// Service resolves role permissions from a static grant table.
type Service struct {
	grants map[string]map[string]struct{}
}

// NewService constructs a Service from role → permissions grants.
func NewService(grants map[string][]string) *Service {
	s := &Service{grants: make(map[string]map[string]struct{}, len(grants))}
	for role, perms := range grants {
		set := make(map[string]struct{}, len(perms))
		for _, p := range normalizePermissions(perms) {
			set[p] = struct{}{}
		}
		s.grants[strings.ToLower(role)] = set
	}
	return s
}

// EffectivePermissions lists what role may do. Unknown roles get nothing.
func (s *Service) EffectivePermissions(role string) []string {
	set := s.grants[strings.ToLower(strings.TrimSpace(role))]
	perms := make([]string, 0, len(set))
	for p := range set {
		perms = append(perms, p)
	}
	return perms
}

// Can reports whether role holds perm.
func (s *Service) Can(role, perm string) bool {
	_, ok := s.grants[strings.ToLower(strings.TrimSpace(role))][strings.ToLower(strings.TrimSpace(perm))]
	return ok
}
