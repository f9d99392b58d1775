package auth

import (
	"github.com/odyssey-erp/supplydesk/internal/rbac"
)

// User represents an account the login form can authenticate.
type User struct {
	Username     string
	PasswordHash string
	Role         string
	IsActive     bool
}

// Landing pages per role.
const (
	PathDashboard = "/dashboard"
	PathRequests  = "/requests"
	PathLogin     = "/auth/login"
)

// LandingPath returns where a freshly logged-in user is sent.
func LandingPath(role string) string {
	switch role {
	case rbac.RoleAdmin, rbac.RoleSupervisor:
		return PathDashboard
	case rbac.RoleStaff:
		return PathRequests
	default:
		return PathDashboard
	}
}
