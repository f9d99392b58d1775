package rbac

// Roles known to the application.
const (
	RoleAdmin      = "admin"
	RoleSupervisor = "supervisor"
	RoleStaff      = "staff"
)

// Permissions guarding the supply-request surface.
const (
	PermSupplyView   = "supply.view"
	PermSupplyCreate = "supply.create"
	PermSupplyEdit   = "supply.edit"
	PermSupplyDelete = "supply.delete"
	PermSupplyExport = "supply.export"
)

// DefaultGrants is the built-in role table.
var DefaultGrants = map[string][]string{
	RoleAdmin:      {PermSupplyView, PermSupplyCreate, PermSupplyEdit, PermSupplyDelete, PermSupplyExport},
	RoleSupervisor: {PermSupplyView, PermSupplyCreate, PermSupplyEdit, PermSupplyDelete, PermSupplyExport},
	RoleStaff:      {PermSupplyView, PermSupplyCreate},
}

// ValidRole reports whether role appears in the grant table.
func ValidRole(role string) bool {
	_, ok := DefaultGrants[role]
	return ok
}
