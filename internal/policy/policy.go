// Package policy is the single place where management rights are decided.
package policy

import "github.com/sjperalta/debtbook-api/internal/models"

// Principal is the authenticated caller of a request
type Principal struct {
	UserID string
	Email  string
	Role   string
	Locale string
}

// IsAdmin reports whether the principal may enter the admin area
func (p Principal) IsAdmin() bool {
	return models.IsAdminRole(p.Role)
}

// Resource is anything with an owner that may be shared system-wide
type Resource interface {
	Owner() *string
	System() bool
}

// CanManage reports whether principal may edit or delete resource. Users
// manage their own non-system rows; admins manage system rows and anyone's.
func CanManage(principal Principal, resource Resource) bool {
	if principal.UserID == "" || resource == nil {
		return false
	}
	if principal.IsAdmin() {
		return true
	}
	if resource.System() {
		return false
	}
	owner := resource.Owner()
	return owner != nil && *owner == principal.UserID
}

// CanCreateSystem reports whether principal may create shared system rows
func CanCreateSystem(principal Principal) bool {
	return principal.IsAdmin()
}

// CanAssignRole reports whether principal may set role on another user.
// Only god grants or revokes god, and nobody changes their own role.
func CanAssignRole(principal Principal, target models.UserRole, role string) bool {
	if !principal.IsAdmin() || !models.IsValidRole(role) {
		return false
	}
	if target.UserID == principal.UserID {
		return false
	}
	if role == models.RoleGod || target.Role == models.RoleGod {
		return principal.Role == models.RoleGod
	}
	return true
}
