// Package rbac contains the role hierarchy, permission grants and
// tenant-scoping rules that gate every resource operation.
package rbac

// Role is a user's tier in the management hierarchy.
type Role string

const (
	// RoleAdministrator is the platform-wide role. It has no home
	// organization and bypasses stored permission grants entirely.
	RoleAdministrator Role = "administrator"
	RoleSuperAdmin    Role = "super_admin"
	RoleSubAdmin      Role = "sub_admin"
	RoleUser          Role = "user"
)

// hierarchy orders roles by privilege, most privileged first.
var hierarchy = []Role{RoleAdministrator, RoleSuperAdmin, RoleSubAdmin, RoleUser}

func roleIndex(r Role) int {
	for i, candidate := range hierarchy {
		if candidate == r {
			return i
		}
	}
	return -1
}

// Valid reports whether r is one of the four known roles.
func (r Role) Valid() bool {
	return roleIndex(r) >= 0
}

// CanManage reports whether an actor with role actor may create or manage
// a user with role target. Management requires strictly higher privilege:
// peers and superiors are always rejected, so no one can mint another
// administrator. Unknown roles compare as unmanageable in both positions.
func CanManage(actor, target Role) bool {
	actorIdx := roleIndex(actor)
	targetIdx := roleIndex(target)
	if actorIdx < 0 || targetIdx < 0 {
		return false
	}
	return actorIdx < targetIdx
}
