package rbac

import (
	"errors"

	"github.com/bwmarrin/snowflake"
)

var (
	ErrUnknownResource = errors.New("unknown_resource")
	ErrUnknownAction   = errors.New("unknown_action")
	ErrDuplicateGrant  = errors.New("duplicate_grant")

	// ErrUnauthenticated means no actor could be resolved; it always
	// precedes any other check. ErrForbidden means the actor resolved
	// but a gate denied the action. The two are surfaced distinctly and
	// never downgraded into one another.
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
)

// Actor is the authenticated principal every layer operates on. It is a
// snapshot taken at login: role, organization and grants do not change
// for the lifetime of the session, so a permission edit only reaches
// sessions established after the edit.
type Actor struct {
	ID    snowflake.ID
	Email string
	Name  string
	Role  Role
	// OrgID is zero for administrators, who sit above organizations.
	OrgID  snowflake.ID
	Grants []Grant
}

// Authorize decides whether the actor may perform action on resource.
// A nil actor is denied. Administrators are allowed unconditionally,
// regardless of stored grants; everyone else needs a stored grant for the
// resource whose action set contains the action. Pure and synchronous:
// no I/O, no transient failures.
func Authorize(actor *Actor, resource Resource, action Action) bool {
	if actor == nil {
		return false
	}
	if actor.Role == RoleAdministrator {
		return true
	}
	for _, grant := range actor.Grants {
		if grant.Resource == resource {
			return grant.Allows(action)
		}
	}
	return false
}

// Gate returns nil when the actor may perform action on resource, and
// the taxonomy error otherwise. Services call it before every operation.
func Gate(actor *Actor, resource Resource, action Action) error {
	if actor == nil {
		return ErrUnauthenticated
	}
	if !Authorize(actor, resource, action) {
		return ErrForbidden
	}
	return nil
}
