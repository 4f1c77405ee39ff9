package rbac

// Resource is a protected noun.
type Resource string

const (
	ResourceLeads        Resource = "leads"
	ResourceUsers        Resource = "users"
	ResourceOrganization Resource = "organization"
)

// Action is a protected verb scoped to a resource.
type Action string

const (
	ActionView              Action = "view"
	ActionCreate            Action = "create"
	ActionUpdate            Action = "update"
	ActionDelete            Action = "delete"
	ActionAssign            Action = "assign"
	ActionManagePermissions Action = "manage_permissions"
	ActionSettings          Action = "settings"
)

// resourceActions is the closed action vocabulary per resource. Grants
// naming anything outside this table are rejected at the boundary.
var resourceActions = map[Resource][]Action{
	ResourceLeads:        {ActionView, ActionCreate, ActionUpdate, ActionDelete, ActionAssign},
	ResourceUsers:        {ActionView, ActionCreate, ActionUpdate, ActionDelete, ActionManagePermissions},
	ResourceOrganization: {ActionView, ActionUpdate, ActionSettings},
}

// Grant pairs a resource with the set of actions allowed on it.
type Grant struct {
	Resource Resource `json:"resource"`
	Actions  []Action `json:"actions"`
}

// Allows reports whether the grant covers the action.
func (g Grant) Allows(action Action) bool {
	for _, a := range g.Actions {
		if a == action {
			return true
		}
	}
	return false
}

// ValidResource reports whether the resource is part of the closed set.
func ValidResource(r Resource) bool {
	_, ok := resourceActions[r]
	return ok
}

// ValidAction reports whether the action exists in the vocabulary of the
// given resource.
func ValidAction(r Resource, a Action) bool {
	for _, candidate := range resourceActions[r] {
		if candidate == a {
			return true
		}
	}
	return false
}

// ValidateGrants rejects grants naming unknown resources or actions and
// grants repeating a resource already seen.
func ValidateGrants(grants []Grant) error {
	seen := make(map[Resource]bool, len(grants))
	for _, g := range grants {
		if !ValidResource(g.Resource) {
			return ErrUnknownResource
		}
		if seen[g.Resource] {
			return ErrDuplicateGrant
		}
		seen[g.Resource] = true
		for _, a := range g.Actions {
			if !ValidAction(g.Resource, a) {
				return ErrUnknownAction
			}
		}
	}
	return nil
}

// NormalizeGrants collapses the stored form: a grant whose action set is
// empty is dropped rather than kept as an empty row, so "no grant" and
// "grant with no actions" are the same stored state. Action sets are
// de-duplicated, input order is preserved.
func NormalizeGrants(grants []Grant) []Grant {
	out := make([]Grant, 0, len(grants))
	for _, g := range grants {
		actions := make([]Action, 0, len(g.Actions))
		seen := make(map[Action]bool, len(g.Actions))
		for _, a := range g.Actions {
			if seen[a] {
				continue
			}
			seen[a] = true
			actions = append(actions, a)
		}
		if len(actions) == 0 {
			continue
		}
		out = append(out, Grant{Resource: g.Resource, Actions: actions})
	}
	return out
}

// DefaultGrants returns the baseline grant set for a role. The table only
// seeds a user's stored grants at creation time; authorization afterwards
// reads the stored grants, which an administrator may have edited.
func DefaultGrants(role Role) []Grant {
	switch role {
	case RoleAdministrator:
		return []Grant{
			{Resource: ResourceUsers, Actions: []Action{ActionView, ActionCreate, ActionUpdate, ActionDelete, ActionManagePermissions}},
			{Resource: ResourceOrganization, Actions: []Action{ActionView, ActionUpdate, ActionSettings}},
			{Resource: ResourceLeads, Actions: []Action{ActionView, ActionCreate, ActionUpdate, ActionDelete, ActionAssign}},
		}
	case RoleSuperAdmin:
		return []Grant{
			{Resource: ResourceUsers, Actions: []Action{ActionView, ActionCreate, ActionUpdate}},
			{Resource: ResourceOrganization, Actions: []Action{ActionView, ActionUpdate}},
			{Resource: ResourceLeads, Actions: []Action{ActionView, ActionCreate, ActionUpdate, ActionDelete, ActionAssign}},
		}
	case RoleSubAdmin:
		return []Grant{
			{Resource: ResourceUsers, Actions: []Action{ActionView, ActionCreate}},
			{Resource: ResourceLeads, Actions: []Action{ActionView, ActionCreate, ActionUpdate, ActionAssign}},
		}
	case RoleUser:
		return []Grant{
			{Resource: ResourceLeads, Actions: []Action{ActionView, ActionCreate, ActionUpdate}},
		}
	default:
		return nil
	}
}
