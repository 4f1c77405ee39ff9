package rbac

import (
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// Filter is the tenant-visibility constraint derived from an actor. Zero
// fields mean unconstrained. OwnerID is only ever set together with
// OrgID: the owner narrowing composes with the organization narrowing,
// it never replaces it.
type Filter struct {
	OrgID   snowflake.ID
	OwnerID snowflake.ID
}

// Apply adds the filter's constraints to a gorm statement. Lead rows
// carry the owner in assigned_to; users and organizations have no owner
// dimension, so OwnerID is only produced for leads.
func (f Filter) Apply(stmt *gorm.DB) *gorm.DB {
	if f.OrgID != 0 {
		stmt = stmt.Where("org_id = ?", f.OrgID)
	}
	if f.OwnerID != 0 {
		stmt = stmt.Where("assigned_to = ?", f.OwnerID)
	}
	return stmt
}

// ScopeFilter derives the data-visibility filter for an actor and
// resource kind. Administrators see across all organizations. Everyone
// else is confined to their own organization, and basic users are
// additionally confined to leads assigned to them.
//
// Administrator self-service views of organization data have no home
// organization to scope to; that fallback is an explicit configured
// default resolved by the organization service, not something this
// function invents.
func ScopeFilter(actor *Actor, kind Resource) Filter {
	if actor == nil {
		return Filter{}
	}
	if actor.Role == RoleAdministrator {
		return Filter{}
	}
	filter := Filter{OrgID: actor.OrgID}
	if kind == ResourceLeads && actor.Role == RoleUser {
		filter.OwnerID = actor.ID
	}
	return filter
}
