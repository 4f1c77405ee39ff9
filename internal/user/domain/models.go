// Package domain contains persistence models for the user service.
package domain

import (
	"encoding/json"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/leadhub/leadhub/internal/rbac"
	"gorm.io/datatypes"
)

// User is a persisted principal. OrgID is required unless the role is
// administrator; Permissions holds the stored grant list consulted by
// every authorization check after creation.
type User struct {
	ID           snowflake.ID   `gorm:"primaryKey" json:"id"`
	Email        string         `gorm:"type:text;not null;uniqueIndex" json:"email"`
	PasswordHash string         `gorm:"column:password_hash;type:text;not null" json:"-"`
	Name         string         `gorm:"type:text;not null" json:"name"`
	Role         rbac.Role      `gorm:"type:text;not null" json:"role"`
	OrgID        snowflake.ID   `gorm:"column:org_id;index" json:"organization_id,omitempty"`
	ParentID     snowflake.ID   `gorm:"column:parent_id" json:"parent_id,omitempty"`
	Permissions  datatypes.JSON `gorm:"not null;default:'[]'" json:"permissions"`
	IsActive     bool           `gorm:"column:is_active;not null;default:true" json:"is_active"`
	CreatedAt    time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (User) TableName() string { return "users" }

// Grants decodes the stored permission list. A corrupt column decodes as
// no grants, which denies everything rather than failing open.
func (u *User) Grants() []rbac.Grant {
	if len(u.Permissions) == 0 {
		return nil
	}
	var grants []rbac.Grant
	if err := json.Unmarshal(u.Permissions, &grants); err != nil {
		return nil
	}
	return grants
}

// SetGrants stores the grant list, normalized so empty action sets are
// never persisted.
func (u *User) SetGrants(grants []rbac.Grant) error {
	normalized := rbac.NormalizeGrants(grants)
	raw, err := json.Marshal(normalized)
	if err != nil {
		return err
	}
	u.Permissions = raw
	return nil
}
