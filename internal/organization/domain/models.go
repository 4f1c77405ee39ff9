// Package domain contains persistence models for the organization
// service.
package domain

import (
	"encoding/json"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Settings is the organization's settings bag. Only these fields exist;
// unknown keys submitted by clients are dropped, never stored.
type Settings struct {
	AllowUserRegistration bool     `json:"allow_user_registration"`
	MaxUsers              int      `json:"max_users"`
	Features              []string `json:"features"`
}

// Organization is a tenant: the unit of data partitioning for users and
// leads.
type Organization struct {
	ID           snowflake.ID   `gorm:"primaryKey" json:"id"`
	Name         string         `gorm:"type:text;not null" json:"name"`
	Domain       string         `gorm:"type:text;not null;uniqueIndex:ux_organizations_domain" json:"domain"`
	SuperAdminID snowflake.ID   `gorm:"column:super_admin_id" json:"super_admin_id"`
	Settings     datatypes.JSON `gorm:"not null;default:'{}'" json:"settings"`
	CreatedAt    time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Organization) TableName() string { return "organizations" }

// ParsedSettings decodes the settings column. Missing or corrupt data
// decodes as the zero settings.
func (o *Organization) ParsedSettings() Settings {
	var settings Settings
	if len(o.Settings) > 0 {
		_ = json.Unmarshal(o.Settings, &settings)
	}
	return settings
}

// SetSettings stores the settings bag.
func (o *Organization) SetSettings(settings Settings) error {
	raw, err := json.Marshal(settings)
	if err != nil {
		return err
	}
	o.Settings = raw
	return nil
}
