// Package domain contains persistence models for the lead service.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Status is a lead's pipeline stage. Transitions are deliberately
// unconstrained: any status may follow any other.
type Status string

const (
	StatusNew       Status = "new"
	StatusContacted Status = "contacted"
	StatusQualified Status = "qualified"
	StatusProposal  Status = "proposal"
	StatusWon       Status = "won"
	StatusLost      Status = "lost"
)

// Statuses lists the closed pipeline vocabulary.
var Statuses = []Status{StatusNew, StatusContacted, StatusQualified, StatusProposal, StatusWon, StatusLost}

// Valid reports whether s is a known pipeline status.
func (s Status) Valid() bool {
	for _, candidate := range Statuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// Lead is a sales prospect. OrgID is fixed at creation to the creator's
// organization and never changes afterwards.
type Lead struct {
	ID         snowflake.ID `gorm:"primaryKey" json:"id"`
	FirstName  string       `gorm:"column:first_name;type:text;not null" json:"first_name"`
	LastName   string       `gorm:"column:last_name;type:text;not null" json:"last_name"`
	Email      string       `gorm:"type:text;not null;index" json:"email"`
	Phone      string       `gorm:"type:text" json:"phone,omitempty"`
	Company    string       `gorm:"type:text" json:"company,omitempty"`
	Status     Status       `gorm:"type:text;not null;default:'new';index:idx_leads_org_status,priority:2" json:"status"`
	Source     string       `gorm:"type:text;not null" json:"source"`
	Value      int64        `gorm:"not null;default:0" json:"value"`
	Notes      string       `gorm:"type:text" json:"notes,omitempty"`
	AssignedTo snowflake.ID `gorm:"column:assigned_to;not null;index" json:"assigned_to"`
	OrgID      snowflake.ID `gorm:"column:org_id;not null;index:idx_leads_org_status,priority:1" json:"organization_id"`
	CreatedBy  snowflake.ID `gorm:"column:created_by;not null" json:"created_by"`
	CreatedAt  time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt  time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Lead) TableName() string { return "leads" }
