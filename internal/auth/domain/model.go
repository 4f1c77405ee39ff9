// Package domain contains core types for the auth service.
package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/leadhub/leadhub/internal/rbac"
	"gorm.io/datatypes"
)

// Session is a persisted login session. Role, org and grants are a
// snapshot of the user at login time: authorization for the session's
// lifetime reads this snapshot, so permission edits only reach sessions
// established after the edit.
type Session struct {
	ID               snowflake.ID   `gorm:"primaryKey"`
	UserID           snowflake.ID   `gorm:"column:user_id;not null;index"`
	SessionTokenHash string         `gorm:"column:session_token_hash;type:text;not null;uniqueIndex"`
	Role             string         `gorm:"column:role;type:text;not null"`
	OrgID            snowflake.ID   `gorm:"column:org_id"`
	Grants           datatypes.JSON `gorm:"column:grants;not null;default:'[]'"`
	UserAgent        string         `gorm:"column:user_agent;type:text"`
	IPAddress        string         `gorm:"column:ip_address;type:text"`
	ExpiresAt        time.Time      `gorm:"column:expires_at;not null;index"`
	RevokedAt        *time.Time     `gorm:"column:revoked_at"`
	CreatedAt        time.Time      `gorm:"column:created_at;not null;default:CURRENT_TIMESTAMP"`
	LastSeenAt       time.Time      `gorm:"column:last_seen_at;not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Session) TableName() string { return "sessions" }

type LoginRequest struct {
	Email     string
	Password  string
	UserAgent string
	IPAddress string
}

type LoginResult struct {
	RawToken  string
	ExpiresAt time.Time
	Actor     *rbac.Actor
}

type Service interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResult, error)
	// Authenticate resolves a session token to the actor snapshot taken
	// at login, or fails with one of the session errors.
	Authenticate(ctx context.Context, rawToken string) (*rbac.Actor, error)
	Logout(ctx context.Context, rawToken string) error
}
