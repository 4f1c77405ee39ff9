package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type SessionRepository interface {
	CreateSession(ctx context.Context, db *gorm.DB, session *Session) error
	FindByTokenHash(ctx context.Context, db *gorm.DB, tokenHash string) (*Session, error)
	RevokeSession(ctx context.Context, db *gorm.DB, id snowflake.ID, at time.Time) error
	UpdateLastSeen(ctx context.Context, db *gorm.DB, id snowflake.ID, at time.Time) error
}
