package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/leadhub/leadhub/internal/rbac"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, user *User) error
	Save(ctx context.Context, db *gorm.DB, user *User) error
	FindByID(ctx context.Context, db *gorm.DB, filter rbac.Filter, id snowflake.ID) (*User, error)
	FindActiveByEmail(ctx context.Context, db *gorm.DB, email string) (*User, error)
	List(ctx context.Context, db *gorm.DB, filter rbac.Filter) ([]User, error)
	CountByOrg(ctx context.Context, db *gorm.DB, orgID snowflake.ID, activeOnly bool) (int64, error)
	CountActive(ctx context.Context, db *gorm.DB, filter rbac.Filter) (int64, error)
}
