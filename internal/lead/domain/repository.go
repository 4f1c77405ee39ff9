package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/leadhub/leadhub/internal/rbac"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, lead *Lead) error
	Save(ctx context.Context, db *gorm.DB, lead *Lead) error
	Delete(ctx context.Context, db *gorm.DB, lead *Lead) error
	FindByID(ctx context.Context, db *gorm.DB, filter rbac.Filter, id snowflake.ID) (*Lead, error)
	List(ctx context.Context, db *gorm.DB, filter rbac.Filter) ([]Lead, error)
	CountByOrg(ctx context.Context, db *gorm.DB, orgID snowflake.ID, createdAfter *time.Time) (int64, error)
}
