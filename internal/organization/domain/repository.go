package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, org *Organization) error
	Save(ctx context.Context, db *gorm.DB, org *Organization) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Organization, error)
	FindByDomain(ctx context.Context, db *gorm.DB, domain string) (*Organization, error)
}
