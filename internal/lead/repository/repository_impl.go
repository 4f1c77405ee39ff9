package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/leadhub/leadhub/internal/lead/domain"
	"github.com/leadhub/leadhub/internal/rbac"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, lead *domain.Lead) error {
	return db.WithContext(ctx).Create(lead).Error
}

func (r *repo) Save(ctx context.Context, db *gorm.DB, lead *domain.Lead) error {
	return db.WithContext(ctx).Save(lead).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, lead *domain.Lead) error {
	return db.WithContext(ctx).Delete(lead).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, filter rbac.Filter, id snowflake.ID) (*domain.Lead, error) {
	var lead domain.Lead
	stmt := filter.Apply(db.WithContext(ctx).Model(&domain.Lead{}))
	err := stmt.Where("id = ?", id).First(&lead).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &lead, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter rbac.Filter) ([]domain.Lead, error) {
	var leads []domain.Lead
	stmt := filter.Apply(db.WithContext(ctx).Model(&domain.Lead{}))
	err := stmt.Order("created_at desc, id desc").Find(&leads).Error
	if err != nil {
		return nil, err
	}
	return leads, nil
}

func (r *repo) CountByOrg(ctx context.Context, db *gorm.DB, orgID snowflake.ID, createdAfter *time.Time) (int64, error) {
	var count int64
	stmt := db.WithContext(ctx).Model(&domain.Lead{}).Where("org_id = ?", orgID)
	if createdAfter != nil {
		stmt = stmt.Where("created_at >= ?", *createdAfter)
	}
	err := stmt.Count(&count).Error
	return count, err
}
