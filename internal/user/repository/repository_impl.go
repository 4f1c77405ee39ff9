package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/leadhub/leadhub/internal/rbac"
	"github.com/leadhub/leadhub/internal/user/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, user *domain.User) error {
	return db.WithContext(ctx).Create(user).Error
}

func (r *repo) Save(ctx context.Context, db *gorm.DB, user *domain.User) error {
	return db.WithContext(ctx).Save(user).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, filter rbac.Filter, id snowflake.ID) (*domain.User, error) {
	var user domain.User
	stmt := filter.Apply(db.WithContext(ctx).Model(&domain.User{}))
	err := stmt.Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *repo) FindActiveByEmail(ctx context.Context, db *gorm.DB, email string) (*domain.User, error) {
	var user domain.User
	err := db.WithContext(ctx).
		Where("email = ? AND is_active = ?", email, true).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter rbac.Filter) ([]domain.User, error) {
	var users []domain.User
	stmt := filter.Apply(db.WithContext(ctx).Model(&domain.User{}))
	err := stmt.Order("created_at desc, id desc").Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (r *repo) CountActive(ctx context.Context, db *gorm.DB, filter rbac.Filter) (int64, error) {
	var count int64
	stmt := filter.Apply(db.WithContext(ctx).Model(&domain.User{}))
	err := stmt.Where("is_active = ?", true).Count(&count).Error
	return count, err
}

func (r *repo) CountByOrg(ctx context.Context, db *gorm.DB, orgID snowflake.ID, activeOnly bool) (int64, error) {
	var count int64
	stmt := db.WithContext(ctx).Model(&domain.User{}).Where("org_id = ?", orgID)
	if activeOnly {
		stmt = stmt.Where("is_active = ?", true)
	}
	err := stmt.Count(&count).Error
	return count, err
}
