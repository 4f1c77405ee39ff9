package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/leadhub/leadhub/internal/organization/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, org *domain.Organization) error {
	return db.WithContext(ctx).Create(org).Error
}

func (r *repo) Save(ctx context.Context, db *gorm.DB, org *domain.Organization) error {
	return db.WithContext(ctx).Save(org).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Organization, error) {
	var org domain.Organization
	err := db.WithContext(ctx).First(&org, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &org, nil
}

func (r *repo) FindByDomain(ctx context.Context, db *gorm.DB, orgDomain string) (*domain.Organization, error) {
	var org domain.Organization
	err := db.WithContext(ctx).First(&org, "domain = ?", strings.ToLower(strings.TrimSpace(orgDomain))).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &org, nil
}
