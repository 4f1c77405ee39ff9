// Package seed bootstraps the default organization and administrator so
// a fresh install is usable immediately.
package seed

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	"github.com/leadhub/leadhub/internal/auth/password"
	organizationdomain "github.com/leadhub/leadhub/internal/organization/domain"
	"github.com/leadhub/leadhub/internal/rbac"
	userdomain "github.com/leadhub/leadhub/internal/user/domain"
	"gorm.io/gorm"
)

const (
	defaultOrgName       = "Main"
	defaultAdminEmail    = "admin@leadhub.local"
	defaultAdminPassword = "changeme123"
	defaultAdminName     = "LeadHub Admin"
	defaultMaxUsers      = 10
)

// EnsureDefaultOrg seeds the default organization. A non-zero id pins
// the row to the configured default organization id.
func EnsureDefaultOrg(db *gorm.DB, id int64) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		_, err := ensureDefaultOrgTx(ctx, tx, node, snowflake.ID(id))
		return err
	})
}

// EnsureDefaultOrgAndAdmin seeds the default organization plus the
// global administrator account. The administrator belongs to no
// organization.
func EnsureDefaultOrgAndAdmin(db *gorm.DB, orgID int64) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := ensureDefaultOrgTx(ctx, tx, node, snowflake.ID(orgID)); err != nil {
			return err
		}

		var admin userdomain.User
		err := tx.WithContext(ctx).
			Where("email = ?", strings.ToLower(defaultAdminEmail)).
			First(&admin).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		hashed, err := password.Hash(defaultAdminPassword)
		if err != nil {
			return err
		}
		now := time.Now().UTC()
		admin = userdomain.User{
			ID:           node.Generate(),
			Email:        strings.ToLower(defaultAdminEmail),
			PasswordHash: hashed,
			Name:         defaultAdminName,
			Role:         rbac.RoleAdministrator,
			IsActive:     true,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := admin.SetGrants(nil); err != nil {
			return err
		}
		return tx.WithContext(ctx).Create(&admin).Error
	})
}

func ensureDefaultOrgTx(ctx context.Context, tx *gorm.DB, node *snowflake.Node, id snowflake.ID) (organizationdomain.Organization, error) {
	orgDomain := slug.Make(defaultOrgName)

	var org organizationdomain.Organization
	err := tx.WithContext(ctx).Where("domain = ?", orgDomain).First(&org).Error
	if err == nil {
		return org, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return org, err
	}

	if id == 0 {
		id = node.Generate()
	}
	now := time.Now().UTC()
	org = organizationdomain.Organization{
		ID:        id,
		Name:      defaultOrgName,
		Domain:    orgDomain,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := org.SetSettings(organizationdomain.Settings{
		AllowUserRegistration: false,
		MaxUsers:              defaultMaxUsers,
		Features:              []string{},
	}); err != nil {
		return org, err
	}
	if err := tx.WithContext(ctx).Create(&org).Error; err != nil {
		return org, err
	}
	return org, nil
}
