// Package migration creates the schema on startup so a fresh database
// is usable out of the box for local and self-hosted environments.
package migration

import (
	"errors"

	authdomain "github.com/leadhub/leadhub/internal/auth/domain"
	leaddomain "github.com/leadhub/leadhub/internal/lead/domain"
	organizationdomain "github.com/leadhub/leadhub/internal/organization/domain"
	userdomain "github.com/leadhub/leadhub/internal/user/domain"
	"gorm.io/gorm"
)

func Run(db *gorm.DB) error {
	if db == nil {
		return errors.New("migration database handle is required")
	}
	return db.AutoMigrate(
		&organizationdomain.Organization{},
		&userdomain.User{},
		&leaddomain.Lead{},
		&authdomain.Session{},
	)
}
