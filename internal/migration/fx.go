package migration

import (
	"github.com/leadhub/leadhub/internal/config"
	"github.com/leadhub/leadhub/internal/seed"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if err := Run(conn); err != nil {
			return err
		}
		return seed.EnsureDefaultOrgAndAdmin(conn, cfg.DefaultOrgID)
	}),
)
