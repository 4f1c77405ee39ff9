package organization

import (
	"github.com/leadhub/leadhub/internal/organization/repository"
	"github.com/leadhub/leadhub/internal/organization/service"
	"go.uber.org/fx"
)

var Module = fx.Module("organization.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
