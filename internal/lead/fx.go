package lead

import (
	"github.com/leadhub/leadhub/internal/lead/repository"
	"github.com/leadhub/leadhub/internal/lead/service"
	"go.uber.org/fx"
)

var Module = fx.Module("lead.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
