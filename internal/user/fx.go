package user

import (
	"github.com/leadhub/leadhub/internal/user/repository"
	"github.com/leadhub/leadhub/internal/user/service"
	"go.uber.org/fx"
)

var Module = fx.Module("user.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
