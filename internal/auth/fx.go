package auth

import (
	"github.com/leadhub/leadhub/internal/auth/repository"
	"github.com/leadhub/leadhub/internal/auth/service"
	"github.com/leadhub/leadhub/internal/auth/session"
	"go.uber.org/fx"
)

var Module = fx.Module("auth.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
	fx.Provide(session.NewManager),
)
