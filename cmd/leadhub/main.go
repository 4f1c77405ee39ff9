package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/leadhub/leadhub/internal/config"
	"github.com/leadhub/leadhub/internal/logger"
	"github.com/leadhub/leadhub/internal/migration"
	"github.com/leadhub/leadhub/internal/server"
	"github.com/leadhub/leadhub/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		migration.Module,
		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
