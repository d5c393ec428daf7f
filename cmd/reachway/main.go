package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/reachway/reachway/internal/config"
	"github.com/reachway/reachway/internal/migration"
	"github.com/reachway/reachway/internal/observability"
	"github.com/reachway/reachway/internal/server"
	"github.com/reachway/reachway/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
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
