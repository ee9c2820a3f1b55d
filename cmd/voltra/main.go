package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/voltra/internal/clock"
	"github.com/smallbiznis/voltra/internal/config"
	"github.com/smallbiznis/voltra/internal/migration"
	"github.com/smallbiznis/voltra/internal/observability"
	"github.com/smallbiznis/voltra/internal/runlock"
	"github.com/smallbiznis/voltra/internal/scheduler"
	"github.com/smallbiznis/voltra/internal/server"
	"github.com/smallbiznis/voltra/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		runlock.Module,
		migration.Module,
		server.Module,
		scheduler.Module,
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
