package main

import (
	"github.com/SanguinaInc/playbridge/internal/billing/store"
	"github.com/SanguinaInc/playbridge/internal/clock"
	"github.com/SanguinaInc/playbridge/internal/config"
	"github.com/SanguinaInc/playbridge/internal/observability"
	"github.com/SanguinaInc/playbridge/internal/seed"
	"github.com/SanguinaInc/playbridge/internal/server"
	"github.com/SanguinaInc/playbridge/pkg/db"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		clock.Module,
		db.Module,
		store.Module,
		server.Module,
		fx.Invoke(seed.EnsureCatalog),
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
