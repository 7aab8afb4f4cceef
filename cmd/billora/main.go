package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/billora/internal/assist"
	"github.com/smallbiznis/billora/internal/auth"
	"github.com/smallbiznis/billora/internal/auth/session"
	"github.com/smallbiznis/billora/internal/config"
	"github.com/smallbiznis/billora/internal/invoice"
	"github.com/smallbiznis/billora/internal/migration"
	"github.com/smallbiznis/billora/internal/observability"
	"github.com/smallbiznis/billora/internal/server"
	"github.com/smallbiznis/billora/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		migration.Module,

		// Functional domains
		auth.Module,
		session.Module,
		invoice.Module,
		assist.Module,

		// HTTP surface
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
