// Package migration keeps the schema in sync on startup. AutoMigrate is used
// instead of versioned SQL files so the same binary can run against sqlite,
// mysql and postgres.
package migration

import (
	authdomain "github.com/smallbiznis/billora/internal/auth/domain"
	invoicedomain "github.com/smallbiznis/billora/internal/invoice/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(Run),
)

func Run(conn *gorm.DB) error {
	return conn.AutoMigrate(
		&authdomain.User{},
		&authdomain.Session{},
		&invoicedomain.Invoice{},
	)
}
