package main

import (
	"github.com/khatahq/khata/internal/config"
	"github.com/khatahq/khata/internal/migration"
	"github.com/khatahq/khata/internal/observability"
	"github.com/khatahq/khata/internal/server"
	"github.com/khatahq/khata/pkg/db"
	"go.uber.org/fx"
)

func main() {
	fx.New(
		config.Module,
		observability.Module,
		db.Module,
		migration.Module,
		server.Module,
	).Run()
}
