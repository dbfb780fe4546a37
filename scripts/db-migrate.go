package main

import (
	"github.com/catalog-admin/config"
	"github.com/catalog-admin/database"
	"github.com/catalog-admin/logging"
)

// Applies the catalog schema without starting the API:
//
//	DB_DRIVER=postgres DATABASE_URL=postgres://... go run ./scripts/db-migrate.go
func main() {
	config.LoadEnv()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("invalid configuration")
	}
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	db, err := database.Connect(cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer func() {
		_ = database.Close(db)
	}()

	if err := database.Migrate(db); err != nil {
		logging.Fatal().Err(err).Msg("migration failed")
	}

	logging.Info().Str("driver", cfg.DBDriver).Msg("database migration completed successfully")
}
