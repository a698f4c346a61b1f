package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	corecfg "github.com/still-asking/sapn-generator/internal/core/config"
	"github.com/still-asking/sapn-generator/internal/core/storage"
	"github.com/still-asking/sapn-generator/internal/core/storage/postgres"
	"github.com/still-asking/sapn-generator/internal/core/storage/sqlite"
	"github.com/still-asking/sapn-generator/internal/migrations"
)

// openDB opens the configured database without checking the schema.
func openDB(cfg corecfg.DatabaseConfig) (*sql.DB, error) {
	switch cfg.Type {
	case migrations.Postgres:
		return postgres.Open(cfg.DSN, cfg.MaxOpenConns, cfg.MaxIdleConns)
	case migrations.SQLite:
		return sqlite.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported database type %q", cfg.Type)
	}
}

// openStore opens the database, applies migrations when auto_migrate is set,
// and returns the matching storage adapter.
func openStore(cfg corecfg.DatabaseConfig) (storage.Store, error) {
	db, err := openDB(cfg)
	if err != nil {
		return nil, err
	}

	if err := migrations.RunMigrations(db, cfg.Type, cfg.AutoMigrate); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run database migrations: %w", err)
	}

	var store storage.Store
	switch cfg.Type {
	case migrations.Postgres:
		store, err = postgres.NewAdapterFromDB(db)
	case migrations.SQLite:
		store, err = sqlite.NewAdapterFromDB(db)
	}
	if err != nil {
		db.Close()
		return nil, err
	}

	slog.Info("Storage initialized", "database", cfg.Type)
	return store, nil
}
