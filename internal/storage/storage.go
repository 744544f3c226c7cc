// Package storage opens the persistence backend selected by configuration:
// SQLite or Postgres through GORM, or MongoDB through the document store.
package storage

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/tbourn/farmstand/internal/config"
	"github.com/tbourn/farmstand/internal/docstore"
	"github.com/tbourn/farmstand/internal/http/middleware"
	"github.com/tbourn/farmstand/internal/repo"
	"github.com/tbourn/farmstand/internal/services"
)

// Store is the full persistence surface: farms, products and idempotency
// records.
type Store interface {
	services.FarmStore
	services.ProductStore
	middleware.IdempotencyStore
}

// CloseFunc releases the backend's connections.
type CloseFunc func(context.Context) error

// Open connects to the backend named by cfg.Driver and prepares its schema
// (tables for the SQL drivers, indexes for Mongo). When traced is set, SQL
// queries are recorded as spans.
func Open(ctx context.Context, cfg config.StoreConfig, traced bool) (Store, CloseFunc, error) {
	switch cfg.Driver {
	case config.DriverSQLite, config.DriverPostgres:
		return openSQL(cfg, traced)
	case config.DriverMongo:
		return openMongo(ctx, cfg)
	default:
		return nil, nil, fmt.Errorf("storage: unknown driver %q", cfg.Driver)
	}
}

func openSQL(cfg config.StoreConfig, traced bool) (Store, CloseFunc, error) {
	var (
		db  = repo.OpenSQLite
		dsn = cfg.DBPath
	)
	if cfg.Driver == config.DriverPostgres {
		db, dsn = repo.OpenPostgres, cfg.DatabaseURL
	}
	gdb, err := db(dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("storage: open %s: %w", cfg.Driver, err)
	}
	if traced {
		if err := repo.Instrument(gdb); err != nil {
			log.Warn().Err(err).Msg("gorm tracing plugin not installed")
		}
	}
	if err := repo.AutoMigrate(gdb); err != nil {
		return nil, nil, fmt.Errorf("storage: migrate: %w", err)
	}
	closeFn := func(context.Context) error {
		sqlDB, err := gdb.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return repo.NewStore(gdb), closeFn, nil
}

func openMongo(ctx context.Context, cfg config.StoreConfig) (Store, CloseFunc, error) {
	client, err := docstore.Connect(ctx, cfg.MongoURI, cfg.MongoTimeout)
	if err != nil {
		return nil, nil, fmt.Errorf("storage: %w", err)
	}
	store := docstore.New(client.Database(cfg.MongoDB))
	if err := store.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, nil, fmt.Errorf("storage: indexes: %w", err)
	}
	return store, client.Disconnect, nil
}
