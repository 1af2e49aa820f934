package database

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/torneios/internal/config"
	"github.com/mauv0809/torneios/internal/tree"
)

// OpenBackend opens the tree backend selected by cfg.Backend.
// The returned teardown releases it and must be called once the tree is done.
func OpenBackend(ctx context.Context, cfg config.Config) (tree.Backend, func(), error) {
	switch cfg.Backend {
	case config.BackendFile:
		backend, err := tree.OpenFile(cfg.DataFile)
		if err != nil {
			return nil, nil, err
		}
		log.Info("Using JSON file store", "path", cfg.DataFile)
		return backend, closer(backend), nil
	case config.BackendSQL:
		db, teardown, err := InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken, cfg.MigrationsDir)
		if err != nil {
			return nil, nil, err
		}
		return tree.NewSQL(db), teardown, nil
	case config.BackendMongo:
		backend, err := tree.OpenMongo(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
		if err != nil {
			return nil, nil, err
		}
		log.Info("Using MongoDB store", "database", cfg.Mongo.Database)
		return backend, closer(backend), nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}

func closer(b tree.Backend) func() {
	return func() {
		if err := b.Close(); err != nil {
			log.Error("Failed to close store", "error", err)
		}
	}
}
