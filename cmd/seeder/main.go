package main

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/mauv0809/torneios/internal/collection"
	"github.com/mauv0809/torneios/internal/config"
	"github.com/mauv0809/torneios/internal/database"
	"github.com/mauv0809/torneios/internal/tree"
)

// counters maps each id counter to the collection whose ids it hands out.
var counters = map[string]string{
	"proximoId/jogadores":  "jogadores",
	"proximoId/confrontos": "confrontos",
}

// Simplified config loading for the script
func loadConfig() config.Config {
	err := godotenv.Load()
	if err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}
	getEnvOr := func(key, fallback string) string {
		if value, ok := os.LookupEnv(key); ok && value != "" {
			return value
		}
		return fallback
	}
	return config.Config{
		Backend:       getEnvOr("STORE_BACKEND", config.BackendFile),
		DataFile:      getEnvOr("DATA_FILE", "db.json"),
		DBName:        getEnvOr("DB_NAME", "torneios.db"),
		MigrationsDir: getEnvOr("MIGRATIONS_DIR", ""),
		Turso: config.TursoConfig{
			PrimaryURL: getEnvOr("TURSO_PRIMARY_URL", ""),
			AuthToken:  getEnvOr("TURSO_AUTH_TOKEN", ""),
		},
		Mongo: config.MongoConfig{
			URI:      getEnvOr("MONGO_URI", ""),
			Database: getEnvOr("MONGO_DATABASE", "torneios"),
		},
	}
}

// The seeder copies a JSON export (one object, one entry per top-level
// collection) into the configured store, then moves the id counters past the
// highest imported numeric id.
func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: seeder <export.json>")
	}
	log.Info("Starting store seeder...", "source", os.Args[1])
	cfg := loadConfig()

	raw, err := os.ReadFile(os.Args[1])
	if err != nil {
		log.Fatalf("Failed to read export: %s", err)
	}
	var export map[string]any
	if err := json.Unmarshal(raw, &export); err != nil {
		log.Fatalf("Failed to decode export: %s", err)
	}

	ctx := context.Background()
	backend, teardown, err := database.OpenBackend(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open store: %s", err)
	}
	defer teardown()
	store := tree.New(backend)

	startTime := time.Now()
	for _, key := range collection.SortedKeys(export) {
		if err := store.Set(ctx, key, export[key]); err != nil {
			log.Fatalf("Failed to import %s: %s", key, err)
		}
		log.Info("Imported collection", "key", key)
	}

	for counterPath, coll := range counters {
		if err := raiseCounter(ctx, store, counterPath, collection.HighestID(export[coll])); err != nil {
			log.Fatalf("Failed to update counter %s: %s", counterPath, err)
		}
	}

	log.Info("Successfully imported export.", "collections", len(export), "duration", time.Since(startTime))
}

// raiseCounter makes sure the counter at counterPath is at least highest,
// so new ids never collide with imported ones.
func raiseCounter(ctx context.Context, store tree.Store, counterPath string, highest int64) error {
	_, err := store.Transaction(ctx, counterPath, func(current any) (any, error) {
		if n, ok := current.(float64); ok && int64(n) >= highest {
			return current, nil
		}
		return highest, nil
	})
	if err == nil {
		log.Info("Counter updated", "path", counterPath, "min", highest)
	}
	return err
}
