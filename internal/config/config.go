package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

// Load reads configuration from environment variables and .env file.
func Load() Config {
	err := godotenv.Load()
	if err != nil {
		log.Info("No .env file found, reading from environment variables")
	}

	cfg, err := FromEnv(os.LookupEnv)
	if err != nil {
		log.Fatalf("Error: %s", err)
	}
	return cfg
}

// FromEnv builds a Config from lookup, applying defaults for optional values.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	var missing []string
	// A helper function to get a required env var.
	getEnv := func(key string) string {
		if value, ok := lookup(key); ok && value != "" {
			return value
		}
		missing = append(missing, key)
		return ""
	}
	getEnvOr := func(key, fallback string) string {
		if value, ok := lookup(key); ok && value != "" {
			return value
		}
		return fallback
	}

	cfg := Config{
		Port:          getEnvOr("PORT", "3001"),
		Backend:       strings.ToLower(getEnvOr("STORE_BACKEND", BackendFile)),
		DataFile:      getEnvOr("DATA_FILE", "db.json"),
		DBName:        getEnvOr("DB_NAME", "torneios.db"),
		MigrationsDir: getEnvOr("MIGRATIONS_DIR", ""),
		Turso: TursoConfig{
			PrimaryURL: getEnvOr("TURSO_PRIMARY_URL", ""),
			AuthToken:  getEnvOr("TURSO_AUTH_TOKEN", ""),
		},
		Mongo: MongoConfig{
			URI:      getEnvOr("MONGO_URI", ""),
			Database: getEnvOr("MONGO_DATABASE", "torneios"),
		},
		Auth: AuthConfig{
			Key:    getEnv("AUTH_KEY"),
			Secret: getEnv("AUTH_SECRET"),
		},
		PubSub: PubSubConfig{
			ProjectID: getEnvOr("PUBSUB_PROJECT", ""),
			Topic:     getEnvOr("PUBSUB_TOPIC", "torneios-changes"),
		},
		Log: LogConfig{
			Level:  getEnvOr("LOG_LEVEL", "info"),
			Format: getEnvOr("LOG_FORMAT", "json"),
			File:   getEnvOr("LOG_FILE", ""),
		},
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	switch cfg.Backend {
	case BackendFile, BackendSQL:
	case BackendMongo:
		if cfg.Mongo.URI == "" {
			return Config{}, fmt.Errorf("MONGO_URI is required when STORE_BACKEND is %q", BackendMongo)
		}
	default:
		return Config{}, fmt.Errorf("unknown STORE_BACKEND %q", cfg.Backend)
	}

	perSec, err := strconv.ParseFloat(getEnvOr("LOGIN_RATE_PER_SEC", "5"), 64)
	if err != nil || perSec <= 0 {
		return Config{}, fmt.Errorf("invalid LOGIN_RATE_PER_SEC: %q", getEnvOr("LOGIN_RATE_PER_SEC", ""))
	}
	burst, err := strconv.Atoi(getEnvOr("LOGIN_RATE_BURST", "10"))
	if err != nil || burst <= 0 {
		return Config{}, fmt.Errorf("invalid LOGIN_RATE_BURST: %q", getEnvOr("LOGIN_RATE_BURST", ""))
	}
	trustProxy, err := strconv.ParseBool(getEnvOr("TRUST_PROXY", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid TRUST_PROXY: %w", err)
	}
	cfg.LoginRate = RateConfig{PerSecond: perSec, Burst: burst, TrustProxy: trustProxy}

	cleanup, err := strconv.ParseBool(getEnvOr("CLEANUP_GLOBAL_PLAYER_INDEX", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid CLEANUP_GLOBAL_PLAYER_INDEX: %w", err)
	}
	cfg.CleanupGlobalPlayerIndex = cleanup

	return cfg, nil
}
