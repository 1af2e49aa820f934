package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(values map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv(env(map[string]string{
		"AUTH_KEY":    "admin",
		"AUTH_SECRET": "s3cret",
	}))
	require.NoError(t, err)

	assert.Equal(t, "3001", cfg.Port)
	assert.Equal(t, BackendFile, cfg.Backend)
	assert.Equal(t, "db.json", cfg.DataFile)
	assert.Equal(t, "torneios.db", cfg.DBName)
	assert.Equal(t, "torneios", cfg.Mongo.Database)
	assert.Equal(t, "torneios-changes", cfg.PubSub.Topic)
	assert.Equal(t, 5.0, cfg.LoginRate.PerSecond)
	assert.Equal(t, 10, cfg.LoginRate.Burst)
	assert.False(t, cfg.LoginRate.TrustProxy)
	assert.False(t, cfg.CleanupGlobalPlayerIndex)
	assert.Equal(t, AuthConfig{Key: "admin", Secret: "s3cret"}, cfg.Auth)
}

func TestFromEnvOverrides(t *testing.T) {
	cfg, err := FromEnv(env(map[string]string{
		"AUTH_KEY":                    "admin",
		"AUTH_SECRET":                 "s3cret",
		"PORT":                        "8080",
		"STORE_BACKEND":               "MONGO",
		"MONGO_URI":                   "mongodb://localhost:27017",
		"LOGIN_RATE_PER_SEC":          "0.5",
		"LOGIN_RATE_BURST":            "2",
		"TRUST_PROXY":                 "true",
		"CLEANUP_GLOBAL_PLAYER_INDEX": "true",
	}))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, BackendMongo, cfg.Backend)
	assert.Equal(t, 0.5, cfg.LoginRate.PerSecond)
	assert.Equal(t, 2, cfg.LoginRate.Burst)
	assert.True(t, cfg.LoginRate.TrustProxy)
	assert.True(t, cfg.CleanupGlobalPlayerIndex)
}

func TestFromEnvErrors(t *testing.T) {
	tests := []struct {
		name   string
		values map[string]string
		want   string
	}{
		{"missing credentials", map[string]string{}, "AUTH_KEY, AUTH_SECRET"},
		{"unknown backend", map[string]string{"AUTH_KEY": "k", "AUTH_SECRET": "s", "STORE_BACKEND": "redis"}, "unknown STORE_BACKEND"},
		{"mongo without uri", map[string]string{"AUTH_KEY": "k", "AUTH_SECRET": "s", "STORE_BACKEND": "mongo"}, "MONGO_URI"},
		{"bad rate", map[string]string{"AUTH_KEY": "k", "AUTH_SECRET": "s", "LOGIN_RATE_PER_SEC": "fast"}, "LOGIN_RATE_PER_SEC"},
		{"bad burst", map[string]string{"AUTH_KEY": "k", "AUTH_SECRET": "s", "LOGIN_RATE_BURST": "0"}, "LOGIN_RATE_BURST"},
		{"bad trust proxy flag", map[string]string{"AUTH_KEY": "k", "AUTH_SECRET": "s", "TRUST_PROXY": "sim"}, "TRUST_PROXY"},
		{"bad cleanup flag", map[string]string{"AUTH_KEY": "k", "AUTH_SECRET": "s", "CLEANUP_GLOBAL_PLAYER_INDEX": "maybe"}, "CLEANUP_GLOBAL_PLAYER_INDEX"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromEnv(env(tt.values))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestSetupLogging(t *testing.T) {
	defer log.SetLevel(log.GetLevel())

	closer := SetupLogging(LogConfig{Level: "debug", Format: "text"})
	assert.NoError(t, closer.Close())
	assert.Equal(t, log.DebugLevel, log.GetLevel())

	file := filepath.Join(t.TempDir(), "torneios.log")
	closer = SetupLogging(LogConfig{Level: "nonsense", Format: "json", File: file})
	assert.Equal(t, log.InfoLevel, log.GetLevel())
	assert.FileExists(t, file)
	assert.NoError(t, closer.Close())
	log.SetOutput(os.Stderr)
}
