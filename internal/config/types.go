package config

// Config holds all configuration for the application.
type Config struct {
	Port    string
	Backend string
	// DataFile is the JSON document used by the file backend.
	DataFile      string
	DBName        string
	MigrationsDir string
	Turso         TursoConfig
	Mongo         MongoConfig
	Auth          AuthConfig
	PubSub        PubSubConfig
	Log           LogConfig
	LoginRate     RateConfig
	// CleanupGlobalPlayerIndex also removes jogadores/<id> when a ranking player is deleted.
	CleanupGlobalPlayerIndex bool
}

const (
	BackendFile  = "file"
	BackendSQL   = "sql"
	BackendMongo = "mongo"
)

type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}
type MongoConfig struct {
	URI      string
	Database string
}
type AuthConfig struct {
	Key    string
	Secret string
}
type PubSubConfig struct {
	ProjectID string
	Topic     string
}
type LogConfig struct {
	Level  string
	Format string
	File   string
}
type RateConfig struct {
	PerSecond float64
	Burst     int
	// TrustProxy keys clients by X-Forwarded-For instead of the peer address.
	// Only set it when every request arrives through a proxy that sets the header.
	TrustProxy bool
}
