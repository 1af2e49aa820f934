package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"

	"github.com/charmbracelet/log"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
)

//go:embed migrations/*.sql
var embeddedMigrations embed.FS

// InitDB opens the database and runs the migrations.
// With an empty primaryUrl it opens a local SQLite file (":memory:" works for tests),
// otherwise it connects to the remote libSQL (Turso) database.
// migrationsDir overrides the migrations embedded in the binary when set.
func InitDB(dbPath string, primaryUrl string, authToken string, migrationsDir string) (*sql.DB, func(), error) {
	var (
		db      *sql.DB
		err     error
		dialect goose.Dialect
	)
	if primaryUrl == "" {
		log.Info("Initializing local-only SQLite database", "path", dbPath)
		db, err = sql.Open("sqlite3", dbPath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open local database: %w", err)
		}
		// SQLite has a single writer, and every connection to ":memory:" is a separate database.
		db.SetMaxOpenConns(1)
		dialect = goose.DialectSQLite3
	} else {
		log.Info("Initializing Turso database", "url", primaryUrl)
		db, err = sql.Open("libsql", primaryUrl+"?authToken="+authToken)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to open db %s: %s", primaryUrl, err)
			return nil, nil, fmt.Errorf("failed to open db %s: %w", primaryUrl, err)
		}
		dialect = goose.DialectTurso
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := migrate(db, dialect, migrationsDir); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	teardown := func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close database", "error", err)
		}
	}
	return db, teardown, nil
}

func migrate(db *sql.DB, dialect goose.Dialect, migrationsDir string) error {
	if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		log.Error("Error enabling foreign keys:", "error", err)
		return err
	}

	var migrations fs.FS
	if migrationsDir != "" {
		migrations = os.DirFS(migrationsDir)
	} else {
		sub, err := fs.Sub(embeddedMigrations, "migrations")
		if err != nil {
			return err
		}
		migrations = sub
	}

	provider, err := goose.NewProvider(dialect, db, migrations)
	if err != nil {
		return err
	}
	results, err := provider.Up(context.Background())
	if err != nil {
		return err
	}
	for _, r := range results {
		log.Info("Applied migration", "version", r.Source.Version, "path", r.Source.Path, "duration_ms", r.Duration.Milliseconds())
	}
	log.Info("Database initialized successfully")
	return nil
}
