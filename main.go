package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/torneios/internal/config"
	"github.com/mauv0809/torneios/internal/database"
	"github.com/mauv0809/torneios/internal/events"
	server "github.com/mauv0809/torneios/internal/http"
	"github.com/mauv0809/torneios/internal/matchups"
	"github.com/mauv0809/torneios/internal/metrics"
	"github.com/mauv0809/torneios/internal/players"
	"github.com/mauv0809/torneios/internal/rankings"
	"github.com/mauv0809/torneios/internal/students"
	"github.com/mauv0809/torneios/internal/tournaments"
	"github.com/mauv0809/torneios/internal/tree"
	"github.com/mauv0809/torneios/internal/users"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	// Start profiling timer
	startTime := time.Now()
	cfg := config.Load()
	logCloser := config.SetupLogging(cfg.Log)
	defer logCloser.Close()

	ctx := context.Background()
	backend, storeTeardown, err := database.OpenBackend(ctx, cfg)
	storeInitDuration := time.Since(startTime)
	log.Info("Store initialization time recorded", "backend", cfg.Backend, "duration_ms", storeInitDuration.Milliseconds())
	if err != nil {
		log.Fatalf("Failed to initialize store: %s", err)
	}
	defer func() {
		log.Info("Closing store")
		storeTeardown()
	}()

	metricsSvc := metrics.NewService()
	metricsHandler := metrics.NewMetricsHandler()
	store := tree.New(backend, tree.WithObserver(metricsSvc))

	var publisher events.Publisher
	if cfg.PubSub.ProjectID != "" {
		publisher, err = events.New(ctx, cfg.PubSub.ProjectID, cfg.PubSub.Topic)
		if err != nil {
			log.Fatalf("Failed to initialize pubsub: %s", err)
		}
	} else {
		publisher = events.NewLogPublisher()
	}
	defer publisher.Close()

	s := server.NewServer(
		store,
		server.Stores{
			Players:     players.New(store, metricsSvc, publisher),
			Matchups:    matchups.New(store, metricsSvc, publisher),
			Rankings:    rankings.New(store, metricsSvc, publisher, rankings.WithGlobalPlayerCleanup(cfg.CleanupGlobalPlayerIndex)),
			Tournaments: tournaments.New(store, publisher),
			Students:    students.New(store, publisher),
			Users:       users.New(store, publisher, bcrypt.DefaultCost),
		},
		metricsSvc,
		metricsHandler,
		cfg,
	)

	// --- Record startup time ---
	startupDuration := time.Since(startTime)
	metricsSvc.SetStartupTime(startupDuration.Seconds())
	log.Info("Startup time recorded", "duration_ms", startupDuration.Milliseconds())

	// --- Graceful shutdown setup ---
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Channel to listen for errors coming from the server
	serverErrors := make(chan error, 1)

	// Start the server in a goroutine
	go func() {
		log.Info("Server started", "port", cfg.Port, "backend", cfg.Backend)
		serverErrors <- srv.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-shutdown:
		log.Info("Shutdown signal received", "signal", sig)

		// Create a context with a timeout for the shutdown.
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		// Attempt to gracefully shut down the server.
		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Server shutdown failed", "error", err)
		} else {
			log.Info("Server gracefully stopped")
		}
	}

	log.Info("Server process shutting down")
}
