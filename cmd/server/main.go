/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the workforce engine server.
  Handles configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load configuration (.env + environment variables)
  2. Configure structured logging
  3. Initialize SQLite store
  4. Build the engine and API handler
  5. Start server with graceful shutdown

CONFIGURATION (environment, see config/config.go):
  PORT          HTTP server port (default: 8080)
  DB_PATH       SQLite database path (default: workforce.db)
                Use ":memory:" for an in-memory database
  LOG_LEVEL     logrus level (default: info)
  LOG_JSON      JSON log output (default: false)
  APPROVER_IDS  Comma-separated recipients for approbation alerts

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Close database connection
  4. Exit

SEE ALSO:
  - api/server.go: Router configuration
  - workforce/engine.go: Domain orchestration
  - store/sqlite/sqlite.go: Database implementation
*/
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/fieldops/workforce-engine/api"
	"github.com/fieldops/workforce-engine/config"
	"github.com/fieldops/workforce-engine/store/sqlite"
	"github.com/fieldops/workforce-engine/workforce"
)

func main() {
	cfg := config.Load()

	// Logging
	log := logrus.New()
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	if cfg.LogJSON {
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	// Initialize store
	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize database")
	}
	defer store.Close()

	// Build engine and handler
	engine := workforce.NewEngine(store, &workforce.LogNotifier{Log: log}, log)
	engine.ApproverIDs = cfg.ApproverIDs
	handler := api.NewHandler(engine, log)
	router := api.NewRouter(handler)

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.WithField("addr", server.Addr).Info("Server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("Server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.WithError(err).Fatal("Server forced to shutdown")
	}

	log.Info("Server stopped")
}
