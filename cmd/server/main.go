// Package main initializes and starts the subscriber panel backend,
// setting up configuration, logging, the database pool, repositories,
// services, handlers and the HTTP server.
package main

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	nethttp "net/http"

	"go.uber.org/zap"

	"github.com/atinyakov/radclients/internal/config"
	"github.com/atinyakov/radclients/internal/db"
	"github.com/atinyakov/radclients/internal/logger"
	"github.com/atinyakov/radclients/internal/metrics"
	"github.com/atinyakov/radclients/internal/repository"
	"github.com/atinyakov/radclients/internal/server/handler/http"
	"github.com/atinyakov/radclients/internal/service"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

const shutdownTimeout = 5 * time.Second

func main() {
	// Parse command-line, config file and environment configuration.
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init(options.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	zapLogger := log.Log

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize PostgreSQL connection and schema.
	postgresDB, err := db.InitPostgres(ctx, options.DSN(), options.MaxOpenConns)
	if err != nil {
		zapLogger.Fatal("cannot init database", zap.Error(err))
	}
	defer postgresDB.Close()

	reg := metrics.New()

	// Remove radcheck rows left without a client.
	if options.CleanupInterval > 0 {
		db.StartOrphanCleaner(ctx, postgresDB, options.CleanupInterval, zapLogger, reg.OrphansRemoved)
	}

	// Initialize repositories and business-logic services.
	repos := repository.NewPostgres(postgresDB)
	clientService := service.NewClientService(repos, reg)
	zoneService := service.NewZoneService(repos)
	authService := service.NewAuthService(repos)

	// Create HTTP handlers.
	clientHandler := &http.ClientHandler{ClientService: clientService, Logger: zapLogger}
	zoneHandler := &http.ZoneHandler{ZoneService: zoneService, Logger: zapLogger}
	authHandler := &http.AuthHandler{AuthService: authService, Logger: zapLogger}
	static := http.NewStaticHandler(options.StaticDir)

	// Build the router with middleware and routes.
	router := http.NewRouter(clientHandler, zoneHandler, authHandler, static, reg, zapLogger)

	server := &nethttp.Server{
		Addr:              options.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	idle := make(chan struct{})
	go func() {
		defer close(idle)
		<-ctx.Done()
		zapLogger.Info("shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			zapLogger.Error("graceful shutdown failed", zap.Error(err))
		}
	}()

	zapLogger.Info("starting HTTP server",
		zap.String("addr", options.Addr),
		zap.String("static_dir", options.StaticDir),
	)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
	<-idle
	zapLogger.Info("server stopped")
}
