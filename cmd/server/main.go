package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/nekogravitycat/flight-schedule-grid/internal/app"
	"github.com/nekogravitycat/flight-schedule-grid/internal/config"
	"github.com/nekogravitycat/flight-schedule-grid/internal/db"
)

func main() {
	// For receiving Ctrl+C / SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.IsProduction)
	defer func() { _ = logger.Sync() }()

	gridCfg, err := cfg.Grid()
	if err != nil {
		logger.Fatal("invalid grid configuration", zap.Error(err))
	}

	// Connect DB
	pool, err := db.NewPool(ctx, cfg.DBDSN)
	if err != nil {
		logger.Fatal("failed to connect to db", zap.Error(err))
	}
	defer pool.Close()

	if cfg.RunMigrations {
		migrator, err := db.NewMigrator(pool, logger.Named("migrate"))
		if err != nil {
			logger.Fatal("failed to create migrator", zap.Error(err))
		}
		if err := migrator.Up(ctx); err != nil {
			logger.Fatal("failed to apply migrations", zap.Error(err))
		}
		_ = migrator.Close()
	}

	container, err := app.NewContainer(app.Config{
		IsProduction:          cfg.IsProduction,
		ProdOrigins:           cfg.ProdOrigins,
		DBPool:                pool,
		JWTSecret:             cfg.JWTSecret,
		JWTTTL:                cfg.JWTAccessTokenTTL,
		Grid:                  gridCfg,
		UnavailabilityFixture: cfg.UnavailabilityFixture,
		NowTickInterval:       cfg.NowTickInterval,
		Logger:                logger,
	})
	if err != nil {
		logger.Fatal("failed to build application", zap.Error(err))
	}

	container.NowTicker.Start(ctx)

	// Use http.Server for graceful shutdown
	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           container.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Run server in separate goroutine
	go func() {
		logger.Info("server running",
			zap.String("addr", cfg.HTTPAddr),
			zap.Int("start_hour", gridCfg.StartHour),
			zap.Int("end_hour", gridCfg.EndHour),
			zap.Int("slot_minutes", gridCfg.SlotMinutes),
			zap.String("time_zone", gridCfg.Location.String()),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	// Wait for Ctrl+C
	<-ctx.Done()
	logger.Info("shutdown signal received")

	container.NowTicker.Stop()

	// Create a shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exited gracefully")
}
