package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nekogravitycat/flight-schedule-grid/internal/app"
	"github.com/nekogravitycat/flight-schedule-grid/internal/config"
	"github.com/nekogravitycat/flight-schedule-grid/internal/db"
)

var (
	logger *zap.Logger
	cfg    *config.Config
)

var rootCmd = &cobra.Command{
	Use:          "gridctl",
	Short:        "Operator tools for the flight schedule grid",
	Long:         "gridctl applies database migrations, renders day and week grids to PNG, prints month availability and issues development tokens.",
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig loads configuration (called by commands that need it)
func loadConfig() error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger = app.NewLogger(cfg.IsProduction)
	return nil
}

// openContainer connects to the database and wires the application services.
// The caller closes the returned pool.
func openContainer(ctx context.Context) (*app.Container, *pgxpool.Pool, error) {
	if err := loadConfig(); err != nil {
		return nil, nil, err
	}
	gridCfg, err := cfg.Grid()
	if err != nil {
		return nil, nil, err
	}

	pool, err := db.NewPool(ctx, cfg.DBDSN)
	if err != nil {
		return nil, nil, err
	}

	container, err := app.NewContainer(app.Config{
		IsProduction:          cfg.IsProduction,
		DBPool:                pool,
		JWTSecret:             cfg.JWTSecret,
		JWTTTL:                cfg.JWTAccessTokenTTL,
		Grid:                  gridCfg,
		UnavailabilityFixture: cfg.UnavailabilityFixture,
		NowTickInterval:       cfg.NowTickInterval,
		Logger:                logger,
	})
	if err != nil {
		pool.Close()
		return nil, nil, err
	}
	return container, pool, nil
}
