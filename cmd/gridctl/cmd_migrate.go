package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nekogravitycat/flight-schedule-grid/internal/db"
)

var migrateDown bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations",
	Long: `Apply the embedded schema migrations to DB_DSN.

Examples:
  # Apply every pending migration
  gridctl migrate

  # Roll back the most recent migration
  gridctl migrate --down
`,
	RunE: runMigrate,
}

func init() {
	migrateCmd.Flags().BoolVar(&migrateDown, "down", false, "Roll back the most recent migration instead")
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	if err := loadConfig(); err != nil {
		return err
	}
	ctx := cmd.Context()

	pool, err := db.NewPool(ctx, cfg.DBDSN)
	if err != nil {
		return err
	}
	defer pool.Close()

	migrator, err := db.NewMigrator(pool, logger.Named("migrate"))
	if err != nil {
		return err
	}
	defer migrator.Close()

	if migrateDown {
		if err := migrator.Down(ctx); err != nil {
			return err
		}
	} else if err := migrator.Up(ctx); err != nil {
		return err
	}

	version, err := migrator.Version(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "schema version %d\n", version)
	return nil
}
