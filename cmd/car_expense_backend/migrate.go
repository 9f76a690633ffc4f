package main

import (
	"errors"
	"log/slog"

	"github.com/SscSPs/car_expense_app/internal/platform/config"
	"github.com/SscSPs/car_expense_app/pkg/database"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:       "migrate [up|down]",
	Short:     "Apply (up) or revert one step of (down) the database migrations",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{string(database.Up), string(database.Down)},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}
		if cfg.DatabaseURL == "" {
			return errors.New("PGSQL_URL is required to run migrations")
		}
		logger := slog.Default()
		logger.Info("Running database migrations...", slog.String("source", cfg.MigrationsPath), slog.String("direction", args[0]))
		return database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, database.Direction(args[0]), logger)
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
