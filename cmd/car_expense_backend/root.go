package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var flagDebug bool

var rootCmd = &cobra.Command{
	Use:           "car_expense_backend",
	Short:         "Shared car cost ledger",
	Long:          "Records rides and shared car expenses, allocates each expense over its rides by distance and reports who owes whom.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if flagDebug {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})))
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
