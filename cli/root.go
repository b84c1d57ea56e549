// Package cli is the gymlog command line.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"gymlog/app"
	"gymlog/config"
	"gymlog/config/setup"
	"gymlog/logger"

	"github.com/spf13/cobra"
)

var (
	application *app.App
	logLevel    string
)

func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "gymlog",
		Short: "GymLog - track your lifts from the terminal",
		Long: `GymLog records exercises, weights and reps per user in a local
SQLite database. Log in with one of the seeded accounts (admin1 or
testUser1) to get started.`,
		PersistentPreRunE: setupApp,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "override GYMLOG_LOG_LEVEL")

	root.AddCommand(
		newLoginCmd(),
		newLogoutCmd(),
		newWhoamiCmd(),
		newLogCmd(),
		newUserCmd(),
	)
	return root
}

// Execute runs the command line and drains pending writes before exiting.
func Execute() {
	err := NewRootCmd().Execute()
	setup.Shutdown(application)
	if err != nil {
		fail.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func setupApp(_ *cobra.Command, _ []string) error {
	if application != nil {
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	log := logger.New(cfg.Env, cfg.LogLevel)
	slog.SetDefault(log)

	application, err = setup.InitApp(cfg, log)
	if err != nil {
		return fmt.Errorf("initialize: %w", err)
	}
	return nil
}
