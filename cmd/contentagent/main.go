package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"contentagent/internal/app/bootstrap"
	"contentagent/internal/platform/config"
	"contentagent/internal/platform/logging"
)

var Version = "dev"

// Platform entrypoint.
// Data flow:
// 1) Load config (defaults, optional YAML file, environment).
// 2) Build the module catalog for the selected mode.
// 3) Discover, initialize, and serve until interrupted.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		mode       string
		configPath string
		verbosity  int
	)

	cmd := &cobra.Command{
		Use:     "contentagent",
		Short:   "Content Agent - modular content marketing automation platform",
		Version: Version,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), mode, configPath, verbosity)
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringVar(&mode, "mode", "both", "Run mode: frontend (web UI), backend (REST API), or both")
	cmd.Flags().StringVar(&configPath, "config", "", "Optional YAML config file")
	cmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase log verbosity")
	return cmd
}

func run(ctx context.Context, rawMode, configPath string, verbosity int) error {
	mode, err := bootstrap.ParseMode(rawMode)
	if err != nil {
		return err
	}

	cfg, err := config.LoadFile(configPath)
	if err != nil {
		return err
	}

	level := cfg.Log.Level
	if verbosity > 0 {
		level = "debug"
	}
	logger := logging.New(level, cfg.Log.Format, os.Stderr)

	app, err := bootstrap.Build(cfg, mode, logger)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := app.Close(); closeErr != nil {
			logger.Warn("app close failed",
				"event", "app_close_failed",
				"module", "cmd/contentagent",
				"layer", "platform",
				"error", closeErr,
			)
		}
	}()

	runCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	return app.Run(runCtx)
}
