package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Amaral-Gabriel/daily-loan-pay/internal/app"
	"github.com/Amaral-Gabriel/daily-loan-pay/internal/config"
	"github.com/Amaral-Gabriel/daily-loan-pay/pkg/logger"
)

var Version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "dailypayctl",
		Short:         "Operator tooling for the daily loan payment service",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Add subcommands
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(replayCmd())
	rootCmd.AddCommand(expireCmd())
	rootCmd.AddCommand(tokenCmd())

	return rootCmd
}

// openApp loads configuration from the environment and connects the services.
// Logs go to stderr so command output stays parseable.
func openApp(cmd *cobra.Command) (*app.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	log := logger.NewWithWriter(cmd.ErrOrStderr(), cfg.Logging.Level, cfg.Logging.Format)

	return app.New(cmd.Context(), cfg, log)
}
