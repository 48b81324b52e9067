package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Sternrassler/airalo-esim-client/pkg/airalo"
	"github.com/Sternrassler/airalo-esim-client/pkg/config"
	"github.com/Sternrassler/airalo-esim-client/pkg/logging"
)

var logLevel string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "esimctl",
		Short:         "Explore the eSIM partner API",
		Long:          "esimctl exercises the SDK against the configured environment: tokens, the package catalog, orders, top-ups, and SIM usage.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Setup(logging.Config{
				Level:  logging.LogLevel(logLevel),
				Pretty: true,
				Output: os.Stderr,
			})
		},
	}

	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	root.AddCommand(newTokenCmd())
	root.AddCommand(newPackagesCmd())
	root.AddCommand(newOrderCmd())
	root.AddCommand(newTopupCmd())
	root.AddCommand(newUsageCmd())
	return root
}

// newClient loads configuration from the environment and builds a client.
func newClient(ctx context.Context) (*airalo.Client, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, err
	}
	return airalo.New(ctx, cfg)
}

// printJSON renders a value as indented JSON on stdout.
func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("render output: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
