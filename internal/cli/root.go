// Package cli wires the pipeline's cobra commands.
package cli

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rpattn/medallion/internal/config"
	"github.com/rpattn/medallion/internal/db"
	"github.com/rpattn/medallion/internal/logger"
)

// RootOptions holds flags shared by every command.
type RootOptions struct {
	ConfigPath string
}

// NewRootCommand creates the top level command.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "medallion",
		Short:         "Batch sales warehouse pipeline",
		Long:          "Loads CRM and ERP extracts into a bronze layer, cleanses them into silver, and assembles the gold star schema.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", ".", "directory containing config.yaml")

	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewLoadCommand(opts))
	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewCheckCommand(opts))

	return cmd
}

// setup loads configuration and opens the shared resources commands need.
func setup(ctx context.Context, opts *RootOptions) (config.Config, *zap.Logger, *db.Connection, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return config.Config{}, nil, nil, err
	}
	log := logger.New(cfg.Log)

	conn, err := db.NewConnection(ctx, cfg.Database)
	if err != nil {
		return config.Config{}, nil, nil, err
	}
	return cfg, log, conn, nil
}
