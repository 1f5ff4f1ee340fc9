package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rpattn/medallion/internal/db"
)

// NewMigrateCommand creates the migrate command.
func NewMigrateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the bronze, silver, and gold schemas",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg, log, conn, err := setup(ctx, rootOpts)
			if err != nil {
				return err
			}
			defer conn.Close()
			defer func() { _ = log.Sync() }()

			if err := db.RunMigrations(ctx, conn.Pool, cfg.Pipeline.MigrationsPath); err != nil {
				return err
			}
			log.Info("migrations applied", zap.String("path", cfg.Pipeline.MigrationsPath))
			return nil
		},
	}
}
