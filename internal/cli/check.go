package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rpattn/medallion/internal/quality"
)

// NewCheckCommand creates the check command, which runs the quality gate
// against the published warehouse.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Run quality checks against the silver and gold layers",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg, log, conn, err := setup(ctx, rootOpts)
			if err != nil {
				return err
			}
			defer conn.Close()
			defer func() { _ = log.Sync() }()

			gate := quality.NewGate(conn, log)
			results, err := gate.Run(ctx, cfg.Pipeline.ChecksPath)
			if err != nil {
				return err
			}

			failed := 0
			for _, result := range results {
				if result.Passed {
					log.Info("check passed", zap.String("check", result.Name))
					continue
				}
				failed++
				log.Warn("check failed",
					zap.String("check", result.Name),
					zap.Int64("rows", result.Rows),
					zap.String("detail", result.Detail),
				)
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d quality checks failed", failed, len(results))
			}
			log.Info("all quality checks passed", zap.Int("checks", len(results)))
			return nil
		},
	}
}
