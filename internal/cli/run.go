package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rpattn/medallion/internal/metrics"
	"github.com/rpattn/medallion/internal/pipeline"
	"github.com/rpattn/medallion/internal/repository"
)

// NewRunCommand creates the run command, which executes one full batch:
// bronze to silver to gold.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run one batch transformation over the loaded bronze extracts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg, log, conn, err := setup(ctx, rootOpts)
			if err != nil {
				return err
			}
			defer conn.Close()
			defer func() { _ = log.Sync() }()

			if addr := cfg.Pipeline.MetricsAddr; addr != "" {
				server := metrics.NewServer(addr)
				go func() {
					if err := server.Start(); err != nil {
						log.Warn("metrics server stopped", zap.Error(err))
					}
				}()
			}

			runner := pipeline.NewRunner(
				repository.NewBronzeRepository(conn),
				repository.NewSilverRepository(conn),
				repository.NewGoldRepository(conn),
				log,
				pipeline.WithObserver(metrics.ObserveStage),
			)

			report, err := runner.Run(ctx)
			metrics.ObserveRun(err)
			if err != nil {
				return err
			}

			for _, stage := range report.Stages {
				log.Info("stage summary",
					zap.String("stage", string(stage.Stage)),
					zap.Int("rows", stage.Rows),
					zap.Int("dropped", stage.Dropped),
					zap.Duration("duration", stage.Duration),
				)
			}
			log.Info("run summary",
				zap.String("run_id", report.RunID.String()),
				zap.Duration("duration", report.Duration()),
			)
			return nil
		},
	}
}
