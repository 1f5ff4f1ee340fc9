package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rpattn/medallion/internal/ingestion"
	"github.com/rpattn/medallion/internal/repository"
)

// NewLoadCommand creates the load command, which replaces bronze tables from
// extract files. Tables are recognized from the source system's file names;
// --table forces the target when loading a single renamed file.
func NewLoadCommand(rootOpts *RootOptions) *cobra.Command {
	var tableOverride string

	cmd := &cobra.Command{
		Use:   "load <extract-file>...",
		Short: "Bulk-load raw extracts into the bronze layer",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if tableOverride != "" && len(args) != 1 {
				return fmt.Errorf("--table requires exactly one file")
			}

			_, log, conn, err := setup(ctx, rootOpts)
			if err != nil {
				return err
			}
			defer conn.Close()
			defer func() { _ = log.Sync() }()

			service := ingestion.NewService(repository.NewBronzeRepository(conn), log)

			for _, path := range args {
				table := ingestion.Table(tableOverride)
				if tableOverride == "" {
					table, err = ingestion.DetectTable(path)
					if err != nil {
						return err
					}
				}

				var reader io.ReadCloser
				reader, err = os.Open(path)
				if err != nil {
					return fmt.Errorf("failed to open %s: %w", path, err)
				}
				summary, err := service.Load(ctx, table, filepath.Base(path), reader)
				_ = reader.Close()
				if err != nil {
					return fmt.Errorf("failed to load %s: %w", path, err)
				}
				log.Info("extract loaded",
					zap.String("table", string(summary.Table)),
					zap.Int("rows_read", summary.RowsRead),
					zap.Int("rows_kept", summary.RowsKept),
				)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&tableOverride, "table", "", "bronze table to load into (overrides file name detection)")
	return cmd
}
