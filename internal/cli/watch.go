package cli

import (
	"fmt"

	"github.com/ralt/photometa/internal/extractor"
	"github.com/ralt/photometa/internal/models"
	"github.com/ralt/photometa/internal/report"
	"github.com/ralt/photometa/internal/watcher"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewWatchCmd creates the watch command
func NewWatchCmd() *cobra.Command {
	var config models.ExtractConfig

	cmd := &cobra.Command{
		Use:   "watch <dir...>",
		Short: "Print the EXIF fields of images as they appear",
		Long: `Watches directories recursively and extracts every image that is
created or rewritten. Bursts of changes are debounced into one batch.
Runs until interrupted.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fileConfig, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			fileConfig.Apply(&config, cmd.Flags().Changed)

			format, err := report.ParseFormat(config.Format)
			if err != nil {
				return &models.PhotoMetaError{Type: models.ErrInvalidConfig, Err: err}
			}
			if config.Concurrency <= 0 {
				config.Concurrency = extractor.DefaultConcurrency
			}

			out := cmd.OutOrStdout()
			w := report.NewWriter(format)
			onReport := func(b *models.BatchReport) {
				if err := w.Write(out, b); err != nil {
					logrus.Warnf("Failed to write report: %v", err)
				}
				logrus.Info(report.Summary(b))
			}

			wt := watcher.New(extractor.NewExtractor(config.Concurrency), config.Debounce, onReport)
			if err := wt.Run(cmd.Context(), args); err != nil {
				return fmt.Errorf("watch failed: %w", err)
			}

			logrus.Info("Watcher stopped")
			return nil
		},
	}

	cmd.Flags().StringVarP(&config.Format, "format", "f", "text", "Output format (text, json, yaml)")
	cmd.Flags().IntVarP(&config.Concurrency, "concurrency", "j", extractor.DefaultConcurrency, "Number of files read in parallel")
	cmd.Flags().DurationVar(&config.Debounce, "debounce", watcher.DefaultDebounce, "Quiet period before changed files are extracted")

	return cmd
}
