package cli

import (
	"github.com/ralt/photometa/internal/config"
	"github.com/ralt/photometa/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "photometa",
		Short: "Print EXIF metadata embedded in image files",
		Long: `Photometa reads the EXIF block embedded in image files and prints one
line per field: the tag name, the image it belongs to and its value with
units resolved from the surrounding fields.

Supported containers:
  - JPEG (APP1 segment)
  - TIFF
  - PNG (eXIf chunk)
  - WebP (EXIF chunk)`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Setup logging
			verbose, _ := cmd.Flags().GetBool("verbose")
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			} else {
				logrus.SetLevel(logrus.InfoLevel)
			}
		},
	}

	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to config file (default "+config.DefaultPath+" if present)")

	// Add subcommands
	rootCmd.AddCommand(NewExtractCmd())
	rootCmd.AddCommand(NewWatchCmd())
	rootCmd.AddCommand(NewGreetCmd())
	rootCmd.AddCommand(NewInvokeCmd())

	return rootCmd
}

// loadConfig reads the file named by --config, or the optional default file
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")

	var cfg *config.Config
	var err error
	if path != "" {
		cfg, err = config.LoadRequired(path)
	} else {
		cfg, err = config.Load(config.DefaultPath)
	}
	if err != nil {
		return nil, &models.PhotoMetaError{Type: models.ErrInvalidConfig, Path: path, Err: err}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
