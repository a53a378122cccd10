package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/ralt/photometa/internal/extractor"
	"github.com/ralt/photometa/internal/models"
	"github.com/ralt/photometa/internal/report"
	"github.com/ralt/photometa/internal/scanner"
	"github.com/ralt/photometa/internal/signer"
	"github.com/ralt/photometa/internal/utils"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// DefaultPath is extracted when no path is given
const DefaultPath = "./monalisa.jpg"

// NewExtractCmd creates the extract command
func NewExtractCmd() *cobra.Command {
	var config models.ExtractConfig
	var clearsign bool

	cmd := &cobra.Command{
		Use:   "extract [paths...]",
		Short: "Print the EXIF fields of image files",
		Long: `Reads every given file, directory or glob pattern and prints one
"<tag> <ifd> <value>" line per EXIF field. Paths that cannot be read are
reported and skipped; the remaining paths are still processed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			fileConfig, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			fileConfig.Apply(&config, cmd.Flags().Changed)
			config.Paths = args

			// Validate configuration
			if err := validateConfig(&config); err != nil {
				return err
			}
			if clearsign && config.GPGKeyPath == "" {
				return &models.PhotoMetaError{
					Type: models.ErrInvalidConfig,
					Err:  fmt.Errorf("clearsign requires gpg-key"),
				}
			}

			logrus.Debugf("Extracting %v as %s with concurrency %d", config.Paths, config.Format, config.Concurrency)

			return runExtraction(cmd.Context(), cmd.OutOrStdout(), &config, clearsign)
		},
	}

	// Output flags
	cmd.Flags().StringVarP(&config.Format, "format", "f", "text", "Output format (text, json, yaml)")
	cmd.Flags().StringVarP(&config.OutputPath, "output", "o", "", "Write the report to a file instead of stdout")
	cmd.Flags().StringVar(&config.Compress, "compress", "none", "Compress the report file (none, gzip, zstd, xz)")

	// GPG signing flags
	cmd.Flags().StringVarP(&config.GPGKeyPath, "gpg-key", "k", "", "Path to GPG private key")
	cmd.Flags().StringVarP(&config.GPGPassphrase, "gpg-passphrase", "p", "", "GPG key passphrase")
	cmd.Flags().BoolVar(&clearsign, "clearsign", false, "Write the text report as a cleartext signed message")
	cmd.Flags().BoolVar(&config.ExportKey, "export-key", false, "Write the signing public keys next to the signatures")

	// RSA signing flags
	cmd.Flags().StringVar(&config.RSAKeyPath, "rsa-key", "", "Path to RSA private key")
	cmd.Flags().StringVar(&config.RSAPassphrase, "rsa-passphrase", "", "RSA key passphrase")

	// Behaviour flags
	cmd.Flags().IntVarP(&config.Concurrency, "concurrency", "j", extractor.DefaultConcurrency, "Number of files read in parallel")
	cmd.Flags().BoolVar(&config.FailOnError, "fail-on-error", false, "Exit non-zero if any path fails")

	return cmd
}

func validateConfig(config *models.ExtractConfig) error {
	if len(config.Paths) == 0 {
		config.Paths = []string{DefaultPath}
	}

	if _, err := report.ParseFormat(config.Format); err != nil {
		return &models.PhotoMetaError{Type: models.ErrInvalidConfig, Err: err}
	}

	compression, err := utils.ParseCompression(config.Compress)
	if err != nil {
		return &models.PhotoMetaError{Type: models.ErrInvalidConfig, Err: err}
	}

	if config.OutputPath == "" {
		if compression != utils.CompressNone {
			return &models.PhotoMetaError{
				Type: models.ErrInvalidConfig,
				Err:  fmt.Errorf("compress requires output"),
			}
		}
		if config.GPGKeyPath != "" || config.RSAKeyPath != "" {
			return &models.PhotoMetaError{
				Type: models.ErrInvalidConfig,
				Err:  fmt.Errorf("signing requires output"),
			}
		}
	}

	if config.Concurrency <= 0 {
		config.Concurrency = extractor.DefaultConcurrency
	}

	return nil
}

func runExtraction(ctx context.Context, out io.Writer, config *models.ExtractConfig, clearsign bool) error {
	// Step 1: Expand directories and patterns
	sc := scanner.NewFileSystemScanner()
	paths, err := sc.Expand(ctx, config.Paths)
	if err != nil {
		return &models.PhotoMetaError{
			Type: models.ErrFileOp,
			Err:  fmt.Errorf("failed to expand paths: %w", err),
		}
	}

	if len(paths) == 0 {
		logrus.Warn("No images matched the given paths")
		return nil
	}

	// Step 2: Initialize signers before reading any file
	opts, err := writerOptions(config, clearsign)
	if err != nil {
		return err
	}

	// Step 3: Extract
	logrus.Debugf("Extracting %d paths", len(paths))
	batch := extractor.NewExtractor(config.Concurrency).Extract(ctx, paths)

	// Step 4: Report
	format, _ := report.ParseFormat(config.Format)
	w := report.NewWriter(format, opts...)
	if config.OutputPath == "" {
		if err := w.Write(out, batch); err != nil {
			return err
		}
	} else {
		if _, err := w.WriteFile(config.OutputPath, batch); err != nil {
			return err
		}
	}

	logrus.Info(report.Summary(batch))

	if config.FailOnError && batch.Failed > 0 {
		return fmt.Errorf("%d of %d paths failed", batch.Failed, len(batch.Results))
	}
	return nil
}

func writerOptions(config *models.ExtractConfig, clearsign bool) ([]report.Option, error) {
	compression, _ := utils.ParseCompression(config.Compress)
	opts := []report.Option{report.WithCompression(compression)}

	if config.GPGKeyPath != "" {
		gpgSigner, err := signer.NewGPGSigner(config.GPGKeyPath, config.GPGPassphrase)
		if err != nil {
			return nil, &models.PhotoMetaError{
				Type: models.ErrSigning,
				Path: config.GPGKeyPath,
				Err:  fmt.Errorf("failed to initialize GPG signer: %w", err),
			}
		}
		logrus.Info("GPG signer initialized")
		opts = append(opts, report.WithSigner(gpgSigner))
		if clearsign {
			opts = append(opts, report.WithClearsign())
		}
	}

	if config.RSAKeyPath != "" {
		rsaSigner, err := signer.NewPKCSSigner(config.RSAKeyPath, config.RSAPassphrase)
		if err != nil {
			return nil, &models.PhotoMetaError{
				Type: models.ErrSigning,
				Path: config.RSAKeyPath,
				Err:  fmt.Errorf("failed to initialize RSA signer: %w", err),
			}
		}
		logrus.Info("RSA signer initialized")
		opts = append(opts, report.WithRSASigner(rsaSigner))
	}

	if config.ExportKey {
		opts = append(opts, report.WithExportKey())
	}

	return opts, nil
}
