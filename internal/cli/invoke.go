package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/ralt/photometa/internal/bridge"
	"github.com/ralt/photometa/internal/extractor"
	"github.com/ralt/photometa/internal/scanner"
	"github.com/spf13/cobra"
)

// ExtractCommand is the bridge name of the extract handler
const ExtractCommand = "extract"

// ExtractArgs is the argument object of the extract bridge command
type ExtractArgs struct {
	Paths       []string `json:"paths"`
	Concurrency int      `json:"concurrency"`
}

// NewInvokeCmd creates the invoke command
func NewInvokeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "invoke <command> [json]",
		Short: "Dispatch a JSON request to a bridge command",
		Long: `Calls a registered bridge command the way a host shell would: the
argument is a JSON object ("-" reads it from stdin) and the result is
printed as JSON.

Commands:
  greet    {"name": "..."}
  extract  {"paths": ["..."], "concurrency": 4}`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var payload []byte
			if len(args) == 2 {
				if args[1] == "-" {
					data, err := io.ReadAll(cmd.InOrStdin())
					if err != nil {
						return fmt.Errorf("failed to read payload: %w", err)
					}
					payload = data
				} else {
					payload = []byte(args[1])
				}
			}

			out, err := newRegistry().Invoke(cmd.Context(), args[0], payload)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), strings.TrimSpace(string(out)))
			return nil
		},
	}
}

// newRegistry returns the bridge registry with the extract command added
func newRegistry() *bridge.Registry {
	r := bridge.NewDefaultRegistry()
	r.Register(ExtractCommand, func(ctx context.Context, args json.RawMessage) (any, error) {
		var in ExtractArgs
		if err := bridge.DecodeArgs(args, &in); err != nil {
			return nil, err
		}
		if len(in.Paths) == 0 {
			in.Paths = []string{DefaultPath}
		}
		if in.Concurrency <= 0 {
			in.Concurrency = extractor.DefaultConcurrency
		}

		paths, err := scanner.NewFileSystemScanner().Expand(ctx, in.Paths)
		if err != nil {
			return nil, err
		}
		return extractor.NewExtractor(in.Concurrency).Extract(ctx, paths), nil
	})
	return r
}
