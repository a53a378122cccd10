package cli

import (
	"encoding/json"
	"fmt"

	"github.com/ralt/photometa/internal/bridge"
	"github.com/spf13/cobra"
)

// NewGreetCmd creates the greet command
func NewGreetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "greet [name]",
		Short: "Print a greeting through the command bridge",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var in bridge.GreetArgs
			if len(args) == 1 {
				in.Name = args[0]
			}

			payload, err := json.Marshal(in)
			if err != nil {
				return err
			}

			out, err := newRegistry().Invoke(cmd.Context(), bridge.GreetCommand, payload)
			if err != nil {
				return err
			}

			var greeting string
			if err := json.Unmarshal(out, &greeting); err != nil {
				return fmt.Errorf("failed to decode greeting: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), greeting)
			return nil
		},
	}
}
