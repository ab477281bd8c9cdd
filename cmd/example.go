package cmd

import (
	"fmt"

	"github.com/cardwise/utilization-optimizer/internal/config"
	"github.com/cardwise/utilization-optimizer/internal/output"
	"github.com/spf13/cobra"
)

var exampleCmd = &cobra.Command{
	Use:   "example [file]",
	Short: "Write an example portfolio file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "portfolio.yaml"
		if len(args) == 1 {
			path = args[0]
		}
		cfg := config.NewInputParser().CreateExampleConfiguration()
		if err := output.SaveConfiguration(cfg, path); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "  Wrote example portfolio to %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exampleCmd)
}
