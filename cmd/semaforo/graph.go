package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/semaforo/internal/presentation/graph"
	"github.com/aretw0/semaforo/pkg/domain"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph [STATE]",
	Short: "Export the signal cycle visualization",
	Long: `Outputs a Mermaid diagram (graph TD) of the signal cycle. When a state is
given it is highlighted, and an invalid state is drawn with its path to all red.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var overlay *graph.GraphOverlay
		if len(args) == 1 {
			initial, err := domain.ParseSignals(args[0])
			if err != nil {
				return err
			}
			overlay = &graph.GraphOverlay{Initial: initial}
		}

		fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(overlay))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
