package main

import (
	"fmt"

	"github.com/aretw0/swimlane/internal/cli"
	"github.com/aretw0/swimlane/internal/presentation/graph"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Export the board graph visualization",
	Long: `Outputs a Mermaid diagram (graph LR) of the lanes and allowed transitions,
annotated with block counts. With --block, the lanes visited by that block are highlighted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		blockID, _ := cmd.Flags().GetString("block")

		rt, err := cli.NewRuntime(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}
		defer rt.Close()

		blocks, err := rt.Board.ListBlocks(cmd.Context(), "")
		if err != nil {
			return err
		}
		overlay := graph.OverlayFor(blocks, nil)
		if blockID != "" {
			b, err := rt.Board.Block(cmd.Context(), blockID)
			if err != nil {
				return err
			}
			overlay = graph.OverlayFor(blocks, &b)
		}

		fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(rt.Board.Registry(), overlay))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().String("block", "", "Highlight the trail of this block")
}
