package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/swimlane/pkg/registry"
	"github.com/spf13/cobra"
)

var lanesCmd = &cobra.Command{
	Use:   "lanes",
	Short: "List the lanes and their allowed transitions",
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := loadRegistry(cfg.Board.Definition)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, lane := range reg.Lanes() {
			fmt.Fprintf(out, "%s (%s)\n", lane.ID, lane.Title)
			for _, to := range reg.Targets(lane.ID) {
				names := []string{}
				for _, f := range reg.FieldsFor(lane.ID, to) {
					names = append(names, fmt.Sprintf("%s:%s", f.Name, f.Kind))
				}
				fmt.Fprintf(out, "  -> %-14s %s\n", to, strings.Join(names, ", "))
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(lanesCmd)
}

// loadRegistry reads a board definition, or returns the default board.
func loadRegistry(path string) (*registry.Registry, error) {
	if path == "" {
		return registry.Default(), nil
	}
	return registry.LoadFile(path)
}
