package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Check a board definition for consistency",
	Long:  `Loads a board definition and reports unknown lanes, duplicate edges and malformed fields.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfg.Board.Definition
		if len(args) > 0 {
			path = args[0]
		}

		reg, err := loadRegistry(path)
		if err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Board %q is valid! ✅ (%d lanes, %d transitions)\n",
			reg.Name(), len(reg.Lanes()), len(reg.Edges()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
