package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/swimlane"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of swimlane",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "swimlane version %s\n", strings.TrimSpace(swimlane.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
