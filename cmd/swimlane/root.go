package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/swimlane/internal/config"
	"github.com/aretw0/swimlane/internal/logging"
	"github.com/spf13/cobra"
)

var (
	cfg    config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "swimlane",
	Short: "Swimlane is a transition engine for kanban boards",
	Long: `Swimlane moves blocks between the lanes of a kanban board, enforcing the
allowed transitions and recording the details collected on every move.

Run 'swimlane board' for the interactive board, 'swimlane serve' for the HTTP API
or 'swimlane mcp' to expose the board to AI agents.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")
		loaded, err := config.Load(path)
		if err != nil {
			return err
		}
		cfg = loaded

		// Flags win over file and environment.
		if f := cmd.Flags().Lookup("log-level"); f != nil && f.Changed {
			cfg.Log.Level = f.Value.String()
		}
		if f := cmd.Flags().Lookup("log-format"); f != nil && f.Changed {
			cfg.Log.Format = f.Value.String()
		}
		if f := cmd.Flags().Lookup("board"); f != nil && f.Changed {
			cfg.Board.Definition = f.Value.String()
		}

		level, err := logging.ParseLevel(cfg.Log.Level)
		if err != nil {
			return err
		}
		format, err := logging.ParseFormat(cfg.Log.Format)
		if err != nil {
			return err
		}
		logger = logging.New(level, format)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Config file (default: ./swimlane.yaml or ~/.config/swimlane/swimlane.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", "text", "Log format: text or json")
	rootCmd.PersistentFlags().String("board", "", "Board definition YAML (default: the built-in four-lane board)")
}
