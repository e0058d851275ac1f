package main

import (
	"fmt"
	"strconv"

	"github.com/aretw0/swimlane/internal/cli"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Starts the board in server mode, exposing a JSON API over HTTP.
Clients open sessions to request and confirm moves; /events streams block changes (SSE)
and /metrics exposes Prometheus counters.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("port") {
			cfg.Server.Port, _ = cmd.Flags().GetInt("port")
		}

		sigCtx := cli.NewSignalContext(cmd.Context())
		defer sigCtx.Cancel()

		rt, err := cli.NewRuntime(sigCtx, cfg, logger)
		if err != nil {
			return err
		}
		defer rt.Close()

		if err := cli.Serve(sigCtx, rt, cli.ServeOptions{
			Addr:            ":" + strconv.Itoa(cfg.Server.Port),
			SessionTTL:      cfg.Server.SessionTTL,
			ShutdownTimeout: cfg.Server.ShutdownTTL,
		}, logger); err != nil {
			return fmt.Errorf("serve: %w", err)
		}
		if sig := sigCtx.Signal(); sig != nil {
			logger.Debug("stopped by signal", "signal", sig)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on")
}
