package main

import (
	"log"
	"os"

	"github.com/aretw0/swimlane/internal/cli"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts the board as an MCP Server.
This allows AI agents (like Claude Desktop) to list, move and inspect blocks as tools.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("transport") {
			cfg.MCP.Transport, _ = cmd.Flags().GetString("transport")
		}
		if cmd.Flags().Changed("port") {
			cfg.MCP.Port, _ = cmd.Flags().GetInt("port")
		}

		// Ensure logs don't corrupt JSON-RPC on Stdout
		log.SetOutput(os.Stderr)

		sigCtx := cli.NewSignalContext(cmd.Context())
		defer sigCtx.Cancel()

		rt, err := cli.NewRuntime(sigCtx, cfg, logger)
		if err != nil {
			return err
		}
		defer rt.Close()

		if err := cli.ServeMCP(sigCtx, rt, cfg.MCP.Transport, cfg.MCP.Port, logger); err != nil {
			return err
		}
		if sig := sigCtx.Signal(); sig != nil {
			logger.Debug("stopped by signal", "signal", sig)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().Int("port", 8081, "Port to listen on (only for SSE)")
}
