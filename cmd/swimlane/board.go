package main

import (
	"os"

	"github.com/aretw0/swimlane/internal/cli"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Open the board in the terminal",
	Long: `Shows the lanes and lets you move blocks between them.
On a terminal this opens the full-screen board; when input or output is piped it
falls back to a line console (try 'help').`,
	RunE: func(cmd *cobra.Command, args []string) error {
		headless, _ := cmd.Flags().GetBool("headless")
		plain, _ := cmd.Flags().GetBool("plain")

		sigCtx := cli.NewSignalContext(cmd.Context())
		defer sigCtx.Cancel()

		rt, err := cli.NewRuntime(sigCtx, cfg, logger)
		if err != nil {
			return err
		}
		defer rt.Close()

		tty := term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
		width := 0
		if tty {
			if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
				width = w
			}
		}

		return cli.RunBoard(sigCtx, rt.Board, cli.BoardOptions{
			Input:       os.Stdin,
			Output:      os.Stdout,
			Interactive: tty && !headless && !plain,
			Headless:    headless || !tty,
			Width:       width,
		})
	},
}

func init() {
	rootCmd.AddCommand(boardCmd)

	boardCmd.Flags().Bool("headless", false, "Line console without banners or prompts (for scripts)")
	boardCmd.Flags().Bool("plain", false, "Use the line console even on a terminal")
}
