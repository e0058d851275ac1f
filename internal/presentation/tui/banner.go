package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the Swimlane ASCII art banner to w.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{"  ___        _       _", "#38bdf8"},
		{" / __|_ __ _(_)_ __ | |__ _ _ _  ___", "#22d3ee"},
		{" \\__ \\ V  V / | '  \\| / _` | ' \\/ -_)", "#2dd4bf"},
		{" |___/\\_/\\_/|_|_|_|_|_\\__,_|_||_\\___|", "#34d399"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}
