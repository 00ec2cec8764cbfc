package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the Wayfinder banner to w.
func PrintBanner(w io.Writer) {
	out := termenv.NewOutput(w)
	// Teal to indigo, readable on both light and dark backgrounds
	lines := []struct{ text, color string }{
		{" __      __              __ _         _", "#2dd4bf"},
		{" \\ \\    / /_ _ _  _ ___ / _(_)_ _  __| |___ _ _", "#22d3ee"},
		{"  \\ \\/\\/ / _` | || |___|  _| | ' \\/ _` / -_) '_|", "#38bdf8"},
		{"   \\_/\\_/\\__,_|\\_, |   |_| |_|_||_\\__,_\\___|_|", "#60a5fa"},
		{"               |__/", "#818cf8"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.color)))
	}
	fmt.Fprintln(w)
}
