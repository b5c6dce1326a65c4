package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the germwalk banner to w.
func PrintBanner(w io.Writer) {
	out := termenv.NewOutput(w)
	// Greens fading to teal.
	lines := []struct {
		text  string
		color string
	}{
		{"   __ _  ___ _ __ _ __ _____      ____ _| | | __", "#86efac"},
		{"  / _` |/ _ \\ '__| '_ ` _ \\ \\ /\\ / / _` | | |/ /", "#4ade80"},
		{" | (_| |  __/ |  | | | | | \\ V  V / (_| | |   < ", "#22c55e"},
		{"  \\__, |\\___|_|  |_| |_| |_|\\_/\\_/ \\__,_|_|_|\\_\\", "#14b8a6"},
		{"  |___/", "#0d9488"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.color)))
	}
	fmt.Fprintln(w)
}
