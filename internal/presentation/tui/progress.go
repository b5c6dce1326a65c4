package tui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/aretw0/germwalk/pkg/domain"
)

const barWidth = 30

// Progress draws a single-line progress bar, one redraw per tick.
type Progress struct {
	w   io.Writer
	out *termenv.Output
}

// NewProgress returns a progress bar writing to w.
func NewProgress(w io.Writer) *Progress {
	return &Progress{w: w, out: termenv.NewOutput(w)}
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Hooks returns lifecycle hooks that redraw the bar.
func (p *Progress) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTick: func(e *domain.TickEvent) {
			fmt.Fprintf(p.w, "\r%s", p.Line(e))
		},
		OnComplete: func(*domain.CompleteEvent) {
			fmt.Fprintln(p.w)
		},
	}
}

// Line renders the bar for one tick.
func (p *Progress) Line(e *domain.TickEvent) string {
	filled := 0
	if e.Steps > 0 {
		filled = barWidth * e.Tick / e.Steps
	}
	bar := p.out.String(strings.Repeat("█", filled)).Foreground(p.out.Color("#22c55e")).String() +
		strings.Repeat("░", barWidth-filled)

	stalled := ""
	if e.Stalled > 0 {
		stalled = p.out.String(fmt.Sprintf(" stalled %d", e.Stalled)).Foreground(p.out.Color("#f59e0b")).String()
	}
	return fmt.Sprintf("%s %d/%d moved %d%s", bar, e.Tick, e.Steps, e.Moved, stalled)
}
