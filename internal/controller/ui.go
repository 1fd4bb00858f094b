// Package controller provides the user-facing side of graderecorder: path
// prompts and result display.
package controller

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	m "graderecorder.dev/pkg/graderecorder/internal/model"
)

// UI defines how the pipeline talks to the user.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	// SelectPath prompts for a path. ok is false when the user cancelled.
	SelectPath(ctx context.Context, req m.PathRequest) (path m.Path, ok bool, err error)
	DisplayRowError(ctx context.Context, rowErr m.RowError)
	DisplayResults(ctx context.Context, results []m.GpaResult)
	DisplaySettings(ctx context.Context, file m.Path, settings []m.Setting)
	// DisplayOutcome prints the final "Successful?" line of a run.
	DisplayOutcome(ctx context.Context, report m.RunReport)
}

// NewUI returns a TUI when attached to a terminal and a SimpleUI otherwise.
func NewUI(cmd *cobra.Command, tty bool) UI {
	if tty {
		return NewTUI(cmd)
	}

	return NewSimpleUI(cmd)
}

// IsTTY reports whether f is a terminal.
func IsTTY(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd()))
}

func outcomeLabel(report m.RunReport) string {
	if report.Successful() {
		return "Yes"
	}

	return "No"
}
