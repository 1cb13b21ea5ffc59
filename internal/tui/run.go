package tui

import (
	"context"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"someday/internal/controller"
	"someday/internal/logging"
)

// DebugLogName is the file debug output goes to while the UI owns the
// terminal.
const DebugLogName = "debug.log"

// Run starts the full-screen board and blocks until the user quits or ctx
// is cancelled.
func Run(ctx context.Context, ctrl *controller.Controller, opts Options) error {
	if logging.DebugEnabled() && opts.LogDir != "" {
		f, err := os.OpenFile(filepath.Join(opts.LogDir, DebugLogName), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err == nil {
			prev := logging.SetOutput(f)
			defer func() {
				logging.SetOutput(prev)
				f.Close()
			}()
		}
	}

	_, err := tea.NewProgram(New(ctx, ctrl, opts), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
