package cli

import (
	"context"
	"fmt"

	"someday/internal/config"
	"someday/internal/controller"
	"someday/internal/services"
	"someday/internal/tui"
)

// TUICommand starts the interactive board
type TUICommand struct {
	store  services.EntityStore
	config *config.Config
}

// NewTUICommand creates a new tui command handler
func NewTUICommand(app *App) *TUICommand {
	return &TUICommand{store: app.store, config: app.config}
}

// Execute blocks until the user leaves the board
func (c *TUICommand) Execute(ctx context.Context) error {
	if c.store == nil {
		return fmt.Errorf("interactive mode is not available without a local store")
	}

	return tui.Run(ctx, controller.New(c.store), c.options())
}

func (c *TUICommand) options() tui.Options {
	cfg := c.config
	if cfg == nil {
		cfg = config.NewConfig()
	}

	opts := tui.Options{
		CompletionDelay:        cfg.Display.CompletionDelay,
		DoubleActivationWindow: cfg.Display.DoubleActivationWindow,
		DefaultWhen:            cfg.GetDefaultWhen(),
	}
	if cfg.Storage.Backend != config.BackendMemory {
		opts.LogDir = cfg.Storage.Dir
	}
	return opts
}
