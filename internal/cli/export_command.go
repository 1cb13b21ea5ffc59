package cli

import (
	"context"

	"someday/internal/api"
	"someday/internal/config"
)

// ExportCommand handles the export command
type ExportCommand struct {
	api    api.API
	config *config.Config
	app    *App
}

// NewExportCommand creates a new export command handler
func NewExportCommand(app *App) *ExportCommand {
	return &ExportCommand{api: app.api, config: app.config, app: app}
}

// Execute writes every task and project in the requested format
func (c *ExportCommand) Execute(ctx context.Context, format string) error {
	fallback := formatJSON
	if c.config != nil {
		fallback = c.config.Commands.ExportDefaultFormat
	}
	format, err := resolveFormat(format, fallback, formatJSON, formatYAML)
	if err != nil {
		return NewErrorHandler().Handle("export data", err)
	}

	snapshot, err := c.api.Export(ctx)
	if err != nil {
		return NewErrorHandler().Handle("export data", err)
	}
	return writeStructured(c.app.out, format, snapshot)
}
