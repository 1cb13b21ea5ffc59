package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"someday/internal/api"
	"someday/internal/config"
	"someday/internal/domain"
	"someday/internal/persistence"
	"someday/internal/viewmodel"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true)
	idStyle      = lipgloss.NewStyle().Faint(true)
)

// boardListing is the structured form of the board
type boardListing struct {
	Today     []persistence.TaskRecord `json:"today" yaml:"today"`
	Next      []persistence.TaskRecord `json:"next" yaml:"next"`
	Unplanned []persistence.TaskRecord `json:"unplanned" yaml:"unplanned"`
	Projects  []projectListing         `json:"projects" yaml:"projects"`
}

type projectListing struct {
	Name  string                   `json:"name" yaml:"name"`
	Tasks []persistence.TaskRecord `json:"tasks" yaml:"tasks"`
}

func newBoardListing(board viewmodel.Board) boardListing {
	mapper := persistence.NewTaskMapper()
	listing := boardListing{
		Today:     mapper.ToRecords(board.Today),
		Next:      mapper.ToRecords(board.Next),
		Unplanned: mapper.ToRecords(board.Unplanned),
		Projects:  make([]projectListing, len(board.Projects)),
	}
	for i, g := range board.Projects {
		listing.Projects[i] = projectListing{Name: g.Name, Tasks: mapper.ToRecords(g.Tasks)}
	}
	return listing
}

// ListCommand handles the list command
type ListCommand struct {
	api    api.API
	config *config.Config
	app    *App
}

// NewListCommand creates a new list command handler
func NewListCommand(app *App) *ListCommand {
	return &ListCommand{api: app.api, config: app.config, app: app}
}

// Execute prints the board in the requested format
func (c *ListCommand) Execute(ctx context.Context, format string) error {
	fallback := formatTable
	if c.config != nil {
		fallback = c.config.Commands.ListDefaultFormat
	}
	format, err := resolveFormat(format, fallback, formatTable, formatJSON, formatYAML)
	if err != nil {
		return NewErrorHandler().Handle("list tasks", err)
	}

	board, err := c.api.Board(ctx)
	if err != nil {
		return NewErrorHandler().Handle("list tasks", err)
	}

	if format == formatTable {
		return printBoard(c.app.out, board)
	}
	return writeStructured(c.app.out, format, newBoardListing(board))
}

// printBoard writes one heading per section followed by its tasks
func printBoard(w io.Writer, board viewmodel.Board) error {
	if board.Count() == 0 && len(board.Projects) == 0 {
		fmt.Fprintln(w, "No tasks found")
		return nil
	}

	for i, section := range board.Sections() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		heading := section.Bucket.Title()
		if section.Bucket.Kind == viewmodel.BucketProject {
			heading = "Project: " + heading
		}
		fmt.Fprintf(w, "%s (%d)\n", headingStyle.Render(heading), len(section.Tasks))
		if len(section.Tasks) == 0 {
			fmt.Fprintln(w, "  -")
			continue
		}
		for _, t := range section.Tasks {
			fmt.Fprintf(w, "  %s  %s%s\n", idStyle.Render(t.ID), t.String(), taskSuffix(t))
		}
	}
	return nil
}

// taskSuffix marks next-week tasks inside the merged Next section
func taskSuffix(t domain.Task) string {
	if t.When == domain.WhenNextWeek {
		return " [next week]"
	}
	return ""
}
