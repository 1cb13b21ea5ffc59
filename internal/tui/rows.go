package tui

import (
	"someday/internal/domain"
	"someday/internal/viewmodel"
)

type rowKind int

const (
	rowSection rowKind = iota
	rowProject
	rowTask
	rowEmpty
)

// row is one rendered line of the board.
type row struct {
	kind    rowKind
	title   string
	project string
	count   int
	task    domain.Task
}

func (r row) selectable() bool {
	return r.kind == rowProject || r.kind == rowTask
}

// key identifies the row across refreshes for double activation.
func (r row) key() string {
	switch r.kind {
	case rowTask:
		return "task:" + r.task.ID
	case rowProject:
		return "project:" + r.project
	}
	return ""
}

// buildRows flattens the board into display rows. Tasks of collapsed
// projects are hidden.
func buildRows(board viewmodel.Board, collapsed func(string) bool) []row {
	var rows []row
	for _, s := range board.Sections() {
		if s.Bucket.Kind == viewmodel.BucketProject {
			rows = append(rows, row{kind: rowProject, title: s.Bucket.Title(), project: s.Bucket.Project, count: len(s.Tasks)})
			if collapsed(s.Bucket.Project) {
				continue
			}
		} else {
			rows = append(rows, row{kind: rowSection, title: s.Bucket.Title(), count: len(s.Tasks)})
		}
		if len(s.Tasks) == 0 {
			rows = append(rows, row{kind: rowEmpty})
			continue
		}
		for _, t := range s.Tasks {
			rows = append(rows, row{kind: rowTask, task: t, project: s.Bucket.Project})
		}
	}
	return rows
}
