// Package viewmodel derives the visible board from the task and project
// collections. Build is pure and is re-run after every mutation.
package viewmodel

import "someday/internal/domain"

// BucketKind identifies one of the fixed board sections.
type BucketKind int

const (
	BucketToday BucketKind = iota
	BucketNext
	BucketUnplanned
	BucketProject
)

// Bucket names a board section. Project is set only for BucketProject.
type Bucket struct {
	Kind    BucketKind
	Project string
}

// Title returns the display heading of the bucket.
func (b Bucket) Title() string {
	switch b.Kind {
	case BucketToday:
		return "Today"
	case BucketNext:
		return "Next"
	case BucketUnplanned:
		return "Unplanned"
	default:
		return b.Project
	}
}

// ProjectGroup holds the open someday tasks of one project.
type ProjectGroup struct {
	Name  string
	Tasks []domain.Task
}

// Board is the rendered partition of open tasks.
type Board struct {
	Today     []domain.Task
	Next      []domain.Task
	Unplanned []domain.Task
	Projects  []ProjectGroup
}

// Build partitions the open tasks into buckets, keeping collection order
// within each. Done tasks appear nowhere. A someday task pointing at a
// project that is not in projects lands in Unplanned.
func Build(tasks []domain.Task, projects []domain.Project) Board {
	board := Board{
		Today:     []domain.Task{},
		Next:      []domain.Task{},
		Unplanned: []domain.Task{},
		Projects:  make([]ProjectGroup, len(projects)),
	}

	index := make(map[string]int, len(projects))
	for i, p := range projects {
		board.Projects[i] = ProjectGroup{Name: p.Name, Tasks: []domain.Task{}}
		if _, dup := index[p.Name]; !dup {
			index[p.Name] = i
		}
	}

	for _, t := range tasks {
		if t.Done {
			continue
		}
		switch {
		case t.When == domain.WhenToday:
			board.Today = append(board.Today, t)
		case t.When.IsNext():
			board.Next = append(board.Next, t)
		case t.When == domain.WhenSomeday && t.Project != nil:
			if i, ok := index[*t.Project]; ok {
				board.Projects[i].Tasks = append(board.Projects[i].Tasks, t)
				continue
			}
			board.Unplanned = append(board.Unplanned, t)
		default:
			board.Unplanned = append(board.Unplanned, t)
		}
	}
	return board
}

// Sections returns the task buckets in display order, projects last.
func (b Board) Sections() []Section {
	sections := []Section{
		{Bucket: Bucket{Kind: BucketToday}, Tasks: b.Today},
		{Bucket: Bucket{Kind: BucketNext}, Tasks: b.Next},
		{Bucket: Bucket{Kind: BucketUnplanned}, Tasks: b.Unplanned},
	}
	for _, g := range b.Projects {
		sections = append(sections, Section{
			Bucket: Bucket{Kind: BucketProject, Project: g.Name},
			Tasks:  g.Tasks,
		})
	}
	return sections
}

// Section pairs a bucket with its tasks.
type Section struct {
	Bucket Bucket
	Tasks  []domain.Task
}

// Count returns the number of open tasks on the board.
func (b Board) Count() int {
	n := len(b.Today) + len(b.Next) + len(b.Unplanned)
	for _, g := range b.Projects {
		n += len(g.Tasks)
	}
	return n
}
