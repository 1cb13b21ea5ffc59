package viewmodel

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"someday/internal/domain"
)

func task(id string, when domain.When, project string, done bool) domain.Task {
	t := domain.Task{ID: id, Title: id, When: when, Done: done}
	if when == domain.WhenSomeday {
		t.Project = domain.ProjectRef(project)
	}
	return t
}

func ids(tasks []domain.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func TestBuild_Buckets(t *testing.T) {
	tasks := []domain.Task{
		task("t1", domain.WhenToday, "", false),
		task("n1", domain.WhenNextWeek, "", false),
		task("s1", domain.WhenSomeday, "", false),
		task("g1", domain.WhenSomeday, "Garden", false),
		task("n2", domain.WhenNextDay, "", false),
		task("t2", domain.WhenToday, "", true),
		task("h1", domain.WhenSomeday, "House", false),
		task("g2", domain.WhenSomeday, "Garden", false),
	}
	projects := []domain.Project{{Name: "House"}, {Name: "Garden"}, {Name: "Empty"}}

	board := Build(tasks, projects)

	assert.Equal(t, []string{"t1"}, ids(board.Today))
	assert.Equal(t, []string{"n1", "n2"}, ids(board.Next))
	assert.Equal(t, []string{"s1"}, ids(board.Unplanned))
	require.Len(t, board.Projects, 3)
	assert.Equal(t, "House", board.Projects[0].Name)
	assert.Equal(t, []string{"h1"}, ids(board.Projects[0].Tasks))
	assert.Equal(t, "Garden", board.Projects[1].Name)
	assert.Equal(t, []string{"g1", "g2"}, ids(board.Projects[1].Tasks))
	assert.Empty(t, board.Projects[2].Tasks)
	assert.Equal(t, 7, board.Count())
}

func TestBuild_DanglingProjectFallsIntoUnplanned(t *testing.T) {
	board := Build([]domain.Task{task("x", domain.WhenSomeday, "Gone", false)}, nil)

	assert.Equal(t, []string{"x"}, ids(board.Unplanned))
	assert.Empty(t, board.Projects)
}

func TestBuild_EmptyStore(t *testing.T) {
	board := Build(nil, nil)

	assert.Empty(t, board.Today)
	assert.Empty(t, board.Next)
	assert.Empty(t, board.Unplanned)
	assert.Empty(t, board.Projects)
	assert.Zero(t, board.Count())
}

func TestBuild_Partition(t *testing.T) {
	projects := []domain.Project{{Name: "A"}, {Name: "B"}}
	projectNames := []string{"", "A", "B", "C"}

	var tasks []domain.Task
	n := 0
	for _, when := range domain.AllWhens {
		for _, p := range projectNames {
			for _, done := range []bool{false, true} {
				n++
				tasks = append(tasks, task(fmt.Sprintf("task-%d", n), when, p, done))
			}
		}
	}

	board := Build(tasks, projects)

	seen := map[string]int{}
	for _, s := range board.Sections() {
		for _, t := range s.Tasks {
			seen[t.ID]++
		}
	}
	open := 0
	for _, tk := range tasks {
		if tk.Done {
			assert.Zero(t, seen[tk.ID], "done task %s is visible", tk.ID)
			continue
		}
		open++
		assert.Equal(t, 1, seen[tk.ID], "open task %s must appear exactly once", tk.ID)
	}
	assert.Equal(t, open, board.Count())
}

// bucketOf returns the section holding id
func bucketOf(board Board, id string) (Bucket, bool) {
	for _, s := range board.Sections() {
		for _, tk := range s.Tasks {
			if tk.ID == id {
				return s.Bucket, true
			}
		}
	}
	return Bucket{}, false
}

func TestBoard_SectionsPlaceEachTask(t *testing.T) {
	tasks := []domain.Task{
		task("today", domain.WhenToday, "", false),
		task("next", domain.WhenNextDay, "", false),
		task("loose", domain.WhenSomeday, "", false),
		task("bulbs", domain.WhenSomeday, "Garden", false),
		task("done", domain.WhenToday, "", true),
	}
	board := Build(tasks, []domain.Project{{Name: "Garden"}})

	tests := []struct {
		id       string
		expected Bucket
		title    string
		found    bool
	}{
		{id: "today", expected: Bucket{Kind: BucketToday}, title: "Today", found: true},
		{id: "next", expected: Bucket{Kind: BucketNext}, title: "Next", found: true},
		{id: "loose", expected: Bucket{Kind: BucketUnplanned}, title: "Unplanned", found: true},
		{id: "bulbs", expected: Bucket{Kind: BucketProject, Project: "Garden"}, title: "Garden", found: true},
		{id: "done"},
		{id: "missing"},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			got, ok := bucketOf(board, tt.id)
			assert.Equal(t, tt.found, ok)
			if tt.found {
				assert.Equal(t, tt.expected, got)
				assert.Equal(t, tt.title, got.Title())
			}
		})
	}
}
