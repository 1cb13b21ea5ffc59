package domain

import "strings"

// Project groups someday tasks. The name is the key.
type Project struct {
	Name string
}

// NewProject creates a Project with a trimmed name.
func NewProject(name string) Project {
	return Project{Name: strings.TrimSpace(name)}
}

// String returns the project name for display purposes.
func (p Project) String() string {
	return p.Name
}

// ProjectNames returns the names of projects in collection order.
func ProjectNames(projects []Project) []string {
	names := make([]string, len(projects))
	for i, p := range projects {
		names[i] = p.Name
	}
	return names
}
