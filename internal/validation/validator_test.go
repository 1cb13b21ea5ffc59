package validation

import (
	"testing"

	"someday/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestTaskValidator_ValidateTaskInputTitle(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		wantErr bool
	}{
		{"plain title", "Plant bulbs", false},
		{"single character", "x", false},
		{"empty", "", true},
		{"whitespace only", "   ", true},
		{"tabs and newlines", "\t\n", true},
	}

	tv := NewTaskValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tv.ValidateTaskInput(domain.TaskInput{Title: tt.title, When: domain.WhenToday})
			if tt.wantErr {
				assert.IsType(t, &ValidationError{}, err)
				assert.Contains(t, err.Error(), "title")
				assert.Equal(t, "Please enter a task title", err.(*ValidationError).GetUserFriendlyMessage())
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTaskValidator_ValidateTaskInput(t *testing.T) {
	tv := NewTaskValidator()

	assert.NoError(t, tv.ValidateTaskInput(domain.TaskInput{Title: "Read"}))
	assert.NoError(t, tv.ValidateTaskInput(domain.TaskInput{Title: "Read", When: domain.WhenSomeday, Project: "Books"}))

	err := tv.ValidateTaskInput(domain.TaskInput{Title: " ", When: "later"})
	ve, ok := err.(*ValidationError)
	if assert.True(t, ok) {
		assert.Len(t, ve.Errors, 2)
		assert.Equal(t, FieldTitle, ve.Errors[0].Field)
		assert.Equal(t, FieldWhen, ve.Errors[1].Field)
		assert.Equal(t, ErrorTypeInvalidValue, ve.Errors[1].Type)
	}
}

func TestProjectValidator_ValidateName(t *testing.T) {
	pv := NewProjectValidator()

	assert.NoError(t, pv.ValidateName("Garden"))
	err := pv.ValidateName("  ")
	assert.Error(t, err)
	assert.Equal(t, "Please enter a project name", err.(*ValidationError).GetUserFriendlyMessage())
}
