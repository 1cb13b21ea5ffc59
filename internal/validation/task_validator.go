package validation

import (
	"strings"

	"someday/internal/domain"
)

const (
	FieldTitle = "title"
	FieldWhen  = "when"

	titleRequiredMessage = "Please enter a task title"
)

// TaskValidator provides validation for task create and update
type TaskValidator struct{}

// NewTaskValidator creates a new task validator
func NewTaskValidator() *TaskValidator {
	return &TaskValidator{}
}

// ValidateTaskInput validates the editable fields of a task.
// An unset bucket is allowed and defaults to today.
func (tv *TaskValidator) ValidateTaskInput(in domain.TaskInput) error {
	validationError := NewValidationError()

	if strings.TrimSpace(in.Title) == "" {
		validationError.AddRequiredError(FieldTitle, titleRequiredMessage)
	}
	if in.When != "" && !in.When.IsValid() {
		validationError.AddInvalidValueError(FieldWhen, in.When, "must be today, nextday, nextweek or someday")
	}

	if validationError.HasErrors() {
		return validationError
	}
	return nil
}
