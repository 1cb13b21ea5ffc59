package validation

import "strings"

const FieldProjectName = "project_name"

// ProjectValidator provides validation for project names
type ProjectValidator struct{}

// NewProjectValidator creates a new project validator
func NewProjectValidator() *ProjectValidator {
	return &ProjectValidator{}
}

// ValidateName rejects names that are empty after trimming
func (pv *ProjectValidator) ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		validationError := NewValidationError()
		validationError.AddRequiredError(FieldProjectName, "Please enter a project name")
		return validationError
	}
	return nil
}
