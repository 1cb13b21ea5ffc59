package cli

import (
	"fmt"

	"someday/internal/errors"
	"someday/internal/logging"
	"someday/internal/validation"
)

// ErrorHandler provides centralized error handling for command handlers
type ErrorHandler struct{}

// NewErrorHandler creates a new error handler
func NewErrorHandler() *ErrorHandler {
	return &ErrorHandler{}
}

// Handle provides user-friendly error messages for validation and other errors.
// Failures that are not the user's doing are written to the debug log with
// their code.
func (eh *ErrorHandler) Handle(operation string, err error) error {
	if err == nil {
		return fmt.Errorf("failed to %s: unknown error", operation)
	}

	if errors.ShouldLogError(err) {
		logging.Debugf("%s failed [%s]: %v\n", operation, errors.GetErrorCode(err), err)
	}

	// Bare validation errors from the validators
	if validationErr, ok := err.(*validation.ValidationError); ok {
		return fmt.Errorf("failed to %s: %s", operation, validationErr.GetUserFriendlyMessage())
	}

	// Handle AppError types
	if _, ok := errors.AsAppError(err); ok {
		return fmt.Errorf("failed to %s: %s", operation, errors.GetUserMessage(err))
	}

	// Fallback for unknown errors
	return fmt.Errorf("failed to %s: %w", operation, err)
}
