package errors

import (
	"errors"
	"testing"
)

func TestErrorType_String(t *testing.T) {
	tests := []struct {
		name      string
		errorType ErrorType
		expected  string
	}{
		{"Validation", ErrorTypeValidation, "validation"},
		{"NotFound", ErrorTypeNotFound, "not_found"},
		{"Persistence", ErrorTypePersistence, "persistence"},
		{"InvalidInput", ErrorTypeInvalidInput, "invalid_input"},
		{"Conflict", ErrorTypeConflict, "conflict"},
		{"Unknown", ErrorType(999), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := tt.errorType.String(); result != tt.expected {
				t.Errorf("ErrorType.String() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestAppError_Error(t *testing.T) {
	withoutCause := &AppError{Type: ErrorTypeValidation, Message: "title is required"}
	if got := withoutCause.Error(); got != "validation: title is required" {
		t.Errorf("AppError.Error() = %v", got)
	}

	withCause := &AppError{Type: ErrorTypePersistence, Message: "save failed", Cause: errors.New("disk full")}
	if got := withCause.Error(); got != "persistence: save failed (caused by: disk full)" {
		t.Errorf("AppError.Error() = %v", got)
	}
}

func TestAppError_Is(t *testing.T) {
	a := &AppError{Type: ErrorTypeConflict, Code: "CONFLICT"}
	b := &AppError{Type: ErrorTypeConflict, Code: "CONFLICT"}
	c := &AppError{Type: ErrorTypeNotFound, Code: "NOT_FOUND"}

	if !a.Is(b) {
		t.Errorf("AppError.Is() should match same type and code")
	}
	if a.Is(c) {
		t.Errorf("AppError.Is() should not match different type")
	}
	if a.Is(errors.New("regular")) {
		t.Errorf("AppError.Is() should not match regular errors")
	}
}
