package errors

import (
	stderrors "errors"
	"fmt"
)

// Error codes
const (
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeValidation         = "VALIDATION_ERROR"
	ErrCodeConflict           = "CONFLICT"
	ErrCodeInternal           = "INTERNAL_ERROR"
	ErrCodeRepositoryTooSmall = "REPOSITORY_TOO_SMALL"
	ErrCodeStorageUnavailable = "STORAGE_UNAVAILABLE"
	ErrCodeMalformedQuestion  = "MALFORMED_QUESTION"
)

// AppError represents an application error with HTTP status code and error code
type AppError struct {
	Code    string // Error code (e.g., "NOT_FOUND", "VALIDATION_ERROR")
	Message string // Human-readable error message
	Status  int    // HTTP status code
	Err     error  // Wrapped underlying error (optional)
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for error wrapping support
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is reports whether target is an AppError with the same code, so that
// errors.Is(err, &AppError{Code: ErrCodeStorageUnavailable}) works.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// HasCode reports whether err wraps an AppError carrying code.
func HasCode(err error, code string) bool {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// NewNotFoundError creates a new NOT_FOUND error
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s not found: %v", resource, id),
		Status:  404,
	}
}

// NewValidationError creates a new VALIDATION_ERROR
func NewValidationError(field string, reason string) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: fmt.Sprintf("validation failed for %s: %s", field, reason),
		Status:  400,
	}
}

// NewConflictError creates a CONFLICT error for operations that do not fit
// the current session state.
func NewConflictError(message string) *AppError {
	return &AppError{
		Code:    ErrCodeConflict,
		Message: message,
		Status:  409,
	}
}

// NewInternalError creates a new INTERNAL_ERROR
func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: "internal server error",
		Status:  500,
		Err:     err,
	}
}

// NewRepositoryTooSmallError reports that the question bank cannot supply a quiz.
func NewRepositoryTooSmallError(have, need int) *AppError {
	return &AppError{
		Code:    ErrCodeRepositoryTooSmall,
		Message: fmt.Sprintf("question bank has %d questions, need at least %d", have, need),
		Status:  422,
	}
}

// NewStorageUnavailableError wraps a failed read or write of the quiz store.
func NewStorageUnavailableError(op string, err error) *AppError {
	return &AppError{
		Code:    ErrCodeStorageUnavailable,
		Message: fmt.Sprintf("storage unavailable during %s", op),
		Status:  503,
		Err:     err,
	}
}

// NewMalformedQuestionError reports a question record that could not be parsed.
func NewMalformedQuestionError(line int, reason string) *AppError {
	return &AppError{
		Code:    ErrCodeMalformedQuestion,
		Message: fmt.Sprintf("line %d: %s", line, reason),
		Status:  400,
	}
}
