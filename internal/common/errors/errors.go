// Package errors defines the error taxonomy shared by the form engine, the
// submission store and the export endpoint.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// ErrorCode identifies a class of failure.
type ErrorCode string

const (
	ErrCodeValidationFailed   ErrorCode = "VALIDATION_FAILED"
	ErrCodeStorage            ErrorCode = "STORAGE_ERROR"
	ErrCodeTemplateNotFound   ErrorCode = "TEMPLATE_NOT_FOUND"
	ErrCodeSubmissionNotFound ErrorCode = "SUBMISSION_NOT_FOUND"
	ErrCodeExport             ErrorCode = "EXPORT_ERROR"
	ErrCodeInvalidRequest     ErrorCode = "INVALID_REQUEST"
)

// AppError is a classified error. Fields is only populated for validation
// failures and maps a field name to its message.
type AppError struct {
	Code    ErrorCode         `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
	Err     error             `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// ==========================
// Constructors
// ==========================

// NewValidationFailed carries the per-field messages produced by the validator.
func NewValidationFailed(fields map[string]string) *AppError {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return &AppError{
		Code:    ErrCodeValidationFailed,
		Message: fmt.Sprintf("validation failed for %d field(s): %s", len(fields), strings.Join(names, ", ")),
		Fields:  fields,
	}
}

// NewStorageError wraps a persistence failure. The message of err is surfaced verbatim.
func NewStorageError(op string, err error) *AppError {
	return &AppError{
		Code:    ErrCodeStorage,
		Message: op,
		Err:     err,
	}
}

func NewTemplateNotFound(id string) *AppError {
	return &AppError{
		Code:    ErrCodeTemplateNotFound,
		Message: fmt.Sprintf("form template %s not found", id),
	}
}

func NewSubmissionNotFound(id string) *AppError {
	return &AppError{
		Code:    ErrCodeSubmissionNotFound,
		Message: fmt.Sprintf("form submission %s not found", id),
	}
}

func NewExportError(format string, err error) *AppError {
	return &AppError{
		Code:    ErrCodeExport,
		Message: fmt.Sprintf("failed to generate %s export", format),
		Err:     err,
	}
}

func NewInvalidRequest(msg string) *AppError {
	return &AppError{
		Code:    ErrCodeInvalidRequest,
		Message: msg,
	}
}

// ==========================
// Helpers
// ==========================

// As returns the first *AppError in err's chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsCode reports whether err carries the given code anywhere in its chain.
func IsCode(err error, code ErrorCode) bool {
	appErr, ok := As(err)
	return ok && appErr.Code == code
}

// HTTPStatus maps an error to the status code returned by the API.
func HTTPStatus(err error) int {
	appErr, ok := As(err)
	if !ok {
		return http.StatusInternalServerError
	}
	switch appErr.Code {
	case ErrCodeValidationFailed:
		return http.StatusUnprocessableEntity
	case ErrCodeTemplateNotFound, ErrCodeSubmissionNotFound:
		return http.StatusNotFound
	case ErrCodeInvalidRequest:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
