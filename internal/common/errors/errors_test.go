package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", NewValidationFailed(map[string]string{"a": "A is required"}), http.StatusUnprocessableEntity},
		{"template missing", NewTemplateNotFound("t1"), http.StatusNotFound},
		{"submission missing", NewSubmissionNotFound("s1"), http.StatusNotFound},
		{"bad request", NewInvalidRequest("submissionId is required"), http.StatusBadRequest},
		{"storage", NewStorageError("insert submission", stderrors.New("connection reset")), http.StatusInternalServerError},
		{"export", NewExportError("pdf", stderrors.New("boom")), http.StatusInternalServerError},
		{"plain", stderrors.New("plain"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestWrappedErrorsKeepTheirCode(t *testing.T) {
	base := NewTemplateNotFound("abc")
	wrapped := fmt.Errorf("export: %w", base)

	assert.True(t, IsCode(wrapped, ErrCodeTemplateNotFound))
	assert.False(t, IsCode(wrapped, ErrCodeStorage))

	appErr, ok := As(wrapped)
	require.True(t, ok)
	assert.Equal(t, "form template abc not found", appErr.Message)
}

func TestStorageErrorSurfacesCause(t *testing.T) {
	cause := stderrors.New("server selection timeout")
	err := NewStorageError("insert submission", cause)

	assert.Equal(t, "insert submission: server selection timeout", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestValidationFailedMessageListsFields(t *testing.T) {
	err := NewValidationFailed(map[string]string{
		"veh1_vin":             "Invalid format",
		"applicant_first_name": "First Name is required",
	})

	assert.Equal(t, "validation failed for 2 field(s): applicant_first_name, veh1_vin", err.Error())
	assert.Len(t, err.Fields, 2)
}
