package errors_test

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/colorflash/internal/errors"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name   string
		err    *errors.AppError
		code   string
		status int
	}{
		{"not found", errors.NewNotFoundError("result", 7), errors.ErrCodeNotFound, http.StatusNotFound},
		{"validation", errors.NewValidationError("limit", "must be positive"), errors.ErrCodeValidation, http.StatusBadRequest},
		{"internal", errors.NewInternalError(fmt.Errorf("boom")), errors.ErrCodeInternal, http.StatusInternalServerError},
		{"bad request", errors.NewBadRequestError("invalid json"), errors.ErrCodeBadRequest, http.StatusBadRequest},
		{"unavailable", errors.NewUnavailableError("database", nil), errors.ErrCodeUnavailable, http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.status, tt.err.Status)
			assert.Contains(t, tt.err.Error(), tt.code)
		})
	}
}

func TestAsAppError(t *testing.T) {
	inner := errors.NewValidationError("difficulty", "unknown")
	wrapped := fmt.Errorf("update settings: %w", inner)

	assert.Same(t, inner, errors.AsAppError(wrapped))

	plain := stderrors.New("disk full")
	got := errors.AsAppError(plain)
	require.NotNil(t, got)
	assert.Equal(t, errors.ErrCodeInternal, got.Code)
	assert.ErrorIs(t, got, plain)
}
