package errors_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	apperror "medstock/internal/errors"
)

func TestMapToHTTPStatus_TypedErrors(t *testing.T) {
	cases := []struct {
		err      error
		status   int
		category string
	}{
		{apperror.NewValidationError("x"), http.StatusBadRequest, "VALIDATION_ERROR"},
		{apperror.NewUnauthorizedError("x"), http.StatusUnauthorized, "UNAUTHORIZED"},
		{apperror.NewNotFoundError("x"), http.StatusNotFound, "NOT_FOUND"},
		{apperror.NewConflictError("x"), http.StatusConflict, "CONFLICT"},
		{apperror.NewInternalError("x", nil), http.StatusInternalServerError, "INTERNAL_ERROR"},
		{apperror.NewGatewayTimeoutError("x", context.DeadlineExceeded), http.StatusGatewayTimeout, "GATEWAY_TIMEOUT"},
	}

	for _, c := range cases {
		status, category, message := apperror.MapToHTTPStatus(c.err)
		assert.Equal(t, c.status, status)
		assert.Equal(t, c.category, category)
		assert.Equal(t, c.err.Error(), message)
	}
}

func TestMapToHTTPStatus_WrappedAppError(t *testing.T) {
	wrapped := fmt.Errorf("camada de serviço: %w", apperror.NewNotFoundError("item"))

	status, category, _ := apperror.MapToHTTPStatus(wrapped)

	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", category)
}

func TestMapToHTTPStatus_UntypedError(t *testing.T) {
	status, category, message := apperror.MapToHTTPStatus(errors.New("boom"))

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "UNKNOWN_ERROR", category)
	assert.Equal(t, "Ocorreu um erro inesperado.", message)
}

func TestNewDBError_KeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := apperror.NewDBError("Falha ao listar", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection refused")
}
