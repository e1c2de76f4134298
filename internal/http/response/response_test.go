package response_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/go-playground/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arinakim/lingvo-portal/internal/apperr"
	"github.com/arinakim/lingvo-portal/internal/http/response"
	"github.com/arinakim/lingvo-portal/internal/models"
)

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{apperr.ErrValidation, http.StatusBadRequest},
		{apperr.ErrUnauthorized, http.StatusUnauthorized},
		{apperr.ErrForbidden, http.StatusForbidden},
		{apperr.ErrNotFound, http.StatusNotFound},
		{apperr.ErrConflict, http.StatusConflict},
		{assert.AnError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, response.StatusFromError(tt.err))
		// Обёрнутая ошибка должна распознаваться так же.
		assert.Equal(t, tt.want, response.StatusFromError(fmt.Errorf("op: %w", tt.err)))
	}
}

func TestMessageFromError_HidesInternals(t *testing.T) {
	err := fmt.Errorf("op: pq: duplicate key value violates unique constraint: %w", apperr.ErrConflict)
	assert.Equal(t, "conflict", response.MessageFromError(err))

	internal := fmt.Errorf("op: connection refused to 10.0.0.5:5432")
	assert.Equal(t, "internal error", response.MessageFromError(internal))
}

func TestValidationError(t *testing.T) {
	v := validator.New()

	err := v.Struct(models.DummyCheckoutRequest{PaymentMethod: "crypto"})
	require.Error(t, err)

	resp := response.ValidationError(err.(validator.ValidationErrors))

	assert.Equal(t, response.StatusError, resp.Status)
	assert.Contains(t, resp.Error, "field PackageID is a required field")
	assert.Contains(t, resp.Error, "field PaymentMethod must be one of: bank_transfer wallet cash")
}

func TestOKWithData(t *testing.T) {
	resp := response.OKWithData(map[string]int{"id": 42})
	assert.Equal(t, response.StatusOK, resp.Status)
	assert.Empty(t, resp.Error)
	assert.NotNil(t, resp.Data)
}
