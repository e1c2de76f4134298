package response

import (
	"errors"
	"net/http"

	"github.com/arinakim/lingvo-portal/internal/apperr"
)

// StatusFromError возвращает HTTP-статус для типизированной ошибки бизнес-уровня.
// Неопознанные ошибки считаются внутренними.
func StatusFromError(err error) int {
	switch {
	case errors.Is(err, apperr.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperr.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, apperr.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperr.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// MessageFromError возвращает стабильное сообщение для клиента.
// Внутренние детали и идентификаторы наружу не выходят.
func MessageFromError(err error) string {
	switch {
	case errors.Is(err, apperr.ErrValidation):
		return "invalid request"
	case errors.Is(err, apperr.ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, apperr.ErrForbidden):
		return "access denied"
	case errors.Is(err, apperr.ErrNotFound):
		return "not found"
	case errors.Is(err, apperr.ErrConflict):
		return "conflict"
	default:
		return "internal error"
	}
}
