// Package apperr определяет типизированные ошибки уровня бизнес-логики.
//
// Сервисы оборачивают эти ошибки через fmt.Errorf("%s: %w", op, err),
// а HTTP-обработчики разворачивают их через errors.Is и преобразуют
// в стабильные коды ответа. Внутренние детали наружу не выходят.
package apperr

import "errors"

var (
	// ErrUnauthorized — запрос без валидной идентификации.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden — пользователь аутентифицирован, но не владелец ресурса или не та роль.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound — сущность не найдена.
	ErrNotFound = errors.New("not found")
	// ErrValidation — входные данные некорректны семантически.
	ErrValidation = errors.New("validation failed")
	// ErrConflict — нарушение инварианта: дубликат, неверное состояние перехода.
	ErrConflict = errors.New("conflict")
)
