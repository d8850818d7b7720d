package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrRequestNotFound возвращается когда заявка не найдена
	ErrRequestNotFound = errors.New("collection request not found")

	// ErrValidation возвращается при невалидных входных данных
	ErrValidation = errors.New("validation failed")

	// ErrForbidden возвращается при отсутствии прав на операцию
	ErrForbidden = errors.New("operation forbidden")

	// ErrInvalidTransition возвращается при недопустимом переходе статуса
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrConflict возвращается когда состояние заявки изменилось параллельно
	ErrConflict = errors.New("request state conflict")

	// ErrCollectorUnavailable возвращается когда сборщик недоступен
	ErrCollectorUnavailable = errors.New("collector is not available")

	// ErrProfileNotFound возвращается когда профиль клиента или сборщика не найден
	ErrProfileNotFound = errors.New("profile not found")
)

// ValidationError — ошибка валидации с привязкой к полям.
// errors.Is(err, ErrValidation) вернет true.
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string]string)}
}

// Add добавляет ошибку для поля
func (e *ValidationError) Add(field, message string) {
	e.Fields[field] = message
}

// HasErrors проверяет, есть ли накопленные ошибки
func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, msg))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
