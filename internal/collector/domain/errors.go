package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrCollectorNotFound — профиль сборщика не найден
	ErrCollectorNotFound = errors.New("collector not found")
	// ErrForbidden — попытка изменить чужой профиль
	ErrForbidden = errors.New("operation not allowed for this user")
	// ErrValidation — входные данные не прошли проверку
	ErrValidation = errors.New("validation failed")
	// ErrDistrictNotFound — указан несуществующий район
	ErrDistrictNotFound = errors.New("district not found")
)

// ValidationError агрегирует ошибки по полям ввода
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: map[string]string{}}
}

func (e *ValidationError) Add(field, message string) {
	e.Fields[field] = message
}

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
