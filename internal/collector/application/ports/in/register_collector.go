// Package in — входящие порты collector service.
package in

import (
	"context"

	"wastehub/internal/collector/domain"
)

// RegisterCollectorInput — данные регистрации сборщика
type RegisterCollectorInput struct {
	Email      string
	Password   string
	FirstName  string
	LastName   string
	Phone      string
	DistrictID int64
	PhotoURL   string
}

// RegisterCollectorOutput — результат регистрации: токен и профиль
type RegisterCollectorOutput struct {
	Token     string            `json:"token"`
	Collector *domain.Collector `json:"collector"`
}

// RegisterCollectorUseCase — регистрация сборщика (пользователь + профиль)
type RegisterCollectorUseCase interface {
	Execute(ctx context.Context, input RegisterCollectorInput) (*RegisterCollectorOutput, error)
}
