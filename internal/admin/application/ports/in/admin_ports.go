// Package in — входящие порты admin service.
package in

import (
	"context"

	"wastehub/internal/admin/domain"
)

// CreateUserInput — данные нового пользователя. DistrictID обязателен
// для ролей CLIENT и COLLECTOR.
type CreateUserInput struct {
	Email      string
	Password   string
	FirstName  string
	LastName   string
	Phone      string
	Role       string
	Status     string
	DistrictID int64
}

// CreateUserOutput — созданный пользователь
type CreateUserOutput struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

// CreateUserUseCase — создание пользователя администратором
type CreateUserUseCase interface {
	Execute(ctx context.Context, input CreateUserInput) (*CreateUserOutput, error)
}

// ListUsersInput — фильтры списка пользователей
type ListUsersInput struct {
	Role   string
	Status string
	Limit  int
	Offset int
}

// ListUsersOutput — страница пользователей
type ListUsersOutput struct {
	Users []domain.UserSummary `json:"users"`
	Total int                  `json:"total"`
}

// ListUsersUseCase — список пользователей с фильтрами
type ListUsersUseCase interface {
	Execute(ctx context.Context, input ListUsersInput) (*ListUsersOutput, error)
}

// UpdateUserStatusInput — смена статуса пользователя
type UpdateUserStatusInput struct {
	UserID string
	Status string
}

// UpdateUserStatusUseCase — активация, деактивация или бан пользователя
type UpdateUserStatusUseCase interface {
	Execute(ctx context.Context, input UpdateUserStatusInput) (*domain.UserSummary, error)
}

// GetOverviewInput — параметров нет, зарезервировано на будущее
type GetOverviewInput struct{}

// GetOverviewOutput — сводка системы с меткой времени формирования
type GetOverviewOutput struct {
	Timestamp string          `json:"timestamp"`
	Overview  domain.Overview `json:"overview"`
}

// GetOverviewUseCase — сводные показатели для админской панели
type GetOverviewUseCase interface {
	Execute(ctx context.Context, input GetOverviewInput) (*GetOverviewOutput, error)
}
