// Package out — исходящие порты admin service.
package out

import (
	"context"

	"wastehub/internal/admin/domain"
	"wastehub/internal/shared/user"
)

// ListUsersFilters — фильтры списка пользователей
type ListUsersFilters struct {
	Role   string
	Status string
	Limit  int
	Offset int
}

// AdminRepository — порт хранилища admin service
type AdminRepository interface {
	// CreateUser создает пользователя и, для ролей CLIENT/COLLECTOR,
	// его профиль в одной транзакции
	CreateUser(ctx context.Context, u *user.User, districtID int64) error

	FindUserByID(ctx context.Context, userID string) (*domain.UserSummary, error)

	// ListUsers возвращает страницу пользователей и общее число подходящих
	ListUsers(ctx context.Context, filters ListUsersFilters) ([]domain.UserSummary, int, error)

	// UpdateUserStatus возвращает число обновленных строк
	UpdateUserStatus(ctx context.Context, userID, status string) (int64, error)

	Overview(ctx context.Context) (*domain.Overview, error)

	DistrictExists(ctx context.Context, districtID int64) (bool, error)
}
