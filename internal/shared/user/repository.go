package user

import (
	"context"
	"errors"
)

var (
	// ErrUserNotFound пользователь не найден
	ErrUserNotFound = errors.New("user not found")

	// ErrUserInactive пользователь неактивен
	ErrUserInactive = errors.New("user is inactive")

	// ErrEmailTaken email уже зарегистрирован
	ErrEmailTaken = errors.New("email already taken")
)

// Repository — интерфейс доступа к пользователям
type Repository interface {
	// FindByID находит пользователя по ID
	// Возвращает ErrUserNotFound если не найден
	FindByID(ctx context.Context, userID string) (*User, error)

	// FindByEmail находит пользователя по email
	// Возвращает ErrUserNotFound если не найден
	FindByEmail(ctx context.Context, email string) (*User, error)

	// Exists проверяет существование пользователя
	Exists(ctx context.Context, userID string) (bool, error)

	// CreateClient создает пользователя с ролью CLIENT и его профиль
	// в одной транзакции. Возвращает ErrEmailTaken при дубликате email.
	CreateClient(ctx context.Context, u *User, districtID int64) error
}
