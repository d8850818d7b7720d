package user

import "time"

// User — модель пользователя, общая для всех сервисов
type User struct {
	ID           string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Phone        string
	Address      string
	Role         string // CLIENT | COLLECTOR | ADMIN
	Status       string // ACTIVE | INACTIVE | BANNED
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsActive проверяет, активен ли пользователь
func (u *User) IsActive() bool {
	return u.Status == "ACTIVE"
}

// HasRole проверяет наличие роли
func (u *User) HasRole(role string) bool {
	return u.Role == role
}

// FullName возвращает полное имя пользователя
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
