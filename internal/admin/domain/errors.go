package domain

import "errors"

var (
	// ErrUserNotFound — пользователь не найден
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidEmail — некорректный email
	ErrInvalidEmail = errors.New("invalid email address")
	// ErrInvalidRole — недопустимая роль
	ErrInvalidRole = errors.New("invalid role")
	// ErrInvalidStatus — недопустимый статус
	ErrInvalidStatus = errors.New("invalid status")
	// ErrPasswordTooShort — пароль короче минимальной длины
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")
	// ErrDistrictRequired — для клиента и сборщика обязателен район
	ErrDistrictRequired = errors.New("district is required for this role")
)
