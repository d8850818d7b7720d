package in

import (
	"context"
	"time"

	"wastehub/internal/request/domain"
)

// GetRequestInput — входные данные для получения заявки
type GetRequestInput struct {
	UserID    string
	Role      string
	RequestID string
}

// GetRequestUseCase — интерфейс use-case получения заявки
type GetRequestUseCase interface {
	Execute(ctx context.Context, input GetRequestInput) (*domain.RequestView, error)
}

// ListRequestsInput — входные данные для списка заявок.
// Набор видимых заявок зависит от роли: клиент видит свои,
// сборщик — назначенные ему и свободные PENDING, админ — все.
type ListRequestsInput struct {
	UserID     string
	Role       string
	Status     string
	Type       string
	DistrictID int64
	CityID     int64
	Date       time.Time // нулевое значение — без фильтра по дате вывоза
	Limit      int
	Offset     int
}

// ListRequestsOutput — результат списка заявок
type ListRequestsOutput struct {
	Requests []domain.RequestView `json:"requests"`
	Count    int                  `json:"count"`
}

// ListRequestsUseCase — интерфейс use-case списка заявок
type ListRequestsUseCase interface {
	Execute(ctx context.Context, input ListRequestsInput) (*ListRequestsOutput, error)
}
