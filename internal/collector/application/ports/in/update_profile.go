package in

import (
	"context"

	"wastehub/internal/collector/domain"
)

// UpdateProfileInput — частичное обновление профиля сборщика
type UpdateProfileInput struct {
	UserID      string
	Role        string
	CollectorID string
	DistrictID  *int64
	PhotoURL    *string
}

// UpdateProfileUseCase — редактирование профиля (свой профиль либо админ)
type UpdateProfileUseCase interface {
	Execute(ctx context.Context, input UpdateProfileInput) (*domain.Collector, error)
}

// SetAvailabilityInput — переключение доступности сборщика
type SetAvailabilityInput struct {
	UserID      string
	Role        string
	CollectorID string
	Available   bool
}

// SetAvailabilityOutput — результат переключения с перечнем отмененных заявок
type SetAvailabilityOutput struct {
	CollectorID       string   `json:"collector_id"`
	IsAvailable       bool     `json:"is_available"`
	CancelledRequests []string `json:"cancelled_requests"`
}

// SetAvailabilityUseCase — переключение доступности с каскадной отменой
// PENDING заявок сборщика
type SetAvailabilityUseCase interface {
	Execute(ctx context.Context, input SetAvailabilityInput) (*SetAvailabilityOutput, error)
}
