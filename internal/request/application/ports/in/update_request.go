package in

import (
	"context"

	"wastehub/internal/request/domain"
)

// UpdateRequestInput — входные данные для редактирования заявки.
// Редактировать можно только свою заявку и только пока она PENDING.
type UpdateRequestInput struct {
	UserID      string
	RequestID   string
	WasteTypeID int64
	DistrictID  int64
	Notes       string
}

// UpdateRequestUseCase — интерфейс use-case редактирования заявки
type UpdateRequestUseCase interface {
	Execute(ctx context.Context, input UpdateRequestInput) (*domain.RequestView, error)
}

// UpdateStatusInput — входные данные для перехода статуса сборщиком
type UpdateStatusInput struct {
	UserID    string // пользователь-сборщик
	RequestID string
	NewStatus string // ACCEPTED | IN_PROGRESS | COMPLETED
}

// UpdateStatusOutput — результат перехода статуса
type UpdateStatusOutput struct {
	RequestID string `json:"request_id"`
	Status    string `json:"status"`
}

// UpdateStatusUseCase — интерфейс use-case перехода статуса
type UpdateStatusUseCase interface {
	Execute(ctx context.Context, input UpdateStatusInput) (*UpdateStatusOutput, error)
}
