package in

import "context"

// CancelRequestInput — входные данные для отмены заявки клиентом.
// Отменить можно только свою заявку и только пока она PENDING.
type CancelRequestInput struct {
	UserID    string
	RequestID string
}

// CancelRequestOutput — результат отмены
type CancelRequestOutput struct {
	RequestID string `json:"request_id"`
	Status    string `json:"status"`
}

// CancelRequestUseCase — интерфейс use-case отмены заявки
type CancelRequestUseCase interface {
	Execute(ctx context.Context, input CancelRequestInput) (*CancelRequestOutput, error)
}

// DeleteRequestInput — входные данные для удаления заявки.
// Удалить можно только свою заявку в статусе PENDING или CANCELLED.
type DeleteRequestInput struct {
	UserID    string
	Role      string
	RequestID string
}

// DeleteRequestUseCase — интерфейс use-case удаления заявки
type DeleteRequestUseCase interface {
	Execute(ctx context.Context, input DeleteRequestInput) error
}
