package in

import (
	"context"

	"wastehub/internal/request/domain"
)

// ToggleRecurrenceInput — включение/выключение правила повторения
type ToggleRecurrenceInput struct {
	UserID    string
	RequestID string
	Active    bool
}

// ToggleRecurrenceUseCase — интерфейс use-case переключения правила
type ToggleRecurrenceUseCase interface {
	Execute(ctx context.Context, input ToggleRecurrenceInput) (*domain.RecurrenceView, error)
}

// GetRecurrenceInput — входные данные для получения правила заявки
type GetRecurrenceInput struct {
	UserID    string
	RequestID string
}

// GetRecurrenceUseCase — интерфейс use-case получения правила повторения
type GetRecurrenceUseCase interface {
	Execute(ctx context.Context, input GetRecurrenceInput) (*domain.RecurrenceView, error)
}

// ListRecurrencesInput — входные данные для списка правил клиента
type ListRecurrencesInput struct {
	UserID string
}

// ListRecurrencesUseCase — интерфейс use-case списка правил повторения
type ListRecurrencesUseCase interface {
	Execute(ctx context.Context, input ListRecurrencesInput) ([]domain.RecurrenceView, error)
}

// UpcomingCollectionsInput — входные данные для предстоящих вывозов
type UpcomingCollectionsInput struct {
	UserID string
	Days   int // горизонт в днях, по умолчанию 30
}

// UpcomingCollectionsUseCase — интерфейс use-case предстоящих вывозов
type UpcomingCollectionsUseCase interface {
	Execute(ctx context.Context, input UpcomingCollectionsInput) ([]domain.UpcomingCollection, error)
}
