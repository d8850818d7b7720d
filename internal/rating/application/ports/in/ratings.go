package in

import (
	"context"

	"wastehub/internal/rating/domain"
)

// SubmitRatingInput — входные данные для оценки выполненной заявки
type SubmitRatingInput struct {
	UserID    string `json:"user_id"`
	RequestID string `json:"request_id"`
	Score     int    `json:"score"`
	Comment   string `json:"comment"`
}

// SubmitRatingUseCase — интерфейс use-case создания оценки
type SubmitRatingUseCase interface {
	Execute(ctx context.Context, input SubmitRatingInput) (*domain.Rating, error)
}

// UpdateRatingInput — входные данные для изменения своей оценки
type UpdateRatingInput struct {
	UserID   string
	RatingID string
	Score    int
	Comment  string
}

// UpdateRatingUseCase — интерфейс use-case изменения оценки
type UpdateRatingUseCase interface {
	Execute(ctx context.Context, input UpdateRatingInput) (*domain.Rating, error)
}

// DeleteRatingInput — входные данные для удаления своей оценки
type DeleteRatingInput struct {
	UserID   string
	RatingID string
}

// DeleteRatingUseCase — интерфейс use-case удаления оценки
type DeleteRatingUseCase interface {
	Execute(ctx context.Context, input DeleteRatingInput) error
}

// ListRatingsInput — входные данные списков оценок
type ListRatingsInput struct {
	CollectorID string
	ClientID    string
}

// ListRatingsUseCase — интерфейс use-case списков оценок
type ListRatingsUseCase interface {
	Execute(ctx context.Context, input ListRatingsInput) ([]domain.Rating, error)
}

// CollectorStatsUseCase — интерфейс use-case статистики сборщика
type CollectorStatsUseCase interface {
	Execute(ctx context.Context, collectorID string) (*domain.CollectorStats, error)
}
