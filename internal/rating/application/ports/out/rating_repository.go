package out

import (
	"context"

	"wastehub/internal/rating/domain"
	reqdomain "wastehub/internal/request/domain"
)

// RatingRepository — доступ к оценкам.
// Каждая запись оценки пересчитывает рейтинг сборщика в той же транзакции:
// рейтинг — производное значение, он никогда не меняется напрямую.
type RatingRepository interface {
	// CreateAndRecompute сохраняет оценку и пересчитывает рейтинг сборщика.
	// Возвращает domain.ErrDuplicateRating если заявка уже оценена.
	CreateAndRecompute(ctx context.Context, rating *domain.Rating) error

	// UpdateAndRecompute меняет оценку и пересчитывает рейтинг сборщика
	UpdateAndRecompute(ctx context.Context, ratingID string, score int, comment string) error

	// DeleteAndRecompute удаляет оценку и пересчитывает рейтинг сборщика
	DeleteAndRecompute(ctx context.Context, ratingID string) error

	// FindByID находит оценку по ID
	// Возвращает domain.ErrRatingNotFound если не найдена
	FindByID(ctx context.Context, ratingID string) (*domain.Rating, error)

	// FindByRequest находит оценку заявки
	FindByRequest(ctx context.Context, requestID string) (*domain.Rating, error)

	// ListByCollector возвращает оценки сборщика, новые первыми
	ListByCollector(ctx context.Context, collectorID string) ([]domain.Rating, error)

	// ListByClient возвращает оценки, оставленные клиентом
	ListByClient(ctx context.Context, clientID string) ([]domain.Rating, error)

	// CollectorStats возвращает агрегированную статистику сборщика
	CollectorStats(ctx context.Context, collectorID string) (*domain.CollectorStats, error)
}

// RequestReader — минимальный доступ к заявкам для проверок перед оценкой
type RequestReader interface {
	FindByID(ctx context.Context, requestID string) (*reqdomain.CollectionRequest, error)
}
