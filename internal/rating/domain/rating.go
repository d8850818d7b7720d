package domain

import (
	"errors"
	"time"
)

// Rating — оценка выполненной заявки, ровно одна на заявку.
type Rating struct {
	ID          string    `json:"id" db:"id"`
	RequestID   string    `json:"request_id" db:"request_id"`
	ClientID    string    `json:"client_id" db:"client_id"`
	CollectorID string    `json:"collector_id" db:"collector_id"`
	Score       int       `json:"score" db:"score"` // 1..5
	Comment     string    `json:"comment,omitempty" db:"comment"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// CollectorStats — агрегированная статистика оценок сборщика
type CollectorStats struct {
	CollectorID string      `json:"collector_id"`
	Total       int         `json:"total"`
	Average     float64     `json:"average"`
	PerScore    map[int]int `json:"per_score"` // звезда -> количество
}

var (
	// ErrRatingNotFound оценка не найдена
	ErrRatingNotFound = errors.New("rating not found")

	// ErrRequestNotCompleted оценивать можно только выполненную заявку
	ErrRequestNotCompleted = errors.New("request is not completed")

	// ErrDuplicateRating на заявку уже есть оценка
	ErrDuplicateRating = errors.New("rating already exists for this request")

	// ErrForbidden нет прав на операцию с оценкой
	ErrForbidden = errors.New("operation forbidden")

	// ErrInvalidScore оценка вне диапазона 1..5
	ErrInvalidScore = errors.New("score must be between 1 and 5")
)

// ValidateScore проверяет диапазон оценки
func ValidateScore(score int) error {
	if score < 1 || score > 5 {
		return ErrInvalidScore
	}
	return nil
}
