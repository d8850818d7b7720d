package repo

import (
	"context"
	"errors"
	"fmt"

	"wastehub/internal/rating/domain"
	"wastehub/internal/shared/logger"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RatingPgRepository — PostgreSQL репозиторий оценок.
// Рейтинг сборщика хранится в collector_profiles, но всегда
// пересчитывается из таблицы ratings внутри той же транзакции.
type RatingPgRepository struct {
	pool *pgxpool.Pool
	log  *logger.Logger
}

// NewRatingPgRepository создает новый репозиторий оценок
func NewRatingPgRepository(pool *pgxpool.Pool, log *logger.Logger) *RatingPgRepository {
	return &RatingPgRepository{
		pool: pool,
		log:  log,
	}
}

// recomputeQuery пересчитывает рейтинг сборщика как чистое производное значение
const recomputeQuery = `
	UPDATE collector_profiles
	SET rating = COALESCE((SELECT AVG(score) FROM ratings WHERE collector_id = $1), 0),
	    updated_at = NOW()
	WHERE collector_id = $1
`

// CreateAndRecompute сохраняет оценку и пересчитывает рейтинг сборщика
func (r *RatingPgRepository) CreateAndRecompute(ctx context.Context, rating *domain.Rating) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	insertQuery := `
		INSERT INTO ratings (rating_id, request_id, client_id, collector_id, score, comment, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err = tx.Exec(ctx, insertQuery,
		rating.ID,
		rating.RequestID,
		rating.ClientID,
		rating.CollectorID,
		rating.Score,
		rating.Comment,
		rating.CreatedAt,
		rating.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		// 23505 = unique_violation по request_id
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrDuplicateRating
		}
		return fmt.Errorf("insert rating: %w", err)
	}

	if _, err := tx.Exec(ctx, recomputeQuery, rating.CollectorID); err != nil {
		return fmt.Errorf("recompute collector rating: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	r.log.Info(logger.Entry{
		Action:    "db_rating_created",
		RequestID: rating.RequestID,
		Additional: map[string]any{
			"collector_id": rating.CollectorID,
			"score":        rating.Score,
		},
	})
	return nil
}

// UpdateAndRecompute меняет оценку и пересчитывает рейтинг сборщика
func (r *RatingPgRepository) UpdateAndRecompute(ctx context.Context, ratingID string, score int, comment string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	updateQuery := `
		UPDATE ratings
		SET score = $1, comment = $2, updated_at = NOW()
		WHERE rating_id = $3
		RETURNING collector_id
	`
	var collectorID string
	if err := tx.QueryRow(ctx, updateQuery, score, comment, ratingID).Scan(&collectorID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrRatingNotFound
		}
		return fmt.Errorf("update rating: %w", err)
	}

	if _, err := tx.Exec(ctx, recomputeQuery, collectorID); err != nil {
		return fmt.Errorf("recompute collector rating: %w", err)
	}

	return tx.Commit(ctx)
}

// DeleteAndRecompute удаляет оценку и пересчитывает рейтинг сборщика
func (r *RatingPgRepository) DeleteAndRecompute(ctx context.Context, ratingID string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	var collectorID string
	err = tx.QueryRow(ctx, `DELETE FROM ratings WHERE rating_id = $1 RETURNING collector_id`, ratingID).Scan(&collectorID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrRatingNotFound
		}
		return fmt.Errorf("delete rating: %w", err)
	}

	if _, err := tx.Exec(ctx, recomputeQuery, collectorID); err != nil {
		return fmt.Errorf("recompute collector rating: %w", err)
	}

	return tx.Commit(ctx)
}

const ratingSelect = `
	SELECT rating_id, request_id, client_id, collector_id, score, COALESCE(comment, ''), created_at, updated_at
	FROM ratings
`

func scanRating(row pgx.Row) (*domain.Rating, error) {
	rating := &domain.Rating{}
	err := row.Scan(
		&rating.ID,
		&rating.RequestID,
		&rating.ClientID,
		&rating.CollectorID,
		&rating.Score,
		&rating.Comment,
		&rating.CreatedAt,
		&rating.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return rating, nil
}

// FindByID находит оценку по ID
func (r *RatingPgRepository) FindByID(ctx context.Context, ratingID string) (*domain.Rating, error) {
	rating, err := scanRating(r.pool.QueryRow(ctx, ratingSelect+" WHERE rating_id = $1", ratingID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRatingNotFound
		}
		return nil, fmt.Errorf("query rating: %w", err)
	}
	return rating, nil
}

// FindByRequest находит оценку заявки
func (r *RatingPgRepository) FindByRequest(ctx context.Context, requestID string) (*domain.Rating, error) {
	rating, err := scanRating(r.pool.QueryRow(ctx, ratingSelect+" WHERE request_id = $1", requestID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRatingNotFound
		}
		return nil, fmt.Errorf("query rating by request: %w", err)
	}
	return rating, nil
}

func (r *RatingPgRepository) list(ctx context.Context, query string, arg string) ([]domain.Rating, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("query ratings: %w", err)
	}
	defer rows.Close()

	var ratings []domain.Rating
	for rows.Next() {
		rating, err := scanRating(rows)
		if err != nil {
			return nil, fmt.Errorf("scan rating: %w", err)
		}
		ratings = append(ratings, *rating)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ratings: %w", err)
	}
	return ratings, nil
}

// ListByCollector возвращает оценки сборщика, новые первыми
func (r *RatingPgRepository) ListByCollector(ctx context.Context, collectorID string) ([]domain.Rating, error) {
	return r.list(ctx, ratingSelect+" WHERE collector_id = $1 ORDER BY created_at DESC", collectorID)
}

// ListByClient возвращает оценки, оставленные клиентом
func (r *RatingPgRepository) ListByClient(ctx context.Context, clientID string) ([]domain.Rating, error) {
	return r.list(ctx, ratingSelect+" WHERE client_id = $1 ORDER BY created_at DESC", clientID)
}

// CollectorStats возвращает количество, среднее и распределение по звездам
func (r *RatingPgRepository) CollectorStats(ctx context.Context, collectorID string) (*domain.CollectorStats, error) {
	query := `
		SELECT COUNT(*),
		       COALESCE(AVG(score), 0),
		       COUNT(*) FILTER (WHERE score = 1),
		       COUNT(*) FILTER (WHERE score = 2),
		       COUNT(*) FILTER (WHERE score = 3),
		       COUNT(*) FILTER (WHERE score = 4),
		       COUNT(*) FILTER (WHERE score = 5)
		FROM ratings
		WHERE collector_id = $1
	`

	stats := &domain.CollectorStats{
		CollectorID: collectorID,
		PerScore:    make(map[int]int, 5),
	}
	var perScore [5]int
	err := r.pool.QueryRow(ctx, query, collectorID).Scan(
		&stats.Total,
		&stats.Average,
		&perScore[0], &perScore[1], &perScore[2], &perScore[3], &perScore[4],
	)
	if err != nil {
		return nil, fmt.Errorf("query collector stats: %w", err)
	}

	for i, count := range perScore {
		stats.PerScore[i+1] = count
	}
	return stats, nil
}
