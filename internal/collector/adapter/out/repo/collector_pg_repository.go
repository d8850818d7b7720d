// Package repo — Postgres адаптеры collector service.
package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"wastehub/internal/collector/application/ports/out"
	"wastehub/internal/collector/domain"
	"wastehub/internal/shared/logger"
	"wastehub/internal/shared/user"
	"wastehub/internal/shared/utils"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const collectorSelect = `
	SELECT cp.collector_id, cp.user_id, u.email, u.first_name, u.last_name,
	       COALESCE(u.phone_number, ''), COALESCE(cp.photo_url, ''),
	       cp.district_id, d.name, cp.is_available, cp.rating, cp.created_at
	FROM collector_profiles cp
	JOIN users u ON u.id = cp.user_id
	JOIN districts d ON d.district_id = cp.district_id
`

// CollectorPgRepository — Postgres реализация CollectorRepository
type CollectorPgRepository struct {
	pool *pgxpool.Pool
	log  *logger.Logger
}

func NewCollectorPgRepository(pool *pgxpool.Pool, log *logger.Logger) *CollectorPgRepository {
	return &CollectorPgRepository{pool: pool, log: log}
}

// Create создает пользователя-сборщика и его профиль одной транзакцией
func (r *CollectorPgRepository) Create(ctx context.Context, u *user.User, districtID int64, photoURL string) (string, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return "", fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	userQuery := `
		INSERT INTO users (id, email, password_hash, first_name, last_name, phone_number, role, status)
		VALUES ($1, $2, $3, $4, $5, $6, 'COLLECTOR', 'ACTIVE')
		RETURNING created_at, updated_at
	`

	err = tx.QueryRow(ctx, userQuery,
		u.ID,
		u.Email,
		u.PasswordHash,
		u.FirstName,
		u.LastName,
		u.Phone,
	).Scan(&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		// 23505 = unique_violation
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return "", user.ErrEmailTaken
		}
		return "", fmt.Errorf("insert user: %w", err)
	}

	collectorID := utils.NewUUID()
	profileQuery := `
		INSERT INTO collector_profiles (collector_id, user_id, district_id, photo_url)
		VALUES ($1, $2, $3, NULLIF($4, ''))
	`

	if _, err := tx.Exec(ctx, profileQuery, collectorID, u.ID, districtID, photoURL); err != nil {
		return "", fmt.Errorf("insert collector profile: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return "", fmt.Errorf("commit tx: %w", err)
	}

	u.Role = "COLLECTOR"
	u.Status = "ACTIVE"
	return collectorID, nil
}

func (r *CollectorPgRepository) FindByID(ctx context.Context, collectorID string) (*domain.Collector, error) {
	row := r.pool.QueryRow(ctx, collectorSelect+` WHERE cp.collector_id = $1`, collectorID)
	return scanCollector(row)
}

func (r *CollectorPgRepository) FindByUserID(ctx context.Context, userID string) (*domain.Collector, error) {
	row := r.pool.QueryRow(ctx, collectorSelect+` WHERE cp.user_id = $1`, userID)
	return scanCollector(row)
}

// List возвращает сборщиков с фильтрами по району и доступности
func (r *CollectorPgRepository) List(ctx context.Context, filter out.CollectorFilter) ([]domain.Collector, error) {
	var conditions []string
	var args []any

	if filter.DistrictID > 0 {
		args = append(args, filter.DistrictID)
		conditions = append(conditions, fmt.Sprintf("cp.district_id = $%d", len(args)))
	}
	if filter.AvailableOnly {
		conditions = append(conditions, "cp.is_available")
	}

	query := collectorSelect
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY cp.rating DESC, cp.created_at"

	args = append(args, filter.Limit)
	query += fmt.Sprintf(" LIMIT $%d", len(args))
	args = append(args, filter.Offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query collectors: %w", err)
	}
	defer rows.Close()

	return collectAll(rows)
}

func (r *CollectorPgRepository) UpdateProfile(ctx context.Context, collectorID string, upd out.ProfileUpdate) (int64, error) {
	query := `
		UPDATE collector_profiles
		SET district_id = COALESCE($1, district_id),
		    photo_url   = COALESCE($2, photo_url),
		    updated_at  = NOW()
		WHERE collector_id = $3
	`

	tag, err := r.pool.Exec(ctx, query, upd.DistrictID, upd.PhotoURL, collectorID)
	if err != nil {
		return 0, fmt.Errorf("update collector profile: %w", err)
	}

	return tag.RowsAffected(), nil
}

// SetAvailability переключает доступность; при уходе в офлайн отменяет
// все PENDING заявки сборщика в той же транзакции
func (r *CollectorPgRepository) SetAvailability(ctx context.Context, collectorID string, available bool) ([]domain.CancelledRequest, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	toggleQuery := `
		UPDATE collector_profiles
		SET is_available = $1, updated_at = NOW()
		WHERE collector_id = $2
	`

	tag, err := tx.Exec(ctx, toggleQuery, available, collectorID)
	if err != nil {
		return nil, fmt.Errorf("update availability: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.ErrCollectorNotFound
	}

	var cancelled []domain.CancelledRequest
	if !available {
		cancelQuery := `
			UPDATE collection_requests
			SET status = 'CANCELLED', updated_at = NOW()
			WHERE collector_id = $1 AND status = 'PENDING'
			RETURNING request_id, client_id
		`

		rows, err := tx.Query(ctx, cancelQuery, collectorID)
		if err != nil {
			return nil, fmt.Errorf("cancel pending requests: %w", err)
		}

		for rows.Next() {
			var c domain.CancelledRequest
			if err := rows.Scan(&c.RequestID, &c.ClientID); err != nil {
				rows.Close()
				return nil, fmt.Errorf("scan cancelled request: %w", err)
			}
			cancelled = append(cancelled, c)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("iterate cancelled requests: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}

	return cancelled, nil
}

func (r *CollectorPgRepository) ListAvailableByDistrict(ctx context.Context, districtID int64) ([]domain.Collector, error) {
	query := collectorSelect + `
		WHERE cp.district_id = $1 AND cp.is_available
		ORDER BY cp.rating DESC
	`

	rows, err := r.pool.Query(ctx, query, districtID)
	if err != nil {
		return nil, fmt.Errorf("query available collectors: %w", err)
	}
	defer rows.Close()

	return collectAll(rows)
}

func (r *CollectorPgRepository) ListAvailableUserIDs(ctx context.Context, districtID int64) ([]string, error) {
	query := `
		SELECT cp.user_id
		FROM collector_profiles cp
		JOIN users u ON u.id = cp.user_id
		WHERE cp.district_id = $1 AND cp.is_available AND u.status = 'ACTIVE'
	`

	rows, err := r.pool.Query(ctx, query, districtID)
	if err != nil {
		return nil, fmt.Errorf("query available collector users: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan user id: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

func (r *CollectorPgRepository) ListRequests(ctx context.Context, collectorID, status string) ([]domain.RequestSummary, error) {
	query := `
		SELECT r.request_id, cu.first_name || ' ' || cu.last_name,
		       wt.name, d.name, r.status, r.collection_type,
		       r.completed_date, r.created_at
		FROM collection_requests r
		JOIN client_profiles cl ON cl.client_id = r.client_id
		JOIN users cu ON cu.id = cl.user_id
		JOIN waste_types wt ON wt.waste_type_id = r.waste_type_id
		JOIN districts d ON d.district_id = r.district_id
		WHERE r.collector_id = $1
	`
	args := []any{collectorID}

	if status != "" {
		args = append(args, status)
		query += fmt.Sprintf(" AND r.status = $%d", len(args))
	}
	query += " ORDER BY r.created_at DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query collector requests: %w", err)
	}
	defer rows.Close()

	var result []domain.RequestSummary
	for rows.Next() {
		var s domain.RequestSummary
		err := rows.Scan(
			&s.RequestID,
			&s.ClientName,
			&s.WasteType,
			&s.District,
			&s.Status,
			&s.CollectionType,
			&s.CompletedDate,
			&s.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan request summary: %w", err)
		}
		result = append(result, s)
	}

	return result, rows.Err()
}

func (r *CollectorPgRepository) DistrictExists(ctx context.Context, districtID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM districts WHERE district_id = $1)`, districtID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check district exists: %w", err)
	}
	return exists, nil
}

func scanCollector(row pgx.Row) (*domain.Collector, error) {
	var c domain.Collector
	err := row.Scan(
		&c.CollectorID,
		&c.UserID,
		&c.Email,
		&c.FirstName,
		&c.LastName,
		&c.Phone,
		&c.PhotoURL,
		&c.DistrictID,
		&c.District,
		&c.IsAvailable,
		&c.Rating,
		&c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCollectorNotFound
		}
		return nil, fmt.Errorf("scan collector: %w", err)
	}

	return &c, nil
}

func collectAll(rows pgx.Rows) ([]domain.Collector, error) {
	var result []domain.Collector
	for rows.Next() {
		c, err := scanCollector(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *c)
	}

	return result, rows.Err()
}
