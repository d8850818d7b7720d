// Package repo — Postgres адаптер admin service.
package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"wastehub/internal/admin/application/ports/out"
	"wastehub/internal/admin/domain"
	"wastehub/internal/model"
	"wastehub/internal/shared/logger"
	"wastehub/internal/shared/user"
	"wastehub/internal/shared/utils"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AdminPgRepository — Postgres реализация AdminRepository
type AdminPgRepository struct {
	pool *pgxpool.Pool
	log  *logger.Logger
}

func NewAdminPgRepository(pool *pgxpool.Pool, log *logger.Logger) *AdminPgRepository {
	return &AdminPgRepository{pool: pool, log: log}
}

// CreateUser создает пользователя; для CLIENT/COLLECTOR в той же
// транзакции создается профиль
func (r *AdminPgRepository) CreateUser(ctx context.Context, u *user.User, districtID int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	userQuery := `
		INSERT INTO users (id, email, password_hash, first_name, last_name, phone_number, role, status)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8)
		RETURNING created_at, updated_at
	`

	err = tx.QueryRow(ctx, userQuery,
		u.ID,
		u.Email,
		u.PasswordHash,
		u.FirstName,
		u.LastName,
		u.Phone,
		u.Role,
		u.Status,
	).Scan(&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		// 23505 = unique_violation
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return user.ErrEmailTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}

	switch u.Role {
	case model.RoleClient:
		query := `INSERT INTO client_profiles (client_id, user_id, district_id) VALUES ($1, $2, $3)`
		if _, err := tx.Exec(ctx, query, utils.NewUUID(), u.ID, districtID); err != nil {
			return fmt.Errorf("insert client profile: %w", err)
		}
	case model.RoleCollector:
		query := `INSERT INTO collector_profiles (collector_id, user_id, district_id) VALUES ($1, $2, $3)`
		if _, err := tx.Exec(ctx, query, utils.NewUUID(), u.ID, districtID); err != nil {
			return fmt.Errorf("insert collector profile: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}

func (r *AdminPgRepository) FindUserByID(ctx context.Context, userID string) (*domain.UserSummary, error) {
	query := `
		SELECT id, email, first_name, last_name, COALESCE(phone_number, ''), role, status, created_at
		FROM users
		WHERE id = $1
	`

	var s domain.UserSummary
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&s.ID,
		&s.Email,
		&s.FirstName,
		&s.LastName,
		&s.Phone,
		&s.Role,
		&s.Status,
		&s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("query user: %w", err)
	}

	return &s, nil
}

// ListUsers возвращает страницу пользователей и общее число подходящих
func (r *AdminPgRepository) ListUsers(ctx context.Context, filters out.ListUsersFilters) ([]domain.UserSummary, int, error) {
	var conditions []string
	var args []any

	if filters.Role != "" {
		args = append(args, filters.Role)
		conditions = append(conditions, fmt.Sprintf("role = $%d", len(args)))
	}
	if filters.Status != "" {
		args = append(args, filters.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM users"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	query := `
		SELECT id, email, first_name, last_name, COALESCE(phone_number, ''), role, status, created_at
		FROM users
	` + where + " ORDER BY created_at DESC"

	args = append(args, filters.Limit)
	query += fmt.Sprintf(" LIMIT $%d", len(args))
	args = append(args, filters.Offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	var users []domain.UserSummary
	for rows.Next() {
		var s domain.UserSummary
		err := rows.Scan(&s.ID, &s.Email, &s.FirstName, &s.LastName, &s.Phone, &s.Role, &s.Status, &s.CreatedAt)
		if err != nil {
			return nil, 0, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, s)
	}

	return users, total, rows.Err()
}

func (r *AdminPgRepository) UpdateUserStatus(ctx context.Context, userID, status string) (int64, error) {
	query := `UPDATE users SET status = $1, updated_at = NOW() WHERE id = $2`

	tag, err := r.pool.Exec(ctx, query, status, userID)
	if err != nil {
		return 0, fmt.Errorf("update user status: %w", err)
	}

	return tag.RowsAffected(), nil
}

// Overview собирает сводные показатели одним проходом по таблицам
func (r *AdminPgRepository) Overview(ctx context.Context) (*domain.Overview, error) {
	o := &domain.Overview{RequestsByStatus: map[string]int{}}

	rows, err := r.pool.Query(ctx, `SELECT status, COUNT(*) FROM collection_requests GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("count requests by status: %w", err)
	}
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan status count: %w", err)
		}
		o.RequestsByStatus[status] = count
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate status counts: %w", err)
	}

	todayQuery := `
		SELECT
			COUNT(*) FILTER (WHERE created_at >= CURRENT_DATE),
			COUNT(*) FILTER (WHERE completed_date >= CURRENT_DATE)
		FROM collection_requests
	`
	if err := r.pool.QueryRow(ctx, todayQuery).Scan(&o.RequestsCreatedToday, &o.RequestsCompletedToday); err != nil {
		return nil, fmt.Errorf("count today requests: %w", err)
	}

	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM recurring_collections WHERE is_active`).Scan(&o.ActiveRecurrences); err != nil {
		return nil, fmt.Errorf("count active recurrences: %w", err)
	}

	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM client_profiles`).Scan(&o.TotalClients); err != nil {
		return nil, fmt.Errorf("count clients: %w", err)
	}

	collectorsQuery := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE is_available),
			COUNT(*) FILTER (WHERE NOT is_available)
		FROM collector_profiles
	`
	if err := r.pool.QueryRow(ctx, collectorsQuery).Scan(&o.TotalCollectors, &o.AvailableCollectors, &o.UnavailableCollectors); err != nil {
		return nil, fmt.Errorf("count collectors: %w", err)
	}

	ratingsQuery := `SELECT COALESCE(AVG(score), 0), COUNT(*) FROM ratings`
	if err := r.pool.QueryRow(ctx, ratingsQuery).Scan(&o.AverageRating, &o.RatingsCount); err != nil {
		return nil, fmt.Errorf("aggregate ratings: %w", err)
	}

	return o, nil
}

func (r *AdminPgRepository) DistrictExists(ctx context.Context, districtID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM districts WHERE district_id = $1)`, districtID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check district exists: %w", err)
	}
	return exists, nil
}
