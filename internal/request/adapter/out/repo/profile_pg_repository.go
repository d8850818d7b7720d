package repo

import (
	"context"
	"errors"
	"fmt"

	"wastehub/internal/request/application/ports/out"
	"wastehub/internal/request/domain"
	"wastehub/internal/shared/logger"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ProfilePgRepository — PostgreSQL репозиторий профилей
type ProfilePgRepository struct {
	pool *pgxpool.Pool
	log  *logger.Logger
}

// NewProfilePgRepository создает новый репозиторий профилей
func NewProfilePgRepository(pool *pgxpool.Pool, log *logger.Logger) *ProfilePgRepository {
	return &ProfilePgRepository{
		pool: pool,
		log:  log,
	}
}

// FindClientByUserID находит профиль клиента по ID пользователя
func (r *ProfilePgRepository) FindClientByUserID(ctx context.Context, userID string) (*out.ClientProfile, error) {
	query := `
		SELECT client_id, user_id, district_id
		FROM client_profiles
		WHERE user_id = $1
	`

	profile := &out.ClientProfile{}
	err := r.pool.QueryRow(ctx, query, userID).Scan(&profile.ClientID, &profile.UserID, &profile.DistrictID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("query client profile: %w", err)
	}

	return profile, nil
}

// FindCollectorByUserID находит профиль сборщика по ID пользователя
func (r *ProfilePgRepository) FindCollectorByUserID(ctx context.Context, userID string) (*out.CollectorProfile, error) {
	query := `
		SELECT collector_id, user_id, district_id, is_available
		FROM collector_profiles
		WHERE user_id = $1
	`

	profile := &out.CollectorProfile{}
	err := r.pool.QueryRow(ctx, query, userID).Scan(&profile.CollectorID, &profile.UserID, &profile.DistrictID, &profile.IsAvailable)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("query collector profile: %w", err)
	}

	return profile, nil
}

// FindClientUserID возвращает ID пользователя по ID профиля клиента
func (r *ProfilePgRepository) FindClientUserID(ctx context.Context, clientID string) (string, error) {
	var userID string
	err := r.pool.QueryRow(ctx, `SELECT user_id FROM client_profiles WHERE client_id = $1`, clientID).Scan(&userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", domain.ErrProfileNotFound
		}
		return "", fmt.Errorf("query client user id: %w", err)
	}
	return userID, nil
}

// FindCollectorUserID возвращает ID пользователя по ID профиля сборщика
func (r *ProfilePgRepository) FindCollectorUserID(ctx context.Context, collectorID string) (string, error) {
	var userID string
	err := r.pool.QueryRow(ctx, `SELECT user_id FROM collector_profiles WHERE collector_id = $1`, collectorID).Scan(&userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", domain.ErrProfileNotFound
		}
		return "", fmt.Errorf("query collector user id: %w", err)
	}
	return userID, nil
}
