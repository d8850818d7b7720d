package repo

import (
	"context"
	"fmt"

	"wastehub/internal/shared/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

// CatalogPgRepository — проверки справочных данных в PostgreSQL
type CatalogPgRepository struct {
	pool *pgxpool.Pool
	log  *logger.Logger
}

// NewCatalogPgRepository создает новый репозиторий справочников
func NewCatalogPgRepository(pool *pgxpool.Pool, log *logger.Logger) *CatalogPgRepository {
	return &CatalogPgRepository{
		pool: pool,
		log:  log,
	}
}

func (r *CatalogPgRepository) exists(ctx context.Context, query string, id int64) (bool, error) {
	var exists bool
	if err := r.pool.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("check existence: %w", err)
	}
	return exists, nil
}

// WasteTypeExists проверяет существование типа отходов
func (r *CatalogPgRepository) WasteTypeExists(ctx context.Context, wasteTypeID int64) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS(SELECT 1 FROM waste_types WHERE waste_type_id = $1)`, wasteTypeID)
}

// DistrictExists проверяет существование района
func (r *CatalogPgRepository) DistrictExists(ctx context.Context, districtID int64) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS(SELECT 1 FROM districts WHERE district_id = $1)`, districtID)
}

// TimeSlotExists проверяет существование активного слота времени
func (r *CatalogPgRepository) TimeSlotExists(ctx context.Context, timeSlotID int64) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS(SELECT 1 FROM time_slots WHERE time_slot_id = $1 AND is_active)`, timeSlotID)
}
