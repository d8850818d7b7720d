package catalog

import (
	"context"
	"fmt"

	"wastehub/internal/shared/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PgRepository — Postgres реализация Repository
type PgRepository struct {
	pool *pgxpool.Pool
	log  *logger.Logger
}

// NewPgRepository создает новый репозиторий справочников
func NewPgRepository(pool *pgxpool.Pool, log *logger.Logger) *PgRepository {
	return &PgRepository{
		pool: pool,
		log:  log,
	}
}

// ListCities возвращает все города по алфавиту
func (r *PgRepository) ListCities(ctx context.Context) ([]City, error) {
	rows, err := r.pool.Query(ctx, `SELECT city_id, name FROM cities ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("query cities: %w", err)
	}
	defer rows.Close()

	var cities []City
	for rows.Next() {
		var c City
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("scan city: %w", err)
		}
		cities = append(cities, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cities: %w", err)
	}
	return cities, nil
}

// ListDistricts возвращает районы города
func (r *PgRepository) ListDistricts(ctx context.Context, cityID int64) ([]District, error) {
	var exists bool
	if err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM cities WHERE city_id = $1)`, cityID).Scan(&exists); err != nil {
		return nil, fmt.Errorf("check city: %w", err)
	}
	if !exists {
		return nil, ErrCityNotFound
	}

	rows, err := r.pool.Query(ctx, `SELECT district_id, city_id, name FROM districts WHERE city_id = $1 ORDER BY name`, cityID)
	if err != nil {
		return nil, fmt.Errorf("query districts: %w", err)
	}
	defer rows.Close()

	var districts []District
	for rows.Next() {
		var d District
		if err := rows.Scan(&d.ID, &d.CityID, &d.Name); err != nil {
			return nil, fmt.Errorf("scan district: %w", err)
		}
		districts = append(districts, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate districts: %w", err)
	}
	return districts, nil
}

// ListWasteTypes возвращает типы отходов
func (r *PgRepository) ListWasteTypes(ctx context.Context) ([]WasteType, error) {
	rows, err := r.pool.Query(ctx, `SELECT waste_type_id, name, COALESCE(description, '') FROM waste_types ORDER BY waste_type_id`)
	if err != nil {
		return nil, fmt.Errorf("query waste types: %w", err)
	}
	defer rows.Close()

	var types []WasteType
	for rows.Next() {
		var wt WasteType
		if err := rows.Scan(&wt.ID, &wt.Name, &wt.Description); err != nil {
			return nil, fmt.Errorf("scan waste type: %w", err)
		}
		types = append(types, wt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate waste types: %w", err)
	}
	return types, nil
}

// ListTimeSlots возвращает активные слоты времени
func (r *PgRepository) ListTimeSlots(ctx context.Context) ([]TimeSlot, error) {
	query := `
		SELECT time_slot_id, to_char(collection_time, 'HH24:MI'), is_active
		FROM time_slots
		WHERE is_active
		ORDER BY collection_time
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query time slots: %w", err)
	}
	defer rows.Close()

	var slots []TimeSlot
	for rows.Next() {
		var ts TimeSlot
		if err := rows.Scan(&ts.ID, &ts.Time, &ts.IsActive); err != nil {
			return nil, fmt.Errorf("scan time slot: %w", err)
		}
		slots = append(slots, ts)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate time slots: %w", err)
	}
	return slots, nil
}
