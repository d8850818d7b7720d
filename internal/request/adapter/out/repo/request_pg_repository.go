package repo

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"wastehub/internal/request/application/ports/out"
	"wastehub/internal/request/domain"
	"wastehub/internal/shared/logger"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RequestPgRepository — PostgreSQL репозиторий для работы с заявками
type RequestPgRepository struct {
	pool *pgxpool.Pool
	log  *logger.Logger
}

// NewRequestPgRepository создает новый экземпляр репозитория
func NewRequestPgRepository(pool *pgxpool.Pool, log *logger.Logger) *RequestPgRepository {
	return &RequestPgRepository{
		pool: pool,
		log:  log,
	}
}

// Create сохраняет заявку, даты вывоза и правило повторения одной транзакцией
func (r *RequestPgRepository) Create(ctx context.Context, req *domain.CollectionRequest, days []domain.CollectionDay, rec *domain.RecurringCollection) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	requestQuery := `
		INSERT INTO collection_requests (
			request_id, client_id, collector_id, waste_type_id, district_id,
			status, collection_type, notes, completed_date, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err = tx.Exec(ctx, requestQuery,
		req.ID,
		req.ClientID,
		req.CollectorID,
		req.WasteTypeID,
		req.DistrictID,
		req.Status,
		req.CollectionType,
		req.Notes,
		req.CompletedDate,
		req.CreatedAt,
		req.UpdatedAt,
	)
	if err != nil {
		r.log.Error(logger.Entry{
			Action:    "db_create_request_failed",
			Message:   err.Error(),
			RequestID: req.ID,
			Error:     &logger.ErrObj{Msg: err.Error()},
		})
		return fmt.Errorf("insert collection request: %w", err)
	}

	dayQuery := `
		INSERT INTO collection_days (collection_day_id, request_id, time_slot_id, collection_date, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	for _, day := range days {
		if _, err := tx.Exec(ctx, dayQuery, day.ID, day.RequestID, day.TimeSlotID, day.CollectionDate, day.CreatedAt); err != nil {
			return fmt.Errorf("insert collection day: %w", err)
		}
	}

	if rec != nil {
		recQuery := `
			INSERT INTO recurring_collections (
				recurring_id, request_id, frequency, day_of_week, day_of_month,
				time_slot_id, start_date, end_date, is_active, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		`
		_, err := tx.Exec(ctx, recQuery,
			rec.ID,
			rec.RequestID,
			rec.Frequency,
			rec.DayOfWeek,
			rec.DayOfMonth,
			rec.TimeSlotID,
			rec.StartDate,
			rec.EndDate,
			rec.IsActive,
			rec.CreatedAt,
			rec.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert recurring collection: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// FindByID возвращает заявку по ID
func (r *RequestPgRepository) FindByID(ctx context.Context, requestID string) (*domain.CollectionRequest, error) {
	query := `
		SELECT request_id, client_id, collector_id, waste_type_id, district_id,
		       status, collection_type, COALESCE(notes, ''), completed_date, created_at, updated_at
		FROM collection_requests
		WHERE request_id = $1
	`

	req := &domain.CollectionRequest{}
	err := r.pool.QueryRow(ctx, query, requestID).Scan(
		&req.ID,
		&req.ClientID,
		&req.CollectorID,
		&req.WasteTypeID,
		&req.DistrictID,
		&req.Status,
		&req.CollectionType,
		&req.Notes,
		&req.CompletedDate,
		&req.CreatedAt,
		&req.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRequestNotFound
		}
		r.log.Error(logger.Entry{
			Action:    "db_find_request_failed",
			Message:   err.Error(),
			RequestID: requestID,
			Error:     &logger.ErrObj{Msg: err.Error()},
		})
		return nil, fmt.Errorf("query request by id: %w", err)
	}

	return req, nil
}

const viewSelect = `
	SELECT r.request_id, r.status, r.collection_type, COALESCE(r.notes, ''), r.completed_date,
	       r.client_id, cu.first_name || ' ' || cu.last_name,
	       r.collector_id, ku.first_name || ' ' || ku.last_name,
	       r.waste_type_id, wt.name,
	       r.district_id, d.name, c.name,
	       r.created_at, r.updated_at
	FROM collection_requests r
	JOIN client_profiles cp ON cp.client_id = r.client_id
	JOIN users cu ON cu.id = cp.user_id
	LEFT JOIN collector_profiles kp ON kp.collector_id = r.collector_id
	LEFT JOIN users ku ON ku.id = kp.user_id
	JOIN waste_types wt ON wt.waste_type_id = r.waste_type_id
	JOIN districts d ON d.district_id = r.district_id
	JOIN cities c ON c.city_id = d.city_id
`

func scanView(row pgx.Row) (*domain.RequestView, error) {
	view := &domain.RequestView{}
	err := row.Scan(
		&view.ID,
		&view.Status,
		&view.CollectionType,
		&view.Notes,
		&view.CompletedDate,
		&view.ClientID,
		&view.ClientName,
		&view.CollectorID,
		&view.CollectorName,
		&view.WasteTypeID,
		&view.WasteType,
		&view.DistrictID,
		&view.District,
		&view.City,
		&view.CreatedAt,
		&view.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return view, nil
}

// FindView собирает заявку со справочными данными, датами и правилом повторения
func (r *RequestPgRepository) FindView(ctx context.Context, requestID string) (*domain.RequestView, error) {
	view, err := scanView(r.pool.QueryRow(ctx, viewSelect+" WHERE r.request_id = $1", requestID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRequestNotFound
		}
		return nil, fmt.Errorf("query request view: %w", err)
	}

	daysQuery := `
		SELECT cd.collection_day_id, cd.collection_date, cd.time_slot_id, to_char(ts.collection_time, 'HH24:MI')
		FROM collection_days cd
		JOIN time_slots ts ON ts.time_slot_id = cd.time_slot_id
		WHERE cd.request_id = $1
		ORDER BY cd.collection_date
	`
	rows, err := r.pool.Query(ctx, daysQuery, requestID)
	if err != nil {
		return nil, fmt.Errorf("query collection days: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var day domain.DayView
		if err := rows.Scan(&day.ID, &day.CollectionDate, &day.TimeSlotID, &day.TimeSlot); err != nil {
			return nil, fmt.Errorf("scan collection day: %w", err)
		}
		view.Days = append(view.Days, day)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate collection days: %w", err)
	}

	rec, err := r.FindRecurrence(ctx, requestID)
	if err != nil && !errors.Is(err, domain.ErrRequestNotFound) {
		return nil, err
	}
	if rec != nil {
		view.Recurrence = &domain.RecurrenceView{
			ID:         rec.ID,
			Frequency:  rec.Frequency,
			DayOfWeek:  rec.DayOfWeek,
			DayOfMonth: rec.DayOfMonth,
			StartDate:  rec.StartDate,
			EndDate:    rec.EndDate,
			IsActive:   rec.IsActive,
		}
	}

	return view, nil
}

// List возвращает заявки по фильтру, новые первыми
func (r *RequestPgRepository) List(ctx context.Context, filter out.RequestFilter) ([]domain.RequestView, error) {
	var conditions []string
	var args []interface{}

	addCondition := func(expr string, value interface{}) {
		args = append(args, value)
		conditions = append(conditions, strings.Replace(expr, "?", "$"+strconv.Itoa(len(args)), 1))
	}

	if filter.ClientID != "" {
		addCondition("r.client_id = ?", filter.ClientID)
	}
	if filter.CollectorID != "" {
		addCondition("r.collector_id = ?", filter.CollectorID)
	}
	if filter.DistrictID != 0 {
		addCondition("r.district_id = ?", filter.DistrictID)
	}
	if filter.CityID != 0 {
		addCondition("c.city_id = ?", filter.CityID)
	}
	if !filter.Date.IsZero() {
		// EXISTS вместо JOIN, чтобы заявка с несколькими датами не дублировалась
		addCondition("EXISTS (SELECT 1 FROM collection_days fd WHERE fd.request_id = r.request_id AND fd.collection_date = ?)", filter.Date)
	}
	if filter.Status != "" {
		addCondition("r.status = ?", filter.Status)
	}
	if filter.Type != "" {
		addCondition("r.collection_type = ?", filter.Type)
	}

	query := viewSelect
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	args = append(args, filter.Limit, filter.Offset)
	query += fmt.Sprintf(" ORDER BY r.created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query requests: %w", err)
	}
	defer rows.Close()

	var views []domain.RequestView
	for rows.Next() {
		view, err := scanView(rows)
		if err != nil {
			return nil, fmt.Errorf("scan request view: %w", err)
		}
		views = append(views, *view)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate requests: %w", err)
	}

	return views, nil
}

// UpdateDetails меняет редактируемые поля, пока заявка PENDING
func (r *RequestPgRepository) UpdateDetails(ctx context.Context, requestID string, wasteTypeID, districtID int64, notes string) (int64, error) {
	query := `
		UPDATE collection_requests
		SET waste_type_id = $1,
		    district_id = $2,
		    notes = $3,
		    updated_at = NOW()
		WHERE request_id = $4
		  AND status = 'PENDING'
	`

	result, err := r.pool.Exec(ctx, query, wasteTypeID, districtID, notes, requestID)
	if err != nil {
		r.log.Error(logger.Entry{
			Action:    "db_update_request_failed",
			Message:   err.Error(),
			RequestID: requestID,
			Error:     &logger.ErrObj{Msg: err.Error()},
		})
		return 0, fmt.Errorf("update request details: %w", err)
	}

	return result.RowsAffected(), nil
}

// UpdateStatus применяет защищенный переход статуса одним UPDATE.
// Проверка исходного статуса в WHERE исключает гонку с параллельным
// переходом или каскадом отмены.
func (r *RequestPgRepository) UpdateStatus(ctx context.Context, change out.StatusChange) (int64, error) {
	query := `
		UPDATE collection_requests
		SET status = $1,
		    collector_id = COALESCE($2, collector_id),
		    completed_date = $3,
		    updated_at = NOW()
		WHERE request_id = $4
		  AND status = $5
	`

	result, err := r.pool.Exec(ctx, query,
		change.ToStatus,
		change.CollectorID,
		change.CompletedDate,
		change.RequestID,
		change.FromStatus,
	)
	if err != nil {
		r.log.Error(logger.Entry{
			Action:    "db_update_status_failed",
			Message:   err.Error(),
			RequestID: change.RequestID,
			Error:     &logger.ErrObj{Msg: err.Error()},
		})
		return 0, fmt.Errorf("update request status: %w", err)
	}

	rows := result.RowsAffected()
	if rows > 0 {
		r.log.Info(logger.Entry{
			Action:    "db_request_status_updated",
			Message:   fmt.Sprintf("%s -> %s", change.FromStatus, change.ToStatus),
			RequestID: change.RequestID,
		})
	}
	return rows, nil
}

// Delete удаляет заявку, только если она PENDING или CANCELLED.
// Даты и правило повторения удаляются каскадом.
func (r *RequestPgRepository) Delete(ctx context.Context, requestID string) (int64, error) {
	query := `
		DELETE FROM collection_requests
		WHERE request_id = $1
		  AND status IN ('PENDING', 'CANCELLED')
	`

	result, err := r.pool.Exec(ctx, query, requestID)
	if err != nil {
		return 0, fmt.Errorf("delete request: %w", err)
	}
	return result.RowsAffected(), nil
}

// FindRecurrence находит правило повторения заявки
func (r *RequestPgRepository) FindRecurrence(ctx context.Context, requestID string) (*domain.RecurringCollection, error) {
	query := `
		SELECT recurring_id, request_id, frequency, day_of_week, day_of_month,
		       time_slot_id, start_date, end_date, is_active, created_at, updated_at
		FROM recurring_collections
		WHERE request_id = $1
	`

	rec := &domain.RecurringCollection{}
	err := r.pool.QueryRow(ctx, query, requestID).Scan(
		&rec.ID,
		&rec.RequestID,
		&rec.Frequency,
		&rec.DayOfWeek,
		&rec.DayOfMonth,
		&rec.TimeSlotID,
		&rec.StartDate,
		&rec.EndDate,
		&rec.IsActive,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRequestNotFound
		}
		return nil, fmt.Errorf("query recurrence: %w", err)
	}

	return rec, nil
}

// ListRecurrences возвращает правила повторения всех заявок клиента
func (r *RequestPgRepository) ListRecurrences(ctx context.Context, clientID string) ([]domain.RecurringCollection, error) {
	query := `
		SELECT rc.recurring_id, rc.request_id, rc.frequency, rc.day_of_week, rc.day_of_month,
		       rc.time_slot_id, rc.start_date, rc.end_date, rc.is_active, rc.created_at, rc.updated_at
		FROM recurring_collections rc
		JOIN collection_requests r ON r.request_id = rc.request_id
		WHERE r.client_id = $1
		ORDER BY rc.created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, clientID)
	if err != nil {
		return nil, fmt.Errorf("query recurrences: %w", err)
	}
	defer rows.Close()

	var recs []domain.RecurringCollection
	for rows.Next() {
		var rec domain.RecurringCollection
		if err := rows.Scan(
			&rec.ID,
			&rec.RequestID,
			&rec.Frequency,
			&rec.DayOfWeek,
			&rec.DayOfMonth,
			&rec.TimeSlotID,
			&rec.StartDate,
			&rec.EndDate,
			&rec.IsActive,
			&rec.CreatedAt,
			&rec.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan recurrence: %w", err)
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recurrences: %w", err)
	}

	return recs, nil
}

// SetRecurrenceActive переключает правило и синхронизирует будущие даты
// в одной транзакции
func (r *RequestPgRepository) SetRecurrenceActive(ctx context.Context, requestID string, active bool, futureDays []domain.CollectionDay) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	toggleQuery := `
		UPDATE recurring_collections
		SET is_active = $1, updated_at = NOW()
		WHERE request_id = $2
	`
	result, err := tx.Exec(ctx, toggleQuery, active, requestID)
	if err != nil {
		return fmt.Errorf("toggle recurrence: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrRequestNotFound
	}

	if !active {
		// Будущие даты больше не актуальны
		deleteQuery := `
			DELETE FROM collection_days
			WHERE request_id = $1
			  AND collection_date > CURRENT_DATE
		`
		if _, err := tx.Exec(ctx, deleteQuery, requestID); err != nil {
			return fmt.Errorf("delete future days: %w", err)
		}
	} else {
		insertQuery := `
			INSERT INTO collection_days (collection_day_id, request_id, time_slot_id, collection_date, created_at)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (request_id, collection_date) DO NOTHING
		`
		for _, day := range futureDays {
			if _, err := tx.Exec(ctx, insertQuery, day.ID, day.RequestID, day.TimeSlotID, day.CollectionDate, day.CreatedAt); err != nil {
				return fmt.Errorf("insert future day: %w", err)
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	r.log.Info(logger.Entry{
		Action:    "db_recurrence_toggled",
		Message:   fmt.Sprintf("active=%t, future_days=%d", active, len(futureDays)),
		RequestID: requestID,
	})
	return nil
}

// ListUpcomingDays возвращает будущие даты вывоза клиента с контекстом заявки
func (r *RequestPgRepository) ListUpcomingDays(ctx context.Context, clientID string, from, to time.Time) ([]domain.UpcomingCollection, error) {
	query := `
		SELECT r.request_id, r.status, r.collection_type, wt.name, d.name,
		       cd.collection_date, to_char(ts.collection_time, 'HH24:MI')
		FROM collection_days cd
		JOIN collection_requests r ON r.request_id = cd.request_id
		JOIN waste_types wt ON wt.waste_type_id = r.waste_type_id
		JOIN districts d ON d.district_id = r.district_id
		JOIN time_slots ts ON ts.time_slot_id = cd.time_slot_id
		WHERE r.client_id = $1
		  AND cd.collection_date >= $2
		  AND cd.collection_date <= $3
		  AND r.status NOT IN ('CANCELLED', 'COMPLETED')
		ORDER BY cd.collection_date
	`

	rows, err := r.pool.Query(ctx, query, clientID, from, to)
	if err != nil {
		return nil, fmt.Errorf("query upcoming days: %w", err)
	}
	defer rows.Close()

	var upcoming []domain.UpcomingCollection
	for rows.Next() {
		var u domain.UpcomingCollection
		if err := rows.Scan(
			&u.RequestID,
			&u.RequestStatus,
			&u.CollectionType,
			&u.WasteType,
			&u.District,
			&u.CollectionDate,
			&u.TimeSlot,
		); err != nil {
			return nil, fmt.Errorf("scan upcoming day: %w", err)
		}
		upcoming = append(upcoming, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate upcoming days: %w", err)
	}

	return upcoming, nil
}
