package domain

import "time"

// CollectionRequest представляет основную сущность заявки на вывоз отходов.
type CollectionRequest struct {
	ID             string     `json:"id" db:"id"`
	ClientID       string     `json:"client_id" db:"client_id"`
	CollectorID    *string    `json:"collector_id,omitempty" db:"collector_id"`
	WasteTypeID    int64      `json:"waste_type_id" db:"waste_type_id"`
	DistrictID     int64      `json:"district_id" db:"district_id"`
	CollectionType string     `json:"collection_type" db:"collection_type"`
	Status         string     `json:"status" db:"status"`
	Notes          string     `json:"notes" db:"notes"`
	CompletedDate  *time.Time `json:"completed_date,omitempty" db:"completed_date"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at" db:"updated_at"`
}

// IsAssignedTo проверяет, назначена ли заявка указанному сборщику
func (r *CollectionRequest) IsAssignedTo(collectorID string) bool {
	return r.CollectorID != nil && *r.CollectorID == collectorID
}

// IsOwnedBy проверяет, принадлежит ли заявка указанному клиенту
func (r *CollectionRequest) IsOwnedBy(clientID string) bool {
	return r.ClientID == clientID
}

// CollectionDay — конкретная дата вывоза в рамках заявки.
// Для разовых заявок создается вручную, для регулярных — материализуется
// из правила RecurringCollection.
type CollectionDay struct {
	ID             string    `json:"id" db:"id"`
	RequestID      string    `json:"request_id" db:"request_id"`
	TimeSlotID     int64     `json:"time_slot_id" db:"time_slot_id"`
	CollectionDate time.Time `json:"collection_date" db:"collection_date"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

// RecurringCollection — правило повторения для регулярной заявки.
type RecurringCollection struct {
	ID         string     `json:"id" db:"id"`
	RequestID  string     `json:"request_id" db:"request_id"`
	Frequency  string     `json:"frequency" db:"frequency"`
	DayOfWeek  *int       `json:"day_of_week,omitempty" db:"day_of_week"`   // 1 (Пн) .. 7 (Вс)
	DayOfMonth *int       `json:"day_of_month,omitempty" db:"day_of_month"` // 1 .. 31
	TimeSlotID int64      `json:"time_slot_id" db:"time_slot_id"`
	StartDate  time.Time  `json:"start_date" db:"start_date"`
	EndDate    *time.Time `json:"end_date,omitempty" db:"end_date"`
	IsActive   bool       `json:"is_active" db:"is_active"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at" db:"updated_at"`
}
