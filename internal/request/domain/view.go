package domain

import "time"

// RequestView — заявка с подтянутыми справочными данными для выдачи наружу.
type RequestView struct {
	ID             string     `json:"id"`
	Status         string     `json:"status"`
	CollectionType string     `json:"collection_type"`
	Notes          string     `json:"notes,omitempty"`
	CompletedDate  *time.Time `json:"completed_date,omitempty"`

	ClientID   string `json:"client_id"`
	ClientName string `json:"client_name"`

	CollectorID   *string `json:"collector_id,omitempty"`
	CollectorName *string `json:"collector_name,omitempty"`

	WasteTypeID int64  `json:"waste_type_id"`
	WasteType   string `json:"waste_type"`

	DistrictID int64  `json:"district_id"`
	District   string `json:"district"`
	City       string `json:"city"`

	Days       []DayView       `json:"collection_days,omitempty"`
	Recurrence *RecurrenceView `json:"recurrence,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DayView — дата вывоза со слотом времени
type DayView struct {
	ID             string    `json:"id"`
	CollectionDate time.Time `json:"collection_date"`
	TimeSlotID     int64     `json:"time_slot_id"`
	TimeSlot       string    `json:"time_slot"`
}

// UpcomingCollection — предстоящий вывоз с контекстом заявки
type UpcomingCollection struct {
	RequestID      string    `json:"request_id"`
	RequestStatus  string    `json:"request_status"`
	CollectionType string    `json:"collection_type"`
	WasteType      string    `json:"waste_type"`
	District       string    `json:"district"`
	CollectionDate time.Time `json:"collection_date"`
	TimeSlot       string    `json:"time_slot"`
}

// RecurrenceView — правило повторения для выдачи наружу
type RecurrenceView struct {
	ID         string     `json:"id"`
	Frequency  string     `json:"frequency"`
	DayOfWeek  *int       `json:"day_of_week,omitempty"`
	DayOfMonth *int       `json:"day_of_month,omitempty"`
	StartDate  time.Time  `json:"start_date"`
	EndDate    *time.Time `json:"end_date,omitempty"`
	IsActive   bool       `json:"is_active"`
}
