package in

import (
	"context"
	"time"
)

// RecurrenceInput — правило повторения при создании регулярной заявки
type RecurrenceInput struct {
	Frequency  string     `json:"frequency"`
	DayOfWeek  *int       `json:"day_of_week,omitempty"`
	DayOfMonth *int       `json:"day_of_month,omitempty"`
	StartDate  time.Time  `json:"start_date"`
	EndDate    *time.Time `json:"end_date,omitempty"`
}

// CreateRequestInput — входные данные для создания заявки
type CreateRequestInput struct {
	UserID         string           `json:"user_id"`
	WasteTypeID    int64            `json:"waste_type_id"`
	DistrictID     int64            `json:"district_id"` // 0 — взять район из профиля клиента
	TimeSlotID     int64            `json:"time_slot_id"`
	CollectionType string           `json:"collection_type"` // ONE_TIME | RECURRING
	Notes          string           `json:"notes"`
	Dates          []time.Time      `json:"dates"`      // для ONE_TIME: ровно одна дата
	Recurrence     *RecurrenceInput `json:"recurrence"` // для RECURRING
}

// CreateRequestOutput — результат создания заявки
type CreateRequestOutput struct {
	RequestID      string      `json:"request_id"`
	Status         string      `json:"status"`
	CollectionType string      `json:"collection_type"`
	Dates          []time.Time `json:"dates"`
}

// CreateRequestUseCase — интерфейс use-case создания заявки
type CreateRequestUseCase interface {
	Execute(ctx context.Context, input CreateRequestInput) (*CreateRequestOutput, error)
}
