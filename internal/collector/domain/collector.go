// Package domain содержит доменные сущности сборщиков отходов.
package domain

import "time"

// Collector — профиль сборщика вместе с данными пользователя
type Collector struct {
	CollectorID string    `json:"collector_id"`
	UserID      string    `json:"user_id"`
	Email       string    `json:"email"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Phone       string    `json:"phone,omitempty"`
	PhotoURL    string    `json:"photo_url,omitempty"`
	DistrictID  int64     `json:"district_id"`
	District    string    `json:"district"`
	IsAvailable bool      `json:"is_available"`
	Rating      float64   `json:"rating"`
	CreatedAt   time.Time `json:"created_at"`
}

// FullName возвращает полное имя сборщика
func (c *Collector) FullName() string {
	return c.FirstName + " " + c.LastName
}

// CancelledRequest — заявка, отменённая каскадом при уходе сборщика в офлайн
type CancelledRequest struct {
	RequestID string `json:"request_id"`
	ClientID  string `json:"-"`
}

// RequestSummary — краткое представление заявки в списке сборщика
type RequestSummary struct {
	RequestID      string     `json:"request_id"`
	ClientName     string     `json:"client_name"`
	WasteType      string     `json:"waste_type"`
	District       string     `json:"district"`
	Status         string     `json:"status"`
	CollectionType string     `json:"collection_type"`
	CompletedDate  *time.Time `json:"completed_date,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}
