// Package domain содержит типы admin service.
package domain

import "time"

// UserSummary — представление пользователя в админских списках
type UserSummary struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Phone     string    `json:"phone,omitempty"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// Overview — сводные показатели системы для админской панели
type Overview struct {
	RequestsByStatus      map[string]int `json:"requests_by_status"`
	RequestsCreatedToday  int            `json:"requests_created_today"`
	RequestsCompletedToday int           `json:"requests_completed_today"`
	ActiveRecurrences     int            `json:"active_recurrences"`
	TotalClients          int            `json:"total_clients"`
	TotalCollectors       int            `json:"total_collectors"`
	AvailableCollectors   int            `json:"available_collectors"`
	UnavailableCollectors int            `json:"unavailable_collectors"`
	AverageRating         float64        `json:"average_rating"`
	RatingsCount          int            `json:"ratings_count"`
}
