package out

import "context"

// AvailabilityChangedEvent — событие переключения доступности сборщика
type AvailabilityChangedEvent struct {
	CollectorID       string   `json:"collector_id"`
	IsAvailable       bool     `json:"is_available"`
	CancelledRequests []string `json:"cancelled_requests,omitempty"`
}

// RequestCancelledEvent — событие каскадной отмены заявки.
// ClientID — id профиля клиента; request service резолвит его в user id
// при доставке WebSocket уведомления.
type RequestCancelledEvent struct {
	RequestID   string `json:"request_id"`
	ClientID    string `json:"client_id"`
	CollectorID string `json:"collector_id"`
	Reason      string `json:"reason"`
}

// EventPublisher — порт публикации событий collector service в брокер
type EventPublisher interface {
	PublishAvailabilityChanged(ctx context.Context, event AvailabilityChangedEvent) error
	PublishRequestCancelled(ctx context.Context, event RequestCancelledEvent) error
}
