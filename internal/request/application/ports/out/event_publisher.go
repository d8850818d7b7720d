package out

import "context"

// RequestEventData — данные события заявки
type RequestEventData struct {
	RequestID      string                 `json:"request_id"`
	ClientID       string                 `json:"client_id"`
	CollectorID    *string                `json:"collector_id,omitempty"`
	DistrictID     int64                  `json:"district_id"`
	WasteTypeID    int64                  `json:"waste_type_id"`
	Status         string                 `json:"status"`
	CollectionType string                 `json:"collection_type"`
	AdditionalData map[string]interface{} `json:"additional_data,omitempty"`
}

// EventPublisher — интерфейс для публикации событий в RabbitMQ
type EventPublisher interface {
	// PublishRequestEvent публикует событие заявки
	// eventType: REQUEST_CREATED | REQUEST_ACCEPTED | REQUEST_STARTED | REQUEST_COMPLETED | REQUEST_CANCELLED
	PublishRequestEvent(ctx context.Context, eventType string, data RequestEventData) error
}
