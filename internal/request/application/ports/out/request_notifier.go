package out

import "context"

// RequestNotification — уведомление о заявке через WebSocket
type RequestNotification struct {
	Type      string                 `json:"type"` // request_created | request_accepted | etc
	RequestID string                 `json:"request_id"`
	Message   string                 `json:"message"`
	Data      map[string]interface{} `json:"data,omitempty"`
}

// RequestNotifier — интерфейс для отправки WebSocket уведомлений
type RequestNotifier interface {
	// NotifyUser отправляет уведомление пользователю по его ID
	NotifyUser(ctx context.Context, userID string, notification RequestNotification) error

	// NotifyCollectors отправляет уведомление всем подключенным сборщикам
	NotifyCollectors(ctx context.Context, notification RequestNotification) error
}
