package out_ws

import (
	"context"

	"wastehub/internal/model"
	"wastehub/internal/request/application/ports/out"
	"wastehub/internal/shared/logger"
	"wastehub/internal/shared/ws"
)

// WsRequestNotifier отправляет уведомления о заявках через WebSocket hub
type WsRequestNotifier struct {
	hub *ws.Hub
	log *logger.Logger
}

// NewWsRequestNotifier создает новый notifier
func NewWsRequestNotifier(hub *ws.Hub, log *logger.Logger) *WsRequestNotifier {
	return &WsRequestNotifier{
		hub: hub,
		log: log,
	}
}

// NotifyUser отправляет уведомление пользователю по его ID
func (n *WsRequestNotifier) NotifyUser(ctx context.Context, userID string, notification out.RequestNotification) error {
	return n.hub.SendToUserJSON(userID, notification.Type, notification)
}

// NotifyCollectors отправляет уведомление всем подключенным сборщикам
func (n *WsRequestNotifier) NotifyCollectors(ctx context.Context, notification out.RequestNotification) error {
	return n.hub.SendToRole(model.RoleCollector, notification.Type, notification)
}
