// Package in_amqp — AMQP consumers collector service.
package in_amqp

import (
	"context"
	"encoding/json"
	"fmt"

	"wastehub/internal/collector/application/ports/out"
	"wastehub/internal/shared/logger"
	"wastehub/internal/shared/mq"
	"wastehub/internal/shared/ws"

	amqp "github.com/rabbitmq/amqp091-go"
)

// RequestCreatedMessage — событие новой заявки из request service
type RequestCreatedMessage struct {
	RequestID      string `json:"request_id"`
	ClientID       string `json:"client_id"`
	DistrictID     int64  `json:"district_id"`
	WasteTypeID    int64  `json:"waste_type_id"`
	Status         string `json:"status"`
	CollectionType string `json:"collection_type"`
}

// RequestCreatedConsumer слушает request.created и пушит уведомления о
// новых заявках доступным сборщикам района через WebSocket
type RequestCreatedConsumer struct {
	mqConn *mq.RabbitMQ
	repo   out.CollectorRepository
	hub    *ws.Hub
	log    *logger.Logger
}

func NewRequestCreatedConsumer(mqConn *mq.RabbitMQ, repo out.CollectorRepository, hub *ws.Hub, log *logger.Logger) *RequestCreatedConsumer {
	return &RequestCreatedConsumer{
		mqConn: mqConn,
		repo:   repo,
		hub:    hub,
		log:    log,
	}
}

// Start запускает consumer. Блокируется до отмены контекста.
func (c *RequestCreatedConsumer) Start(ctx context.Context) error {
	ch := c.mqConn.Channel()
	if ch == nil {
		return fmt.Errorf("rabbitmq channel not available")
	}

	msgs, err := ch.Consume(
		mq.QueueRequestCreated, // queue
		"",                     // consumer tag
		false,                  // auto-ack
		false,                  // exclusive
		false,                  // no-local
		false,                  // no-wait
		nil,                    // args
	)
	if err != nil {
		return fmt.Errorf("start consuming %s: %w", mq.QueueRequestCreated, err)
	}

	c.log.Info(logger.Entry{
		Action:  "request_created_consumer_started",
		Message: fmt.Sprintf("listening on queue %s", mq.QueueRequestCreated),
	})

	for {
		select {
		case <-ctx.Done():
			c.log.Info(logger.Entry{Action: "request_created_consumer_stopping", Message: "context cancelled"})
			return ctx.Err()

		case msg, ok := <-msgs:
			if !ok {
				c.log.Warn(logger.Entry{Action: "request_created_consumer_channel_closed", Message: "message channel closed"})
				return fmt.Errorf("message channel closed")
			}

			if err := c.handleRequestCreated(ctx, msg); err != nil {
				c.log.Error(logger.Entry{
					Action:  "handle_request_created_failed",
					Message: err.Error(),
					Error:   &logger.ErrObj{Msg: err.Error()},
				})
				// не реквеуим: повтор того же сообщения упадет снова
				_ = msg.Nack(false, false)
			} else {
				_ = msg.Ack(false)
			}
		}
	}
}

func (c *RequestCreatedConsumer) handleRequestCreated(ctx context.Context, msg amqp.Delivery) error {
	var event RequestCreatedMessage
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		return fmt.Errorf("parse request created event: %w", err)
	}

	userIDs, err := c.repo.ListAvailableUserIDs(ctx, event.DistrictID)
	if err != nil {
		return fmt.Errorf("find available collectors: %w", err)
	}

	notified := 0
	for _, userID := range userIDs {
		err := c.hub.SendToUserJSON(userID, "new_request", map[string]any{
			"request_id":      event.RequestID,
			"district_id":     event.DistrictID,
			"waste_type_id":   event.WasteTypeID,
			"collection_type": event.CollectionType,
		})
		if err == nil {
			notified++
		}
	}

	c.log.Info(logger.Entry{
		Action:    "collectors_notified",
		Message:   fmt.Sprintf("request %s: notified %d of %d available collectors", event.RequestID, notified, len(userIDs)),
		RequestID: event.RequestID,
		Additional: map[string]any{
			"district_id": event.DistrictID,
		},
	})

	return nil
}
