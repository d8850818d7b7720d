// Package in_amqp — AMQP consumers request service.
package in_amqp

import (
	"context"
	"encoding/json"
	"fmt"

	"wastehub/internal/request/application/ports/out"
	"wastehub/internal/shared/logger"
	"wastehub/internal/shared/mq"

	amqp "github.com/rabbitmq/amqp091-go"
)

// RequestCancelledMessage — событие отмены заявки. Публикуется как самим
// request service (отмена клиентом), так и collector service при каскадной
// отмене из-за ухода сборщика в офлайн.
type RequestCancelledMessage struct {
	RequestID string `json:"request_id"`
	ClientID  string `json:"client_id"`
	Reason    string `json:"reason,omitempty"`
}

// RequestCancelledConsumer слушает request.cancelled и доставляет клиенту
// WebSocket уведомление об отмене его заявки
type RequestCancelledConsumer struct {
	mqConn      *mq.RabbitMQ
	profileRepo out.ProfileRepository
	notifier    out.RequestNotifier
	log         *logger.Logger
}

func NewRequestCancelledConsumer(
	mqConn *mq.RabbitMQ,
	profileRepo out.ProfileRepository,
	notifier out.RequestNotifier,
	log *logger.Logger,
) *RequestCancelledConsumer {
	return &RequestCancelledConsumer{
		mqConn:      mqConn,
		profileRepo: profileRepo,
		notifier:    notifier,
		log:         log,
	}
}

// Start запускает consumer. Блокируется до отмены контекста.
func (c *RequestCancelledConsumer) Start(ctx context.Context) error {
	ch := c.mqConn.Channel()
	if ch == nil {
		return fmt.Errorf("rabbitmq channel not available")
	}

	msgs, err := ch.Consume(
		mq.QueueRequestCancelled, // queue
		"",                       // consumer tag
		false,                    // auto-ack
		false,                    // exclusive
		false,                    // no-local
		false,                    // no-wait
		nil,                      // args
	)
	if err != nil {
		return fmt.Errorf("start consuming %s: %w", mq.QueueRequestCancelled, err)
	}

	c.log.Info(logger.Entry{
		Action:  "request_cancelled_consumer_started",
		Message: fmt.Sprintf("listening on queue %s", mq.QueueRequestCancelled),
	})

	for {
		select {
		case <-ctx.Done():
			c.log.Info(logger.Entry{Action: "request_cancelled_consumer_stopping", Message: "context cancelled"})
			return ctx.Err()

		case msg, ok := <-msgs:
			if !ok {
				c.log.Warn(logger.Entry{Action: "request_cancelled_consumer_channel_closed", Message: "message channel closed"})
				return fmt.Errorf("message channel closed")
			}

			if err := c.handleRequestCancelled(ctx, msg); err != nil {
				c.log.Error(logger.Entry{
					Action:  "handle_request_cancelled_failed",
					Message: err.Error(),
					Error:   &logger.ErrObj{Msg: err.Error()},
				})
				_ = msg.Nack(false, false)
			} else {
				_ = msg.Ack(false)
			}
		}
	}
}

func (c *RequestCancelledConsumer) handleRequestCancelled(ctx context.Context, msg amqp.Delivery) error {
	var event RequestCancelledMessage
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		return fmt.Errorf("parse request cancelled event: %w", err)
	}

	userID, err := c.profileRepo.FindClientUserID(ctx, event.ClientID)
	if err != nil {
		return fmt.Errorf("resolve client user: %w", err)
	}

	message := "your collection request was cancelled"
	if event.Reason != "" {
		message = fmt.Sprintf("your collection request was cancelled: %s", event.Reason)
	}

	notification := out.RequestNotification{
		Type:      "request_cancelled",
		RequestID: event.RequestID,
		Message:   message,
	}
	if err := c.notifier.NotifyUser(ctx, userID, notification); err != nil {
		// клиент не подключен к WebSocket, это не ошибка обработки
		c.log.Debug(logger.Entry{
			Action:    "cancel_notification_skipped",
			Message:   err.Error(),
			RequestID: event.RequestID,
		})
	}

	return nil
}
