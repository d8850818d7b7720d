package mq

import (
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Exchanges
const (
	RequestExchange   = "request_topic"
	CollectorExchange = "collector_topic"
)

// Routing keys для событий заявок
const (
	KeyRequestCreated   = "request.created"
	KeyRequestAccepted  = "request.accepted"
	KeyRequestStarted   = "request.started"
	KeyRequestCompleted = "request.completed"
	KeyRequestCancelled = "request.cancelled"

	KeyAvailabilityChanged = "collector.availability_changed"
	KeyRatingChanged       = "collector.rating_changed"
)

// Queues
const (
	QueueRequestCreated   = "request.created"
	QueueRequestAccepted  = "request.accepted"
	QueueRequestCompleted = "request.completed"
	QueueRequestCancelled = "request.cancelled"

	QueueAvailabilityChanged = "collector.availability_changed"
)

// SetupTopology объявляет exchanges, очереди и bindings.
// Идемпотентно: повторный вызов безопасен.
func SetupTopology(mq *RabbitMQ) error {
	ch := mq.Channel()
	if ch == nil {
		return fmt.Errorf("rabbitmq channel not available")
	}

	exchanges := []string{RequestExchange, CollectorExchange}
	for _, ex := range exchanges {
		if err := ch.ExchangeDeclare(
			ex,
			"topic",
			true,  // durable
			false, // auto-delete
			false, // internal
			false, // no-wait
			nil,
		); err != nil {
			return fmt.Errorf("declare exchange %s: %w", ex, err)
		}
	}

	bindings := []struct {
		queue    string
		key      string
		exchange string
	}{
		{QueueRequestCreated, KeyRequestCreated, RequestExchange},
		{QueueRequestAccepted, KeyRequestAccepted, RequestExchange},
		{QueueRequestCompleted, KeyRequestCompleted, RequestExchange},
		{QueueRequestCancelled, KeyRequestCancelled, RequestExchange},
		{QueueAvailabilityChanged, KeyAvailabilityChanged, CollectorExchange},
	}

	for _, b := range bindings {
		q, err := ch.QueueDeclare(
			b.queue,
			true,  // durable
			false, // auto-delete
			false, // exclusive
			false, // no-wait
			amqp.Table{},
		)
		if err != nil {
			return fmt.Errorf("declare queue %s: %w", b.queue, err)
		}

		if err := ch.QueueBind(q.Name, b.key, b.exchange, false, nil); err != nil {
			return fmt.Errorf("bind queue %s to %s (%s): %w", b.queue, b.exchange, b.key, err)
		}
	}

	return nil
}
