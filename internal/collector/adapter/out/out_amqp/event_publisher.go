// Package out_amqp — публикация событий collector service в RabbitMQ.
package out_amqp

import (
	"context"
	"encoding/json"
	"fmt"

	"wastehub/internal/collector/application/ports/out"
	"wastehub/internal/shared/logger"
	"wastehub/internal/shared/mq"
)

// CollectorEventPublisher публикует события сборщиков в collector_topic,
// а каскадные отмены заявок — в request_topic
type CollectorEventPublisher struct {
	mqConn *mq.RabbitMQ
	log    *logger.Logger
}

func NewCollectorEventPublisher(mqConn *mq.RabbitMQ, log *logger.Logger) *CollectorEventPublisher {
	return &CollectorEventPublisher{mqConn: mqConn, log: log}
}

// PublishAvailabilityChanged публикует переключение доступности
func (p *CollectorEventPublisher) PublishAvailabilityChanged(ctx context.Context, event out.AvailabilityChangedEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal availability event: %w", err)
	}

	if err := p.mqConn.Publish(ctx, mq.CollectorExchange, mq.KeyAvailabilityChanged, body); err != nil {
		return fmt.Errorf("publish availability event: %w", err)
	}

	p.log.Debug(logger.Entry{
		Action:  "availability_event_published",
		Message: fmt.Sprintf("collector=%s available=%t", event.CollectorID, event.IsAvailable),
	})

	return nil
}

// PublishRequestCancelled публикует каскадную отмену заявки
func (p *CollectorEventPublisher) PublishRequestCancelled(ctx context.Context, event out.RequestCancelledEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal cancel event: %w", err)
	}

	if err := p.mqConn.Publish(ctx, mq.RequestExchange, mq.KeyRequestCancelled, body); err != nil {
		return fmt.Errorf("publish cancel event: %w", err)
	}

	p.log.Debug(logger.Entry{
		Action:  "cancel_event_published",
		Message: fmt.Sprintf("request=%s collector=%s", event.RequestID, event.CollectorID),
	})

	return nil
}
