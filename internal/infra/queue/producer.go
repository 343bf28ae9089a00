package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/xavierca1/leadpilot/internal/usecase"
)

// publisher is the part of *amqp.Channel the producer uses.
type publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// Producer forwards domain events to the topic exchange, keyed by event type.
type Producer struct {
	Ch publisher
}

func NewProducer(ch *amqp.Channel) *Producer {
	return &Producer{Ch: ch}
}

func (p *Producer) Publish(ctx context.Context, evt usecase.Event) error {
	body, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("encode event %s: %w", evt.Type, err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		evt.Type,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Type:         evt.Type,
			Timestamp:    evt.At,
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("publish event %s: %w", evt.Type, err)
	}
	return nil
}
