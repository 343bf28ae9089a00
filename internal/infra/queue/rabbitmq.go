package queue

import (
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	ExchangeName = "ex.leadpilot"
	DLXName      = "ex.leadpilot.dlx" // Dead Letter Exchange

	ContentCreatedQueue = "q.content.created"
	ContentCreatedDLQ   = "q.content.created.dlq"
	ContentCreatedKey   = "content.created"
)

type RabbitMQ struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

func NewRabbitMQ(url string) (*RabbitMQ, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connect to rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if err := setupTopology(ch); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("declare topology: %w", err)
	}

	return &RabbitMQ{Conn: conn, Ch: ch}, nil
}

// setupTopology declares a topic exchange that receives every domain event
// under its type, plus the content.created queue and its dead letter pair.
func setupTopology(ch *amqp.Channel) error {
	if err := ch.ExchangeDeclare(DLXName, "direct", true, false, false, false, nil); err != nil {
		return err
	}
	if _, err := ch.QueueDeclare(ContentCreatedDLQ, true, false, false, false, nil); err != nil {
		return err
	}
	if err := ch.QueueBind(ContentCreatedDLQ, ContentCreatedKey, DLXName, false, nil); err != nil {
		return err
	}

	if err := ch.ExchangeDeclare(ExchangeName, "topic", true, false, false, false, nil); err != nil {
		return err
	}

	args := amqp.Table{
		"x-dead-letter-exchange":    DLXName,
		"x-dead-letter-routing-key": ContentCreatedKey,
	}
	if _, err := ch.QueueDeclare(ContentCreatedQueue, true, false, false, false, args); err != nil {
		return err
	}
	return ch.QueueBind(ContentCreatedQueue, ContentCreatedKey, ExchangeName, false, nil)
}

func (r *RabbitMQ) Close() error {
	if r.Ch != nil {
		_ = r.Ch.Close()
	}
	if r.Conn != nil {
		return r.Conn.Close()
	}
	return nil
}
