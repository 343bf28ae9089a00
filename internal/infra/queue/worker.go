package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/xavierca1/leadpilot/internal/entity"
	"github.com/xavierca1/leadpilot/internal/usecase"
)

var ErrNoImage = errors.New("no image generated")

// ImageAttacher illustrates an existing content item.
type ImageAttacher interface {
	GenerateImage(ctx context.Context, contentID string) (usecase.GenerateImageOutput, error)
}

// contentCreated is the data of a content.created event.
type contentCreated struct {
	Content entity.GeneratedContent `json:"content"`
}

// Worker illustrates freshly created content in the background.
type Worker struct {
	Channel *amqp.Channel
	Images  ImageAttacher
	Logger  *zap.Logger
}

func NewWorker(ch *amqp.Channel, images ImageAttacher, logger *zap.Logger) *Worker {
	return &Worker{Channel: ch, Images: images, Logger: logger}
}

// Start consumes queueName until ctx is done or the channel closes.
func (w *Worker) Start(ctx context.Context, queueName string) error {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("register consumer on %s: %w", queueName, err)
	}

	w.Logger.Info("worker waiting for messages", zap.String("queue", queueName))
	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return errors.New("delivery channel closed")
			}
			w.handle(ctx, d)
		}
	}
}

// handle acks processed and ignored messages. Failures are nacked without
// requeue so they land in the dead letter queue.
func (w *Worker) handle(ctx context.Context, d amqp.Delivery) {
	var evt usecase.Event
	if err := json.Unmarshal(d.Body, &evt); err != nil {
		w.Logger.Warn("worker: invalid message", zap.Error(err))
		_ = d.Nack(false, false)
		return
	}

	if err := w.processMessage(ctx, evt); err != nil {
		w.Logger.Warn("worker: processing failed", zap.String("type", evt.Type), zap.Error(err))
		_ = d.Nack(false, false)
		return
	}
	_ = d.Ack(false)
}

func (w *Worker) processMessage(ctx context.Context, evt usecase.Event) error {
	switch evt.Type {
	case ContentCreatedKey:
		var data contentCreated
		if err := json.Unmarshal(evt.Data, &data); err != nil {
			return fmt.Errorf("decode %s: %w", evt.Type, err)
		}
		return w.illustrate(ctx, data.Content)

	default:
		w.Logger.Debug("worker: ignoring event", zap.String("type", evt.Type))
		return nil
	}
}

func (w *Worker) illustrate(ctx context.Context, c entity.GeneratedContent) error {
	if c.ID == "" {
		return errors.New("content id missing")
	}
	if c.ImageURL != "" || c.Degraded {
		return nil
	}

	out, err := w.Images.GenerateImage(ctx, c.ID)
	if err != nil {
		return err
	}
	if !out.Generated {
		return fmt.Errorf("content %s: %w", c.ID, ErrNoImage)
	}

	w.Logger.Info("worker: image attached", zap.String("content_id", c.ID))
	return nil
}
