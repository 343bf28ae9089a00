package queue

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xavierca1/leadpilot/internal/entity"
	"github.com/xavierca1/leadpilot/internal/store"
	"github.com/xavierca1/leadpilot/internal/usecase"
)

// MockChannel
type MockChannel struct {
	mock.Mock
}

func (m *MockChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	args := m.Called(ctx, exchange, key, mandatory, immediate, msg)
	return args.Error(0)
}

// MockImageAttacher
type MockImageAttacher struct {
	mock.Mock
}

func (m *MockImageAttacher) GenerateImage(ctx context.Context, contentID string) (usecase.GenerateImageOutput, error) {
	args := m.Called(ctx, contentID)
	return args.Get(0).(usecase.GenerateImageOutput), args.Error(1)
}

// fakeAcknowledger records what the worker did with a delivery.
type fakeAcknowledger struct {
	acked    bool
	nacked   bool
	requeued bool
}

func (f *fakeAcknowledger) Ack(uint64, bool) error { f.acked = true; return nil }

func (f *fakeAcknowledger) Nack(_ uint64, _ bool, requeue bool) error {
	f.nacked = true
	f.requeued = requeue
	return nil
}

func (f *fakeAcknowledger) Reject(_ uint64, requeue bool) error {
	f.nacked = true
	f.requeued = requeue
	return nil
}

func delivery(t *testing.T, a store.Action) (amqp.Delivery, *fakeAcknowledger) {
	t.Helper()
	evt, err := usecase.NewEvent(a.Name(), a)
	require.NoError(t, err)
	body, err := json.Marshal(evt)
	require.NoError(t, err)

	ack := &fakeAcknowledger{}
	return amqp.Delivery{Acknowledger: ack, Body: body}, ack
}

func TestProducerPublishesByEventType(t *testing.T) {
	ch := new(MockChannel)
	ch.On("PublishWithContext", mock.Anything, ExchangeName, "lead.discarded", false, false,
		mock.MatchedBy(func(msg amqp.Publishing) bool {
			var evt usecase.Event
			return msg.DeliveryMode == amqp.Persistent &&
				msg.ContentType == "application/json" &&
				msg.Type == "lead.discarded" &&
				json.Unmarshal(msg.Body, &evt) == nil &&
				string(evt.Data) == `{"id":"l1"}`
		})).Return(nil)

	evt, err := usecase.NewEvent("lead.discarded", store.DiscardLead{ID: "l1"})
	require.NoError(t, err)

	p := &Producer{Ch: ch}
	require.NoError(t, p.Publish(context.Background(), evt))
	ch.AssertExpectations(t)
}

func TestProducerWrapsError(t *testing.T) {
	ch := new(MockChannel)
	ch.On("PublishWithContext", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(amqp.ErrClosed)

	p := &Producer{Ch: ch}
	err := p.Publish(context.Background(), usecase.Event{Type: "view.changed"})

	assert.ErrorIs(t, err, amqp.ErrClosed)
}

func TestWorkerAttachesImageToNewContent(t *testing.T) {
	images := new(MockImageAttacher)
	images.On("GenerateImage", mock.Anything, "c1").Return(usecase.GenerateImageOutput{Generated: true}, nil)
	w := NewWorker(nil, images, zap.NewNop())

	d, ack := delivery(t, store.ContentCreated{Content: entity.GeneratedContent{ID: "c1", Headline: "H"}})
	w.handle(context.Background(), d)

	assert.True(t, ack.acked)
	images.AssertExpectations(t)
}

func TestWorkerSkipsContentThatNeedsNoImage(t *testing.T) {
	tests := []struct {
		name    string
		content entity.GeneratedContent
	}{
		{name: "already illustrated", content: entity.GeneratedContent{ID: "c1", ImageURL: "data:image/png;base64,AA"}},
		{name: "degraded copy", content: entity.GeneratedContent{ID: "c1", Degraded: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			images := new(MockImageAttacher)
			w := NewWorker(nil, images, zap.NewNop())

			d, ack := delivery(t, store.ContentCreated{Content: tt.content})
			w.handle(context.Background(), d)

			assert.True(t, ack.acked)
			images.AssertNotCalled(t, "GenerateImage", mock.Anything, mock.Anything)
		})
	}
}

func TestWorkerAcksOtherEvents(t *testing.T) {
	images := new(MockImageAttacher)
	w := NewWorker(nil, images, zap.NewNop())

	d, ack := delivery(t, store.DiscardLead{ID: "l1"})
	w.handle(context.Background(), d)

	assert.True(t, ack.acked)
	images.AssertNotCalled(t, "GenerateImage", mock.Anything, mock.Anything)
}

func TestWorkerDeadLettersFailures(t *testing.T) {
	t.Run("no image", func(t *testing.T) {
		images := new(MockImageAttacher)
		images.On("GenerateImage", mock.Anything, "c1").Return(usecase.GenerateImageOutput{}, nil)
		w := NewWorker(nil, images, zap.NewNop())

		d, ack := delivery(t, store.ContentCreated{Content: entity.GeneratedContent{ID: "c1"}})
		w.handle(context.Background(), d)

		assert.True(t, ack.nacked)
		assert.False(t, ack.requeued)
	})

	t.Run("content gone", func(t *testing.T) {
		images := new(MockImageAttacher)
		images.On("GenerateImage", mock.Anything, "c1").
			Return(usecase.GenerateImageOutput{}, errors.New("content c1 not found"))
		w := NewWorker(nil, images, zap.NewNop())

		d, ack := delivery(t, store.ContentCreated{Content: entity.GeneratedContent{ID: "c1"}})
		w.handle(context.Background(), d)

		assert.True(t, ack.nacked)
	})

	t.Run("malformed body", func(t *testing.T) {
		w := NewWorker(nil, new(MockImageAttacher), zap.NewNop())
		ack := &fakeAcknowledger{}

		w.handle(context.Background(), amqp.Delivery{Acknowledger: ack, Body: []byte("{not json")})

		assert.True(t, ack.nacked)
		assert.False(t, ack.requeued)
	})
}
