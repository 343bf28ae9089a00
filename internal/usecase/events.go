package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// Event is a state change announced to the UI and, when configured, the broker.
type Event struct {
	Type string          `json:"type"`
	At   time.Time       `json:"at"`
	Data json.RawMessage `json:"data,omitempty"`
}

func NewEvent(typ string, data any) (Event, error) {
	evt := Event{Type: typ, At: time.Now().UTC()}
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			return Event{}, err
		}
		evt.Data = raw
	}
	return evt, nil
}

// Publishers fans an event out to several publishers and joins their errors.
type Publishers []EventPublisher

func (p Publishers) Publish(ctx context.Context, evt Event) error {
	var errs []error
	for _, pub := range p {
		if pub == nil {
			continue
		}
		if err := pub.Publish(ctx, evt); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
