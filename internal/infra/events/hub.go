// Package events fans dashboard state changes out to connected UI streams.
package events

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/xavierca1/leadpilot/internal/usecase"
)

const clientBuffer = 16

type Hub struct {
	mu      sync.Mutex
	clients map[chan string]struct{}
	closed  bool
}

func NewHub() *Hub {
	return &Hub{clients: make(map[chan string]struct{})}
}

// Subscribe registers a stream. After Close it returns an already closed channel.
func (h *Hub) Subscribe() chan string {
	ch := make(chan string, clientBuffer)
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		close(ch)
		return ch
	}
	h.clients[ch] = struct{}{}
	return ch
}

func (h *Hub) Unsubscribe(ch chan string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[ch]; ok {
		delete(h.clients, ch)
		close(ch)
	}
}

// Close ends every open stream so long-lived requests finish during server
// shutdown.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for ch := range h.clients {
		delete(h.clients, ch)
		close(ch)
	}
}

func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Publish encodes evt once and offers it to every stream. Slow streams miss it.
func (h *Hub) Publish(_ context.Context, evt usecase.Event) error {
	b, err := json.Marshal(evt)
	if err != nil {
		return err
	}
	h.Broadcast(string(b))
	return nil
}

func (h *Hub) Broadcast(msg string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.clients {
		select {
		case ch <- msg:
		default:
			// drop if slow
		}
	}
}
