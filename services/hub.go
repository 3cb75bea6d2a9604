package services

import (
	"encoding/json"
	"sync"

	"github.com/openbingo/board-server/models"
	"github.com/openbingo/board-server/utils/logger"
)

// Hub is the fan-out layer for push subscribers. Envelope construction
// and delivery decisions happen on the engine's goroutine; the hub only
// guards its client set so connects/disconnects can happen concurrently.
type Hub struct {
	mu      sync.Mutex
	clients map[*Client]struct{}
}

func newHub() *Hub {
	return &Hub{clients: make(map[*Client]struct{})}
}

func (h *Hub) add(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) remove(c *Client) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
}

func (h *Hub) snapshotClients() []*Client {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		out = append(out, c)
	}
	return out
}

func marshalEnvelope(env models.Envelope) ([]byte, error) {
	payload, err := json.Marshal(env)
	if err != nil {
		logger.Errorf("marshal envelope: %v", err)
	}
	return payload, err
}

// deliver sends an envelope to every client the filter accepts.
func (h *Hub) deliver(env models.Envelope, accept func(*Client) bool) {
	payload, err := marshalEnvelope(env)
	if err != nil {
		return
	}
	for _, c := range h.snapshotClients() {
		if accept(c) {
			c.enqueue(payload)
		}
	}
}
