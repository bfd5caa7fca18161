package handlers

import (
	"sync"

	"irrigator/internal/logger"
	"irrigator/internal/service"
)

// Message is one pushed event.
type Message struct {
	Event string
	ID    uint64
	Data  []byte
}

// Subscription receives broadcast messages until closed.
type Subscription struct {
	C    <-chan Message
	ch   chan Message
	hub  *Hub
	once sync.Once
}

// Close detaches the subscription from its hub.
func (s *Subscription) Close() {
	s.once.Do(func() { s.hub.remove(s) })
}

// Hub fans messages out to the /events and /ws subscribers. A subscriber
// whose buffer is full misses the message; Broadcast never waits.
type Hub struct {
	mu     sync.Mutex
	subs   map[*Subscription]struct{}
	buffer int
	log    *logger.Logger
}

var _ service.Broadcaster = (*Hub)(nil)

const defaultHubBuffer = 8

// NewHub creates a hub giving each subscriber buffer pending messages.
func NewHub(buffer int, log *logger.Logger) *Hub {
	if buffer <= 0 {
		buffer = defaultHubBuffer
	}
	return &Hub{subs: make(map[*Subscription]struct{}), buffer: buffer, log: logger.OrNop(log)}
}

// Subscribe registers a new subscriber.
func (h *Hub) Subscribe() *Subscription {
	ch := make(chan Message, h.buffer)
	s := &Subscription{C: ch, ch: ch, hub: h}
	h.mu.Lock()
	h.subs[s] = struct{}{}
	n := len(h.subs)
	h.mu.Unlock()
	h.log.Debugw("subscriber_added", "subscribers", n)
	return s
}

func (h *Hub) remove(s *Subscription) {
	h.mu.Lock()
	delete(h.subs, s)
	close(s.ch)
	n := len(h.subs)
	h.mu.Unlock()
	h.log.Debugw("subscriber_removed", "subscribers", n)
}

// CloseAll detaches every subscriber; their streams end.
func (h *Hub) CloseAll() {
	h.mu.Lock()
	subs := make([]*Subscription, 0, len(h.subs))
	for s := range h.subs {
		subs = append(subs, s)
	}
	h.mu.Unlock()
	for _, s := range subs {
		s.Close()
	}
}

// Len returns the number of subscribers.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Broadcast delivers payload to every subscriber that has room for it.
func (h *Hub) Broadcast(event string, id uint64, payload []byte) {
	msg := Message{Event: event, ID: id, Data: payload}
	h.mu.Lock()
	defer h.mu.Unlock()
	for s := range h.subs {
		select {
		case s.ch <- msg:
		default:
			h.log.Warnw("subscriber_slow_message_dropped", "event", event, "id", id)
		}
	}
}
