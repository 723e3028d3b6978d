// Package live fans out change events to the screens subscribed to them.
package live

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

type Topic string

const (
	TopicOrders Topic = "orders"
	TopicMemos  Topic = "memos"
)

const (
	EventOrderCreated = "order.created"
	EventOrderUpdated = "order.updated"
	EventMemoCreated  = "memo.created"

	// EventResync replaces events a subscriber was too slow to receive.
	// Readers should refetch state instead of applying deltas.
	EventResync = "resync"
)

type Event struct {
	Topic   Topic     `json:"topic"`
	Type    string    `json:"type"`
	Payload any       `json:"payload"`
	At      time.Time `json:"at"`
}

type Publisher interface {
	Publish(Event)
}

type subscription struct {
	ch     chan Event
	topics map[Topic]bool
}

func (s *subscription) wants(t Topic) bool {
	return len(s.topics) == 0 || s.topics[t]
}

// Hub is an in-process broadcaster. Publish never blocks: a subscriber with
// a full buffer loses its oldest buffered event and the new one, and gets an
// EventResync in their place.
type Hub struct {
	mu     sync.RWMutex
	subs   map[*subscription]struct{}
	buffer int
	closed bool
}

func NewHub(buffer int) *Hub {
	if buffer < 1 {
		buffer = 1
	}
	return &Hub{
		subs:   make(map[*subscription]struct{}),
		buffer: buffer,
	}
}

// Subscribe registers for the given topics, or every topic when none are
// given. The returned cancel func is idempotent and closes the channel.
func (h *Hub) Subscribe(topics ...Topic) (<-chan Event, func()) {
	sub := &subscription{
		ch:     make(chan Event, h.buffer),
		topics: make(map[Topic]bool, len(topics)),
	}
	for _, t := range topics {
		sub.topics[t] = true
	}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		close(sub.ch)
		return sub.ch, func() {}
	}
	h.subs[sub] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			if _, ok := h.subs[sub]; ok {
				delete(h.subs, sub)
				close(sub.ch)
			}
		})
	}
	return sub.ch, cancel
}

func (h *Hub) Publish(e Event) {
	if e.At.IsZero() {
		e.At = time.Now().UTC()
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for sub := range h.subs {
		if !sub.wants(e.Topic) {
			continue
		}
		select {
		case sub.ch <- e:
		default:
			select {
			case <-sub.ch:
			default:
			}
			select {
			case sub.ch <- Event{Topic: e.Topic, Type: EventResync, At: e.At}:
			default:
			}
			log.Warn().Str("topic", string(e.Topic)).Str("type", e.Type).Msg("subscriber buffer full, resync queued")
		}
	}
}

// Subscribers reports the number of live subscriptions.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Close ends every subscription; later subscribers receive a closed channel.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for sub := range h.subs {
		delete(h.subs, sub)
		close(sub.ch)
	}
}
