// Package realtime fans row-level change notifications out to live
// subscribers, one stream per collection.
package realtime

import (
	"encoding/json"
	"log/slog"
	"sync"
)

// Event is one change notification. Data is the full changed row as JSON.
type Event struct {
	Collection string
	Data       json.RawMessage
}

const subscriberBuffer = 16

type subscriber struct {
	collection string
	ch         chan Event
}

type Hub struct {
	mu     sync.RWMutex
	subs   map[*subscriber]struct{}
	closed bool
	logger *slog.Logger

	// OnSubscribersChanged, when set, receives the subscriber count after
	// every subscribe and cancel.
	OnSubscribersChanged func(n int)
}

func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{subs: make(map[*subscriber]struct{}), logger: logger}
}

// Subscribe registers interest in a collection. The returned cancel func
// must be called to release the subscription; it closes the channel.
func (h *Hub) Subscribe(collection string) (<-chan Event, func()) {
	s := &subscriber{collection: collection, ch: make(chan Event, subscriberBuffer)}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		close(s.ch)
		return s.ch, func() {}
	}
	h.subs[s] = struct{}{}
	n := len(h.subs)
	h.mu.Unlock()
	h.notifyCount(n)

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			if _, ok := h.subs[s]; !ok {
				h.mu.Unlock()
				return
			}
			delete(h.subs, s)
			n := len(h.subs)
			close(s.ch)
			h.mu.Unlock()
			h.notifyCount(n)
		})
	}
	return s.ch, cancel
}

// Close ends every subscription so streaming handlers can return during
// server shutdown. Later subscriptions get an already closed channel.
func (h *Hub) Close() {
	h.mu.Lock()
	h.closed = true
	for s := range h.subs {
		close(s.ch)
		delete(h.subs, s)
	}
	h.mu.Unlock()
	h.notifyCount(0)
}

// Publish delivers ev to every subscriber of its collection. A subscriber
// whose buffer is full misses the event.
func (h *Hub) Publish(ev Event) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered := 0
	for s := range h.subs {
		if s.collection != ev.Collection {
			continue
		}
		select {
		case s.ch <- ev:
			delivered++
		default:
			h.logger.Warn("dropping event for slow subscriber", "collection", ev.Collection)
		}
	}
	return delivered
}

func (h *Hub) PublishJSON(collection string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	h.Publish(Event{Collection: collection, Data: data})
	return nil
}

func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

func (h *Hub) notifyCount(n int) {
	if h.OnSubscribersChanged != nil {
		h.OnSubscribersChanged(n)
	}
}
