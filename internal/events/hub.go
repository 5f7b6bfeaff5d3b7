package events

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"dineqr-be/internal/logger"
	"dineqr-be/internal/metrics"

	"go.uber.org/zap"
)

// Hub is the in-process broadcaster backing the websocket dashboard stream.
// Subscribers receive marshalled envelopes; a subscriber whose buffer is
// full misses the event rather than blocking the publisher.
type Hub struct {
	mu   sync.RWMutex
	subs map[chan []byte]struct{}
}

func NewHub() *Hub {
	return &Hub{
		subs: make(map[chan []byte]struct{}),
	}
}

// Subscribe registers a new subscriber. The returned cancel func must be
// called exactly once; the channel is closed by it.
func (h *Hub) Subscribe(buffer int) (<-chan []byte, func()) {
	ch := make(chan []byte, buffer)

	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if _, ok := h.subs[ch]; ok {
			delete(h.subs, ch)
			close(ch)
		}
		h.mu.Unlock()
	}
	return ch, cancel
}

// SubscriberCount reports the number of connected subscribers.
func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

func (h *Hub) Publish(ctx context.Context, event string, payload interface{}) error {
	body, err := json.Marshal(Envelope{
		Event:   event,
		At:      time.Now().UTC(),
		Payload: payload,
	})
	if err != nil {
		metrics.RecordEventPublished(event, false)
		return err
	}

	h.mu.RLock()
	for ch := range h.subs {
		select {
		case ch <- body:
		default:
			// Slow consumer; drop rather than block the lifecycle engine.
			logger.FromCtx(ctx).Warn("dropping event for slow subscriber",
				zap.String("event", event),
			)
		}
	}
	h.mu.RUnlock()

	metrics.RecordEventPublished(event, true)
	return nil
}
