package events

import (
	"context"
	"errors"
	"time"
)

// Event kinds pushed to dashboards.
const (
	EventNewOrder           = "new-order"
	EventOrderStatusUpdated = "order-status-updated"
)

// Envelope is the wire form of a broadcast event.
type Envelope struct {
	Event   string      `json:"event"`
	At      time.Time   `json:"at"`
	Payload interface{} `json:"payload"`
}

// Publisher delivers order-lifecycle events to whoever is listening.
// Best-effort: no persistence, no replay, no delivery guarantee. Callers
// must never let a Publish error fail an operation whose data mutation
// already committed.
type Publisher interface {
	Publish(ctx context.Context, event string, payload interface{}) error
}

// Fanout publishes to every backend, continuing past failures so one broken
// transport does not starve the others.
type Fanout []Publisher

func (f Fanout) Publish(ctx context.Context, event string, payload interface{}) error {
	var errs []error
	for _, p := range f {
		if err := p.Publish(ctx, event, payload); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
