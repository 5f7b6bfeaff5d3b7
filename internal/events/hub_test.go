package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_PublishReachesSubscribers(t *testing.T) {
	hub := NewHub()

	ch1, cancel1 := hub.Subscribe(4)
	ch2, cancel2 := hub.Subscribe(4)
	defer cancel1()
	defer cancel2()

	require.Equal(t, 2, hub.SubscriberCount())

	err := hub.Publish(context.Background(), EventNewOrder, map[string]int{"id": 42})
	require.NoError(t, err)

	for _, ch := range []<-chan []byte{ch1, ch2} {
		select {
		case body := <-ch:
			var env Envelope
			require.NoError(t, json.Unmarshal(body, &env))
			assert.Equal(t, EventNewOrder, env.Event)
			assert.WithinDuration(t, time.Now(), env.At, time.Minute)

			payload, ok := env.Payload.(map[string]interface{})
			require.True(t, ok)
			assert.EqualValues(t, 42, payload["id"])
		case <-time.After(time.Second):
			t.Fatal("subscriber did not receive the event")
		}
	}
}

func TestHub_UnsubscribedReceivesNothing(t *testing.T) {
	hub := NewHub()

	ch, cancel := hub.Subscribe(4)
	cancel()
	assert.Equal(t, 0, hub.SubscriberCount())

	err := hub.Publish(context.Background(), EventOrderStatusUpdated, nil)
	require.NoError(t, err)

	// The channel was closed by cancel; no event was delivered before it.
	_, open := <-ch
	assert.False(t, open)
}

func TestHub_SlowSubscriberDoesNotBlock(t *testing.T) {
	hub := NewHub()

	_, cancel := hub.Subscribe(1)
	defer cancel()

	done := make(chan struct{})
	go func() {
		// Buffer of 1 fills on the first publish; the rest must be dropped
		// without blocking.
		for i := 0; i < 10; i++ {
			hub.Publish(context.Background(), EventNewOrder, i)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publish blocked on a slow subscriber")
	}
}

func TestHub_CancelIsIdempotent(t *testing.T) {
	hub := NewHub()

	_, cancel := hub.Subscribe(1)
	cancel()
	assert.NotPanics(t, func() { cancel() })
}

// --- Fanout ---

type stubPublisher struct {
	calls int
	err   error
}

func (s *stubPublisher) Publish(ctx context.Context, event string, payload interface{}) error {
	s.calls++
	return s.err
}

func TestFanout_ContinuesPastFailures(t *testing.T) {
	failing := &stubPublisher{err: errors.New("broker down")}
	healthy := &stubPublisher{}

	fan := Fanout{failing, healthy}
	err := fan.Publish(context.Background(), EventNewOrder, nil)

	assert.Error(t, err)
	assert.Equal(t, 1, failing.calls)
	assert.Equal(t, 1, healthy.calls)
}

func TestFanout_AllHealthy(t *testing.T) {
	a := &stubPublisher{}
	b := &stubPublisher{}

	fan := Fanout{a, b}
	err := fan.Publish(context.Background(), EventOrderStatusUpdated, "x")

	assert.NoError(t, err)
	assert.Equal(t, 1, a.calls)
	assert.Equal(t, 1, b.calls)
}
