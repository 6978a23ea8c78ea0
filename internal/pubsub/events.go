// Package pubsub provides a generic publish/subscribe event system.
// The registry store publishes a Change on every successful mutation; the
// dashboard and the snapshot cache subscribe to stay fresh.
package pubsub

import (
	"context"
	"time"
)

// EventType is the kind of mutation an event reports.
type EventType string

const (
	CreatedEvent EventType = "created"
	UpdatedEvent EventType = "updated"
	DeletedEvent EventType = "deleted"
)

// Event is one published mutation with a typed payload.
type Event[T any] struct {
	Type      EventType
	Payload   T
	Timestamp time.Time
}

// Subscriber hands out subscription channels.
type Subscriber[T any] interface {
	Subscribe(ctx context.Context) <-chan Event[T]
}

// Publisher accepts events for fan-out.
type Publisher[T any] interface {
	Publish(eventType EventType, payload T)
}

// Relay subscribes to src and runs handle for every event until ctx is done or
// src closes the subscription. When dst is non-nil the event is republished
// there after handle returns, so dst's subscribers observe whatever handle
// changed. The returned channel closes when relaying stops.
func Relay[T any](ctx context.Context, src Subscriber[T], dst Publisher[T], handle func(Event[T])) <-chan struct{} {
	ch := src.Subscribe(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for event := range ch {
			if handle != nil {
				handle(event)
			}
			if dst != nil {
				dst.Publish(event.Type, event.Payload)
			}
		}
	}()
	return done
}
