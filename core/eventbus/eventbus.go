// Package eventbus provides the event bus for publishing and subscribing to events.
package eventbus

import (
	"digitpad-go/core/event"
)

// EventBus is the interface for the event bus.
type EventBus interface {
	// Publish publishes an event to all subscribers.
	// This method is non-blocking; events are queued for async dispatch.
	Publish(e event.Event)

	// Subscribe subscribes to all events.
	// Returns a subscription ID that can be used to unsubscribe.
	Subscribe(handler EventHandler) string

	// SubscribeEvents subscribes to events with the given names only.
	// Names are compared with Event.EventName.
	SubscribeEvents(handler EventHandler, names ...string) string

	// Unsubscribe removes a subscription by its ID.
	Unsubscribe(subscriptionID string)

	// Close shuts down the event bus and releases resources.
	// Events already queued are still delivered. After Close is called,
	// Publish will be a no-op.
	Close()
}

// EventHandler is a function that handles an event.
type EventHandler func(e event.Event)
