package events

import (
	"sync"
)

// EventType represents the type of event
type EventType string

const (
	// Window lifecycle events
	EventWindowResized EventType = "window.resized"
	EventWindowRedrawn EventType = "window.redrawn"
	EventWindowClosed  EventType = "window.closed"

	// Config events
	EventConfigReloaded EventType = "config.reloaded"
)

// Event represents a host notification
type Event struct {
	Type   EventType
	Window string
	Data   map[string]interface{}
}

// Handler is a function that handles events
type Handler func(event Event)

// Subscription identifies a registered handler so it can remove itself.
// Listeners that outlive their usefulness (for example when a feature is
// switched off) cancel their own subscription from inside the handler.
type Subscription struct {
	bus       *Bus
	eventType EventType
	id        int
}

// Cancel removes the subscription from the bus. Safe to call more than once
// and safe to call from inside the subscribed handler.
func (s *Subscription) Cancel() {
	if s == nil || s.bus == nil {
		return
	}
	s.bus.unsubscribe(s.eventType, s.id)
	s.bus = nil
}

// Bus is a simple event bus for decoupled communication between the host
// notifier and listeners. Handlers for one event type run synchronously in
// registration order.
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]registration
	nextID   int
	closed   bool
}

type registration struct {
	id      int
	handler Handler
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[EventType][]registration),
	}
}

// Subscribe registers a handler for a specific event type and returns its
// subscription. A nil return means the bus is closed.
func (b *Bus) Subscribe(eventType EventType, handler Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}

	b.nextID++
	b.handlers[eventType] = append(b.handlers[eventType], registration{
		id:      b.nextID,
		handler: handler,
	})

	return &Subscription{bus: b, eventType: eventType, id: b.nextID}
}

// Publish sends an event to all registered handlers.
// Handlers are called synchronously in the order they were registered.
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return
	}
	regs := make([]registration, len(b.handlers[event.Type]))
	copy(regs, b.handlers[event.Type])
	b.mu.RUnlock()

	for _, reg := range regs {
		reg.handler(event)
	}
}

// Close stops the event bus and prevents new subscriptions/publications
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.closed = true
	b.handlers = make(map[EventType][]registration)
}

func (b *Bus) unsubscribe(eventType EventType, id int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	regs := b.handlers[eventType]
	for i, reg := range regs {
		if reg.id == id {
			b.handlers[eventType] = append(regs[:i:i], regs[i+1:]...)
			return
		}
	}
}

// Helper functions for creating common events

// NewWindowEvent creates a window lifecycle event
func NewWindowEvent(eventType EventType, window string, data map[string]interface{}) Event {
	return Event{
		Type:   eventType,
		Window: window,
		Data:   data,
	}
}

// NewResizeEvent creates a window resize event carrying the new pixel size
func NewResizeEvent(window string, width, height int) Event {
	return Event{
		Type:   EventWindowResized,
		Window: window,
		Data: map[string]interface{}{
			"width":  width,
			"height": height,
		},
	}
}

// NewConfigReloadedEvent creates a config reload event
func NewConfigReloadedEvent(path string) Event {
	return Event{
		Type:   EventConfigReloaded,
		Window: "",
		Data: map[string]interface{}{
			"path": path,
		},
	}
}
