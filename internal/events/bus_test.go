package events

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBus_Subscribe(t *testing.T) {
	bus := NewBus()
	defer bus.Close()

	var received bool
	sub := bus.Subscribe(EventWindowResized, func(e Event) {
		received = true
	})
	assert.NotNil(t, sub)

	bus.Publish(Event{Type: EventWindowResized})
	assert.True(t, received)
}

func TestBus_SubscribeMultipleHandlers(t *testing.T) {
	bus := NewBus()
	defer bus.Close()

	var count int32
	handler := func(e Event) {
		atomic.AddInt32(&count, 1)
	}

	bus.Subscribe(EventWindowResized, handler)
	bus.Subscribe(EventWindowResized, handler)
	bus.Subscribe(EventWindowResized, handler)

	bus.Publish(Event{Type: EventWindowResized})
	assert.Equal(t, int32(3), atomic.LoadInt32(&count))
}

func TestBus_HandlerOrder(t *testing.T) {
	bus := NewBus()
	defer bus.Close()

	var order []int
	bus.Subscribe(EventWindowRedrawn, func(e Event) { order = append(order, 1) })
	bus.Subscribe(EventWindowRedrawn, func(e Event) { order = append(order, 2) })
	bus.Subscribe(EventWindowRedrawn, func(e Event) { order = append(order, 3) })

	bus.Publish(Event{Type: EventWindowRedrawn})
	assert.Equal(t, []int{1, 2, 3}, order)
}

func TestBus_PublishWithData(t *testing.T) {
	bus := NewBus()
	defer bus.Close()

	var receivedEvent Event
	bus.Subscribe(EventWindowResized, func(e Event) {
		receivedEvent = e
	})

	bus.Publish(NewResizeEvent("main", 3024, 1964))

	assert.Equal(t, EventWindowResized, receivedEvent.Type)
	assert.Equal(t, "main", receivedEvent.Window)
	assert.Equal(t, 3024, receivedEvent.Data["width"])
	assert.Equal(t, 1964, receivedEvent.Data["height"])
}

func TestBus_Cancel(t *testing.T) {
	bus := NewBus()
	defer bus.Close()

	var count int
	sub := bus.Subscribe(EventWindowResized, func(e Event) {
		count++
	})

	bus.Publish(Event{Type: EventWindowResized})
	sub.Cancel()
	bus.Publish(Event{Type: EventWindowResized})

	assert.Equal(t, 1, count)
}

func TestBus_CancelIdempotent(t *testing.T) {
	bus := NewBus()
	defer bus.Close()

	sub := bus.Subscribe(EventWindowResized, func(e Event) {})
	sub.Cancel()
	sub.Cancel() // second cancel is a no-op

	var nilSub *Subscription
	nilSub.Cancel() // nil receiver is a no-op too
}

func TestBus_CancelFromInsideHandler(t *testing.T) {
	bus := NewBus()
	defer bus.Close()

	var count int
	var sub *Subscription
	sub = bus.Subscribe(EventWindowResized, func(e Event) {
		count++
		sub.Cancel()
	})

	bus.Publish(Event{Type: EventWindowResized})
	bus.Publish(Event{Type: EventWindowResized})

	assert.Equal(t, 1, count)
}

func TestBus_CancelOnlyRemovesOwnHandler(t *testing.T) {
	bus := NewBus()
	defer bus.Close()

	var first, second int
	sub := bus.Subscribe(EventWindowResized, func(e Event) { first++ })
	bus.Subscribe(EventWindowResized, func(e Event) { second++ })

	sub.Cancel()
	bus.Publish(Event{Type: EventWindowResized})

	assert.Equal(t, 0, first)
	assert.Equal(t, 1, second)
}

func TestBus_Close(t *testing.T) {
	bus := NewBus()

	var received bool
	bus.Subscribe(EventWindowResized, func(e Event) {
		received = true
	})

	bus.Close()

	// After close, publish should not call handlers
	bus.Publish(Event{Type: EventWindowResized})
	assert.False(t, received)

	// Subscribe after close returns nil
	sub := bus.Subscribe(EventWindowClosed, func(e Event) {
		received = true
	})
	assert.Nil(t, sub)
	bus.Publish(Event{Type: EventWindowClosed})
	assert.False(t, received)
}

func TestBus_ConcurrentAccess(t *testing.T) {
	bus := NewBus()
	defer bus.Close()

	var count int64
	bus.Subscribe(EventWindowResized, func(e Event) {
		atomic.AddInt64(&count, 1)
	})

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			bus.Publish(Event{Type: EventWindowResized})
		}()
	}

	wg.Wait()
	assert.Equal(t, int64(100), atomic.LoadInt64(&count))
}

func TestNewWindowEvent(t *testing.T) {
	event := NewWindowEvent(EventWindowClosed, "scratch", map[string]interface{}{
		"reason": "user",
	})

	assert.Equal(t, EventWindowClosed, event.Type)
	assert.Equal(t, "scratch", event.Window)
	assert.Equal(t, "user", event.Data["reason"])
}

func TestNewConfigReloadedEvent(t *testing.T) {
	event := NewConfigReloadedEvent("/tmp/.notchtab.yaml")

	assert.Equal(t, EventConfigReloaded, event.Type)
	assert.Equal(t, "/tmp/.notchtab.yaml", event.Data["path"])
}
