package bough

import "time"

// Event carries the payload of a bus notification. Which fields are set
// depends on Type:
//
//   - EventGroupUpdated: Element is the group whose children changed.
//   - EventPointerEnter, EventPointerLeave: X and Y are surface coordinates.
//   - EventStart: StartTime.
//   - EventStop: StartTime and Time (the last tick time).
//   - EventTick: Time (the current frame time) and StartTime.
type Event struct {
	Type      string
	Element   *Element
	Time      time.Time
	StartTime time.Time
	X, Y      float64
}

// EventHandler receives bus notifications.
type EventHandler func(Event)

type busHandler struct {
	id uint32
	fn EventHandler
}

// EventBus is a synchronous publish/subscribe registry keyed by event name.
// Each Scene constructs its own bus; there is no package-level default.
// A nil *EventBus accepts every call and does nothing.
type EventBus struct {
	handlers map[string][]busHandler
	nextID   uint32
}

// NewEventBus creates an empty bus.
func NewEventBus() *EventBus {
	return &EventBus{handlers: make(map[string][]busHandler)}
}

// CallbackHandle allows removing a registered handler. The zero value is a
// valid handle that removes nothing.
type CallbackHandle struct {
	bus   *EventBus
	event string
	id    uint32
}

// Remove unregisters the handler. Safe to call more than once.
func (h CallbackHandle) Remove() {
	h.bus.Off(h)
}

// Valid reports whether the handle refers to a registration.
func (h CallbackHandle) Valid() bool {
	return h.bus != nil && h.id != 0
}

// On registers fn for event. Handlers run in registration order.
func (b *EventBus) On(event string, fn EventHandler) CallbackHandle {
	if b == nil || fn == nil {
		return CallbackHandle{}
	}
	if b.handlers == nil {
		b.handlers = make(map[string][]busHandler)
	}
	b.nextID++
	id := b.nextID
	// Copy on write: an Emit in progress keeps iterating its own slice.
	list := b.handlers[event]
	next := make([]busHandler, len(list), len(list)+1)
	copy(next, list)
	b.handlers[event] = append(next, busHandler{id: id, fn: fn})
	return CallbackHandle{bus: b, event: event, id: id}
}

// Once registers fn for a single delivery of event.
func (b *EventBus) Once(event string, fn EventHandler) CallbackHandle {
	if b == nil || fn == nil {
		return CallbackHandle{}
	}
	var h CallbackHandle
	h = b.On(event, func(e Event) {
		b.Off(h)
		fn(e)
	})
	return h
}

// Off removes the handler behind h. Unknown handles are ignored.
func (b *EventBus) Off(h CallbackHandle) {
	if b == nil || h.bus != b || h.id == 0 {
		return
	}
	list := b.handlers[h.event]
	for i, bh := range list {
		if bh.id != h.id {
			continue
		}
		if len(list) == 1 {
			delete(b.handlers, h.event)
			return
		}
		next := make([]busHandler, 0, len(list)-1)
		next = append(next, list[:i]...)
		next = append(next, list[i+1:]...)
		b.handlers[h.event] = next
		return
	}
}

// Emit delivers e to every handler registered for e.Type at the time of the
// call. Handlers added during delivery receive the next emission.
func (b *EventBus) Emit(e Event) {
	if b == nil {
		return
	}
	for _, bh := range b.handlers[e.Type] {
		bh.fn(e)
	}
}

// HandlerCount returns the number of handlers registered for event.
func (b *EventBus) HandlerCount(event string) int {
	if b == nil {
		return 0
	}
	return len(b.handlers[event])
}
