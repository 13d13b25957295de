package bough

import "testing"

func TestEventBusOnEmit(t *testing.T) {
	bus := NewEventBus()
	var got []string
	bus.On("a", func(e Event) { got = append(got, "1:"+e.Type) })
	bus.On("a", func(e Event) { got = append(got, "2:"+e.Type) })
	bus.On("b", func(e Event) { got = append(got, "b") })
	bus.Emit(Event{Type: "a"})
	if len(got) != 2 || got[0] != "1:a" || got[1] != "2:a" {
		t.Errorf("got %v, want handlers in registration order", got)
	}
}

func TestEventBusOff(t *testing.T) {
	bus := NewEventBus()
	count := 0
	h := bus.On("a", func(Event) { count++ })
	if !h.Valid() {
		t.Fatal("handle should be valid")
	}
	h.Remove()
	h.Remove()
	bus.Emit(Event{Type: "a"})
	if count != 0 {
		t.Errorf("count = %d after Off", count)
	}
	if bus.HandlerCount("a") != 0 {
		t.Errorf("HandlerCount = %d", bus.HandlerCount("a"))
	}
	bus.Off(CallbackHandle{}) // zero handle: ignored
	NewEventBus().Off(h)      // foreign handle: ignored
}

func TestEventBusOnce(t *testing.T) {
	bus := NewEventBus()
	count := 0
	bus.Once("a", func(Event) { count++ })
	bus.Emit(Event{Type: "a"})
	bus.Emit(Event{Type: "a"})
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
}

func TestEventBusHandlerAddedDuringEmit(t *testing.T) {
	bus := NewEventBus()
	late := 0
	bus.On("a", func(Event) {
		bus.On("a", func(Event) { late++ })
	})
	bus.Emit(Event{Type: "a"})
	if late != 0 {
		t.Error("handler added during Emit ran in the same emission")
	}
	bus.Emit(Event{Type: "a"})
	if late != 1 {
		t.Errorf("late = %d, want 1", late)
	}
}

func TestEventBusNilSafe(t *testing.T) {
	var bus *EventBus
	h := bus.On("a", func(Event) {})
	if h.Valid() {
		t.Error("nil bus should return a zero handle")
	}
	bus.Emit(Event{Type: "a"})
	bus.Off(h)
	if bus.HandlerCount("a") != 0 {
		t.Error("nil bus has no handlers")
	}
}
