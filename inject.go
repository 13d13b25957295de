package bough

// syntheticPointerEvent represents a single injected pointer event in surface
// coordinates. leave reports the pointer leaving the surface entirely.
type syntheticPointerEvent struct {
	x, y  float64
	leave bool
}

// InjectPointerMove queues a pointer move to (x, y). The event is consumed on
// the next Scene.Update and crosses the surface bounds exactly like real
// pointer input, emitting EventPointerEnter or EventPointerLeave.
func (s *Scene) InjectPointerMove(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{x: x, y: y})
}

// InjectPointerLeave queues the pointer leaving the surface.
func (s *Scene) InjectPointerLeave() {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{leave: true})
}

// InjectPointerPath queues a pointer sweep from (fromX, fromY) to (toX, toY)
// over frames moves, linearly interpolated. The last move lands on the end
// point. Minimum frames is 1.
func (s *Scene) InjectPointerPath(fromX, fromY, toX, toY float64, frames int) {
	if frames < 1 {
		frames = 1
	}
	for i := 1; i <= frames; i++ {
		t := float64(i) / float64(frames)
		s.InjectPointerMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
}

// injecting reports whether injected events are pending. While they are, the
// host skips real pointer input.
func (s *Scene) injecting() bool {
	return len(s.injectQueue) > 0
}

// processInjectedInput pops one event from the inject queue and feeds it
// through the pointer tracker. Returns true if an event was consumed.
func (s *Scene) processInjectedInput() bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	evt := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	if evt.leave {
		s.PointerLeave()
	} else {
		s.PointerMove(evt.x, evt.y)
	}
	return true
}
