package bough

import (
	"io"
	"os"
)

// Scene owns the drawing surface, the top-level element registry (a root
// group), the per-frame queue and the surface's pointer enter/leave events.
type Scene struct {
	// Events carries EventGroupUpdated for every group in the scene that has
	// no bus of its own, plus EventPointerEnter and EventPointerLeave.
	Events *EventBus

	// ScreenshotDir is where Screenshot writes PNG files. Defaults to
	// "screenshots".
	ScreenshotDir string

	// DebugOutput receives debug-mode stats. Defaults to os.Stderr.
	DebugOutput io.Writer

	root    *Element
	surface Surface
	frames  *FrameQueue
	debug   bool

	// Pointer state
	hovering bool
	pointer  Vec2

	// Headless tooling
	injectQueue     []syntheticPointerEvent
	screenshotQueue []string
	script          *Script
	updateFunc      func() error
}

// NewScene creates a scene drawing to surface, with an empty root group that
// shares the scene's event bus. A nil surface, or one without a context, is
// accepted here; NewRenderer rejects it.
func NewScene(surface Surface) *Scene {
	bus := NewEventBus()
	root := NewGroup("scene")
	root.Events = bus
	return &Scene{
		Events:        bus,
		ScreenshotDir: "screenshots",
		DebugOutput:   os.Stderr,
		root:          root,
		surface:       surface,
		frames:        NewFrameQueue(),
	}
}

// Root returns the scene's root group.
func (s *Scene) Root() *Element {
	return s.root
}

// Surface returns the drawing surface.
func (s *Scene) Surface() Surface {
	return s.surface
}

// Context returns the surface's drawing context, or nil.
func (s *Scene) Context() Context {
	if s.surface == nil {
		return nil
	}
	return s.surface.Context()
}

// Size returns the surface size in pixels, or (0, 0) without a surface.
func (s *Scene) Size() (width, height int) {
	if s.surface == nil {
		return 0, 0
	}
	return s.surface.Size()
}

// Frames returns the scene's frame queue. Renderers without an explicit
// scheduler request their frames here; the host pumps it through Update.
func (s *Scene) Frames() *FrameQueue {
	return s.frames
}

// Add adds elements to the root group.
func (s *Scene) Add(elements ...*Element) {
	s.root.Add(elements...)
}

// Remove removes elements from the root group.
func (s *Scene) Remove(elements ...*Element) {
	s.root.Remove(elements...)
}

// Set replaces the root group's children.
func (s *Scene) Set(elements ...*Element) {
	s.root.Set(elements...)
}

// Elements returns the live flattened set of shapes to paint, rebuilt on
// every call.
func (s *Scene) Elements() []*Element {
	return s.root.Elements()
}

// On registers a handler on the scene bus.
func (s *Scene) On(event string, fn EventHandler) CallbackHandle {
	return s.Events.On(event, fn)
}

// Off removes a handler registered with On.
func (s *Scene) Off(h CallbackHandle) {
	s.Events.Off(h)
}

// --- Pointer tracking ---

// PointerMove reports the pointer position in surface coordinates. Crossing
// the surface bounds emits EventPointerEnter or EventPointerLeave.
func (s *Scene) PointerMove(x, y float64) {
	s.pointer = Vec2{x, y}
	w, h := s.Size()
	inside := x >= 0 && y >= 0 && x < float64(w) && y < float64(h)
	switch {
	case inside && !s.hovering:
		s.hovering = true
		s.Events.Emit(Event{Type: EventPointerEnter, X: x, Y: y})
	case !inside && s.hovering:
		s.hovering = false
		s.Events.Emit(Event{Type: EventPointerLeave, X: x, Y: y})
	}
}

// PointerLeave reports that the pointer left the surface (for example the
// window lost the cursor). No-op when the pointer is not over the surface.
func (s *Scene) PointerLeave() {
	if !s.hovering {
		return
	}
	s.hovering = false
	s.Events.Emit(Event{Type: EventPointerLeave, X: s.pointer.X, Y: s.pointer.Y})
}

// Hovering reports whether the pointer is over the surface.
func (s *Scene) Hovering() bool {
	return s.hovering
}

// --- Frame pump ---

// Update advances the scene by one host frame: it steps an attached script,
// applies one injected pointer event, runs the frame callbacks that were
// pending (renderer ticks) and writes queued screenshots. Run calls it once
// per ebiten update; headless hosts call it directly.
func (s *Scene) Update() {
	if s.script != nil {
		s.script.step(s)
	}
	s.processInjectedInput()
	s.frames.Step()
	s.flushScreenshots()
}

// SetDebugMode enables or disables debug mode. When enabled, renderers on
// this scene log per-frame stats to DebugOutput, and tree depth and child
// count warnings are printed.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	debugEnabled = enabled
	if enabled && s.DebugOutput != nil {
		debugOutput = s.DebugOutput
	}
}

// debugEnabled mirrors the most recently set Scene debug flag so that group
// operations (which lack a Scene pointer) can check it cheaply. Only valid
// with a single Scene; multiple Scenes with differing debug modes will reflect
// whichever called SetDebugMode last.
var debugEnabled bool
