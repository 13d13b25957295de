package bough

import (
	"fmt"
	"time"
)

// RendererOptions configures a Renderer.
type RendererOptions struct {
	// AutoStart starts the frame loop as soon as the renderer is created.
	AutoStart bool

	// AutoStop stops the loop when the last pending transition completes,
	// restarts it when the pointer enters the scene surface, and stops it on
	// pointer leave if nothing is animating.
	AutoStop bool

	// Clock supplies frame time. Defaults to SystemClock.
	Clock Clock

	// Frames schedules ticks. Defaults to the scene's FrameQueue.
	Frames FrameScheduler
}

// DefaultRendererOptions returns the options used when NewRenderer receives
// nil: AutoStart and AutoStop enabled.
func DefaultRendererOptions() RendererOptions {
	return RendererOptions{AutoStart: true, AutoStop: true}
}

// transition is one element's pending interpolation.
type transition struct {
	startTime time.Time
	duration  time.Duration
	ease      Ease
	loop      bool
	callback  func()
}

// Renderer owns the frame loop and the transition map for one scene. Each
// frame it clears the surface, reads the clock, emits EventTick and renders
// every element of the scene's current flattened set, interpolating the ones
// with an active transition.
//
// Renderer is single-threaded: call it from the goroutine that pumps its
// frames. Start, Stop and Transition may be called from tick, completion and
// event handlers.
type Renderer struct {
	scene  *Scene
	ctx    Context
	clock  Clock
	frames FrameScheduler
	events *EventBus

	transitions map[uint32]*transition
	autoStop    bool

	running     bool
	handle      FrameID
	startTime   time.Time
	currentTime time.Time

	sceneHandles []CallbackHandle
	frameCount   int
}

// NewRenderer binds a renderer to scene. It fails with ErrNoContext if the
// scene's surface has no drawing context. A nil opts uses
// DefaultRendererOptions.
func NewRenderer(scene *Scene, opts *RendererOptions) (*Renderer, error) {
	if scene == nil || scene.Context() == nil {
		return nil, fmt.Errorf("new renderer: %w", ErrNoContext)
	}
	o := DefaultRendererOptions()
	if opts != nil {
		o = *opts
	}
	if o.Clock == nil {
		o.Clock = SystemClock{}
	}
	if o.Frames == nil {
		o.Frames = scene.Frames()
	}

	r := &Renderer{
		scene:       scene,
		ctx:         scene.Context(),
		clock:       o.Clock,
		frames:      o.Frames,
		events:      NewEventBus(),
		transitions: make(map[uint32]*transition),
		autoStop:    o.AutoStop,
	}
	r.startTime = r.clock.Now()
	r.currentTime = r.startTime

	if o.AutoStart {
		r.Start()
	}
	if o.AutoStop {
		r.sceneHandles = append(r.sceneHandles,
			scene.On(EventPointerEnter, func(Event) { r.Start() }),
			scene.On(EventPointerLeave, func(Event) { r.stopOnIdle() }),
		)
	}
	return r, nil
}

// Scene returns the scene the renderer paints.
func (r *Renderer) Scene() *Scene {
	return r.scene
}

// Running reports whether the frame loop is active.
func (r *Renderer) Running() bool {
	return r.running
}

// Busy reports whether any transition is pending.
func (r *Renderer) Busy() bool {
	return len(r.transitions) > 0
}

// StartTime returns the clock reading of the last Start.
func (r *Renderer) StartTime() time.Time {
	return r.startTime
}

// LastTickTime returns the clock reading of the most recent frame.
func (r *Renderer) LastTickTime() time.Time {
	return r.currentTime
}

// Start begins the frame loop. Starting is a hard reset of animation state:
// every pending transition is discarded without callbacks. No-op if already
// running.
func (r *Renderer) Start() {
	if r.running {
		return
	}
	r.running = true
	r.startTime = r.clock.Now()
	clear(r.transitions)
	r.events.Emit(Event{Type: EventStart, StartTime: r.startTime})
	r.requestFrame()
}

// Stop ends the frame loop, cancels the pending frame and discards pending
// transitions without firing their callbacks. Batches waiting on them never
// resolve. No-op if already stopped.
func (r *Renderer) Stop() {
	if !r.running {
		return
	}
	if r.handle != 0 {
		r.frames.CancelFrame(r.handle)
		r.handle = 0
	}
	r.running = false
	clear(r.transitions)
	r.events.Emit(Event{Type: EventStop, StartTime: r.startTime, Time: r.currentTime})
}

// Close stops the renderer and detaches it from the scene's pointer events.
func (r *Renderer) Close() {
	for _, h := range r.sceneHandles {
		h.Remove()
	}
	r.sceneHandles = nil
	r.Stop()
}

// On registers a handler for EventStart, EventStop or EventTick. Other event
// names are ignored and return the zero handle.
func (r *Renderer) On(event string, fn EventHandler) CallbackHandle {
	switch event {
	case EventStart, EventStop, EventTick:
		return r.events.On(event, fn)
	}
	return CallbackHandle{}
}

// Off removes a handler registered with On. Unknown handles are ignored.
func (r *Renderer) Off(h CallbackHandle) {
	r.events.Off(h)
}

// stopOnIdle is the idle check shared by completion and pointer leave.
func (r *Renderer) stopOnIdle() {
	if r.autoStop && len(r.transitions) == 0 {
		r.Stop()
	}
}

func (r *Renderer) requestFrame() {
	if r.running && r.handle == 0 {
		r.handle = r.frames.RequestFrame(r.tick)
	}
}

// tick renders one frame.
func (r *Renderer) tick() {
	r.handle = 0
	if !r.running {
		return
	}

	var t0 time.Time
	if r.scene.debug {
		t0 = time.Now()
	}

	w, h := r.scene.Size()
	r.ctx.ClearRect(0, 0, float64(w), float64(h))

	r.currentTime = r.clock.Now()
	now := r.currentTime
	r.events.Emit(Event{Type: EventTick, Time: now, StartTime: r.startTime})

	// A fresh flattened slice per frame: structural changes made by callbacks
	// take effect on the next frame.
	elements := r.scene.Elements()
	completed := 0
	for _, el := range elements {
		t, done := r.progress(el, now)
		if done {
			completed++
		}
		el.Render(r.ctx, t)
	}
	r.frameCount++

	if r.scene.debug {
		r.debugLog(debugStats{
			frame:        r.frameCount,
			tickTime:     time.Since(t0),
			elementCount: len(elements),
			pending:      len(r.transitions),
			completed:    completed,
		})
	}

	r.requestFrame()
}

// progress returns the eased progress of el's transition at now. A transition
// that has run its full duration is removed and its completion callback runs
// here, before the element is rendered; the element then renders at progress
// 0 on this same frame, so the callback (fill forwards) decides what the
// element looks like at rest. done reports such a completion.
func (r *Renderer) progress(el *Element, now time.Time) (t float64, done bool) {
	tr, ok := r.transitions[el.ID]
	if !ok {
		return 0, false
	}
	elapsed := now.Sub(tr.startTime)
	if elapsed <= 0 {
		return 0, false
	}
	if elapsed < tr.duration {
		return tr.ease(float64(elapsed) / float64(tr.duration)), false
	}
	if tr.loop && tr.duration > 0 {
		cycles := elapsed / tr.duration
		tr.startTime = tr.startTime.Add(cycles * tr.duration)
		return tr.ease(float64(elapsed-cycles*tr.duration) / float64(tr.duration)), false
	}
	delete(r.transitions, el.ID)
	tr.callback()
	return 0, true
}
