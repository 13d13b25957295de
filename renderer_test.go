package bough

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestNewRendererNoContext(t *testing.T) {
	r, err := NewRenderer(NewScene(noContextSurface{}), nil)
	if !errors.Is(err, ErrNoContext) {
		t.Fatalf("err = %v, want ErrNoContext", err)
	}
	if r != nil {
		t.Error("renderer should be nil on error")
	}
	if _, err := NewRenderer(NewScene(nil), nil); !errors.Is(err, ErrNoContext) {
		t.Errorf("nil surface: err = %v, want ErrNoContext", err)
	}
}

func TestNewRendererDefaultsAutoStart(t *testing.T) {
	scene := NewScene(&recordSurface{ctx: &recordContext{}})
	r, err := NewRenderer(scene, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !r.Running() {
		t.Error("nil options should auto-start")
	}
	if scene.Frames().Pending() != 1 {
		t.Errorf("pending frames = %d, want 1", scene.Frames().Pending())
	}
}

func TestRendererStartStopEvents(t *testing.T) {
	rig := newTestRig(t, RendererOptions{})
	var got []string
	for _, name := range []string{EventStart, EventStop, EventTick} {
		rig.r.On(name, func(e Event) { got = append(got, e.Type) })
	}

	rig.r.Start()
	rig.r.Start() // no-op while running
	rig.frame(10 * time.Millisecond)
	rig.r.Stop()
	rig.r.Stop() // no-op while stopped

	if want := "start,tick,stop"; strings.Join(got, ",") != want {
		t.Errorf("events = %v, want %s", got, want)
	}
	if rig.scene.Frames().Pending() != 0 {
		t.Error("Stop should cancel the pending frame")
	}
}

func TestRendererEventTimes(t *testing.T) {
	rig := newTestRig(t, RendererOptions{})
	var tick, stop Event
	rig.r.On(EventTick, func(e Event) { tick = e })
	rig.r.On(EventStop, func(e Event) { stop = e })

	start := rig.clock.Now()
	rig.r.Start()
	rig.frame(40 * time.Millisecond)
	rig.r.Stop()

	if !tick.StartTime.Equal(start) || !tick.Time.Equal(start.Add(40*time.Millisecond)) {
		t.Errorf("tick = (%v, %v)", tick.Time, tick.StartTime)
	}
	if !stop.StartTime.Equal(start) || !stop.Time.Equal(tick.Time) {
		t.Errorf("stop = (%v, %v), want last tick time", stop.Time, stop.StartTime)
	}
	if !rig.r.StartTime().Equal(start) || !rig.r.LastTickTime().Equal(tick.Time) {
		t.Error("StartTime/LastTickTime accessors")
	}
}

func TestRendererOnUnknownEventIgnored(t *testing.T) {
	rig := newTestRig(t, RendererOptions{})
	h := rig.r.On("resize", func(Event) { t.Error("should never fire") })
	if h.Valid() {
		t.Error("unknown event should return the zero handle")
	}
	rig.r.Off(h)
}

func TestRendererOff(t *testing.T) {
	rig := newTestRig(t, RendererOptions{})
	count := 0
	h := rig.r.On(EventTick, func(Event) { count++ })
	rig.r.Start()
	rig.frame(time.Millisecond)
	rig.r.Off(h)
	rig.frame(time.Millisecond)
	if count != 1 {
		t.Errorf("ticks after Off = %d, want 1", count)
	}
}

func TestTickClearsThenRendersEveryElement(t *testing.T) {
	rig := newTestRig(t, RendererOptions{})
	a, b := newProbe(1), newProbe(2)
	rig.scene.Add(a.el, NewGroup("g", b.el))
	b.onDraw = func(float64) { rig.ctx.ops = append(rig.ctx.ops, "b") }

	rig.r.Start()
	rig.frame(0)

	if len(rig.ctx.ops) == 0 || rig.ctx.ops[0] != "clear" {
		t.Errorf("ops = %v, want clear first", rig.ctx.ops)
	}
	if len(a.calls) != 1 || len(b.calls) != 1 {
		t.Fatalf("renders = %d, %d, want 1 each", len(a.calls), len(b.calls))
	}
	if a.calls[0] != 0 || b.calls[0] != 0 {
		t.Error("elements without a transition render at progress 0")
	}
}

func TestTickRequestsNextFrameWhileRunning(t *testing.T) {
	rig := newTestRig(t, RendererOptions{})
	p := newProbe(0)
	rig.scene.Add(p.el)
	rig.r.Start()
	for range 5 {
		rig.frame(16 * time.Millisecond)
	}
	if len(p.calls) != 5 {
		t.Errorf("renders = %d, want 5", len(p.calls))
	}
	if rig.scene.Frames().Pending() != 1 {
		t.Errorf("pending = %d, want exactly one frame queued", rig.scene.Frames().Pending())
	}
}

func TestSingleTransitionForwards(t *testing.T) {
	rig := newTestRig(t, RendererOptions{AutoStop: true})
	p := newProbe(0)
	rig.scene.Add(p.el)

	callbacks := 0
	p.el.Update(State{"x": 100.0})
	batch := rig.r.Transition([]*Element{p.el}, TransitionOptions{
		Duration: 100 * time.Millisecond,
		Callback: func(el *Element) {
			callbacks++
			if el != p.el {
				t.Error("callback element")
			}
		},
	})
	if !rig.r.Running() || !rig.r.Busy() {
		t.Fatal("Transition should start the renderer")
	}

	rig.frame(0)
	if p.lastProgress() != 0 || p.lastX() != 0 {
		t.Errorf("frame 0: progress %v x %v", p.lastProgress(), p.lastX())
	}
	rig.frame(50 * time.Millisecond)
	if !approx(p.lastProgress(), 0.5) || !approx(p.lastX(), 50) {
		t.Errorf("midway: progress %v x %v", p.lastProgress(), p.lastX())
	}
	rig.frame(50 * time.Millisecond)

	if callbacks != 1 {
		t.Errorf("callbacks = %d, want 1", callbacks)
	}
	if p.lastX() != 100 {
		t.Errorf("final x = %v, want 100 (fill forwards)", p.lastX())
	}
	if !batch.Resolved() || batch.Completed() != 1 || batch.Len() != 1 {
		t.Error("batch should be resolved")
	}
	if rig.r.Busy() || rig.r.Running() {
		t.Error("auto-stop should stop an idle renderer")
	}

	renders := len(p.calls)
	rig.frame(50 * time.Millisecond)
	if len(p.calls) != renders {
		t.Error("no ticks after auto-stop")
	}
	if callbacks != 1 {
		t.Error("callback must fire exactly once")
	}
}

func TestTransitionFillNone(t *testing.T) {
	rig := newTestRig(t, RendererOptions{AutoStop: true})
	p := newProbe(0)
	rig.scene.Add(p.el)
	p.el.Update(State{"x": 100.0})
	rig.r.Transition([]*Element{p.el}, TransitionOptions{Duration: 10 * time.Millisecond, FillMode: FillNone})

	rig.frame(0)
	rig.frame(10 * time.Millisecond)
	if p.lastX() != 0 {
		t.Errorf("final frame x = %v, want origin 0 with FillNone", p.lastX())
	}
	if p.el.State().Float("x") != 100 {
		t.Error("target state is kept")
	}
}

func TestCompletionCallbackBeforeSameFrameRender(t *testing.T) {
	rig := newTestRig(t, RendererOptions{AutoStop: true})
	var log []string
	p := newProbe(0)
	p.onDraw = func(t float64) {
		if t == 0 {
			log = append(log, "render0")
		}
	}
	rig.scene.Add(p.el)
	p.el.Update(State{"x": 1.0})
	rig.r.Transition([]*Element{p.el}, TransitionOptions{
		Duration: 10 * time.Millisecond,
		Callback: func(*Element) { log = append(log, "callback") },
	})
	rig.frame(20 * time.Millisecond)

	if want := "callback,render0"; strings.Join(log, ",") != want {
		t.Errorf("order = %v, want %s", log, want)
	}
}

func TestStaggeredTransitions(t *testing.T) {
	rig := newTestRig(t, RendererOptions{AutoStop: true})
	const n = 3
	probes := make([]*probe, n)
	els := make([]*Element, n)
	firstMove := make([]time.Duration, n)
	start := rig.clock.Now()
	for i := range probes {
		probes[i] = newProbe(0)
		probes[i].onDraw = func(t float64) {
			if t > 0 && firstMove[i] == 0 {
				firstMove[i] = rig.clock.Now().Sub(start)
			}
		}
		probes[i].el.Update(State{"x": 10.0})
		els[i] = probes[i].el
		rig.scene.Add(els[i])
	}

	var completed []int
	batch := rig.r.Transition(els, TransitionOptions{
		Duration:  100 * time.Millisecond,
		DelayFunc: Stagger(0, 50*time.Millisecond),
		Callback: func(el *Element) {
			for i, e := range els {
				if e == el {
					completed = append(completed, i)
				}
			}
		},
	})
	resolvedAfter := -1
	batch.Then(func() { resolvedAfter = len(completed) })

	for range 30 {
		rig.frame(10 * time.Millisecond)
	}

	for i, d := range firstMove {
		if delay := time.Duration(i) * 50 * time.Millisecond; d <= delay {
			t.Errorf("element %d moved at %v, before its %v delay elapsed", i, d, delay)
		}
	}
	if len(completed) != n || completed[0] != 0 || completed[2] != 2 {
		t.Errorf("completion order = %v", completed)
	}
	if resolvedAfter != n {
		t.Errorf("batch resolved after %d callbacks, want %d", resolvedAfter, n)
	}
}

func TestStopMidTransition(t *testing.T) {
	rig := newTestRig(t, RendererOptions{AutoStop: true})
	p := newProbe(0)
	rig.scene.Add(p.el)
	callbacks := 0
	p.el.Update(State{"x": 10.0})
	batch := rig.r.Transition([]*Element{p.el}, TransitionOptions{
		Duration: 100 * time.Millisecond,
		Callback: func(*Element) { callbacks++ },
	})
	rig.frame(0)
	rig.frame(50 * time.Millisecond)

	rig.r.Stop()
	if callbacks != 0 {
		t.Error("Stop must not fire callbacks")
	}
	if rig.r.Busy() {
		t.Error("Stop should clear the transition map")
	}
	if batch.Resolved() {
		t.Error("a stopped batch never resolves")
	}

	rig.r.Start()
	if rig.r.Busy() {
		t.Error("Start should begin with an empty map")
	}
	rig.frame(100 * time.Millisecond)
	if callbacks != 0 {
		t.Error("discarded transition completed after restart")
	}
}

func TestTransitionAfterStop(t *testing.T) {
	rig := newTestRig(t, RendererOptions{})
	a, b := newProbe(0), newProbe(0)
	rig.scene.Add(a.el, b.el)

	first := rig.r.Transition([]*Element{a.el}, TransitionOptions{Duration: time.Second})
	rig.r.Stop()
	second := rig.r.Transition([]*Element{b.el}, TransitionOptions{Duration: 10 * time.Millisecond})
	rig.frame(20 * time.Millisecond)

	if !second.Resolved() {
		t.Error("second batch should resolve")
	}
	if first.Resolved() {
		t.Error("first batch was discarded by Stop")
	}
	if !rig.r.Running() {
		t.Error("Transition restarts a stopped renderer")
	}
}

func TestTransitionEmptyBatch(t *testing.T) {
	rig := newTestRig(t, RendererOptions{})
	batch := rig.r.Transition(nil, TransitionOptions{Duration: time.Second})
	if !batch.Resolved() {
		t.Error("empty batch resolves immediately")
	}
	select {
	case <-batch.Done():
	default:
		t.Error("Done should be closed")
	}
	if rig.r.Running() || rig.r.Busy() {
		t.Error("empty batch must not start the renderer")
	}
	// An empty group expands to nothing too.
	if !rig.r.Transition([]*Element{NewGroup("g")}, TransitionOptions{}).Resolved() {
		t.Error("empty group batch resolves immediately")
	}
}

func TestTransitionExpandsGroupsAndDedupes(t *testing.T) {
	rig := newTestRig(t, RendererOptions{AutoStop: true})
	a, b := newProbe(0), newProbe(0)
	g := NewGroup("g", a.el, b.el)
	rig.scene.Add(g)

	callbacks := 0
	batch := rig.r.Transition([]*Element{g, a.el, nil, b.el}, TransitionOptions{
		Duration: 10 * time.Millisecond,
		Callback: func(*Element) { callbacks++ },
	})
	if batch.Len() != 2 {
		t.Fatalf("batch size = %d, want 2", batch.Len())
	}
	rig.frame(20 * time.Millisecond)
	if callbacks != 2 || !batch.Resolved() {
		t.Errorf("callbacks = %d resolved = %v", callbacks, batch.Resolved())
	}
}

func TestZeroDurationCompletesOnNextFrame(t *testing.T) {
	rig := newTestRig(t, RendererOptions{AutoStop: true})
	p := newProbe(0)
	rig.scene.Add(p.el)
	p.el.Update(State{"x": 5.0})
	batch := rig.r.Transition([]*Element{p.el}, TransitionOptions{})

	rig.frame(0)
	if batch.Resolved() {
		t.Error("nothing has elapsed yet")
	}
	rig.frame(time.Millisecond)
	if !batch.Resolved() || p.lastX() != 5 {
		t.Errorf("resolved = %v x = %v", batch.Resolved(), p.lastX())
	}
}

func TestTransitionEase(t *testing.T) {
	rig := newTestRig(t, RendererOptions{})
	p := newProbe(0)
	rig.scene.Add(p.el)
	p.el.Update(State{"x": 100.0})
	rig.r.Transition([]*Element{p.el}, TransitionOptions{Duration: 100 * time.Millisecond, Ease: EaseInQuad})
	rig.frame(50 * time.Millisecond)
	if !approx(p.lastProgress(), EaseInQuad(0.5)) {
		t.Errorf("progress = %v, want eased %v", p.lastProgress(), EaseInQuad(0.5))
	}
}

func TestLoopTransitionRearms(t *testing.T) {
	rig := newTestRig(t, RendererOptions{AutoStop: true})
	p := newProbe(0)
	rig.scene.Add(p.el)
	callbacks := 0
	p.el.Update(State{"x": 100.0})
	batch := rig.r.Transition([]*Element{p.el}, TransitionOptions{
		Duration: 100 * time.Millisecond,
		Loop:     true,
		Callback: func(*Element) { callbacks++ },
	})

	rig.frame(250 * time.Millisecond)
	if !approx(p.lastProgress(), 0.5) {
		t.Errorf("progress = %v, want 0.5 in the third cycle", p.lastProgress())
	}
	rig.frame(60 * time.Millisecond)
	if !approx(p.lastProgress(), 0.1) {
		t.Errorf("progress = %v, want 0.1 in the fourth cycle", p.lastProgress())
	}
	if callbacks != 0 || batch.Resolved() {
		t.Error("a looping transition never completes")
	}
	if !rig.r.Running() || !rig.r.Busy() {
		t.Error("a looping transition keeps the renderer running")
	}
}

func TestLastRegistrationWins(t *testing.T) {
	rig := newTestRig(t, RendererOptions{})
	p := newProbe(0)
	rig.scene.Add(p.el)
	first := rig.r.Transition([]*Element{p.el}, TransitionOptions{Duration: time.Second})
	second := rig.r.Transition([]*Element{p.el}, TransitionOptions{Duration: 10 * time.Millisecond})
	rig.frame(20 * time.Millisecond)
	if !second.Resolved() {
		t.Error("replacement transition should complete")
	}
	if first.Resolved() {
		t.Error("replaced transition never completes")
	}
}

func TestTransitionFromCallback(t *testing.T) {
	rig := newTestRig(t, RendererOptions{AutoStop: true})
	p := newProbe(0)
	rig.scene.Add(p.el)

	rounds := 0
	var step func(*Element)
	step = func(el *Element) {
		rounds++
		if rounds < 3 {
			el.Update(State{"x": float64(rounds * 10)})
			rig.r.Transition([]*Element{el}, TransitionOptions{Duration: 10 * time.Millisecond, Callback: step})
		}
	}
	rig.r.Transition([]*Element{p.el}, TransitionOptions{Duration: 10 * time.Millisecond, Callback: step})
	for range 10 {
		rig.frame(10 * time.Millisecond)
	}
	if rounds != 3 {
		t.Errorf("rounds = %d, want 3", rounds)
	}
	if rig.r.Running() {
		t.Error("renderer should stop after the last round")
	}
	if p.lastX() != 20 {
		t.Errorf("x = %v, want 20", p.lastX())
	}
}

func TestStructuralChangeInRenderTakesEffectNextFrame(t *testing.T) {
	rig := newTestRig(t, RendererOptions{})
	late := newProbe(0)
	p := newProbe(0)
	added := false
	p.onDraw = func(float64) {
		if !added {
			added = true
			rig.scene.Add(late.el)
		}
	}
	rig.scene.Add(p.el)
	rig.r.Start()
	rig.frame(0)
	if len(late.calls) != 0 {
		t.Error("element added mid-frame rendered in the same frame")
	}
	rig.frame(0)
	if len(late.calls) != 1 {
		t.Errorf("late renders = %d, want 1", len(late.calls))
	}
}

func TestAutoStopDisabledKeepsRunning(t *testing.T) {
	rig := newTestRig(t, RendererOptions{})
	p := newProbe(0)
	rig.scene.Add(p.el)
	rig.r.Transition([]*Element{p.el}, TransitionOptions{Duration: 10 * time.Millisecond})
	rig.frame(20 * time.Millisecond)
	if !rig.r.Running() {
		t.Error("without auto-stop the loop keeps running")
	}
}

func TestPointerStartsAndIdleLeaveStops(t *testing.T) {
	rig := newTestRig(t, RendererOptions{AutoStop: true})
	rig.scene.PointerMove(10, 10)
	if !rig.r.Running() {
		t.Fatal("pointer enter should start the renderer")
	}
	rig.scene.PointerMove(-1, 10)
	if rig.r.Running() {
		t.Error("pointer leave with nothing pending should stop")
	}

	p := newProbe(0)
	rig.scene.Add(p.el)
	rig.scene.PointerMove(10, 10)
	rig.r.Transition([]*Element{p.el}, TransitionOptions{Duration: time.Second})
	rig.scene.PointerLeave()
	if !rig.r.Running() {
		t.Error("pointer leave must not stop a busy renderer")
	}
}

func TestPointerIgnoredWithoutAutoStop(t *testing.T) {
	rig := newTestRig(t, RendererOptions{})
	rig.scene.PointerMove(10, 10)
	if rig.r.Running() {
		t.Error("pointer subscriptions are tied to auto-stop")
	}
}

func TestCloseDetachesPointer(t *testing.T) {
	rig := newTestRig(t, RendererOptions{AutoStop: true})
	rig.r.Start()
	rig.r.Close()
	if rig.r.Running() {
		t.Error("Close should stop")
	}
	rig.scene.PointerMove(10, 10)
	if rig.r.Running() {
		t.Error("closed renderer restarted on pointer enter")
	}
}

func TestRendererDebugOutput(t *testing.T) {
	rig := newTestRig(t, RendererOptions{})
	var buf bytes.Buffer
	rig.scene.DebugOutput = &buf
	prevOut := debugOutput
	t.Cleanup(func() { debugOutput = prevOut })
	rig.scene.SetDebugMode(true)
	defer rig.scene.SetDebugMode(false)

	rig.scene.Add(newProbe(0).el)
	rig.r.Start()
	rig.frame(0)
	out := buf.String()
	if !strings.Contains(out, "[bough] frame 1") || !strings.Contains(out, "elements: 1") {
		t.Errorf("debug output = %q", out)
	}
}
