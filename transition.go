package bough

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// FillMode controls what an element looks like after its transition ends.
type FillMode uint8

const (
	// FillForwards commits the target state: once complete, the element
	// renders at its target at any progress.
	FillForwards FillMode = iota
	// FillNone leaves the element's origin in place, so it snaps back to its
	// pre-transition look when idle.
	FillNone
)

// String returns "forwards" or "none".
func (m FillMode) String() string {
	switch m {
	case FillForwards:
		return "forwards"
	case FillNone:
		return "none"
	}
	return fmt.Sprintf("FillMode(%d)", uint8(m))
}

// UnmarshalText parses "forwards" or "none" (case-insensitive). An empty
// string means FillForwards.
func (m *FillMode) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "", "forwards":
		*m = FillForwards
	case "none":
		*m = FillNone
	default:
		return fmt.Errorf("bough: unknown fill mode %q", text)
	}
	return nil
}

// TransitionOptions parameterizes Renderer.Transition.
type TransitionOptions struct {
	// Duration of each element's transition. Zero completes on the first
	// frame whose clock reading is past the start time.
	Duration time.Duration

	// Delay before every element starts. Ignored when DelayFunc is set.
	Delay time.Duration

	// DelayFunc returns the delay for the element at index i of the expanded
	// target list, for staggered starts.
	DelayFunc func(i int) time.Duration

	// Loop restarts the transition each time it completes. A looping
	// transition never fires its callback and never resolves its batch.
	Loop bool

	// Ease maps linear progress to eased progress. Nil means EaseLinear.
	Ease Ease

	FillMode FillMode

	// Callback runs once per element as its transition completes, after fill
	// forwards.
	Callback func(el *Element)
}

// Stagger returns a DelayFunc that delays element i by base + i*step.
func Stagger(base, step time.Duration) func(int) time.Duration {
	return func(i int) time.Duration {
		return base + time.Duration(i)*step
	}
}

// Transition starts an interpolation toward each element's target state.
// Groups are expanded to their current shapes, and an element listed twice
// transitions once. The renderer is started (a no-op when already running;
// starting a stopped renderer discards any transitions left in its map).
//
// The returned Batch resolves once every element has completed. A Stop
// before that discards the remaining transitions and the batch never
// resolves. An empty target list resolves immediately without starting the
// renderer.
func (r *Renderer) Transition(elements []*Element, opts TransitionOptions) *Batch {
	targets := expandTargets(elements)
	batch := newBatch(len(targets))
	if len(targets) == 0 {
		batch.resolve()
		return batch
	}

	r.Start()

	ease := opts.Ease
	if ease == nil {
		ease = EaseLinear
	}
	duration := max(opts.Duration, 0)
	now := r.clock.Now()

	for i, el := range targets {
		delay := opts.Delay
		if opts.DelayFunc != nil {
			delay = opts.DelayFunc(i)
		}
		r.transitions[el.ID] = &transition{
			startTime: now.Add(delay),
			duration:  duration,
			ease:      ease,
			loop:      opts.Loop,
			callback: func() {
				if opts.FillMode == FillForwards {
					el.Update(el.State())
				}
				if opts.Callback != nil {
					opts.Callback(el)
				}
				r.stopOnIdle()
				batch.complete()
			},
		}
	}
	return batch
}

// UpdateAndTransition merges patch into every shape under elements, each
// once, and then transitions them with opts. An empty patch only transitions.
func (r *Renderer) UpdateAndTransition(elements []*Element, patch State, opts TransitionOptions) *Batch {
	if len(patch) > 0 {
		for _, el := range expandTargets(elements) {
			el.Update(patch)
		}
	}
	return r.Transition(elements, opts)
}

// expandTargets flattens groups to their shapes and drops nils and
// duplicates, keeping first-seen order.
func expandTargets(elements []*Element) []*Element {
	var out []*Element
	seen := make(map[uint32]bool)
	for _, el := range elements {
		if el == nil {
			continue
		}
		for _, leaf := range el.Elements() {
			if seen[leaf.ID] {
				continue
			}
			seen[leaf.ID] = true
			out = append(out, leaf)
		}
	}
	return out
}

// Batch tracks a Transition call. It resolves when every element in it has
// completed. Resolved, Completed and Then belong to the goroutine that pumps
// the renderer; other goroutines use Done or Wait.
type Batch struct {
	total     int
	completed int
	resolved  bool
	done      chan struct{}
	then      []func()
}

func newBatch(total int) *Batch {
	return &Batch{total: total, done: make(chan struct{})}
}

// Len returns the number of elements in the batch.
func (b *Batch) Len() int {
	return b.total
}

// Completed returns how many elements have finished.
func (b *Batch) Completed() int {
	return b.completed
}

// Resolved reports whether every element has finished.
func (b *Batch) Resolved() bool {
	return b.resolved
}

// Done returns a channel closed when the batch resolves.
func (b *Batch) Done() <-chan struct{} {
	return b.done
}

// Then runs fn when the batch resolves, or right away if it already has.
func (b *Batch) Then(fn func()) {
	if b.resolved {
		fn()
		return
	}
	b.then = append(b.then, fn)
}

// Wait blocks until the batch resolves or ctx is done. The frame loop must
// be pumped by another goroutine.
func (b *Batch) Wait(ctx context.Context) error {
	select {
	case <-b.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (b *Batch) complete() {
	b.completed++
	if b.completed >= b.total {
		b.resolve()
	}
}

func (b *Batch) resolve() {
	if b.resolved {
		return
	}
	b.resolved = true
	close(b.done)
	fns := b.then
	b.then = nil
	for _, fn := range fns {
		fn()
	}
}
