package bough

import (
	"testing"
	"time"
)

// recordContext is a Context that records what it was asked to paint.
type recordContext struct {
	Path
	ops     []string
	fills   []Color
	strokes []float64
}

var _ Context = (*recordContext)(nil)

func (c *recordContext) ClearRect(x, y, width, height float64) {
	c.ops = append(c.ops, "clear")
}

func (c *recordContext) Fill(col Color) {
	c.ops = append(c.ops, "fill")
	c.fills = append(c.fills, col)
}

func (c *recordContext) Stroke(col Color, width float64) {
	c.ops = append(c.ops, "stroke")
	c.strokes = append(c.strokes, width)
}

func (c *recordContext) reset() {
	c.ops, c.fills, c.strokes = nil, nil, nil
}

// recordSurface is a 100x100 surface backed by a recordContext.
type recordSurface struct {
	ctx *recordContext
}

func (s *recordSurface) Size() (int, int) { return 100, 100 }
func (s *recordSurface) Context() Context { return s.ctx }

// noContextSurface has no drawing context.
type noContextSurface struct{}

func (noContextSurface) Size() (int, int) { return 10, 10 }
func (noContextSurface) Context() Context { return nil }

// probe is a shape whose render procedure records each call.
type probe struct {
	el     *Element
	calls  []float64 // progress per render
	xs     []float64 // state "x" per render
	onDraw func(t float64)
}

func newProbe(x float64) *probe {
	p := &probe{}
	p.el = NewElement("probe", State{"x": x}, func(f Frame) {
		p.calls = append(p.calls, f.Progress)
		p.xs = append(p.xs, f.State.Float("x"))
		if p.onDraw != nil {
			p.onDraw(f.Progress)
		}
	})
	return p
}

func (p *probe) lastX() float64 {
	if len(p.xs) == 0 {
		return -1
	}
	return p.xs[len(p.xs)-1]
}

func (p *probe) lastProgress() float64 {
	if len(p.calls) == 0 {
		return -1
	}
	return p.calls[len(p.calls)-1]
}

type testRig struct {
	scene *Scene
	r     *Renderer
	clock *ManualClock
	ctx   *recordContext
}

func newTestRig(t *testing.T, opts RendererOptions) *testRig {
	t.Helper()
	ctx := &recordContext{}
	scene := NewScene(&recordSurface{ctx: ctx})
	clock := NewManualClock()
	opts.Clock = clock
	r, err := NewRenderer(scene, &opts)
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	return &testRig{scene: scene, r: r, clock: clock, ctx: ctx}
}

// frame advances the clock by d and pumps one scene update.
func (rig *testRig) frame(d time.Duration) {
	rig.clock.Advance(d)
	rig.scene.Update()
}

func approx(a, b float64) bool {
	const eps = 1e-9
	d := a - b
	return d < eps && d > -eps
}
