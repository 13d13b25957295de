package bough

// Frame is what a RenderFunc receives: the drawing context, the element's
// state interpolated to Progress, and the element itself. State MUST NOT be
// mutated; call Element.Update to change an element.
type Frame struct {
	Context  Context
	State    State
	Progress float64
	Element  *Element
}

// RenderFunc draws one element. It must be idempotent for a repeated
// progress value and must not assume progress increases between calls.
type RenderFunc func(f Frame)

// elementIDCounter is a plain counter; bough is single-threaded.
var elementIDCounter uint32

func nextElementID() uint32 {
	elementIDCounter++
	return elementIDCounter
}

// Element is the scene graph unit. A single flat struct is used for shapes and
// groups; Type tells them apart. Shapes draw through OnRender, groups delegate
// to their children.
type Element struct {
	// Identity
	ID   uint32
	Name string
	Type ElementType

	// Parent is a non-owning back-reference to the group that holds this
	// element. It is maintained by Add, Set and Remove; never assign it directly.
	Parent   *Element
	children []*Element

	// OnRender draws a shape. Nil for groups and for invisible shapes.
	OnRender RenderFunc

	// Interpolators override the default value interpolation per state key.
	Interpolators map[string]Interpolator

	// Events receives EventGroupUpdated when a group's children change.
	// Groups added to a group without a bus inherit the parent's bus.
	Events *EventBus

	// Metadata
	UserData any

	from State // interpolation origin (rest state at progress 0)
	to   State // target state at progress 1
}

// NewElement creates a shape element named after its kind ("rect", "line",
// ...) with an initial state and a render procedure. The initial state is
// both the rest and the target state.
func NewElement(name string, state State, render RenderFunc) *Element {
	if state == nil {
		state = State{}
	}
	to := state.Clone()
	return &Element{
		ID:       nextElementID(),
		Name:     name,
		Type:     ElementTypeShape,
		OnRender: render,
		from:     to,
		to:       to,
	}
}

// IsGroup reports whether e is a group.
func (e *Element) IsGroup() bool {
	return e.Type == ElementTypeGroup
}

// State returns a copy of the element's target state.
func (e *Element) State() State {
	return e.to.Clone()
}

// Update merges patch into the target state. The previous target becomes the
// interpolation origin, so rendering at progress 0 shows where the element was
// and progress 1 shows the patched state. Keys new to the element have no
// origin and appear immediately.
//
// Update(e.State()) collapses origin and target, materializing the current
// target as the new rest state.
func (e *Element) Update(patch State) {
	origin := e.to.Clone()
	next := e.to.Clone()
	for k, v := range patch {
		if pts, ok := v.([]Vec2); ok {
			v = append([]Vec2(nil), pts...)
		}
		if _, ok := origin[k]; !ok {
			origin[k] = v
		}
		next[k] = v
	}
	e.from = origin
	e.to = next
}

// Render draws the element at progress t. Groups pass the same context and
// progress to their children in insertion order.
func (e *Element) Render(ctx Context, t float64) {
	if e.Type == ElementTypeGroup {
		for _, child := range e.children {
			child.Render(ctx, t)
		}
		return
	}
	if e.OnRender == nil {
		return
	}
	var state State
	switch {
	case t == 0:
		state = e.from
	case t == 1:
		state = e.to
	default:
		state = interpolateState(e.from, e.to, t, e.Interpolators)
	}
	e.OnRender(Frame{Context: ctx, State: state, Progress: t, Element: e})
}

// Clone returns a detached copy of a shape with a fresh ID and the same
// render procedure, interpolators and target state. Groups are cloned
// recursively.
func (e *Element) Clone() *Element {
	if e.Type == ElementTypeGroup {
		g := NewGroup(e.Name)
		g.UserData = e.UserData
		for _, child := range e.children {
			g.Add(child.Clone())
		}
		return g
	}
	c := NewElement(e.Name, e.to, e.OnRender)
	c.UserData = e.UserData
	if e.Interpolators != nil {
		c.Interpolators = make(map[string]Interpolator, len(e.Interpolators))
		for k, fn := range e.Interpolators {
			c.Interpolators[k] = fn
		}
	}
	return c
}
