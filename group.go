package bough

// NewGroup creates a group element with the given children.
func NewGroup(name string, children ...*Element) *Element {
	if name == "" {
		name = "group"
	}
	g := &Element{
		ID:   nextElementID(),
		Name: name,
		Type: ElementTypeGroup,
		from: State{},
		to:   State{},
	}
	if len(children) > 0 {
		g.Add(children...)
	}
	return g
}

// --- Tree manipulation ---

// Set replaces the group's children. Elements dropped from the set lose their
// parent link; incoming elements are detached from any other group first.
// Duplicates in the argument list are kept once. Emits one EventGroupUpdated.
// Panics if e is not a group, a child is nil, or a child is an ancestor of e.
func (e *Element) Set(children ...*Element) {
	e.mustBeGroup("Set")
	incoming := make(map[*Element]bool, len(children))
	for _, child := range children {
		e.checkChild(child, "Set")
		incoming[child] = true
	}
	for _, old := range e.children {
		if !incoming[old] {
			old.Parent = nil
		}
	}
	e.children = make([]*Element, 0, len(children))
	seen := make(map[*Element]bool, len(children))
	for _, child := range children {
		if seen[child] {
			continue
		}
		seen[child] = true
		e.adopt(child)
		e.children = append(e.children, child)
	}
	if debugEnabled {
		debugCheckTreeDepth(e)
		debugCheckChildCount(e)
	}
	e.notify()
}

// Add appends children that are not already in the group. Adding an element
// twice is a structural no-op. An element owned by another group is removed
// from it first. Emits one EventGroupUpdated per call regardless of how many
// elements were passed.
// Panics if e is not a group, a child is nil, or a child is an ancestor of e.
func (e *Element) Add(children ...*Element) {
	e.mustBeGroup("Add")
	for _, child := range children {
		e.checkChild(child, "Add")
		if child.Parent == e && e.indexOf(child) >= 0 {
			continue
		}
		e.adopt(child)
		e.children = append(e.children, child)
	}
	if debugEnabled {
		for _, child := range children {
			debugCheckTreeDepth(child)
		}
		debugCheckChildCount(e)
	}
	e.notify()
}

// Remove detaches children from the group and clears their parent link.
// Elements that are not children are ignored. Emits one EventGroupUpdated.
func (e *Element) Remove(children ...*Element) {
	e.mustBeGroup("Remove")
	for _, child := range children {
		if child == nil {
			continue
		}
		if e.removeChildByPtr(child) {
			child.Parent = nil
		}
	}
	e.notify()
}

// RemoveFromParent detaches this element from its group.
// No-op if it has no parent.
func (e *Element) RemoveFromParent() {
	if e.Parent == nil {
		return
	}
	e.Parent.Remove(e)
}

// Children returns the direct children in insertion order. The returned slice
// MUST NOT be mutated by the caller.
func (e *Element) Children() []*Element {
	return e.children
}

// NumChildren returns the number of direct children.
func (e *Element) NumChildren() int {
	return len(e.children)
}

// Contains reports whether el is a direct child of e.
func (e *Element) Contains(el *Element) bool {
	return e.indexOf(el) >= 0
}

// Elements returns the flattened leaf view: every shape the group contains,
// transitively, in render order. Nested groups are replaced by their own
// flattened children and never appear in the result. The slice is rebuilt on
// every call.
func (e *Element) Elements() []*Element {
	if e.Type != ElementTypeGroup {
		return []*Element{e}
	}
	return appendLeaves(make([]*Element, 0, len(e.children)), e)
}

// Query returns the flattened elements for which match returns true.
func (e *Element) Query(match func(*Element) bool) []*Element {
	var out []*Element
	for _, el := range e.Elements() {
		if match(el) {
			out = append(out, el)
		}
	}
	return out
}

// QueryName returns the flattened elements with the given kind name.
func (e *Element) QueryName(name string) []*Element {
	return e.Query(func(el *Element) bool { return el.Name == name })
}

// FindAll walks the tree depth-first and returns every element, group or
// shape, named name. The receiver itself is included when it matches.
func (e *Element) FindAll(name string) []*Element {
	var out []*Element
	var walk func(*Element)
	walk = func(el *Element) {
		if el.Name == name {
			out = append(out, el)
		}
		for _, child := range el.children {
			walk(child)
		}
	}
	walk(e)
	return out
}

// --- Helpers ---

func appendLeaves(buf []*Element, g *Element) []*Element {
	for _, child := range g.children {
		if child.Type == ElementTypeGroup {
			buf = appendLeaves(buf, child)
			continue
		}
		buf = append(buf, child)
	}
	return buf
}

func (e *Element) mustBeGroup(op string) {
	if e.Type != ElementTypeGroup {
		panic("bough: " + op + " on non-group element " + e.Name)
	}
}

func (e *Element) checkChild(child *Element, op string) {
	if child == nil {
		panic("bough: cannot " + op + " nil child")
	}
	if isAncestor(child, e) {
		panic("bough: " + op + " would create a cycle")
	}
}

// adopt makes e the exclusive owner of child.
func (e *Element) adopt(child *Element) {
	if child.Parent != nil && child.Parent != e {
		old := child.Parent
		old.removeChildByPtr(child)
		old.notify()
	}
	child.Parent = e
	if child.Type == ElementTypeGroup && child.Events == nil && e.Events != nil {
		shareBus(child, e.Events)
	}
}

// shareBus hands bus to g and to every nested group that has none.
func shareBus(g *Element, bus *EventBus) {
	g.Events = bus
	for _, child := range g.children {
		if child.Type == ElementTypeGroup && child.Events == nil {
			shareBus(child, bus)
		}
	}
}

func (e *Element) notify() {
	e.Events.Emit(Event{Type: EventGroupUpdated, Element: e})
}

func (e *Element) indexOf(el *Element) int {
	for i, c := range e.children {
		if c == el {
			return i
		}
	}
	return -1
}

// removeChildByPtr removes child from e.children without clearing
// child.Parent. Uses copy+nil to avoid retaining a dangling pointer in the
// backing array.
func (e *Element) removeChildByPtr(child *Element) bool {
	i := e.indexOf(child)
	if i < 0 {
		return false
	}
	copy(e.children[i:], e.children[i+1:])
	e.children[len(e.children)-1] = nil
	e.children = e.children[:len(e.children)-1]
	return true
}

// isAncestor reports whether candidate is node or one of its ancestors.
func isAncestor(candidate, node *Element) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}
