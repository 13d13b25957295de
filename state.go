package bough

import "math"

// State is an element's named attribute set (position, size, colors, points).
// Values are plain Go values; the interpolators understand float64, int,
// Color, Vec2 and []Vec2 and step every other type.
type State map[string]any

// Interpolator returns the value between from and to at progress t. Eases
// may push t outside [0, 1]. t == 0 must return from and t == 1 must return to.
type Interpolator func(from, to any, t float64) any

// Clone returns a shallow copy of s. Slice values are copied so that later
// updates cannot alias a snapshot.
func (s State) Clone() State {
	out := make(State, len(s))
	for k, v := range s {
		if pts, ok := v.([]Vec2); ok {
			v = append([]Vec2(nil), pts...)
		}
		out[k] = v
	}
	return out
}

// Float returns the float64 stored under key, converting ints. Missing or
// non-numeric values return 0.
func (s State) Float(key string) float64 {
	switch v := s[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	}
	return 0
}

// Color returns the Color stored under key, or ColorTransparent.
func (s State) Color(key string) Color {
	c, _ := s[key].(Color)
	return c
}

// Vec2 returns the Vec2 stored under key, or the zero vector.
func (s State) Vec2(key string) Vec2 {
	v, _ := s[key].(Vec2)
	return v
}

// Points returns the point list stored under key. The slice MUST NOT be mutated.
func (s State) Points(key string) []Vec2 {
	pts, _ := s[key].([]Vec2)
	return pts
}

// Text returns the string stored under key, or "".
func (s State) Text(key string) string {
	str, _ := s[key].(string)
	return str
}

// interpolateState builds the state at progress t between from and to.
// Keys only present in to are taken as-is.
func interpolateState(from, to State, t float64, overrides map[string]Interpolator) State {
	out := make(State, len(to))
	for k, target := range to {
		origin, ok := from[k]
		if !ok {
			out[k] = target
			continue
		}
		if fn := overrides[k]; fn != nil {
			out[k] = fn(origin, target, t)
			continue
		}
		out[k] = InterpolateValue(origin, target, t)
	}
	return out
}

// InterpolateValue is the default interpolator. Numeric values, colors and
// points follow t outside [0, 1] so overshooting eases extrapolate; colors are
// clamped when painted. Mismatched or unknown types step from from to to when
// t reaches 1.
func InterpolateValue(from, to any, t float64) any {
	if t == 0 {
		return from
	}
	if t == 1 {
		return to
	}
	switch a := from.(type) {
	case float64:
		if b, ok := to.(float64); ok {
			return lerp(a, b, t)
		}
	case int:
		if b, ok := to.(int); ok {
			return int(math.Round(lerp(float64(a), float64(b), t)))
		}
	case Color:
		if b, ok := to.(Color); ok {
			return Color{
				R: lerp(a.R, b.R, t),
				G: lerp(a.G, b.G, t),
				B: lerp(a.B, b.B, t),
				A: lerp(a.A, b.A, t),
			}
		}
	case Vec2:
		if b, ok := to.(Vec2); ok {
			return Vec2{X: lerp(a.X, b.X, t), Y: lerp(a.Y, b.Y, t)}
		}
	case []Vec2:
		if b, ok := to.([]Vec2); ok {
			return interpolatePoints(a, b, t)
		}
	}
	if t >= 1 {
		return to
	}
	return from
}

// interpolatePoints pairs points index by index. When the lists differ in
// length the shorter one is padded with its last point so lines can grow.
func interpolatePoints(a, b []Vec2, t float64) []Vec2 {
	n := max(len(a), len(b))
	out := make([]Vec2, n)
	for i := range out {
		pa := pointAt(a, i)
		pb := pointAt(b, i)
		out[i] = Vec2{X: lerp(pa.X, pb.X, t), Y: lerp(pa.Y, pb.Y, t)}
	}
	return out
}

func pointAt(pts []Vec2, i int) Vec2 {
	if len(pts) == 0 {
		return Vec2{}
	}
	if i >= len(pts) {
		return pts[len(pts)-1]
	}
	return pts[i]
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
