package bough

import "math"

// Shape state keys shared by the built-in shapes.
const (
	KeyFill      = "fill"      // Color; transparent skips the fill
	KeyStroke    = "stroke"    // Color; transparent skips the stroke
	KeyLineWidth = "lineWidth" // float64; defaults to 1 when a stroke is set
)

// Style is the paint shared by the built-in shapes.
type Style struct {
	Fill      Color
	Stroke    Color
	LineWidth float64
}

func (st Style) state() State {
	return State{KeyFill: st.Fill, KeyStroke: st.Stroke, KeyLineWidth: st.LineWidth}
}

// paint strokes and then fills the current path with the frame's style.
func paint(f Frame) {
	if stroke := f.State.Color(KeyStroke); !stroke.IsZero() {
		width := f.State.Float(KeyLineWidth)
		if width <= 0 {
			width = 1
		}
		f.Context.Stroke(stroke, width)
	}
	if fill := f.State.Color(KeyFill); !fill.IsZero() {
		f.Context.Fill(fill)
	}
}

// RectOptions describes a rectangle. BorderRadius rounds every corner;
// Radii, when non-zero, sets the corners individually (top-left, top-right,
// bottom-right, bottom-left) and wins over BorderRadius.
type RectOptions struct {
	X, Y, Width, Height float64
	BorderRadius        float64
	Radii               [4]float64
	Style
}

// NewRect creates a "rect" element. State keys: x, y, width, height,
// borderRadius (float64 or [4]float64) plus the Style keys.
func NewRect(o RectOptions) *Element {
	st := o.Style.state()
	st["x"] = o.X
	st["y"] = o.Y
	st["width"] = o.Width
	st["height"] = o.Height
	if o.Radii != [4]float64{} {
		st["borderRadius"] = o.Radii
	} else {
		st["borderRadius"] = o.BorderRadius
	}
	el := NewElement("rect", st, renderRect)
	el.Interpolators = map[string]Interpolator{"borderRadius": interpolateBorderRadius}
	return el
}

func renderRect(f Frame) {
	s := f.State
	x, y, w, h := s.Float("x"), s.Float("y"), s.Float("width"), s.Float("height")
	f.Context.BeginPath()
	if radii, ok := borderRadii(s["borderRadius"]); ok {
		RoundRectPath(f.Context, x, y, w, h, radii)
	} else {
		RectPath(f.Context, x, y, w, h)
	}
	paint(f)
}

// borderRadii normalizes a borderRadius value to four corners. ok is false
// when every corner is square.
func borderRadii(v any) (radii [4]float64, ok bool) {
	switch r := v.(type) {
	case float64:
		radii = [4]float64{r, r, r, r}
	case int:
		f := float64(r)
		radii = [4]float64{f, f, f, f}
	case [4]float64:
		radii = r
	}
	return radii, radii != [4]float64{}
}

// interpolateBorderRadius blends uniform and per-corner radii corner by corner.
func interpolateBorderRadius(from, to any, t float64) any {
	if t == 0 {
		return from
	}
	if t == 1 {
		return to
	}
	if a, ok := from.(float64); ok {
		if b, ok := to.(float64); ok {
			return lerp(a, b, t)
		}
	}
	a, _ := borderRadii(from)
	b, _ := borderRadii(to)
	var out [4]float64
	for i := range out {
		out[i] = lerp(a[i], b[i], t)
	}
	return out
}

// CircleOptions describes a circle centred on (CX, CY).
type CircleOptions struct {
	CX, CY, Radius float64
	Style
}

// NewCircle creates a "circle" element. State keys: cx, cy, radius plus the
// Style keys.
func NewCircle(o CircleOptions) *Element {
	st := o.Style.state()
	st["cx"] = o.CX
	st["cy"] = o.CY
	st["radius"] = o.Radius
	return NewElement("circle", st, renderCircle)
}

func renderCircle(f Frame) {
	s := f.State
	r := s.Float("radius")
	if r <= 0 {
		return
	}
	cx, cy := s.Float("cx"), s.Float("cy")
	f.Context.BeginPath()
	f.Context.Arc(cx, cy, r, 0, 2*math.Pi)
	f.Context.ClosePath()
	paint(f)
}

// LineOptions describes a polyline. Closed joins the last point back to the
// first, which also makes Fill meaningful.
type LineOptions struct {
	Points []Vec2
	Closed bool
	Style
}

// NewLine creates a "line" element. State keys: points ([]Vec2), closed
// (bool) plus the Style keys. Interpolating between point lists of different
// lengths pads the shorter list with its last point.
func NewLine(o LineOptions) *Element {
	st := o.Style.state()
	st["points"] = append([]Vec2(nil), o.Points...)
	st["closed"] = o.Closed
	return NewElement("line", st, renderLine)
}

func renderLine(f Frame) {
	pts := f.State.Points("points")
	if len(pts) < 2 {
		return
	}
	f.Context.BeginPath()
	f.Context.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		f.Context.LineTo(p.X, p.Y)
	}
	if closed, _ := f.State["closed"].(bool); closed {
		f.Context.ClosePath()
	}
	paint(f)
}
