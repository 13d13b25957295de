package bough

import "math"

// Context is the canvas-style drawing handle a surface hands to render
// procedures. Path calls accumulate a path; Fill and Stroke paint it and keep
// it, so a shape can fill and then stroke the same outline. BeginPath starts
// over.
type Context interface {
	ClearRect(x, y, width, height float64)
	PathBuilder
	Fill(c Color)
	Stroke(c Color, width float64)
}

// PathBuilder is the path half of a Context. Path implements it on its own,
// so path helpers can record without a surface.
type PathBuilder interface {
	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	QuadTo(cx, cy, x, y float64)
	CubicTo(c1x, c1y, c2x, c2y, x, y float64)
	// Arc adds a circular arc around (cx, cy) from startAngle to endAngle in
	// radians, clockwise on screen for increasing angles. It connects to the
	// current point with a line when there is one.
	Arc(cx, cy, radius, startAngle, endAngle float64)
	ClosePath()
}

// PathOp is a path command kind.
type PathOp uint8

const (
	PathMoveTo  PathOp = iota // Points[0] starts a new subpath
	PathLineTo                // straight line to Points[0]
	PathQuadTo                // quadratic curve via Points[0] to Points[1]
	PathCubicTo               // cubic curve via Points[0], Points[1] to Points[2]
	PathClose                 // line back to the subpath start
)

// PathCommand is one recorded path operation.
type PathCommand struct {
	Op     PathOp
	Points [3]Vec2
}

// Path records path commands. Surfaces embed it to satisfy the path-building
// half of Context and replay Commands when filling or stroking.
type Path struct {
	Commands []PathCommand

	start  Vec2
	cur    Vec2
	hasCur bool
}

var _ PathBuilder = (*Path)(nil)

// BeginPath discards the recorded commands.
func (p *Path) BeginPath() {
	p.Commands = p.Commands[:0]
	p.hasCur = false
}

// MoveTo starts a new subpath at (x, y).
func (p *Path) MoveTo(x, y float64) {
	pt := Vec2{x, y}
	p.Commands = append(p.Commands, PathCommand{Op: PathMoveTo, Points: [3]Vec2{pt}})
	p.start, p.cur, p.hasCur = pt, pt, true
}

// LineTo adds a line to (x, y). Without a current point it behaves as MoveTo.
func (p *Path) LineTo(x, y float64) {
	if !p.hasCur {
		p.MoveTo(x, y)
		return
	}
	pt := Vec2{x, y}
	p.Commands = append(p.Commands, PathCommand{Op: PathLineTo, Points: [3]Vec2{pt}})
	p.cur = pt
}

// QuadTo adds a quadratic curve with control point (cx, cy).
func (p *Path) QuadTo(cx, cy, x, y float64) {
	if !p.hasCur {
		p.MoveTo(cx, cy)
	}
	pt := Vec2{x, y}
	p.Commands = append(p.Commands, PathCommand{Op: PathQuadTo, Points: [3]Vec2{{cx, cy}, pt}})
	p.cur = pt
}

// CubicTo adds a cubic curve with control points (c1x, c1y) and (c2x, c2y).
func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	if !p.hasCur {
		p.MoveTo(c1x, c1y)
	}
	pt := Vec2{x, y}
	p.Commands = append(p.Commands, PathCommand{Op: PathCubicTo, Points: [3]Vec2{{c1x, c1y}, {c2x, c2y}, pt}})
	p.cur = pt
}

// Arc approximates the arc with cubic segments of at most a quarter turn.
func (p *Path) Arc(cx, cy, radius, startAngle, endAngle float64) {
	sweep := endAngle - startAngle
	if sweep > 2*math.Pi {
		sweep = 2 * math.Pi
	} else if sweep < -2*math.Pi {
		sweep = -2 * math.Pi
	}
	x0 := cx + radius*math.Cos(startAngle)
	y0 := cy + radius*math.Sin(startAngle)
	if p.hasCur {
		p.LineTo(x0, y0)
	} else {
		p.MoveTo(x0, y0)
	}
	if radius <= 0 || sweep == 0 {
		return
	}
	segments := int(math.Ceil(math.Abs(sweep) / (math.Pi / 2)))
	step := sweep / float64(segments)
	k := 4.0 / 3.0 * math.Tan(step/4)
	a := startAngle
	for range segments {
		b := a + step
		cosA, sinA := math.Cos(a), math.Sin(a)
		cosB, sinB := math.Cos(b), math.Sin(b)
		p.CubicTo(
			cx+radius*(cosA-k*sinA), cy+radius*(sinA+k*cosA),
			cx+radius*(cosB+k*sinB), cy+radius*(sinB-k*cosB),
			cx+radius*cosB, cy+radius*sinB,
		)
		a = b
	}
}

// ClosePath closes the current subpath.
func (p *Path) ClosePath() {
	if !p.hasCur {
		return
	}
	p.Commands = append(p.Commands, PathCommand{Op: PathClose})
	p.cur = p.start
}

// RectPath adds a closed rectangle subpath to ctx.
func RectPath(ctx PathBuilder, x, y, width, height float64) {
	ctx.MoveTo(x, y)
	ctx.LineTo(x+width, y)
	ctx.LineTo(x+width, y+height)
	ctx.LineTo(x, y+height)
	ctx.ClosePath()
}

// RoundRectPath adds a rectangle with corner radii (top-left, top-right,
// bottom-right, bottom-left). Radii are clamped to half the shorter side.
func RoundRectPath(ctx PathBuilder, x, y, width, height float64, radii [4]float64) {
	limit := math.Min(math.Abs(width), math.Abs(height)) / 2
	for i, r := range radii {
		radii[i] = math.Max(0, math.Min(r, limit))
	}
	if radii == [4]float64{} {
		RectPath(ctx, x, y, width, height)
		return
	}
	tl, tr, br, bl := radii[0], radii[1], radii[2], radii[3]
	ctx.MoveTo(x+tl, y)
	ctx.LineTo(x+width-tr, y)
	ctx.Arc(x+width-tr, y+tr, tr, -math.Pi/2, 0)
	ctx.LineTo(x+width, y+height-br)
	ctx.Arc(x+width-br, y+height-br, br, 0, math.Pi/2)
	ctx.LineTo(x+bl, y+height)
	ctx.Arc(x+bl, y+height-bl, bl, math.Pi/2, math.Pi)
	ctx.LineTo(x, y+tl)
	ctx.Arc(x+tl, y+tl, tl, math.Pi, 3*math.Pi/2)
	ctx.ClosePath()
}
