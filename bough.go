package bough

import (
	"image/color"
	"math"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs when a surface converts it for drawing.
type Color struct {
	R, G, B, A float64
}

// ColorTransparent is the zero color. Shapes skip fills and strokes in this color.
var ColorTransparent = Color{}

// ColorWhite is opaque white.
var ColorWhite = Color{1, 1, 1, 1}

// ColorBlack is opaque black.
var ColorBlack = Color{0, 0, 0, 1}

// IsZero reports whether c is fully transparent.
func (c Color) IsZero() bool {
	return c.A <= 0
}

// NRGBA converts c to a straight-alpha 8-bit color.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{
		R: unitToByte(c.R),
		G: unitToByte(c.G),
		B: unitToByte(c.B),
		A: unitToByte(c.A),
	}
}

// RGBA converts c to a premultiplied 8-bit color.
func (c Color) RGBA() color.RGBA {
	return color.RGBA{
		R: unitToByte(c.R * c.A),
		G: unitToByte(c.G * c.A),
		B: unitToByte(c.B * c.A),
		A: unitToByte(c.A),
	}
}

// ColorFromNRGBA converts an 8-bit straight-alpha color to a Color.
func ColorFromNRGBA(c color.NRGBA) Color {
	return Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
		A: float64(c.A) / 255,
	}
}

func unitToByte(v float64) uint8 {
	return uint8(math.Round(clampUnit(v) * 255))
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Vec2 is a 2D vector used for positions, offsets, sizes and line points.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// ElementType distinguishes rendering behavior for an Element.
type ElementType uint8

const (
	ElementTypeShape ElementType = iota // draws itself through its RenderFunc
	ElementTypeGroup                    // owns children and delegates rendering to them
)

// String returns the element type name.
func (t ElementType) String() string {
	switch t {
	case ElementTypeShape:
		return "shape"
	case ElementTypeGroup:
		return "group"
	default:
		return "unknown"
	}
}

// Event names emitted on scene, group and renderer buses.
const (
	EventGroupUpdated = "groupupdated" // a group's child set changed
	EventPointerEnter = "pointerenter" // the pointer entered the scene surface
	EventPointerLeave = "pointerleave" // the pointer left the scene surface
	EventStart        = "start"        // the renderer started
	EventStop         = "stop"         // the renderer stopped
	EventTick         = "tick"         // the renderer began a frame
)
