package bough

import (
	"image"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/fixed"
)

// Surface is a drawing target: its pixel size and the Context used to paint
// it. A nil Context makes NewRenderer fail.
type Surface interface {
	Size() (width, height int)
	Context() Context
}

// Snapshotter is a surface that can copy out its current pixels. Scenes on a
// Snapshotter surface support Screenshot.
type Snapshotter interface {
	Snapshot() *image.NRGBA
}

// RasterSurface is a headless surface backed by an *image.RGBA and painted by
// rasterx. It needs no GPU or window, so the render CLI, screenshots and
// pixel tests use it.
type RasterSurface struct {
	Path

	img     *image.RGBA
	scanner *rasterx.ScannerGV
	filler  *rasterx.Filler
	dasher  *rasterx.Dasher
}

var _ Surface = (*RasterSurface)(nil) // assert interface conformance
var _ Context = (*RasterSurface)(nil)

// NewRasterSurface allocates a transparent width×height surface.
func NewRasterSurface(width, height int) *RasterSurface {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	scanner := rasterx.NewScannerGV(width, height, img, img.Bounds())
	s := &RasterSurface{
		img:     img,
		scanner: scanner,
		filler:  rasterx.NewFiller(width, height, scanner),
		dasher:  rasterx.NewDasher(width, height, scanner),
	}
	s.filler.SetWinding(true)
	s.dasher.SetWinding(true)
	return s
}

// Size returns the surface dimensions in pixels.
func (s *RasterSurface) Size() (int, int) {
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

// Context returns the surface itself.
func (s *RasterSurface) Context() Context {
	return s
}

// Image returns the backing image. It is repainted every frame.
func (s *RasterSurface) Image() *image.RGBA {
	return s.img
}

// ClearRect makes the given area transparent.
func (s *RasterSurface) ClearRect(x, y, width, height float64) {
	r := image.Rect(int(x), int(y), int(x+width+0.5), int(y+height+0.5)).Intersect(s.img.Bounds())
	draw.Draw(s.img, r, image.Transparent, image.Point{}, draw.Src)
}

// Fill paints the current path's interior with nonzero winding.
func (s *RasterSurface) Fill(c Color) {
	if c.IsZero() || len(s.Commands) == 0 {
		return
	}
	s.filler.Clear()
	s.filler.SetColor(c.NRGBA())
	replayPath(s.Commands, s.filler)
	s.filler.Draw()
}

// Stroke paints the current path's outline with butt caps and miter joins.
func (s *RasterSurface) Stroke(c Color, width float64) {
	if c.IsZero() || width <= 0 || len(s.Commands) == 0 {
		return
	}
	s.dasher.Clear()
	s.dasher.SetStroke(toFixed(width), toFixed(4), rasterx.ButtCap, rasterx.ButtCap,
		rasterx.FlatGap, rasterx.Miter, nil, 0)
	s.dasher.SetColor(c.NRGBA())
	replayPath(s.Commands, s.dasher)
	s.dasher.Draw()
}

// Snapshot copies the surface into a straight-alpha image.
func (s *RasterSurface) Snapshot() *image.NRGBA {
	out := image.NewNRGBA(s.img.Bounds())
	draw.Draw(out, out.Bounds(), s.img, image.Point{}, draw.Src)
	return out
}

// replayPath feeds recorded commands to a rasterx path consumer.
func replayPath(cmds []PathCommand, a rasterx.Adder) {
	var start Vec2
	open := false
	begin := func(p Vec2) {
		if open {
			a.Stop(false)
		}
		a.Start(toFixedPoint(p))
		start = p
		open = true
	}
	for _, c := range cmds {
		switch c.Op {
		case PathMoveTo:
			begin(c.Points[0])
			continue
		case PathClose:
			if open {
				a.Stop(true)
				open = false
			}
			continue
		}
		if !open {
			// Drawing after ClosePath continues from the closed subpath's start.
			begin(start)
		}
		switch c.Op {
		case PathLineTo:
			a.Line(toFixedPoint(c.Points[0]))
		case PathQuadTo:
			a.QuadBezier(toFixedPoint(c.Points[0]), toFixedPoint(c.Points[1]))
		case PathCubicTo:
			a.CubeBezier(toFixedPoint(c.Points[0]), toFixedPoint(c.Points[1]), toFixedPoint(c.Points[2]))
		}
	}
	if open {
		a.Stop(false)
	}
}

func toFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}

func toFixedPoint(p Vec2) fixed.Point26_6 {
	return fixed.Point26_6{X: toFixed(p.X), Y: toFixed(p.Y)}
}
