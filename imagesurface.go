package bough

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// whiteSubImage is a 1x1 white region cut from the middle of a 3x3 image, so
// triangle sampling never bleeds past its edges. Created on first use so that
// importing the package does not touch the graphics driver.
var whiteSubImage *ebiten.Image

func whiteSource() *ebiten.Image {
	if whiteSubImage == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		whiteSubImage = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return whiteSubImage
}

// ImageSurface is an Ebitengine surface: an offscreen *ebiten.Image painted
// with triangulated vector paths. Run presents it to the window each frame.
type ImageSurface struct {
	Path

	// AntiAlias enables anti-aliased fills and strokes. Defaults to true.
	AntiAlias bool

	img      *ebiten.Image
	vertices []ebiten.Vertex
	indices  []uint16
}

var _ Surface = (*ImageSurface)(nil) // assert interface conformance
var _ Context = (*ImageSurface)(nil)

// NewImageSurface allocates a width×height offscreen image.
func NewImageSurface(width, height int) *ImageSurface {
	return &ImageSurface{
		AntiAlias: true,
		img:       ebiten.NewImage(width, height),
	}
}

// Size returns the surface dimensions in pixels.
func (s *ImageSurface) Size() (int, int) {
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

// Context returns the surface itself.
func (s *ImageSurface) Context() Context {
	return s
}

// Image returns the offscreen image.
func (s *ImageSurface) Image() *ebiten.Image {
	return s.img
}

// ClearRect makes the given area transparent.
func (s *ImageSurface) ClearRect(x, y, width, height float64) {
	b := s.img.Bounds()
	r := image.Rect(int(x), int(y), int(x+width+0.5), int(y+height+0.5)).Intersect(b)
	if r.Empty() {
		return
	}
	if r == b {
		s.img.Clear()
		return
	}
	s.img.SubImage(r).(*ebiten.Image).Clear()
}

// Fill paints the current path's interior with nonzero winding.
func (s *ImageSurface) Fill(c Color) {
	if c.IsZero() || len(s.Commands) == 0 {
		return
	}
	vp := s.vectorPath()
	s.vertices, s.indices = vp.AppendVerticesAndIndicesForFilling(s.vertices[:0], s.indices[:0])
	s.draw(c, ebiten.FillRuleNonZero)
}

// Stroke paints the current path's outline with miter joins.
func (s *ImageSurface) Stroke(c Color, width float64) {
	if c.IsZero() || width <= 0 || len(s.Commands) == 0 {
		return
	}
	vp := s.vectorPath()
	opts := &vector.StrokeOptions{
		Width:      float32(width),
		LineJoin:   vector.LineJoinMiter,
		LineCap:    vector.LineCapButt,
		MiterLimit: 4,
	}
	s.vertices, s.indices = vp.AppendVerticesAndIndicesForStroke(s.vertices[:0], s.indices[:0], opts)
	// The zero FillRule fills every triangle, which strokes need.
	s.draw(c, ebiten.FillRule(0))
}

// Snapshot reads the surface back into a straight-alpha image. Only valid
// once the game loop is running.
func (s *ImageSurface) Snapshot() *image.NRGBA {
	b := s.img.Bounds()
	w, h := b.Dx(), b.Dy()
	pixels := make([]byte, 4*w*h)
	s.img.ReadPixels(pixels)
	return unpremultiply(pixels, w, h)
}

func (s *ImageSurface) draw(c Color, rule ebiten.FillRule) {
	for i := range s.vertices {
		v := &s.vertices[i]
		v.SrcX = 1
		v.SrcY = 1
		v.ColorR = float32(c.R)
		v.ColorG = float32(c.G)
		v.ColorB = float32(c.B)
		v.ColorA = float32(c.A)
	}
	s.img.DrawTriangles(s.vertices, s.indices, whiteSource(), &ebiten.DrawTrianglesOptions{
		AntiAlias: s.AntiAlias,
		FillRule:  rule,
	})
}

// vectorPath converts the recorded commands to an ebiten vector path.
func (s *ImageSurface) vectorPath() *vector.Path {
	var vp vector.Path
	for _, c := range s.Commands {
		p := c.Points
		switch c.Op {
		case PathMoveTo:
			vp.MoveTo(float32(p[0].X), float32(p[0].Y))
		case PathLineTo:
			vp.LineTo(float32(p[0].X), float32(p[0].Y))
		case PathQuadTo:
			vp.QuadTo(float32(p[0].X), float32(p[0].Y), float32(p[1].X), float32(p[1].Y))
		case PathCubicTo:
			vp.CubicTo(float32(p[0].X), float32(p[0].Y), float32(p[1].X), float32(p[1].Y),
				float32(p[2].X), float32(p[2].Y))
		case PathClose:
			vp.Close()
		}
	}
	return &vp
}

// unpremultiply converts premultiplied RGBA bytes to straight-alpha NRGBA.
func unpremultiply(pixels []byte, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(pixels); i += 4 {
		r, g, b, a := pixels[i], pixels[i+1], pixels[i+2], pixels[i+3]
		if a > 0 && a < 255 {
			r = uint8(min(int(r)*255/int(a), 255))
			g = uint8(min(int(g)*255/int(a), 255))
			b = uint8(min(int(b)*255/int(a), 255))
		}
		img.Pix[i] = r
		img.Pix[i+1] = g
		img.Pix[i+2] = b
		img.Pix[i+3] = a
	}
	return img
}
