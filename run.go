package bough

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title   string
	Width   int
	Height  int
	ShowFPS bool

	// ClearColor fills the window behind the scene surface each frame.
	ClearColor Color
}

// SetUpdateFunc sets a callback run at the start of every Run update, before
// pointer input and frame callbacks.
func (s *Scene) SetUpdateFunc(fn func() error) {
	s.updateFunc = fn
}

// Run opens a window and drives scene until the window closes or the update
// func returns an error. Each ebiten update forwards the cursor to the scene
// (emitting pointer enter and leave) and calls Scene.Update, which runs the
// renderer's pending frame; Draw presents the scene surface.
func Run(scene *Scene, cfg RunConfig) error {
	w, h := cfg.Width, cfg.Height
	if w <= 0 || h <= 0 {
		w, h = scene.Size()
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(w, h)
	g := &game{scene: scene, cfg: cfg, width: w, height: h}
	if cfg.ShowFPS {
		g.fps = newFPSWidget()
	}
	return ebiten.RunGame(g)
}

// game adapts a Scene to ebiten.Game.
type game struct {
	scene         *Scene
	cfg           RunConfig
	width, height int

	fps    *fpsWidget
	mirror *ebiten.Image // upload target for surfaces that are not ebiten images
}

func (g *game) Update() error {
	s := g.scene
	if s.updateFunc != nil {
		if err := s.updateFunc(); err != nil {
			return err
		}
	}
	// Injected events own the pointer while they drain.
	if !s.injecting() {
		if ebiten.IsFocused() {
			x, y := ebiten.CursorPosition()
			s.PointerMove(float64(x), float64(y))
		} else {
			s.PointerLeave()
		}
	}
	s.Update()
	if g.fps != nil {
		g.fps.update(1 / float64(ebiten.TPS()))
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	if !g.cfg.ClearColor.IsZero() {
		screen.Fill(g.cfg.ClearColor.RGBA())
	}
	switch surf := g.scene.Surface().(type) {
	case *ImageSurface:
		screen.DrawImage(surf.Image(), nil)
	case Snapshotter:
		img := surf.Snapshot()
		b := img.Bounds()
		if g.mirror == nil || g.mirror.Bounds() != b {
			g.mirror = ebiten.NewImage(b.Dx(), b.Dy())
		}
		g.mirror.WritePixels(premultiply(img.Pix))
		screen.DrawImage(g.mirror, nil)
	}
	if g.fps != nil {
		g.fps.draw(screen)
	}
}

func (g *game) Layout(int, int) (int, int) {
	return g.width, g.height
}

// premultiply converts straight-alpha RGBA bytes for WritePixels.
func premultiply(pix []byte) []byte {
	out := make([]byte, len(pix))
	for i := 0; i < len(pix); i += 4 {
		a := uint32(pix[i+3])
		out[i] = uint8(uint32(pix[i]) * a / 255)
		out[i+1] = uint8(uint32(pix[i+1]) * a / 255)
		out[i+2] = uint8(uint32(pix[i+2]) * a / 255)
		out[i+3] = pix[i+3]
	}
	return out
}
