// Package bough is a retained-mode scene graph and transition renderer for 2D
// drawing surfaces, built on [Ebitengine] with a headless software-raster
// backend.
//
// Callers declare persistent elements (shapes and groups) with named state.
// A [Renderer] repaints the scene every frame and interpolates element state
// over time when asked to transition it.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	surface := bough.NewImageSurface(640, 480)
//	scene := bough.NewScene(surface)
//	box := bough.NewRect(bough.RectOptions{X: 40, Y: 40, Width: 80, Height: 80,
//		Style: bough.Style{Fill: bough.Color{R: 0.3, G: 0.7, B: 1, A: 1}}})
//	scene.Add(box)
//
//	r, err := bough.NewRenderer(scene, nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//	box.Update(bough.State{"x": 400.0})
//	r.Transition([]*bough.Element{box}, bough.TransitionOptions{
//		Duration: time.Second, Ease: bough.EaseOutCubic,
//	})
//	bough.Run(scene, bough.RunConfig{Title: "bough", Width: 640, Height: 480})
//
// For full control, implement [ebiten.Game] yourself, call [Scene.PointerMove]
// and [Scene.Update] from Update and draw [ImageSurface.Image] in Draw.
//
// # Elements and groups
//
// Every drawable is an [*Element]. Shapes draw through a [RenderFunc];
// groups ([NewGroup]) own children and delegate rendering to them in
// insertion order. An element belongs to at most one group. [Element.Elements]
// flattens a group to the shapes it contains, which is what the renderer
// walks each frame. Group mutations ([Element.Set], [Element.Add],
// [Element.Remove]) emit one [EventGroupUpdated] per call.
//
// # Transitions
//
// [Element.Update] records the current target as the interpolation origin
// and merges a patch into the target. [Renderer.Transition] then animates
// from origin to target. Each element has its own start time, so staggered
// delays ([Stagger]) are cheap. The returned [*Batch] resolves when every
// element has completed.
//
// Starting a stopped renderer discards every pending transition, and
// stopping a renderer discards them without callbacks: their batches never
// resolve.
//
// # Headless rendering
//
// [RasterSurface] paints into an [image.RGBA] with rasterx. Together with
// [ManualClock] and [FrameQueue] it renders deterministic frames without a
// window; cmd/bough-render uses it to turn YAML scene documents
// ([LoadSceneDocument]) into PNG sequences.
//
// [Ebitengine]: https://ebitengine.org
package bough
