package ecs

import (
	"github.com/phanxgames/bough"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// RendererEventType carries bough.EventStart, bough.EventStop and
// bough.EventTick. Tick events are only published when Bridge.Ticks is set.
var RendererEventType = events.NewEventType[bough.Event]()

// SceneEventType carries bough.EventPointerEnter, bough.EventPointerLeave
// and bough.EventGroupUpdated.
var SceneEventType = events.NewEventType[bough.Event]()

// Bridge publishes bough events into a Donburi world. Events are queued;
// consume them with Subscribe and ProcessEvents.
type Bridge struct {
	// Ticks enables publishing one RendererEventType event per frame.
	Ticks bool

	world   donburi.World
	handles []bough.CallbackHandle
}

// NewBridge creates a bridge publishing into world.
func NewBridge(world donburi.World) *Bridge {
	return &Bridge{world: world}
}

// World returns the bridged world.
func (b *Bridge) World() donburi.World {
	return b.world
}

// AttachScene subscribes to the scene's pointer and group events.
func (b *Bridge) AttachScene(s *bough.Scene) {
	for _, name := range []string{bough.EventPointerEnter, bough.EventPointerLeave, bough.EventGroupUpdated} {
		b.handles = append(b.handles, s.On(name, b.publishScene))
	}
}

// AttachRenderer subscribes to the renderer's lifecycle events.
func (b *Bridge) AttachRenderer(r *bough.Renderer) {
	b.handles = append(b.handles,
		r.On(bough.EventStart, b.publishRenderer),
		r.On(bough.EventStop, b.publishRenderer),
		r.On(bough.EventTick, func(e bough.Event) {
			if b.Ticks {
				b.publishRenderer(e)
			}
		}),
	)
}

// Close removes every subscription made by the bridge.
func (b *Bridge) Close() {
	for _, h := range b.handles {
		h.Remove()
	}
	b.handles = nil
}

func (b *Bridge) publishScene(e bough.Event) {
	SceneEventType.Publish(b.world, e)
}

func (b *Bridge) publishRenderer(e bough.Event) {
	RendererEventType.Publish(b.world, e)
}
