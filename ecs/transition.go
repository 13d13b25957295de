package ecs

import (
	"github.com/phanxgames/bough"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"
)

// TransitionRequest asks for Targets to be updated with Patch and then
// transitioned with Options.
type TransitionRequest struct {
	Targets []*bough.Element
	Patch   bough.State
	Options bough.TransitionOptions
}

// TransitionRequestComponent stores a TransitionRequest on an entity.
var TransitionRequestComponent = donburi.NewComponentType[TransitionRequest]()

var transitionRequests = donburi.NewQuery(filter.Contains(TransitionRequestComponent))

// RequestTransition creates an entity holding req.
func RequestTransition(world donburi.World, req TransitionRequest) donburi.Entity {
	entity := world.Create(TransitionRequestComponent)
	TransitionRequestComponent.SetValue(world.Entry(entity), req)
	return entity
}

// ProcessTransitions starts every pending TransitionRequest on r and removes
// the request entities. It returns the batches in query order.
func ProcessTransitions(world donburi.World, r *bough.Renderer) []*bough.Batch {
	var done []donburi.Entity
	var batches []*bough.Batch
	transitionRequests.Each(world, func(entry *donburi.Entry) {
		req := TransitionRequestComponent.Get(entry)
		batches = append(batches, r.UpdateAndTransition(req.Targets, req.Patch, req.Options))
		done = append(done, entry.Entity())
	})
	for _, e := range done {
		world.Remove(e)
	}
	return batches
}
