// Package ecs bridges bough scenes and renderers into a [Donburi] world.
//
// [Bridge] republishes renderer lifecycle events (start, stop, tick) and
// scene events (pointer enter and leave, group updates) as typed Donburi
// events. [TransitionRequest] entities let ECS systems ask for transitions;
// [ProcessTransitions] applies and removes them once per frame.
//
// Usage:
//
//	bridge := ecs.NewBridge(world)
//	bridge.AttachScene(scene)
//	bridge.AttachRenderer(renderer)
//	defer bridge.Close()
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
