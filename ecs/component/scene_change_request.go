package component

import "github.com/milk9111/groundclear/groundwatch"

// SceneChangeRequest is a one-shot request emitted by gameplay systems to
// ask the game loop to switch scenes. Systems only emit data; the game loop
// owns reloading the world.
type SceneChangeRequest struct {
	Target  groundwatch.SceneTarget
	Session string
	// From is the requesting ecs.Entity, for logging.
	From uint64
}

var SceneChangeRequestComponent = NewComponent[SceneChangeRequest]()
