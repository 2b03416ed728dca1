package system

import (
	"log"

	"github.com/milk9111/groundclear/ecs"
)

// Install adds the scene systems to w in update order. Input-driven systems
// run before physics so their moves are simulated the same frame; contact
// consumers run after it.
func Install(w *ecs.World, logger *log.Logger) *PhysicsSystem {
	physics := NewPhysicsSystem()
	w.AddSystem(NewHideOnKeySystem())
	w.AddSystem(NewButtonActionSystem())
	w.AddSystem(NewTweenSystem())
	w.AddSystem(physics)
	w.AddSystem(NewGroundWatchSystem(logger))
	w.AddSystem(NewRevealOnHitSystem())
	w.AddSystem(NewSceneFadeSystem())
	return physics
}
