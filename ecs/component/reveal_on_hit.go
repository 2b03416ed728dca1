package component

import "time"

// RevealOnHit shows a hidden entity when a trigger object touches this
// entity's collider.
type RevealOnHit struct {
	// Triggers are ecs.Entity values; hits on their descendants count too.
	Triggers    []uint64
	Tag         string
	Reveal      uint64
	HideOnStart bool
	Delay       time.Duration
	OnlyOnce    bool
}

var RevealOnHitComponent = NewComponent[RevealOnHit]()

type RevealOnHitRuntime struct {
	Started  bool
	Revealed bool
	Pending  bool
	Timer    time.Duration
}

var RevealOnHitRuntimeComponent = NewComponent[RevealOnHitRuntime]()
