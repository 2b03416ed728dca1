package system

import (
	"log"

	"github.com/milk9111/groundclear/ecs"
	"github.com/milk9111/groundclear/ecs/component"
)

// ButtonActionSystem applies a ButtonAction when its entity is clicked.
type ButtonActionSystem struct{}

func NewButtonActionSystem() *ButtonActionSystem { return &ButtonActionSystem{} }

func (s *ButtonActionSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	for _, evt := range ecs.EventsOf[ecs.ClickEvent](w) {
		PressButton(w, evt.Entity)
	}
}

// PressButton hides the action's renderers and starts its moves.
func PressButton(w *ecs.World, e ecs.Entity) bool {
	action, ok := ecs.Get(w, e, component.ButtonActionComponent.Kind())
	if !ok {
		return false
	}
	for _, h := range action.Hide {
		if h != 0 {
			hideRenderers(w, ecs.Entity(h))
		}
	}
	for _, m := range action.Moves {
		StartMove(w, ecs.Entity(m.Target), m)
	}
	log.Printf("button: %q pressed (%d hidden, %d moves)", action.Label, len(action.Hide), len(action.Moves))
	return true
}
