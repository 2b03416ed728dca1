package system

import (
	"log"

	"github.com/milk9111/groundclear/ecs"
	"github.com/milk9111/groundclear/ecs/component"
)

const DefaultHideKey = "H"

// HideOnKeySystem deactivates HideOnKey targets when their key goes down or
// when the owner is clicked.
type HideOnKeySystem struct{}

func NewHideOnKeySystem() *HideOnKeySystem { return &HideOnKeySystem{} }

func (s *HideOnKeySystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	var input component.Input
	if e, ok := w.First(component.InputComponent.Kind()); ok {
		in, _ := ecs.Get(w, e, component.InputComponent.Kind())
		input = *in
	}
	clicked := make(map[ecs.Entity]bool)
	for _, evt := range ecs.EventsOf[ecs.ClickEvent](w) {
		clicked[evt.Entity] = true
	}

	ecs.ForEach(w, component.HideOnKeyComponent.Kind(), func(e ecs.Entity, h *component.HideOnKey) {
		key := h.Key
		if key == "" {
			key = DefaultHideKey
		}
		if clicked[e] || (h.ListenForKey && input.Pressed(key)) {
			HideNow(w, e)
		}
	})
}

// HideNow deactivates the target of owner's HideOnKey unless it already
// fired and only fires once.
func HideNow(w *ecs.World, owner ecs.Entity) bool {
	h, ok := ecs.Get(w, owner, component.HideOnKeyComponent.Kind())
	if !ok {
		return false
	}
	if h.OnlyOnce && h.HasHidden {
		return false
	}
	target := owner
	if h.Target != 0 {
		target = ecs.Entity(h.Target)
	}
	if !w.IsAlive(target) {
		return false
	}
	name := entityName(w, target)
	setActive(w, target, false)
	h.HasHidden = true
	log.Printf("hide: %s hidden", name)
	return true
}
