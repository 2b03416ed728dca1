package system

import (
	"log"

	"github.com/milk9111/groundclear/ecs"
	"github.com/milk9111/groundclear/ecs/component"
)

// RevealOnHitSystem hides each RevealOnHit target at start and shows it
// again after a trigger object touches the owner.
type RevealOnHitSystem struct{}

func NewRevealOnHitSystem() *RevealOnHitSystem { return &RevealOnHitSystem{} }

func (s *RevealOnHitSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach(w, component.RevealOnHitComponent.Kind(), func(e ecs.Entity, cfg *component.RevealOnHit) {
		rt := revealRuntime(w, e)
		if rt.Started {
			return
		}
		rt.Started = true
		if cfg.HideOnStart && cfg.Reveal != 0 {
			setActive(w, ecs.Entity(cfg.Reveal), false)
		}
	})

	for _, evt := range ecs.EventsOf[ecs.ContactEvent](w) {
		if evt.Phase != ecs.ContactBegin {
			continue
		}
		cfg, ok := ecs.Get(w, evt.Zone, component.RevealOnHitComponent.Kind())
		if !ok {
			continue
		}
		rt := revealRuntime(w, evt.Zone)
		if rt.Pending || (rt.Revealed && cfg.OnlyOnce) {
			continue
		}
		if !isRevealTrigger(w, cfg, evt.Other) {
			continue
		}
		rt.Pending = true
		rt.Revealed = true
		rt.Timer = cfg.Delay
	}

	ecs.ForEach2(w, component.RevealOnHitComponent.Kind(), component.RevealOnHitRuntimeComponent.Kind(),
		func(e ecs.Entity, cfg *component.RevealOnHit, rt *component.RevealOnHitRuntime) {
			if !rt.Pending {
				return
			}
			rt.Timer -= w.Delta()
			if rt.Timer > 0 {
				return
			}
			rt.Pending = false
			rt.Timer = 0
			if cfg.Reveal == 0 {
				return
			}
			target := ecs.Entity(cfg.Reveal)
			setActive(w, target, true)
			log.Printf("reveal: %s revealed %s", entityName(w, e), entityName(w, target))
		})
}

func revealRuntime(w *ecs.World, e ecs.Entity) *component.RevealOnHitRuntime {
	rt, ok := ecs.Get(w, e, component.RevealOnHitRuntimeComponent.Kind())
	if !ok {
		rt = &component.RevealOnHitRuntime{}
		_ = ecs.Add(w, e, component.RevealOnHitRuntimeComponent.Kind(), rt)
	}
	return rt
}

// isRevealTrigger matches the hit entity against the trigger list (children
// of a trigger count) and then against the tag.
func isRevealTrigger(w *ecs.World, cfg *component.RevealOnHit, hit ecs.Entity) bool {
	for _, t := range cfg.Triggers {
		if t != 0 && isWithin(w, hit, ecs.Entity(t)) {
			return true
		}
	}
	if cfg.Tag == "" {
		return false
	}
	cls, ok := ecs.Get(w, hit, component.ClassificationComponent.Kind())
	return ok && cls.Tag == cfg.Tag
}
