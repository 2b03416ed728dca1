package system

import (
	"log"

	"github.com/milk9111/groundclear/ecs"
	"github.com/milk9111/groundclear/ecs/component"
	"github.com/milk9111/groundclear/groundwatch"
	"github.com/milk9111/groundclear/script"
)

// GroundWatchSystem feeds the physics contacts of GroundWatch surfaces into
// their watchers and ticks the watchers' start delays.
type GroundWatchSystem struct {
	logger *log.Logger
	// begun holds the contact resolved when a pair began, so the matching
	// end carries the same identity after the object is gone.
	begun map[contactPair]groundwatch.Contact
}

func NewGroundWatchSystem(logger *log.Logger) *GroundWatchSystem {
	if logger == nil {
		logger = log.Default()
	}
	return &GroundWatchSystem{
		logger: logger,
		begun:  make(map[contactPair]groundwatch.Contact),
	}
}

func (s *GroundWatchSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	ecs.ForEach(w, component.GroundWatchComponent.Kind(), func(e ecs.Entity, gw *component.GroundWatch) {
		if gw.Watcher == nil {
			gw.Watcher = s.newWatcher(w, e, gw)
		}
	})

	for _, evt := range ecs.EventsOf[ecs.ContactEvent](w) {
		gw, ok := ecs.Get(w, evt.Zone, component.GroundWatchComponent.Kind())
		if !ok || gw.Watcher == nil {
			continue
		}
		pair := contactPair{zone: evt.Zone, other: evt.Other}
		switch evt.Phase {
		case ecs.ContactBegin:
			c := resolveContact(w, evt.Other)
			s.begun[pair] = c
			gw.Watcher.OnContactBegin(c)
		case ecs.ContactEnd:
			c, ok := s.begun[pair]
			if !ok {
				c = resolveContact(w, evt.Other)
			}
			delete(s.begun, pair)
			gw.Watcher.OnContactEnd(c)
		}
	}

	ecs.ForEach(w, component.GroundWatchComponent.Kind(), func(_ ecs.Entity, gw *component.GroundWatch) {
		gw.Watcher.OnTick(w.Delta())
	})

	for pair := range s.begun {
		if !w.IsAlive(pair.zone) {
			delete(s.begun, pair)
		}
	}
}

func (s *GroundWatchSystem) newWatcher(w *ecs.World, e ecs.Entity, gw *component.GroundWatch) *groundwatch.Watcher {
	opts := []groundwatch.Option{groundwatch.WithLogger(s.logger)}
	if gw.FilterScript != "" {
		f, err := script.CompileFilter(gw.FilterScript, gw.Config.ClassificationTag)
		if err != nil {
			s.logger.Printf("groundwatch: %v; using tag filter", err)
		} else {
			opts = append(opts, groundwatch.WithFilter(f))
		}
	}

	var watcher *groundwatch.Watcher
	requester := groundwatch.SceneRequesterFunc(func(target groundwatch.SceneTarget) {
		StartSceneFade(w, component.SceneChangeRequest{
			Target:  target,
			Session: watcher.SessionID(),
			From:    uint64(e),
		})
	})
	watcher = groundwatch.New(gw.Config, requester, opts...)
	return watcher
}

// resolveContact maps a touching entity to the watcher's contact. Entities
// without a rigid body (static colliders, bare shapes) resolve to
// groundwatch.NoObject.
func resolveContact(w *ecs.World, other ecs.Entity) groundwatch.Contact {
	var c groundwatch.Contact
	if body, ok := ecs.Get(w, other, component.PhysicsBodyComponent.Kind()); ok && body.HasRigidBody() {
		c.Object = groundwatch.ObjectID(other)
	}
	if cls, ok := ecs.Get(w, other, component.ClassificationComponent.Kind()); ok {
		c.Tag = cls.Tag
	}
	return c
}
