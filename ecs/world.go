package ecs

import (
	"time"

	"github.com/milk9111/groundclear/ecs/component"
)

// DefaultDelta is the frame step used when the host does not supply one.
const DefaultDelta = time.Second / 60

// World owns entities, their components, the frame's events and the system
// order.
type World struct {
	entities  entityStore
	stores    map[component.ComponentID]*SparseSet
	events    EventQueue
	scheduler Scheduler

	delta time.Duration
	frame uint64
}

// NewWorld creates an empty world.
func NewWorld() *World {
	return &World{
		stores: make(map[component.ComponentID]*SparseSet),
		delta:  DefaultDelta,
	}
}

// CreateEntity allocates a new entity.
func (w *World) CreateEntity() Entity {
	return w.entities.create()
}

// DestroyEntity drops e and all of its components. It reports false for
// entities that were not alive.
func (w *World) DestroyEntity(e Entity) bool {
	if w == nil || !w.entities.destroy(e) {
		return false
	}
	for _, store := range w.stores {
		store.Remove(e)
	}
	return true
}

// IsAlive reports whether an entity handle is valid.
func (w *World) IsAlive(e Entity) bool {
	return w != nil && w.entities.isAlive(e)
}

// Len is the number of live entities.
func (w *World) Len() int {
	if w == nil {
		return 0
	}
	return w.entities.count
}

// AddSystem appends a system to the update order.
func (w *World) AddSystem(s System) {
	if w == nil {
		return
	}
	w.scheduler.Add(s)
}

// Update runs every system once with a frame step of dt, then drops the
// frame's events.
func (w *World) Update(dt time.Duration) {
	if w == nil {
		return
	}
	if dt <= 0 {
		dt = DefaultDelta
	}
	w.delta = dt
	w.frame++
	w.scheduler.Update(w)
	w.events.flush()
}

// Delta is the step of the frame being updated.
func (w *World) Delta() time.Duration {
	if w == nil {
		return DefaultDelta
	}
	return w.delta
}

// Frame counts completed and in-progress updates.
func (w *World) Frame() uint64 {
	if w == nil {
		return 0
	}
	return w.frame
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

func (w *World) store(id component.ComponentID, create bool) *SparseSet {
	if w.stores == nil {
		if !create {
			return nil
		}
		w.stores = make(map[component.ComponentID]*SparseSet)
	}
	s := w.stores[id]
	if s == nil && create {
		s = &SparseSet{}
		w.stores[id] = s
	}
	return s
}

// CreateEntity allocates a new entity in w.
func CreateEntity(w *World) Entity {
	return w.CreateEntity()
}

// DestroyEntity drops e from w.
func DestroyEntity(w *World, e Entity) bool {
	return w.DestroyEntity(e)
}

// IsAlive reports whether e is alive in w.
func IsAlive(w *World, e Entity) bool {
	return w.IsAlive(e)
}

// Entities lists every live entity in slot order.
func Entities(w *World) []Entity {
	if w == nil {
		return nil
	}
	out := make([]Entity, 0, w.entities.count)
	w.entities.each(func(e Entity) { out = append(out, e) })
	return out
}
