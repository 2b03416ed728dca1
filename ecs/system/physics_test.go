package system

import (
	"testing"

	"github.com/milk9111/groundclear/ecs"
	"github.com/milk9111/groundclear/ecs/component"
)

type contactLog struct {
	events []ecs.ContactEvent
}

func (l *contactLog) Update(w *ecs.World) {
	l.events = append(l.events, ecs.EventsOf[ecs.ContactEvent](w)...)
}

func (l *contactLog) count(zone, other ecs.Entity, phase ecs.ContactPhase) int {
	n := 0
	for _, evt := range l.events {
		if evt.Zone == zone && evt.Other == other && evt.Phase == phase {
			n++
		}
	}
	return n
}

func addGround(t *testing.T, w *ecs.World, report bool) ecs.Entity {
	t.Helper()
	e := w.CreateEntity()
	mustAdd(t, w, e, component.TransformComponent.Kind(), &component.Transform{X: 320, Y: 400})
	mustAdd(t, w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Kind: component.BodyStatic, Width: 640, Height: 20, Friction: 0.9})
	if report {
		mustAdd(t, w, e, component.ContactReporterComponent.Kind(), &component.ContactReporter{})
	}
	return e
}

func addBox(t *testing.T, w *ecs.World, x, y float64) ecs.Entity {
	t.Helper()
	e := w.CreateEntity()
	mustAdd(t, w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y})
	mustAdd(t, w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Kind: component.BodyDynamic, Width: 20, Height: 20, Mass: 1, Friction: 0.9})
	return e
}

func mustAdd[T any](t *testing.T, w *ecs.World, e ecs.Entity, kind component.ComponentKind[T], v *T) {
	t.Helper()
	if err := ecs.Add(w, e, kind, v); err != nil {
		t.Fatalf("add component: %v", err)
	}
}

func physicsWorld() (*ecs.World, *PhysicsSystem, *contactLog) {
	w := ecs.NewWorld()
	ps := NewPhysicsSystem()
	log := &contactLog{}
	w.AddSystem(ps)
	w.AddSystem(log)
	return w, ps, log
}

func step(w *ecs.World, frames int) {
	for i := 0; i < frames; i++ {
		w.Update(ecs.DefaultDelta)
	}
}

func TestPhysicsBoxLandsOnReportingGround(t *testing.T) {
	w, ps, log := physicsWorld()
	ground := addGround(t, w, true)
	box := addBox(t, w, 320, 100)

	step(w, 120)

	if n := log.count(ground, box, ecs.ContactBegin); n != 1 {
		t.Fatalf("begin events = %d, want 1", n)
	}
	if n := log.count(ground, box, ecs.ContactEnd); n != 0 {
		t.Fatalf("resting box produced %d end events", n)
	}
	tr, _ := ecs.Get(w, box, component.TransformComponent.Kind())
	if tr.Y < 370 || tr.Y > 392 {
		t.Fatalf("box rests at y=%.2f, want on top of the ground", tr.Y)
	}
	if ps.OpenContacts() != 1 {
		t.Fatalf("OpenContacts() = %d, want 1", ps.OpenContacts())
	}

	w.DestroyEntity(box)
	step(w, 1)
	if n := log.count(ground, box, ecs.ContactEnd); n != 1 {
		t.Fatalf("end events after destroy = %d, want 1", n)
	}
	if ps.OpenContacts() != 0 {
		t.Fatalf("OpenContacts() = %d after destroy", ps.OpenContacts())
	}
}

func TestPhysicsInactiveEndsContact(t *testing.T) {
	w, _, log := physicsWorld()
	ground := addGround(t, w, true)
	box := addBox(t, w, 320, 360)

	step(w, 60)
	if log.count(ground, box, ecs.ContactBegin) != 1 {
		t.Fatalf("expected box to touch ground")
	}

	mustAdd(t, w, box, component.InactiveComponent.Kind(), &component.Inactive{})
	step(w, 1)
	if n := log.count(ground, box, ecs.ContactEnd); n != 1 {
		t.Fatalf("end events after deactivate = %d, want 1", n)
	}
	body, _ := ecs.Get(w, box, component.PhysicsBodyComponent.Kind())
	if body.Body != nil || body.Shape != nil {
		t.Fatalf("inactive entity kept its cp body")
	}

	ecs.Remove(w, box, component.InactiveComponent.Kind())
	step(w, 60)
	if n := log.count(ground, box, ecs.ContactBegin); n != 2 {
		t.Fatalf("begin events after reactivation = %d, want 2", n)
	}
}

func TestPhysicsSilentWithoutReporter(t *testing.T) {
	w, _, log := physicsWorld()
	addGround(t, w, false)
	box := addBox(t, w, 320, 300)

	step(w, 90)
	if len(log.events) != 0 {
		t.Fatalf("got %d contact events without a reporter", len(log.events))
	}
	tr, _ := ecs.Get(w, box, component.TransformComponent.Kind())
	if tr.Y > 392 {
		t.Fatalf("box fell through solid ground: y=%.2f", tr.Y)
	}
}

func TestPhysicsLevelBoundsCatchBodies(t *testing.T) {
	w, _, _ := physicsWorld()
	bounds := w.CreateEntity()
	mustAdd(t, w, bounds, component.LevelBoundsComponent.Kind(), &component.LevelBounds{Width: 200, Height: 200})
	box := addBox(t, w, 100, 50)

	step(w, 180)
	tr, _ := ecs.Get(w, box, component.TransformComponent.Kind())
	if tr.Y > 200 {
		t.Fatalf("box escaped level bounds: y=%.2f", tr.Y)
	}
}

func TestPhysicsKinematicFollowsTransform(t *testing.T) {
	w, _, _ := physicsWorld()
	e := w.CreateEntity()
	mustAdd(t, w, e, component.TransformComponent.Kind(), &component.Transform{X: 10, Y: 10})
	mustAdd(t, w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Kind: component.BodyKinematic, Width: 10, Height: 10})

	step(w, 1)
	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	tr.Y = 40
	step(w, 1)

	body, _ := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	if got := body.Body.Position().Y; got < 39.9 || got > 40.1 {
		t.Fatalf("kinematic body at y=%.3f, want 40", got)
	}
	if tr.Y != 40 {
		t.Fatalf("kinematic transform overwritten: y=%.3f", tr.Y)
	}
}
