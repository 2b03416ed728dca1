package system

import (
	"testing"
	"time"

	"github.com/milk9111/groundclear/ecs"
	"github.com/milk9111/groundclear/ecs/component"
)

func TestButtonActionHidesAndMoves(t *testing.T) {
	w := ecs.NewWorld()
	feed := &eventFeed{}
	w.AddSystem(feed)
	w.AddSystem(NewButtonActionSystem())
	w.AddSystem(NewTweenSystem())

	prop := w.CreateEntity()
	mustAdd(t, w, prop, component.RenderableComponent.Kind(), &component.Renderable{Width: 4, Height: 4})
	propChild := w.CreateEntity()
	mustAdd(t, w, propChild, component.RenderableComponent.Kind(), &component.Renderable{Width: 2, Height: 2})
	mustAdd(t, w, propChild, component.ParentComponent.Kind(), &component.Parent{Entity: uint64(prop)})

	lift := w.CreateEntity()
	liftTr := &component.Transform{Y: 100}
	mustAdd(t, w, lift, component.TransformComponent.Kind(), liftTr)

	button := w.CreateEntity()
	mustAdd(t, w, button, component.ButtonActionComponent.Kind(), &component.ButtonAction{
		Label: "lower",
		Hide:  []uint64{uint64(prop)},
		Moves: []component.MoveOrder{{Target: uint64(lift), TargetY: 0, Duration: 100 * time.Millisecond}},
	})

	feed.frames = [][]any{{ecs.ClickEvent{Entity: button}}}
	w.Update(25 * time.Millisecond)

	for _, e := range []ecs.Entity{prop, propChild} {
		r, _ := ecs.Get(w, e, component.RenderableComponent.Kind())
		if !r.Hidden {
			t.Fatalf("%v renderer not hidden", e)
		}
		if ecs.Has(w, e, component.InactiveComponent.Kind()) {
			t.Fatalf("%v deactivated, only its renderer should hide", e)
		}
	}
	if liftTr.Y != 75 {
		t.Fatalf("after 1/4 of the move y = %v, want 75", liftTr.Y)
	}

	w.Update(50 * time.Millisecond)
	if liftTr.Y != 25 {
		t.Fatalf("after 3/4 of the move y = %v, want 25", liftTr.Y)
	}
	w.Update(50 * time.Millisecond)
	if liftTr.Y != 0 {
		t.Fatalf("move did not snap to target: y = %v", liftTr.Y)
	}
	if ecs.Has(w, lift, component.MoveTweenComponent.Kind()) {
		t.Fatalf("finished tween not removed")
	}
}

func TestTweenZeroDurationSnaps(t *testing.T) {
	w := ecs.NewWorld()
	w.AddSystem(NewTweenSystem())
	e := w.CreateEntity()
	tr := &component.Transform{Y: 0.877}
	mustAdd(t, w, e, component.TransformComponent.Kind(), tr)

	if !StartMove(w, e, component.MoveOrder{TargetY: 0.015}) {
		t.Fatalf("StartMove failed")
	}
	step(w, 1)
	if tr.Y != 0.015 {
		t.Fatalf("y = %v, want 0.015", tr.Y)
	}
	if StartMove(w, w.CreateEntity(), component.MoveOrder{}) {
		t.Fatalf("StartMove on an entity without a transform should fail")
	}
}

func TestPressButtonWithoutAction(t *testing.T) {
	w := ecs.NewWorld()
	if PressButton(w, w.CreateEntity()) {
		t.Fatalf("PressButton on a plain entity returned true")
	}
}
