package system

import (
	"testing"

	"github.com/milk9111/groundclear/ecs"
	"github.com/milk9111/groundclear/ecs/component"
)

func TestHideOnKey(t *testing.T) {
	tests := []struct {
		name      string
		hide      component.HideOnKey
		keys      [][]string
		click     bool
		wantHides int
	}{
		{name: "default_key", hide: component.HideOnKey{ListenForKey: true, OnlyOnce: true}, keys: [][]string{{"H"}}, wantHides: 1},
		{name: "custom_key", hide: component.HideOnKey{ListenForKey: true, Key: "J", OnlyOnce: true}, keys: [][]string{{"H"}, {"J"}}, wantHides: 1},
		{name: "not_listening", hide: component.HideOnKey{Key: "H"}, keys: [][]string{{"H"}}, wantHides: 0},
		{name: "click_hides_without_key", hide: component.HideOnKey{OnlyOnce: true}, click: true, wantHides: 1},
		{name: "only_once", hide: component.HideOnKey{ListenForKey: true, OnlyOnce: true}, keys: [][]string{{"H"}, {"H"}}, wantHides: 1},
		{name: "repeatable", hide: component.HideOnKey{ListenForKey: true}, keys: [][]string{{"H"}, {"H"}}, wantHides: 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := ecs.NewWorld()
			feed := &eventFeed{}
			w.AddSystem(feed)
			w.AddSystem(NewHideOnKeySystem())

			inputEnt := w.CreateEntity()
			input := &component.Input{}
			mustAdd(t, w, inputEnt, component.InputComponent.Kind(), input)

			target := w.CreateEntity()
			owner := w.CreateEntity()
			cfg := tc.hide
			cfg.Target = uint64(target)
			mustAdd(t, w, owner, component.HideOnKeyComponent.Kind(), &cfg)
			if tc.click {
				feed.frames = [][]any{{ecs.ClickEvent{Entity: owner}}}
			}

			frames := max(len(tc.keys), 1)
			hides := 0
			for i := 0; i < frames; i++ {
				input.JustPressed = nil
				if i < len(tc.keys) {
					input.JustPressed = tc.keys[i]
				}
				step(w, 1)
				if ecs.Has(w, target, component.InactiveComponent.Kind()) {
					hides++
					setActive(w, target, true)
				}
			}
			if hides != tc.wantHides {
				t.Fatalf("hides = %d, want %d", hides, tc.wantHides)
			}
			if ecs.Has(w, owner, component.InactiveComponent.Kind()) {
				t.Fatalf("owner hidden instead of target")
			}
		})
	}
}

func TestHideNowDefaultsToOwner(t *testing.T) {
	w := ecs.NewWorld()
	owner := w.CreateEntity()
	child := w.CreateEntity()
	mustAdd(t, w, child, component.ParentComponent.Kind(), &component.Parent{Entity: uint64(owner)})
	mustAdd(t, w, owner, component.HideOnKeyComponent.Kind(), &component.HideOnKey{OnlyOnce: true})

	if !HideNow(w, owner) {
		t.Fatalf("HideNow returned false")
	}
	for _, e := range []ecs.Entity{owner, child} {
		if !ecs.Has(w, e, component.InactiveComponent.Kind()) {
			t.Fatalf("%v still active", e)
		}
	}
	if HideNow(w, owner) {
		t.Fatalf("second HideNow should be ignored with OnlyOnce")
	}
}
