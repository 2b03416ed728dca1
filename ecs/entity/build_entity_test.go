package entity

import (
	"io"
	"log"
	"strings"
	"testing"
	"time"

	"github.com/milk9111/groundclear/config"
	"github.com/milk9111/groundclear/ecs"
	"github.com/milk9111/groundclear/ecs/component"
	"github.com/milk9111/groundclear/ecs/system"
	"github.com/milk9111/groundclear/groundwatch"
)

func mustLoad(t *testing.T, w *ecs.World, name string) *Scene {
	t.Helper()
	scene, err := LoadScene(w, name)
	if err != nil {
		t.Fatalf("LoadScene(%q): %v", name, err)
	}
	return scene
}

func mustLookup(t *testing.T, scene *Scene, name string) ecs.Entity {
	t.Helper()
	e, ok := scene.Lookup(name)
	if !ok {
		t.Fatalf("scene %q has no entity %q", scene.Name, name)
	}
	return e
}

func TestBuildEveryScene(t *testing.T) {
	order, err := config.LoadBuildOrder()
	if err != nil {
		t.Fatalf("LoadBuildOrder: %v", err)
	}
	for _, name := range order {
		t.Run(name, func(t *testing.T) {
			w := ecs.NewWorld()
			scene := mustLoad(t, w, name)
			if len(w.Query(component.GroundWatchComponent.Kind())) != 1 {
				t.Fatalf("scene %q should have exactly one ground watch", name)
			}
			if _, ok := w.First(component.InputComponent.Kind()); !ok {
				t.Fatalf("scene %q has no input singleton", name)
			}
			if scene.Background.A == 0 {
				t.Fatalf("scene %q has a transparent background", name)
			}
		})
	}
}

func TestBuildDropZoneCopies(t *testing.T) {
	w := ecs.NewWorld()
	scene := mustLoad(t, w, "drop_zone")

	assets := mustLookup(t, scene, "assets")
	for i, name := range []string{"asset#0", "asset#14"} {
		e := mustLookup(t, scene, name)
		p, ok := ecs.Get(w, e, component.ParentComponent.Kind())
		if !ok || ecs.Entity(p.Entity) != assets {
			t.Fatalf("%s parent = %v, want assets", name, p)
		}
		tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		wantX := 220.0 + float64(i*14)*60
		if tr.X != wantX {
			t.Fatalf("%s x = %v, want %v", name, tr.X, wantX)
		}
	}
	if _, ok := scene.Lookup("asset"); ok {
		t.Fatalf("stamped entity should only be reachable by numbered names")
	}

	ground := mustLookup(t, scene, "ground")
	if !ecs.Has(w, ground, component.ContactReporterComponent.Kind()) {
		t.Fatalf("ground does not report contacts")
	}
	hide, ok := ecs.Get(w, mustLookup(t, scene, "hide_button"), component.HideOnKeyComponent.Kind())
	if !ok || ecs.Entity(hide.Target) != assets || hide.ListenForKey {
		t.Fatalf("hide_button hide_on_key = %+v", hide)
	}
}

func TestBuildRevealRoomReferences(t *testing.T) {
	w := ecs.NewWorld()
	scene := mustLoad(t, w, "reveal_room")

	reveal, ok := ecs.Get(w, mustLookup(t, scene, "floor"), component.RevealOnHitComponent.Kind())
	if !ok {
		t.Fatalf("floor has no reveal_on_hit")
	}
	if ecs.Entity(reveal.Reveal) != mustLookup(t, scene, "door") {
		t.Fatalf("reveal target = %v, want door", reveal.Reveal)
	}
	if len(reveal.Triggers) != 1 || ecs.Entity(reveal.Triggers[0]) != mustLookup(t, scene, "key_crate") {
		t.Fatalf("triggers = %v, want [key_crate]", reveal.Triggers)
	}
	if reveal.Delay != 500*time.Millisecond || !reveal.HideOnStart || !reveal.OnlyOnce {
		t.Fatalf("reveal = %+v", reveal)
	}

	body, _ := ecs.Get(w, mustLookup(t, scene, "key_crate"), component.PhysicsBodyComponent.Kind())
	r, _ := ecs.Get(w, mustLookup(t, scene, "door_frame"), component.RenderableComponent.Kind())
	if body.Kind != component.BodyDynamic || r.Width != 76 {
		t.Fatalf("body = %+v, renderable = %+v", body, r)
	}
}

func TestBuildSceneErrorsLeaveWorldEmpty(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "unknown_component",
			yaml:    "entities:\n  - name: a\n    components:\n      sprite: {}\n",
			wantErr: `no builder for component "sprite"`,
		},
		{
			name:    "unknown_reference",
			yaml:    "entities:\n  - name: a\n    components:\n      hide_on_key: { target: ghost }\n",
			wantErr: `unknown entity "ghost"`,
		},
		{
			name:    "bad_body_kind",
			yaml:    "entities:\n  - name: a\n    components:\n      transform: {}\n      physics_body: { kind: floaty }\n",
			wantErr: `unknown body kind "floaty"`,
		},
		{
			name:    "body_without_transform",
			yaml:    "entities:\n  - name: a\n    components:\n      physics_body: {}\n",
			wantErr: "requires a transform",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			spec, err := config.ParseSceneSpec("test.yaml", []byte(tc.yaml))
			if err != nil {
				t.Fatalf("ParseSceneSpec: %v", err)
			}
			w := ecs.NewWorld()
			_, err = BuildScene(w, spec)
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("BuildScene error = %v, want %q", err, tc.wantErr)
			}
			if w.Len() != 0 {
				t.Fatalf("%d entities left after failed build", w.Len())
			}
		})
	}
}

func TestDropZonePlaysThrough(t *testing.T) {
	w := ecs.NewWorld()
	system.Install(w, log.New(io.Discard, "", 0))
	scene := mustLoad(t, w, "drop_zone")

	gwEnt := mustLookup(t, scene, "ground")
	for i := 0; i < 4*60; i++ {
		w.Update(ecs.DefaultDelta)
	}
	gw, _ := ecs.Get(w, gwEnt, component.GroundWatchComponent.Kind())
	snap := gw.Watcher.Snapshot()
	if snap.State != groundwatch.StateMonitoring {
		t.Fatalf("State = %s with assets on the ground, want monitoring", snap.State)
	}
	if len(snap.Touching) != 15 || len(snap.EverTouched) != 15 {
		t.Fatalf("touching %d, seen %d; want 15 each", len(snap.Touching), len(snap.EverTouched))
	}

	input, _ := ecs.Get(w, scene.Input, component.InputComponent.Kind())
	input.JustPressed = []string{"H"}
	w.Update(ecs.DefaultDelta)
	input.JustPressed = nil

	if got := gw.Watcher.State(); got != groundwatch.StateTransitioned {
		t.Fatalf("State = %s after hiding the assets, want transitioned", got)
	}
	for i := 0; i < 60; i++ {
		w.Update(ecs.DefaultDelta)
	}
	req, ok := system.TakeSceneChangeRequest(w)
	if !ok || !req.Target.Sequential() || req.Session != gw.Watcher.SessionID() {
		t.Fatalf("request = %+v, %v", req, ok)
	}
}
