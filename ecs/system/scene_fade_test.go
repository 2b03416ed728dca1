package system

import (
	"testing"

	"github.com/milk9111/groundclear/ecs"
	"github.com/milk9111/groundclear/ecs/component"
	"github.com/milk9111/groundclear/groundwatch"
)

func TestSceneFadeSendsRequestOnce(t *testing.T) {
	w := ecs.NewWorld()
	w.AddSystem(NewSceneFadeSystem())

	req := component.SceneChangeRequest{Target: groundwatch.SceneTarget{Name: "finale"}, Session: "s1"}
	if !StartSceneFade(w, req) {
		t.Fatalf("StartSceneFade returned false")
	}
	if StartSceneFade(w, component.SceneChangeRequest{Session: "s2"}) {
		t.Fatalf("second fade should be dropped while one runs")
	}

	step(w, sceneFadeFrames/2)
	if a := FadeAlpha(w); a <= 0 || a >= 1 {
		t.Fatalf("mid-fade alpha = %v", a)
	}
	if _, ok := TakeSceneChangeRequest(w); ok {
		t.Fatalf("request sent before the screen went black")
	}

	step(w, sceneFadeFrames)
	if a := FadeAlpha(w); a != 1 {
		t.Fatalf("alpha after fade = %v, want 1", a)
	}
	got, ok := TakeSceneChangeRequest(w)
	if !ok || got != req {
		t.Fatalf("TakeSceneChangeRequest = %+v, %v; want %+v", got, ok, req)
	}
	step(w, 5)
	if _, ok := TakeSceneChangeRequest(w); ok {
		t.Fatalf("request sent twice")
	}

	CancelSceneFade(w)
	if FadeAlpha(w) != 0 {
		t.Fatalf("fade still running after cancel")
	}
}
