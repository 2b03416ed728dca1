package system

import (
	"log"

	"github.com/milk9111/groundclear/ecs"
	"github.com/milk9111/groundclear/ecs/component"
)

const sceneFadeFrames = 30

// StartSceneFade begins fading out towards req. A fade already in progress
// wins and req is dropped.
func StartSceneFade(w *ecs.World, req component.SceneChangeRequest) bool {
	if w == nil {
		return false
	}
	if _, busy := w.First(component.SceneFadeComponent.Kind()); busy {
		log.Printf("scene: fade already running, dropping request for %s", req.Target)
		return false
	}
	e := w.CreateEntity()
	_ = ecs.Add(w, e, component.SceneFadeComponent.Kind(), &component.SceneFade{
		Phase:  component.FadeOut,
		Frames: sceneFadeFrames,
		Timer:  sceneFadeFrames,
		Req:    req,
	})
	return true
}

// SceneFadeSystem darkens the screen and, once black, spawns a one-shot
// SceneChangeRequest entity for the game loop to act on.
type SceneFadeSystem struct{}

func NewSceneFadeSystem() *SceneFadeSystem { return &SceneFadeSystem{} }

func (s *SceneFadeSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	e, ok := w.First(component.SceneFadeComponent.Kind())
	if !ok {
		return
	}
	fade, _ := ecs.Get(w, e, component.SceneFadeComponent.Kind())

	if fade.Timer > 0 {
		fade.Timer--
	}
	switch fade.Phase {
	case component.FadeOut:
		if fade.Frames > 0 {
			fade.Alpha = 1 - float64(fade.Timer)/float64(fade.Frames)
		} else {
			fade.Alpha = 1
		}
		if fade.Timer <= 0 && !fade.ReqSent {
			reqEnt := w.CreateEntity()
			req := fade.Req
			_ = ecs.Add(w, reqEnt, component.SceneChangeRequestComponent.Kind(), &req)
			fade.ReqSent = true
			fade.Phase = component.FadeDone
		}
	case component.FadeDone:
		// hold black until the game loop rebuilds the world
	default:
		w.DestroyEntity(e)
	}
}

// FadeAlpha is the darkness of the running fade, 0 when none runs.
func FadeAlpha(w *ecs.World) float64 {
	e, ok := w.First(component.SceneFadeComponent.Kind())
	if !ok {
		return 0
	}
	fade, _ := ecs.Get(w, e, component.SceneFadeComponent.Kind())
	return fade.Alpha
}

// TakeSceneChangeRequest removes and returns the pending scene change
// request, if any.
func TakeSceneChangeRequest(w *ecs.World) (component.SceneChangeRequest, bool) {
	if w == nil {
		return component.SceneChangeRequest{}, false
	}
	e, ok := w.First(component.SceneChangeRequestComponent.Kind())
	if !ok {
		return component.SceneChangeRequest{}, false
	}
	req, _ := ecs.Get(w, e, component.SceneChangeRequestComponent.Kind())
	out := *req
	w.DestroyEntity(e)
	return out, true
}

// CancelSceneFade drops the running fade, used when the requested scene
// could not be loaded.
func CancelSceneFade(w *ecs.World) {
	if e, ok := w.First(component.SceneFadeComponent.Kind()); ok {
		w.DestroyEntity(e)
	}
}
