package system

import (
	"github.com/milk9111/groundclear/ecs"
	"github.com/milk9111/groundclear/ecs/component"
)

// PickClickable returns the top-most active Clickable entity whose
// renderable box contains (x, y).
func PickClickable(w *ecs.World, x, y float64) (ecs.Entity, bool) {
	var (
		best      ecs.Entity
		bestLayer int
		found     bool
	)
	for _, e := range w.Query(component.ClickableComponent.Kind(), component.TransformComponent.Kind(), component.RenderableComponent.Kind()) {
		if ecs.Has(w, e, component.InactiveComponent.Kind()) {
			continue
		}
		tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		r, _ := ecs.Get(w, e, component.RenderableComponent.Kind())
		if r.Hidden {
			continue
		}
		if x < tr.X-r.Width/2 || x > tr.X+r.Width/2 || y < tr.Y-r.Height/2 || y > tr.Y+r.Height/2 {
			continue
		}
		if !found || r.Layer >= bestLayer {
			best, bestLayer, found = e, r.Layer, true
		}
	}
	return best, found
}
