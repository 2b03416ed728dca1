package system

import (
	"github.com/milk9111/groundclear/common"
	"github.com/milk9111/groundclear/ecs"
	"github.com/milk9111/groundclear/ecs/component"
)

// StartMove replaces any running tween on e with one towards m.TargetY.
func StartMove(w *ecs.World, e ecs.Entity, m component.MoveOrder) bool {
	if !ecs.Has(w, e, component.TransformComponent.Kind()) {
		return false
	}
	return ecs.Add(w, e, component.MoveTweenComponent.Kind(), &component.MoveTween{
		TargetY:  m.TargetY,
		Duration: m.Duration,
	}) == nil
}

// TweenSystem moves entities along their MoveTween. The start height is
// taken on the first update so the move begins from wherever the entity is.
type TweenSystem struct{}

func NewTweenSystem() *TweenSystem { return &TweenSystem{} }

func (s *TweenSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	var done []ecs.Entity
	ecs.ForEach2(w, component.MoveTweenComponent.Kind(), component.TransformComponent.Kind(),
		func(e ecs.Entity, tw *component.MoveTween, tr *component.Transform) {
			if !tw.Started {
				tw.Started = true
				tw.StartY = tr.Y
			}
			tw.Elapsed += w.Delta()

			if tw.Duration <= 0 || tw.Elapsed >= tw.Duration {
				tr.Y = tw.TargetY
				done = append(done, e)
				return
			}
			t := common.Clamp01(float64(tw.Elapsed) / float64(tw.Duration))
			tr.Y = common.Lerp(tw.StartY, tw.TargetY, t)
		})
	for _, e := range done {
		ecs.Remove(w, e, component.MoveTweenComponent.Kind())
	}
}
