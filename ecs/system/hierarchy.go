package system

import (
	"github.com/milk9111/groundclear/ecs"
	"github.com/milk9111/groundclear/ecs/component"
)

// subtree returns root followed by every live entity parented under it,
// breadth first.
func subtree(w *ecs.World, root ecs.Entity) []ecs.Entity {
	if !w.IsAlive(root) {
		return nil
	}
	children := make(map[ecs.Entity][]ecs.Entity)
	ecs.ForEach(w, component.ParentComponent.Kind(), func(e ecs.Entity, p *component.Parent) {
		parent := ecs.Entity(p.Entity)
		children[parent] = append(children[parent], e)
	})

	out := []ecs.Entity{root}
	seen := map[ecs.Entity]bool{root: true}
	for i := 0; i < len(out); i++ {
		for _, c := range children[out[i]] {
			if !seen[c] {
				seen[c] = true
				out = append(out, c)
			}
		}
	}
	return out
}

// isWithin reports whether e is ancestor or one of its descendants.
func isWithin(w *ecs.World, e, ancestor ecs.Entity) bool {
	seen := make(map[ecs.Entity]bool)
	for cur := e; w.IsAlive(cur) && !seen[cur]; {
		if cur == ancestor {
			return true
		}
		seen[cur] = true
		p, ok := ecs.Get(w, cur, component.ParentComponent.Kind())
		if !ok {
			return false
		}
		cur = ecs.Entity(p.Entity)
	}
	return false
}

// setActive deactivates root and its descendants, or reactivates them and
// turns their renderers back on.
func setActive(w *ecs.World, root ecs.Entity, active bool) {
	for _, e := range subtree(w, root) {
		if !active {
			_ = ecs.Add(w, e, component.InactiveComponent.Kind(), &component.Inactive{})
			continue
		}
		ecs.Remove(w, e, component.InactiveComponent.Kind())
		if r, ok := ecs.Get(w, e, component.RenderableComponent.Kind()); ok {
			r.Hidden = false
		}
	}
}

// hideRenderers stops drawing root and its descendants. They keep
// colliding.
func hideRenderers(w *ecs.World, root ecs.Entity) {
	for _, e := range subtree(w, root) {
		if r, ok := ecs.Get(w, e, component.RenderableComponent.Kind()); ok {
			r.Hidden = true
		}
	}
}

func entityName(w *ecs.World, e ecs.Entity) string {
	if n, ok := ecs.Get(w, e, component.NameComponent.Kind()); ok && n.Value != "" {
		return n.Value
	}
	return e.String()
}
