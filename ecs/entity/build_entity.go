package entity

import (
	"fmt"
	"image/color"
	"sort"

	"github.com/milk9111/groundclear/config"
	"github.com/milk9111/groundclear/ecs"
	"github.com/milk9111/groundclear/ecs/component"
	"github.com/milk9111/groundclear/ecs/system"
)

// Scene is a built scene: its entities by authored name.
type Scene struct {
	Name       string
	Background color.RGBA
	Entities   map[string]ecs.Entity
	Input      ecs.Entity
}

// Lookup returns the entity built for name.
func (s *Scene) Lookup(name string) (ecs.Entity, bool) {
	if s == nil {
		return 0, false
	}
	e, ok := s.Entities[name]
	return e, ok
}

var defaultBackground = color.RGBA{R: 0x10, G: 0x10, B: 0x18, A: 0xff}

type buildContext struct {
	scene *Scene
	spec  config.EntityBuildSpec
	copy  int
}

// resolve maps an authored entity name to its entity.
func (ctx *buildContext) resolve(name string) (ecs.Entity, error) {
	e, ok := ctx.scene.Entities[name]
	if !ok {
		return 0, fmt.Errorf("unknown entity %q", name)
	}
	return e, nil
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"transform":        addTransform,
	"physics_body":     addPhysicsBody,
	"renderable":       addRenderable,
	"classification":   addClassification,
	"contact_reporter": addContactReporter,
	"clickable":        addClickable,
	"level_bounds":     addLevelBounds,
	"ground_watch":     addGroundWatch,
	"reveal_on_hit":    addRevealOnHit,
	"hide_on_key":      addHideOnKey,
	"button_action":    addButtonAction,
}

// renderable falls back to the body size, so bodies come first.
var componentBuildOrder = []string{
	"transform",
	"physics_body",
	"renderable",
}

// LoadScene builds the named scene spec into w.
func LoadScene(w *ecs.World, name string) (*Scene, error) {
	spec, err := config.LoadSceneSpec(name)
	if err != nil {
		return nil, err
	}
	return BuildScene(w, spec)
}

// BuildScene creates every entity of spec. Names are assigned first so
// components can reference any entity of the scene. On error nothing is
// left in the world.
func BuildScene(w *ecs.World, spec config.SceneSpec) (*Scene, error) {
	if w == nil {
		return nil, fmt.Errorf("build scene: world is nil")
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("build scene %q: %w", spec.Name, err)
	}

	scene := &Scene{
		Name:       spec.Name,
		Background: defaultBackground,
		Entities:   make(map[string]ecs.Entity),
	}
	if spec.Background != nil {
		scene.Background = spec.Background.RGBA
	}

	type pending struct {
		e   ecs.Entity
		ctx *buildContext
	}
	var created []pending
	fail := func(err error) (*Scene, error) {
		for _, p := range created {
			ecs.DestroyEntity(w, p.e)
		}
		ecs.DestroyEntity(w, scene.Input)
		return nil, fmt.Errorf("build scene %q: %w", spec.Name, err)
	}

	for _, es := range spec.Entities {
		copies := max(es.Copies, 1)
		for i := 0; i < copies; i++ {
			e := ecs.CreateEntity(w)
			created = append(created, pending{e: e, ctx: &buildContext{scene: scene, spec: es, copy: i}})
			name := es.Name
			if es.Copies > 1 {
				name = fmt.Sprintf("%s#%d", es.Name, i)
			}
			if name == "" {
				continue
			}
			scene.Entities[name] = e
			_ = ecs.Add(w, e, component.NameComponent.Kind(), &component.Name{Value: name})
		}
	}

	scene.Input = ecs.CreateEntity(w)
	_ = ecs.Add(w, scene.Input, component.InputComponent.Kind(), &component.Input{})

	for _, p := range created {
		if p.ctx.spec.Parent != "" {
			parent, err := p.ctx.resolve(p.ctx.spec.Parent)
			if err != nil {
				return fail(err)
			}
			_ = ecs.Add(w, p.e, component.ParentComponent.Kind(), &component.Parent{Entity: uint64(parent)})
		}
		if err := buildComponents(w, p.e, p.ctx); err != nil {
			return fail(err)
		}
	}
	return scene, nil
}

func buildComponents(w *ecs.World, e ecs.Entity, ctx *buildContext) error {
	remaining := make(map[string]any, len(ctx.spec.Components))
	for k, v := range ctx.spec.Components {
		remaining[k] = v
	}

	apply := func(name string) error {
		builder, ok := componentRegistry[name]
		if !ok {
			return fmt.Errorf("entity %q: no builder for component %q", ctx.spec.Name, name)
		}
		if err := builder(w, e, remaining[name], ctx); err != nil {
			return fmt.Errorf("entity %q: add %q: %w", ctx.spec.Name, name, err)
		}
		delete(remaining, name)
		return nil
	}

	for _, name := range componentBuildOrder {
		if _, ok := remaining[name]; !ok {
			continue
		}
		if err := apply(name); err != nil {
			return err
		}
	}

	names := make([]string, 0, len(remaining))
	for name := range remaining {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := apply(name); err != nil {
			return err
		}
	}
	return nil
}

func addTransform(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := config.DecodeComponentSpec[config.TransformComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		X:        spec.X + float64(ctx.copy)*ctx.spec.Spacing.X,
		Y:        spec.Y + float64(ctx.copy)*ctx.spec.Spacing.Y,
		Rotation: spec.Rotation,
	})
}

func addPhysicsBody(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := config.DecodeComponentSpec[config.PhysicsBodyComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode physics body spec: %w", err)
	}
	kind := component.BodyKind(spec.Kind)
	switch kind {
	case "":
		kind = component.BodyDynamic
	case component.BodyDynamic, component.BodyStatic, component.BodyKinematic:
	default:
		return fmt.Errorf("unknown body kind %q", spec.Kind)
	}
	if !ecs.Has(w, e, component.TransformComponent.Kind()) {
		return fmt.Errorf("physics_body requires a transform")
	}
	if kind == component.BodyDynamic && spec.Mass == 0 {
		spec.Mass = 1
	}
	return ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Kind:       kind,
		Width:      spec.Width,
		Height:     spec.Height,
		Radius:     spec.Radius,
		Mass:       spec.Mass,
		Friction:   spec.Friction,
		Elasticity: spec.Elasticity,
		Sensor:     spec.Sensor,
	})
}

func addRenderable(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := config.DecodeComponentSpec[config.RenderableComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode renderable spec: %w", err)
	}
	if body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok {
		if spec.Width == 0 {
			spec.Width = body.Width
		}
		if spec.Height == 0 {
			spec.Height = body.Height
		}
	}
	c := color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	if spec.Color != nil {
		c = spec.Color.RGBA
	}
	return ecs.Add(w, e, component.RenderableComponent.Kind(), &component.Renderable{
		Width:  spec.Width,
		Height: spec.Height,
		Color:  c,
		Layer:  spec.Layer,
		Hidden: spec.Hidden,
	})
}

func addClassification(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := config.DecodeComponentSpec[config.ClassificationComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode classification spec: %w", err)
	}
	return ecs.Add(w, e, component.ClassificationComponent.Kind(), &component.Classification{Tag: spec.Tag})
}

func addContactReporter(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.ContactReporterComponent.Kind(), &component.ContactReporter{})
}

func addClickable(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.ClickableComponent.Kind(), &component.Clickable{})
}

func addLevelBounds(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := config.DecodeComponentSpec[config.LevelBoundsComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode level bounds spec: %w", err)
	}
	return ecs.Add(w, e, component.LevelBoundsComponent.Kind(), &component.LevelBounds{Width: spec.Width, Height: spec.Height})
}

func addGroundWatch(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := config.DecodeComponentSpec[config.GroundWatchComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode ground watch spec: %w", err)
	}
	if err := ecs.Add(w, e, component.ContactReporterComponent.Kind(), &component.ContactReporter{}); err != nil {
		return err
	}
	return ecs.Add(w, e, component.GroundWatchComponent.Kind(), &component.GroundWatch{
		Config:       spec.Config(),
		FilterScript: spec.FilterScript,
	})
}

func addRevealOnHit(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := config.DecodeComponentSpec[config.RevealOnHitComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode reveal on hit spec: %w", err)
	}
	triggers := make([]uint64, 0, len(spec.Triggers))
	for _, name := range spec.Triggers {
		t, err := ctx.resolve(name)
		if err != nil {
			return fmt.Errorf("trigger: %w", err)
		}
		triggers = append(triggers, uint64(t))
	}
	var reveal ecs.Entity
	if spec.Reveal != "" {
		if reveal, err = ctx.resolve(spec.Reveal); err != nil {
			return fmt.Errorf("reveal: %w", err)
		}
	}
	if err := ecs.Add(w, e, component.ContactReporterComponent.Kind(), &component.ContactReporter{}); err != nil {
		return err
	}
	return ecs.Add(w, e, component.RevealOnHitComponent.Kind(), &component.RevealOnHit{
		Triggers:    triggers,
		Tag:         spec.Tag,
		Reveal:      uint64(reveal),
		HideOnStart: config.BoolOr(spec.HideOnStart, true),
		Delay:       max(0, config.Seconds(spec.RevealDelay)),
		OnlyOnce:    config.BoolOr(spec.OnlyOnce, true),
	})
}

func addHideOnKey(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := config.DecodeComponentSpec[config.HideOnKeyComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode hide on key spec: %w", err)
	}
	var target ecs.Entity
	if spec.Target != "" {
		if target, err = ctx.resolve(spec.Target); err != nil {
			return fmt.Errorf("target: %w", err)
		}
	}
	key := spec.Key
	if key == "" {
		key = system.DefaultHideKey
	}
	return ecs.Add(w, e, component.HideOnKeyComponent.Kind(), &component.HideOnKey{
		Target:       uint64(target),
		ListenForKey: config.BoolOr(spec.ListenForKey, true),
		Key:          key,
		OnlyOnce:     config.BoolOr(spec.OnlyOnce, true),
	})
}

func addButtonAction(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := config.DecodeComponentSpec[config.ButtonActionComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode button action spec: %w", err)
	}
	action := &component.ButtonAction{Label: spec.Label}
	if action.Label == "" {
		action.Label = ctx.spec.Name
	}
	for _, name := range spec.Hide {
		h, err := ctx.resolve(name)
		if err != nil {
			return fmt.Errorf("hide: %w", err)
		}
		action.Hide = append(action.Hide, uint64(h))
	}
	for _, m := range spec.Moves {
		target, err := ctx.resolve(m.Entity)
		if err != nil {
			return fmt.Errorf("move: %w", err)
		}
		action.Moves = append(action.Moves, component.MoveOrder{
			Target:   uint64(target),
			TargetY:  m.TargetY,
			Duration: max(0, config.Seconds(m.Duration)),
		})
	}
	return ecs.Add(w, e, component.ButtonActionComponent.Kind(), action)
}
