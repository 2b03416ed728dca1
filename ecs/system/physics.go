package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/groundclear/common"
	"github.com/milk9111/groundclear/ecs"
	"github.com/milk9111/groundclear/ecs/component"
)

const (
	collisionTypeBody cp.CollisionType = iota + 1
	collisionTypeSolid
	collisionTypeZone
)

const defaultBodySize = 32.0

// PhysicsSystem steps a Chipmunk2D space and reports contacts on
// ContactReporter entities as ecs.ContactEvents.
type PhysicsSystem struct {
	space         *cp.Space
	handlersReady bool

	entities map[ecs.Entity]*bodyInfo
	shapes   map[*cp.Shape]ecs.Entity
	zones    map[*cp.Shape]ecs.Entity

	// contacts counts live arbiters per pair so each pair begins and ends
	// once even when several shapes touch.
	contacts map[contactPair]int
	pending  []ecs.ContactEvent
}

type bodyInfo struct {
	body   *cp.Body
	shapes []*cp.Shape
	kind   component.BodyKind
	zone   bool
}

type contactPair struct {
	zone  ecs.Entity
	other ecs.Entity
}

func NewPhysicsSystem() *PhysicsSystem {
	ps := &PhysicsSystem{}
	ps.reset()
	return ps
}

func (ps *PhysicsSystem) reset() {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{X: 0, Y: common.Gravity})
	ps.space = space
	ps.handlersReady = false
	ps.entities = make(map[ecs.Entity]*bodyInfo)
	ps.shapes = make(map[*cp.Shape]ecs.Entity)
	ps.zones = make(map[*cp.Shape]ecs.Entity)
	ps.contacts = make(map[contactPair]int)
	ps.pending = nil
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}
	if ps.space == nil {
		ps.reset()
	}

	ps.ensureHandlers()
	ps.syncEntities(w)
	ps.syncWorldBounds(w)
	ps.driveKinematic(w)

	ps.space.Step(w.Delta().Seconds())

	ps.syncTransforms(w)
	ps.flushContacts(w)
}

func (ps *PhysicsSystem) ensureHandlers() {
	if ps.handlersReady || ps.space == nil {
		return
	}
	for _, pair := range [][2]cp.CollisionType{
		{collisionTypeBody, collisionTypeZone},
		{collisionTypeZone, collisionTypeZone},
	} {
		h := ps.space.NewCollisionHandler(pair[0], pair[1])
		h.UserData = ps
		h.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
			if sys, ok := userData.(*PhysicsSystem); ok && sys != nil {
				a, b := arb.Shapes()
				sys.touch(a, b, 1)
			}
			return true
		}
		h.SeparateFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) {
			if sys, ok := userData.(*PhysicsSystem); ok && sys != nil {
				a, b := arb.Shapes()
				sys.touch(a, b, -1)
			}
		}
	}
	ps.handlersReady = true
}

// touch records an arbiter starting (delta 1) or ending (delta -1) for every
// zone among the two shapes.
func (ps *PhysicsSystem) touch(a, b *cp.Shape, delta int) {
	ea, okA := ps.shapes[a]
	eb, okB := ps.shapes[b]
	if !okA || !okB || ea == eb {
		return
	}
	if _, zone := ps.zones[a]; zone {
		ps.count(contactPair{zone: ea, other: eb}, delta)
	}
	if _, zone := ps.zones[b]; zone {
		ps.count(contactPair{zone: eb, other: ea}, delta)
	}
}

func (ps *PhysicsSystem) count(p contactPair, delta int) {
	n := ps.contacts[p]
	switch {
	case delta > 0:
		ps.contacts[p] = n + 1
		if n == 0 {
			ps.pending = append(ps.pending, ecs.ContactEvent{Zone: p.zone, Other: p.other, Phase: ecs.ContactBegin})
		}
	case n > 0:
		if n == 1 {
			delete(ps.contacts, p)
			ps.pending = append(ps.pending, ecs.ContactEvent{Zone: p.zone, Other: p.other, Phase: ecs.ContactEnd})
			return
		}
		ps.contacts[p] = n - 1
	}
}

// endContacts closes every open pair involving e.
func (ps *PhysicsSystem) endContacts(e ecs.Entity) {
	for p := range ps.contacts {
		if p.zone == e || p.other == e {
			delete(ps.contacts, p)
			ps.pending = append(ps.pending, ecs.ContactEvent{Zone: p.zone, Other: p.other, Phase: ecs.ContactEnd})
		}
	}
}

func (ps *PhysicsSystem) flushContacts(w *ecs.World) {
	for _, evt := range ps.pending {
		w.Events().Push(evt)
	}
	ps.pending = ps.pending[:0]
}

// OpenContacts is the number of pairs currently touching.
func (ps *PhysicsSystem) OpenContacts() int {
	return len(ps.contacts)
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	ps.cleanupEntities(w)

	for _, e := range w.Query(component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind()) {
		if _, exists := ps.entities[e]; exists {
			continue
		}
		if ecs.Has(w, e, component.InactiveComponent.Kind()) {
			continue
		}
		bodyComp, _ := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		transform, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		zone := ecs.Has(w, e, component.ContactReporterComponent.Kind())

		info := ps.createBodyInfo(transform, bodyComp, zone)
		ps.entities[e] = info
		for _, shape := range info.shapes {
			ps.shapes[shape] = e
			if zone {
				ps.zones[shape] = e
			}
		}
		bodyComp.Body = info.body
		bodyComp.Shape = info.shapes[0]
	}
}

func (ps *PhysicsSystem) createBodyInfo(transform *component.Transform, bodyComp *component.PhysicsBody, zone bool) *bodyInfo {
	width, height, radius := bodyComp.Width, bodyComp.Height, bodyComp.Radius
	if radius <= 0 && (width <= 0 || height <= 0) {
		width, height = defaultBodySize, defaultBodySize
	}

	kind := bodyComp.Kind
	if kind == "" {
		kind = component.BodyDynamic
	}
	info := &bodyInfo{kind: kind, zone: zone}

	var shape *cp.Shape
	switch kind {
	case component.BodyStatic:
		info.body = ps.space.StaticBody
		if radius > 0 {
			shape = cp.NewCircle(info.body, radius, cp.Vector{X: transform.X, Y: transform.Y})
		} else {
			bb := cp.BB{L: transform.X - width/2, B: transform.Y - height/2, R: transform.X + width/2, T: transform.Y + height/2}
			shape = cp.NewBox2(info.body, bb, 0)
		}
	default:
		var body *cp.Body
		if kind == component.BodyKinematic {
			body = cp.NewKinematicBody()
		} else {
			mass := bodyComp.Mass
			if mass <= 0 {
				mass = 1
			}
			moment := cp.MomentForBox(mass, width, height)
			if radius > 0 {
				moment = cp.MomentForCircle(mass, 0, radius, cp.Vector{})
			}
			body = cp.NewBody(mass, moment)
		}
		body.SetPosition(cp.Vector{X: transform.X, Y: transform.Y})
		body.SetAngle(transform.Rotation)
		ps.space.AddBody(body)
		info.body = body

		if radius > 0 {
			shape = cp.NewCircle(body, radius, cp.Vector{})
		} else {
			shape = cp.NewBox(body, width, height, 0)
		}
	}

	shape.SetFriction(bodyComp.Friction)
	shape.SetElasticity(bodyComp.Elasticity)
	shape.SetSensor(bodyComp.Sensor)
	if zone {
		shape.SetCollisionType(collisionTypeZone)
	} else {
		shape.SetCollisionType(collisionTypeBody)
	}
	ps.space.AddShape(shape)
	info.shapes = []*cp.Shape{shape}
	return info
}

func (ps *PhysicsSystem) syncWorldBounds(w *ecs.World) {
	boundsEntity, ok := w.First(component.LevelBoundsComponent.Kind())
	if !ok {
		return
	}
	if _, exists := ps.entities[boundsEntity]; exists {
		return
	}
	bounds, _ := ecs.Get(w, boundsEntity, component.LevelBoundsComponent.Kind())
	worldW, worldH := bounds.Width, bounds.Height
	if worldW <= 0 || worldH <= 0 {
		return
	}

	thickness := 1.0
	segments := []struct {
		a cp.Vector
		b cp.Vector
	}{
		{a: cp.Vector{X: 0, Y: 0}, b: cp.Vector{X: worldW, Y: 0}},           // top
		{a: cp.Vector{X: 0, Y: worldH}, b: cp.Vector{X: worldW, Y: worldH}}, // bottom
		{a: cp.Vector{X: 0, Y: 0}, b: cp.Vector{X: 0, Y: worldH}},           // left
		{a: cp.Vector{X: worldW, Y: 0}, b: cp.Vector{X: worldW, Y: worldH}}, // right
	}

	info := &bodyInfo{kind: component.BodyStatic, body: ps.space.StaticBody}
	for _, seg := range segments {
		shape := cp.NewSegment(ps.space.StaticBody, seg.a, seg.b, thickness)
		shape.SetFriction(0.8)
		shape.SetCollisionType(collisionTypeSolid)
		ps.space.AddShape(shape)
		info.shapes = append(info.shapes, shape)
	}
	ps.entities[boundsEntity] = info
}

// driveKinematic gives kinematic bodies the velocity that carries them to
// their Transform over the coming step.
func (ps *PhysicsSystem) driveKinematic(w *ecs.World) {
	dt := w.Delta().Seconds()
	for e, info := range ps.entities {
		if info.kind != component.BodyKinematic || info.body == nil {
			continue
		}
		transform, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		pos := info.body.Position()
		info.body.SetVelocity((transform.X-pos.X)/dt, (transform.Y-pos.Y)/dt)
	}
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	for e, info := range ps.entities {
		if info.kind != component.BodyDynamic || info.body == nil {
			continue
		}
		transform, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		pos := info.body.Position()
		transform.X = pos.X
		transform.Y = pos.Y
		transform.Rotation = info.body.Angle()
	}
}

// cleanupEntities removes the shapes of destroyed, deactivated or
// body-less entities and ends their open contacts.
func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e, info := range ps.entities {
		keep := false
		if w.IsAlive(e) && !ecs.Has(w, e, component.InactiveComponent.Kind()) {
			keep = ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) || ecs.Has(w, e, component.LevelBoundsComponent.Kind())
		}
		if keep {
			continue
		}

		for _, shape := range info.shapes {
			ps.space.RemoveShape(shape)
		}
		if info.body != nil && info.kind != component.BodyStatic {
			ps.space.RemoveBody(info.body)
		}
		for _, shape := range info.shapes {
			delete(ps.shapes, shape)
			delete(ps.zones, shape)
		}
		ps.endContacts(e)
		delete(ps.entities, e)

		if bodyComp, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok {
			bodyComp.Body = nil
			bodyComp.Shape = nil
		}
	}
}
