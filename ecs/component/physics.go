package component

import "github.com/jakecoffman/cp"

// BodyKind selects how the physics system simulates a body.
type BodyKind string

const (
	BodyDynamic   BodyKind = "dynamic"
	BodyStatic    BodyKind = "static"
	BodyKinematic BodyKind = "kinematic"
)

// PhysicsBody stores Chipmunk2D runtime data and collider configuration.
// Body and Shape are filled in by the physics system.
type PhysicsBody struct {
	Body       *cp.Body
	Shape      *cp.Shape
	Kind       BodyKind
	Width      float64
	Height     float64
	Radius     float64
	Mass       float64
	Friction   float64
	Elasticity float64
	// Sensor shapes report contacts without colliding.
	Sensor bool
}

func (p PhysicsBody) IsStatic() bool {
	return p.Kind == BodyStatic
}

// HasRigidBody reports whether contacts with this body resolve to a tracked
// object. Static colliders have no rigid body.
func (p PhysicsBody) HasRigidBody() bool {
	return p.Kind == BodyDynamic || p.Kind == BodyKinematic || p.Kind == ""
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()

// ContactReporter marks an entity whose shape emits ecs.ContactEvents.
type ContactReporter struct{}

var ContactReporterComponent = NewComponent[ContactReporter]()
