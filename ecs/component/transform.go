package component

// Transform is the entity's centre in world pixels (y grows downward).
type Transform struct {
	X        float64
	Y        float64
	Rotation float64
}

var TransformComponent = NewComponent[Transform]()
