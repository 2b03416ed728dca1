package component

// LevelBounds encloses the scene in static walls so nothing falls forever.
type LevelBounds struct {
	Width  float64
	Height float64
}

var LevelBoundsComponent = NewComponent[LevelBounds]()
