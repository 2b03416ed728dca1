package component

import "image/color"

// Renderable is a filled rectangle centred on the entity's Transform.
type Renderable struct {
	Width  float64
	Height float64
	Color  color.RGBA
	Layer  int
	// Hidden disables drawing only; the entity keeps colliding.
	Hidden bool
}

var RenderableComponent = NewComponent[Renderable]()
