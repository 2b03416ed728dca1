package component

import "time"

// MoveOrder moves Target to TargetY over Duration.
type MoveOrder struct {
	Target   uint64
	TargetY  float64
	Duration time.Duration
}

// ButtonAction hides renderers and starts moves when its button is clicked.
type ButtonAction struct {
	Label string
	Hide  []uint64
	Moves []MoveOrder
}

var ButtonActionComponent = NewComponent[ButtonAction]()

// MoveTween interpolates Transform.Y from StartY to TargetY.
type MoveTween struct {
	StartY   float64
	TargetY  float64
	Duration time.Duration
	Elapsed  time.Duration
	Started  bool
}

var MoveTweenComponent = NewComponent[MoveTween]()
