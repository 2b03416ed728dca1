package component

import "slices"

// Input holds the keys pressed this frame, written by the host before the
// world updates.
type Input struct {
	JustPressed []string
}

// Pressed reports whether key went down this frame.
func (in Input) Pressed(key string) bool {
	return slices.Contains(in.JustPressed, key)
}

var InputComponent = NewComponent[Input]()
