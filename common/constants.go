package common

const (
	BaseWidth  = 1280
	BaseHeight = 720

	TPS = 60

	// Gravity is in pixels per second squared, y down.
	Gravity = 900.0
)
