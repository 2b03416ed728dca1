package component

import "github.com/milk9111/groundclear/groundwatch"

// GroundWatch marks the reference surface of a ground-clear check. The
// watcher is created by the ground watch system on the first update.
type GroundWatch struct {
	Config       groundwatch.Config
	FilterScript string
	Watcher      *groundwatch.Watcher
}

var GroundWatchComponent = NewComponent[GroundWatch]()
