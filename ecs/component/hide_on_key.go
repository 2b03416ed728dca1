package component

// HideOnKey deactivates Target (or the owner when zero) on a key press or a
// click.
type HideOnKey struct {
	Target       uint64
	ListenForKey bool
	Key          string
	OnlyOnce     bool
	HasHidden    bool
}

var HideOnKeyComponent = NewComponent[HideOnKey]()
