package component

// Name is the authored name used to wire references between entities.
type Name struct {
	Value string
}

var NameComponent = NewComponent[Name]()

// Classification is the tag checked by classification filters.
type Classification struct {
	Tag string
}

var ClassificationComponent = NewComponent[Classification]()

// Parent links an entity to the one it belongs to. Entity is an ecs.Entity.
type Parent struct {
	Entity uint64
}

var ParentComponent = NewComponent[Parent]()

// Inactive removes an entity from physics and drawing without destroying it.
type Inactive struct{}

var InactiveComponent = NewComponent[Inactive]()

// Clickable entities receive ecs.ClickEvents from the host's pointer.
type Clickable struct{}

var ClickableComponent = NewComponent[Clickable]()
