package ecs

// ContactPhase distinguishes the start and end of a contact.
type ContactPhase int

const (
	ContactBegin ContactPhase = iota + 1
	ContactEnd
)

func (p ContactPhase) String() string {
	switch p {
	case ContactBegin:
		return "begin"
	case ContactEnd:
		return "end"
	default:
		return "unknown"
	}
}

// ContactEvent is emitted by the physics system when an object starts or
// stops touching an entity that reports contacts.
type ContactEvent struct {
	Zone  Entity
	Other Entity
	Phase ContactPhase
}

// ClickEvent is pushed by the host when the user clicks an entity or a UI
// control bound to one.
type ClickEvent struct {
	Entity Entity
}

// EventQueue holds the events of the current frame. Every system may read
// them; the world drops them after the last system ran.
type EventQueue struct {
	items []any
}

// Push adds an event.
func (q *EventQueue) Push(evt any) {
	if q == nil || evt == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Items returns the frame's events without consuming them.
func (q *EventQueue) Items() []any {
	if q == nil {
		return nil
	}
	return q.items
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []any {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}

// EventsOf returns the frame's events of type T in push order.
func EventsOf[T any](w *World) []T {
	var out []T
	for _, evt := range w.Events().Items() {
		if v, ok := evt.(T); ok {
			out = append(out, v)
		}
	}
	return out
}
