package groundwatch

import "strconv"

// ObjectID identifies a tracked object. The zero value means the contact
// could not be resolved to an object with a physical body.
type ObjectID uint64

// NoObject is the id reported for contacts without a physical identity.
const NoObject ObjectID = 0

func (id ObjectID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// Contact is a begin/end notification delivered by the host.
type Contact struct {
	Object ObjectID
	// Tag is the classification tag of the object's owner, if any.
	Tag string
}

// Resolved reports whether the contact carries a usable object id.
func (c Contact) Resolved() bool {
	return c.Object != NoObject
}

// Err returns ErrUnresolvableContact for contacts without an object.
func (c Contact) Err() error {
	if !c.Resolved() {
		return ErrUnresolvableContact
	}
	return nil
}

// Filter decides whether a contact counts toward the ground state.
type Filter interface {
	Passes(c Contact) bool
}

// FilterFunc adapts a function to Filter.
type FilterFunc func(c Contact) bool

func (f FilterFunc) Passes(c Contact) bool {
	if f == nil {
		return true
	}
	return f(c)
}

// TagFilter passes every contact when empty, otherwise only contacts with a
// matching tag.
type TagFilter string

func (t TagFilter) Passes(c Contact) bool {
	if t == "" {
		return true
	}
	return c.Tag == string(t)
}
