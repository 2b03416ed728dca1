package groundwatch

import "sort"

// ContactTracker keeps the set of objects touching the surface right now and
// the set of objects that have touched it at least once. The second set
// only grows and always contains the first.
type ContactTracker struct {
	touching map[ObjectID]struct{}
	ever     map[ObjectID]struct{}
}

func NewContactTracker() *ContactTracker {
	return &ContactTracker{
		touching: make(map[ObjectID]struct{}),
		ever:     make(map[ObjectID]struct{}),
	}
}

// RegisterContactBegin records id in both sets. It reports whether either
// set changed.
func (t *ContactTracker) RegisterContactBegin(id ObjectID, passesFilter bool) bool {
	if t == nil || !passesFilter {
		return false
	}
	_, wasTouching := t.touching[id]
	_, wasSeen := t.ever[id]
	t.touching[id] = struct{}{}
	t.ever[id] = struct{}{}
	return !wasTouching || !wasSeen
}

// RegisterContactEnd removes id from the touching set only. It reports
// whether the set changed.
func (t *ContactTracker) RegisterContactEnd(id ObjectID, passesFilter bool) bool {
	if t == nil || !passesFilter {
		return false
	}
	if _, ok := t.touching[id]; !ok {
		return false
	}
	delete(t.touching, id)
	return true
}

func (t *ContactTracker) Touching() int {
	if t == nil {
		return 0
	}
	return len(t.touching)
}

func (t *ContactTracker) EverTouched() int {
	if t == nil {
		return 0
	}
	return len(t.ever)
}

func (t *ContactTracker) IsTouching(id ObjectID) bool {
	if t == nil {
		return false
	}
	_, ok := t.touching[id]
	return ok
}

func (t *ContactTracker) HasTouched(id ObjectID) bool {
	if t == nil {
		return false
	}
	_, ok := t.ever[id]
	return ok
}

// TouchingIDs returns the touching set in ascending order.
func (t *ContactTracker) TouchingIDs() []ObjectID {
	if t == nil {
		return nil
	}
	return sortedIDs(t.touching)
}

// EverTouchedIDs returns the ever-touched set in ascending order.
func (t *ContactTracker) EverTouchedIDs() []ObjectID {
	if t == nil {
		return nil
	}
	return sortedIDs(t.ever)
}

func sortedIDs(set map[ObjectID]struct{}) []ObjectID {
	out := make([]ObjectID, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
