package groundwatch

import "sync/atomic"

// Gate fires its action once, the first time every expected object has
// touched the surface and none is touching it.
type Gate struct {
	expected int
	fired    atomic.Bool
	action   func()
}

// NewGate returns a gate for expectedCount objects. Counts below one are
// treated as one.
func NewGate(expectedCount int, action func()) *Gate {
	return &Gate{
		expected: max(1, expectedCount),
		action:   action,
	}
}

// Ready reports whether the completion predicate holds for t, regardless of
// whether the gate already fired.
func (g *Gate) Ready(t *ContactTracker) bool {
	if g == nil || t == nil {
		return false
	}
	return t.EverTouched() >= g.expected && t.Touching() == 0
}

// Evaluate checks the predicate and fires the action when it holds for the
// first time. It reports whether this call fired.
func (g *Gate) Evaluate(t *ContactTracker) bool {
	if g == nil || g.fired.Load() {
		return false
	}
	if !g.Ready(t) {
		return false
	}
	if !g.fired.CompareAndSwap(false, true) {
		return false
	}
	if g.action != nil {
		g.action()
	}
	return true
}

// Force fires the action without checking the predicate. It reports false
// when the gate had already fired.
func (g *Gate) Force() bool {
	if g == nil || !g.fired.CompareAndSwap(false, true) {
		return false
	}
	if g.action != nil {
		g.action()
	}
	return true
}

// Fired reports whether the action has run.
func (g *Gate) Fired() bool {
	return g != nil && g.fired.Load()
}

func (g *Gate) Expected() int {
	if g == nil {
		return 1
	}
	return g.expected
}
