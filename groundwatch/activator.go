package groundwatch

import "time"

// DelayedActivator turns monitoring on once a start delay has elapsed.
type DelayedActivator struct {
	delay   time.Duration
	elapsed time.Duration
	active  bool
}

// NewDelayedActivator starts the timer. A delay of zero or less is active
// immediately.
func NewDelayedActivator(delay time.Duration) *DelayedActivator {
	if delay < 0 {
		delay = 0
	}
	return &DelayedActivator{delay: delay, active: delay == 0}
}

// Advance adds dt to the elapsed time and reports true on the call that
// activates monitoring. Later calls return false.
func (a *DelayedActivator) Advance(dt time.Duration) bool {
	if a == nil || a.active {
		return false
	}
	if dt > 0 {
		a.elapsed += dt
	}
	if a.elapsed < a.delay {
		return false
	}
	a.active = true
	return true
}

func (a *DelayedActivator) Active() bool {
	return a != nil && a.active
}

func (a *DelayedActivator) Elapsed() time.Duration {
	if a == nil {
		return 0
	}
	return a.elapsed
}

// Remaining is the time left before activation.
func (a *DelayedActivator) Remaining() time.Duration {
	if a == nil || a.active {
		return 0
	}
	return a.delay - a.elapsed
}
