// Package groundwatch detects when a set of falling objects has landed and
// then cleared a reference surface, and requests a scene change exactly once
// when that happens.
package groundwatch

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// State is the watcher's lifecycle position.
type State int

const (
	// StateIdle: the start delay has not elapsed. Contacts are recorded but
	// never evaluated.
	StateIdle State = iota
	StateMonitoring
	// StateTransitioned is terminal.
	StateTransitioned
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateMonitoring:
		return "monitoring"
	case StateTransitioned:
		return "transitioned"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// SceneTarget names the scene to advance to. An empty Name means the next
// scene in the build order.
type SceneTarget struct {
	Name string
}

func (t SceneTarget) Sequential() bool {
	return t.Name == ""
}

func (t SceneTarget) String() string {
	if t.Sequential() {
		return "next scene"
	}
	return fmt.Sprintf("scene %q", t.Name)
}

// SceneRequester receives the single transition request of a session.
type SceneRequester interface {
	RequestSceneTransition(target SceneTarget)
}

// SceneRequesterFunc adapts a function to SceneRequester.
type SceneRequesterFunc func(target SceneTarget)

func (f SceneRequesterFunc) RequestSceneTransition(target SceneTarget) {
	if f != nil {
		f(target)
	}
}

// Snapshot is a point-in-time copy of the watcher state.
type Snapshot struct {
	Session     string
	State       State
	Touching    []ObjectID
	EverTouched []ObjectID
	Expected    int
	Remaining   time.Duration
	Dropped     int
}

type Option func(*Watcher)

// WithFilter replaces the classification tag filter.
func WithFilter(f Filter) Option {
	return func(w *Watcher) {
		if f != nil {
			w.filter = f
		}
	}
}

func WithLogger(l *log.Logger) Option {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l
		}
	}
}

func WithSessionID(id string) Option {
	return func(w *Watcher) {
		if id != "" {
			w.session = id
		}
	}
}

// Watcher combines a ContactTracker, a Gate and a DelayedActivator into the
// idle -> monitoring -> transitioned state machine. The host feeds it
// contact events and frame ticks.
type Watcher struct {
	mu        sync.Mutex
	cfg       Config
	filter    Filter
	tracker   *ContactTracker
	gate      *Gate
	activator *DelayedActivator
	requester SceneRequester
	logger    *log.Logger
	session   string
	dropped   int
}

// New starts a watcher session. Out-of-range options are clamped and
// logged.
func New(cfg Config, requester SceneRequester, opts ...Option) *Watcher {
	w := &Watcher{
		filter:    TagFilter(cfg.ClassificationTag),
		tracker:   NewContactTracker(),
		requester: requester,
		logger:    log.Default(),
		session:   uuid.NewString(),
	}
	for _, opt := range opts {
		opt(w)
	}

	if err := cfg.Validate(); err != nil {
		w.logger.Printf("groundwatch: session %s: %v (clamped)", w.session, err)
	}
	w.cfg = cfg.Normalized()
	w.gate = NewGate(w.cfg.ExpectedCount, nil)
	w.activator = NewDelayedActivator(w.cfg.StartDelay)

	w.logger.Printf("groundwatch: session %s: started (expect %d, delay %s, tag %q)",
		w.session, w.cfg.ExpectedCount, w.cfg.StartDelay, w.cfg.ClassificationTag)
	return w
}

// OnContactBegin records that an object started touching the surface.
func (w *Watcher) OnContactBegin(c Contact) {
	w.handleContact(c, true)
}

// OnContactEnd records that an object stopped touching the surface.
func (w *Watcher) OnContactEnd(c Contact) {
	w.handleContact(c, false)
}

func (w *Watcher) handleContact(c Contact, begin bool) {
	if w == nil {
		return
	}
	w.mu.Lock()
	if c.Err() != nil {
		w.dropped++
		w.mu.Unlock()
		return
	}
	passes := w.filter.Passes(c)
	if begin {
		w.tracker.RegisterContactBegin(c.Object, passes)
	} else {
		w.tracker.RegisterContactEnd(c.Object, passes)
	}
	fire := w.activator.Active() && w.gate.Evaluate(w.tracker)
	seen := w.tracker.EverTouched()
	w.mu.Unlock()

	if fire {
		w.transition("ground clear", seen)
	}
}

// OnTick advances the start delay. The tick that ends the delay evaluates
// the gate once, so a ground that cleared during the delay still fires.
func (w *Watcher) OnTick(dt time.Duration) {
	if w == nil {
		return
	}
	w.mu.Lock()
	fire := false
	if w.activator.Advance(dt) {
		w.logger.Printf("groundwatch: session %s: monitoring (%d touching, %d seen)",
			w.session, w.tracker.Touching(), w.tracker.EverTouched())
		fire = w.gate.Evaluate(w.tracker)
	}
	seen := w.tracker.EverTouched()
	w.mu.Unlock()

	if fire {
		w.transition("ground clear", seen)
	}
}

// Fire requests the transition immediately, skipping the predicate. It
// returns ErrDoubleTransition when the session already transitioned.
func (w *Watcher) Fire() error {
	if w == nil {
		return nil
	}
	w.mu.Lock()
	forced := w.gate.Force()
	seen := w.tracker.EverTouched()
	w.mu.Unlock()
	if !forced {
		return ErrDoubleTransition
	}
	w.transition("forced", seen)
	return nil
}

func (w *Watcher) transition(reason string, seen int) {
	target := w.cfg.Target()
	w.logger.Printf("groundwatch: session %s: %s after %d objects, requesting %s",
		w.session, reason, seen, target)
	if w.requester != nil {
		w.requester.RequestSceneTransition(target)
	}
}

func (w *Watcher) State() State {
	if w == nil {
		return StateIdle
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stateLocked()
}

func (w *Watcher) stateLocked() State {
	switch {
	case w.gate.Fired():
		return StateTransitioned
	case w.activator.Active():
		return StateMonitoring
	default:
		return StateIdle
	}
}

func (w *Watcher) SessionID() string {
	if w == nil {
		return ""
	}
	return w.session
}

func (w *Watcher) Config() Config {
	if w == nil {
		return Config{}
	}
	return w.cfg
}

func (w *Watcher) Snapshot() Snapshot {
	if w == nil {
		return Snapshot{}
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return Snapshot{
		Session:     w.session,
		State:       w.stateLocked(),
		Touching:    w.tracker.TouchingIDs(),
		EverTouched: w.tracker.EverTouchedIDs(),
		Expected:    w.gate.Expected(),
		Remaining:   w.activator.Remaining(),
		Dropped:     w.dropped,
	}
}
