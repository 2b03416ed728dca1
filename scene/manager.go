// Package scene owns the scene build order and switches between scenes on
// request.
package scene

import (
	"errors"
	"fmt"
	"log"
	"slices"
	"sync"

	"github.com/milk9111/groundclear/groundwatch"
)

var (
	ErrUnknownScene  = errors.New("scene: unknown scene")
	ErrEndOfSequence = errors.New("scene: no scene after the last in the build order")
	ErrNoLoader      = errors.New("scene: loader not set")
)

// Loader builds the named scene. The manager only records the switch when
// the loader succeeds.
type Loader func(name string) error

// Manager tracks which scene of the build order is active.
type Manager struct {
	mu      sync.Mutex
	order   []string
	current int
	load    Loader
}

// NewManager returns a manager with no active scene.
func NewManager(order []string, load Loader) *Manager {
	return &Manager{
		order:   slices.Clone(order),
		current: -1,
		load:    load,
	}
}

func (m *Manager) SetLoader(load Loader) {
	m.mu.Lock()
	m.load = load
	m.mu.Unlock()
}

// Order returns a copy of the build order.
func (m *Manager) Order() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.order)
}

// Current returns the active scene's name and build index, or "" and -1.
func (m *Manager) Current() (string, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current < 0 {
		return "", -1
	}
	return m.order[m.current], m.current
}

// IndexOf returns the build index of name.
func (m *Manager) IndexOf(name string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.indexOf(name)
}

func (m *Manager) indexOf(name string) (int, error) {
	i := slices.Index(m.order, name)
	if i < 0 {
		return -1, fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}
	return i, nil
}

// LoadScene switches to the named scene.
func (m *Manager) LoadScene(name string) error {
	m.mu.Lock()
	i, err := m.indexOf(name)
	m.mu.Unlock()
	if err != nil {
		return err
	}
	return m.LoadIndex(i)
}

// LoadIndex switches to the scene at build index i.
func (m *Manager) LoadIndex(i int) error {
	m.mu.Lock()
	if i < 0 || i >= len(m.order) {
		m.mu.Unlock()
		return fmt.Errorf("%w: index %d of %d", ErrUnknownScene, i, len(m.order))
	}
	load := m.load
	name := m.order[i]
	m.mu.Unlock()

	if load == nil {
		return ErrNoLoader
	}
	if err := load(name); err != nil {
		return fmt.Errorf("scene: load %q: %w", name, err)
	}

	m.mu.Lock()
	m.current = i
	m.mu.Unlock()
	log.Printf("scene: loaded %q (index %d)", name, i)
	return nil
}

// LoadNext switches to the scene after the active one.
func (m *Manager) LoadNext() error {
	m.mu.Lock()
	next := m.current + 1
	n := len(m.order)
	m.mu.Unlock()
	if next >= n {
		return ErrEndOfSequence
	}
	return m.LoadIndex(next)
}

// Reload rebuilds the active scene.
func (m *Manager) Reload() error {
	m.mu.Lock()
	i := m.current
	m.mu.Unlock()
	if i < 0 {
		return fmt.Errorf("%w: nothing loaded", ErrUnknownScene)
	}
	return m.LoadIndex(i)
}

// Load resolves target against the build order and loads it.
func (m *Manager) Load(target groundwatch.SceneTarget) error {
	if target.Sequential() {
		return m.LoadNext()
	}
	return m.LoadScene(target.Name)
}

// RequestSceneTransition implements groundwatch.SceneRequester. Failures are
// logged and the active scene stays in place.
func (m *Manager) RequestSceneTransition(target groundwatch.SceneTarget) {
	if err := m.Load(target); err != nil {
		log.Printf("scene: transition to %s failed: %v", target, err)
	}
}
