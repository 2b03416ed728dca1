package groundwatch

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrUnresolvableContact  = errors.New("groundwatch: contact has no physical identity")
	ErrInvalidConfiguration = errors.New("groundwatch: invalid configuration")
	ErrDoubleTransition     = errors.New("groundwatch: transition already fired")
)

const (
	DefaultClassificationTag = "FallingAsset"
	DefaultExpectedCount     = 15
	DefaultStartDelay        = 3 * time.Second
)

// Config holds the recognised watcher options.
type Config struct {
	// ClassificationTag restricts tracking to objects with this tag. Empty
	// tracks every object with a physical body.
	ClassificationTag string
	// ExpectedCount is how many distinct objects must touch the ground.
	ExpectedCount int
	// StartDelay is the grace period before monitoring begins.
	StartDelay time.Duration
	// NextScene names the scene to load. Empty loads the next one in the
	// build order.
	NextScene string
}

// DefaultConfig mirrors the values the scene scripts shipped with.
func DefaultConfig() Config {
	return Config{
		ClassificationTag: DefaultClassificationTag,
		ExpectedCount:     DefaultExpectedCount,
		StartDelay:        DefaultStartDelay,
	}
}

// Validate reports every out-of-range option. None of them are fatal;
// Normalized clamps them.
func (c Config) Validate() error {
	var errs []error
	if c.ExpectedCount <= 0 {
		errs = append(errs, fmt.Errorf("%w: expected count %d is not positive", ErrInvalidConfiguration, c.ExpectedCount))
	}
	if c.StartDelay < 0 {
		errs = append(errs, fmt.Errorf("%w: start delay %s is negative", ErrInvalidConfiguration, c.StartDelay))
	}
	return errors.Join(errs...)
}

// Normalized returns c with ExpectedCount clamped to at least one and
// StartDelay to at least zero.
func (c Config) Normalized() Config {
	c.ExpectedCount = max(1, c.ExpectedCount)
	c.StartDelay = max(0, c.StartDelay)
	return c
}

// Target is the scene request issued when the gate fires.
func (c Config) Target() SceneTarget {
	return SceneTarget{Name: c.NextScene}
}
