package config

import (
	"time"

	"github.com/milk9111/groundclear/groundwatch"
)

// Seconds converts an authored number of seconds.
func Seconds(v float64) time.Duration {
	return time.Duration(v * float64(time.Second))
}

type TransformComponentSpec struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Rotation float64 `yaml:"rotation"`
}

type PhysicsBodyComponentSpec struct {
	Kind       string  `yaml:"kind"`
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	Radius     float64 `yaml:"radius"`
	Mass       float64 `yaml:"mass"`
	Friction   float64 `yaml:"friction"`
	Elasticity float64 `yaml:"elasticity"`
	Sensor     bool    `yaml:"sensor"`
}

type RenderableComponentSpec struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Color  *Color  `yaml:"color"`
	Layer  int     `yaml:"layer"`
	Hidden bool    `yaml:"hidden"`
}

type ClassificationComponentSpec struct {
	Tag string `yaml:"tag"`
}

type LevelBoundsComponentSpec struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// GroundWatchComponentSpec leaves unset fields at groundwatch's defaults.
type GroundWatchComponentSpec struct {
	ClassificationTag *string  `yaml:"classification_tag"`
	ExpectedCount     *int     `yaml:"expected_count"`
	StartDelay        *float64 `yaml:"start_delay"`
	NextScene         string   `yaml:"next_scene"`
	FilterScript      string   `yaml:"filter_script"`
}

func (s GroundWatchComponentSpec) Config() groundwatch.Config {
	cfg := groundwatch.DefaultConfig()
	if s.ClassificationTag != nil {
		cfg.ClassificationTag = *s.ClassificationTag
	}
	if s.ExpectedCount != nil {
		cfg.ExpectedCount = *s.ExpectedCount
	}
	if s.StartDelay != nil {
		cfg.StartDelay = Seconds(*s.StartDelay)
	}
	cfg.NextScene = s.NextScene
	return cfg
}

type RevealOnHitComponentSpec struct {
	Triggers    []string `yaml:"triggers"`
	Tag         string   `yaml:"tag"`
	Reveal      string   `yaml:"reveal"`
	HideOnStart *bool    `yaml:"hide_on_start"`
	RevealDelay float64  `yaml:"reveal_delay"`
	OnlyOnce    *bool    `yaml:"only_once"`
}

type HideOnKeyComponentSpec struct {
	Target       string `yaml:"target"`
	ListenForKey *bool  `yaml:"listen_for_key"`
	Key          string `yaml:"key"`
	OnlyOnce     *bool  `yaml:"only_once"`
}

type MoveComponentSpec struct {
	Entity   string  `yaml:"entity"`
	TargetY  float64 `yaml:"target_y"`
	Duration float64 `yaml:"duration"`
}

type ButtonActionComponentSpec struct {
	Label string              `yaml:"label"`
	Hide  []string            `yaml:"hide"`
	Moves []MoveComponentSpec `yaml:"moves"`
}

// BoolOr returns *b, or def when b is unset.
func BoolOr(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}
