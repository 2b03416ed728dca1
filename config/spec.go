package config

import (
	"fmt"
	"image/color"
	"log"
	"path"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

// SceneSpec describes every entity of one scene.
type SceneSpec struct {
	Name       string            `yaml:"name" toml:"name"`
	Background *Color            `yaml:"background" toml:"background"`
	Entities   []EntityBuildSpec `yaml:"entities" toml:"entities"`
}

// EntityBuildSpec is one authored entity. Copies > 1 stamps the entity
// several times, offset by Spacing, named "<name>#<i>".
type EntityBuildSpec struct {
	Name       string         `yaml:"name" toml:"name"`
	Parent     string         `yaml:"parent" toml:"parent"`
	Copies     int            `yaml:"copies" toml:"copies"`
	Spacing    Vec            `yaml:"spacing" toml:"spacing"`
	Components map[string]any `yaml:"components" toml:"components"`
}

type Vec struct {
	X float64 `yaml:"x" toml:"x"`
	Y float64 `yaml:"y" toml:"y"`
}

// BuildOrder lists the scenes in the order sequential transitions follow.
type BuildOrder struct {
	Order []string `yaml:"order"`
}

func LoadBuildOrder() ([]string, error) {
	data, err := Load("scenes.yaml")
	if err != nil {
		return nil, fmt.Errorf("config: load scenes.yaml: %w", err)
	}
	var order BuildOrder
	if err := yaml.Unmarshal(data, &order); err != nil {
		return nil, fmt.Errorf("config: unmarshal scenes.yaml: %w", err)
	}
	if len(order.Order) == 0 {
		return nil, fmt.Errorf("config: scenes.yaml lists no scenes")
	}
	return order.Order, nil
}

// LoadSceneSpec loads the named scene. YAML and TOML are told apart by the
// file extension.
func LoadSceneSpec(scene string) (SceneSpec, error) {
	file, err := SceneFile(scene)
	if err != nil {
		return SceneSpec{}, fmt.Errorf("config: scene %q: %w", scene, err)
	}
	data, err := Load(file)
	if err != nil {
		return SceneSpec{}, fmt.Errorf("config: load %s: %w", file, err)
	}
	spec, err := ParseSceneSpec(file, data)
	if err != nil {
		return SceneSpec{}, err
	}
	if spec.Name == "" {
		spec.Name = scene
	}
	return spec, nil
}

// ParseSceneSpec decodes data according to filename's extension.
func ParseSceneSpec(filename string, data []byte) (SceneSpec, error) {
	var spec SceneSpec
	switch strings.ToLower(path.Ext(filename)) {
	case ".toml":
		md, err := toml.Decode(string(data), &spec)
		if err != nil {
			return SceneSpec{}, fmt.Errorf("config: unmarshal %s: %w", filename, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			log.Printf("config: %s: ignoring unknown keys %v", filename, undecoded)
		}
	default:
		if err := yaml.Unmarshal(data, &spec); err != nil {
			return SceneSpec{}, fmt.Errorf("config: unmarshal %s: %w", filename, err)
		}
	}
	if err := spec.Validate(); err != nil {
		return SceneSpec{}, fmt.Errorf("config: %s: %w", filename, err)
	}
	return spec, nil
}

// Validate checks that entity names are unique and parents exist.
func (s SceneSpec) Validate() error {
	names := make(map[string]bool, len(s.Entities))
	for i, e := range s.Entities {
		if e.Name == "" {
			continue
		}
		if names[e.Name] {
			return fmt.Errorf("entity %d: duplicate name %q", i, e.Name)
		}
		names[e.Name] = true
	}
	for i, e := range s.Entities {
		if e.Parent != "" && !names[e.Parent] {
			return fmt.Errorf("entity %d (%q): unknown parent %q", i, e.Name, e.Parent)
		}
		if e.Copies < 0 {
			return fmt.Errorf("entity %d (%q): negative copies", i, e.Name)
		}
	}
	return nil
}

// DecodeComponentSpec converts a generic components entry into T by
// round-tripping it through YAML.
func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

// Color accepts "#rrggbb", "#rrggbbaa" or an SVG colour name.
type Color struct {
	color.RGBA
}

func (c *Color) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))
	if named, ok := colornames.Map[strings.ToLower(s)]; ok {
		c.RGBA = named
		return nil
	}

	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return fmt.Errorf("invalid color %q", s)
	}
	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(hex[start:start+2], 16, 8)
		return uint8(v), err
	}
	var rgba [4]uint8
	rgba[3] = 255
	for i := 0; i < len(hex)/2; i++ {
		v, err := parse(i * 2)
		if err != nil {
			return fmt.Errorf("invalid color %q: %w", s, err)
		}
		rgba[i] = v
	}
	c.RGBA = color.RGBA{R: rgba[0], G: rgba[1], B: rgba[2], A: rgba[3]}
	return nil
}

func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}
	return c.UnmarshalText([]byte(value.Value))
}
