package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/milk9111/slingcritter/gameplay"
	"github.com/milk9111/slingcritter/physics"
	"github.com/milk9111/slingcritter/slingshot"
	"gopkg.in/yaml.v3"
)

const TuningFile = "tuning.yaml"

// LoadSpec decodes filename on top of base, so keys missing from the file
// keep their base values.
func LoadSpec[T any](filename string, base T) (T, error) {
	data, err := Load(filename)
	if err != nil {
		return base, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	spec := base
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return base, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// Tuning gathers every gameplay constant that can be changed without a
// rebuild.
type Tuning struct {
	Physics   PhysicsSpec                             `yaml:"physics"`
	Materials map[physics.Material]physics.Properties `yaml:"materials"`
	Scoring   gameplay.Scoring                        `yaml:"scoring"`
	Slingshot slingshot.Config                        `yaml:"slingshot"`
	Camera    CameraSpec                              `yaml:"camera"`
	Render    RenderSpec                              `yaml:"render"`
	Audio     AudioSpec                               `yaml:"audio"`
}

type PhysicsSpec struct {
	Gravity    float64              `yaml:"gravity"`
	Damping    float64              `yaml:"damping"`
	Iterations uint                 `yaml:"iterations"`
	Cleanup    physics.CleanupRules `yaml:"cleanup"`
}

type CameraSpec struct {
	Lerp float64 `yaml:"lerp"`
	MinY float64 `yaml:"min_y"`
	MaxY float64 `yaml:"max_y"`
}

type RenderSpec struct {
	Sky     *YAMLColor `yaml:"sky"`
	HUDText *YAMLColor `yaml:"hud_text"`
	HUDBar  *YAMLColor `yaml:"hud_bar"`
}

type AudioSpec struct {
	Volume float64 `yaml:"volume"`
	Muted  bool    `yaml:"muted"`
}

// DefaultTuning mirrors the built-in constants of each package.
func DefaultTuning() Tuning {
	pc := physics.DefaultConfig()
	return Tuning{
		Physics: PhysicsSpec{
			Gravity:    pc.Gravity,
			Damping:    pc.Damping,
			Iterations: pc.Iterations,
			Cleanup:    pc.Cleanup,
		},
		Materials: physics.DefaultMaterials(),
		Scoring:   gameplay.DefaultScoring(),
		Slingshot: slingshot.DefaultConfig(),
		Camera:    CameraSpec{Lerp: 0.1, MinY: 0, MaxY: 1200},
		Audio:     AudioSpec{Volume: 0.5},
	}
}

// LoadTuning reads tuning.yaml over the defaults.
func LoadTuning() (Tuning, error) {
	return LoadSpec(TuningFile, DefaultTuning())
}

// PhysicsConfig converts the tuning into a physics.World config.
func (t Tuning) PhysicsConfig() physics.Config {
	return physics.Config{
		Gravity:    t.Physics.Gravity,
		Damping:    t.Physics.Damping,
		Iterations: t.Physics.Iterations,
		Cleanup:    t.Physics.Cleanup,
		Materials:  t.Materials,
	}
}

// Or returns c, or def when c is unset.
func (c *YAMLColor) Or(def color.Color) color.Color {
	if c == nil || c.Color == nil {
		return def
	}
	return c.Color
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
