package physics

import "fmt"

// Material names a preset of surface and mass properties.
type Material string

const (
	MaterialWood   Material = "wood"
	MaterialStone  Material = "stone"
	MaterialBird   Material = "bird"
	MaterialTarget Material = "target"
)

// Properties are the engine parameters a material maps to. Density is mass
// per square pixel.
type Properties struct {
	Density     float64 `yaml:"density"`
	Friction    float64 `yaml:"friction"`
	Restitution float64 `yaml:"restitution"`
}

var defaultMaterials = map[Material]Properties{
	MaterialWood:   {Density: 0.002, Friction: 0.4, Restitution: 0.1},
	MaterialStone:  {Density: 0.004, Friction: 0.5, Restitution: 0.05},
	MaterialBird:   {Density: 0.003, Friction: 0.3, Restitution: 0.2},
	MaterialTarget: {Density: 0.0025, Friction: 0.4, Restitution: 0.1},
}

// ParseMaterial maps a level file material name to a Material.
func ParseMaterial(s string) (Material, error) {
	m := Material(s)
	if _, ok := defaultMaterials[m]; !ok {
		return "", fmt.Errorf("physics: unknown material %q", s)
	}
	return m, nil
}

// ApplyMaterial returns the default properties for m. Unknown materials fall
// back to wood.
func ApplyMaterial(m Material) Properties {
	if p, ok := defaultMaterials[m]; ok {
		return p
	}
	return defaultMaterials[MaterialWood]
}

// DefaultMaterials returns a copy of the built-in material table.
func DefaultMaterials() map[Material]Properties {
	out := make(map[Material]Properties, len(defaultMaterials))
	for k, v := range defaultMaterials {
		out[k] = v
	}
	return out
}
