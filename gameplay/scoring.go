package gameplay

import "github.com/milk9111/slingcritter/physics"

// Scoring tunes the collision rules.
type Scoring struct {
	// DirectHit is awarded when a bird touches a target.
	DirectHit int `yaml:"direct_hit"`
	// ChainHit is awarded when a block knocks out a target or a target is
	// lost off the playfield.
	ChainHit int `yaml:"chain_hit"`
	// BlockBreak is awarded when a block's hit points run out.
	BlockBreak int `yaml:"block_break"`

	// Bird-on-block impacts below this relative speed (px/s) do no damage.
	BirdBlockMinSpeed float64 `yaml:"bird_block_min_speed"`
	// Block-on-target impacts below this relative speed do nothing.
	BlockTargetMinSpeed float64 `yaml:"block_target_min_speed"`
	// DamagePerSpeed converts excess impact speed into hit points.
	DamagePerSpeed float64 `yaml:"damage_per_speed"`
	// Toughness scales damage by block material. Missing entries use 1.
	Toughness map[physics.Material]float64 `yaml:"toughness"`
}

func DefaultScoring() Scoring {
	return Scoring{
		DirectHit:           1000,
		ChainHit:            500,
		BlockBreak:          100,
		BirdBlockMinSpeed:   180,
		BlockTargetMinSpeed: 300,
		DamagePerSpeed:      0.05,
		Toughness: map[physics.Material]float64{
			physics.MaterialWood:  1.0,
			physics.MaterialStone: 0.5,
		},
	}
}

func (s Scoring) toughness(m physics.Material) float64 {
	if f, ok := s.Toughness[m]; ok {
		return f
	}
	return 1
}

// Damage returns the hit points a bird impact at speed removes from a block
// of material m.
func (s Scoring) Damage(speed float64, m physics.Material) float64 {
	if speed <= s.BirdBlockMinSpeed {
		return 0
	}
	return (speed - s.BirdBlockMinSpeed) * s.DamagePerSpeed * s.toughness(m)
}
