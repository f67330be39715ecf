package gameplay

import "github.com/milk9111/slingcritter/physics"

type pairKey [2]physics.Kind

// rule handles a contact whose bodies are ordered to match the key.
type rule func(m *Model, a, b *physics.Body, speed float64)

// collisionRules is the complete policy. Pairs without an entry have no
// gameplay effect.
var collisionRules = map[pairKey]rule{
	{physics.KindBird, physics.KindTarget}:  birdHitsTarget,
	{physics.KindBird, physics.KindBlock}:   birdHitsBlock,
	{physics.KindBlock, physics.KindTarget}: blockHitsTarget,
}

// lookupRule finds the rule for a contact and returns the bodies in the
// order the rule expects.
func lookupRule(a, b *physics.Body) (rule, *physics.Body, *physics.Body) {
	if r, ok := collisionRules[pairKey{a.Kind, b.Kind}]; ok {
		return r, a, b
	}
	if r, ok := collisionRules[pairKey{b.Kind, a.Kind}]; ok {
		return r, b, a
	}
	return nil, nil, nil
}

func birdHitsTarget(m *Model, bird, target *physics.Body, speed float64) {
	m.destroyTarget(target, m.scoring.DirectHit, "direct")
}

func birdHitsBlock(m *Model, bird, block *physics.Body, speed float64) {
	dmg := m.scoring.Damage(speed, block.Material)
	if dmg <= 0 {
		return
	}
	block.HP -= dmg
	m.logger.Debug("block hit", "block", block, "speed", speed, "damage", dmg, "hp", block.HP)
	if block.HP <= 0 {
		m.destroyBlock(block)
	}
}

func blockHitsTarget(m *Model, block, target *physics.Body, speed float64) {
	if speed <= m.scoring.BlockTargetMinSpeed {
		return
	}
	m.destroyTarget(target, m.scoring.ChainHit, "chain")
}
