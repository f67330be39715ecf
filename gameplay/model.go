package gameplay

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/milk9111/slingcritter/levels"
	"github.com/milk9111/slingcritter/physics"
)

// DefaultStars are used when no level thresholds are loaded.
var DefaultStars = [3]float64{9999, 99999, 999999}

// Model turns a level description into bodies and applies the collision
// policy that scores them.
type Model struct {
	world   *physics.World
	scoring Scoring
	logger  *log.Logger

	desc     *levels.Description
	spawned  bool
	blocks   []*physics.Body
	targets  []*physics.Body
	gone     map[*physics.Body]bool
	remain   int
	onTarget func(points int)
	onBlock  func(points int)
}

func NewModel(world *physics.World, scoring Scoring) *Model {
	return &Model{
		world:   world,
		scoring: scoring,
		logger:  log.WithPrefix("gameplay"),
		gone:    make(map[*physics.Body]bool),
	}
}

// Load fetches and validates a level and keeps it for StarsForScore.
func (m *Model) Load(ctx context.Context, src LevelSource, id string) (*levels.Description, error) {
	desc, err := src.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	m.desc = desc
	return desc, nil
}

// Description returns the loaded level, or nil.
func (m *Model) Description() *levels.Description {
	if m == nil {
		return nil
	}
	return m.desc
}

// SetScoring replaces the rule tuning.
func (m *Model) SetScoring(s Scoring) {
	if m == nil {
		return
	}
	m.scoring = s
}

// OnBlockBroken registers a callback for block destruction points.
func (m *Model) OnBlockBroken(fn func(points int)) {
	m.onBlock = fn
}

// SpawnFromData creates the level's blocks and targets and starts applying
// the collision policy. onTargetDestroyed receives the points for each
// target destroyed.
func (m *Model) SpawnFromData(desc *levels.Description, onTargetDestroyed func(points int)) {
	if m == nil || m.world == nil || desc == nil {
		return
	}
	m.desc = desc
	m.onTarget = onTargetDestroyed

	for _, b := range desc.Blocks {
		mat, err := physics.ParseMaterial(b.Mat)
		if err != nil {
			mat = physics.MaterialWood
		}
		body := m.world.CreateRect(physics.KindBlock, b.X, b.Y, b.W, b.H, mat, false)
		body.HP = b.HP
		m.blocks = append(m.blocks, body)
	}
	for _, t := range desc.Targets {
		body := m.world.CreateCircle(physics.KindTarget, t.X, t.Y, t.R, physics.MaterialTarget, false)
		m.targets = append(m.targets, body)
	}
	m.remain = len(m.targets)

	if !m.spawned {
		m.world.OnCollisionBegin(m.handleContact)
	}
	m.spawned = true
	m.logger.Info("spawned level", "id", desc.ID, "blocks", len(m.blocks), "targets", len(m.targets))
}

func (m *Model) handleContact(c physics.Contact) {
	r, a, b := lookupRule(c.A, c.B)
	if r == nil {
		return
	}
	r(m, a, b, c.RelativeSpeed)
}

// Reconcile counts targets the world culled on its own (fallen or flung off
// the playfield) as destroyed. Call it after each physics step.
func (m *Model) Reconcile() {
	if m == nil {
		return
	}
	for _, t := range m.targets {
		if !m.gone[t] && !t.Alive() {
			m.markTargetGone(t, m.scoring.ChainHit, "lost")
		}
	}
}

// TargetsRemaining is zero until SpawnFromData has run.
func (m *Model) TargetsRemaining() int {
	if m == nil || !m.spawned {
		return 0
	}
	return m.remain
}

// Targets returns the live targets.
func (m *Model) Targets() []*physics.Body {
	return liveBodies(m.targets)
}

// Blocks returns the live blocks.
func (m *Model) Blocks() []*physics.Body {
	return liveBodies(m.blocks)
}

// StarsForScore rates score against the level thresholds: 3 at or above
// the third, 2 at or above the second, 1 at or above the first, else 0.
func (m *Model) StarsForScore(score int) int {
	th := DefaultStars
	if m != nil && m.desc != nil {
		th = m.desc.Goals.ScoreStars
	}
	return StarsFor(float64(score), th)
}

func StarsFor(score float64, th [3]float64) int {
	switch {
	case score >= th[2]:
		return 3
	case score >= th[1]:
		return 2
	case score >= th[0]:
		return 1
	default:
		return 0
	}
}

func (m *Model) destroyTarget(t *physics.Body, points int, how string) {
	if m.gone[t] || !t.Alive() {
		return
	}
	m.world.Destroy(t)
	m.markTargetGone(t, points, how)
}

func (m *Model) markTargetGone(t *physics.Body, points int, how string) {
	m.gone[t] = true
	if m.remain > 0 {
		m.remain--
	}
	m.logger.Debug("target destroyed", "target", t, "how", how, "points", points, "remaining", m.remain)
	if m.onTarget != nil {
		m.onTarget(points)
	}
}

func (m *Model) destroyBlock(b *physics.Body) {
	if m.gone[b] || !b.Alive() {
		return
	}
	m.gone[b] = true
	m.world.Destroy(b)
	if m.onBlock != nil {
		m.onBlock(m.scoring.BlockBreak)
	}
}

func liveBodies(in []*physics.Body) []*physics.Body {
	var out []*physics.Body
	for _, b := range in {
		if b.Alive() {
			out = append(out, b)
		}
	}
	return out
}
