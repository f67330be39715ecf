package physics

import (
	"math"

	"github.com/charmbracelet/log"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/slingcritter/common"
)

// CleanupRules decide when a non-static body is culled from the world.
type CleanupRules struct {
	// Bodies that fall below FallY are removed.
	FallY float64 `yaml:"fall_y"`
	// Bodies outside [MinX, MaxX] are removed.
	MinX float64 `yaml:"min_x"`
	MaxX float64 `yaml:"max_x"`
	// Bodies resting below RestY with both velocity components under
	// RestSpeed (px/s) are removed.
	RestY     float64 `yaml:"rest_y"`
	RestSpeed float64 `yaml:"rest_speed"`
}

func DefaultCleanupRules() CleanupRules {
	return CleanupRules{
		FallY:     1000,
		MinX:      -200,
		MaxX:      3400,
		RestY:     700,
		RestSpeed: 6,
	}
}

// Config tunes a World. Zero values are replaced by defaults.
type Config struct {
	Gravity    float64
	Damping    float64
	Iterations uint
	Cleanup    CleanupRules
	Materials  map[Material]Properties
}

func DefaultConfig() Config {
	return Config{
		Gravity:    common.Gravity,
		Damping:    0.55,
		Iterations: 20,
		Cleanup:    DefaultCleanupRules(),
		Materials:  DefaultMaterials(),
	}
}

// Contact is reported once when two bodies start touching.
type Contact struct {
	A, B *Body
	// RelativeSpeed is |vA - vB| in px/s at the moment of contact.
	RelativeSpeed float64
}

// Other returns the body of the pair that is not b.
func (c Contact) Other(b *Body) *Body {
	if c.A == b {
		return c.B
	}
	return c.A
}

// World owns a Chipmunk space and every body in it. It is created per level
// and is not safe for concurrent use.
type World struct {
	space  *cp.Space
	cfg    Config
	logger *log.Logger

	nextID    int
	bodies    []*Body
	pending   []*Body
	listeners []func(Contact)
	stepping  bool
}

// NewWorld creates an empty world with gravity pointing down (+Y).
func NewWorld(cfg Config) *World {
	def := DefaultConfig()
	if cfg.Gravity == 0 {
		cfg.Gravity = def.Gravity
	}
	if cfg.Damping <= 0 || cfg.Damping > 1 {
		cfg.Damping = def.Damping
	}
	if cfg.Iterations == 0 {
		cfg.Iterations = def.Iterations
	}
	if cfg.Cleanup == (CleanupRules{}) {
		cfg.Cleanup = def.Cleanup
	}
	if cfg.Materials == nil {
		cfg.Materials = def.Materials
	}

	space := cp.NewSpace()
	space.Iterations = cfg.Iterations
	space.SetGravity(cp.Vector{X: 0, Y: cfg.Gravity})
	space.SetDamping(cfg.Damping)
	space.SleepTimeThreshold = 0.5

	w := &World{
		space:  space,
		cfg:    cfg,
		logger: log.WithPrefix("physics"),
	}
	w.setupHandlers()
	return w
}

// Space returns the underlying Chipmunk space.
func (w *World) Space() *cp.Space {
	if w == nil {
		return nil
	}
	return w.space
}

// Gravity returns the downward acceleration in px/s².
func (w *World) Gravity() float64 {
	if w == nil {
		return 0
	}
	return w.cfg.Gravity
}

// Material returns the properties this world uses for m.
func (w *World) Material(m Material) Properties {
	if w != nil {
		if p, ok := w.cfg.Materials[m]; ok {
			return p
		}
	}
	return ApplyMaterial(m)
}

// SetMaterials replaces the material table for bodies created from now on.
func (w *World) SetMaterials(m map[Material]Properties) {
	if w == nil || m == nil {
		return
	}
	w.cfg.Materials = m
}

// SetCleanupRules replaces the culling thresholds.
func (w *World) SetCleanupRules(r CleanupRules) {
	if w == nil {
		return
	}
	w.cfg.Cleanup = r
}

// OnCollisionBegin subscribes fn to contact-begin events. Handlers run
// synchronously inside Step.
func (w *World) OnCollisionBegin(fn func(Contact)) {
	if w == nil || fn == nil {
		return
	}
	w.listeners = append(w.listeners, fn)
}

// Bodies returns the live bodies in creation order.
func (w *World) Bodies() []*Body {
	if w == nil {
		return nil
	}
	out := make([]*Body, 0, len(w.bodies))
	for _, b := range w.bodies {
		if b.Alive() {
			out = append(out, b)
		}
	}
	return out
}

// Contains reports whether b is a live body of this world.
func (w *World) Contains(b *Body) bool {
	if w == nil || b == nil || b.body == nil {
		return false
	}
	return b.Alive() && w.space.ContainsBody(b.body)
}

// Step advances the simulation by dt seconds, removes bodies destroyed
// during the step and then culls bodies that left the playfield.
func (w *World) Step(dt float64) {
	if w == nil || w.space == nil || dt <= 0 {
		return
	}
	w.stepping = true
	w.space.Step(dt)
	w.stepping = false
	w.flush()
	w.Cleanup()
}

// Cleanup removes every non-static body that fell out of the world, flew
// past its horizontal limits, or came to rest below the rest line.
func (w *World) Cleanup() int {
	if w == nil {
		return 0
	}
	r := w.cfg.Cleanup
	var doomed []*Body
	for _, b := range w.bodies {
		if !b.Alive() || b.Static() {
			continue
		}
		p := b.Position()
		v := b.Velocity()
		switch {
		case p.Y > r.FallY:
		case p.X < r.MinX || p.X > r.MaxX:
		case math.Abs(v.X) < r.RestSpeed && math.Abs(v.Y) < r.RestSpeed && p.Y > r.RestY:
		default:
			continue
		}
		doomed = append(doomed, b)
	}
	for _, b := range doomed {
		w.logger.Debug("cleanup", "body", b, "x", b.Position().X, "y", b.Position().Y)
		w.Remove(b)
	}
	return len(doomed)
}

// Remove takes b out of the world. Inside a step the removal is deferred
// until the step finishes.
func (w *World) Remove(b *Body) {
	if w == nil || b == nil || !b.Alive() {
		return
	}
	if w.stepping {
		b.pending = true
		w.pending = append(w.pending, b)
		return
	}
	w.detach(b)
}

// Destroy is an alias of Remove kept for callers inside collision handlers.
func (w *World) Destroy(b *Body) {
	w.Remove(b)
}

func (w *World) flush() {
	if len(w.pending) == 0 {
		return
	}
	pending := w.pending
	w.pending = nil
	for _, b := range pending {
		w.detach(b)
	}
}

func (w *World) detach(b *Body) {
	if !b.alive {
		return
	}
	b.alive = false
	b.pending = false
	if b.shape != nil && w.space.ContainsShape(b.shape) {
		w.space.RemoveShape(b.shape)
	}
	if b.body != nil && w.space.ContainsBody(b.body) {
		w.space.RemoveBody(b.body)
	}
	for i, other := range w.bodies {
		if other == b {
			w.bodies = append(w.bodies[:i], w.bodies[i+1:]...)
			break
		}
	}
}
