package levels

import (
	"errors"
	"fmt"

	"github.com/milk9111/slingcritter/common"
)

const (
	MaxBirds   = 10
	MaxBlocks  = 200
	MaxTargets = 50
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("levels: invalid level")

// Description is the immutable data for one level as stored on disk.
type Description struct {
	ID        string    `json:"id"`
	World     World     `json:"world"`
	Camera    Camera    `json:"camera"`
	Slingshot Slingshot `json:"slingshot"`
	Birds     []Bird    `json:"birds"`
	Blocks    []Block   `json:"blocks"`
	Targets   []Target  `json:"targets"`
	Goals     Goals     `json:"goals"`
}

// World holds per-level environment settings. They are validated but the
// simulation currently runs with fixed gravity and no wind.
type World struct {
	Gravity float64 `json:"gravity"`
	Wind    float64 `json:"wind"`
}

type Camera struct {
	StartX float64 `json:"startX"`
	StartY float64 `json:"startY"`
	MinX   float64 `json:"minX"`
	MaxX   float64 `json:"maxX"`
}

type Slingshot struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	MaxPull float64 `json:"maxPull"`
	PowerK  float64 `json:"powerK"`
}

type Bird struct {
	Type string `json:"type"`
}

type Block struct {
	Shape string  `json:"shape"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	W     float64 `json:"w"`
	H     float64 `json:"h"`
	Mat   string  `json:"mat"`
	HP    float64 `json:"hp"`
}

type Target struct {
	Shape string  `json:"shape"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	R     float64 `json:"r"`
	Mat   string  `json:"mat"`
}

type Goals struct {
	DestroyTargets bool       `json:"destroyTargets"`
	ScoreStars     [3]float64 `json:"scoreStars"`
}

// Validate checks the value constraints of a decoded level. All violations
// are reported together.
func (d *Description) Validate() error {
	if d == nil {
		return fmt.Errorf("%w: nil description", ErrInvalid)
	}
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if d.ID == "" {
		fail("id must not be empty")
	}
	if !common.Finite(d.World.Gravity, d.World.Wind) {
		fail("world values must be finite")
	}
	if d.World.Gravity < 0 || d.World.Gravity > 5 {
		fail("world.gravity %v outside [0, 5]", d.World.Gravity)
	}
	if d.World.Wind < -5 || d.World.Wind > 5 {
		fail("world.wind %v outside [-5, 5]", d.World.Wind)
	}

	c := d.Camera
	if !common.Finite(c.StartX, c.StartY, c.MinX, c.MaxX) {
		fail("camera values must be finite")
	}
	if c.MaxX <= c.MinX {
		fail("camera.maxX must be > minX")
	}

	s := d.Slingshot
	if !common.Finite(s.X, s.Y, s.MaxPull, s.PowerK) {
		fail("slingshot values must be finite")
	}
	if s.MaxPull < 1 {
		fail("slingshot.maxPull %v must be >= 1", s.MaxPull)
	}
	if s.PowerK < 0.1 {
		fail("slingshot.powerK %v must be >= 0.1", s.PowerK)
	}

	if n := len(d.Birds); n < 1 || n > MaxBirds {
		fail("birds: need 1..%d entries, got %d", MaxBirds, n)
	}
	for i, b := range d.Birds {
		if b.Type != "basic" {
			fail("birds[%d].type %q is not a known bird", i, b.Type)
		}
	}

	if n := len(d.Blocks); n > MaxBlocks {
		fail("blocks: at most %d entries, got %d", MaxBlocks, n)
	}
	for i, b := range d.Blocks {
		if b.Shape != "rect" {
			fail("blocks[%d].shape %q must be rect", i, b.Shape)
		}
		if !common.Finite(b.X, b.Y, b.W, b.H, b.HP) {
			fail("blocks[%d] values must be finite", i)
		}
		if b.W < 5 || b.H < 5 {
			fail("blocks[%d] size %vx%v below 5", i, b.W, b.H)
		}
		if b.Mat != "wood" && b.Mat != "stone" {
			fail("blocks[%d].mat %q must be wood or stone", i, b.Mat)
		}
		if b.HP < 1 {
			fail("blocks[%d].hp %v must be >= 1", i, b.HP)
		}
	}

	if n := len(d.Targets); n < 1 || n > MaxTargets {
		fail("targets: need 1..%d entries, got %d", MaxTargets, n)
	}
	for i, t := range d.Targets {
		if t.Shape != "circle" {
			fail("targets[%d].shape %q must be circle", i, t.Shape)
		}
		if !common.Finite(t.X, t.Y, t.R) {
			fail("targets[%d] values must be finite", i)
		}
		if t.R < 5 {
			fail("targets[%d].r %v below 5", i, t.R)
		}
		if t.Mat != "target" {
			fail("targets[%d].mat %q must be target", i, t.Mat)
		}
	}

	st := d.Goals.ScoreStars
	if !common.Finite(st[:]...) {
		fail("goals.scoreStars must be finite")
	}
	if st[0] < 0 || st[1] < 0 || st[2] < 0 {
		fail("goals.scoreStars must be >= 0")
	}
	if !(st[0] < st[1] && st[1] < st[2]) {
		fail("goals.scoreStars must be strictly increasing")
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
}
