package slingshot

import (
	"math"

	"github.com/charmbracelet/log"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/slingcritter/camera"
	"github.com/milk9111/slingcritter/common"
	"github.com/milk9111/slingcritter/input"
	"github.com/milk9111/slingcritter/physics"
)

// State is the launcher's position in the aim/launch cycle.
type State int

const (
	// Idle: a bird sits at the anchor waiting for a pull.
	Idle State = iota
	// Aiming: the pointer is down and the bird follows the pull point.
	Aiming
	// Launched: the bird is in flight and being watched until it settles.
	Launched
	// Exhausted: no birds remain.
	Exhausted
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Aiming:
		return "aiming"
	case Launched:
		return "launched"
	case Exhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// World is the part of the physics adapter the launcher needs.
type World interface {
	CreateCircle(kind physics.Kind, x, y, r float64, mat physics.Material, static bool) *physics.Body
	SetStatic(b *physics.Body, static bool)
	SetPosition(b *physics.Body, x, y float64)
	SetVelocity(b *physics.Body, v cp.Vector)
	Contains(b *physics.Body) bool
	Gravity() float64
}

// Follower is the part of the camera the launcher drives.
type Follower interface {
	Follow(target camera.Target, lerp float64)
	Unfollow()
}

// fixedPoint is a camera target that never moves.
type fixedPoint cp.Vector

func (p fixedPoint) Position() cp.Vector {
	return cp.Vector(p)
}

// Config tunes a Slingshot. The anchor and power fields come from the level
// file, the rest from the tuning file.
type Config struct {
	AnchorX float64 `yaml:"-"`
	AnchorY float64 `yaml:"-"`
	MaxPull float64 `yaml:"-"`
	PowerK  float64 `yaml:"-"`

	BirdRadius float64 `yaml:"bird_radius"`
	TrailSize  int     `yaml:"trail_size"`
	// MinPull is the shortest pull that still launches. Shorter releases
	// return the bird to the anchor.
	MinPull float64 `yaml:"min_pull"`
	// SettleSpeedSq is the squared speed (px/s)² under which a flying bird
	// counts as settled.
	SettleSpeedSq float64 `yaml:"settle_speed_sq"`
	// MaxFlight is the flight time in seconds after which a bird is
	// considered settled regardless of speed. Zero disables it.
	MaxFlight  float64 `yaml:"max_flight"`
	FollowLerp float64 `yaml:"follow_lerp"`
	// ReturnLerp eases the camera back to the anchor after a bird settles.
	ReturnLerp float64 `yaml:"-"`

	PreviewSteps int     `yaml:"preview_steps"`
	PreviewDT    float64 `yaml:"preview_dt"`
	// The preview stops below GroundY or once it is MaxX away horizontally.
	GroundY float64 `yaml:"-"`
	MaxX    float64 `yaml:"-"`
}

// DefaultConfig returns the tuning defaults without anchor or power, which
// come from the level.
func DefaultConfig() Config {
	return Config{
		BirdRadius:    16,
		TrailSize:     40,
		MinPull:       5,
		SettleSpeedSq: 36,
		MaxFlight:     8,
		FollowLerp:    0.08,
		ReturnLerp:    camera.DefaultLerp,
		PreviewSteps:  30,
		PreviewDT:     0.08,
		GroundY:       common.GroundY,
		MaxX:          common.WorldWidth,
	}
}

// Slingshot owns the bird currently on or launched from the sling.
type Slingshot struct {
	cfg    Config
	anchor cp.Vector
	world  World
	cam    Follower
	logger *log.Logger

	birdsAvailable func() bool
	onLaunch       func()

	state    State
	current  *physics.Body
	lastPull *cp.Vector
	flight   float64
	trail    *Trail
	launches int
}

// New creates the launcher and puts the first bird on it if one is
// available. cam may be nil. The camera is left alone until the first
// launch; while the pointer is held it never moves, so a still pointer
// keeps a still pull.
func New(cfg Config, world World, cam Follower, birdsAvailable func() bool, onLaunch func()) *Slingshot {
	def := DefaultConfig()
	if cfg.BirdRadius <= 0 {
		cfg.BirdRadius = def.BirdRadius
	}
	if cfg.TrailSize <= 0 {
		cfg.TrailSize = def.TrailSize
	}
	if cfg.SettleSpeedSq <= 0 {
		cfg.SettleSpeedSq = def.SettleSpeedSq
	}
	if cfg.FollowLerp <= 0 {
		cfg.FollowLerp = def.FollowLerp
	}
	if cfg.ReturnLerp <= 0 {
		cfg.ReturnLerp = def.ReturnLerp
	}
	if cfg.PreviewSteps <= 0 {
		cfg.PreviewSteps = def.PreviewSteps
	}
	if cfg.PreviewDT <= 0 {
		cfg.PreviewDT = def.PreviewDT
	}
	if cfg.GroundY == 0 {
		cfg.GroundY = def.GroundY
	}
	if cfg.MaxX == 0 {
		cfg.MaxX = def.MaxX
	}
	if birdsAvailable == nil {
		birdsAvailable = func() bool { return true }
	}

	s := &Slingshot{
		cfg:            cfg,
		anchor:         cp.Vector{X: cfg.AnchorX, Y: cfg.AnchorY},
		world:          world,
		cam:            cam,
		logger:         log.WithPrefix("slingshot"),
		birdsAvailable: birdsAvailable,
		onLaunch:       onLaunch,
		trail:          NewTrail(cfg.TrailSize),
	}
	s.nextBird()
	return s
}

func (s *Slingshot) State() State {
	if s == nil {
		return Exhausted
	}
	return s.state
}

// Anchor returns the rest position of the bird.
func (s *Slingshot) Anchor() cp.Vector {
	return s.anchor
}

// Current returns the bird on the sling or in flight, or nil.
func (s *Slingshot) Current() *physics.Body {
	if s == nil {
		return nil
	}
	return s.current
}

// HasActiveBird reports whether a bird is on the sling or still in flight.
func (s *Slingshot) HasActiveBird() bool {
	return s != nil && s.current != nil
}

// Launches returns how many birds have been fired.
func (s *Slingshot) Launches() int {
	return s.launches
}

// Position is the camera follow point: the current bird, or the anchor when
// there is none.
func (s *Slingshot) Position() cp.Vector {
	if s == nil {
		return cp.Vector{}
	}
	if s.current != nil && s.current.Alive() {
		return s.current.Position()
	}
	return s.anchor
}

// Trail returns the recorded flight path, oldest first.
func (s *Slingshot) Trail() []cp.Vector {
	return s.trail.Points()
}

// PullPoint returns the pull position for ptr, or nil when the pointer is
// not held.
func (s *Slingshot) PullPoint(ptr input.State) *cp.Vector {
	if !ptr.IsDown || ptr.Current == nil {
		return nil
	}
	p := PullPoint(s.anchor, cp.Vector{X: ptr.Current.X, Y: ptr.Current.Y}, s.cfg.MaxPull)
	return &p
}

// LaunchVelocity returns the velocity a release at pull would give.
func (s *Slingshot) LaunchVelocity(pull cp.Vector) cp.Vector {
	return LaunchVelocity(s.anchor, pull, s.cfg.MaxPull, s.cfg.PowerK)
}

// Update advances the launcher by one fixed step using the pointer snapshot
// for this frame.
func (s *Slingshot) Update(dt float64, ptr input.State) {
	if s == nil {
		return
	}
	switch s.state {
	case Idle, Aiming:
		s.updateAim(ptr)
	case Launched:
		s.updateFlight(dt)
	}
}

func (s *Slingshot) updateAim(ptr input.State) {
	if s.current == nil {
		return
	}
	if pull := s.PullPoint(ptr); pull != nil {
		if s.state != Aiming && s.cam != nil {
			s.cam.Unfollow()
		}
		s.state = Aiming
		s.lastPull = pull
		s.world.SetPosition(s.current, pull.X, pull.Y)
		return
	}
	if s.state != Aiming {
		return
	}

	pull := s.lastPull
	s.lastPull = nil
	if ptr.Current == nil || pull == nil || pull.Distance(s.anchor) < s.cfg.MinPull {
		s.state = Idle
		s.world.SetPosition(s.current, s.anchor.X, s.anchor.Y)
		return
	}
	s.release(*pull)
}

func (s *Slingshot) release(pull cp.Vector) {
	v := s.LaunchVelocity(pull)
	s.world.SetStatic(s.current, false)
	s.world.SetVelocity(s.current, v)
	s.state = Launched
	s.flight = 0
	s.launches++
	s.trail.Reset()
	s.logger.Debug("launch", "bird", s.current, "vx", v.X, "vy", v.Y)
	if s.onLaunch != nil {
		s.onLaunch()
	}
	if s.cam != nil {
		s.cam.Follow(s, s.cfg.FollowLerp)
	}
}

func (s *Slingshot) updateFlight(dt float64) {
	s.flight += dt
	bird := s.current
	if bird == nil || !s.world.Contains(bird) {
		s.settle("removed")
		return
	}
	s.trail.Push(bird.Position())
	if bird.Velocity().LengthSq() < s.cfg.SettleSpeedSq {
		s.settle("stopped")
		return
	}
	if s.cfg.MaxFlight > 0 && s.flight >= s.cfg.MaxFlight {
		s.settle("timeout")
	}
}

func (s *Slingshot) settle(reason string) {
	s.logger.Debug("settled", "bird", s.current, "reason", reason, "flight", s.flight)
	s.current = nil
	if s.cam != nil {
		s.cam.Follow(fixedPoint(s.anchor), s.cfg.ReturnLerp)
	}
	s.nextBird()
}

func (s *Slingshot) nextBird() {
	if !s.birdsAvailable() {
		s.state = Exhausted
		return
	}
	bird := s.world.CreateCircle(physics.KindBird, s.anchor.X, s.anchor.Y, s.cfg.BirdRadius, physics.MaterialBird, false)
	s.world.SetStatic(bird, true)
	s.world.SetPosition(bird, s.anchor.X, s.anchor.Y)
	s.current = bird
	s.state = Idle
}

// Preview returns the predicted flight path from the anchor for the current
// pull, or nil when not aiming.
func (s *Slingshot) Preview(ptr input.State) []cp.Vector {
	if s == nil || s.state != Aiming {
		return nil
	}
	pull := s.PullPoint(ptr)
	if pull == nil {
		return nil
	}
	return s.Trajectory(s.anchor, s.LaunchVelocity(*pull))
}

// Trajectory samples a ballistic path from origin with initial velocity v.
// Sampling stops once the path drops below the ground line or leaves the
// world horizontally.
func (s *Slingshot) Trajectory(origin, v cp.Vector) []cp.Vector {
	g := common.Gravity
	if s.world != nil {
		g = s.world.Gravity()
	}
	return Trajectory(origin, v, g, s.cfg.PreviewSteps, s.cfg.PreviewDT, s.cfg.GroundY, s.cfg.MaxX)
}

// PullPoint clamps p to within maxPull of anchor, keeping its direction.
func PullPoint(anchor, p cp.Vector, maxPull float64) cp.Vector {
	d := p.Sub(anchor)
	dist := d.Length()
	if dist <= maxPull || dist == 0 {
		return p
	}
	return anchor.Add(d.Mult(maxPull / dist))
}

// LaunchVelocity is opposite to the pull direction with magnitude
// powerK·min(maxPull, |pull-anchor|). A zero pull gives zero velocity.
func LaunchVelocity(anchor, pull cp.Vector, maxPull, powerK float64) cp.Vector {
	d := pull.Sub(anchor)
	dist := d.Length()
	if dist == 0 {
		return cp.Vector{}
	}
	mag := powerK * math.Min(maxPull, dist)
	return d.Mult(-mag / dist)
}

// Trajectory integrates a projectile under gravity g for up to steps samples
// of dt seconds.
func Trajectory(origin, v cp.Vector, g float64, steps int, dt, groundY, maxX float64) []cp.Vector {
	pts := make([]cp.Vector, 0, steps)
	p := origin
	for i := 0; i < steps; i++ {
		p.X += v.X * dt
		p.Y += v.Y*dt + 0.5*g*dt*dt
		v.Y += g * dt
		if p.Y > groundY || math.Abs(p.X-origin.X) > maxX {
			break
		}
		pts = append(pts, p)
	}
	return pts
}
