package gameplay

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/milk9111/slingcritter/camera"
	"github.com/milk9111/slingcritter/common"
	"github.com/milk9111/slingcritter/input"
	"github.com/milk9111/slingcritter/levels"
	"github.com/milk9111/slingcritter/physics"
	"github.com/milk9111/slingcritter/slingshot"
)

// LevelSource fetches level descriptions. *levels.Loader satisfies it.
type LevelSource interface {
	Load(ctx context.Context, id string) (*levels.Description, error)
	Next(id string) (string, bool)
}

// Navigator switches scenes. *scene.Manager satisfies it.
type Navigator interface {
	Go(name string, arg any) error
	Generation() uint64
}

type LoadState int

const (
	LoadPending LoadState = iota
	LoadReady
	LoadFailed
	LoadStale
)

func (s LoadState) String() string {
	switch s {
	case LoadPending:
		return "pending"
	case LoadReady:
		return "ready"
	case LoadFailed:
		return "failed"
	case LoadStale:
		return "stale"
	}
	return "unknown"
}

type SessionConfig struct {
	Physics   physics.Config
	Scoring   Scoring
	Slingshot slingshot.Config

	CameraMinY float64
	CameraMaxY float64
	// CameraLerp eases the camera back to the anchor between birds.
	CameraLerp float64

	// FailScene is where the session sends the player when the level
	// cannot be loaded.
	FailScene string
}

// SessionHooks are optional callbacks for sound and effects.
type SessionHooks struct {
	OnTarget func(points int)
	OnBlock  func(points int)
	OnLaunch func()
}

type loadResult struct {
	generation uint64
	desc       *levels.Description
	err        error
}

// Session is one attempt at a level. The description loads on a goroutine
// and is picked up by Poll on the game goroutine; a result that arrives
// after the navigator has moved on is dropped.
type Session struct {
	id     string
	cfg    SessionConfig
	src    LevelSource
	nav    Navigator
	cam    *camera.Camera
	hooks  SessionHooks
	logger *log.Logger

	cancel context.CancelFunc
	loaded chan loadResult
	state  LoadState
	err    error

	world *physics.World
	model *Model
	sling *slingshot.Slingshot
	run   RunState
}

func NewSession(id string, cfg SessionConfig, src LevelSource, nav Navigator, cam *camera.Camera, hooks SessionHooks) *Session {
	if cam == nil {
		cam = camera.New(common.BaseWidth, common.BaseHeight)
	}
	s := &Session{
		id:     id,
		cfg:    cfg,
		src:    src,
		nav:    nav,
		cam:    cam,
		hooks:  hooks,
		logger: log.WithPrefix("session"),
		loaded: make(chan loadResult, 1),
	}
	s.world = physics.NewWorld(cfg.Physics)
	s.world.CreateGround(common.WorldWidth/2, common.GroundY+common.GroundThickness/2, common.WorldWidth, common.GroundThickness)
	s.world.CreateWorldBoundaries(common.WorldWidth, common.WorldHeight)
	s.model = NewModel(s.world, cfg.Scoring)
	return s
}

// Start begins loading the level, tagged with the navigator's current
// generation.
func (s *Session) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.cam.Unfollow()

	gen := s.nav.Generation()
	go func() {
		desc, err := s.model.Load(ctx, s.src, s.id)
		s.loaded <- loadResult{generation: gen, desc: desc, err: err}
	}()
	s.logger.Info("loading", "id", s.id)
}

// Stop cancels a load still in flight and releases the camera.
func (s *Session) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.cam.Unfollow()
}

// Poll picks up a finished load without blocking. A failed load sends the
// navigator to FailScene.
func (s *Session) Poll() LoadState {
	if s.state != LoadPending {
		return s.state
	}
	select {
	case res := <-s.loaded:
		if res.generation != s.nav.Generation() {
			s.logger.Debug("dropping stale load", "id", s.id)
			s.state = LoadStale
			return s.state
		}
		if res.err != nil {
			s.logger.Error("load failed", "id", s.id, "err", res.err)
			s.err = res.err
			s.state = LoadFailed
			if err := s.nav.Go(s.cfg.FailScene, nil); err != nil {
				s.logger.Error("leave failed level", "scene", s.cfg.FailScene, "err", err)
			}
			return s.state
		}
		s.setup(res.desc)
	default:
	}
	return s.state
}

func (s *Session) setup(desc *levels.Description) {
	s.run = NewRunState(len(desc.Birds), len(desc.Targets))

	s.model.OnBlockBroken(func(points int) {
		s.run.AddScore(points)
		if s.hooks.OnBlock != nil {
			s.hooks.OnBlock(points)
		}
	})
	s.model.SpawnFromData(desc, func(points int) {
		s.run.AddScore(points)
		if s.hooks.OnTarget != nil {
			s.hooks.OnTarget(points)
		}
	})
	s.run.TargetsRemaining = s.model.TargetsRemaining()

	s.cam.SetBounds(camera.Bounds{
		MinX: camera.Edge(desc.Camera.MinX),
		MaxX: camera.Edge(desc.Camera.MaxX),
		MinY: camera.Edge(s.cfg.CameraMinY),
		MaxY: camera.Edge(s.cfg.CameraMaxY),
	})
	s.cam.LookAt(desc.Camera.StartX, desc.Camera.StartY)

	cfg := s.cfg.Slingshot
	cfg.AnchorX = desc.Slingshot.X
	cfg.AnchorY = desc.Slingshot.Y
	cfg.MaxPull = desc.Slingshot.MaxPull
	cfg.PowerK = desc.Slingshot.PowerK
	if s.cfg.CameraLerp > 0 {
		cfg.ReturnLerp = s.cfg.CameraLerp
	}
	// The camera stays put while aiming; the slingshot takes it over on
	// launch.
	s.sling = slingshot.New(cfg, s.world, s.cam,
		func() bool { return s.run.BirdsRemaining > 0 },
		func() {
			s.run.UseBird()
			if s.hooks.OnLaunch != nil {
				s.hooks.OnLaunch()
			}
		},
	)

	s.state = LoadReady
	s.logger.Info("level ready", "id", desc.ID, "birds", s.run.BirdsRemaining, "targets", s.run.TargetsRemaining)
}

// Step advances a ready session by one fixed step and reports the run
// status. Physics moves first so the slingshot sees this step's contacts
// and removals.
func (s *Session) Step(dt float64, ptr input.State) Status {
	if s.state != LoadReady {
		return Playing
	}
	s.world.Step(dt)
	s.model.Reconcile()
	s.sling.Update(dt, ptr)
	s.run.TargetsRemaining = s.model.TargetsRemaining()
	s.cam.Update(dt)
	return Check(s.run, s.sling.HasActiveBird())
}

// Outcome summarizes a finished run. Stars and the next level are only
// filled in for a win.
func (s *Session) Outcome(st Status) Outcome {
	out := Outcome{
		LevelID:    s.id,
		FinalScore: s.run.Score,
		Won:        st == Won,
	}
	if out.Won {
		out.Stars = s.model.StarsForScore(s.run.Score)
		if next, ok := s.src.Next(s.id); ok {
			out.NextLevelID = next
		}
	}
	return out
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) State() LoadState {
	return s.state
}

// Err returns the load error after a failed load.
func (s *Session) Err() error {
	return s.err
}

func (s *Session) Ready() bool {
	return s.state == LoadReady
}

func (s *Session) World() *physics.World {
	return s.world
}

func (s *Session) Model() *Model {
	return s.model
}

// Sling is nil until the level is ready.
func (s *Session) Sling() *slingshot.Slingshot {
	return s.sling
}

func (s *Session) Run() RunState {
	return s.run
}
