package scene

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/milk9111/slingcritter/common"
)

// ErrUnknownScene is returned by Go for names missing from the registry.
var ErrUnknownScene = errors.New("scene: unknown scene")

type transition struct {
	name  string
	scene Scene
}

// Manager owns the active scene and drives it with a fixed-timestep
// accumulator. It must be used from a single goroutine.
type Manager struct {
	renderer Renderer
	registry *Registry
	logger   *log.Logger

	active     Scene
	activeName string
	generation uint64

	last    time.Time
	started bool
	acc     time.Duration
	step    time.Duration
	maxDT   time.Duration
	steps   uint64

	updating bool
	pending  *transition
	stopped  bool
}

// NewManager creates a manager rendering through r and resolving names in
// reg. A nil reg uses Default.
func NewManager(r Renderer, reg *Registry) *Manager {
	if reg == nil {
		reg = Default
	}
	return &Manager{
		renderer: r,
		registry: reg,
		logger:   log.WithPrefix("scene"),
		step:     common.FixedStep,
		maxDT:    common.MaxFrame,
	}
}

func (m *Manager) Renderer() Renderer {
	return m.renderer
}

// Active returns the current scene and its name.
func (m *Manager) Active() (Scene, string) {
	return m.active, m.activeName
}

// Generation changes on every scene transition. Asynchronous work started
// by a scene compares it before publishing results.
func (m *Manager) Generation() uint64 {
	return m.generation
}

// Steps returns the number of fixed updates run so far.
func (m *Manager) Steps() uint64 {
	return m.steps
}

// Stop marks the loop finished. The platform layer exits on the next frame.
func (m *Manager) Stop() {
	m.stopped = true
}

func (m *Manager) Stopped() bool {
	return m.stopped
}

// Frame advances the simulation to now and renders once.
func (m *Manager) Frame(now time.Time) int {
	n := m.Advance(now)
	m.Render()
	return n
}

// Advance runs as many fixed updates as the time since the previous call
// allows. The first call only records the time. Gaps longer than the frame
// cap are truncated so a stall cannot trigger a burst of updates.
func (m *Manager) Advance(now time.Time) int {
	if !m.started {
		m.started = true
		m.last = now
		return 0
	}
	dt := now.Sub(m.last)
	m.last = now
	if dt < 0 {
		dt = 0
	}
	if dt > m.maxDT {
		dt = m.maxDT
	}
	m.acc += dt

	n := 0
	for m.acc >= m.step {
		m.acc -= m.step
		m.update(common.FixedDT)
		n++
	}
	return n
}

func (m *Manager) update(dt float64) {
	m.steps++
	if m.active == nil {
		return
	}
	m.updating = true
	m.active.Update(dt)
	m.updating = false
	m.applyPending()
}

// Input hands the active scene this frame's edge-triggered input. It runs
// once per frame before Advance, however many fixed updates follow.
func (m *Manager) Input() {
	h, ok := m.active.(InputHandler)
	if !ok {
		return
	}
	m.updating = true
	h.HandleInput()
	m.updating = false
	m.applyPending()
}

func (m *Manager) applyPending() {
	p := m.pending
	if p == nil {
		return
	}
	m.pending = nil
	if err := m.swap(p.name, p.scene); err != nil {
		m.logger.Error("deferred transition failed", "scene", p.name, "err", err)
	}
}

// Render draws the active scene between BeginFrame and EndFrame.
func (m *Manager) Render() {
	if m.renderer == nil {
		return
	}
	m.renderer.BeginFrame()
	if m.active != nil {
		m.active.Draw(m.renderer.Surface())
	}
	m.renderer.EndFrame()
}

// SetScene disposes the current scene, activates s and initializes it.
// Called from inside a scene's Update or HandleInput the switch happens
// after that call returns.
func (m *Manager) SetScene(name string, s Scene) error {
	if s == nil {
		return fmt.Errorf("scene: set %s: nil scene", name)
	}
	if m.updating {
		m.pending = &transition{name: name, scene: s}
		return nil
	}
	return m.swap(name, s)
}

// Go builds the named scene from the registry and switches to it.
func (m *Manager) Go(name string, arg any) error {
	f, ok := m.registry.Lookup(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownScene, name)
	}
	s, err := f(m, arg)
	if err != nil {
		return fmt.Errorf("scene: build %s: %w", name, err)
	}
	return m.SetScene(name, s)
}

func (m *Manager) swap(name string, s Scene) error {
	if d, ok := m.active.(Disposer); ok {
		d.Dispose()
	}
	m.generation++
	m.active = s
	m.activeName = name
	m.logger.Debug("transition", "scene", name, "generation", m.generation)

	if in, ok := s.(Initializer); ok {
		if err := in.Init(); err != nil {
			return fmt.Errorf("scene: init %s: %w", name, err)
		}
	}
	return nil
}
