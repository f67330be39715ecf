package camera

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/slingcritter/common"
)

const (
	DefaultLerp = 0.1
	MinLerp     = 0.01
	MaxLerp     = 1.0
)

// Target is anything the camera can follow.
type Target interface {
	Position() cp.Vector
}

// Bounds limits the visible world region. A nil edge is unbounded.
type Bounds struct {
	MinX, MaxX *float64
	MinY, MaxY *float64
}

// Edge is a helper for building Bounds literals.
func Edge(v float64) *float64 {
	return &v
}

// Camera tracks the world point shown at the centre of the viewport.
type Camera struct {
	PosX float64
	PosY float64

	viewW float64
	viewH float64

	minX, maxX float64
	minY, maxY float64

	target Target
	lerp   float64
}

// New creates an unbounded camera for a viewW×viewH viewport centred on the
// viewport's own middle.
func New(viewW, viewH float64) *Camera {
	c := &Camera{
		viewW: viewW,
		viewH: viewH,
		lerp:  DefaultLerp,
	}
	c.PosX = viewW / 2.0
	c.PosY = viewH / 2.0
	c.SetBounds(Bounds{})
	return c
}

// Viewport returns the logical viewport size.
func (c *Camera) Viewport() (float64, float64) {
	return c.viewW, c.viewH
}

// SetViewport updates the viewport size and re-clamps.
func (c *Camera) SetViewport(w, h float64) {
	if w <= 0 || h <= 0 {
		return
	}
	c.viewW = w
	c.viewH = h
	c.ClampToBounds()
}

// LookAt moves the camera immediately and clamps it.
func (c *Camera) LookAt(x, y float64) {
	c.PosX = x
	c.PosY = y
	c.ClampToBounds()
}

func (c *Camera) SetBounds(b Bounds) {
	c.minX = edgeOr(b.MinX, math.Inf(-1))
	c.maxX = edgeOr(b.MaxX, math.Inf(1))
	c.minY = edgeOr(b.MinY, math.Inf(-1))
	c.maxY = edgeOr(b.MaxY, math.Inf(1))
	c.ClampToBounds()
}

// Follow makes the camera ease toward target on every Update. lerp is
// clamped to [MinLerp, MaxLerp].
func (c *Camera) Follow(target Target, lerp float64) {
	c.target = target
	c.lerp = common.Clamp(lerp, MinLerp, MaxLerp)
}

func (c *Camera) Unfollow() {
	c.target = nil
}

// Following returns the current follow target, if any.
func (c *Camera) Following() Target {
	return c.target
}

// Lerp returns the follow factor in use.
func (c *Camera) Lerp() float64 {
	return c.lerp
}

// Update eases toward the follow target. The factor is applied once per
// call, so the approach speed depends on the update rate.
func (c *Camera) Update(dt float64) {
	if c.target == nil {
		return
	}
	p := c.target.Position()
	c.PosX += (p.X - c.PosX) * c.lerp
	c.PosY += (p.Y - c.PosY) * c.lerp
	c.ClampToBounds()
}

// ClampToBounds keeps the viewport inside the bounds. When the viewport is
// larger than the bounds along an axis the position collapses to the lower
// limit.
func (c *Camera) ClampToBounds() {
	halfW := c.viewW / 2.0
	halfH := c.viewH / 2.0
	c.PosX = common.Clamp(c.PosX, c.minX+halfW, c.maxX-halfW)
	c.PosY = common.Clamp(c.PosY, c.minY+halfH, c.maxY-halfH)
}

// ViewTopLeft returns the world-space top-left of the current view.
func (c *Camera) ViewTopLeft() (float64, float64) {
	return c.PosX - c.viewW/2.0, c.PosY - c.viewH/2.0
}

// ScreenToWorld converts a viewport point to world coordinates.
func (c *Camera) ScreenToWorld(x, y float64) (float64, float64) {
	left, top := c.ViewTopLeft()
	return x + left, y + top
}

// WorldToScreen converts a world point to viewport coordinates.
func (c *Camera) WorldToScreen(x, y float64) (float64, float64) {
	left, top := c.ViewTopLeft()
	return x - left, y - top
}

func edgeOr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}
