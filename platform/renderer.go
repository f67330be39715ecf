// Package platform binds the engine-independent game packages to ebiten.
package platform

import (
	"errors"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/slingcritter/camera"
	"github.com/milk9111/slingcritter/draw"
	"golang.org/x/image/font/basicfont"
)

// ErrSurfaceUnavailable is returned when a renderer cannot be built.
var ErrSurfaceUnavailable = errors.New("platform: drawing surface unavailable")

// ImageSurface is a draw.Surface backed by an ebiten image. Scenes that
// draw ebitenui widgets or raw vector shapes assert for it.
type ImageSurface interface {
	draw.Surface
	Image() *ebiten.Image
}

// Renderer draws world-space primitives onto the bound screen, offset by
// the camera.
type Renderer struct {
	cam    *camera.Camera
	screen *ebiten.Image
	pixel  *ebiten.Image
	face   text.Face
	clear  color.Color
}

// NewRenderer creates a renderer that views the world through cam.
func NewRenderer(cam *camera.Camera) (*Renderer, error) {
	if cam == nil {
		return nil, ErrSurfaceUnavailable
	}
	if w, h := cam.Viewport(); w <= 0 || h <= 0 {
		return nil, ErrSurfaceUnavailable
	}
	pixel := ebiten.NewImage(1, 1)
	pixel.Fill(color.White)
	return &Renderer{
		cam:   cam,
		pixel: pixel,
		face:  text.NewGoXFace(basicfont.Face7x13),
		clear: draw.Sky,
	}, nil
}

// Bind sets the image the next frame is drawn on.
func (r *Renderer) Bind(screen *ebiten.Image) {
	r.screen = screen
}

// SetClearColor sets the colour BeginFrame fills the screen with.
func (r *Renderer) SetClearColor(c color.Color) {
	if c != nil {
		r.clear = c
	}
}

func (r *Renderer) Camera() *camera.Camera {
	return r.cam
}

func (r *Renderer) BeginFrame() {
	if r.screen == nil {
		return
	}
	r.screen.Fill(r.clear)
}

func (r *Renderer) Surface() draw.Surface {
	return r
}

func (r *Renderer) EndFrame() {
	r.screen = nil
}

func (r *Renderer) Image() *ebiten.Image {
	return r.screen
}

// Face is the font used for Text.
func (r *Renderer) Face() text.Face {
	return r.face
}

func (r *Renderer) toScreen(x, y float64) (float32, float32) {
	sx, sy := r.cam.WorldToScreen(x, y)
	return float32(sx), float32(sy)
}

func (r *Renderer) FillCircle(x, y, radius float64, clr color.Color) {
	if r.screen == nil {
		return
	}
	sx, sy := r.toScreen(x, y)
	vector.FillCircle(r.screen, sx, sy, float32(radius), clr, true)
}

func (r *Renderer) StrokeCircle(x, y, radius, width float64, clr color.Color) {
	if r.screen == nil {
		return
	}
	sx, sy := r.toScreen(x, y)
	vector.StrokeCircle(r.screen, sx, sy, float32(radius), float32(width), clr, true)
}

// FillRect scales a single white pixel into the rotated rectangle.
func (r *Renderer) FillRect(cx, cy, w, h, angle float64, clr color.Color) {
	if r.screen == nil {
		return
	}
	sx, sy := r.cam.WorldToScreen(cx, cy)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-0.5, -0.5)
	op.GeoM.Scale(w, h)
	op.GeoM.Rotate(angle)
	op.GeoM.Translate(sx, sy)
	op.ColorScale.ScaleWithColor(clr)
	op.Filter = ebiten.FilterLinear
	r.screen.DrawImage(r.pixel, op)
}

func (r *Renderer) Line(x1, y1, x2, y2, width float64, clr color.Color) {
	if r.screen == nil {
		return
	}
	ax, ay := r.toScreen(x1, y1)
	bx, by := r.toScreen(x2, y2)
	vector.StrokeLine(r.screen, ax, ay, bx, by, float32(width), clr, true)
}

func (r *Renderer) Text(s string, x, y float64, clr color.Color) {
	if r.screen == nil {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(r.screen, s, r.face, op)
}

// ScreenRect fills an axis-aligned rectangle in screen space.
func (r *Renderer) ScreenRect(x, y, w, h float64, clr color.Color) {
	if r.screen == nil {
		return
	}
	vector.FillRect(r.screen, float32(x), float32(y), float32(w), float32(h), clr, false)
}
