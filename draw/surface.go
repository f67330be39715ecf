// Package draw is the boundary between simulation code and whatever paints
// the frame. All coordinates are world pixels unless a method says otherwise.
package draw

import "image/color"

// Surface is implemented by the platform renderer.
type Surface interface {
	FillCircle(x, y, r float64, clr color.Color)
	StrokeCircle(x, y, r, width float64, clr color.Color)
	// FillRect fills a w×h rectangle centred at (cx, cy) rotated by angle
	// radians.
	FillRect(cx, cy, w, h, angle float64, clr color.Color)
	Line(x1, y1, x2, y2, width float64, clr color.Color)
	// Text draws in screen space, unaffected by the camera.
	Text(s string, x, y float64, clr color.Color)
}

// Palette used by the world renderers.
var (
	Sky    = color.NRGBA{R: 0x87, G: 0xce, B: 0xeb, A: 0xff}
	Ground = color.NRGBA{R: 0x55, G: 0x8b, B: 0x2f, A: 0xff}
	Wall   = color.NRGBA{R: 0x44, G: 0x44, B: 0x44, A: 0xff}
	Wood   = color.NRGBA{R: 0xa0, G: 0x6a, B: 0x2c, A: 0xff}
	Stone  = color.NRGBA{R: 0x8a, G: 0x8a, B: 0x8a, A: 0xff}
	Bird   = color.NRGBA{R: 0xd6, G: 0x28, B: 0x28, A: 0xff}
	Target = color.NRGBA{R: 0x6b, G: 0xc2, B: 0x3b, A: 0xff}
	Band   = color.NRGBA{R: 0x4a, G: 0x2c, B: 0x0f, A: 0xff}
	Trail  = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x90}
	Aim    = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xc0}
	HUD    = color.NRGBA{R: 0x10, G: 0x10, B: 0x10, A: 0xff}
)
