package slingshot

import (
	"image/color"

	"github.com/milk9111/slingcritter/draw"
	"github.com/milk9111/slingcritter/input"
)

const (
	postHeight = 70
	postWidth  = 12
	forkSpread = 14
)

// Draw paints the sling frame, its bands, the flight trail and the aim
// preview. It does not draw the bird body itself.
func (s *Slingshot) Draw(dst draw.Surface, ptr input.State) {
	if s == nil || dst == nil {
		return
	}
	ax, ay := s.anchor.X, s.anchor.Y
	dst.FillRect(ax, ay+postHeight/2, postWidth, postHeight, 0, draw.Band)

	leftX, rightX := ax-forkSpread, ax+forkSpread
	if s.state == Aiming && s.current != nil {
		p := s.current.Position()
		dst.Line(leftX, ay, p.X, p.Y, 4, draw.Band)
		dst.Line(rightX, ay, p.X, p.Y, 4, draw.Band)
	} else {
		dst.Line(leftX, ay, rightX, ay, 3, draw.Band)
	}

	pts := s.Trail()
	for i, p := range pts {
		a := uint8(40 + 180*(i+1)/len(pts))
		dst.FillCircle(p.X, p.Y, 3, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: a})
	}

	for _, p := range s.Preview(ptr) {
		dst.FillCircle(p.X, p.Y, 2.5, draw.Aim)
	}
}
