package gameplay

import (
	"image/color"

	"github.com/milk9111/slingcritter/draw"
	"github.com/milk9111/slingcritter/physics"
)

// DrawWorld paints every live body in the world.
func DrawWorld(dst draw.Surface, w *physics.World) {
	if dst == nil || w == nil {
		return
	}
	for _, b := range w.Bodies() {
		clr := bodyColor(b)
		p := b.Position()
		switch b.Shape {
		case physics.ShapeCircle:
			dst.FillCircle(p.X, p.Y, b.Radius, clr)
			if b.Kind == physics.KindTarget {
				drawFace(dst, p.X, p.Y, b.Radius)
			}
		case physics.ShapeRect:
			dst.FillRect(p.X, p.Y, b.Width, b.Height, b.Angle(), clr)
		}
	}
}

func bodyColor(b *physics.Body) color.Color {
	switch b.Kind {
	case physics.KindGround:
		return draw.Ground
	case physics.KindWall:
		return draw.Wall
	case physics.KindBird:
		return draw.Bird
	case physics.KindTarget:
		return draw.Target
	}
	if b.Material == physics.MaterialStone {
		return draw.Stone
	}
	return draw.Wood
}

func drawFace(dst draw.Surface, x, y, r float64) {
	eye := color.Black
	dst.FillCircle(x-r*0.3, y-r*0.2, r*0.15, eye)
	dst.FillCircle(x+r*0.3, y-r*0.2, r*0.15, eye)
	dst.FillCircle(x, y+r*0.25, r*0.25, color.NRGBA{R: 0x15, G: 0x80, B: 0x3d, A: 0xff})
}
