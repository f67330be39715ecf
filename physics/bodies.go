package physics

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/slingcritter/common"
)

// CreateCircle adds a circle of radius r centred at (x, y).
func (w *World) CreateCircle(kind Kind, x, y, r float64, mat Material, static bool) *Body {
	if w == nil || w.space == nil {
		return nil
	}
	cpBody := w.newCPBody(x, y, static)
	shape := cp.NewCircle(cpBody, r, cp.Vector{})
	b := &Body{Kind: kind, Material: mat, Shape: ShapeCircle, Radius: r}
	w.attach(b, cpBody, shape)
	return b
}

// CreateRect adds a w×h box centred at (x, y).
func (w *World) CreateRect(kind Kind, x, y, width, height float64, mat Material, static bool) *Body {
	if w == nil || w.space == nil {
		return nil
	}
	cpBody := w.newCPBody(x, y, static)
	shape := cp.NewBox(cpBody, width, height, 0)
	b := &Body{Kind: kind, Material: mat, Shape: ShapeRect, Width: width, Height: height}
	w.attach(b, cpBody, shape)
	return b
}

// CreateGround adds the static ground slab centred at (x, y).
func (w *World) CreateGround(x, y, width, height float64) *Body {
	return w.CreateRect(KindGround, x, y, width, height, MaterialStone, true)
}

// CreateWorldBoundaries adds left and right walls and a ceiling around a
// worldW×worldH playfield.
func (w *World) CreateWorldBoundaries(worldW, worldH float64) []*Body {
	t := float64(common.WallThickness)
	return []*Body{
		w.CreateRect(KindWall, -t/2, worldH/2, t, worldH*2, MaterialStone, true),
		w.CreateRect(KindWall, worldW+t/2, worldH/2, t, worldH*2, MaterialStone, true),
		w.CreateRect(KindWall, worldW/2, -t/2, worldW+2*t, t, MaterialStone, true),
	}
}

// SetStatic pins b in place or releases it. A pinned dynamic body becomes
// kinematic so it can still be moved with SetPosition. Mass is recomputed
// from the shape density when it is released.
func (w *World) SetStatic(b *Body, static bool) {
	if w == nil || b == nil || b.body == nil || w.stepping {
		return
	}
	if static {
		if b.body.GetType() == cp.BODY_DYNAMIC {
			b.body.SetType(cp.BODY_KINEMATIC)
		}
		return
	}
	b.body.SetType(cp.BODY_DYNAMIC)
	b.body.Activate()
}

// SetPosition teleports a dynamic or pinned body.
func (w *World) SetPosition(b *Body, x, y float64) {
	if b == nil || b.body == nil {
		return
	}
	b.body.SetPosition(cp.Vector{X: x, Y: y})
}

// SetVelocity sets the linear velocity in px/s.
func (w *World) SetVelocity(b *Body, v cp.Vector) {
	if b == nil || b.body == nil {
		return
	}
	b.body.SetVelocityVector(v)
	b.body.Activate()
}

func (w *World) newCPBody(x, y float64, static bool) *cp.Body {
	var body *cp.Body
	if static {
		body = cp.NewStaticBody()
	} else {
		body = cp.NewBody(0, 0)
	}
	body.SetPosition(cp.Vector{X: x, Y: y})
	return body
}

func (w *World) attach(b *Body, cpBody *cp.Body, shape *cp.Shape) {
	props := w.Material(b.Material)
	shape.SetDensity(props.Density)
	shape.SetFriction(props.Friction)
	shape.SetElasticity(props.Restitution)
	shape.SetCollisionType(b.Kind.collisionType())
	shape.UserData = b
	cpBody.UserData = b

	w.space.AddBody(cpBody)
	w.space.AddShape(shape)

	w.nextID++
	b.ID = w.nextID
	b.body = cpBody
	b.shape = shape
	b.alive = true
	w.bodies = append(w.bodies, b)
}

func (w *World) setupHandlers() {
	for a := Kind(0); a < kindCount; a++ {
		for b := a; b < kindCount; b++ {
			h := w.space.NewCollisionHandler(a.collisionType(), b.collisionType())
			h.UserData = w
			h.BeginFunc = beginContact
		}
	}
}

func beginContact(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
	w, ok := userData.(*World)
	if !ok || w == nil {
		return true
	}
	sa, sb := arb.Shapes()
	a, _ := sa.UserData.(*Body)
	b, _ := sb.UserData.(*Body)
	if !a.Alive() || !b.Alive() {
		return true
	}
	c := Contact{A: a, B: b, RelativeSpeed: a.Velocity().Sub(b.Velocity()).Length()}
	for _, fn := range w.listeners {
		fn(c)
	}
	return true
}
