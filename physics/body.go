package physics

import (
	"fmt"

	"github.com/jakecoffman/cp"
)

// Kind is the closed set of roles a simulated body can play.
type Kind int

const (
	KindGround Kind = iota
	KindWall
	KindBird
	KindBlock
	KindTarget

	kindCount
)

func (k Kind) String() string {
	switch k {
	case KindGround:
		return "ground"
	case KindWall:
		return "wall"
	case KindBird:
		return "bird"
	case KindBlock:
		return "block"
	case KindTarget:
		return "target"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

func (k Kind) collisionType() cp.CollisionType {
	return cp.CollisionType(k) + 1
}

// ShapeKind distinguishes circle bodies from rectangles.
type ShapeKind int

const (
	ShapeCircle ShapeKind = iota
	ShapeRect
)

// Body is one rigid body owned by a World.
type Body struct {
	ID       int
	Kind     Kind
	Material Material
	Shape    ShapeKind

	// Radius is set for circles, Width and Height for rectangles.
	Radius float64
	Width  float64
	Height float64

	// HP is only meaningful for blocks.
	HP float64

	// Data carries an owner-defined tag (the gameplay layer keeps its
	// per-body state here).
	Data any

	body    *cp.Body
	shape   *cp.Shape
	alive   bool
	pending bool
}

// Alive reports whether the body is still part of its world.
func (b *Body) Alive() bool {
	return b != nil && b.alive && !b.pending
}

func (b *Body) Position() cp.Vector {
	if b == nil || b.body == nil {
		return cp.Vector{}
	}
	return b.body.Position()
}

func (b *Body) Velocity() cp.Vector {
	if b == nil || b.body == nil {
		return cp.Vector{}
	}
	return b.body.Velocity()
}

func (b *Body) Angle() float64 {
	if b == nil || b.body == nil {
		return 0
	}
	return b.body.Angle()
}

// Static reports whether the body is unaffected by forces, either because
// it was created static or because it is pinned.
func (b *Body) Static() bool {
	if b == nil || b.body == nil {
		return true
	}
	return b.body.GetType() != cp.BODY_DYNAMIC
}

// Speed returns the magnitude of the linear velocity.
func (b *Body) Speed() float64 {
	return b.Velocity().Length()
}

func (b *Body) String() string {
	if b == nil {
		return "<nil body>"
	}
	return fmt.Sprintf("%s#%d", b.Kind, b.ID)
}
