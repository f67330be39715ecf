package common

import "time"

// Logical render resolution. The window scales this to fit.
const (
	BaseWidth  = 1280
	BaseHeight = 720
)

// World extents shared by the physics boundaries and the level camera.
const (
	WorldWidth  = 3200
	WorldHeight = 720

	// GroundY is the top edge of the ground slab.
	GroundY         = 600
	GroundThickness = 40
	WallThickness   = 50
)

// Gravity is the downward acceleration in px/s².
const Gravity = 1000.0

// TPS is the simulation rate; FixedStep is one tick of it.
const (
	TPS       = 60
	FixedDT   = 1.0 / TPS
	FixedStep = time.Second / TPS
	MaxFrame  = 50 * time.Millisecond
)
