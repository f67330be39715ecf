package scene

import (
	"github.com/milk9111/slingcritter/camera"
	"github.com/milk9111/slingcritter/draw"
)

// Scene is one screen of the game. Update runs once per fixed step and
// Draw once per rendered frame.
type Scene interface {
	Update(dt float64)
	Draw(dst draw.Surface)
}

// Initializer is implemented by scenes that need setup after becoming
// active.
type Initializer interface {
	Init() error
}

// Disposer is implemented by scenes that hold resources to release when
// replaced.
type Disposer interface {
	Dispose()
}

// InputHandler is implemented by scenes that react to key presses or UI
// widgets. Just-pressed state is per frame, so it is read here rather than
// in Update.
type InputHandler interface {
	HandleInput()
}

// Renderer prepares the drawing surface for each frame.
type Renderer interface {
	// BeginFrame clears the target and applies the camera transform.
	BeginFrame()
	Surface() draw.Surface
	EndFrame()
	Camera() *camera.Camera
}
