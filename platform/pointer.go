package platform

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/slingcritter/camera"
	"github.com/milk9111/slingcritter/input"
)

// PointerSource feeds the left mouse button and the first touch into an
// input.Pointer in world coordinates.
type PointerSource struct {
	ptr *input.Pointer
	cam *camera.Camera

	touchIDs []ebiten.TouchID
	touch    ebiten.TouchID
	touching bool
	mouse    bool
}

func NewPointerSource(cam *camera.Camera) *PointerSource {
	return &PointerSource{ptr: &input.Pointer{}, cam: cam}
}

// Pointer returns the tracked pointer.
func (s *PointerSource) Pointer() *input.Pointer {
	return s.ptr
}

// State is a snapshot for this frame.
func (s *PointerSource) State() input.State {
	return s.ptr.State()
}

// Poll reads this tick's mouse and touch state. Call once per ebiten
// Update before the scene manager advances.
func (s *PointerSource) Poll(now time.Time) {
	if s.pollTouch(now) {
		return
	}

	cx, cy := ebiten.CursorPosition()
	x, y := s.cam.ScreenToWorld(float64(cx), float64(cy))
	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		s.mouse = true
		s.ptr.Press(x, y, now)
	case s.mouse && inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft):
		s.mouse = false
		s.ptr.Release(x, y, now)
	default:
		s.ptr.Move(x, y, now)
	}
}

// pollTouch reports whether touch input owned this tick.
func (s *PointerSource) pollTouch(now time.Time) bool {
	s.touchIDs = ebiten.AppendTouchIDs(s.touchIDs[:0])

	if s.touching {
		for _, id := range s.touchIDs {
			if id == s.touch {
				tx, ty := ebiten.TouchPosition(id)
				x, y := s.cam.ScreenToWorld(float64(tx), float64(ty))
				s.ptr.Move(x, y, now)
				return true
			}
		}
		// The tracked finger lifted; release at its last position.
		s.touching = false
		st := s.ptr.State()
		if st.Current != nil {
			s.ptr.Release(st.Current.X, st.Current.Y, now)
		} else {
			s.ptr.Cancel()
		}
		return true
	}

	if len(s.touchIDs) == 0 {
		return false
	}
	s.touch = s.touchIDs[0]
	s.touching = true
	tx, ty := ebiten.TouchPosition(s.touch)
	x, y := s.cam.ScreenToWorld(float64(tx), float64(ty))
	s.ptr.Press(x, y, now)
	return true
}
