// Package input normalizes mouse and touch into a single pointer.
package input

import "time"

// LongPress is how long a press must be held to count as a long press.
const LongPress = 200 * time.Millisecond

// Point is a position sample with the time it was taken.
type Point struct {
	X, Y float64
	Time time.Time
}

// State is a snapshot of the pointer taken once per frame.
type State struct {
	IsDown  bool
	Start   *Point
	Current *Point
}

// Pointer tracks press, drag and release for one pointer.
type Pointer struct {
	state State
}

// Press records a pointer going down at (x, y).
func (p *Pointer) Press(x, y float64, now time.Time) {
	pt := Point{X: x, Y: y, Time: now}
	cur := pt
	p.state = State{IsDown: true, Start: &pt, Current: &cur}
}

// Move updates the current position. Moves while up are tracked too so the
// renderer can show hover state.
func (p *Pointer) Move(x, y float64, now time.Time) {
	pt := Point{X: x, Y: y, Time: now}
	p.state.Current = &pt
}

// Release records the pointer going up. Start and Current keep the last
// positions so the release point is still available this frame.
func (p *Pointer) Release(x, y float64, now time.Time) {
	p.Move(x, y, now)
	p.state.IsDown = false
}

// Cancel drops the gesture without a release point.
func (p *Pointer) Cancel() {
	p.state = State{}
}

// State returns a copy of the pointer state.
func (p *Pointer) State() State {
	s := p.state
	if s.Start != nil {
		v := *s.Start
		s.Start = &v
	}
	if s.Current != nil {
		v := *s.Current
		s.Current = &v
	}
	return s
}

// IsLongPress reports whether the pointer has been held down for at least
// LongPress.
func (p *Pointer) IsLongPress(now time.Time) bool {
	if !p.state.IsDown || p.state.Start == nil {
		return false
	}
	return now.Sub(p.state.Start.Time) >= LongPress
}
