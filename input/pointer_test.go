package input

import (
	"testing"
	"time"
)

func TestPointerLifecycle(t *testing.T) {
	var p Pointer
	t0 := time.Unix(100, 0)

	if s := p.State(); s.IsDown || s.Start != nil || s.Current != nil {
		t.Fatalf("zero pointer should be empty, got %+v", s)
	}

	p.Press(10, 20, t0)
	p.Move(30, 40, t0.Add(50*time.Millisecond))
	s := p.State()
	if !s.IsDown || s.Start.X != 10 || s.Start.Y != 20 || s.Current.X != 30 || s.Current.Y != 40 {
		t.Fatalf("unexpected state after drag: %+v %+v", s.Start, s.Current)
	}

	p.Release(35, 45, t0.Add(100*time.Millisecond))
	s = p.State()
	if s.IsDown {
		t.Fatalf("pointer should be up after release")
	}
	if s.Current == nil || s.Current.X != 35 {
		t.Fatalf("release point lost: %+v", s.Current)
	}

	p.Cancel()
	if s := p.State(); s.Current != nil || s.Start != nil {
		t.Fatalf("cancel should clear the gesture")
	}
}

func TestIsLongPress(t *testing.T) {
	tests := []struct {
		name string
		held time.Duration
		down bool
		want bool
	}{
		{name: "short", held: 150 * time.Millisecond, down: true, want: false},
		{name: "exact", held: 200 * time.Millisecond, down: true, want: true},
		{name: "long", held: time.Second, down: true, want: true},
		{name: "released", held: time.Second, down: false, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p Pointer
			t0 := time.Unix(0, 0)
			p.Press(0, 0, t0)
			if !tt.down {
				p.Release(0, 0, t0.Add(tt.held/2))
			}
			if got := p.IsLongPress(t0.Add(tt.held)); got != tt.want {
				t.Fatalf("IsLongPress = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStateIsACopy(t *testing.T) {
	var p Pointer
	p.Press(1, 2, time.Unix(0, 0))
	s := p.State()
	s.Start.X = 99
	if p.State().Start.X != 1 {
		t.Fatalf("State should not alias internal points")
	}
}
