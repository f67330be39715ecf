package slingshot

import "github.com/jakecoffman/cp"

// Trail is a fixed-capacity ring of recent positions.
type Trail struct {
	buf   []cp.Vector
	start int
	n     int
}

func NewTrail(capacity int) *Trail {
	if capacity <= 0 {
		capacity = 1
	}
	return &Trail{buf: make([]cp.Vector, capacity)}
}

// Push appends p, evicting the oldest point when full.
func (t *Trail) Push(p cp.Vector) {
	if t == nil {
		return
	}
	if t.n < len(t.buf) {
		t.buf[(t.start+t.n)%len(t.buf)] = p
		t.n++
		return
	}
	t.buf[t.start] = p
	t.start = (t.start + 1) % len(t.buf)
}

func (t *Trail) Len() int {
	if t == nil {
		return 0
	}
	return t.n
}

func (t *Trail) Reset() {
	if t == nil {
		return
	}
	t.start = 0
	t.n = 0
}

// Points returns the stored positions, oldest first.
func (t *Trail) Points() []cp.Vector {
	if t == nil || t.n == 0 {
		return nil
	}
	out := make([]cp.Vector, t.n)
	for i := 0; i < t.n; i++ {
		out[i] = t.buf[(t.start+i)%len(t.buf)]
	}
	return out
}
