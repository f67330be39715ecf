package slingshot

import (
	"math"
	"testing"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/slingcritter/camera"
	"github.com/milk9111/slingcritter/input"
	"github.com/milk9111/slingcritter/physics"
)

func TestLaunchVelocity(t *testing.T) {
	tests := []struct {
		name string
		pull cp.Vector
		want cp.Vector
	}{
		{name: "pull left launches right", pull: cp.Vector{X: -80}, want: cp.Vector{X: 400}},
		{name: "pull down launches up", pull: cp.Vector{Y: 60}, want: cp.Vector{Y: -300}},
		{name: "beyond max pull is capped", pull: cp.Vector{X: -150}, want: cp.Vector{X: 500}},
		{name: "zero pull", pull: cp.Vector{}, want: cp.Vector{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LaunchVelocity(cp.Vector{}, tt.pull, 100, 5)
			if math.Abs(got.X-tt.want.X) > 1e-9 || math.Abs(got.Y-tt.want.Y) > 1e-9 {
				t.Fatalf("LaunchVelocity(%v) = %v, want %v", tt.pull, got, tt.want)
			}
		})
	}
}

func TestPullPointClamp(t *testing.T) {
	tests := []struct {
		name string
		p    cp.Vector
		want cp.Vector
	}{
		{name: "inside", p: cp.Vector{X: -30, Y: 40}, want: cp.Vector{X: -30, Y: 40}},
		{name: "clamped", p: cp.Vector{X: -150}, want: cp.Vector{X: -100}},
		{name: "clamped diagonal", p: cp.Vector{X: -90, Y: 120}, want: cp.Vector{X: -60, Y: 80}},
		{name: "at anchor", p: cp.Vector{}, want: cp.Vector{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PullPoint(cp.Vector{}, tt.p, 100)
			if math.Abs(got.X-tt.want.X) > 1e-9 || math.Abs(got.Y-tt.want.Y) > 1e-9 {
				t.Fatalf("PullPoint(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestTrajectory(t *testing.T) {
	pts := Trajectory(cp.Vector{X: 0, Y: 0}, cp.Vector{X: 100, Y: 0}, 1000, 30, 0.08, 1e9, 1e9)
	if len(pts) != 30 {
		t.Fatalf("expected 30 samples, got %d", len(pts))
	}
	first := pts[0]
	if math.Abs(first.X-8) > 1e-9 || math.Abs(first.Y-3.2) > 1e-9 {
		t.Fatalf("first sample = %v, want (8, 3.2)", first)
	}

	cut := Trajectory(cp.Vector{X: 0, Y: 0}, cp.Vector{X: 100, Y: 0}, 1000, 30, 0.08, 50, 1e9)
	for _, p := range cut {
		if p.Y > 50 {
			t.Fatalf("sample %v below ground line", p)
		}
	}
	if len(cut) >= 30 {
		t.Fatalf("expected the path to be cut at the ground")
	}
}

func TestTrail(t *testing.T) {
	tr := NewTrail(3)
	for i := 1; i <= 5; i++ {
		tr.Push(cp.Vector{X: float64(i)})
	}
	pts := tr.Points()
	if len(pts) != 3 || pts[0].X != 3 || pts[2].X != 5 {
		t.Fatalf("unexpected trail %v", pts)
	}
	tr.Reset()
	if tr.Len() != 0 || tr.Points() != nil {
		t.Fatalf("reset trail should be empty")
	}
}

type harness struct {
	world    *physics.World
	cam      *camera.Camera
	sling    *Slingshot
	ptr      input.Pointer
	birds    int
	launched int
	now      time.Time
}

func newHarness(birds int) *harness {
	h := &harness{
		world: physics.NewWorld(physics.DefaultConfig()),
		cam:   camera.New(1280, 720),
		birds: birds,
		now:   time.Unix(0, 0),
	}
	h.world.CreateGround(1600, 620, 3200, 40)
	cfg := DefaultConfig()
	cfg.AnchorX, cfg.AnchorY = 200, 450
	cfg.MaxPull, cfg.PowerK = 100, 5
	h.sling = New(cfg, h.world, h.cam,
		func() bool { return h.birds > 0 },
		func() { h.birds--; h.launched++ },
	)
	return h
}

func (h *harness) step() {
	h.now = h.now.Add(time.Second / 60)
	h.sling.Update(1.0/60, h.ptr.State())
	h.world.Step(1.0 / 60)
}

func TestAimAndRelease(t *testing.T) {
	h := newHarness(2)
	if h.sling.State() != Idle || !h.sling.HasActiveBird() {
		t.Fatalf("expected idle bird on the sling, got %s", h.sling.State())
	}

	h.ptr.Press(200, 450, h.now)
	h.ptr.Move(120, 450, h.now)
	h.step()
	if h.sling.State() != Aiming {
		t.Fatalf("expected aiming, got %s", h.sling.State())
	}
	if p := h.sling.Current().Position(); p.X != 120 || p.Y != 450 {
		t.Fatalf("bird should sit at the pull point, got %v", p)
	}
	if len(h.sling.Preview(h.ptr.State())) == 0 {
		t.Fatalf("expected a trajectory preview while aiming")
	}

	h.ptr.Release(120, 450, h.now)
	h.step()
	if h.sling.State() != Launched {
		t.Fatalf("expected launched, got %s", h.sling.State())
	}
	if h.launched != 1 || h.birds != 1 {
		t.Fatalf("launch callback ran %d times, birds left %d", h.launched, h.birds)
	}
	bird := h.sling.Current()
	if bird.Static() {
		t.Fatalf("launched bird should be dynamic")
	}
	if v := bird.Velocity(); v.X < 300 {
		t.Fatalf("expected rightward launch near 400 px/s, got %v", v)
	}
	if h.cam.Following() == nil {
		t.Fatalf("camera should follow the bird")
	}

	h.step()
	if len(h.sling.Trail()) == 0 {
		t.Fatalf("expected trail points during flight")
	}
}

func TestShortPullReturnsToAnchor(t *testing.T) {
	h := newHarness(1)
	h.ptr.Press(200, 450, h.now)
	h.ptr.Move(198, 450, h.now)
	h.step()
	h.ptr.Release(198, 450, h.now)
	h.step()
	if h.sling.State() != Idle || h.launched != 0 {
		t.Fatalf("short pull should not launch (state %s, launches %d)", h.sling.State(), h.launched)
	}
	if p := h.sling.Current().Position(); p.X != 200 || p.Y != 450 {
		t.Fatalf("bird should be back at the anchor, got %v", p)
	}
}

func TestReleaseWithoutPullDoesNothing(t *testing.T) {
	h := newHarness(1)
	h.ptr.Release(10, 10, h.now)
	h.step()
	if h.sling.State() != Idle || h.launched != 0 {
		t.Fatalf("unexpected launch without a pull")
	}
}

func TestSettleSpawnsNextBirdThenExhausts(t *testing.T) {
	h := newHarness(2)
	launch := func() {
		h.ptr.Press(200, 450, h.now)
		h.ptr.Move(120, 420, h.now)
		h.step()
		h.ptr.Release(120, 420, h.now)
		h.step()
	}

	launch()
	first := h.sling.Current()
	h.world.Remove(first)
	h.step()
	if h.sling.State() != Idle {
		t.Fatalf("expected a fresh bird after the first settled, got %s", h.sling.State())
	}
	if h.sling.Current() == first {
		t.Fatalf("expected a new bird body")
	}

	launch()
	h.world.Remove(h.sling.Current())
	h.step()
	if h.sling.State() != Exhausted || h.sling.HasActiveBird() {
		t.Fatalf("expected exhausted launcher, got %s", h.sling.State())
	}
	if p := h.sling.Position(); p.X != 200 || p.Y != 450 {
		t.Fatalf("exhausted launcher should report the anchor, got %v", p)
	}
}

func TestSettleOnTimeout(t *testing.T) {
	h := newHarness(2)
	h.sling.cfg.MaxFlight = 0.1
	h.ptr.Press(200, 450, h.now)
	h.ptr.Move(120, 300, h.now)
	h.step()
	h.ptr.Release(120, 300, h.now)
	h.step()
	for i := 0; i < 10; i++ {
		h.step()
	}
	if h.sling.State() != Idle {
		t.Fatalf("expected timeout to settle the bird, got %s", h.sling.State())
	}
}

func TestStillPointerKeepsPull(t *testing.T) {
	h := newHarness(1)
	h.cam.SetBounds(camera.Bounds{
		MinX: camera.Edge(0), MaxX: camera.Edge(3200),
		MinY: camera.Edge(0), MaxY: camera.Edge(1200),
	})
	h.cam.LookAt(640, 360)

	// The pointer stays on one screen pixel; its world point is re-derived
	// through the camera every step, as the platform layer does.
	sx, sy := h.cam.WorldToScreen(160, 470)
	h.ptr.Press(200, 450, h.now)
	startX, startY := h.cam.PosX, h.cam.PosY

	var dist float64
	for i := 0; i < 90; i++ {
		wx, wy := h.cam.ScreenToWorld(sx, sy)
		h.ptr.Move(wx, wy, h.now)
		h.step()
		h.cam.Update(1.0 / 60)
		dist = h.sling.Current().Position().Distance(h.sling.Anchor())
	}
	if h.sling.State() != Aiming {
		t.Fatalf("expected aiming, got %s", h.sling.State())
	}
	if want := math.Hypot(40, 20); math.Abs(dist-want) > 1e-6 {
		t.Fatalf("still pointer drifted to a %.1f px pull, want %.1f", dist, want)
	}
	if h.cam.PosX != startX || h.cam.PosY != startY {
		t.Fatalf("camera moved while aiming: (%v,%v) -> (%v,%v)", startX, startY, h.cam.PosX, h.cam.PosY)
	}
}

func TestCameraFollowsOnlyInFlight(t *testing.T) {
	h := newHarness(2)
	if h.cam.Following() != nil {
		t.Fatalf("camera should not follow before the first launch")
	}

	h.ptr.Press(200, 450, h.now)
	h.ptr.Move(120, 420, h.now)
	h.step()
	if h.cam.Following() != nil {
		t.Fatalf("camera should hold still while aiming")
	}

	h.ptr.Release(120, 420, h.now)
	h.step()
	if h.cam.Following() != camera.Target(h.sling) {
		t.Fatalf("camera should follow the launched bird")
	}

	h.world.Remove(h.sling.Current())
	h.step()
	target := h.cam.Following()
	if target == nil {
		t.Fatalf("camera should ease back after the bird settles")
	}
	if p := target.Position(); p.X != 200 || p.Y != 450 {
		t.Fatalf("camera returns to %v, want the anchor", p)
	}
	if h.cam.Lerp() != camera.DefaultLerp {
		t.Fatalf("return lerp = %v, want %v", h.cam.Lerp(), camera.DefaultLerp)
	}
}

func TestPreviewStartsAtAnchor(t *testing.T) {
	h := newHarness(1)
	h.ptr.Press(200, 450, h.now)
	h.ptr.Move(120, 450, h.now)
	h.step()

	pts := h.sling.Preview(h.ptr.State())
	if len(pts) == 0 {
		t.Fatalf("expected preview points")
	}
	v := h.sling.LaunchVelocity(cp.Vector{X: 120, Y: 450})
	dt := h.sling.cfg.PreviewDT
	g := h.world.Gravity()
	want := cp.Vector{
		X: 200 + v.X*dt,
		Y: 450 + v.Y*dt + 0.5*g*dt*dt,
	}
	if pts[0].Distance(want) > 1e-9 {
		t.Fatalf("first preview sample = %v, want %v", pts[0], want)
	}
}
