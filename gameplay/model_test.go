package gameplay

import (
	"math"
	"testing"

	"github.com/milk9111/slingcritter/levels"
	"github.com/milk9111/slingcritter/physics"
)

func testLevel() *levels.Description {
	return &levels.Description{
		ID:        "test-001",
		Camera:    levels.Camera{StartX: 640, StartY: 360, MaxX: 3200},
		Slingshot: levels.Slingshot{X: 200, Y: 470, MaxPull: 100, PowerK: 5},
		Birds:     []levels.Bird{{Type: "basic"}, {Type: "basic"}},
		Blocks: []levels.Block{
			{Shape: "rect", X: 900, Y: 550, W: 20, H: 100, Mat: "wood", HP: 40},
			{Shape: "rect", X: 1000, Y: 550, W: 20, H: 100, Mat: "stone", HP: 40},
		},
		Targets: []levels.Target{
			{Shape: "circle", X: 950, Y: 580, R: 18, Mat: "target"},
			{Shape: "circle", X: 1100, Y: 580, R: 18, Mat: "target"},
		},
		Goals: levels.Goals{DestroyTargets: true, ScoreStars: [3]float64{1000, 2500, 3000}},
	}
}

type fixture struct {
	world *physics.World
	model *Model
	score int
	bird  *physics.Body
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{world: physics.NewWorld(physics.DefaultConfig())}
	f.model = NewModel(f.world, DefaultScoring())
	f.model.OnBlockBroken(func(points int) { f.score += points })
	f.model.SpawnFromData(testLevel(), func(points int) { f.score += points })
	f.bird = f.world.CreateCircle(physics.KindBird, 200, 300, 16, physics.MaterialBird, false)
	return f
}

func (f *fixture) hit(a, b *physics.Body, speed float64) {
	f.model.handleContact(physics.Contact{A: a, B: b, RelativeSpeed: speed})
}

func TestStarsForScore(t *testing.T) {
	m := NewModel(nil, DefaultScoring())
	m.desc = testLevel()
	tests := []struct {
		score int
		want  int
	}{
		{score: 0, want: 0},
		{score: 500, want: 0},
		{score: 1000, want: 1},
		{score: 2499, want: 1},
		{score: 2500, want: 2},
		{score: 2999, want: 2},
		{score: 3000, want: 3},
		{score: 50000, want: 3},
	}
	for _, tt := range tests {
		if got := m.StarsForScore(tt.score); got != tt.want {
			t.Fatalf("StarsForScore(%d) = %d, want %d", tt.score, got, tt.want)
		}
	}

	empty := NewModel(nil, DefaultScoring())
	if got := empty.StarsForScore(9998); got != 0 {
		t.Fatalf("default thresholds: StarsForScore(9998) = %d, want 0", got)
	}
	if got := empty.StarsForScore(100000); got != 2 {
		t.Fatalf("default thresholds: StarsForScore(100000) = %d, want 2", got)
	}
}

func TestTargetsRemainingBeforeSpawn(t *testing.T) {
	m := NewModel(physics.NewWorld(physics.DefaultConfig()), DefaultScoring())
	if m.TargetsRemaining() != 0 {
		t.Fatalf("expected 0 targets before spawn")
	}
}

func TestDirectHitIsIdempotent(t *testing.T) {
	f := newFixture(t)
	if f.model.TargetsRemaining() != 2 {
		t.Fatalf("expected 2 targets after spawn, got %d", f.model.TargetsRemaining())
	}
	target := f.model.Targets()[0]

	f.hit(f.bird, target, 50)
	if f.score != 1000 || f.model.TargetsRemaining() != 1 {
		t.Fatalf("after hit score=%d remaining=%d", f.score, f.model.TargetsRemaining())
	}
	if target.Alive() {
		t.Fatalf("target should be removed from the world")
	}

	f.hit(target, f.bird, 50)
	f.model.Reconcile()
	if f.score != 1000 || f.model.TargetsRemaining() != 1 {
		t.Fatalf("second hit changed state: score=%d remaining=%d", f.score, f.model.TargetsRemaining())
	}
}

func TestBirdBlockDamage(t *testing.T) {
	tests := []struct {
		name    string
		block   int
		speed   float64
		wantHP  float64
		broken  bool
		wantPts int
	}{
		{name: "at threshold", block: 0, speed: 180, wantHP: 40},
		{name: "wood glancing", block: 0, speed: 380, wantHP: 30},
		{name: "stone glancing", block: 1, speed: 380, wantHP: 35},
		{name: "wood smashed", block: 0, speed: 1000, wantHP: -1, broken: true, wantPts: 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			block := f.model.Blocks()[tt.block]
			f.hit(block, f.bird, tt.speed)
			if tt.broken {
				if block.Alive() || f.score != tt.wantPts {
					t.Fatalf("expected broken block and %d points, alive=%v score=%d", tt.wantPts, block.Alive(), f.score)
				}
				return
			}
			if math.Abs(block.HP-tt.wantHP) > 1e-9 {
				t.Fatalf("HP = %v, want %v", block.HP, tt.wantHP)
			}
			if !block.Alive() {
				t.Fatalf("block should survive")
			}
		})
	}
}

func TestBlockTargetChain(t *testing.T) {
	f := newFixture(t)
	block := f.model.Blocks()[0]
	target := f.model.Targets()[0]

	f.hit(block, target, 300)
	if f.score != 0 || !target.Alive() {
		t.Fatalf("slow block contact should not destroy the target")
	}
	f.hit(target, block, 301)
	if f.score != 500 || target.Alive() || f.model.TargetsRemaining() != 1 {
		t.Fatalf("chain hit: score=%d alive=%v remaining=%d", f.score, target.Alive(), f.model.TargetsRemaining())
	}
}

func TestUnscoredPairs(t *testing.T) {
	f := newFixture(t)
	ground := f.world.CreateGround(1600, 620, 3200, 40)
	target := f.model.Targets()[0]
	f.hit(ground, target, 2000)
	f.hit(f.bird, ground, 2000)
	f.hit(f.model.Blocks()[0], f.model.Blocks()[1], 2000)
	if f.score != 0 || f.model.TargetsRemaining() != 2 {
		t.Fatalf("unscored pairs changed state: score=%d remaining=%d", f.score, f.model.TargetsRemaining())
	}
}

func TestReconcileCountsCulledTargets(t *testing.T) {
	f := newFixture(t)
	target := f.model.Targets()[1]
	f.world.Remove(target)
	f.model.Reconcile()
	f.model.Reconcile()
	if f.model.TargetsRemaining() != 1 || f.score != 500 {
		t.Fatalf("culled target: remaining=%d score=%d", f.model.TargetsRemaining(), f.score)
	}
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name   string
		run    RunState
		active bool
		want   Status
	}{
		{name: "targets left and birds left", run: RunState{BirdsRemaining: 2, TargetsRemaining: 1}, want: Playing},
		{name: "all targets gone", run: RunState{BirdsRemaining: 2}, want: Won},
		{name: "win beats lose", run: RunState{}, want: Won},
		{name: "last bird in flight", run: RunState{TargetsRemaining: 1}, active: true, want: Playing},
		{name: "out of birds", run: RunState{TargetsRemaining: 1}, want: Lost},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Check(tt.run, tt.active); got != tt.want {
				t.Fatalf("Check = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestRunState(t *testing.T) {
	r := NewRunState(1, 3)
	r.UseBird()
	r.UseBird()
	r.AddScore(-10)
	r.AddScore(1000)
	if r.BirdsRemaining != 0 || r.Score != 1000 || r.TargetsRemaining != 3 {
		t.Fatalf("unexpected run state %+v", r)
	}
}
