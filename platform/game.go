package platform

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/slingcritter/common"
	"github.com/milk9111/slingcritter/scene"
)

// Game adapts the scene manager to ebiten.Game.
type Game struct {
	manager  *scene.Manager
	renderer *Renderer
	pointer  *PointerSource
	clock    scene.Clock
}

func NewGame(m *scene.Manager, r *Renderer, p *PointerSource, clock scene.Clock) *Game {
	if clock == nil {
		clock = scene.RealClock{}
	}
	return &Game{manager: m, renderer: r, pointer: p, clock: clock}
}

func (g *Game) Update() error {
	now := g.clock.Now()
	if g.pointer != nil {
		g.pointer.Poll(now)
	}
	// Key edges and widget clicks belong to this frame, not to each step.
	g.manager.Input()
	g.manager.Advance(now)
	if g.manager.Stopped() {
		return ebiten.Termination
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Bind(screen)
	g.manager.Render()
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
