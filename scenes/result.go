package scenes

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/slingcritter/gameplay"
	"github.com/milk9111/slingcritter/platform"
	"github.com/milk9111/slingcritter/scene"
)

func init() {
	scene.Register(Result, newResult)
}

type resultScene struct {
	menuScene
	out gameplay.Outcome
}

func newResult(m *scene.Manager, arg any) (scene.Scene, error) {
	out, ok := arg.(gameplay.Outcome)
	if !ok {
		return nil, fmt.Errorf("scenes: result needs an outcome, got %T", arg)
	}
	s := &resultScene{
		menuScene: menuScene{m: m, logger: log.WithPrefix("result")},
		out:       out,
	}

	title := "Level Failed"
	if out.Won {
		title = "Level Complete!"
	}
	lines := []string{
		fmt.Sprintf("Level: %s", out.LevelID),
		fmt.Sprintf("Score: %d", out.FinalScore),
		fmt.Sprintf("Stars: %s", starString(out.Stars)),
		fmt.Sprintf("Best: %d", out.BestScore),
	}
	items := []platform.MenuItem{
		{Label: "Retry", OnClick: s.retry},
	}
	if out.Won && out.NextLevelID != "" {
		items = append(items, platform.MenuItem{Label: "Next", OnClick: func() { s.goTo(Play, out.NextLevelID) }})
	}
	items = append(items, platform.MenuItem{Label: "Menu", OnClick: func() { s.goTo(Menu, nil) }})
	s.ui = platform.NewMenuUI(title, lines, items)
	return s, nil
}

func (s *resultScene) retry() {
	s.goTo(Play, s.out.LevelID)
}

func (s *resultScene) HandleInput() {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		s.retry()
		return
	case inpututil.IsKeyJustPressed(ebiten.KeyM), inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		s.goTo(Menu, nil)
		return
	}
	s.ui.Update()
}
