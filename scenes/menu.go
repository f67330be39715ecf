package scenes

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/slingcritter/draw"
	"github.com/milk9111/slingcritter/platform"
	"github.com/milk9111/slingcritter/scene"
)

func init() {
	scene.Register(Menu, newMenu)
	scene.Register(LevelSelect, newLevelSelect)
}

// menuScene is an ebitenui panel. Button handlers run inside HandleInput,
// so the transitions they request take effect after it returns.
type menuScene struct {
	m      *scene.Manager
	ui     *ebitenui.UI
	logger *log.Logger
	first  string
}

func newMenu(m *scene.Manager, _ any) (scene.Scene, error) {
	s := &menuScene{m: m, logger: log.WithPrefix("menu")}
	if ids := env.Loader.IDs(); len(ids) > 0 {
		s.first = ids[0]
	}
	s.build()
	return s, nil
}

func (s *menuScene) build() {
	mute := "Mute"
	if env.Sfx.Muted() {
		mute = "Unmute"
	}
	s.ui = platform.NewMenuUI("Sling Critter", nil, []platform.MenuItem{
		{Label: "Start", OnClick: s.start},
		{Label: "Level Select", OnClick: func() { s.goTo(LevelSelect, nil) }},
		{Label: mute, OnClick: s.toggleMute},
		{Label: "Quit", OnClick: s.m.Stop},
	})
}

func (s *menuScene) start() {
	if s.first == "" {
		s.logger.Error("no levels available")
		return
	}
	s.goTo(Play, s.first)
}

func (s *menuScene) toggleMute() {
	muted := !env.Sfx.Muted()
	env.Sfx.SetMuted(muted)
	if err := env.Store.SetSetting(mutedSetting, strconv.FormatBool(muted)); err != nil {
		s.logger.Warn("save settings", "err", err)
	}
	s.build()
}

func (s *menuScene) goTo(name string, arg any) {
	if err := s.m.Go(name, arg); err != nil {
		s.logger.Error("transition", "scene", name, "err", err)
	}
}

func (s *menuScene) Update(dt float64) {}

func (s *menuScene) HandleInput() {
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		s.start()
		return
	}
	s.ui.Update()
}

func (s *menuScene) Draw(dst draw.Surface) {
	if img, ok := dst.(platform.ImageSurface); ok && img.Image() != nil {
		s.ui.Draw(img.Image())
	}
}

type levelSelectScene struct {
	menuScene
}

func newLevelSelect(m *scene.Manager, _ any) (scene.Scene, error) {
	s := &levelSelectScene{menuScene{m: m, logger: log.WithPrefix("menu")}}
	var items []platform.MenuItem
	for _, id := range env.Loader.IDs() {
		id := id
		label := id
		if stars, err := env.Store.BestStars(id); err == nil && stars > 0 {
			label = fmt.Sprintf("%s  %s", id, starString(stars))
		}
		items = append(items, platform.MenuItem{Label: label, OnClick: func() { s.goTo(Play, id) }})
	}
	items = append(items, platform.MenuItem{Label: "Back", OnClick: func() { s.goTo(Menu, nil) }})
	s.ui = platform.NewMenuUI("Select Level", nil, items)
	return s, nil
}

func (s *levelSelectScene) HandleInput() {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		s.goTo(Menu, nil)
		return
	}
	s.ui.Update()
}

func starString(n int) string {
	out := ""
	for i := 0; i < 3; i++ {
		if i < n {
			out += "*"
		} else {
			out += "-"
		}
	}
	return out
}
