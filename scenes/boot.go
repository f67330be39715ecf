package scenes

import (
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/milk9111/slingcritter/draw"
	"github.com/milk9111/slingcritter/scene"
)

func init() {
	scene.Register(Boot, func(m *scene.Manager, _ any) (scene.Scene, error) {
		return &bootScene{m: m, logger: log.WithPrefix("boot")}, nil
	})
}

// bootScene restores persisted settings and moves on to the menu, or
// straight into a level when one was requested on the command line.
type bootScene struct {
	m      *scene.Manager
	logger *log.Logger
	done   bool
}

func (b *bootScene) Init() error {
	if v, ok, err := env.Store.Setting(mutedSetting); err != nil {
		b.logger.Warn("read settings", "err", err)
	} else if ok {
		muted, _ := strconv.ParseBool(v)
		env.Sfx.SetMuted(muted)
	}
	return nil
}

func (b *bootScene) Update(dt float64) {
	if b.done {
		return
	}
	b.done = true

	next, arg := Menu, any(nil)
	if env.StartLevel != "" {
		next, arg = Play, env.StartLevel
	}
	if err := b.m.Go(next, arg); err != nil {
		b.logger.Error("leave boot", "err", err)
	}
}

func (b *bootScene) Draw(dst draw.Surface) {
	dst.Text("Loading...", 24, 24, env.Tuning.Render.HUDText.Or(draw.Aim))
}
