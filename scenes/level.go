package scenes

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/slingcritter/camera"
	"github.com/milk9111/slingcritter/draw"
	"github.com/milk9111/slingcritter/gameplay"
	"github.com/milk9111/slingcritter/input"
	"github.com/milk9111/slingcritter/levels"
	"github.com/milk9111/slingcritter/platform"
	"github.com/milk9111/slingcritter/scene"
)

func init() {
	scene.Register(Play, newLevel)
}

// levelScene plays one level through a gameplay.Session. Until the level
// has loaded it draws an empty world.
type levelScene struct {
	m      *scene.Manager
	id     string
	logger *log.Logger

	sess   *gameplay.Session
	cam    *camera.Camera
	ptr    input.State
	ended  bool
	status gameplay.Status

	paused  bool
	pauseUI *ebitenui.UI
}

func newLevel(m *scene.Manager, arg any) (scene.Scene, error) {
	id, _ := arg.(string)
	if id == "" {
		return nil, fmt.Errorf("scenes: level needs an id, got %v", arg)
	}
	return &levelScene{
		m:      m,
		id:     levels.CleanID(id),
		logger: log.WithPrefix("level"),
	}, nil
}

func (l *levelScene) Init() error {
	t := env.Tuning
	if r := l.m.Renderer(); r != nil {
		l.cam = r.Camera()
	}
	if env.Renderer != nil {
		env.Renderer.SetClearColor(t.Render.Sky.Or(draw.Sky))
	}

	l.sess = gameplay.NewSession(l.id, gameplay.SessionConfig{
		Physics:    t.PhysicsConfig(),
		Scoring:    t.Scoring,
		Slingshot:  t.Slingshot,
		CameraMinY: t.Camera.MinY,
		CameraMaxY: t.Camera.MaxY,
		CameraLerp: t.Camera.Lerp,
		FailScene:  Menu,
	}, env.Loader, l.m, l.cam, gameplay.SessionHooks{
		OnTarget: func(int) { env.Sfx.Play(platform.SoundHit) },
		OnBlock:  func(int) { env.Sfx.Play(platform.SoundBreak) },
		OnLaunch: func() { env.Sfx.Play(platform.SoundLaunch) },
	})
	l.sess.Start()

	l.pauseUI = platform.NewMenuUI("Paused", nil, []platform.MenuItem{
		{Label: "Resume", OnClick: func() { l.paused = false }},
		{Label: "Restart", OnClick: func() { l.goTo(Play, l.id) }},
		{Label: "Menu", OnClick: func() { l.goTo(Menu, nil) }},
	})
	return nil
}

func (l *levelScene) Dispose() {
	if l.sess != nil {
		l.sess.Stop()
	}
}

func (l *levelScene) HandleInput() {
	if !l.sess.Ready() || l.ended {
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		l.paused = !l.paused
	}
	if l.paused {
		l.pauseUI.Update()
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		l.goTo(Play, l.id)
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		l.goTo(Menu, nil)
	}
}

func (l *levelScene) Update(dt float64) {
	if l.sess.Poll() != gameplay.LoadReady || l.ended || l.paused {
		return
	}
	l.applyTuning()

	if env.Pointer != nil {
		l.ptr = env.Pointer.State()
	}
	if st := l.sess.Step(dt, l.ptr); st != gameplay.Playing {
		l.finish(st)
	}
}

// applyTuning picks up an edited tuning file. Slingshot settings apply
// from the next level start.
func (l *levelScene) applyTuning() {
	t, ok := env.Reloader.Poll()
	if !ok {
		return
	}
	env.Tuning = t
	l.sess.World().SetMaterials(t.Materials)
	l.sess.World().SetCleanupRules(t.Physics.Cleanup)
	l.sess.Model().SetScoring(t.Scoring)
	env.Sfx.SetVolume(t.Audio.Volume)
	if env.Renderer != nil {
		env.Renderer.SetClearColor(t.Render.Sky.Or(draw.Sky))
	}
}

func (l *levelScene) finish(st gameplay.Status) {
	l.ended = true
	l.status = st

	out := l.sess.Outcome(st)
	if out.Won {
		if _, err := env.Store.RecordScore(l.id, out.FinalScore, out.Stars); err != nil {
			l.logger.Warn("record score", "err", err)
		}
		env.Sfx.Play(platform.SoundWin)
	} else {
		env.Sfx.Play(platform.SoundLose)
	}
	if best, err := env.Store.BestScore(l.id); err == nil {
		out.BestScore = best
	}

	l.logger.Info("level finished", "id", l.id, "status", st, "score", out.FinalScore, "stars", out.Stars)
	l.goTo(Result, out)
}

func (l *levelScene) goTo(name string, arg any) {
	if err := l.m.Go(name, arg); err != nil {
		l.logger.Error("transition", "scene", name, "err", err)
	}
}

func (l *levelScene) Draw(dst draw.Surface) {
	gameplay.DrawWorld(dst, l.sess.World())
	if !l.sess.Ready() {
		dst.Text(fmt.Sprintf("Loading %s...", l.id), 24, 24, env.Tuning.Render.HUDText.Or(draw.Aim))
		return
	}
	l.sess.Sling().Draw(dst, l.ptr)
	drawHUD(dst, l.hud())
	if l.paused {
		if img, ok := dst.(platform.ImageSurface); ok && img.Image() != nil {
			l.pauseUI.Draw(img.Image())
		}
	}
}

func (l *levelScene) hud() hudInfo {
	run := l.sess.Run()
	return hudInfo{
		LevelID: l.id,
		Birds:   run.BirdsRemaining,
		Targets: run.TargetsRemaining,
		Score:   run.Score,
		Debug:   env.Debug,
	}
}
