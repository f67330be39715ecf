package main

import (
	"errors"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/slingcritter/camera"
	"github.com/milk9111/slingcritter/common"
	"github.com/milk9111/slingcritter/draw"
	"github.com/milk9111/slingcritter/levels"
	"github.com/milk9111/slingcritter/platform"
	"github.com/milk9111/slingcritter/prefabs"
	"github.com/milk9111/slingcritter/scene"
	"github.com/milk9111/slingcritter/scenes"
	"github.com/milk9111/slingcritter/storage"
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start the game",
	Long: `Open the game window. With --level the menu is skipped.

Examples:
  slingcritter play
  slingcritter play --level level-003 --watch`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

type playFlags struct {
	level      string
	tuningDir  string
	levelsDir  string
	watch      bool
	fullscreen bool
	baseMon    bool
}

var flagPlay playFlags

func addPlayFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagPlay.level, "level", "", "level id to start in (skips the menu)")
	cmd.Flags().StringVar(&flagPlay.tuningDir, "tuning-dir", "prefabs", "directory holding a tuning.yaml override")
	cmd.Flags().StringVar(&flagPlay.levelsDir, "levels-dir", "levels", "directory holding extra or overriding level files")
	cmd.Flags().BoolVar(&flagPlay.watch, "watch", false, "reload tuning.yaml when it changes")
	cmd.Flags().BoolVar(&flagPlay.fullscreen, "fullscreen", false, "start fullscreen")
	cmd.Flags().BoolVarP(&flagPlay.baseMon, "base-monitor", "m", false, "use base monitor instead of primary (for multi-monitor setups)")
}

func runPlay(cmd *cobra.Command, args []string) error {
	logger := log.WithPrefix("main")

	prefabs.SetDiskDir(flagPlay.tuningDir)
	tuning, err := prefabs.LoadTuning()
	if err != nil {
		return err
	}

	var reloader *prefabs.TuningReloader
	if flagPlay.watch {
		reloader, err = prefabs.WatchTuning()
		if err != nil {
			logger.Warn("tuning watch disabled", "err", err)
		} else {
			defer reloader.Close()
		}
	}

	dbPath := flagDBPath
	if dbPath == "" {
		dbPath = storage.DefaultPath()
	}
	store, err := storage.Open(dbPath)
	if err != nil {
		// Scores are optional; play on without them.
		logger.Warn("scores disabled", "err", err)
	} else {
		defer store.Close()
	}

	cam := camera.New(common.BaseWidth, common.BaseHeight)
	renderer, err := platform.NewRenderer(cam)
	if err != nil {
		log.Fatal("renderer", "err", err)
	}
	renderer.SetClearColor(tuning.Render.Sky.Or(draw.Sky))
	pointer := platform.NewPointerSource(cam)

	scenes.Configure(&scenes.Env{
		Loader:     levels.NewLoader(levels.LevelsFS, flagPlay.levelsDir),
		Store:      store,
		Tuning:     tuning,
		Reloader:   reloader,
		Renderer:   renderer,
		Pointer:    pointer,
		Sfx:        platform.NewSfx(tuning.Audio.Volume, tuning.Audio.Muted),
		Debug:      flagDebug,
		StartLevel: flagPlay.level,
	})

	manager := scene.NewManager(renderer, nil)
	if err := manager.Go(scenes.Boot, nil); err != nil {
		return err
	}

	if flagPlay.baseMon {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowTitle("Sling Critter")
	ebiten.SetFullscreen(flagPlay.fullscreen)

	game := platform.NewGame(manager, renderer, pointer, scene.RealClock{})
	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
