// Package scenes holds the concrete screens of the game. Each registers
// itself with the scene registry from init.
package scenes

import (
	"github.com/milk9111/slingcritter/levels"
	"github.com/milk9111/slingcritter/platform"
	"github.com/milk9111/slingcritter/prefabs"
	"github.com/milk9111/slingcritter/storage"
)

const (
	Boot        = "boot"
	Menu        = "menu"
	LevelSelect = "levels"
	Play        = "level"
	Result      = "result"
)

const mutedSetting = "muted"

// Env is shared by every scene. main fills it before the first frame.
type Env struct {
	Loader   *levels.Loader
	Store    *storage.Store
	Tuning   prefabs.Tuning
	Reloader *prefabs.TuningReloader
	Renderer *platform.Renderer
	Pointer  *platform.PointerSource
	Sfx      *platform.Sfx
	Debug    bool
	// StartLevel skips the menu when set.
	StartLevel string
}

var env = &Env{Loader: levels.Default()}

// Configure installs the shared environment.
func Configure(e *Env) {
	if e == nil {
		return
	}
	if e.Loader == nil {
		e.Loader = levels.Default()
	}
	env = e
}
