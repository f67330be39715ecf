package scenes

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/slingcritter/common"
	"github.com/milk9111/slingcritter/draw"
)

const hudHeight = 28

type hudInfo struct {
	LevelID string
	Birds   int
	Targets int
	Score   int
	Debug   bool
}

type screenFiller interface {
	ScreenRect(x, y, w, h float64, clr color.Color)
}

func drawHUD(dst draw.Surface, h hudInfo) {
	r := env.Tuning.Render
	fg := r.HUDText.Or(draw.Aim)
	if f, ok := dst.(screenFiller); ok {
		f.ScreenRect(0, 0, common.BaseWidth, hudHeight, r.HUDBar.Or(color.NRGBA{A: 0x4d}))
	}

	dst.Text(fmt.Sprintf("Birds: %d", h.Birds), 12, 18, fg)
	dst.Text(fmt.Sprintf("Level: %s", h.LevelID), 120, 18, fg)
	dst.Text(fmt.Sprintf("Targets: %d", h.Targets), 300, 18, fg)
	dst.Text(fmt.Sprintf("Score: %d", h.Score), 430, 18, fg)
	dst.Text("R - Restart | M - Menu | P - Pause", common.BaseWidth-250, 18, fg)
	if h.Debug {
		dst.Text(fmt.Sprintf("FPS: %.1f  TPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()), 12, hudHeight+18, fg)
	}
}
