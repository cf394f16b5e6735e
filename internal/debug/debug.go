package debug

import (
	"fmt"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	fontSize   = 20
	padding    = 12
	lineHeight = fontSize + 4
	// updateInterval: only refresh overlay text every N frames to reduce
	// allocations.
	updateInterval = 30
)

// Debug holds runtime overlays: the always-on HUD line (mode, gesture status,
// snow, instance count) and optional FPS/memory counters.
type Debug struct {
	ShowFPS      bool
	ShowMemAlloc bool

	// HUD, if set, is called every updateInterval frames for the status line
	// drawn top-left.
	HUD func() string

	frameCount   uint32
	lastHudText  string
	lastFpsText  string
	lastMemText  string
	lastMemStats runtime.MemStats
}

// New returns a Debug system with counters hidden and no HUD.
func New() *Debug {
	return &Debug{}
}

// Draw renders the HUD and any enabled counters. Call after the scene and
// console in the draw loop.
func (d *Debug) Draw() {
	d.frameCount++
	update := (d.frameCount % updateInterval) == 1

	if d.HUD != nil {
		if update || d.lastHudText == "" {
			d.lastHudText = d.HUD()
		}
		rl.DrawText(d.lastHudText, padding, padding, fontSize, rl.LightGray)
	}

	screenW := int32(rl.GetScreenWidth())
	y := int32(padding)

	if d.ShowFPS {
		if update || d.lastFpsText == "" {
			d.lastFpsText = fmt.Sprintf("FPS: %d", rl.GetFPS())
		}
		w := rl.MeasureText(d.lastFpsText, fontSize)
		rl.DrawText(d.lastFpsText, screenW-w-padding, y, fontSize, rl.Green)
		y += lineHeight
	}

	if d.ShowMemAlloc {
		if update || d.lastMemText == "" {
			runtime.ReadMemStats(&d.lastMemStats)
			mb := float64(d.lastMemStats.Alloc) / (1024 * 1024)
			d.lastMemText = fmt.Sprintf("Mem: %.2f MiB", mb)
		}
		w := rl.MeasureText(d.lastMemText, fontSize)
		rl.DrawText(d.lastMemText, screenW-w-padding, y, fontSize, rl.Green)
	}
}
