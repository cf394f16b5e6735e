package graphics

import rl "github.com/gen2brain/raylib-go/raylib"

// Run opens the window and drives the main loop at 60 FPS. Each frame it
// calls update (instance interpolation, camera, input), clears to the color
// background returns, and calls draw (3D scene, then 2D overlay). background
// is a callback so a theme change recolors the clear without restarting.
// ESC is reserved for the console toggle; close via the window button.
func Run(title string, update func(), background func() rl.Color, draw func()) {
	rl.SetConfigFlags(rl.FlagMsaa4xHint)
	rl.InitWindow(1280, 720, title)
	defer rl.CloseWindow()

	rl.SetExitKey(rl.KeyNull)
	rl.SetTargetFPS(60)

	for !rl.WindowShouldClose() {
		update()

		rl.BeginDrawing()
		rl.ClearBackground(background())
		draw()
		rl.EndDrawing()
	}
}
