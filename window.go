package main

import (
	"log/slog"
	"math/rand"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/gravwar/camera"
	"github.com/pthm-cable/gravwar/config"
	"github.com/pthm-cable/gravwar/game"
	"github.com/pthm-cable/gravwar/renderer"
	"github.com/pthm-cable/gravwar/telemetry"
	"github.com/pthm-cable/gravwar/ui"
)

// runWindow opens the raylib window and runs the interactive game loop.
func runWindow(cfg *config.Config, opts game.Options, rng *rand.Rand, out *telemetry.OutputManager, maxTicks int) {
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Gravity Artillery")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))
	rl.SetExitKey(0) // Escape opens the menu

	cam := camera.New(cfg.Derived.ScreenW32, cfg.Derived.ScreenH32, float32(cfg.Playfield.Width), float32(cfg.Playfield.Height))
	stars := renderer.NewBackgroundRenderer(float32(cfg.Playfield.Width), float32(cfg.Playfield.Height), 400, rng.Int63())
	scene := renderer.NewSceneRenderer(cam, cfg)
	particles := renderer.NewParticleRenderer(cam)
	hud := ui.NewHUD(cfg.Pad.MaxHealth, cfg.Missile.Fuel)
	menu := ui.NewMenu()
	perfPanel := ui.NewPerfPanel(10, 90)
	showPerf := false

	var mode game.ResetConfig
	opts.CPU = mode.Controllers()
	round := game.NewRound(cfg, opts, rng)
	snap := round.Snapshot()

	for !rl.WindowShouldClose() {
		opts.Perf.RecordFrame()
		cam.Resize(float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight()))
		handleCamera(cam)

		in, cmd := ui.ReadInput()
		if cmd.Menu {
			menu.Open = !menu.Open
		}
		if cmd.ToggleLastShot {
			scene.ToggleLastShot()
		}
		if cmd.TogglePerf {
			showPerf = !showPerf
		}
		if cmd.Reset && !menu.Open {
			round = round.Reset(mode)
			particles.Reset()
		}

		if !menu.Open {
			snap = round.AdvanceTick(in)
			particles.Observe(&snap)
		}
		particles.Update()

		if recs := opts.Collector.Flush(); len(recs) > 0 {
			if err := out.WriteTurns(recs); err != nil {
				slog.Error("failed to write turns", "error", err)
			}
		}

		sw, sh := int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())
		rl.BeginDrawing()
		stars.Draw(cam)
		scene.Draw(&snap)
		particles.Draw()
		hud.Draw(&snap, sw, sh)
		if showPerf {
			perfPanel.Draw(opts.Perf.Stats())
		}
		if rc, ok := menu.Draw(sw, sh); ok {
			mode = rc
			round = round.Reset(mode)
			particles.Reset()
			snap = round.Snapshot()
		}
		rl.EndDrawing()

		if maxTicks > 0 && int(snap.Tick) >= maxTicks {
			break
		}
	}
}

// handleCamera applies mouse wheel zoom and right-drag panning.
func handleCamera(cam *camera.Camera) {
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		cam.ZoomBy(1 + wheel*0.1)
	}
	if rl.IsMouseButtonDown(rl.MouseButtonRight) {
		d := rl.GetMouseDelta()
		cam.Pan(-d.X, -d.Y)
	}
	if rl.IsKeyPressed(rl.KeyHome) {
		cam.Reset()
	}
}
