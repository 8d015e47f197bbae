// Shot preview tool - interactive trajectory visualization with sliders.
//
// Usage: go run ./cmd/shotpreview [-config path]
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"math"
	"math/rand"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/gravwar/ai"
	"github.com/pthm-cable/gravwar/components"
	"github.com/pthm-cable/gravwar/config"
	"github.com/pthm-cable/gravwar/game"
	"github.com/pthm-cable/gravwar/systems"
)

const (
	windowWidth  = 1280
	windowHeight = 720
	previewW     = 880
	previewH     = 440
	panelWidth   = windowWidth - previewW - 30
	gridW        = 240
	gridH        = 120
)

// ShotParams holds the slider state.
type ShotParams struct {
	Angle float32
	Power float32
	Ticks int
	Seed  int64
	Side  components.Side
}

// scene is a generated layout ready to simulate against.
type scene struct {
	layout game.Layout
	field  systems.Field
}

func newScene(cfg *config.Config, seed int64) *scene {
	lay := game.GenerateLayout(cfg, rand.New(rand.NewSource(seed)))
	return &scene{layout: lay, field: lay.Field(cfg)}
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	bounds := systems.BoundsFromConfig(cfg)

	rl.InitWindow(windowWidth, windowHeight, "Shot Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	defaults := ShotParams{Angle: 0, Power: float32(cfg.Pad.PowerDefault), Ticks: 600, Seed: 1, Side: components.SideLeft}
	params := defaults
	sc := newScene(cfg, params.Seed)

	img := rl.GenImageColor(gridW, gridH, rl.Black)
	texture := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	defer rl.UnloadTexture(texture)
	updateTexture(texture, sc, bounds)

	var shot systems.ShotResult
	var path components.Trail
	var search *ai.Candidate
	needsSim := true

	scale := float32(previewW) / float32(bounds.Width)
	toScreen := func(p r2.Vec) rl.Vector2 {
		return rl.Vector2{X: 10 + float32(p.X)*scale, Y: 10 + float32(p.Y)*scale}
	}

	for !rl.WindowShouldClose() {
		shooter := sc.layout.Pads[params.Side]
		target := sc.layout.Pads[params.Side.Other()]

		if needsSim {
			angle := float64(params.Angle)
			muzzle := systems.MuzzlePosition(shooter, angle, cfg.Missile.MuzzleOffset)
			path = components.NewTrail(params.Ticks)
			path.Push(muzzle)
			shot = systems.SimulateShot(&sc.field, bounds, muzzle, systems.LaunchVelocity(angle, float64(params.Power)), target, params.Ticks, &path)
			needsSim = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		// Field strength backdrop
		rl.DrawTexturePro(
			texture,
			rl.Rectangle{X: 0, Y: 0, Width: gridW, Height: gridH},
			rl.Rectangle{X: 10, Y: 10, Width: previewW, Height: previewH},
			rl.Vector2{X: 0, Y: 0},
			0,
			rl.White,
		)
		rl.DrawRectangleLines(10, 10, previewW, previewH, rl.DarkGray)

		for _, s := range sc.field.BlackHoles {
			rl.DrawCircleLinesV(toScreen(s.Pos), float32(s.EventHorizon)*scale, rl.Red)
		}
		for _, a := range sc.layout.Asteroids {
			rl.DrawCircleLinesV(toScreen(a.Pos), float32(a.Radius)*scale, rl.Gray)
		}
		for side, p := range sc.layout.Pads {
			c := rl.Red
			if components.Side(side) == components.SideRight {
				c = rl.Blue
			}
			rl.DrawCircleV(toScreen(p), float32(cfg.Pad.HitRadius)*scale, c)
		}
		for i := 0; i+1 < path.Len(); i++ {
			rl.DrawLineV(toScreen(path.At(i)), toScreen(path.At(i+1)), rl.Orange)
		}

		// Stats
		statsY := int32(previewH + 25)
		outcome := "flying"
		switch {
		case shot.Captured:
			outcome = "captured"
		case shot.OutOfBounds:
			outcome = "out of bounds"
		}
		rl.DrawText(fmt.Sprintf("Closest: %.1f  Start: %.1f  Ticks: %d  Outcome: %s", shot.Closest, shot.StartDist, shot.Ticks, outcome), 15, statsY, 16, rl.DarkGray)
		if search != nil {
			rl.DrawText(fmt.Sprintf("Hard search: %.0f° / %.0f  score %.1f  (%d shots)", search.Angle, search.Power, search.Score, search.Evaluated), 15, statsY+20, 16, rl.DarkGray)
		}

		// Control panel
		panelX := float32(previewW + 20)
		panelY := float32(10)

		rl.DrawText("Shot Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		rl.DrawText("Angle (degrees, +Y is down)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newAngle := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"0", "360",
			params.Angle, 0, 360,
		)
		rl.DrawText(fmt.Sprintf("%.0f", params.Angle), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if newAngle != params.Angle {
			params.Angle = float32(math.Round(float64(newAngle)))
			needsSim = true
		}
		panelY += 35

		rl.DrawText("Power", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newPower := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			fmt.Sprintf("%.0f", cfg.Pad.PowerMin), fmt.Sprintf("%.0f", cfg.Pad.PowerMax),
			params.Power, float32(cfg.Pad.PowerMin), float32(cfg.Pad.PowerMax),
		)
		rl.DrawText(fmt.Sprintf("%.1f", params.Power), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if newPower != params.Power {
			params.Power = newPower
			needsSim = true
		}
		panelY += 35

		rl.DrawText("Simulated ticks", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newTicks := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"50", "2000",
			float32(params.Ticks), 50, 2000,
		)
		rl.DrawText(fmt.Sprintf("%d", params.Ticks), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if int(newTicks) != params.Ticks {
			params.Ticks = int(newTicks)
			needsSim = true
		}
		panelY += 35

		rl.DrawText("Layout seed", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newSeed := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"1", "9999",
			float32(params.Seed), 1, 9999,
		)
		rl.DrawText(fmt.Sprintf("%d", params.Seed), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if int64(newSeed) != params.Seed {
			params.Seed = int64(newSeed)
			sc = newScene(cfg, params.Seed)
			updateTexture(texture, sc, bounds)
			search = nil
			needsSim = true
		}
		panelY += 45

		// Buttons
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, toggleText(params.Side == components.SideLeft, "Shoot Left", "Shoot Right")) {
			params.Side = params.Side.Other()
			params.Angle = float32(normDeg(systems.AimAt(sc.layout.Pads[params.Side], sc.layout.Pads[params.Side.Other()])))
			search = nil
			needsSim = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Aim At Target") {
			params.Angle = float32(math.Round(normDeg(systems.AimAt(shooter, target))))
			needsSim = true
		}
		panelY += 45

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Hard Search") {
			planner := ai.NewPlanner(cfg, ai.DifficultyHard, rand.New(rand.NewSource(params.Seed)))
			best := planner.Search(ai.Scenario{Shooter: shooter, Target: target, Field: &sc.field, Bounds: bounds})
			search = &best
			params.Angle = float32(best.Angle)
			params.Power = float32(best.Power)
			needsSim = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			params = defaults
			sc = newScene(cfg, params.Seed)
			updateTexture(texture, sc, bounds)
			search = nil
			needsSim = true
		}
		panelY += 55

		rl.DrawText(fmt.Sprintf("Wells: %d  Black holes: %d  Asteroids: %d",
			len(sc.field.Wells), len(sc.field.BlackHoles), len(sc.layout.Asteroids)), int32(panelX), int32(panelY), 14, rl.Gray)

		rl.DrawText("Press C to copy the shot to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)
		if rl.IsKeyPressed(rl.KeyC) {
			rl.SetClipboardText(fmt.Sprintf("seed=%d side=%s angle=%.0f power=%.1f closest=%.1f",
				params.Seed, params.Side, params.Angle, params.Power, shot.Closest))
		}

		rl.EndDrawing()
	}
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}

func normDeg(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	return a
}

// fieldStrength samples the log force magnitude on a gridW × gridH lattice,
// normalized to [0, 1].
func fieldStrength(sc *scene, bounds systems.Bounds) []float32 {
	grid := make([]float32, gridW*gridH)
	var maxV float32
	for y := 0; y < gridH; y++ {
		for x := 0; x < gridW; x++ {
			p := r2.Vec{
				X: (float64(x) + 0.5) / gridW * bounds.Width,
				Y: (float64(y) + 0.5) / gridH * bounds.Height,
			}
			v := float32(math.Log1p(r2.Norm(sc.field.Accumulate(p))))
			grid[y*gridW+x] = v
			if v > maxV {
				maxV = v
			}
		}
	}
	if maxV > 0 {
		for i := range grid {
			grid[i] /= maxV
		}
	}
	return grid
}

// updateTexture updates the GPU texture from the field strength.
func updateTexture(texture rl.Texture2D, sc *scene, bounds systems.Bounds) {
	grid := fieldStrength(sc, bounds)
	pixels := make([]color.RGBA, len(grid))
	for i, v := range grid {
		// Use a color gradient: dark blue -> cyan -> yellow -> white
		var r, g, b uint8
		if v < 0.25 {
			t := v / 0.25
			r = uint8(10 + t*30)
			g = uint8(20 + t*60)
			b = uint8(60 + t*100)
		} else if v < 0.5 {
			t := (v - 0.25) / 0.25
			r = uint8(40 + t*20)
			g = uint8(80 + t*120)
			b = uint8(160 + t*40)
		} else if v < 0.75 {
			t := (v - 0.5) / 0.25
			r = uint8(60 + t*140)
			g = uint8(200 - t*40)
			b = uint8(200 - t*150)
		} else {
			t := (v - 0.75) / 0.25
			r = uint8(200 + t*55)
			g = uint8(160 + t*95)
			b = uint8(50 + t*205)
		}
		pixels[i] = color.RGBA{R: r, G: g, B: b, A: 255}
	}
	rl.UpdateTexture(texture, pixels)
}
