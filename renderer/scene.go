// Package renderer draws a round snapshot with raylib.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/gravwar/camera"
	"github.com/pthm-cable/gravwar/components"
	"github.com/pthm-cable/gravwar/config"
	"github.com/pthm-cable/gravwar/game"
	"github.com/pthm-cable/gravwar/systems"
)

var (
	ColorLeft    = rl.Color{R: 220, G: 50, B: 50, A: 255}
	ColorRight   = rl.Color{R: 50, G: 100, B: 220, A: 255}
	ColorNeutral = rl.Color{R: 150, G: 150, B: 150, A: 255}
	colorWell    = rl.Color{R: 180, G: 100, B: 200, A: 255}
	colorPower   = rl.Color{R: 255, G: 220, B: 50, A: 255}
	colorThrust  = rl.Color{R: 255, G: 150, B: 50, A: 255}
	colorGhost   = rl.Color{R: 255, G: 255, B: 255, A: 40}
)

// SideColor returns the drawing color for a side.
func SideColor(s components.Side) rl.Color {
	switch s {
	case components.SideLeft:
		return ColorLeft
	case components.SideRight:
		return ColorRight
	}
	return ColorNeutral
}

// SceneRenderer draws playfield objects through a camera.
type SceneRenderer struct {
	cam          *camera.Camera
	maxHealth    float64
	thrustFlash  int // cooldown ticks above which the thrust ring shows
	showLastShot bool
}

// NewSceneRenderer creates a scene renderer. Thrust rings are drawn while a
// missile's cooldown is above half the configured value.
func NewSceneRenderer(cam *camera.Camera, cfg *config.Config) *SceneRenderer {
	return &SceneRenderer{
		cam:          cam,
		maxHealth:    cfg.Pad.MaxHealth,
		thrustFlash:  cfg.Missile.ThrustCooldown / 2,
		showLastShot: true,
	}
}

// ToggleLastShot shows or hides the stored previous shots.
func (s *SceneRenderer) ToggleLastShot() { s.showLastShot = !s.showLastShot }

// Draw renders one snapshot.
func (s *SceneRenderer) Draw(snap *game.Snapshot) {
	s.drawBounds()
	for i := range snap.Sources {
		s.drawSource(&snap.Sources[i])
	}
	for _, a := range snap.Asteroids {
		s.drawAsteroid(a)
	}
	if s.showLastShot {
		for side, shot := range snap.LastShots {
			s.drawPath(shot, colorGhost, components.Side(side))
		}
	}
	for i := range snap.Projectiles {
		s.drawProjectile(&snap.Projectiles[i])
	}
	for i := range snap.Pads {
		p := &snap.Pads[i]
		s.drawPad(p, snap.Phase == game.PhaseAwaitingAim && snap.Active == p.Side)
	}
}

func (s *SceneRenderer) point(p r2.Vec) rl.Vector2 {
	x, y := s.cam.WorldToScreen(float32(p.X), float32(p.Y))
	return rl.Vector2{X: x, Y: y}
}

func (s *SceneRenderer) radius(r float64) float32 {
	return s.cam.Scale(float32(r))
}

func (s *SceneRenderer) drawBounds() {
	x0, y0 := s.cam.WorldToScreen(0, 0)
	x1, y1 := s.cam.WorldToScreen(s.cam.WorldW, s.cam.WorldH)
	rl.DrawRectangleLinesEx(rl.Rectangle{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}, 1, rl.Color{R: 40, G: 40, B: 60, A: 255})
}

func (s *SceneRenderer) drawSource(src *systems.Source) {
	c := s.point(src.Pos)
	if !s.cam.IsVisible(float32(src.Pos.X), float32(src.Pos.Y), float32(src.DiskRadius+src.Radius+60)) {
		return
	}

	if src.Kind == systems.SourceBlackHole {
		// Accretion disk rings fading outward to the disk radius.
		steps := 5
		for i := 0; i < steps; i++ {
			r := src.EventHorizon + (src.DiskRadius-src.EventHorizon)*float64(i)/float64(steps)
			shade := uint8(100 - i*15)
			rl.DrawCircleLinesV(c, s.radius(r), rl.Color{R: shade, G: 0, B: shade, A: 255})
		}
		rl.DrawCircleLinesV(c, s.radius(src.EventHorizon), rl.Color{R: 50, G: 0, B: 50, A: 255})
		rl.DrawCircleV(c, s.radius(src.Radius), rl.Black)
		rl.DrawCircleLinesV(c, s.radius(src.Radius), rl.Color{R: 20, G: 0, B: 20, A: 255})
		return
	}

	for i := 0; i < 3; i++ {
		rl.DrawCircleLinesV(c, s.radius(src.Radius+float64(i*20)), rl.Color{R: 180, G: 100, B: 200, A: 30})
	}
	rl.DrawCircleV(c, s.radius(src.Radius), colorWell)
}

func (s *SceneRenderer) drawAsteroid(a game.AsteroidView) {
	c := s.point(a.Pos)
	// Irregular outline from the cosmetic seed.
	sides := int32(6 + a.Look%4)
	rot := float32(a.Look) * 1.4
	rl.DrawPoly(c, sides, s.radius(a.Radius), rot, rl.Color{R: 110, G: 100, B: 90, A: 255})
	rl.DrawPolyLines(c, sides, s.radius(a.Radius), rot, rl.Color{R: 160, G: 150, B: 140, A: 255})
}

func (s *SceneRenderer) drawPath(pts []r2.Vec, tint rl.Color, side components.Side) {
	if len(pts) < 2 {
		return
	}
	base := SideColor(side)
	for i := 0; i+1 < len(pts); i++ {
		c := base
		c.A = tint.A
		rl.DrawLineEx(s.point(pts[i]), s.point(pts[i+1]), 1, c)
	}
}

func (s *SceneRenderer) drawProjectile(p *game.ProjectileView) {
	color := SideColor(p.Owner)
	n := len(p.Trail)
	for i := 0; i+1 < n; i++ {
		alpha := float32(i) / float32(n)
		c := color
		c.A = uint8(alpha * 255)
		rl.DrawLineEx(s.point(p.Trail[i]), s.point(p.Trail[i+1]), 2, c)
	}
	if !p.Alive {
		return
	}

	c := s.point(p.Pos)
	size := float32(5)
	if p.Fragment {
		size = 3
	}
	rl.DrawCircleV(c, size, color)
	if p.Primary && p.Cooldown > s.thrustFlash {
		rl.DrawCircleLinesV(c, 8, colorThrust)
	}
}

func (s *SceneRenderer) drawPad(p *game.PadView, aiming bool) {
	if p.Destroyed {
		return
	}
	color := SideColor(p.Side)
	c := s.point(p.Pos)

	// Health bar.
	const barW, barH = 60, 8
	ratio := float32(p.Health / s.maxHealth)
	if ratio < 0 {
		ratio = 0
	}
	rl.DrawRectangle(int32(c.X)-barW/2, int32(c.Y)-40, barW, barH, ColorNeutral)
	rl.DrawRectangle(int32(c.X)-barW/2, int32(c.Y)-40, int32(barW*ratio), barH, color)

	rl.DrawRectangle(int32(c.X)-20, int32(c.Y)-10, 40, 20, color)

	end := s.point(systems.MuzzlePosition(p.Pos, p.Angle, 30/float64(s.cam.Zoom)))
	rl.DrawLineEx(c, end, 6, color)

	if aiming {
		tip := s.point(systems.MuzzlePosition(p.Pos, p.Angle, (30+p.Power*5)/float64(s.cam.Zoom)))
		rl.DrawLineEx(end, tip, 2, colorPower)
	}

	label := p.Side.String()
	if p.CPU {
		label += " (CPU)"
	}
	w := rl.MeasureText(label, 16)
	rl.DrawText(label, int32(c.X)-w/2, int32(c.Y)+20, 16, rl.White)
}
