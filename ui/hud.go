package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/gravwar/components"
	"github.com/pthm-cable/gravwar/game"
	"github.com/pthm-cable/gravwar/renderer"
	"github.com/pthm-cable/gravwar/telemetry"
)

// Control legends shown at the bottom of the screen.
const (
	ControlsAim    = "Left/Right: angle | Up/Down: power | Space: fire | R: restart | Tab: last shots"
	ControlsFlight = "Space/Up: thrust | Down/Shift: reverse | Left/Right: steer"
)

// HUD renders the main heads-up display.
type HUD struct {
	renderer  *Renderer
	maxHealth float32
	maxFuel   float32
}

// NewHUD creates a HUD. maxHealth and maxFuel scale the bars.
func NewHUD(maxHealth float64, maxFuel int) *HUD {
	return &HUD{
		renderer:  NewRenderer(),
		maxHealth: float32(maxHealth),
		maxFuel:   float32(maxFuel),
	}
}

// Draw renders the HUD for one snapshot.
func (h *HUD) Draw(snap *game.Snapshot, screenW, screenH int32) {
	r := h.renderer
	const panelW, panelH = 220, 72

	for i := range snap.Pads {
		p := &snap.Pads[i]
		a := AnchorTopLeft
		if p.Side == components.SideRight {
			a = AnchorTopRight
		}
		x, y := anchor(a, panelW, panelH, screenW, screenH, 10)
		r.DrawPanel(x, y, panelW, panelH)

		x += r.Theme.Padding
		y += 6
		name := p.Side.String()
		if p.CPU {
			name += " (CPU)"
		}
		rl.DrawText(name, x, y, r.Theme.FontSize, renderer.SideColor(p.Side))
		y += r.Theme.LineHeight
		y = r.DrawLevelBar(x, y, "Health", float32(p.Health), h.maxHealth, panelW-2*r.Theme.Padding)
		r.DrawLabelValue(x, y, "Aim", fmt.Sprintf("%.0f° / %.1f", p.Angle, p.Power))
	}

	cx := screenW / 2
	switch snap.Phase {
	case game.PhaseAwaitingAim:
		r.DrawCentered(fmt.Sprintf("Turn %d: %s", snap.Turn, snap.Active), cx, 12, r.Theme.HeaderFontSize, renderer.SideColor(snap.Active))
		if snap.ThinkRemaining > 0 {
			r.DrawCentered("CPU thinking...", cx, 36, r.Theme.FontSize, r.Theme.SectionHeader)
		}
		rl.DrawText(ControlsAim, 10, screenH-25, r.Theme.FontSize, rl.Gray)

	case game.PhaseResolving:
		r.DrawCentered(fmt.Sprintf("Turn %d: %s", snap.Turn, snap.Active), cx, 12, r.Theme.HeaderFontSize, renderer.SideColor(snap.Active))
		if fuel, ok := primaryFuel(snap); ok {
			r.DrawLevelBar(cx-110, 36, "Fuel", float32(fuel), h.maxFuel, 220)
		}
		rl.DrawText(ControlsFlight, 10, screenH-25, r.Theme.FontSize, rl.Gray)

	case game.PhaseRoundOver:
		h.drawBanner(snap.Winner, screenW, screenH)
	}
}

func (h *HUD) drawBanner(winner components.Side, screenW, screenH int32) {
	r := h.renderer
	const bannerH = 110
	y := screenH/2 - bannerH/2
	rl.DrawRectangle(0, y, screenW, bannerH, r.Theme.Banner)
	r.DrawCentered(fmt.Sprintf("%s Wins!", winner), screenW/2, y+20, 40, renderer.SideColor(winner))
	r.DrawCentered("Press R to Restart", screenW/2, y+72, r.Theme.HeaderFontSize, rl.White)
}

// primaryFuel returns the fuel of the turn's live primary missile.
func primaryFuel(snap *game.Snapshot) (int, bool) {
	for _, p := range snap.Projectiles {
		if p.Primary && p.Alive {
			return p.Fuel, true
		}
	}
	return 0, false
}

// PerfPanel renders tick timing from a PerfCollector.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
	}
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	x, y := p.x, p.y
	p.renderer.DrawPanel(x, y, 200, 78)
	x += p.renderer.Theme.Padding
	y += 6

	rl.DrawText(fmt.Sprintf("FPS: %.0f", stats.FPS), x, y, 12, rl.LightGray)
	y += 14
	rl.DrawText(fmt.Sprintf("Tick: %dus avg, %dus max", stats.AvgTickDuration.Microseconds(), stats.MaxTickDuration.Microseconds()), x, y, 12, rl.LightGray)
	y += 14
	rl.DrawText(fmt.Sprintf("Projectiles: %d peak", stats.PeakProjectiles), x, y, 12, rl.LightGray)
	y += 14

	color := rl.LightGray
	if pct := stats.PhasePct[telemetry.PhaseAI]; pct > 50 {
		color = rl.Orange
	}
	rl.DrawText(fmt.Sprintf("AI: %.1f%% | Missiles: %.1f%%", stats.PhasePct[telemetry.PhaseAI], stats.PhasePct[telemetry.PhaseMissiles]), x, y, 12, color)
}
