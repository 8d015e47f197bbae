package ui

import (
	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/gravwar/ai"
	"github.com/pthm-cable/gravwar/game"
)

// MenuOption is one start-menu button.
type MenuOption struct {
	Label string
	Reset game.ResetConfig
}

// DefaultMenuOptions lists the game modes offered at start.
func DefaultMenuOptions() []MenuOption {
	return []MenuOption{
		{Label: "Two Players", Reset: game.ResetConfig{}},
		{Label: "vs CPU (Easy)", Reset: game.ResetConfig{CPUGame: true, Difficulty: ai.DifficultyEasy}},
		{Label: "vs CPU (Medium)", Reset: game.ResetConfig{CPUGame: true, Difficulty: ai.DifficultyMedium}},
		{Label: "vs CPU (Hard)", Reset: game.ResetConfig{CPUGame: true, Difficulty: ai.DifficultyHard}},
		{Label: "Spectate CPU vs CPU", Reset: game.ResetConfig{Spectate: true, Difficulty: ai.DifficultyHard}},
	}
}

// Menu is the raygui start menu.
type Menu struct {
	renderer *Renderer
	options  []MenuOption
	Open     bool
}

// NewMenu creates an open menu with the default options.
func NewMenu() *Menu {
	return &Menu{
		renderer: NewRenderer(),
		options:  DefaultMenuOptions(),
		Open:     true,
	}
}

// Draw renders the menu and returns the chosen mode, if any. Choosing a
// mode closes the menu.
func (m *Menu) Draw(screenW, screenH int32) (game.ResetConfig, bool) {
	if !m.Open {
		return game.ResetConfig{}, false
	}

	const btnW, btnH, gap = 240, 36, 10
	panelW := int32(btnW + 2*m.renderer.Theme.Padding*2)
	panelH := int32(80 + len(m.options)*(btnH+gap))
	x, y := anchor(AnchorCenter, panelW, panelH, screenW, screenH, 0)

	m.renderer.DrawPanel(x, y, panelW, panelH)
	m.renderer.DrawCentered("Gravity Artillery", x+panelW/2, y+20, 28, rl.White)

	bx := float32(x + (panelW-btnW)/2)
	by := float32(y + 70)
	for _, opt := range m.options {
		if gui.Button(rl.Rectangle{X: bx, Y: by, Width: btnW, Height: btnH}, opt.Label) {
			m.Open = false
			return opt.Reset, true
		}
		by += btnH + gap
	}
	return game.ResetConfig{}, false
}
