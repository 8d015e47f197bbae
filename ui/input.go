package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/gravwar/game"
	"github.com/pthm-cable/gravwar/systems"
)

// Aim step sizes per key press.
const (
	AngleStep = 5.0
	PowerStep = 1.0
)

// Commands are shell-level key presses that do not reach the round.
type Commands struct {
	Reset          bool
	ToggleLastShot bool
	TogglePerf     bool
	Menu           bool
}

// ReadInput samples the keyboard for one tick. Aim keys and flight keys
// overlap; the round only reads the fields that apply to its phase.
func ReadInput() (game.Input, Commands) {
	var in game.Input

	if rl.IsKeyPressed(rl.KeyLeft) {
		in.AimDelta -= AngleStep
	}
	if rl.IsKeyPressed(rl.KeyRight) {
		in.AimDelta += AngleStep
	}
	if rl.IsKeyPressed(rl.KeyUp) {
		in.PowerDelta += PowerStep
	}
	if rl.IsKeyPressed(rl.KeyDown) {
		in.PowerDelta -= PowerStep
	}
	in.Fire = rl.IsKeyPressed(rl.KeySpace)
	in.Thrust = thrustKey()

	return in, Commands{
		Reset:          rl.IsKeyPressed(rl.KeyR),
		ToggleLastShot: rl.IsKeyPressed(rl.KeyTab),
		TogglePerf:     rl.IsKeyPressed(rl.KeyF3),
		Menu:           rl.IsKeyPressed(rl.KeyEscape),
	}
}

// thrustKey maps flight keys to a thrust direction. Thrust directions are
// relative to travel in screen space, where +90° turns clockwise, so the
// Right key fires the left-hand thruster.
func thrustKey() systems.ThrustDir {
	switch {
	case rl.IsKeyPressed(rl.KeySpace), rl.IsKeyPressed(rl.KeyUp):
		return systems.ThrustForward
	case rl.IsKeyPressed(rl.KeyDown), rl.IsKeyPressed(rl.KeyLeftShift), rl.IsKeyPressed(rl.KeyRightShift):
		return systems.ThrustReverse
	case rl.IsKeyPressed(rl.KeyRight):
		return systems.ThrustLeft
	case rl.IsKeyPressed(rl.KeyLeft):
		return systems.ThrustRight
	}
	return systems.ThrustNone
}
