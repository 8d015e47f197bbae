package game

import "github.com/pthm-cable/gravwar/systems"

// Input is one tick of player intent. Aim and power deltas and Fire apply
// while aiming; Thrust applies while the shot is in flight.
type Input struct {
	AimDelta   float64 // degrees
	PowerDelta float64
	Fire       bool
	Thrust     systems.ThrustDir
}
