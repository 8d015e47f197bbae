package systems

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/gravwar/components"
	"github.com/pthm-cable/gravwar/config"
)

// Bounds represents the playfield. Anything outside [0,W]×[0,H] is lost.
type Bounds struct {
	Width, Height float64
}

// BoundsFromConfig returns the configured playfield bounds.
func BoundsFromConfig(cfg *config.Config) Bounds {
	return Bounds{Width: cfg.Playfield.Width, Height: cfg.Playfield.Height}
}

// Contains reports whether p is on the playfield (edges included).
func (b Bounds) Contains(p r2.Vec) bool {
	return p.X >= 0 && p.X <= b.Width && p.Y >= 0 && p.Y <= b.Height
}

// StepResult is the outcome of one missile tick.
type StepResult uint8

const (
	StepInactive    StepResult = iota // missile was already dead
	StepMoved                         // still flying
	StepCaptured                      // swallowed by a black hole, did not move
	StepOutOfBounds                   // moved off the playfield
)

// String returns the display name for a StepResult.
func (r StepResult) String() string {
	switch r {
	case StepMoved:
		return "moved"
	case StepCaptured:
		return "captured"
	case StepOutOfBounds:
		return "out_of_bounds"
	}
	return "inactive"
}

// StepMissile advances one missile by one tick.
//
// Order: cooldown, gravity into velocity, capture test against the position
// from before this tick's move, integrate, record trail, bounds test.
// A missile that crosses an event horizon mid-step is therefore only
// captured on the following tick.
func StepMissile(pos *components.Position, vel *components.Velocity, m *components.Missile,
	trail *components.Trail, field *Field, bounds Bounds) StepResult {
	if !m.Alive {
		return StepInactive
	}

	if m.ThrustCooldown > 0 {
		m.ThrustCooldown--
	}

	p := pos.Vec()
	v := r2.Add(vel.Vec(), field.Accumulate(p))
	vel.Set(v)

	if field.Captured(p) {
		m.Alive = false
		return StepCaptured
	}

	p = r2.Add(p, v)
	pos.Set(p)
	if trail != nil {
		trail.Push(p)
	}

	if !bounds.Contains(p) {
		m.Alive = false
		return StepOutOfBounds
	}
	return StepMoved
}

// ThrustDir selects which way a thrust impulse points relative to the
// current direction of travel.
type ThrustDir uint8

const (
	ThrustNone ThrustDir = iota
	ThrustForward
	ThrustReverse
	ThrustLeft  // velocity unit vector rotated +90°: (-vy, vx)
	ThrustRight // velocity unit vector rotated -90°: (vy, -vx)
)

// String returns the display name for a ThrustDir.
func (d ThrustDir) String() string {
	switch d {
	case ThrustForward:
		return "forward"
	case ThrustReverse:
		return "reverse"
	case ThrustLeft:
		return "left"
	case ThrustRight:
		return "right"
	}
	return "none"
}

// Thruster applies directional impulses using the configured constants.
type Thruster struct {
	Impulse  float64
	Cooldown int
}

// NewThruster returns a thruster with the configured impulse and cooldown.
func NewThruster(cfg *config.Config) Thruster {
	return Thruster{Impulse: cfg.Missile.ThrustImpulse, Cooldown: cfg.Missile.ThrustCooldown}
}

// Apply adds an impulse in direction dir. It needs fuel, an expired
// cooldown and a non-zero velocity; otherwise nothing changes and it
// returns false.
func (t Thruster) Apply(vel *components.Velocity, m *components.Missile, dir ThrustDir) bool {
	if dir == ThrustNone || !m.Alive || m.Fuel <= 0 || m.ThrustCooldown > 0 {
		return false
	}

	v := vel.Vec()
	speed := r2.Norm(v)
	if speed == 0 {
		return false
	}
	u := r2.Scale(1/speed, v)

	var d r2.Vec
	switch dir {
	case ThrustForward:
		d = u
	case ThrustReverse:
		d = r2.Scale(-1, u)
	case ThrustLeft:
		d = r2.Vec{X: -u.Y, Y: u.X}
	case ThrustRight:
		d = r2.Vec{X: u.Y, Y: -u.X}
	default:
		return false
	}

	vel.Set(r2.Add(v, r2.Scale(t.Impulse, d)))
	m.Fuel--
	m.ThrustCooldown = t.Cooldown
	return true
}

// LaunchVelocity returns the muzzle velocity for an aim angle in degrees.
func LaunchVelocity(angleDeg, power float64) r2.Vec {
	rad := angleDeg * math.Pi / 180
	return r2.Vec{X: math.Cos(rad) * power, Y: math.Sin(rad) * power}
}

// MuzzlePosition returns where a shot leaves a pad at origin aimed at angleDeg.
func MuzzlePosition(origin r2.Vec, angleDeg, offset float64) r2.Vec {
	rad := angleDeg * math.Pi / 180
	return r2.Add(origin, r2.Vec{X: math.Cos(rad) * offset, Y: math.Sin(rad) * offset})
}

// AimAt returns the angle in degrees from one point to another.
func AimAt(from, to r2.Vec) float64 {
	return math.Atan2(to.Y-from.Y, to.X-from.X) * 180 / math.Pi
}

// ShotResult summarizes a side-effect-free forward simulation.
type ShotResult struct {
	Closest     float64 // closest approach to the target
	StartDist   float64 // distance to the target at launch
	Captured    bool
	OutOfBounds bool
	Ticks       int // ticks simulated before the shot ended or ran out
	End         r2.Vec
}

// SimulateShot flies a ghost missile through the field with StepMissile
// for at most ticks steps, without thrust or collisions, and tracks the
// closest approach to target. Nothing outside the call is modified.
func SimulateShot(field *Field, bounds Bounds, start, vel, target r2.Vec, ticks int, path *components.Trail) ShotResult {
	pos := components.Position{X: start.X, Y: start.Y}
	v := components.Velocity{X: vel.X, Y: vel.Y}
	m := components.Missile{Alive: true}

	res := ShotResult{StartDist: r2.Norm(r2.Sub(start, target))}
	res.Closest = res.StartDist

	for res.Ticks < ticks {
		step := StepMissile(&pos, &v, &m, path, field, bounds)
		res.Ticks++
		if step == StepCaptured {
			res.Captured = true
			break
		}
		if d := r2.Norm(r2.Sub(pos.Vec(), target)); d < res.Closest {
			res.Closest = d
		}
		if step == StepOutOfBounds {
			res.OutOfBounds = true
			break
		}
	}
	res.End = pos.Vec()
	return res
}
