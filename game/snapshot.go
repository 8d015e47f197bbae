package game

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/gravwar/components"
	"github.com/pthm-cable/gravwar/systems"
)

// PadView is a read-only copy of a launch pad.
type PadView struct {
	Side      components.Side
	Pos       r2.Vec
	Angle     float64
	Power     float64
	Health    float64
	Destroyed bool
	CPU       bool
}

// AsteroidView is a read-only copy of a live asteroid.
type AsteroidView struct {
	ID     int
	Pos    r2.Vec
	Radius float64
	Look   uint8
}

// ProjectileView is a read-only copy of a projectile.
type ProjectileView struct {
	Pos      r2.Vec
	Vel      r2.Vec
	Owner    components.Side
	Alive    bool
	Fragment bool
	Primary  bool
	Fuel     int
	Cooldown int
	Trail    []r2.Vec
}

// Snapshot is everything a renderer or test needs after a tick. It shares
// no memory with the round.
type Snapshot struct {
	Tick           int64
	Turn           int
	Phase          Phase
	Active         components.Side
	Winner         components.Side
	ThinkRemaining int
	ThrustApplied  bool

	Pads        [2]PadView
	Sources     []systems.Source
	Asteroids   []AsteroidView
	Projectiles []ProjectileView
	LastShots   [2][]r2.Vec
}

// Snapshot copies the current round state.
func (r *Round) Snapshot() Snapshot {
	s := Snapshot{
		Tick:          r.tick,
		Turn:          r.turn,
		Phase:         r.phase,
		Active:        r.active,
		Winner:        r.winner,
		ThrustApplied: r.thrustApplied,
		Sources:       r.Sources(),
		Projectiles:   r.Projectiles(),
	}
	if r.phase == PhaseAwaitingAim && r.IsCPU(r.active) {
		s.ThinkRemaining = r.think
	}

	for i, p := range r.pads {
		s.Pads[i] = PadView{
			Side:      p.Pad.Side,
			Pos:       p.Pos,
			Angle:     p.Pad.Angle,
			Power:     p.Pad.Power,
			Health:    p.Pad.Health,
			Destroyed: p.Destroyed,
			CPU:       r.IsCPU(p.Pad.Side),
		}
	}

	for _, a := range r.asteroids {
		if a.Destroyed {
			continue
		}
		s.Asteroids = append(s.Asteroids, AsteroidView{ID: a.ID, Pos: a.Pos, Radius: a.Radius, Look: a.Look})
	}

	for i, shot := range r.lastShots {
		s.LastShots[i] = append([]r2.Vec(nil), shot...)
	}
	return s
}

// Phase returns the current turn controller state.
func (r *Round) Phase() Phase { return r.phase }

// Active returns the side whose turn it is.
func (r *Round) Active() components.Side { return r.active }

// Winner returns the winning side once the round is over, SideNone before.
func (r *Round) Winner() components.Side { return r.winner }

// Tick returns the number of ticks advanced so far.
func (r *Round) Tick() int64 { return r.tick }

// Turn returns the 1-based turn number.
func (r *Round) Turn() int { return r.turn }

// Health returns a pad's remaining health.
func (r *Round) Health(side components.Side) float64 {
	return r.pads[side].Pad.Health
}

// Fuel returns the thrusts left on side's shot in flight, or a full tank
// when side has nothing flying.
func (r *Round) Fuel(side components.Side) int {
	if r.hasPrimary && r.active == side {
		_, _, m, _ := r.missileMap.Get(r.primary)
		return m.Fuel
	}
	return r.cfg.Missile.Fuel
}

// Projectiles returns copies of every projectile of the current turn,
// spawn order, including ones that already stopped.
func (r *Round) Projectiles() []ProjectileView {
	if len(r.projectiles) == 0 {
		return nil
	}
	out := make([]ProjectileView, 0, len(r.projectiles))
	for _, e := range r.projectiles {
		pos, vel, m, trail := r.missileMap.Get(e)
		out = append(out, ProjectileView{
			Pos:      pos.Vec(),
			Vel:      vel.Vec(),
			Owner:    m.Owner,
			Alive:    m.Alive,
			Fragment: m.Fragment,
			Primary:  r.hasPrimary && e == r.primary,
			Fuel:     m.Fuel,
			Cooldown: m.ThrustCooldown,
			Trail:    trail.Points(),
		})
	}
	return out
}

// Sources returns the gravity sources, wells first.
func (r *Round) Sources() []systems.Source {
	return r.field.Sources()
}

// Bodies returns copies of the pads followed by the current asteroids,
// destroyed ones included.
func (r *Round) Bodies() []systems.Body {
	out := make([]systems.Body, 0, len(r.pads)+len(r.asteroids))
	for _, p := range r.pads {
		b := *p
		ps := *p.Pad
		b.Pad = &ps
		out = append(out, b)
	}
	for _, a := range r.asteroids {
		out = append(out, *a)
	}
	return out
}

// LastShot returns the stored path of side's previous primary shot.
func (r *Round) LastShot(side components.Side) []r2.Vec {
	return append([]r2.Vec(nil), r.lastShots[side]...)
}
