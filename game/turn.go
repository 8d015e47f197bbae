package game

import (
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/gravwar/components"
	"github.com/pthm-cable/gravwar/systems"
	"github.com/pthm-cable/gravwar/telemetry"
)

// AdvanceTick runs one fixed step of the round and returns its state.
//
// While aiming, a human side's aim, power and fire input is applied and a
// CPU side runs its planner instead. While resolving, thrust steers the
// turn's primary projectile. Every live projectile is then stepped and
// tested against the bodies; fragments spawned this tick start moving on
// the next one.
func (r *Round) AdvanceTick(in Input) Snapshot {
	perf := r.opts.Perf
	perf.StartTick()
	r.tick++
	r.thrustApplied = false

	perf.StartPhase(telemetry.PhaseInput)
	switch r.phase {
	case PhaseAwaitingAim:
		if r.planners[r.active] != nil {
			perf.StartPhase(telemetry.PhaseAI)
			r.updateCPU()
		} else {
			r.Aim(in.AimDelta, in.PowerDelta)
			if in.Fire {
				r.Fire()
			}
		}
	case PhaseResolving:
		if in.Thrust != systems.ThrustNone && r.planners[r.active] == nil {
			r.thrustApplied = r.Thrust(in.Thrust)
		}
	}

	if r.phase != PhaseAwaitingAim {
		r.resolve()
	}

	perf.EndTick(r.missiles.LiveCount())
	return r.Snapshot()
}

// Aim nudges the active pad's angle and power. Power is clamped to the
// configured range. Ignored outside the aiming phase.
func (r *Round) Aim(dAngle, dPower float64) {
	if r.phase != PhaseAwaitingAim || (dAngle == 0 && dPower == 0) {
		return
	}
	pad := r.pads[r.active].Pad
	pad.Angle = normAngle(pad.Angle + dAngle)
	pad.Power = math.Max(r.cfg.Pad.PowerMin, math.Min(r.cfg.Pad.PowerMax, pad.Power+dPower))
}

// Fire launches the active pad's shot and starts resolving. It returns
// false, changing nothing, unless the round is waiting for aim.
func (r *Round) Fire() bool {
	if r.phase != PhaseAwaitingAim {
		return false
	}

	pad := r.pads[r.active]
	angle, power := pad.Pad.Angle, pad.Pad.Power
	muzzle := systems.MuzzlePosition(pad.Pos, angle, r.cfg.Missile.MuzzleOffset)

	r.primary = r.spawn(systems.Spawn{
		Pos:   muzzle,
		Vel:   systems.LaunchVelocity(angle, power),
		Owner: r.active,
	}, false)
	r.hasPrimary = true
	r.phase = PhaseResolving

	r.opts.Collector.BeginTurn(r.turn, r.active, r.tick, angle, power)
	r.log.Debug("fired", "turn", r.turn, "side", r.active.String(), "angle", angle, "power", power)
	return true
}

// Thrust applies an impulse to the turn's primary projectile and reports
// whether it was accepted.
func (r *Round) Thrust(dir systems.ThrustDir) bool {
	if r.phase != PhaseResolving || !r.hasPrimary {
		return false
	}
	_, vel, m, _ := r.missileMap.Get(r.primary)
	if !r.thruster.Apply(vel, m, dir) {
		return false
	}
	r.opts.Collector.RecordThrust()
	return true
}

func (r *Round) spawn(s systems.Spawn, fragment bool) ecs.Entity {
	pos := components.Position{X: s.Pos.X, Y: s.Pos.Y}
	vel := components.Velocity{X: s.Vel.X, Y: s.Vel.Y}
	m := components.NewMissile(s.Owner, r.cfg.Missile.Fuel)
	m.Fragment = fragment
	trail := components.NewTrail(r.cfg.Missile.TrailLength)

	e := r.missileMap.NewEntity(&pos, &vel, &m, &trail)
	r.projectiles = append(r.projectiles, e)
	return e
}

// resolve steps projectiles, applies hits and spawns fragments. Once the
// round is over projectiles still coast but nothing collides.
func (r *Round) resolve() {
	perf := r.opts.Perf

	perf.StartPhase(telemetry.PhaseMissiles)
	events := r.missiles.Update()

	perf.StartPhase(telemetry.PhaseCollisions)
	r.spawns = r.spawns[:0]
	for i := range events {
		ev := &events[i]
		switch ev.Result {
		case systems.StepCaptured:
			r.opts.Collector.RecordCapture()
			r.log.Debug("projectile captured", "owner", ev.Owner.String(), "x", ev.Pos.X, "y", ev.Pos.Y)
		case systems.StepOutOfBounds:
			r.opts.Collector.RecordExit()
		case systems.StepMoved:
			if r.phase == PhaseResolving {
				r.collide(ev)
			}
		}
	}

	perf.StartPhase(telemetry.PhaseSpawn)
	for _, s := range r.spawns {
		r.spawn(s, true)
	}

	perf.StartPhase(telemetry.PhaseTurn)
	if r.phase == PhaseResolving && r.missiles.LiveCount() == 0 {
		r.endTurn()
	}
}

// collide applies the first hit for a projectile, asteroids before pads.
func (r *Round) collide(ev *systems.MissileEvent) {
	for _, b := range r.index.Candidates(ev.Pos) {
		if !systems.CheckCollision(b, ev.Pos, ev.Owner, r.policy) {
			continue
		}
		_, _, m, _ := r.missileMap.Get(ev.Entity)
		m.Alive = false

		if b.Kind == systems.BodyAsteroid {
			r.hitAsteroid(b, ev)
		} else {
			r.hitPad(b, ev)
		}
		return
	}
}

func (r *Round) hitAsteroid(b *systems.Body, ev *systems.MissileEvent) {
	frags := systems.Explode(b, ev.Vel, ev.Owner, r.asteroidB, r.rng)
	r.index.Remove(b)
	r.spawns = append(r.spawns, frags...)

	r.opts.Collector.RecordAsteroidHit()
	r.opts.Collector.RecordFragments(len(frags))
	r.log.Debug("asteroid destroyed", "id", b.ID, "fragments", len(frags))
}

func (r *Round) hitPad(b *systems.Body, ev *systems.MissileEvent) {
	side := b.Pad.Side
	r.opts.Collector.RecordPadHit()

	if systems.Damage(b, r.cfg.Pad.Damage) {
		r.index.Remove(b)
		if r.cfg.Pad.Explode {
			frags := systems.Explode(b, ev.Vel, ev.Owner, r.padB, r.rng)
			r.spawns = append(r.spawns, frags...)
			r.opts.Collector.RecordFragments(len(frags))
		}
		r.finish(side.Other())
		return
	}

	opponent := r.pads[side.Other()]
	systems.Relocate(b, systems.HomeRegion(r.cfg, side), opponent.Pos, r.rng)
	r.index.Insert(b)
	r.log.Debug("pad relocated", "side", side.String(), "health", b.Pad.Health, "x", b.Pos.X, "y", b.Pos.Y)
}

// endTurn stores the primary trail, clears projectiles, reshuffles the
// asteroids and hands the turn to the other side.
func (r *Round) endTurn() {
	r.storeLastShot()
	for _, e := range r.projectiles {
		r.world.RemoveEntity(e)
	}
	r.projectiles = r.projectiles[:0]
	r.hasPrimary = false

	r.regenerateAsteroids()
	r.opts.Collector.EndTurn(r.tick, components.SideNone)
	r.log.Info("turn over", "turn", r.turn, "side", r.active.String(), "tick", r.tick)

	r.turn++
	r.active = r.active.Other()
	r.phase = PhaseAwaitingAim
	r.think = r.cfg.AI.ThinkTicks
}

// finish ends the round in favor of winner.
func (r *Round) finish(winner components.Side) {
	r.storeLastShot()
	r.phase = PhaseRoundOver
	r.winner = winner
	r.opts.Collector.EndTurn(r.tick, winner)
	r.log.Info("round over", "winner", winner.String(), "turn", r.turn, "tick", r.tick)
}

func (r *Round) storeLastShot() {
	if !r.hasPrimary {
		return
	}
	_, _, _, trail := r.missileMap.Get(r.primary)
	r.lastShots[r.active] = trail.Points()
}

// normAngle wraps degrees into [0, 360).
func normAngle(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	return a
}
