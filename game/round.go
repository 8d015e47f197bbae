// Package game implements a round of the artillery duel: the turn
// controller state machine, projectile bookkeeping and the CPU hook.
package game

import (
	"log/slog"
	"math/rand"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/gravwar/ai"
	"github.com/pthm-cable/gravwar/components"
	"github.com/pthm-cable/gravwar/config"
	"github.com/pthm-cable/gravwar/systems"
	"github.com/pthm-cable/gravwar/telemetry"
)

// Phase is the turn controller state. The side it applies to is Round.Active
// (or Round.Winner once the round is over).
type Phase uint8

const (
	PhaseAwaitingAim Phase = iota
	PhaseResolving
	PhaseRoundOver
)

// String returns the display name for a Phase.
func (p Phase) String() string {
	switch p {
	case PhaseResolving:
		return "resolving"
	case PhaseRoundOver:
		return "round_over"
	}
	return "awaiting_aim"
}

// Options configures who controls each side and where a round reports.
type Options struct {
	CPU       [2]ai.Difficulty // DifficultyNone means human controlled
	Logger    *slog.Logger
	Collector *telemetry.Collector
	Perf      *telemetry.PerfCollector
}

// ResetConfig selects the controllers for a fresh round.
type ResetConfig struct {
	CPUGame    bool // side 1 is CPU controlled
	Difficulty ai.Difficulty
	Spectate   bool // both sides CPU controlled
}

// Controllers maps a ResetConfig to per-side difficulties.
func (rc ResetConfig) Controllers() [2]ai.Difficulty {
	var out [2]ai.Difficulty
	d := rc.Difficulty
	if d == ai.DifficultyNone {
		d = ai.DifficultyMedium
	}
	if rc.Spectate {
		out[components.SideLeft] = d
		out[components.SideRight] = d
	} else if rc.CPUGame {
		out[components.SideRight] = d
	}
	return out
}

// Round owns every piece of state for one duel.
type Round struct {
	cfg  *config.Config
	rng  *rand.Rand
	log  *slog.Logger
	opts Options

	world       *ecs.World
	missileMap  *ecs.Map4[components.Position, components.Velocity, components.Missile, components.Trail]
	missiles    *systems.MissileSystem
	projectiles []ecs.Entity
	primary     ecs.Entity
	hasPrimary  bool
	spawns      []systems.Spawn

	field     systems.Field
	bounds    systems.Bounds
	thruster  systems.Thruster
	policy    systems.HitPolicy
	asteroidB systems.FragmentSpec
	padB      systems.FragmentSpec

	pads      [2]*systems.Body
	asteroids []*systems.Body
	index     *systems.BodyIndex
	nextID    int

	phase         Phase
	active        components.Side
	winner        components.Side
	turn          int
	tick          int64
	think         int
	thrustApplied bool
	lastShots     [2][]r2.Vec

	planners [2]*ai.Planner
}

// NewRound builds a round on a freshly generated layout.
func NewRound(cfg *config.Config, opts Options, rng *rand.Rand) *Round {
	return NewRoundFromLayout(cfg, GenerateLayout(cfg, rng), opts, rng)
}

// NewRoundFromLayout builds a round on an explicit layout. The round starts
// with side 0 aiming.
func NewRoundFromLayout(cfg *config.Config, lay Layout, opts Options, rng *rand.Rand) *Round {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	world := ecs.NewWorld()
	r := &Round{
		cfg:  cfg,
		rng:  rng,
		log:  opts.Logger,
		opts: opts,

		world:      world,
		missileMap: ecs.NewMap4[components.Position, components.Velocity, components.Missile, components.Trail](world),

		field:     lay.Field(cfg),
		bounds:    systems.BoundsFromConfig(cfg),
		thruster:  systems.NewThruster(cfg),
		policy:    systems.HitPolicy{FriendlyFire: cfg.Pad.FriendlyFire},
		asteroidB: systems.AsteroidFragments(cfg),
		padB:      systems.PadFragments(cfg),
		index:     systems.NewBodyIndex(),

		phase:  PhaseAwaitingAim,
		active: components.SideLeft,
		winner: components.SideNone,
		turn:   1,
		think:  cfg.AI.ThinkTicks,
	}
	r.missiles = systems.NewMissileSystem(world, &r.field, r.bounds)

	for _, side := range []components.Side{components.SideLeft, components.SideRight} {
		pos := lay.Pads[side]
		pad := systems.NewPad(cfg, r.newID(), side, pos, systems.AimAt(pos, lay.Pads[side.Other()]))
		r.pads[side] = &pad
		r.index.Insert(r.pads[side])
	}
	for _, a := range lay.Asteroids {
		r.addAsteroid(a)
	}

	for side, d := range opts.CPU {
		if d != ai.DifficultyNone {
			r.planners[side] = ai.NewPlanner(cfg, d, rng)
		}
	}

	r.log.Info("round started",
		"wells", len(r.field.Wells),
		"black_holes", len(r.field.BlackHoles),
		"asteroids", len(r.asteroids),
		"cpu_left", opts.CPU[components.SideLeft].String(),
		"cpu_right", opts.CPU[components.SideRight].String(),
	)
	return r
}

// Reset returns a fresh randomized round with the given controllers.
// The previous round holds nothing that needs releasing.
func Reset(cfg *config.Config, rc ResetConfig, rng *rand.Rand) *Round {
	return NewRound(cfg, Options{CPU: rc.Controllers()}, rng)
}

// Reset returns a fresh round that keeps this round's config, random
// source and reporting sinks.
func (r *Round) Reset(rc ResetConfig) *Round {
	opts := r.opts
	opts.CPU = rc.Controllers()
	return NewRound(r.cfg, opts, r.rng)
}

func (r *Round) newID() int {
	id := r.nextID
	r.nextID++
	return id
}

func (r *Round) addAsteroid(a AsteroidSpec) {
	b := systems.NewAsteroid(r.cfg, r.newID(), a.Pos, r.rng)
	if a.Radius > 0 {
		b.Radius = a.Radius
	}
	r.asteroids = append(r.asteroids, &b)
	r.index.Insert(&b)
}

// regenerateAsteroids replaces the asteroid field with a fresh placement
// around the pads and gravity sources.
func (r *Round) regenerateAsteroids() {
	for _, b := range r.asteroids {
		r.index.Remove(b)
	}
	r.asteroids = r.asteroids[:0]

	pl := r.cfg.Placement
	placer := systems.NewPlacer(r.rng, pl.MinSeparation, pl.MaxAttempts)
	for _, p := range r.pads {
		placer.Reserve(p.Pos, p.Radius)
	}
	for _, s := range r.field.Wells {
		placer.Reserve(s.Pos, s.Radius)
	}
	for _, s := range r.field.BlackHoles {
		placer.Reserve(s.Pos, s.DiskRadius)
	}

	for _, a := range placeAsteroids(r.cfg, placer, r.rng) {
		r.addAsteroid(a)
	}
}
