package main

import (
	"math"
	"math/rand"
	"sync"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/gravwar/ai"
	"github.com/pthm-cable/gravwar/components"
	"github.com/pthm-cable/gravwar/config"
	"github.com/pthm-cable/gravwar/game"
	"github.com/pthm-cable/gravwar/systems"
)

// duel is one pre-generated layout seen from both pads.
type duel struct {
	field systems.Field
	pads  [2]r2.Vec
}

// FitnessEvaluator scores medium CPU parameters by simulating the shots
// they produce on a fixed set of random layouts.
type FitnessEvaluator struct {
	params     *ParamVector
	baseConfig *config.Config
	duels      []duel
	bounds     systems.Bounds

	mu          sync.Mutex
	bestFitness float64
	lastHitRate float64
}

// NewFitnessEvaluator generates one layout per seed.
func NewFitnessEvaluator(params *ParamVector, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	fe := &FitnessEvaluator{
		params:      params,
		baseConfig:  baseCfg,
		bounds:      systems.BoundsFromConfig(baseCfg),
		bestFitness: math.Inf(1),
	}
	for _, seed := range seeds {
		lay := game.GenerateLayout(baseCfg, rand.New(rand.NewSource(seed)))
		fe.duels = append(fe.duels, duel{field: lay.Field(baseCfg), pads: lay.Pads})
	}
	return fe
}

// LastHitRate returns the share of shots from the most recent evaluation
// that came within pad hit radius of the target.
func (fe *FitnessEvaluator) LastHitRate() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastHitRate
}

// Evaluate returns the mean miss distance over every duel and side.
// Captured shots count as never having left the pad.
func (fe *FitnessEvaluator) Evaluate(raw []float64) float64 {
	cfg := *fe.baseConfig
	fe.params.ApplyToConfig(&cfg, raw)
	cfg.AI.Medium.AngleJitter = 0
	cfg.AI.Medium.PowerJitter = 0

	misses := make([]float64, 2*len(fe.duels))
	var wg sync.WaitGroup
	for i := range fe.duels {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			d := &fe.duels[i]
			planner := ai.NewPlanner(&cfg, ai.DifficultyMedium, rand.New(rand.NewSource(int64(i))))
			for _, side := range []components.Side{components.SideLeft, components.SideRight} {
				misses[2*i+int(side)] = fe.shoot(&cfg, planner, d, side)
			}
		}(i)
	}
	wg.Wait()

	hits := 0
	for _, m := range misses {
		if m < cfg.Pad.HitRadius {
			hits++
		}
	}
	fitness := stat.Mean(misses, nil)

	fe.mu.Lock()
	fe.lastHitRate = float64(hits) / float64(len(misses))
	if fitness < fe.bestFitness {
		fe.bestFitness = fitness
	}
	fe.mu.Unlock()
	return fitness
}

func (fe *FitnessEvaluator) shoot(cfg *config.Config, planner *ai.Planner, d *duel, side components.Side) float64 {
	sc := ai.Scenario{
		Shooter: d.pads[side],
		Target:  d.pads[side.Other()],
		Field:   &d.field,
		Bounds:  fe.bounds,
	}
	plan := planner.Plan(sc)
	muzzle := systems.MuzzlePosition(sc.Shooter, plan.Angle, cfg.Missile.MuzzleOffset)
	res := systems.SimulateShot(sc.Field, sc.Bounds, muzzle, systems.LaunchVelocity(plan.Angle, plan.Power), sc.Target, cfg.AI.Hard.SimTicks*3, nil)
	if res.Captured {
		return res.StartDist
	}
	return res.Closest
}
