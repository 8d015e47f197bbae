// Package ai implements the CPU opponent.
package ai

import (
	"fmt"
	"math"
	"math/rand"
	"strings"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/gravwar/config"
	"github.com/pthm-cable/gravwar/systems"
)

// Difficulty selects how a CPU side picks its shots.
type Difficulty uint8

const (
	DifficultyNone Difficulty = iota // human controlled
	DifficultyEasy
	DifficultyMedium
	DifficultyHard
)

// String returns the display name for a Difficulty.
func (d Difficulty) String() string {
	switch d {
	case DifficultyEasy:
		return "easy"
	case DifficultyMedium:
		return "medium"
	case DifficultyHard:
		return "hard"
	}
	return "none"
}

// ParseDifficulty converts a flag value into a Difficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none", "human":
		return DifficultyNone, nil
	case "easy":
		return DifficultyEasy, nil
	case "medium":
		return DifficultyMedium, nil
	case "hard":
		return DifficultyHard, nil
	}
	return DifficultyNone, fmt.Errorf("unknown difficulty %q", s)
}

// Scenario is what the CPU knows when it plans a shot.
type Scenario struct {
	Shooter r2.Vec // own pad center
	Target  r2.Vec // opponent pad center
	Field   *systems.Field
	Bounds  systems.Bounds
}

// Plan is an aim angle in degrees and a launch power.
type Plan struct {
	Angle float64
	Power float64
}

// Planner picks shots for one CPU side.
type Planner struct {
	cfg   *config.Config
	level Difficulty
	rng   *rand.Rand
}

// NewPlanner creates a planner for the given difficulty.
func NewPlanner(cfg *config.Config, level Difficulty, rng *rand.Rand) *Planner {
	return &Planner{cfg: cfg, level: level, rng: rng}
}

// Level returns the planner's difficulty.
func (p *Planner) Level() Difficulty { return p.level }

// Plan returns the next shot. Easy and medium aim along the line of sight
// with noise; hard runs Search and perturbs the winner slightly.
func (p *Planner) Plan(sc Scenario) Plan {
	var plan Plan
	switch p.level {
	case DifficultyEasy:
		plan = p.planEasy(sc)
	case DifficultyMedium:
		plan = p.planMedium(sc)
	case DifficultyHard:
		best := p.Search(sc)
		h := p.cfg.AI.Hard
		plan = Plan{
			Angle: best.Angle + p.jitter(h.AngleJitter),
			Power: best.Power + p.jitter(h.PowerJitter),
		}
	default:
		plan = Plan{Angle: systems.AimAt(sc.Shooter, sc.Target), Power: p.cfg.Pad.PowerDefault}
	}
	plan.Power = clamp(plan.Power, p.cfg.Pad.PowerMin, p.cfg.Pad.PowerMax)
	return plan
}

func (p *Planner) planEasy(sc Scenario) Plan {
	e := p.cfg.AI.Easy
	return Plan{
		Angle: systems.AimAt(sc.Shooter, sc.Target) + p.jitter(e.AngleJitter),
		Power: e.PowerMin + p.rng.Float64()*(e.PowerMax-e.PowerMin),
	}
}

func (p *Planner) planMedium(sc Scenario) Plan {
	m := p.cfg.AI.Medium
	d := r2.Norm(r2.Sub(sc.Target, sc.Shooter))
	power := clamp(MediumPower(m.PowerOffset, m.PowerPerDistance, d), m.PowerMin, m.PowerMax)
	return Plan{
		Angle: systems.AimAt(sc.Shooter, sc.Target) + p.jitter(m.AngleJitter),
		Power: power + p.jitter(m.PowerJitter),
	}
}

// MediumPower is the medium CPU's distance-to-power model before clamping.
func MediumPower(offset, perDistance, distance float64) float64 {
	return offset + perDistance*distance
}

func (p *Planner) jitter(r float64) float64 {
	if r <= 0 {
		return 0
	}
	return (p.rng.Float64()*2 - 1) * r
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
