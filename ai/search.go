package ai

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/pthm-cable/gravwar/systems"
)

// Candidate is the outcome of the hard search.
type Candidate struct {
	Plan
	Score     float64 // closest approach, +Inf for rejected shots
	Index     int     // position in the grid, angle-major
	Evaluated int     // number of simulated shots
}

// Grid lists the angle and power values the hard search visits.
func (p *Planner) Grid() (angles, powers []float64) {
	h := p.cfg.AI.Hard
	for i := 0; float64(i)*h.AngleStep < 360; i++ {
		angles = append(angles, float64(i)*h.AngleStep)
	}
	n := int(math.Floor((h.PowerMax-h.PowerMin)/h.PowerStep+1e-9)) + 1
	for i := 0; i < n; i++ {
		powers = append(powers, h.PowerMin+float64(i)*h.PowerStep)
	}
	return angles, powers
}

// Search simulates every grid candidate from the shooter's muzzle and
// returns the one with the smallest closest approach to the target.
// Shots that get captured or never close in on the target score +Inf.
// Ties go to the first candidate; if nothing qualifies the first grid
// point is returned. The result depends only on the scenario.
func (p *Planner) Search(sc Scenario) Candidate {
	angles, powers := p.Grid()
	ticks := p.cfg.AI.Hard.SimTicks
	offset := p.cfg.Missile.MuzzleOffset

	scores := make([]float64, 0, len(angles)*len(powers))
	for _, a := range angles {
		muzzle := systems.MuzzlePosition(sc.Shooter, a, offset)
		for _, pw := range powers {
			res := systems.SimulateShot(sc.Field, sc.Bounds, muzzle, systems.LaunchVelocity(a, pw), sc.Target, ticks, nil)
			scores = append(scores, score(res))
		}
	}

	best := floats.MinIdx(scores)
	return Candidate{
		Plan:      Plan{Angle: angles[best/len(powers)], Power: powers[best%len(powers)]},
		Score:     scores[best],
		Index:     best,
		Evaluated: len(scores),
	}
}

func score(res systems.ShotResult) float64 {
	if res.Captured || !(res.Closest < res.StartDist) {
		return math.Inf(1)
	}
	return res.Closest
}
