package game

import (
	"github.com/pthm-cable/gravwar/ai"
	"github.com/pthm-cable/gravwar/components"
)

// updateCPU waits out the think delay, then aims the active pad with its
// planner and fires.
func (r *Round) updateCPU() {
	if r.think > 0 {
		r.think--
		return
	}

	planner := r.planners[r.active]
	plan := planner.Plan(r.scenario(r.active))

	pad := r.pads[r.active].Pad
	pad.Angle = normAngle(plan.Angle)
	pad.Power = plan.Power
	r.log.Debug("cpu plan", "side", r.active.String(), "level", planner.Level().String(),
		"angle", pad.Angle, "power", pad.Power)

	r.Fire()
}

// scenario describes the duel from side's point of view.
func (r *Round) scenario(side components.Side) ai.Scenario {
	return ai.Scenario{
		Shooter: r.pads[side].Pos,
		Target:  r.pads[side.Other()].Pos,
		Field:   &r.field,
		Bounds:  r.bounds,
	}
}

// IsCPU reports whether side is controlled by a planner.
func (r *Round) IsCPU(side components.Side) bool {
	return side >= 0 && int(side) < len(r.planners) && r.planners[side] != nil
}
