package systems

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/gravwar/components"
)

// MissileEvent reports what happened to one missile during a tick.
type MissileEvent struct {
	Entity ecs.Entity
	Result StepResult
	Owner  components.Side
	Pos    r2.Vec
	Vel    r2.Vec
}

// MissileSystem steps every live missile entity through the gravity field.
type MissileSystem struct {
	filter ecs.Filter4[components.Position, components.Velocity, components.Missile, components.Trail]
	field  *Field
	bounds Bounds

	events []MissileEvent
}

// NewMissileSystem creates a missile system over the world's missiles.
func NewMissileSystem(w *ecs.World, field *Field, bounds Bounds) *MissileSystem {
	return &MissileSystem{
		filter: *ecs.NewFilter4[components.Position, components.Velocity, components.Missile, components.Trail](w),
		field:  field,
		bounds: bounds,
	}
}

// Update runs one tick. The returned slice is reused by the next call.
// Already-dead missiles are skipped and produce no event.
func (s *MissileSystem) Update() []MissileEvent {
	s.events = s.events[:0]

	query := s.filter.Query()
	for query.Next() {
		pos, vel, m, trail := query.Get()
		if !m.Alive {
			continue
		}

		res := StepMissile(pos, vel, m, trail, s.field, s.bounds)
		s.events = append(s.events, MissileEvent{
			Entity: query.Entity(),
			Result: res,
			Owner:  m.Owner,
			Pos:    pos.Vec(),
			Vel:    vel.Vec(),
		})
	}
	return s.events
}

// LiveCount returns the number of missiles still flying.
func (s *MissileSystem) LiveCount() int {
	n := 0
	query := s.filter.Query()
	for query.Next() {
		_, _, m, _ := query.Get()
		if m.Alive {
			n++
		}
	}
	return n
}
