package systems

import (
	"testing"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/gravwar/components"
	"github.com/pthm-cable/gravwar/config"
)

func TestMissileSystemUpdate(t *testing.T) {
	cfg := config.Default()
	world := ecs.NewWorld()
	mapper := ecs.NewMap4[components.Position, components.Velocity, components.Missile, components.Trail](world)

	field := NewField(cfg)
	field.Add(NewBlackHole(cfg, r2.Vec{X: 1200, Y: 600}))
	sys := NewMissileSystem(world, &field, BoundsFromConfig(cfg))

	spawn := func(x, y, vx, vy float64, alive bool) ecs.Entity {
		pos := components.Position{X: x, Y: y}
		vel := components.Velocity{X: vx, Y: vy}
		m := components.NewMissile(components.SideLeft, cfg.Missile.Fuel)
		m.Alive = alive
		trail := components.NewTrail(cfg.Missile.TrailLength)
		return mapper.NewEntity(&pos, &vel, &m, &trail)
	}

	flying := spawn(100, 100, 5, 0, true)
	captured := spawn(1210, 600, 0, 0, true)
	leaving := spawn(2399, 1100, 5, 0, true)
	spawn(500, 500, 1, 1, false)

	if n := sys.LiveCount(); n != 3 {
		t.Fatalf("LiveCount = %d, want 3", n)
	}

	events := sys.Update()
	if len(events) != 3 {
		t.Fatalf("got %d events, want 3 (dead missiles are skipped)", len(events))
	}

	results := map[ecs.Entity]StepResult{}
	for _, ev := range events {
		results[ev.Entity] = ev.Result
	}
	if results[flying] != StepMoved {
		t.Errorf("flying missile = %v, want moved", results[flying])
	}
	if results[captured] != StepCaptured {
		t.Errorf("missile at the black hole = %v, want captured", results[captured])
	}
	if results[leaving] != StepOutOfBounds {
		t.Errorf("edge missile = %v, want out_of_bounds", results[leaving])
	}
	if n := sys.LiveCount(); n != 1 {
		t.Errorf("LiveCount after update = %d, want 1", n)
	}

	_, _, m, trail := mapper.Get(flying)
	if !m.Alive || trail.Len() != 1 {
		t.Errorf("flying missile alive=%v trail=%d, want true/1", m.Alive, trail.Len())
	}
}
