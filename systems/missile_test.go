package systems

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/gravwar/components"
	"github.com/pthm-cable/gravwar/config"
)

func newTestMissile(x, y, vx, vy float64) (components.Position, components.Velocity, components.Missile, components.Trail) {
	return components.Position{X: x, Y: y},
		components.Velocity{X: vx, Y: vy},
		components.NewMissile(components.SideLeft, 20),
		components.NewTrail(100)
}

func TestStepMissileNoForce(t *testing.T) {
	cfg := config.Default()
	field := NewField(cfg)
	bounds := BoundsFromConfig(cfg)
	pos, vel, m, trail := newTestMissile(100, 100, 3, 4)

	res := StepMissile(&pos, &vel, &m, &trail, &field, bounds)

	if res != StepMoved {
		t.Fatalf("result = %v, want moved", res)
	}
	if pos.X != 103 || pos.Y != 104 {
		t.Errorf("position = (%v, %v), want (103, 104)", pos.X, pos.Y)
	}
	if vel.X != 3 || vel.Y != 4 {
		t.Errorf("velocity changed to (%v, %v)", vel.X, vel.Y)
	}
	if trail.Len() != 1 || trail.At(0) != (r2.Vec{X: 103, Y: 104}) {
		t.Errorf("trail = %v, want [(103, 104)]", trail.Points())
	}
}

func TestStepMissileCapturedDoesNotMove(t *testing.T) {
	cfg := config.Default()
	field := NewField(cfg)
	field.Add(NewBlackHole(cfg, r2.Vec{X: 500, Y: 500}))
	pos, vel, m, trail := newTestMissile(530, 500, 0, 20)

	res := StepMissile(&pos, &vel, &m, &trail, &field, BoundsFromConfig(cfg))

	if res != StepCaptured {
		t.Fatalf("result = %v, want captured", res)
	}
	if m.Alive {
		t.Error("captured missile should be inactive")
	}
	if pos.X != 530 || pos.Y != 500 {
		t.Errorf("captured missile moved to (%v, %v)", pos.X, pos.Y)
	}
	if trail.Len() != 0 {
		t.Errorf("captured missile recorded trail %v", trail.Points())
	}

	// Dead missiles stay put.
	if res := StepMissile(&pos, &vel, &m, &trail, &field, BoundsFromConfig(cfg)); res != StepInactive {
		t.Errorf("second step = %v, want inactive", res)
	}
}

// The capture test uses the position from before the tick's move, so a
// missile that jumps into the horizon is only captured on the next tick.
func TestStepMissileCaptureUsesPreMovePosition(t *testing.T) {
	cfg := config.Default()
	field := NewField(cfg)
	center := r2.Vec{X: 500, Y: 500}
	field.Add(NewBlackHole(cfg, center))
	bounds := BoundsFromConfig(cfg)
	pos, vel, m, trail := newTestMissile(540, 500, -10, 0)

	res := StepMissile(&pos, &vel, &m, &trail, &field, bounds)
	if res != StepMoved {
		t.Fatalf("first step = %v, want moved", res)
	}
	inside := r2.Norm(r2.Sub(pos.Vec(), center))
	if inside >= cfg.Gravity.EventHorizon {
		t.Fatalf("setup: missile should be inside the horizon after one step, d=%v", inside)
	}
	if !m.Alive {
		t.Fatal("missile inside the horizon must survive the tick it crossed in")
	}

	before := pos
	res = StepMissile(&pos, &vel, &m, &trail, &field, bounds)
	if res != StepCaptured {
		t.Fatalf("second step = %v, want captured", res)
	}
	if pos != before {
		t.Errorf("missile moved on capture tick: %v -> %v", before, pos)
	}
}

func TestStepMissileOutOfBounds(t *testing.T) {
	cfg := config.Default()
	field := NewField(cfg)
	pos, vel, m, trail := newTestMissile(2395, 600, 10, 0)

	res := StepMissile(&pos, &vel, &m, &trail, &field, BoundsFromConfig(cfg))

	if res != StepOutOfBounds || m.Alive {
		t.Fatalf("result = %v alive=%v, want out_of_bounds and dead", res, m.Alive)
	}
	if pos.X != 2405 {
		t.Errorf("x = %v, want 2405", pos.X)
	}
}

func TestStepMissileTrailBounded(t *testing.T) {
	cfg := config.Default()
	field := NewField(cfg)
	bounds := Bounds{Width: 1e6, Height: 1e6}
	pos, vel, m, trail := newTestMissile(0, 0, 1, 1)

	for i := 0; i < 150; i++ {
		StepMissile(&pos, &vel, &m, &trail, &field, bounds)
	}
	if trail.Len() != 100 {
		t.Fatalf("trail length = %d, want 100", trail.Len())
	}
	if got := trail.At(0); got.X != 51 {
		t.Errorf("oldest trail point x = %v, want 51", got.X)
	}
	if got := trail.At(99); got.X != 150 {
		t.Errorf("newest trail point x = %v, want 150", got.X)
	}
}

func TestStepMissileCooldownCountsDown(t *testing.T) {
	cfg := config.Default()
	field := NewField(cfg)
	bounds := Bounds{Width: 1e6, Height: 1e6}
	pos, vel, m, trail := newTestMissile(0, 0, 1, 0)
	m.ThrustCooldown = 3

	for i := 0; i < 5; i++ {
		StepMissile(&pos, &vel, &m, &trail, &field, bounds)
	}
	if m.ThrustCooldown != 0 {
		t.Errorf("cooldown = %d, want 0", m.ThrustCooldown)
	}
}

func TestThrusterApply(t *testing.T) {
	cfg := config.Default()
	thruster := NewThruster(cfg)

	tests := []struct {
		name   string
		dir    ThrustDir
		wantVX float64
		wantVY float64
	}{
		{"forward", ThrustForward, 6, 8},
		{"reverse", ThrustReverse, 0, 0},
		{"left", ThrustLeft, -1, 7},
		{"right", ThrustRight, 7, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vel := components.Velocity{X: 3, Y: 4}
			m := components.NewMissile(components.SideLeft, 20)

			if !thruster.Apply(&vel, &m, tt.dir) {
				t.Fatal("thrust should apply")
			}
			if math.Abs(vel.X-tt.wantVX) > 1e-9 || math.Abs(vel.Y-tt.wantVY) > 1e-9 {
				t.Errorf("velocity = (%v, %v), want (%v, %v)", vel.X, vel.Y, tt.wantVX, tt.wantVY)
			}
			if m.Fuel != 19 {
				t.Errorf("fuel = %d, want 19", m.Fuel)
			}
			if m.ThrustCooldown != cfg.Missile.ThrustCooldown {
				t.Errorf("cooldown = %d, want %d", m.ThrustCooldown, cfg.Missile.ThrustCooldown)
			}
		})
	}
}

func TestThrusterRejects(t *testing.T) {
	cfg := config.Default()
	thruster := NewThruster(cfg)

	tests := []struct {
		name     string
		vel      components.Velocity
		fuel     int
		cooldown int
		dir      ThrustDir
	}{
		{"zero velocity", components.Velocity{}, 20, 0, ThrustForward},
		{"no fuel", components.Velocity{X: 1}, 0, 0, ThrustForward},
		{"cooling down", components.Velocity{X: 1}, 20, 4, ThrustLeft},
		{"no direction", components.Velocity{X: 1}, 20, 0, ThrustNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vel := tt.vel
			m := components.NewMissile(components.SideLeft, tt.fuel)
			m.ThrustCooldown = tt.cooldown

			if thruster.Apply(&vel, &m, tt.dir) {
				t.Fatal("thrust should be rejected")
			}
			if vel != tt.vel || m.Fuel != tt.fuel || m.ThrustCooldown != tt.cooldown {
				t.Errorf("rejected thrust changed state: vel=%v fuel=%d cooldown=%d", vel, m.Fuel, m.ThrustCooldown)
			}
		})
	}
}

func TestLaunchGeometry(t *testing.T) {
	v := LaunchVelocity(0, 10)
	if math.Abs(v.X-10) > 1e-12 || math.Abs(v.Y) > 1e-12 {
		t.Errorf("LaunchVelocity(0, 10) = %v", v)
	}
	v = LaunchVelocity(-90, 5)
	if math.Abs(v.X) > 1e-12 || math.Abs(v.Y+5) > 1e-12 {
		t.Errorf("LaunchVelocity(-90, 5) = %v", v)
	}
	p := MuzzlePosition(r2.Vec{X: 100, Y: 100}, 90, 35)
	if math.Abs(p.X-100) > 1e-12 || math.Abs(p.Y-135) > 1e-12 {
		t.Errorf("MuzzlePosition = %v, want (100, 135)", p)
	}
	if a := AimAt(r2.Vec{}, r2.Vec{X: -1, Y: 0}); math.Abs(a-180) > 1e-12 {
		t.Errorf("AimAt west = %v, want 180", a)
	}
}

func TestSimulateShotStraightLine(t *testing.T) {
	cfg := config.Default()
	field := NewField(cfg)
	bounds := BoundsFromConfig(cfg)

	res := SimulateShot(&field, bounds, r2.Vec{X: 100, Y: 600}, r2.Vec{X: 10, Y: 0}, r2.Vec{X: 2000, Y: 600}, 200, nil)

	if res.Captured || res.OutOfBounds {
		t.Fatalf("unexpected end: %+v", res)
	}
	if res.Closest > 1e-9 {
		t.Errorf("closest = %v, want 0", res.Closest)
	}
	if res.StartDist != 1900 {
		t.Errorf("start distance = %v, want 1900", res.StartDist)
	}
	if res.Ticks != 200 {
		t.Errorf("ticks = %d, want 200", res.Ticks)
	}
}

func TestSimulateShotCaptured(t *testing.T) {
	cfg := config.Default()
	field := NewField(cfg)
	field.Add(NewBlackHole(cfg, r2.Vec{X: 600, Y: 600}))

	res := SimulateShot(&field, BoundsFromConfig(cfg), r2.Vec{X: 100, Y: 600}, r2.Vec{X: 10, Y: 0}, r2.Vec{X: 2000, Y: 600}, 200, nil)

	if !res.Captured {
		t.Fatalf("shot straight through a black hole should be captured: %+v", res)
	}
	if res.Ticks >= 200 {
		t.Errorf("captured shot ran all %d ticks", res.Ticks)
	}
}

func TestSimulateShotHasNoSideEffects(t *testing.T) {
	cfg := config.Default()
	field := NewField(cfg)
	field.Add(NewWell(cfg, r2.Vec{X: 1200, Y: 300}, 2500))
	before := append([]Source(nil), field.Wells...)

	path := components.NewTrail(50)
	SimulateShot(&field, BoundsFromConfig(cfg), r2.Vec{X: 100, Y: 600}, r2.Vec{X: 10, Y: -3}, r2.Vec{X: 2000, Y: 600}, 120, &path)

	if len(field.Wells) != 1 || field.Wells[0] != before[0] {
		t.Error("SimulateShot modified the field")
	}
	if path.Len() == 0 {
		t.Error("path should record the ghost trajectory")
	}
}
