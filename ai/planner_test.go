package ai

import (
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/gravwar/config"
	"github.com/pthm-cable/gravwar/systems"
)

func openScenario(cfg *config.Config) Scenario {
	field := systems.NewField(cfg)
	return Scenario{
		Shooter: r2.Vec{X: 100, Y: 600},
		Target:  r2.Vec{X: 1000, Y: 600},
		Field:   &field,
		Bounds:  systems.BoundsFromConfig(cfg),
	}
}

func TestParseDifficulty(t *testing.T) {
	tests := []struct {
		in   string
		want Difficulty
		err  bool
	}{
		{"", DifficultyNone, false},
		{"easy", DifficultyEasy, false},
		{"Medium", DifficultyMedium, false},
		{" hard ", DifficultyHard, false},
		{"nightmare", DifficultyNone, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDifficulty(tt.in)
			if (err != nil) != tt.err {
				t.Fatalf("err = %v, want error %v", err, tt.err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSearchFindsStraightShot(t *testing.T) {
	cfg := config.Default()
	p := NewPlanner(cfg, DifficultyHard, rand.New(rand.NewSource(1)))

	// Muzzle at x=135, target 865 px away on the same row. At 0° every
	// other angle misses by tens of pixels; power 6 passes within 1 px
	// after 144 ticks and is the first grid point with that score.
	best := p.Search(openScenario(cfg))

	if best.Angle != 0 || best.Power != 6 {
		t.Errorf("best = (%v, %v), want (0, 6)", best.Angle, best.Power)
	}
	if math.Abs(best.Score-1) > 1e-9 {
		t.Errorf("score = %v, want 1", best.Score)
	}
	if best.Evaluated != 72*15 {
		t.Errorf("evaluated = %d, want %d", best.Evaluated, 72*15)
	}
}

func TestSearchDeterministic(t *testing.T) {
	cfg := config.Default()
	sc := openScenario(cfg)
	sc.Field.Add(systems.NewWell(cfg, r2.Vec{X: 600, Y: 450}, 2500))
	sc.Field.Add(systems.NewBlackHole(cfg, r2.Vec{X: 1200, Y: 700}))

	a := NewPlanner(cfg, DifficultyHard, rand.New(rand.NewSource(1))).Search(sc)
	b := NewPlanner(cfg, DifficultyHard, rand.New(rand.NewSource(99))).Search(sc)

	if a != b {
		t.Errorf("search not deterministic: %+v vs %+v", a, b)
	}
}

func TestSearchAllRejectedReturnsFirst(t *testing.T) {
	cfg := config.Default()
	sc := openScenario(cfg)
	// A horizon wider than the muzzle offset swallows every shot on its first tick.
	sc.Field.Add(systems.Source{
		Kind:         systems.SourceBlackHole,
		Pos:          sc.Shooter,
		Mass:         8000,
		G:            3,
		EventHorizon: 100,
	})

	best := NewPlanner(cfg, DifficultyHard, rand.New(rand.NewSource(1))).Search(sc)

	if !math.IsInf(best.Score, 1) {
		t.Errorf("score = %v, want +Inf", best.Score)
	}
	if best.Index != 0 || best.Angle != 0 || best.Power != cfg.AI.Hard.PowerMin {
		t.Errorf("best = %+v, want first grid point", best)
	}
}

func TestPlanHardStaysNearSearch(t *testing.T) {
	cfg := config.Default()
	sc := openScenario(cfg)
	p := NewPlanner(cfg, DifficultyHard, rand.New(rand.NewSource(5)))
	best := p.Search(sc)

	plan := p.Plan(sc)
	if math.Abs(plan.Angle-best.Angle) > cfg.AI.Hard.AngleJitter {
		t.Errorf("angle %v strays from %v", plan.Angle, best.Angle)
	}
	if math.Abs(plan.Power-best.Power) > cfg.AI.Hard.PowerJitter {
		t.Errorf("power %v strays from %v", plan.Power, best.Power)
	}
}

func TestPlanEasyRanges(t *testing.T) {
	cfg := config.Default()
	sc := openScenario(cfg)
	p := NewPlanner(cfg, DifficultyEasy, rand.New(rand.NewSource(3)))

	for i := 0; i < 200; i++ {
		plan := p.Plan(sc)
		if math.Abs(plan.Angle) > cfg.AI.Easy.AngleJitter {
			t.Fatalf("angle %v outside ±%v", plan.Angle, cfg.AI.Easy.AngleJitter)
		}
		if plan.Power < cfg.AI.Easy.PowerMin || plan.Power > cfg.AI.Easy.PowerMax {
			t.Fatalf("power %v outside [%v, %v]", plan.Power, cfg.AI.Easy.PowerMin, cfg.AI.Easy.PowerMax)
		}
	}
}

func TestPlanMediumScalesWithDistance(t *testing.T) {
	cfg := config.Default()
	m := cfg.AI.Medium
	p := NewPlanner(cfg, DifficultyMedium, rand.New(rand.NewSource(4)))

	tests := []struct {
		name   string
		target r2.Vec
		want   float64 // power before jitter
	}{
		{"near clamps to min", r2.Vec{X: 300, Y: 600}, 8},
		{"mid", r2.Vec{X: 1100, Y: 600}, 10},
		{"far", r2.Vec{X: 2300, Y: 600}, 14.8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc := openScenario(cfg)
			sc.Target = tt.target
			for i := 0; i < 100; i++ {
				plan := p.Plan(sc)
				if math.Abs(plan.Power-tt.want) > m.PowerJitter+1e-9 {
					t.Fatalf("power %v not within ±%v of %v", plan.Power, m.PowerJitter, tt.want)
				}
				if math.Abs(plan.Angle) > m.AngleJitter {
					t.Fatalf("angle %v outside ±%v", plan.Angle, m.AngleJitter)
				}
			}
		})
	}
}

func TestPlanClampsToPadPower(t *testing.T) {
	cfg := config.Default()
	cfg.AI.Easy.PowerMin = 30
	cfg.AI.Easy.PowerMax = 40
	p := NewPlanner(cfg, DifficultyEasy, rand.New(rand.NewSource(1)))

	if got := p.Plan(openScenario(cfg)).Power; got != cfg.Pad.PowerMax {
		t.Errorf("power = %v, want %v", got, cfg.Pad.PowerMax)
	}
}
