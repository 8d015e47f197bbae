package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}

	if cfg.Playfield.Width != 2400 || cfg.Playfield.Height != 1200 {
		t.Errorf("playfield = %vx%v, want 2400x1200", cfg.Playfield.Width, cfg.Playfield.Height)
	}
	if cfg.Gravity.BlackHoleMass != 8000 {
		t.Errorf("black hole mass = %v, want 8000", cfg.Gravity.BlackHoleMass)
	}
	if cfg.Missile.TrailLength != 100 {
		t.Errorf("trail length = %d, want 100", cfg.Missile.TrailLength)
	}
	if cfg.Derived.HomeLeft != 240 || cfg.Derived.HomeRight != 2160 {
		t.Errorf("home bands = (%v, %v), want (240, 2160)", cfg.Derived.HomeLeft, cfg.Derived.HomeRight)
	}
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "override.yaml")
	data := []byte("pad:\n  damage: 20\n  friendly_fire: true\ngravity:\n  black_hole_g: 5.0\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Pad.Damage != 20 {
		t.Errorf("pad damage = %v, want 20", cfg.Pad.Damage)
	}
	if !cfg.Pad.FriendlyFire {
		t.Error("friendly fire should be enabled by overlay")
	}
	if cfg.Gravity.BlackHoleG != 5.0 {
		t.Errorf("black hole G = %v, want 5.0", cfg.Gravity.BlackHoleG)
	}
	// Untouched fields keep their defaults
	if cfg.Pad.HitRadius != 25 {
		t.Errorf("hit radius = %v, want default 25", cfg.Pad.HitRadius)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"horizon outside disk", func(c *Config) { c.Gravity.EventHorizon = c.Gravity.DiskRadius + 1 }},
		{"zero black hole mass", func(c *Config) { c.Gravity.BlackHoleMass = 0 }},
		{"inverted fragment range", func(c *Config) { c.Asteroid.FragmentsMin, c.Asteroid.FragmentsMax = 15, 10 }},
		{"inverted power range", func(c *Config) { c.Pad.PowerMin, c.Pad.PowerMax = 20, 3 }},
		{"zero hard step", func(c *Config) { c.AI.Hard.AngleStep = 0 }},
		{"inverted easy power range", func(c *Config) { c.AI.Easy.PowerMin, c.AI.Easy.PowerMax = 18, 5 }},
		{"inverted medium power range", func(c *Config) { c.AI.Medium.PowerMin, c.AI.Medium.PowerMax = 18, 8 }},
		{"inverted hard power range", func(c *Config) { c.AI.Hard.PowerMin, c.AI.Hard.PowerMax = 20, 6 }},
		{"zero hard sim ticks", func(c *Config) { c.AI.Hard.SimTicks = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestWriteYAMLRoundtrip(t *testing.T) {
	cfg := Default()
	cfg.Pad.Damage = 35

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML error: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if loaded.Pad.Damage != 35 {
		t.Errorf("pad damage = %v, want 35", loaded.Pad.Damage)
	}
}

func TestCfgPanicsBeforeInit(t *testing.T) {
	saved := global
	global = nil
	defer func() {
		global = saved
		if recover() == nil {
			t.Error("Cfg() should panic before Init()")
		}
	}()
	Cfg()
}

func TestValidateErrorOrderStable(t *testing.T) {
	cfg := Default()
	cfg.Placement.Wells.CountMin, cfg.Placement.Wells.CountMax = 3, 1
	cfg.Asteroid.FragmentsMin, cfg.Asteroid.FragmentsMax = 15, 10
	cfg.Pad.FragmentsMin, cfg.Pad.FragmentsMax = 20, 15

	want := cfg.Validate().Error()
	for i := 0; i < 20; i++ {
		if got := cfg.Validate().Error(); got != want {
			t.Fatalf("run %d: error text changed\ngot:  %q\nwant: %q", i, got, want)
		}
	}
	if !strings.Contains(want, "placement.wells") || strings.Index(want, "placement.wells") > strings.Index(want, "pad.fragments") {
		t.Errorf("errors out of declaration order: %q", want)
	}
}

func TestLoadRejectsInvertedHardPowerRange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("ai:\n  hard:\n    power_min: 20\n    power_max: 6\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("Load accepted an inverted ai.hard power range")
	}
}
