// Package config provides configuration loading and access for the game.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all game configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Playfield PlayfieldConfig `yaml:"playfield"`
	Gravity   GravityConfig   `yaml:"gravity"`
	Missile   MissileConfig   `yaml:"missile"`
	Asteroid  AsteroidConfig  `yaml:"asteroid"`
	Pad       PadConfig       `yaml:"pad"`
	Placement PlacementConfig `yaml:"placement"`
	AI        AIConfig        `yaml:"ai"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// PlayfieldConfig holds the simulated area. Missiles leaving it are lost.
type PlayfieldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// GravityConfig holds force-field constants.
type GravityConfig struct {
	WellG           float64 `yaml:"well_g"`
	Epsilon         float64 `yaml:"epsilon"`           // softening added to d²
	BlackHoleG      float64 `yaml:"black_hole_g"`      // 3.0..5.0 across variants
	BlackHoleMass   float64 `yaml:"black_hole_mass"`   // fixed, independent of placement ranges
	EventHorizon    float64 `yaml:"event_horizon"`     // capture radius
	BlackHoleRadius float64 `yaml:"black_hole_radius"` // drawn core
	DiskRadius      float64 `yaml:"disk_radius"`       // drawn accretion disk, must exceed EventHorizon
}

// MissileConfig holds projectile parameters.
type MissileConfig struct {
	Fuel           int     `yaml:"fuel"`
	ThrustImpulse  float64 `yaml:"thrust_impulse"`
	ThrustCooldown int     `yaml:"thrust_cooldown"` // ticks
	TrailLength    int     `yaml:"trail_length"`
	MuzzleOffset   float64 `yaml:"muzzle_offset"`
}

// AsteroidConfig holds asteroid and asteroid-fragment parameters.
type AsteroidConfig struct {
	RadiusMin        float64 `yaml:"radius_min"`
	RadiusMax        float64 `yaml:"radius_max"`
	FragmentsMin     int     `yaml:"fragments_min"`
	FragmentsMax     int     `yaml:"fragments_max"`
	FragmentJitter   float64 `yaml:"fragment_jitter"`
	NeutralFragments bool    `yaml:"neutral_fragments"` // fragments belong to no side
}

// PadConfig holds launch pad parameters.
type PadConfig struct {
	MaxHealth      float64 `yaml:"max_health"`
	HitRadius      float64 `yaml:"hit_radius"`
	Damage         float64 `yaml:"damage"`
	FriendlyFire   bool    `yaml:"friendly_fire"`
	Explode        bool    `yaml:"explode"` // emit a fragment burst when destroyed
	FragmentsMin   int     `yaml:"fragments_min"`
	FragmentsMax   int     `yaml:"fragments_max"`
	FragmentJitter float64 `yaml:"fragment_jitter"`
	HomeBand       float64 `yaml:"home_band"` // fraction of width on each side
	Margin         float64 `yaml:"margin"`
	PowerMin       float64 `yaml:"power_min"`
	PowerMax       float64 `yaml:"power_max"`
	PowerDefault   float64 `yaml:"power_default"`
}

// PlacementConfig holds randomized layout parameters.
type PlacementConfig struct {
	MinSeparation float64     `yaml:"min_separation"`
	MaxAttempts   int         `yaml:"max_attempts"`
	Wells         WellsConfig `yaml:"wells"`
	BlackHoles    BandConfig  `yaml:"black_holes"`
	Asteroids     BandConfig  `yaml:"asteroids"`
}

// WellsConfig holds planet placement parameters.
type WellsConfig struct {
	CountMin int     `yaml:"count_min"`
	CountMax int     `yaml:"count_max"`
	MassMin  float64 `yaml:"mass_min"`
	MassMax  float64 `yaml:"mass_max"`
	MarginX  float64 `yaml:"margin_x"`
	MarginY  float64 `yaml:"margin_y"`
}

// BandConfig places objects in a horizontal band [BandMin, BandMax] of the width.
type BandConfig struct {
	CountMin int     `yaml:"count_min"`
	CountMax int     `yaml:"count_max"`
	BandMin  float64 `yaml:"band_min"`
	BandMax  float64 `yaml:"band_max"`
	MarginY  float64 `yaml:"margin_y"`
}

// AIConfig holds CPU opponent parameters.
type AIConfig struct {
	ThinkTicks int          `yaml:"think_ticks"`
	Easy       EasyConfig   `yaml:"easy"`
	Medium     MediumConfig `yaml:"medium"`
	Hard       HardConfig   `yaml:"hard"`
}

// EasyConfig holds easy CPU parameters.
type EasyConfig struct {
	AngleJitter float64 `yaml:"angle_jitter"` // degrees
	PowerMin    float64 `yaml:"power_min"`
	PowerMax    float64 `yaml:"power_max"`
}

// MediumConfig holds medium CPU parameters.
type MediumConfig struct {
	AngleJitter      float64 `yaml:"angle_jitter"`
	PowerOffset      float64 `yaml:"power_offset"`
	PowerPerDistance float64 `yaml:"power_per_distance"`
	PowerMin         float64 `yaml:"power_min"`
	PowerMax         float64 `yaml:"power_max"`
	PowerJitter      float64 `yaml:"power_jitter"`
}

// HardConfig holds the grid-search parameters.
type HardConfig struct {
	AngleStep   float64 `yaml:"angle_step"`
	PowerMin    float64 `yaml:"power_min"`
	PowerMax    float64 `yaml:"power_max"`
	PowerStep   float64 `yaml:"power_step"`
	SimTicks    int     `yaml:"sim_ticks"`
	AngleJitter float64 `yaml:"angle_jitter"`
	PowerJitter float64 `yaml:"power_jitter"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	ScreenW32 float32 // Screen.Width as float32
	ScreenH32 float32 // Screen.Height as float32
	HomeLeft  float64 // right edge of side 0's home band
	HomeRight float64 // left edge of side 1's home band
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns a fresh copy of the embedded defaults.
// Tests and tools use it to tweak values without touching the global.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	cfg.ComputeDerived()

	return cfg, nil
}

// Validate rejects configurations the simulation cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Playfield.Width <= 0 || c.Playfield.Height <= 0 {
		errs = append(errs, errors.New("playfield dimensions must be positive"))
	}
	if c.Gravity.BlackHoleMass <= 0 {
		errs = append(errs, errors.New("gravity.black_hole_mass must be positive"))
	}
	if c.Gravity.EventHorizon >= c.Gravity.DiskRadius {
		errs = append(errs, fmt.Errorf("gravity.event_horizon (%.1f) must be inside disk_radius (%.1f)",
			c.Gravity.EventHorizon, c.Gravity.DiskRadius))
	}
	w := c.Placement.Wells
	if w.MassMin <= 0 || w.MassMax < w.MassMin {
		errs = append(errs, fmt.Errorf("placement.wells mass range [%.0f, %.0f] is invalid", w.MassMin, w.MassMax))
	}
	counts := []struct {
		name     string
		min, max int
	}{
		{"placement.wells", w.CountMin, w.CountMax},
		{"placement.black_holes", c.Placement.BlackHoles.CountMin, c.Placement.BlackHoles.CountMax},
		{"placement.asteroids", c.Placement.Asteroids.CountMin, c.Placement.Asteroids.CountMax},
		{"asteroid.fragments", c.Asteroid.FragmentsMin, c.Asteroid.FragmentsMax},
		{"pad.fragments", c.Pad.FragmentsMin, c.Pad.FragmentsMax},
	}
	for _, r := range counts {
		if r.min < 0 || r.max < r.min {
			errs = append(errs, fmt.Errorf("%s count range [%d, %d] is invalid", r.name, r.min, r.max))
		}
	}
	powers := []struct {
		name     string
		min, max float64
	}{
		{"pad", c.Pad.PowerMin, c.Pad.PowerMax},
		{"ai.easy", c.AI.Easy.PowerMin, c.AI.Easy.PowerMax},
		{"ai.medium", c.AI.Medium.PowerMin, c.AI.Medium.PowerMax},
		{"ai.hard", c.AI.Hard.PowerMin, c.AI.Hard.PowerMax},
	}
	for _, r := range powers {
		if r.max < r.min {
			errs = append(errs, fmt.Errorf("%s power range [%.1f, %.1f] is invalid", r.name, r.min, r.max))
		}
	}
	if c.Missile.TrailLength < 1 {
		errs = append(errs, errors.New("missile.trail_length must be at least 1"))
	}
	if c.AI.Hard.AngleStep <= 0 || c.AI.Hard.PowerStep <= 0 {
		errs = append(errs, errors.New("ai.hard steps must be positive"))
	}
	if c.AI.Hard.SimTicks < 1 {
		errs = append(errs, errors.New("ai.hard.sim_ticks must be at least 1"))
	}
	return errors.Join(errs...)
}

// ComputeDerived calculates values derived from loaded config.
// Call it again after mutating a loaded config by hand.
func (c *Config) ComputeDerived() {
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
	c.Derived.HomeLeft = c.Playfield.Width * c.Pad.HomeBand
	c.Derived.HomeRight = c.Playfield.Width * (1 - c.Pad.HomeBand)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
