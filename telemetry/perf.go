package telemetry

import (
	"log/slog"
	"time"
)

// TickPhase is one timed section of Round.AdvanceTick.
type TickPhase int

// Phases of a round tick, in the order they run.
const (
	PhaseInput TickPhase = iota
	PhaseAI
	PhaseMissiles
	PhaseCollisions
	PhaseSpawn
	PhaseTurn
	numPhases
)

var phaseNames = [numPhases]string{"input", "ai", "missiles", "collisions", "spawn", "turn"}

func (p TickPhase) String() string {
	if p < 0 || p >= numPhases {
		return "unknown"
	}
	return phaseNames[p]
}

// tickSample is the timing of one tick and how many projectiles were live
// when it ended.
type tickSample struct {
	total  time.Duration
	phases [numPhases]time.Duration
	live   int
}

// PerfCollector times round ticks over a ring of the last N ticks.
// All methods are no-ops on a nil collector.
type PerfCollector struct {
	ring   []tickSample
	next   int
	filled int

	cur        tickSample
	tickStart  time.Time
	phaseStart time.Time
	phase      TickPhase
	inPhase    bool

	lastFrame time.Time
	frame     time.Duration
}

// NewPerfCollector creates a collector averaging over window ticks.
func NewPerfCollector(window int) *PerfCollector {
	if window < 1 {
		window = 60
	}
	return &PerfCollector{ring: make([]tickSample, window)}
}

// StartTick begins timing a tick.
func (p *PerfCollector) StartTick() {
	if p == nil {
		return
	}
	p.cur = tickSample{}
	p.tickStart = time.Now()
	p.inPhase = false
}

// StartPhase closes the running phase and opens the next one. A phase
// entered twice in one tick accumulates.
func (p *PerfCollector) StartPhase(phase TickPhase) {
	if p == nil {
		return
	}
	now := time.Now()
	p.closePhase(now)
	p.phase = phase
	p.phaseStart = now
	p.inPhase = true
}

// EndTick records the tick along with the number of live projectiles.
func (p *PerfCollector) EndTick(live int) {
	if p == nil {
		return
	}
	now := time.Now()
	p.closePhase(now)
	p.cur.total = now.Sub(p.tickStart)
	p.cur.live = live

	p.ring[p.next] = p.cur
	p.next = (p.next + 1) % len(p.ring)
	if p.filled < len(p.ring) {
		p.filled++
	}
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.inPhase {
		p.cur.phases[p.phase] += now.Sub(p.phaseStart)
		p.inPhase = false
	}
}

// RecordFrame marks a rendered frame. Only the windowed shell calls it.
func (p *PerfCollector) RecordFrame() {
	if p == nil {
		return
	}
	now := time.Now()
	if !p.lastFrame.IsZero() {
		p.frame = now.Sub(p.lastFrame)
	}
	p.lastFrame = now
}

// PerfStats summarises the collector's window.
type PerfStats struct {
	Ticks           int
	AvgTickDuration time.Duration
	MaxTickDuration time.Duration
	PhasePct        [numPhases]float64 // share of total tick time
	PeakProjectiles int
	FPS             float64
}

// Stats aggregates the current window.
func (p *PerfCollector) Stats() PerfStats {
	var s PerfStats
	if p == nil {
		return s
	}
	if p.frame > 0 {
		s.FPS = float64(time.Second) / float64(p.frame)
	}
	if p.filled == 0 {
		return s
	}

	var total time.Duration
	var phases [numPhases]time.Duration
	for _, t := range p.ring[:p.filled] {
		total += t.total
		s.MaxTickDuration = max(s.MaxTickDuration, t.total)
		s.PeakProjectiles = max(s.PeakProjectiles, t.live)
		for i, d := range t.phases {
			phases[i] += d
		}
	}
	s.Ticks = p.filled
	s.AvgTickDuration = total / time.Duration(p.filled)
	if total > 0 {
		for i, d := range phases {
			s.PhasePct[i] = float64(d) / float64(total) * 100
		}
	}
	return s
}

// LogValue implements slog.LogValuer.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int("ticks", s.Ticks),
		slog.Int64("avg_tick_us", s.AvgTickDuration.Microseconds()),
		slog.Int64("max_tick_us", s.MaxTickDuration.Microseconds()),
		slog.Int("peak_projectiles", s.PeakProjectiles),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", s.FPS))
	}
	for i, pct := range s.PhasePct {
		if pct > 0.1 {
			attrs = append(attrs, slog.Float64(TickPhase(i).String()+"_pct", pct))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is one perf.csv row.
type PerfStatsCSV struct {
	WindowEnd       int64   `csv:"window_end"`
	AvgTickUS       int64   `csv:"avg_tick_us"`
	MaxTickUS       int64   `csv:"max_tick_us"`
	PeakProjectiles int     `csv:"peak_projectiles"`
	InputPct        float64 `csv:"input_pct"`
	AIPct           float64 `csv:"ai_pct"`
	MissilesPct     float64 `csv:"missiles_pct"`
	CollisionsPct   float64 `csv:"collisions_pct"`
	SpawnPct        float64 `csv:"spawn_pct"`
	TurnPct         float64 `csv:"turn_pct"`
}

// ToCSV flattens the stats for the window ending at tick windowEnd.
func (s PerfStats) ToCSV(windowEnd int64) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:       windowEnd,
		AvgTickUS:       s.AvgTickDuration.Microseconds(),
		MaxTickUS:       s.MaxTickDuration.Microseconds(),
		PeakProjectiles: s.PeakProjectiles,
		InputPct:        s.PhasePct[PhaseInput],
		AIPct:           s.PhasePct[PhaseAI],
		MissilesPct:     s.PhasePct[PhaseMissiles],
		CollisionsPct:   s.PhasePct[PhaseCollisions],
		SpawnPct:        s.PhasePct[PhaseSpawn],
		TurnPct:         s.PhasePct[PhaseTurn],
	}
}
