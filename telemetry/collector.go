package telemetry

import "github.com/pthm-cable/gravwar/components"

// TurnRecord summarizes one resolved turn.
type TurnRecord struct {
	Turn         int     `csv:"turn"`
	Side         string  `csv:"side"`
	StartTick    int64   `csv:"start_tick"`
	Ticks        int64   `csv:"ticks"`
	Angle        float64 `csv:"angle"`
	Power        float64 `csv:"power"`
	Fragments    int     `csv:"fragments"`
	Captures     int     `csv:"captures"`
	Exits        int     `csv:"exits"`
	AsteroidHits int     `csv:"asteroid_hits"`
	PadHits      int     `csv:"pad_hits"`
	Thrusts      int     `csv:"thrusts"`
	Winner       string  `csv:"winner"`
}

// Collector counts events during the current turn and keeps finished
// turns until they are flushed. A nil Collector ignores every call.
type Collector struct {
	current TurnRecord
	open    bool
	pending []TurnRecord
	total   int
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{}
}

// BeginTurn starts counting a turn fired by side.
func (c *Collector) BeginTurn(turn int, side components.Side, tick int64, angle, power float64) {
	if c == nil {
		return
	}
	c.current = TurnRecord{
		Turn:      turn,
		Side:      side.String(),
		StartTick: tick,
		Angle:     angle,
		Power:     power,
	}
	c.open = true
}

// RecordFragments records n fragments spawned by a burst.
func (c *Collector) RecordFragments(n int) {
	if c == nil {
		return
	}
	c.current.Fragments += n
}

// RecordCapture records a projectile swallowed by a black hole.
func (c *Collector) RecordCapture() {
	if c == nil {
		return
	}
	c.current.Captures++
}

// RecordExit records a projectile leaving the playfield.
func (c *Collector) RecordExit() {
	if c == nil {
		return
	}
	c.current.Exits++
}

// RecordAsteroidHit records an asteroid destroyed by a projectile.
func (c *Collector) RecordAsteroidHit() {
	if c == nil {
		return
	}
	c.current.AsteroidHits++
}

// RecordPadHit records a projectile striking a pad.
func (c *Collector) RecordPadHit() {
	if c == nil {
		return
	}
	c.current.PadHits++
}

// RecordThrust records an accepted thrust impulse.
func (c *Collector) RecordThrust() {
	if c == nil {
		return
	}
	c.current.Thrusts++
}

// EndTurn closes the current turn. winner is SideNone unless the turn
// ended the round. Calling EndTurn without an open turn is a no-op.
func (c *Collector) EndTurn(tick int64, winner components.Side) {
	if c == nil || !c.open {
		return
	}
	c.current.Ticks = tick - c.current.StartTick
	if winner != components.SideNone {
		c.current.Winner = winner.String()
	}
	c.pending = append(c.pending, c.current)
	c.total++
	c.open = false
}

// Flush returns the turns finished since the last flush.
func (c *Collector) Flush() []TurnRecord {
	if c == nil || len(c.pending) == 0 {
		return nil
	}
	out := c.pending
	c.pending = nil
	return out
}

// Turns returns the number of finished turns.
func (c *Collector) Turns() int {
	if c == nil {
		return 0
	}
	return c.total
}
