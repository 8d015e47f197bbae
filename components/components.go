// Package components defines ECS components for the simulation.
package components

import "gonum.org/v1/gonum/spatial/r2"

// Side identifies a player. SideNone marks neutral projectiles.
type Side int8

const (
	SideNone Side = -1
	SideLeft Side = 0
	SideRight Side = 1
)

// Other returns the opposing side. SideNone has no opponent.
func (s Side) Other() Side {
	switch s {
	case SideLeft:
		return SideRight
	case SideRight:
		return SideLeft
	}
	return SideNone
}

// String returns the display name for a Side.
func (s Side) String() string {
	switch s {
	case SideLeft:
		return "Player 1"
	case SideRight:
		return "Player 2"
	}
	return "Neutral"
}

// Missile holds projectile state that is not kinematic.
type Missile struct {
	Owner          Side
	Fuel           int  // thrusts left
	ThrustCooldown int  // ticks until the next thrust is allowed
	Alive          bool
	Fragment       bool // spawned by an asteroid or pad burst
}

// NewMissile returns a live missile with a full tank.
func NewMissile(owner Side, fuel int) Missile {
	return Missile{Owner: owner, Fuel: fuel, Alive: true}
}

// Trail is a bounded FIFO of recent positions. The oldest entry is evicted
// once Cap is reached.
type Trail struct {
	buf   []r2.Vec
	start int
	n     int
}

// NewTrail creates an empty trail holding at most capacity points.
func NewTrail(capacity int) Trail {
	if capacity < 1 {
		capacity = 1
	}
	return Trail{buf: make([]r2.Vec, capacity)}
}

// Push appends p, evicting the oldest point when full.
func (t *Trail) Push(p r2.Vec) {
	if len(t.buf) == 0 {
		t.buf = make([]r2.Vec, 1)
	}
	if t.n < len(t.buf) {
		t.buf[(t.start+t.n)%len(t.buf)] = p
		t.n++
		return
	}
	t.buf[t.start] = p
	t.start = (t.start + 1) % len(t.buf)
}

// Len returns the number of stored points.
func (t *Trail) Len() int { return t.n }

// Cap returns the maximum number of stored points.
func (t *Trail) Cap() int { return len(t.buf) }

// At returns the i-th point, oldest first.
func (t *Trail) At(i int) r2.Vec {
	return t.buf[(t.start+i)%len(t.buf)]
}

// Points returns a copy of the stored points, oldest first.
func (t *Trail) Points() []r2.Vec {
	out := make([]r2.Vec, t.n)
	for i := range out {
		out[i] = t.At(i)
	}
	return out
}
