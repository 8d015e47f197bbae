package renderer

import (
	"math"
	"math/rand"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/gravwar/camera"
	"github.com/pthm-cable/gravwar/game"
)

// ParticleType selects how an effect particle looks.
type ParticleType uint8

const (
	ParticleDebris ParticleType = iota // asteroid breakup
	ParticleBlast                      // pad destroyed
)

// EffectParticle is a short-lived cosmetic dot. It has no effect on play.
type EffectParticle struct {
	Pos, Vel r2.Vec
	Life     int
	MaxLife  int
	Size     float32
	Type     ParticleType
}

// ParticleRenderer spawns explosion particles by diffing snapshots and
// renders them.
type ParticleRenderer struct {
	cam       *camera.Camera
	rng       *rand.Rand
	particles []EffectParticle

	lastTurn  int
	asteroids map[int]r2.Vec
	padsDown  [2]bool
}

// NewParticleRenderer creates a new particle renderer.
func NewParticleRenderer(cam *camera.Camera) *ParticleRenderer {
	return &ParticleRenderer{
		cam:       cam,
		rng:       rand.New(rand.NewSource(1)),
		asteroids: make(map[int]r2.Vec),
	}
}

// Observe compares snap with the previous one and starts effects for
// asteroids and pads that were destroyed in between.
func (r *ParticleRenderer) Observe(snap *game.Snapshot) {
	current := make(map[int]r2.Vec, len(snap.Asteroids))
	for _, a := range snap.Asteroids {
		current[a.ID] = a.Pos
	}
	// Asteroids are regenerated between turns; only mid-turn losses explode.
	if snap.Turn == r.lastTurn {
		for id, pos := range r.asteroids {
			if _, ok := current[id]; !ok {
				r.burst(pos, 24, ParticleDebris)
			}
		}
	}
	r.asteroids = current
	r.lastTurn = snap.Turn

	for i, p := range snap.Pads {
		if p.Destroyed && !r.padsDown[i] {
			r.burst(p.Pos, 60, ParticleBlast)
		}
		r.padsDown[i] = p.Destroyed
	}
}

func (r *ParticleRenderer) burst(at r2.Vec, n int, kind ParticleType) {
	for i := 0; i < n; i++ {
		a := r.rng.Float64() * 2 * math.Pi
		speed := 1 + r.rng.Float64()*4
		life := 30 + r.rng.Intn(30)
		r.particles = append(r.particles, EffectParticle{
			Pos:     at,
			Vel:     r2.Vec{X: math.Cos(a) * speed, Y: math.Sin(a) * speed},
			Life:    life,
			MaxLife: life,
			Size:    2 + r.rng.Float32()*3,
			Type:    kind,
		})
	}
}

// Update advances and expires particles.
func (r *ParticleRenderer) Update() {
	alive := r.particles[:0]
	for _, p := range r.particles {
		p.Life--
		if p.Life <= 0 {
			continue
		}
		p.Pos = r2.Add(p.Pos, p.Vel)
		p.Vel = r2.Scale(0.96, p.Vel)
		alive = append(alive, p)
	}
	r.particles = alive
}

// Reset drops all particles and the diff state.
func (r *ParticleRenderer) Reset() {
	r.particles = r.particles[:0]
	r.asteroids = make(map[int]r2.Vec)
	r.padsDown = [2]bool{}
	r.lastTurn = 0
}

// Draw renders all particles.
func (r *ParticleRenderer) Draw() {
	for i := range r.particles {
		p := &r.particles[i]

		lifeRatio := float32(p.Life) / float32(p.MaxLife)

		var color rl.Color
		switch p.Type {
		case ParticleDebris:
			color = rl.Color{R: 160, G: 140, B: 110, A: uint8(lifeRatio * 200)}
		case ParticleBlast:
			color = rl.Color{R: 255, G: 150, B: 50, A: uint8(lifeRatio * 230)}
		}

		size := p.Size * lifeRatio
		if size < 0.5 {
			size = 0.5
		}
		x, y := r.cam.WorldToScreen(float32(p.Pos.X), float32(p.Pos.Y))
		rl.DrawCircle(int32(x), int32(y), size, color)
	}
}
