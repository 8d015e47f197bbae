package renderer

import (
	"math/rand"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/gravwar/camera"
)

type star struct {
	x, y       float32
	brightness uint8
	size       float32
}

// BackgroundRenderer draws a fixed starfield behind the playfield.
type BackgroundRenderer struct {
	stars []star
}

// NewBackgroundRenderer scatters count stars over a worldW × worldH field.
// The same seed always yields the same sky.
func NewBackgroundRenderer(worldW, worldH float32, count int, seed int64) *BackgroundRenderer {
	rng := rand.New(rand.NewSource(seed))
	b := &BackgroundRenderer{stars: make([]star, count)}
	for i := range b.stars {
		b.stars[i] = star{
			x:          rng.Float32() * worldW,
			y:          rng.Float32() * worldH,
			brightness: uint8(60 + rng.Intn(140)),
			size:       0.5 + rng.Float32()*1.2,
		}
	}
	return b
}

// Draw clears the screen and renders the stars through cam.
func (b *BackgroundRenderer) Draw(cam *camera.Camera) {
	rl.ClearBackground(rl.Black)
	for _, s := range b.stars {
		if !cam.IsVisible(s.x, s.y, s.size) {
			continue
		}
		x, y := cam.WorldToScreen(s.x, s.y)
		rl.DrawCircleV(rl.Vector2{X: x, Y: y}, s.size, rl.Color{R: s.brightness, G: s.brightness, B: s.brightness, A: 255})
	}
}
