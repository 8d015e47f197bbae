package camera

import (
	"math"
	"testing"
)

func TestNewFitsPlayfield(t *testing.T) {
	cam := New(1200, 600, 2400, 1200)

	if cam.X != 1200 || cam.Y != 600 {
		t.Errorf("expected camera at (1200, 600), got (%f, %f)", cam.X, cam.Y)
	}
	if cam.Zoom != 0.5 || cam.MinZoom != 0.5 {
		t.Errorf("expected fit zoom 0.5, got %f (min %f)", cam.Zoom, cam.MinZoom)
	}

	minX, minY, maxX, maxY := cam.VisibleWorldBounds()
	if minX != 0 || minY != 0 || maxX != 2400 || maxY != 1200 {
		t.Errorf("visible bounds (%f,%f)-(%f,%f), want whole field", minX, minY, maxX, maxY)
	}
}

func TestFitLetterboxes(t *testing.T) {
	// Taller window: width limits the zoom.
	cam := New(1200, 1200, 2400, 1200)
	if cam.Zoom != 0.5 {
		t.Errorf("zoom = %f, want 0.5", cam.Zoom)
	}
	sx, sy := cam.WorldToScreen(0, 0)
	if sx != 0 || sy != 300 {
		t.Errorf("field corner at (%f, %f), want (0, 300)", sx, sy)
	}
}

func TestWorldToScreenCorners(t *testing.T) {
	cam := New(1200, 600, 2400, 1200)

	tests := []struct {
		wx, wy, sx, sy float32
	}{
		{0, 0, 0, 0},
		{2400, 1200, 1200, 600},
		{1200, 600, 600, 300},
	}
	for _, tt := range tests {
		sx, sy := cam.WorldToScreen(tt.wx, tt.wy)
		if math.Abs(float64(sx-tt.sx)) > 0.01 || math.Abs(float64(sy-tt.sy)) > 0.01 {
			t.Errorf("WorldToScreen(%v, %v) = (%v, %v), want (%v, %v)", tt.wx, tt.wy, sx, sy, tt.sx, tt.sy)
		}
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	cam := New(1200, 600, 2400, 1200)
	cam.SetZoom(1.5)
	cam.Pan(-100, 40)

	testCases := []struct{ sx, sy float32 }{
		{600, 300},
		{100, 100},
		{1100, 550},
	}

	for _, tc := range testCases {
		wx, wy := cam.ScreenToWorld(tc.sx, tc.sy)
		sx, sy := cam.WorldToScreen(wx, wy)
		if math.Abs(float64(sx-tc.sx)) > 0.01 || math.Abs(float64(sy-tc.sy)) > 0.01 {
			t.Errorf("roundtrip failed: (%f,%f) -> (%f,%f) -> (%f,%f)",
				tc.sx, tc.sy, wx, wy, sx, sy)
		}
	}
}

func TestPanStaysOnField(t *testing.T) {
	cam := New(1200, 600, 2400, 1200)
	cam.SetZoom(2)

	cam.Pan(-100000, 100000)
	if cam.X != 0 || cam.Y != 1200 {
		t.Errorf("center (%f, %f), want clamped to (0, 1200)", cam.X, cam.Y)
	}
}

func TestZoomClamp(t *testing.T) {
	cam := New(1200, 600, 2400, 1200)

	cam.SetZoom(0.01)
	if cam.Zoom != cam.MinZoom {
		t.Errorf("zoom %f below min %f", cam.Zoom, cam.MinZoom)
	}
	cam.SetZoom(100)
	if cam.Zoom != cam.MaxZoom {
		t.Errorf("zoom %f above max %f", cam.Zoom, cam.MaxZoom)
	}
}

func TestResizeKeepsFit(t *testing.T) {
	cam := New(1200, 600, 2400, 1200)
	cam.Resize(2400, 1200)

	if cam.Zoom != 1 {
		t.Errorf("zoom after resize = %f, want 1", cam.Zoom)
	}

	cam.SetZoom(3)
	cam.Resize(1200, 600)
	if cam.Zoom != 3 {
		t.Errorf("manual zoom changed on resize: %f", cam.Zoom)
	}
}

func TestIsVisible(t *testing.T) {
	cam := New(1200, 600, 2400, 1200)
	cam.SetZoom(2)

	if !cam.IsVisible(1200, 600, 1) {
		t.Error("center should be visible")
	}
	if cam.IsVisible(100, 100, 10) {
		t.Error("corner should be culled at 2x zoom")
	}
}
