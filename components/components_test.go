package components

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func TestTrailEvictsOldestFirst(t *testing.T) {
	trail := NewTrail(100)
	for i := 0; i < 250; i++ {
		trail.Push(r2.Vec{X: float64(i)})
		if trail.Len() > 100 {
			t.Fatalf("trail length %d exceeds capacity after %d pushes", trail.Len(), i+1)
		}
	}

	pts := trail.Points()
	if len(pts) != 100 {
		t.Fatalf("len = %d, want 100", len(pts))
	}
	if pts[0].X != 150 {
		t.Errorf("oldest = %v, want 150", pts[0].X)
	}
	if pts[99].X != 249 {
		t.Errorf("newest = %v, want 249", pts[99].X)
	}
	for i := 1; i < len(pts); i++ {
		if pts[i].X != pts[i-1].X+1 {
			t.Fatalf("trail out of order at %d: %v after %v", i, pts[i].X, pts[i-1].X)
		}
	}
}

func TestTrailPartial(t *testing.T) {
	trail := NewTrail(4)
	trail.Push(r2.Vec{X: 1})
	trail.Push(r2.Vec{X: 2})

	if trail.Len() != 2 || trail.Cap() != 4 {
		t.Fatalf("len/cap = %d/%d, want 2/4", trail.Len(), trail.Cap())
	}
	if trail.At(0).X != 1 || trail.At(1).X != 2 {
		t.Errorf("points = %v", trail.Points())
	}
}

func TestSideOther(t *testing.T) {
	tests := []struct {
		side Side
		want Side
	}{
		{SideLeft, SideRight},
		{SideRight, SideLeft},
		{SideNone, SideNone},
	}
	for _, tt := range tests {
		if got := tt.side.Other(); got != tt.want {
			t.Errorf("%v.Other() = %v, want %v", tt.side, got, tt.want)
		}
	}
}
