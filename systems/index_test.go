package systems

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/gravwar/components"
	"github.com/pthm-cable/gravwar/config"
)

func TestBodyIndexCandidates(t *testing.T) {
	cfg := config.Default()
	pad := NewPad(cfg, 0, components.SideLeft, r2.Vec{X: 200, Y: 200}, 0)
	ast := Body{ID: 3, Kind: BodyAsteroid, Pos: r2.Vec{X: 210, Y: 200}, Radius: 30}
	far := Body{ID: 4, Kind: BodyAsteroid, Pos: r2.Vec{X: 1200, Y: 600}, Radius: 40}

	ix := NewBodyIndex()
	ix.Insert(&pad)
	ix.Insert(&ast)
	ix.Insert(&far)

	if ix.Len() != 3 {
		t.Fatalf("Len = %d, want 3", ix.Len())
	}

	got := ix.Candidates(r2.Vec{X: 205, Y: 205})
	if len(got) != 2 {
		t.Fatalf("got %d candidates, want 2", len(got))
	}
	if got[0] != &ast || got[1] != &pad {
		t.Errorf("candidates should list asteroids before pads, got kinds %v, %v", got[0].Kind, got[1].Kind)
	}

	if got := ix.Candidates(r2.Vec{X: 800, Y: 800}); len(got) != 0 {
		t.Errorf("empty area returned %d candidates", len(got))
	}
}

func TestBodyIndexSkipsDestroyed(t *testing.T) {
	ast := Body{ID: 3, Kind: BodyAsteroid, Pos: r2.Vec{X: 500, Y: 500}, Radius: 30}
	ix := NewBodyIndex()
	ix.Insert(&ast)

	ast.Destroyed = true
	if got := ix.Candidates(ast.Pos); len(got) != 0 {
		t.Errorf("destroyed body still a candidate")
	}
}

func TestBodyIndexReinsertAfterMove(t *testing.T) {
	cfg := config.Default()
	pad := NewPad(cfg, 1, components.SideRight, r2.Vec{X: 2200, Y: 300}, 180)
	ix := NewBodyIndex()
	ix.Insert(&pad)

	old := pad.Pos
	pad.Pos = r2.Vec{X: 2250, Y: 900}
	ix.Insert(&pad)

	if ix.Len() != 1 {
		t.Fatalf("Len = %d after reinsert, want 1", ix.Len())
	}
	if got := ix.Candidates(old); len(got) != 0 {
		t.Error("pad still indexed at its old position")
	}
	if got := ix.Candidates(pad.Pos); len(got) != 1 {
		t.Error("pad not indexed at its new position")
	}

	ix.Remove(&pad)
	if ix.Len() != 0 || len(ix.Candidates(pad.Pos)) != 0 {
		t.Error("Remove left the pad indexed")
	}
}
