package systems

import (
	"sort"

	"github.com/dhconnelly/rtreego"
	"gonum.org/v1/gonum/spatial/r2"
)

// bodyEntry pins the rectangle a body was inserted with, so it can be
// deleted after the body has moved.
type bodyEntry struct {
	body *Body
	rect rtreego.Rect
}

func (e *bodyEntry) Bounds() rtreego.Rect { return e.rect }

// BodyIndex is an R-tree over live destructible bodies used as the
// collision broadphase.
type BodyIndex struct {
	tree    *rtreego.Rtree
	entries map[*Body]*bodyEntry
}

// NewBodyIndex creates an empty index.
func NewBodyIndex() *BodyIndex {
	return &BodyIndex{
		tree:    rtreego.NewTree(2, 2, 8),
		entries: make(map[*Body]*bodyEntry),
	}
}

// Insert adds b, or refreshes its rectangle if it is already indexed.
func (ix *BodyIndex) Insert(b *Body) {
	ix.Remove(b)
	e := &bodyEntry{body: b, rect: bodyRect(b)}
	ix.entries[b] = e
	ix.tree.Insert(e)
}

// Remove drops b from the index. Unknown bodies are ignored.
func (ix *BodyIndex) Remove(b *Body) {
	e, ok := ix.entries[b]
	if !ok {
		return
	}
	ix.tree.Delete(e)
	delete(ix.entries, b)
}

// Len returns the number of indexed bodies.
func (ix *BodyIndex) Len() int { return len(ix.entries) }

// Candidates returns live bodies whose bounding box contains p,
// asteroids before pads and by ascending ID within a kind.
func (ix *BodyIndex) Candidates(p r2.Vec) []*Body {
	hits := ix.tree.SearchIntersect(rtreego.Point{p.X, p.Y}.ToRect(0.01))
	if len(hits) == 0 {
		return nil
	}

	out := make([]*Body, 0, len(hits))
	for _, h := range hits {
		b := h.(*bodyEntry).body
		if !b.Destroyed {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Kind != out[j].Kind {
			return out[i].Kind < out[j].Kind
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func bodyRect(b *Body) rtreego.Rect {
	r := b.Radius
	rect, err := rtreego.NewRect(rtreego.Point{b.Pos.X - r, b.Pos.Y - r}, []float64{2 * r, 2 * r})
	if err != nil {
		// Zero or negative radius: index the center only.
		return rtreego.Point{b.Pos.X, b.Pos.Y}.ToRect(0.01)
	}
	return rect
}
