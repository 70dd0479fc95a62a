package contain

import (
	"github.com/paulmach/orb"
	"github.com/tidwall/rtree"
)

// Index holds a set of polygon geometries behind an R-tree of outer-ring
// bounding boxes. Contains is equivalent to OR-ing PointInPolygon over every
// indexed geometry; the tree only prunes parts whose box misses the point.
//
// An Index is immutable after NewIndex and safe for concurrent reads.
type Index struct {
	tree  rtree.RTreeG[orb.Ring]
	size  int
	parts int
}

// NewIndex indexes the outer ring of every Polygon and MultiPolygon part in
// geoms. Other geometry types are skipped.
func NewIndex(geoms []orb.Geometry) *Index {
	idx := &Index{}
	for _, g := range geoms {
		switch poly := g.(type) {
		case orb.Polygon:
			idx.insert(poly)
		case orb.MultiPolygon:
			for _, part := range poly {
				idx.insert(part)
			}
		default:
			continue
		}
		idx.size++
	}
	return idx
}

func (idx *Index) insert(poly orb.Polygon) {
	if len(poly) == 0 || len(poly[0]) < 3 {
		return
	}
	outer := poly[0]
	b := outer.Bound()
	idx.tree.Insert(b.Min, b.Max, outer)
	idx.parts++
}

// Len returns the number of polygon geometries accepted by NewIndex.
func (idx *Index) Len() int { return idx.size }

// Parts returns the number of outer rings in the tree.
func (idx *Index) Parts() int { return idx.parts }

// Contains reports whether p lies inside any indexed outer ring.
func (idx *Index) Contains(p orb.Point) bool {
	found := false
	idx.tree.Search(p, p, func(_, _ [2]float64, ring orb.Ring) bool {
		if ringContains(ring, p) {
			found = true
			return false
		}
		return true
	})
	return found
}
