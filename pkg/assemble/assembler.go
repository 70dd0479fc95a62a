// Package assemble stitches the edge features of a route response into one
// continuous, correctly oriented path.
package assemble

import (
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"github.com/azybler/reachmap/pkg/geo"
)

// EdgeFeature is one routable segment as returned by the routing backend.
// Geometry is an orb.LineString or orb.MultiLineString; any other geometry
// contributes nothing. Sequence, when set, is the segment's position in the
// intended traversal order.
type EdgeFeature struct {
	Geometry orb.Geometry
	Sequence *int
}

// Assembler joins edge features into a single path.
//
// Orientation is decided greedily: each sub-line is compared only against
// the endpoint accumulated so far. Segments from a well-behaved backend are
// near-contiguous, so this reconstructs the route; it is not a global
// reconstruction for adversarial input.
type Assembler struct {
	// Tolerance is the planar distance under which two junction points are
	// considered identical. Zero means exact coordinate equality.
	Tolerance float64
}

// Assemble joins features using exact junction equality.
func Assemble(features []EdgeFeature) orb.LineString {
	return Assembler{}.Assemble(features)
}

// Assemble returns the ordered path through all features. Features are
// sorted by Sequence when every feature has one; otherwise input order is
// kept. The input is not modified. An empty input yields an empty path.
func (a Assembler) Assemble(features []EdgeFeature) orb.LineString {
	path := orb.LineString{}

	for _, sub := range flatten(order(features)) {
		if len(path) == 0 {
			path = append(path, sub...)
			continue
		}

		last := path[len(path)-1]
		if planar.Distance(last, sub[len(sub)-1]) < planar.Distance(last, sub[0]) {
			sub = reversed(sub)
		}
		if geo.SamePoint(sub[0], last, a.Tolerance) {
			sub = sub[1:]
		}
		path = append(path, sub...)
	}

	return path
}

// order returns features sorted by sequence if every feature carries one.
func order(features []EdgeFeature) []EdgeFeature {
	if len(features) == 0 {
		return nil
	}
	for _, f := range features {
		if f.Sequence == nil {
			return features
		}
	}

	sorted := make([]EdgeFeature, len(features))
	copy(sorted, features)
	sort.SliceStable(sorted, func(i, j int) bool {
		return *sorted[i].Sequence < *sorted[j].Sequence
	})
	return sorted
}

// flatten expands feature geometries into sub-lines in encounter order.
// Empty sub-lines and unsupported geometries are dropped.
func flatten(features []EdgeFeature) []orb.LineString {
	var subs []orb.LineString
	for _, f := range features {
		switch g := f.Geometry.(type) {
		case orb.LineString:
			if len(g) > 0 {
				subs = append(subs, g)
			}
		case orb.MultiLineString:
			for _, ls := range g {
				if len(ls) > 0 {
					subs = append(subs, ls)
				}
			}
		}
	}
	return subs
}

// reversed returns a reversed copy; orb's Reverse works in place and the
// caller's geometry must stay untouched.
func reversed(ls orb.LineString) orb.LineString {
	out := ls.Clone()
	out.Reverse()
	return out
}
