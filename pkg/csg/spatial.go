package csg

import "github.com/dhconnelly/rtreego"

// spatialPair is one pairing decision for a binary-reduction pass over a
// list of solids. b is nil when the list had odd length and this solid
// passes through to the next round untouched.
type spatialPair struct {
	a, b *Solid
}

type solidSpatial struct {
	solid  *Solid
	rect   rtreego.Rect
	center rtreego.Point
}

func (s *solidSpatial) Bounds() rtreego.Rect { return s.rect }

func boundsRect(s *Solid, eps float64) rtreego.Rect {
	min, max := s.BoundingBox()
	lengths := []float64{
		max.X - min.X + eps,
		max.Y - min.Y + eps,
		max.Z - min.Z + eps,
	}
	for i, l := range lengths {
		if l <= 0 {
			lengths[i] = eps
		}
	}
	rect, err := rtreego.NewRect(rtreego.Point{min.X, min.Y, min.Z}, lengths)
	if err != nil {
		rect, _ = rtreego.NewRect(rtreego.Point{min.X, min.Y, min.Z}, []float64{eps, eps, eps})
	}
	return rect
}

// spatialPairs greedily pairs spatially-proximate solids with an R-tree
// nearest-neighbor query, so a UnionAll reduction merges nearby geometry
// first — cheaper BSP trees per pairing, and more of them hit the
// disjoint-bbox fast path — rather than pairing by list position.
func spatialPairs(solids []*Solid, opts Options) []spatialPair {
	if len(solids) <= 1 {
		pairs := make([]spatialPair, 0, len(solids))
		for _, s := range solids {
			pairs = append(pairs, spatialPair{a: s})
		}
		return pairs
	}

	tree := rtreego.NewTree(3, 2, 8)
	items := make([]*solidSpatial, 0, len(solids))
	remaining := make(map[*solidSpatial]bool, len(solids))
	for _, s := range solids {
		min, max := s.BoundingBox()
		center := rtreego.Point{
			(min.X + max.X) / 2,
			(min.Y + max.Y) / 2,
			(min.Z + max.Z) / 2,
		}
		item := &solidSpatial{solid: s, rect: boundsRect(s, opts.EPS), center: center}
		items = append(items, item)
		remaining[item] = true
		tree.Insert(item)
	}

	var pairs []spatialPair
	for _, it := range items {
		if !remaining[it] {
			continue
		}
		delete(remaining, it)
		tree.Delete(it)

		if tree.Size() == 0 {
			pairs = append(pairs, spatialPair{a: it.solid})
			continue
		}
		nearest := tree.NearestNeighbor(it.center)
		if nearest == nil {
			pairs = append(pairs, spatialPair{a: it.solid})
			continue
		}
		partner := nearest.(*solidSpatial)
		delete(remaining, partner)
		tree.Delete(partner)
		pairs = append(pairs, spatialPair{a: it.solid, b: partner.solid})
	}
	return pairs
}
