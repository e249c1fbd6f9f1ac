package csg

import (
	"math"
	"sort"

	"github.com/samber/lo"
)

// coplanarGroup is one (plane, shared) bucket of fragments that
// originated from the same surface (§4.7).
type coplanarGroup struct {
	plane    Plane
	shared   Shared
	polygons []*Polygon
}

func groupCoplanar(polys []*Polygon) []coplanarGroup {
	buckets := lo.GroupBy(polys, func(p *Polygon) string {
		sharedKey := ""
		if p.Shared != nil {
			sharedKey = p.Shared.Key()
		}
		return formatFloats(p.Plane.Normal.X, p.Plane.Normal.Y, p.Plane.Normal.Z, p.Plane.W) + "|" + sharedKey
	})
	keys := lo.Keys(buckets)
	sort.Strings(keys) // deterministic iteration, per §5

	out := make([]coplanarGroup, 0, len(keys))
	for _, k := range keys {
		ps := buckets[k]
		out = append(out, coplanarGroup{plane: ps[0].Plane, shared: ps[0].Shared, polygons: ps})
	}
	return out
}

// Retesselate re-joins adjacent convex coplanar fragments of the same
// surface into larger convex polygons (§4.7). Idempotent: a solid
// already marked retesselated is returned unchanged.
//
// Implementation note: §4.7 describes the merge as a horizontal-strip
// planar sweep with an active-polygon set ordered left-to-right. This
// implementation reaches the same documented contract — deterministic,
// idempotent, convexity-preserving merge of coplanar adjacent fragments
// sharing a (plane, shared) tag — via a fixed-point shared-edge merge
// over the 2D projection instead of the strip-indexed sweep; see
// DESIGN.md for the trade-off.
func Retesselate(solid *Solid, opts Options) *Solid {
	if solid.isRetesselated {
		return solid
	}
	groups := groupCoplanar(solid.Polygons)

	var out []*Polygon
	for _, g := range groups {
		out = append(out, retesselateGroup(g, opts)...)
	}

	return &Solid{
		Polygons:        out,
		Properties:      solid.Properties,
		isRetesselated:  true,
		isCanonicalized: solid.isCanonicalized,
	}
}

func retesselateGroup(g coplanarGroup, opts Options) []*Polygon {
	if len(g.polygons) == 0 {
		return nil
	}
	basis := NewOrthoNormalBasis(g.plane)

	rings := make([][]Vec2, len(g.polygons))
	for i, poly := range g.polygons {
		ring := make([]Vec2, len(poly.Vertices))
		for j, v := range poly.Vertices {
			ring[j] = basis.To2D(v.Pos)
		}
		rings[i] = ring
	}

	// Y-coordinate binning: snap nearly-collinear edges from different
	// source polygons to a common y, per §4.7 step 2.
	snapYCoordinates(rings, opts.EPS)

	// NewOrthoNormalBasis picks (u, v) so that u x v == plane.Normal, so
	// a ring that is CCW around the outward normal in 3D projects to a
	// CCW ring here already — no re-winding needed before merging.
	changed := true
	for changed {
		changed = false
	outer:
		for i := 0; i < len(rings); i++ {
			for j := i + 1; j < len(rings); j++ {
				merged, ok := mergeRingsOnSharedEdge(rings[i], rings[j], opts.EPS)
				if !ok {
					merged, ok = mergeRingsOnSharedEdge(rings[j], rings[i], opts.EPS)
				}
				if ok && convexRing2D(merged, opts.AngleEPS) {
					rings[i] = merged
					rings = append(rings[:j], rings[j+1:]...)
					changed = true
					break outer
				}
			}
		}
	}

	out := make([]*Polygon, 0, len(rings))
	for _, ring := range rings {
		verts := make([]Vertex, len(ring))
		for i, p := range ring {
			verts[i] = NewVertex(basis.To3D(p))
		}
		poly, err := NewPolygonWithPlane(verts, g.plane, g.shared, opts)
		if err != nil {
			continue
		}
		out = append(out, poly)
	}
	return out
}

// snapYCoordinates quantizes each ring's y values with factor 10/EPS; if
// a vertex's bin or either neighbor bin was already seen, it adopts that
// y exactly, per §4.7 step 2.
func snapYCoordinates(rings [][]Vec2, eps float64) {
	factor := 10 / eps
	seen := make(map[int64]float64)
	resolve := func(y float64) float64 {
		k := int64(math.Round(y * factor))
		for _, nk := range [3]int64{k - 1, k, k + 1} {
			if existing, ok := seen[nk]; ok {
				return existing
			}
		}
		seen[k] = y
		return y
	}
	for _, ring := range rings {
		for i := range ring {
			ring[i].Y = resolve(ring[i].Y)
		}
	}
}

// mergeRingsOnSharedEdge finds an edge (p,q) in a matched by an edge
// (q,p) in b (opposite direction, as two adjacent CCW polygons sharing
// a border would have) and splices the two rings into one, dropping the
// shared edge. When the rings share a chain of several edges, the spikes
// (x, y, x) the splice leaves behind are collapsed as well.
func mergeRingsOnSharedEdge(a, b []Vec2, eps float64) ([]Vec2, bool) {
	na, nb := len(a), len(b)
	for i := 0; i < na; i++ {
		p := a[i]
		q := a[(i+1)%na]
		for j := 0; j < nb; j++ {
			bq := b[j]
			bp := b[(j+1)%nb]
			if closeVec2(bq, q, eps) && closeVec2(bp, p, eps) {
				arot := rotateRing(a, (i+1)%na) // starts at q, ends at p
				brot := rotateRing(b, (j+1)%nb) // starts at p, ends at q
				merged := make([]Vec2, 0, na+nb-2)
				merged = append(merged, arot[:na-1]...)
				merged = append(merged, brot[:nb-1]...)
				for n := len(merged); n >= 3; n = len(merged) {
					k := 0
					for k < n && !closeVec2(merged[(k+n-1)%n], merged[(k+1)%n], eps) {
						k++
					}
					if k == n {
						break
					}
					kept := make([]Vec2, 0, n-2)
					for m := range merged {
						if m != k && m != (k+1)%n {
							kept = append(kept, merged[m])
						}
					}
					merged = kept
				}
				return merged, true
			}
		}
	}
	return nil, false
}

func rotateRing(r []Vec2, start int) []Vec2 {
	n := len(r)
	out := make([]Vec2, n)
	for i := 0; i < n; i++ {
		out[i] = r[(start+i)%n]
	}
	return out
}

func closeVec2(a, b Vec2, eps float64) bool {
	dx, dy := a.X-b.X, a.Y-b.Y
	return dx*dx+dy*dy < eps*eps
}

// convexRing2D checks that successive edge-pair cross products do not
// change sign, the 2D analogue of Polygon's checkConvex.
func convexRing2D(ring []Vec2, angleEPS float64) bool {
	n := len(ring)
	if n < 3 {
		return false
	}
	sign := 0
	for i := 0; i < n; i++ {
		a := ring[i]
		b := ring[(i+1)%n]
		c := ring[(i+2)%n]
		e1 := b.Sub(a)
		e2 := c.Sub(b)
		cross := e1.X*e2.Y - e1.Y*e2.X
		if math.Abs(cross) < angleEPS {
			continue
		}
		s := 1
		if cross < 0 {
			s = -1
		}
		if sign == 0 {
			sign = s
		} else if s != sign {
			return false
		}
	}
	return true
}
