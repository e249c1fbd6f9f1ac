package csg

import (
	"fmt"

	"github.com/glyph3d/bspcsg/pkg/csg/csgerr"
)

// Solid is an immutable polygon soup plus its attribute tree (§3). Every
// Boolean operation returns a new Solid; none of them mutate an operand.
type Solid struct {
	Polygons   []*Polygon
	Properties *PropertyTree

	isCanonicalized bool
	isRetesselated  bool
}

// NewSolid wraps polygons into a fresh, not-yet-canonicalized,
// not-yet-retesselated Solid.
func NewSolid(polygons []*Polygon) *Solid {
	return &Solid{Polygons: polygons, Properties: NewPropertyTree()}
}

// BoundingBox returns the solid's axis-aligned bounding box, the union of
// every polygon's own box.
func (s *Solid) BoundingBox() (min, max Vec3) {
	if len(s.Polygons) == 0 {
		return Vec3{}, Vec3{}
	}
	min, max = s.Polygons[0].BoundingBox()
	for _, p := range s.Polygons[1:] {
		pMin, pMax := p.BoundingBox()
		min = min.Min(pMin)
		max = max.Max(pMax)
	}
	return min, max
}

func boxesOverlap(aMin, aMax, bMin, bMax Vec3, eps float64) bool {
	return aMin.X <= bMax.X+eps && aMax.X >= bMin.X-eps &&
		aMin.Y <= bMax.Y+eps && aMax.Y >= bMin.Y-eps &&
		aMin.Z <= bMax.Z+eps && aMax.Z >= bMin.Z-eps
}

// MayOverlap is the fast-reject test ahead of a full Boolean op: false
// means the two solids' bounding boxes are disjoint, so the result can be
// assembled without ever building a BSP tree.
func (s *Solid) MayOverlap(other *Solid, opts Options) bool {
	if len(s.Polygons) == 0 || len(other.Polygons) == 0 {
		return false
	}
	aMin, aMax := s.BoundingBox()
	bMin, bMax := other.BoundingBox()
	return boxesOverlap(aMin, aMax, bMin, bMax, opts.EPS)
}

// Transform returns a new Solid with every vertex and plane carried
// through m, and its property tree transformed the same way (§9). m is
// assumed rigid (rotation/translation only, no scale) — Plane.Normal is
// carried through m's linear part without the inverse-transpose a
// general affine map would need.
func (s *Solid) Transform(m Matrix4) *Solid {
	out := make([]*Polygon, 0, len(s.Polygons))
	for _, p := range s.Polygons {
		verts := make([]Vertex, len(p.Vertices))
		for i, v := range p.Vertices {
			verts[i] = NewVertex(m.TransformPoint(v.Pos))
		}
		normal := m.TransformDirection(p.Plane.Normal).Unit()
		p0 := m.TransformPoint(p.Plane.Normal.Scale(p.Plane.W))
		plane := NewPlane(normal, normal.Dot(p0))
		out = append(out, &Polygon{Vertices: verts, Plane: plane, Shared: p.Shared})
	}
	return &Solid{
		Polygons:        out,
		Properties:      s.Properties.Transform(m),
		isCanonicalized: false,
		isRetesselated:  false,
	}
}

func newBspTreeFrom(s *Solid, opts Options) *BspTree {
	t := NewBspTree(opts)
	t.AddPolygons(s.Polygons)
	return t
}

func finishBoolean(polys []*Polygon, a, b *Solid, opts Options) *Solid {
	if opts.MaxPolygons > 0 && len(polys) > opts.MaxPolygons {
		panic(csgerr.NewResourceExhausted(fmt.Sprintf("boolean result has %d polygons, exceeds MaxPolygons budget of %d", len(polys), opts.MaxPolygons)))
	}
	merged := &Solid{Polygons: polys, Properties: mergeProperties(a.Properties, b.Properties)}
	merged = Retesselate(merged, opts)
	merged = Canonicalize(merged, opts)
	return merged
}

// Union returns the set union of a and b (§4.4).
func Union(a, b *Solid, opts Options) (result *Solid, err error) {
	defer csgerr.Recover(&err)

	if !a.MayOverlap(b, opts) {
		polys := append(append([]*Polygon{}, a.Polygons...), b.Polygons...)
		return finishBoolean(polys, a, b, opts), nil
	}

	ta := newBspTreeFrom(a, opts)
	tb := newBspTreeFrom(b, opts)

	ta.ClipTo(tb, false)
	tb.ClipTo(ta, false)
	tb.Invert()
	tb.ClipTo(ta, false)
	tb.Invert()

	polys := append(ta.AllPolygons(), tb.AllPolygons()...)
	return finishBoolean(polys, a, b, opts), nil
}

// Difference returns a with b's volume removed (§4.4). The asymmetric
// second clip (alsoRemoveCoplanarFront=true on b.ClipTo(a, ...)) makes
// a cut surface get taken from a rather than duplicated from b; per §9
// this sequence is retained as specified, not re-derived from the
// union sequence.
func Difference(a, b *Solid, opts Options) (result *Solid, err error) {
	defer csgerr.Recover(&err)

	ta := newBspTreeFrom(a, opts)
	tb := newBspTreeFrom(b, opts)

	ta.Invert()
	ta.ClipTo(tb, false)
	tb.ClipTo(ta, true)
	ta.AddPolygons(tb.AllPolygons())
	ta.Invert()

	return finishBoolean(ta.AllPolygons(), a, b, opts), nil
}

// Intersection returns the volume shared by both a and b (§4.4).
func Intersection(a, b *Solid, opts Options) (result *Solid, err error) {
	defer csgerr.Recover(&err)

	ta := newBspTreeFrom(a, opts)
	tb := newBspTreeFrom(b, opts)

	ta.Invert()
	tb.ClipTo(ta, false)
	tb.Invert()
	ta.ClipTo(tb, false)
	tb.ClipTo(ta, false)
	ta.AddPolygons(tb.AllPolygons())
	ta.Invert()

	return finishBoolean(ta.AllPolygons(), a, b, opts), nil
}

// UnionAll reduces solids with Union via spatially-paired binary
// reduction (§4.4, n-ary extension), deferring retesselation and
// canonicalization to Union's own finishBoolean on each pairing.
func UnionAll(solids []*Solid, opts Options) (*Solid, error) {
	if len(solids) == 0 {
		return NewSolid(nil), nil
	}
	current := solids
	for len(current) > 1 {
		pairs := spatialPairs(current, opts)
		next := make([]*Solid, 0, (len(current)+1)/2)
		for _, pr := range pairs {
			if pr.b == nil {
				next = append(next, pr.a)
				continue
			}
			merged, err := Union(pr.a, pr.b, opts)
			if err != nil {
				return nil, err
			}
			next = append(next, merged)
		}
		current = next
	}
	return current[0], nil
}

// DifferenceAll subtracts every solid after the first from the first,
// left to right (§4.4).
func DifferenceAll(solids []*Solid, opts Options) (*Solid, error) {
	if len(solids) == 0 {
		return NewSolid(nil), nil
	}
	result := solids[0]
	for _, s := range solids[1:] {
		var err error
		result, err = Difference(result, s, opts)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

// IntersectAll intersects every solid after the first with the first,
// left to right (§4.4).
func IntersectAll(solids []*Solid, opts Options) (*Solid, error) {
	if len(solids) == 0 {
		return NewSolid(nil), nil
	}
	result := solids[0]
	for _, s := range solids[1:] {
		var err error
		result, err = Intersection(result, s, opts)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}
