package csg

import (
	"math"

	"github.com/glyph3d/bspcsg/pkg/csg/csgerr"
)

// Plane is { p : n·p = w } for a unit normal n and scalar offset w.
type Plane struct {
	Normal Vec3
	W      float64
	tag    int64
}

// NewPlane constructs a plane from an already-unit normal and offset.
// It does not normalize normal; use PlaneFromPoints when starting from
// three points instead.
func NewPlane(normal Vec3, w float64) Plane {
	return Plane{Normal: normal, W: w}
}

// PlaneFromPoints derives a plane from three points via their cross
// product. Degenerate (collinear, or coincident within areaEPS) inputs
// return a Degenerate error rather than a plane with an undefined normal.
func PlaneFromPoints(a, b, c Vec3, areaEPS float64) (Plane, error) {
	n := b.Sub(a).Cross(c.Sub(a))
	if n.LengthSquared() < areaEPS {
		return Plane{}, csgerr.NewDegenerate("PlaneFromPoints: collinear or coincident points")
	}
	n = n.Unit()
	return Plane{Normal: n, W: n.Dot(a)}, nil
}

func (p Plane) Flipped() Plane {
	return Plane{Normal: p.Normal.Negate(), W: -p.W}
}

func (p Plane) SignedDistance(v Vec3) float64 {
	return p.Normal.Dot(v) - p.W
}

// Equals is exact equality of normal and offset, per §3.
func (p Plane) Equals(o Plane) bool {
	return p.Normal.Equals(o.Normal) && p.W == o.W
}

func (p Plane) Tag() int64 { return p.tag }

func (p Plane) withTag(tag int64) Plane {
	p.tag = tag
	return p
}

// SameIdentity mirrors Vertex.SameIdentity.
func (p Plane) SameIdentity(o Plane) bool {
	if p.tag != 0 && o.tag != 0 {
		return p.tag == o.tag
	}
	return p.Equals(o)
}

// SplitLineBetweenPoints returns the intersection of segment p1->p2 with
// the plane, clamped to the line's [0,1] parameter so a parallel or
// ill-conditioned line yields an endpoint (t=0 on NaN), per §3.
func (p Plane) SplitLineBetweenPoints(p1, p2 Vec3) Vec3 {
	direction := p2.Sub(p1)
	denom := p.Normal.Dot(direction)
	t := (p.W - p.Normal.Dot(p1)) / denom
	if math.IsNaN(t) {
		t = 0
	}
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return p1.Add(direction.Scale(t))
}

// LineFromPlanes intersects two planes into a parametric line (point +
// direction). It is not used by the BSP/CSG core itself — the core never
// needs a raw line — but is kept as the grounded example of the
// Degenerate error kind described in §7 ("parallel planes passed to
// plane-intersection... no direction vector could be formed").
func LineFromPlanes(a, b Plane, areaEPS float64) (point, direction Vec3, err error) {
	direction = a.Normal.Cross(b.Normal)
	if direction.LengthSquared() < areaEPS {
		return Vec3{}, Vec3{}, csgerr.NewDegenerate("LineFromPlanes: parallel planes have no intersection line")
	}
	// Solve for a point on both planes: project the problem onto the
	// 2D subspace spanned by the two normals.
	absX, absY, absZ := math.Abs(direction.X), math.Abs(direction.Y), math.Abs(direction.Z)
	var point3 Vec3
	switch {
	case absZ >= absX && absZ >= absY:
		det := a.Normal.X*b.Normal.Y - a.Normal.Y*b.Normal.X
		x := (a.W*b.Normal.Y - b.W*a.Normal.Y) / det
		y := (a.Normal.X*b.W - b.Normal.X*a.W) / det
		point3 = Vec3{X: x, Y: y, Z: 0}
	case absY >= absX:
		det := a.Normal.X*b.Normal.Z - a.Normal.Z*b.Normal.X
		x := (a.W*b.Normal.Z - b.W*a.Normal.Z) / det
		z := (a.Normal.X*b.W - b.Normal.X*a.W) / det
		point3 = Vec3{X: x, Y: 0, Z: z}
	default:
		det := a.Normal.Y*b.Normal.Z - a.Normal.Z*b.Normal.Y
		y := (a.W*b.Normal.Z - b.W*a.Normal.Z) / det
		z := (a.Normal.Y*b.W - b.Normal.Y*a.W) / det
		point3 = Vec3{X: 0, Y: y, Z: z}
	}
	return point3, direction.Unit(), nil
}
