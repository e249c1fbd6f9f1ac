package csg

import (
	"math"

	"github.com/glyph3d/bspcsg/pkg/csg/csgerr"
)

// Shared is opaque per-surface metadata (e.g. color) preserved through
// every Boolean operation. Implementations are identified by the content
// of Key(), not by Go identity, so that canonicalization can collapse two
// Shared values carrying the same data to one instance.
type Shared interface {
	Key() string
}

// ColorShared is the default Shared implementation: an RGBA color in
// [0,1]. PolygonColor falls back to (1,1,1,1) when a polygon's Shared is
// nil or not a ColorShared.
type ColorShared struct {
	R, G, B, A float64
}

func (c ColorShared) Key() string {
	return formatFloats(c.R, c.G, c.B, c.A)
}

// Polygon is an ordered, assumed-convex, coplanar ring of vertices with
// an outward normal equal to Plane.Normal. Bounding box/sphere are
// computed lazily and cached.
type Polygon struct {
	Vertices []Vertex
	Plane    Plane
	Shared   Shared
	tag      int64

	bboxValid        bool
	bboxMin, bboxMax Vec3

	bsphereValid  bool
	bsphereCenter Vec3
	bsphereRadius float64
}

// NewPolygon builds a Polygon, deriving its plane from the first three
// vertices. It returns InvalidInput if fewer than 3 vertices are given,
// Degenerate if the first three vertices can't determine a plane, and (in
// debug mode) InvalidInput if the ring is not convex.
func NewPolygon(vertices []Vertex, shared Shared, opts Options) (*Polygon, error) {
	if len(vertices) < 3 {
		return nil, csgerr.NewInvalidInput("Polygon: fewer than 3 vertices")
	}
	plane, err := PlaneFromPoints(vertices[0].Pos, vertices[1].Pos, vertices[2].Pos, opts.AreaEPS)
	if err != nil {
		return nil, err
	}
	return NewPolygonWithPlane(vertices, plane, shared, opts)
}

// NewPolygonWithPlane builds a Polygon with an already-known plane
// (used when re-deriving one from the first three vertices would be
// wasteful or would disagree with a plane carried through a split).
func NewPolygonWithPlane(vertices []Vertex, plane Plane, shared Shared, opts Options) (*Polygon, error) {
	if len(vertices) < 3 {
		return nil, csgerr.NewInvalidInput("Polygon: fewer than 3 vertices")
	}
	if opts.Debug && !checkConvex(vertices, plane.Normal, opts.AngleEPS) {
		return nil, csgerr.NewInvalidInput("Polygon: vertices do not form a convex ring")
	}
	return &Polygon{Vertices: vertices, Plane: plane, Shared: shared}, nil
}

// Flipped reverses the vertex order and flips the plane, producing a
// polygon with the opposite outward normal.
func (p *Polygon) Flipped() *Polygon {
	verts := make([]Vertex, len(p.Vertices))
	for i, v := range p.Vertices {
		verts[len(verts)-1-i] = v.Flipped()
	}
	return &Polygon{
		Vertices: verts,
		Plane:    p.Plane.Flipped(),
		Shared:   p.Shared,
	}
}

// BoundingBox returns (and caches) the polygon's axis-aligned bounding box.
func (p *Polygon) BoundingBox() (min, max Vec3) {
	if !p.bboxValid {
		min, max = p.Vertices[0].Pos, p.Vertices[0].Pos
		for _, v := range p.Vertices[1:] {
			min = min.Min(v.Pos)
			max = max.Max(v.Pos)
		}
		p.bboxMin, p.bboxMax = min, max
		p.bboxValid = true
	}
	return p.bboxMin, p.bboxMax
}

// BoundingSphere returns (and caches) a sphere bounding the polygon,
// centered at the bounding box's midpoint, used for the cheap
// sphere-vs-plane early-out in PolygonTreeNode.SplitByPlane (§4.2).
func (p *Polygon) BoundingSphere() (center Vec3, radius float64) {
	if !p.bsphereValid {
		min, max := p.BoundingBox()
		center = min.Add(max).Scale(0.5)
		radius = 0
		for _, v := range p.Vertices {
			d := v.Pos.Sub(center).Length()
			if d > radius {
				radius = d
			}
		}
		p.bsphereCenter, p.bsphereRadius = center, radius
		p.bsphereValid = true
	}
	return p.bsphereCenter, p.bsphereRadius
}

// checkConvex verifies that the signed cross product of successive edge
// pairs, projected onto the polygon's normal, does not change sign —
// the convexity check the source references from Polygon's debug-mode
// constructor but never defines (see §9's Open Questions).
func checkConvex(vertices []Vertex, normal Vec3, angleEPS float64) bool {
	n := len(vertices)
	if n < 3 {
		return false
	}
	sign := 0
	for i := 0; i < n; i++ {
		a := vertices[i].Pos
		b := vertices[(i+1)%n].Pos
		c := vertices[(i+2)%n].Pos
		e1 := b.Sub(a)
		e2 := c.Sub(b)
		cross := e1.Cross(e2)
		d := cross.Dot(normal)
		if math.Abs(d) < angleEPS {
			continue
		}
		s := 1
		if d < 0 {
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
