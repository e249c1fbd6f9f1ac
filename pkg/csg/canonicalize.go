package csg

// Canonicalizer rebuilds a solid so vertices within EPS and planes
// within EPS (as a 4-tuple of normal xyz + w) become the same instance,
// and identical Shared descriptors collapse by content hash (§4.6).
type Canonicalizer struct {
	vertices *FuzzyFactory[Vertex]
	planes   *FuzzyFactory[Plane]
	shared   map[string]Shared
	tags     *TagCounter
}

// NewCanonicalizer returns a fresh canonicalizer with empty factories.
func NewCanonicalizer(eps float64, tags *TagCounter) *Canonicalizer {
	return &Canonicalizer{
		vertices: NewFuzzyFactory[Vertex](3, eps),
		planes:   NewFuzzyFactory[Plane](4, eps),
		shared:   make(map[string]Shared),
		tags:     tags,
	}
}

func (c *Canonicalizer) canonicalVertex(v Vertex) Vertex {
	return c.vertices.LookupOrCreate(
		[]float64{v.Pos.X, v.Pos.Y, v.Pos.Z},
		func(_ []float64) Vertex { return v.withTag(c.tags.Next()) },
	)
}

func (c *Canonicalizer) canonicalPlane(p Plane) Plane {
	return c.planes.LookupOrCreate(
		[]float64{p.Normal.X, p.Normal.Y, p.Normal.Z, p.W},
		func(_ []float64) Plane { return p.withTag(c.tags.Next()) },
	)
}

func (c *Canonicalizer) canonicalShared(s Shared) Shared {
	if s == nil {
		return nil
	}
	key := s.Key()
	if existing, ok := c.shared[key]; ok {
		return existing
	}
	c.shared[key] = s
	return s
}

// Canonicalize rebuilds solid so geometrically-equal vertices, planes,
// and shared descriptors become identical instances, per §4.6. Idempotent:
// calling it again on an already-canonicalized solid is a no-op.
func Canonicalize(solid *Solid, opts Options) *Solid {
	if solid.isCanonicalized {
		return solid
	}
	c := NewCanonicalizer(opts.EPS, opts.Tags)
	epsSq := opts.epsSquared()

	out := make([]*Polygon, 0, len(solid.Polygons))
	for _, poly := range solid.Polygons {
		plane := c.canonicalPlane(poly.Plane)
		shared := c.canonicalShared(poly.Shared)

		verts := make([]Vertex, 0, len(poly.Vertices))
		for _, v := range poly.Vertices {
			cv := c.canonicalVertex(v)
			if len(verts) > 0 && verts[len(verts)-1].Pos.DistanceSquared(cv.Pos) < epsSq {
				continue
			}
			verts = append(verts, cv)
		}
		if len(verts) > 1 && verts[0].Pos.DistanceSquared(verts[len(verts)-1].Pos) < epsSq {
			verts = verts[:len(verts)-1]
		}
		if len(verts) < 3 {
			continue
		}

		np, err := NewPolygonWithPlane(verts, plane, shared, opts)
		if err != nil {
			continue
		}
		out = append(out, np)
	}

	return &Solid{
		Polygons:        out,
		Properties:      solid.Properties,
		isCanonicalized: true,
		isRetesselated:  solid.isRetesselated,
	}
}
