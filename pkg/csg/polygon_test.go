package csg

import (
	"math"
	"testing"

	"github.com/glyph3d/bspcsg/pkg/csg/csgerr"
)

func square(z float64) []Vertex {
	return []Vertex{
		NewVertex(NewVec3(0, 0, z)),
		NewVertex(NewVec3(1, 0, z)),
		NewVertex(NewVec3(1, 1, z)),
		NewVertex(NewVec3(0, 1, z)),
	}
}

func TestNewPolygonTooFewVertices(t *testing.T) {
	opts := DefaultOptions()
	_, err := NewPolygon([]Vertex{NewVertex(NewVec3(0, 0, 0)), NewVertex(NewVec3(1, 0, 0))}, nil, opts)
	if !csgerr.Is(err, csgerr.InvalidInput) {
		t.Errorf("err = %v, want InvalidInput", err)
	}
}

func TestNewPolygonDegeneratePlane(t *testing.T) {
	opts := DefaultOptions()
	verts := []Vertex{
		NewVertex(NewVec3(0, 0, 0)),
		NewVertex(NewVec3(1, 0, 0)),
		NewVertex(NewVec3(2, 0, 0)),
	}
	_, err := NewPolygon(verts, nil, opts)
	if !csgerr.Is(err, csgerr.Degenerate) {
		t.Errorf("err = %v, want Degenerate", err)
	}
}

func TestNewPolygonDebugRejectsNonConvex(t *testing.T) {
	opts := DefaultOptions()
	opts.Debug = true
	// A non-convex (notched) quad in the z=0 plane.
	verts := []Vertex{
		NewVertex(NewVec3(0, 0, 0)),
		NewVertex(NewVec3(2, 0, 0)),
		NewVertex(NewVec3(0.5, 0.5, 0)),
		NewVertex(NewVec3(2, 2, 0)),
	}
	plane := NewPlane(NewVec3(0, 0, 1), 0)
	_, err := NewPolygonWithPlane(verts, plane, nil, opts)
	if !csgerr.Is(err, csgerr.InvalidInput) {
		t.Errorf("notched quad in Debug mode: err = %v, want InvalidInput", err)
	}
}

func TestPolygonFlipped(t *testing.T) {
	opts := DefaultOptions()
	p, err := NewPolygon(square(0), ColorShared{R: 1}, opts)
	if err != nil {
		t.Fatalf("NewPolygon: %v", err)
	}
	f := p.Flipped()
	if !f.Plane.Normal.Equals(p.Plane.Normal.Negate()) {
		t.Errorf("flipped normal = %v, want %v", f.Plane.Normal, p.Plane.Normal.Negate())
	}
	if len(f.Vertices) != len(p.Vertices) {
		t.Fatalf("flipped vertex count = %d, want %d", len(f.Vertices), len(p.Vertices))
	}
	for i, v := range p.Vertices {
		if !f.Vertices[len(f.Vertices)-1-i].Pos.Equals(v.Pos) {
			t.Errorf("flipped ring is not reversed at index %d", i)
		}
	}
	if f.Shared != p.Shared {
		t.Error("Flipped should carry Shared through unchanged")
	}
}

func TestPolygonBoundingBox(t *testing.T) {
	opts := DefaultOptions()
	p, err := NewPolygon(square(3), nil, opts)
	if err != nil {
		t.Fatalf("NewPolygon: %v", err)
	}
	min, max := p.BoundingBox()
	if !min.Equals(NewVec3(0, 0, 3)) || !max.Equals(NewVec3(1, 1, 3)) {
		t.Errorf("BoundingBox = %v/%v, want {0 0 3}/{1 1 3}", min, max)
	}
}

func TestPolygonBoundingSphere(t *testing.T) {
	opts := DefaultOptions()
	p, err := NewPolygon(square(0), nil, opts)
	if err != nil {
		t.Fatalf("NewPolygon: %v", err)
	}
	center, radius := p.BoundingSphere()
	if !center.Equals(NewVec3(0.5, 0.5, 0)) {
		t.Errorf("BoundingSphere center = %v, want {0.5 0.5 0}", center)
	}
	want := math.Sqrt(0.5)
	if math.Abs(radius-want) > 1e-12 {
		t.Errorf("BoundingSphere radius = %v, want %v", radius, want)
	}
}

func TestColorSharedKey(t *testing.T) {
	a := ColorShared{R: 1, G: 0, B: 0, A: 1}
	b := ColorShared{R: 1, G: 0, B: 0, A: 1}
	c := ColorShared{R: 0, G: 1, B: 0, A: 1}
	if a.Key() != b.Key() {
		t.Error("identical colors should have identical keys")
	}
	if a.Key() == c.Key() {
		t.Error("different colors should have different keys")
	}
}
