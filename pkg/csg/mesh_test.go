package csg

import "testing"

func TestTriangleFanQuad(t *testing.T) {
	verts := []Vertex{
		NewVertex(NewVec3(0, 0, 0)),
		NewVertex(NewVec3(1, 0, 0)),
		NewVertex(NewVec3(1, 1, 0)),
		NewVertex(NewVec3(0, 1, 0)),
	}
	tris := triangleFan(verts)
	if len(tris) != 2 {
		t.Fatalf("triangleFan(quad) = %d triangles, want 2", len(tris))
	}
	for _, tri := range tris {
		if tri[0].Pos != verts[0].Pos {
			t.Errorf("every fan triangle should be rooted at vertex 0, got %v", tri[0].Pos)
		}
	}
}

func TestTriangleFanDegenerate(t *testing.T) {
	if got := triangleFan([]Vertex{NewVertex(NewVec3(0, 0, 0)), NewVertex(NewVec3(1, 0, 0))}); got != nil {
		t.Errorf("triangleFan with < 3 vertices should return nil, got %v", got)
	}
}

func TestPolygonColorDefaultsToOpaqueWhite(t *testing.T) {
	opts := DefaultOptions()
	p, err := NewPolygon(square(0), nil, opts)
	if err != nil {
		t.Fatalf("NewPolygon: %v", err)
	}
	c := PolygonColor(p)
	if c.R != 1 || c.G != 1 || c.B != 1 || c.A != 1 {
		t.Errorf("default color = %+v, want opaque white", c)
	}
}

func TestTrianglesFromSolidBoxHasTwelveTriangles(t *testing.T) {
	box := boxSolidForTest(t, Vec3{X: 0, Y: 0, Z: 0}, Vec3{X: 1, Y: 1, Z: 1})
	mesh := TrianglesFromSolid(box, "box")

	wantTris := 12 // 6 quad faces x 2 triangles
	gotTris := len(mesh.Indices) / 3
	if gotTris != wantTris {
		t.Errorf("TrianglesFromSolid(box) = %d triangles, want %d", gotTris, wantTris)
	}
	// Vertices are deduplicated by (position, normal), so each quad face
	// contributes its 4 corners once: 24 in all, down from the 36 a
	// non-deduplicated fan would emit, and never fewer than the 8 geometric
	// corners.
	vertCount := len(mesh.Vertices) / 3
	if vertCount < 8 || vertCount > 24 {
		t.Errorf("deduped vertex count = %d, want between 8 and 24", vertCount)
	}
}

func TestPolygonsFromTrianglesRoundTrip(t *testing.T) {
	opts := DefaultOptions()
	vertices := []float32{
		0, 0, 0,
		1, 0, 0,
		0, 1, 0,
	}
	indices := []uint32{0, 1, 2}

	polys := PolygonsFromTriangles(vertices, indices, nil, opts)
	if len(polys) != 1 {
		t.Fatalf("PolygonsFromTriangles = %d polygons, want 1", len(polys))
	}
	if len(polys[0].Vertices) != 3 {
		t.Errorf("round-tripped polygon has %d vertices, want 3", len(polys[0].Vertices))
	}
}

func TestPolygonsFromTrianglesDropsDegenerate(t *testing.T) {
	opts := DefaultOptions()
	vertices := []float32{
		0, 0, 0,
		1, 0, 0,
		2, 0, 0, // collinear with the first two: zero area
	}
	indices := []uint32{0, 1, 2}

	polys := PolygonsFromTriangles(vertices, indices, nil, opts)
	if len(polys) != 0 {
		t.Errorf("PolygonsFromTriangles should drop degenerate triangles, got %d polygons", len(polys))
	}
}
