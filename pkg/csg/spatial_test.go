package csg

import "testing"

func TestSpatialPairsSingleSolidPassesThrough(t *testing.T) {
	opts := DefaultOptions()
	s := boxSolidForTest(t, Vec3{X: 0, Y: 0, Z: 0}, Vec3{X: 1, Y: 1, Z: 1})

	pairs := spatialPairs([]*Solid{s}, opts)
	if len(pairs) != 1 || pairs[0].a != s || pairs[0].b != nil {
		t.Fatalf("spatialPairs([s]) = %+v, want a single passthrough pair", pairs)
	}
}

func TestSpatialPairsEmptyList(t *testing.T) {
	opts := DefaultOptions()
	if pairs := spatialPairs(nil, opts); len(pairs) != 0 {
		t.Errorf("spatialPairs(nil) = %v, want empty", pairs)
	}
}

func TestSpatialPairsPairsEveryInput(t *testing.T) {
	opts := DefaultOptions()
	solids := []*Solid{
		boxSolidForTest(t, Vec3{X: 0, Y: 0, Z: 0}, Vec3{X: 1, Y: 1, Z: 1}),
		boxSolidForTest(t, Vec3{X: 1.1, Y: 0, Z: 0}, Vec3{X: 2.1, Y: 1, Z: 1}),
		boxSolidForTest(t, Vec3{X: 50, Y: 50, Z: 50}, Vec3{X: 51, Y: 51, Z: 51}),
	}

	pairs := spatialPairs(solids, opts)
	seen := make(map[*Solid]bool)
	for _, p := range pairs {
		seen[p.a] = true
		if p.b != nil {
			seen[p.b] = true
		}
	}
	for _, s := range solids {
		if !seen[s] {
			t.Errorf("solid %v was not included in any pair", s)
		}
	}
}

func TestSpatialPairsPrefersNearestNeighbor(t *testing.T) {
	opts := DefaultOptions()
	near1 := boxSolidForTest(t, Vec3{X: 0, Y: 0, Z: 0}, Vec3{X: 1, Y: 1, Z: 1})
	near2 := boxSolidForTest(t, Vec3{X: 1.01, Y: 0, Z: 0}, Vec3{X: 2.01, Y: 1, Z: 1})
	far := boxSolidForTest(t, Vec3{X: 100, Y: 100, Z: 100}, Vec3{X: 101, Y: 101, Z: 101})

	pairs := spatialPairs([]*Solid{near1, far, near2}, opts)
	for _, p := range pairs {
		if (p.a == near1 && p.b == far) || (p.a == far && p.b == near1) {
			t.Error("near1 should pair with near2, not the distant solid")
		}
	}
}
