package csg

import (
	"math"
	"testing"

	"github.com/glyph3d/bspcsg/pkg/csg/csgerr"
)

func TestPlaneFromPoints(t *testing.T) {
	p, err := PlaneFromPoints(NewVec3(0, 0, 0), NewVec3(1, 0, 0), NewVec3(0, 1, 0), AreaEPS)
	if err != nil {
		t.Fatalf("PlaneFromPoints: %v", err)
	}
	if !p.Normal.Equals(NewVec3(0, 0, 1)) {
		t.Errorf("Normal = %v, want {0 0 1}", p.Normal)
	}
	if p.W != 0 {
		t.Errorf("W = %v, want 0", p.W)
	}
}

func TestPlaneFromPointsDegenerate(t *testing.T) {
	_, err := PlaneFromPoints(NewVec3(0, 0, 0), NewVec3(1, 0, 0), NewVec3(2, 0, 0), AreaEPS)
	if !csgerr.Is(err, csgerr.Degenerate) {
		t.Errorf("collinear points: err = %v, want Degenerate", err)
	}
}

func TestPlaneFlipped(t *testing.T) {
	p, _ := PlaneFromPoints(NewVec3(0, 0, 0), NewVec3(1, 0, 0), NewVec3(0, 1, 0), AreaEPS)
	f := p.Flipped()
	if !f.Normal.Equals(p.Normal.Negate()) {
		t.Errorf("Flipped normal = %v, want %v", f.Normal, p.Normal.Negate())
	}
	if f.W != -p.W {
		t.Errorf("Flipped W = %v, want %v", f.W, -p.W)
	}
}

func TestPlaneSignedDistance(t *testing.T) {
	p := NewPlane(NewVec3(0, 0, 1), 5)
	if got := p.SignedDistance(NewVec3(0, 0, 5)); math.Abs(got) > 1e-12 {
		t.Errorf("SignedDistance(on plane) = %v, want 0", got)
	}
	if got := p.SignedDistance(NewVec3(0, 0, 10)); math.Abs(got-5) > 1e-12 {
		t.Errorf("SignedDistance(above) = %v, want 5", got)
	}
}

func TestPlaneSplitLineBetweenPoints(t *testing.T) {
	p := NewPlane(NewVec3(1, 0, 0), 5)
	mid := p.SplitLineBetweenPoints(NewVec3(0, 0, 0), NewVec3(10, 0, 0))
	if !mid.Equals(NewVec3(5, 0, 0)) {
		t.Errorf("SplitLineBetweenPoints = %v, want {5 0 0}", mid)
	}

	// Parallel line (perpendicular to normal): t is +Inf here and clamps to
	// 1, yielding the far endpoint rather than NaN.
	clamped := p.SplitLineBetweenPoints(NewVec3(0, 0, 0), NewVec3(0, 10, 0))
	if math.IsNaN(clamped.X) || math.IsNaN(clamped.Y) || math.IsNaN(clamped.Z) {
		t.Errorf("SplitLineBetweenPoints for a parallel segment produced NaN: %v", clamped)
	}
}

func TestLineFromPlanes(t *testing.T) {
	a := NewPlane(NewVec3(1, 0, 0), 0)
	b := NewPlane(NewVec3(0, 1, 0), 0)
	point, dir, err := LineFromPlanes(a, b, AreaEPS)
	if err != nil {
		t.Fatalf("LineFromPlanes: %v", err)
	}
	if !dir.Unit().Equals(dir) {
		t.Errorf("direction %v should already be unit length", dir)
	}
	if math.Abs(a.SignedDistance(point)) > 1e-9 || math.Abs(b.SignedDistance(point)) > 1e-9 {
		t.Errorf("point %v does not lie on both planes", point)
	}
}

func TestLineFromPlanesParallel(t *testing.T) {
	a := NewPlane(NewVec3(0, 0, 1), 0)
	b := NewPlane(NewVec3(0, 0, 1), 5)
	_, _, err := LineFromPlanes(a, b, AreaEPS)
	if !csgerr.Is(err, csgerr.Degenerate) {
		t.Errorf("parallel planes: err = %v, want Degenerate", err)
	}
}
