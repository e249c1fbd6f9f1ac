package csg

import (
	"math"

	"github.com/glyph3d/bspcsg/pkg/csg/csgerr"
)

// Vec3 is an immutable 3D vector. Every operation returns a new value;
// equality is exact component equality (see §3 of the geometric-kernel
// spec this package implements — fuzzy equality lives one layer up, in
// FuzzyFactory).
type Vec3 struct {
	X, Y, Z float64
}

// NewVec3 is the one canonical constructor. Ambiguous dynamic-typed
// construction (from arrays, 2-tuples, bare scalars) is deliberately not
// offered; use the explicit converters below instead.
func NewVec3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Vec3FromArray builds a Vec3 from a 3-element slice.
func Vec3FromArray(a []float64) (Vec3, error) {
	if len(a) != 3 {
		return Vec3{}, csgerr.NewInvalidInput("Vec3FromArray: want 3 elements")
	}
	return Vec3{X: a[0], Y: a[1], Z: a[2]}, nil
}

// Vec3FromXY builds a Vec3 with Z=0.
func Vec3FromXY(x, y float64) Vec3 {
	return Vec3{X: x, Y: y}
}

// Vec3FromScalar broadcasts a single value to all three components.
func Vec3FromScalar(s float64) Vec3 {
	return Vec3{X: s, Y: s, Z: s}
}

func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}
func (v Vec3) Negate() Vec3 { return v.Scale(-1) }

func (v Vec3) Dot(o Vec3) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

func (v Vec3) LengthSquared() float64 { return v.Dot(v) }
func (v Vec3) Length() float64        { return math.Sqrt(v.LengthSquared()) }

// Unit returns v normalized to length 1. A zero-length vector returns
// itself unchanged rather than producing NaNs.
func (v Vec3) Unit() Vec3 {
	l := v.Length()
	if l == 0 {
		return v
	}
	return v.Scale(1 / l)
}

func (v Vec3) Lerp(o Vec3, t float64) Vec3 {
	return v.Add(o.Sub(v).Scale(t))
}

func (v Vec3) Min(o Vec3) Vec3 {
	return Vec3{math.Min(v.X, o.X), math.Min(v.Y, o.Y), math.Min(v.Z, o.Z)}
}

func (v Vec3) Max(o Vec3) Vec3 {
	return Vec3{math.Max(v.X, o.X), math.Max(v.Y, o.Y), math.Max(v.Z, o.Z)}
}

func (v Vec3) DistanceSquared(o Vec3) float64 {
	return v.Sub(o).LengthSquared()
}

// Equals is exact component equality, per §3.
func (v Vec3) Equals(o Vec3) bool {
	return v.X == o.X && v.Y == o.Y && v.Z == o.Z
}
