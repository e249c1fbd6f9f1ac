package csg

// Vec2 is a 2D point in an OrthoNormalBasis's (u, v) plane coordinates.
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Sub(o Vec2) Vec2     { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Add(o Vec2) Vec2     { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// OrthoNormalBasis is a 2D coordinate frame (u, v) embedded in a plane,
// used by Retesselate (§4.7) to project coplanar polygons into 2D and
// back.
type OrthoNormalBasis struct {
	plane Plane
	u, v  Vec3
}

// NewOrthoNormalBasis builds a basis for plane, picking an arbitrary
// in-plane u axis (any vector not parallel to the normal works — which
// direction u points does not matter) and setting v = normal x u, so
// u x v == normal and a ring's winding around the normal is kept in 2D.
func NewOrthoNormalBasis(plane Plane) OrthoNormalBasis {
	n := plane.Normal
	rnd := Vec3{X: n.Y, Y: n.Z, Z: -n.X}
	if rnd.Length() < 0.05 {
		rnd = Vec3{X: -n.Z, Y: n.X, Z: n.Y}
	}
	u := n.Cross(rnd).Unit()
	v := n.Cross(u).Unit()
	return OrthoNormalBasis{plane: plane, u: u, v: v}
}

// To2D projects a 3D point (assumed to lie on the plane) into (u, v).
func (b OrthoNormalBasis) To2D(p Vec3) Vec2 {
	return Vec2{X: p.Dot(b.u), Y: p.Dot(b.v)}
}

// To3D maps a (u, v) point back onto the plane.
func (b OrthoNormalBasis) To3D(p Vec2) Vec3 {
	origin := b.plane.Normal.Scale(b.plane.W)
	return origin.Add(b.u.Scale(p.X)).Add(b.v.Scale(p.Y))
}
