package csg

// PropertyValue is a solid-level attribute that knows how to carry
// itself through a rigid/affine transform — e.g. a named reference
// point or direction vector attached to a solid (§9's Properties).
type PropertyValue interface {
	Transform(m Matrix4) PropertyValue
}

// Matrix4 is a row-major 4x4 affine transform.
type Matrix4 [16]float64

// Identity4 returns the identity transform.
func Identity4() Matrix4 {
	return Matrix4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// TransformPoint applies m to a point (w=1).
func (m Matrix4) TransformPoint(p Vec3) Vec3 {
	return Vec3{
		X: m[0]*p.X + m[1]*p.Y + m[2]*p.Z + m[3],
		Y: m[4]*p.X + m[5]*p.Y + m[6]*p.Z + m[7],
		Z: m[8]*p.X + m[9]*p.Y + m[10]*p.Z + m[11],
	}
}

// TransformDirection applies only the linear part of m, leaving
// translation out (for attributes that are directions, not positions).
func (m Matrix4) TransformDirection(v Vec3) Vec3 {
	return Vec3{
		X: m[0]*v.X + m[1]*v.Y + m[2]*v.Z,
		Y: m[4]*v.X + m[5]*v.Y + m[6]*v.Z,
		Z: m[8]*v.X + m[9]*v.Y + m[10]*v.Z,
	}
}

// PropertyTree holds named attributes attached to a Solid. Children are
// nested subtrees addressed by name, so a solid assembled from
// sub-parts keeps each part's own properties reachable by path (§9).
type PropertyTree struct {
	Values   map[string]PropertyValue
	Children map[string]*PropertyTree
}

// NewPropertyTree returns an empty tree.
func NewPropertyTree() *PropertyTree {
	return &PropertyTree{
		Values:   make(map[string]PropertyValue),
		Children: make(map[string]*PropertyTree),
	}
}

// Transform returns a new tree with every value, recursively, carried
// through m.
func (t *PropertyTree) Transform(m Matrix4) *PropertyTree {
	if t == nil {
		return nil
	}
	out := NewPropertyTree()
	for k, v := range t.Values {
		out.Values[k] = v.Transform(m)
	}
	for k, c := range t.Children {
		out.Children[k] = c.Transform(m)
	}
	return out
}

// Merge combines two property trees left-biased: t's values and
// children win on key collision, but keys present only in other are
// carried over. A Boolean operation merges its two operands' trees this
// way, with the receiver (t) playing the role of the first operand.
func (t *PropertyTree) Merge(other *PropertyTree) *PropertyTree {
	if t == nil {
		return other
	}
	if other == nil {
		return t
	}
	out := NewPropertyTree()
	for k, v := range other.Values {
		out.Values[k] = v
	}
	for k, v := range t.Values {
		out.Values[k] = v
	}
	for k, c := range other.Children {
		out.Children[k] = c
	}
	for k, c := range t.Children {
		if existing, ok := out.Children[k]; ok {
			out.Children[k] = c.Merge(existing)
		} else {
			out.Children[k] = c
		}
	}
	return out
}

func mergeProperties(a, b *PropertyTree) *PropertyTree {
	if a == nil && b == nil {
		return NewPropertyTree()
	}
	return a.Merge(b)
}
