package csg

import "testing"

type vecProperty Vec3

func (v vecProperty) Transform(m Matrix4) PropertyValue {
	return vecProperty(m.TransformPoint(Vec3(v)))
}

func TestMatrix4TransformPointTranslation(t *testing.T) {
	m := Identity4()
	m[3], m[7], m[11] = 1, 2, 3

	got := m.TransformPoint(NewVec3(0, 0, 0))
	if !got.Equals(NewVec3(1, 2, 3)) {
		t.Errorf("TransformPoint = %v, want {1 2 3}", got)
	}
}

func TestMatrix4TransformDirectionIgnoresTranslation(t *testing.T) {
	m := Identity4()
	m[3], m[7], m[11] = 1, 2, 3

	got := m.TransformDirection(NewVec3(1, 0, 0))
	if !got.Equals(NewVec3(1, 0, 0)) {
		t.Errorf("TransformDirection = %v, want {1 0 0} (translation must not apply)", got)
	}
}

func TestPropertyTreeTransformIsRecursive(t *testing.T) {
	tree := NewPropertyTree()
	tree.Values["origin"] = vecProperty(NewVec3(0, 0, 0))
	child := NewPropertyTree()
	child.Values["tip"] = vecProperty(NewVec3(1, 0, 0))
	tree.Children["blade"] = child

	m := Identity4()
	m[3] = 5

	moved := tree.Transform(m)
	got := moved.Values["origin"].(vecProperty)
	if !Vec3(got).Equals(NewVec3(5, 0, 0)) {
		t.Errorf("root value after Transform = %v, want {5 0 0}", got)
	}
	childGot := moved.Children["blade"].Values["tip"].(vecProperty)
	if !Vec3(childGot).Equals(NewVec3(6, 0, 0)) {
		t.Errorf("child value after Transform = %v, want {6 0 0}", childGot)
	}
}

func TestPropertyTreeMergeIsLeftBiased(t *testing.T) {
	a := NewPropertyTree()
	a.Values["name"] = vecProperty(NewVec3(1, 0, 0))
	b := NewPropertyTree()
	b.Values["name"] = vecProperty(NewVec3(2, 0, 0))
	b.Values["extra"] = vecProperty(NewVec3(3, 0, 0))

	merged := a.Merge(b)
	if !Vec3(merged.Values["name"].(vecProperty)).Equals(NewVec3(1, 0, 0)) {
		t.Error("Merge should keep the receiver's value on key collision")
	}
	if _, ok := merged.Values["extra"]; !ok {
		t.Error("Merge should carry over keys unique to the other tree")
	}
}

func TestPropertyTreeMergeNestedChildren(t *testing.T) {
	a := NewPropertyTree()
	aChild := NewPropertyTree()
	aChild.Values["x"] = vecProperty(NewVec3(1, 0, 0))
	a.Children["part"] = aChild

	b := NewPropertyTree()
	bChild := NewPropertyTree()
	bChild.Values["y"] = vecProperty(NewVec3(0, 1, 0))
	b.Children["part"] = bChild

	merged := a.Merge(b)
	part := merged.Children["part"]
	if _, ok := part.Values["x"]; !ok {
		t.Error("merged child should retain the receiver's values")
	}
	if _, ok := part.Values["y"]; !ok {
		t.Error("merged child should carry over the other tree's unique values")
	}
}

func TestMergePropertiesBothNil(t *testing.T) {
	got := mergeProperties(nil, nil)
	if got == nil || got.Values == nil {
		t.Error("mergeProperties(nil, nil) should return a usable empty tree")
	}
}
