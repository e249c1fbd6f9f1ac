// Package bsp implements the kernel.Kernel interface directly on top of
// the BSP/CSG core in pkg/csg, rather than deferring to an external
// geometry library.
package bsp

import (
	"fmt"
	"math"

	"github.com/glyph3d/bspcsg/pkg/csg"
	"github.com/glyph3d/bspcsg/pkg/kernel"
)

// Compile-time interface check.
var _ kernel.Kernel = (*BspKernel)(nil)

// bspSolid wraps a csg.Solid to implement kernel.Solid.
type bspSolid struct {
	solid *csg.Solid
}

// BoundingBox returns the axis-aligned bounding box.
func (s *bspSolid) BoundingBox() (min, max [3]float64) {
	mn, mx := s.solid.BoundingBox()
	return [3]float64{mn.X, mn.Y, mn.Z}, [3]float64{mx.X, mx.Y, mx.Z}
}

// BspKernel implements kernel.Kernel using the BSP/CSG core, with one
// Options value threaded through every primitive and Boolean it builds.
type BspKernel struct {
	opts csg.Options
}

// New returns a kernel using csg.DefaultOptions.
func New() *BspKernel {
	return &BspKernel{opts: csg.DefaultOptions()}
}

// NewWithOptions returns a kernel using caller-supplied Options, e.g. a
// tighter MaxPolygons budget or Debug assertions turned on.
func NewWithOptions(opts csg.Options) *BspKernel {
	return &BspKernel{opts: opts}
}

func unwrap(s kernel.Solid) *csg.Solid {
	return s.(*bspSolid).solid
}

func wrap(s *csg.Solid) kernel.Solid {
	return &bspSolid{solid: s}
}

// Box builds an axis-aligned box with its minimum corner at the origin
// and its maximum corner at (x, y, z).
func (k *BspKernel) Box(x, y, z float64) kernel.Solid {
	return wrap(csg.NewSolid(k.boxPolygons(x, y, z)))
}

func (k *BspKernel) boxPolygons(x, y, z float64) []*csg.Polygon {
	corners := [8]csg.Vec3{
		csg.NewVec3(0, 0, 0), csg.NewVec3(x, 0, 0), csg.NewVec3(x, y, 0), csg.NewVec3(0, y, 0),
		csg.NewVec3(0, 0, z), csg.NewVec3(x, 0, z), csg.NewVec3(x, y, z), csg.NewVec3(0, y, z),
	}
	faces := [6][4]int{
		{0, 3, 2, 1}, // -Z
		{4, 5, 6, 7}, // +Z
		{0, 1, 5, 4}, // -Y
		{2, 3, 7, 6}, // +Y
		{1, 2, 6, 5}, // +X
		{3, 0, 4, 7}, // -X
	}
	polys := make([]*csg.Polygon, 0, len(faces))
	for _, f := range faces {
		verts := make([]csg.Vertex, len(f))
		for i, idx := range f {
			verts[i] = csg.NewVertex(corners[idx])
		}
		p, err := csg.NewPolygon(verts, nil, k.opts)
		if err != nil {
			panic(fmt.Sprintf("bsp.Box: %v", err))
		}
		polys = append(polys, p)
	}
	return polys
}

// Cylinder builds a cylinder of the given height and radius, standing on
// the origin along +Z, approximated by segments side faces.
func (k *BspKernel) Cylinder(height, radius float64, segments int) kernel.Solid {
	if segments < 3 {
		segments = 3
	}
	return wrap(csg.NewSolid(k.cylinderPolygons(height, radius, segments)))
}

func (k *BspKernel) cylinderPolygons(height, radius float64, segments int) []*csg.Polygon {
	bottom := make([]csg.Vec3, segments)
	top := make([]csg.Vec3, segments)
	for i := 0; i < segments; i++ {
		angle := 2 * math.Pi * float64(i) / float64(segments)
		x := radius * math.Cos(angle)
		y := radius * math.Sin(angle)
		bottom[i] = csg.NewVec3(x, y, 0)
		top[i] = csg.NewVec3(x, y, height)
	}

	var polys []*csg.Polygon
	newPoly := func(verts []csg.Vertex) {
		p, err := csg.NewPolygon(verts, nil, k.opts)
		if err != nil {
			panic(fmt.Sprintf("bsp.Cylinder: %v", err))
		}
		polys = append(polys, p)
	}

	bottomVerts := make([]csg.Vertex, segments)
	for i := 0; i < segments; i++ {
		bottomVerts[i] = csg.NewVertex(bottom[segments-1-i]) // reversed: faces -Z
	}
	newPoly(bottomVerts)

	topVerts := make([]csg.Vertex, segments)
	for i := 0; i < segments; i++ {
		topVerts[i] = csg.NewVertex(top[i])
	}
	newPoly(topVerts)

	for i := 0; i < segments; i++ {
		j := (i + 1) % segments
		newPoly([]csg.Vertex{
			csg.NewVertex(bottom[i]),
			csg.NewVertex(bottom[j]),
			csg.NewVertex(top[j]),
			csg.NewVertex(top[i]),
		})
	}
	return polys
}

// Union returns the union of two solids.
func (k *BspKernel) Union(a, b kernel.Solid) kernel.Solid {
	result, err := csg.Union(unwrap(a), unwrap(b), k.opts)
	if err != nil {
		panic(fmt.Sprintf("bsp.Union: %v", err))
	}
	return wrap(result)
}

// Difference returns a with b's volume removed.
func (k *BspKernel) Difference(a, b kernel.Solid) kernel.Solid {
	result, err := csg.Difference(unwrap(a), unwrap(b), k.opts)
	if err != nil {
		panic(fmt.Sprintf("bsp.Difference: %v", err))
	}
	return wrap(result)
}

// Intersection returns the volume shared by both solids.
func (k *BspKernel) Intersection(a, b kernel.Solid) kernel.Solid {
	result, err := csg.Intersection(unwrap(a), unwrap(b), k.opts)
	if err != nil {
		panic(fmt.Sprintf("bsp.Intersection: %v", err))
	}
	return wrap(result)
}

// Translate moves a solid by (x, y, z).
func (k *BspKernel) Translate(s kernel.Solid, x, y, z float64) kernel.Solid {
	m := csg.Identity4()
	m[3], m[7], m[11] = x, y, z
	return wrap(unwrap(s).Transform(m))
}

// Rotate rotates a solid by Euler angles (degrees) around X, Y, Z axes,
// applied in X then Y then Z order.
func (k *BspKernel) Rotate(s kernel.Solid, x, y, z float64) kernel.Solid {
	rad := func(deg float64) float64 { return deg * math.Pi / 180 }
	rx, ry, rz := rotateX(rad(x)), rotateY(rad(y)), rotateZ(rad(z))
	m := matMul(rz, matMul(ry, rx))
	return wrap(unwrap(s).Transform(m))
}

// ToMesh triangulates a solid via TrianglesFromSolid.
func (k *BspKernel) ToMesh(s kernel.Solid) (*kernel.Mesh, error) {
	return csg.TrianglesFromSolid(unwrap(s), ""), nil
}

func rotateX(theta float64) csg.Matrix4 {
	c, s := math.Cos(theta), math.Sin(theta)
	return csg.Matrix4{
		1, 0, 0, 0,
		0, c, -s, 0,
		0, s, c, 0,
		0, 0, 0, 1,
	}
}

func rotateY(theta float64) csg.Matrix4 {
	c, s := math.Cos(theta), math.Sin(theta)
	return csg.Matrix4{
		c, 0, s, 0,
		0, 1, 0, 0,
		-s, 0, c, 0,
		0, 0, 0, 1,
	}
}

func rotateZ(theta float64) csg.Matrix4 {
	c, s := math.Cos(theta), math.Sin(theta)
	return csg.Matrix4{
		c, -s, 0, 0,
		s, c, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// matMul multiplies two row-major 4x4 matrices, a*b.
func matMul(a, b csg.Matrix4) csg.Matrix4 {
	var out csg.Matrix4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			var sum float64
			for i := 0; i < 4; i++ {
				sum += a[r*4+i] * b[i*4+c]
			}
			out[r*4+c] = sum
		}
	}
	return out
}
