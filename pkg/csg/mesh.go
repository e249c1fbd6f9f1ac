package csg

import (
	"github.com/samber/lo"

	"github.com/glyph3d/bspcsg/pkg/kernel"
)

type triangle [3]Vertex

// triangleFan decomposes a convex polygon ring into a fan of triangles
// rooted at vertex 0.
func triangleFan(verts []Vertex) []triangle {
	if len(verts) < 3 {
		return nil
	}
	out := make([]triangle, 0, len(verts)-2)
	for i := 1; i < len(verts)-1; i++ {
		out = append(out, triangle{verts[0], verts[i], verts[i+1]})
	}
	return out
}

// PolygonColor returns the RGBA color attached to a polygon's Shared
// descriptor, defaulting to opaque white when none is set or it isn't a
// ColorShared.
func PolygonColor(poly *Polygon) ColorShared {
	if c, ok := poly.Shared.(ColorShared); ok {
		return c
	}
	return ColorShared{R: 1, G: 1, B: 1, A: 1}
}

// TrianglesFromSolid fans every polygon into triangles and assembles a
// rendering-ready kernel.Mesh, the mesh-export side of the glue the core
// kernel is deliberately agnostic about.
func TrianglesFromSolid(solid *Solid, partName string) *kernel.Mesh {
	type vkey struct {
		x, y, z    float32
		nx, ny, nz float32
	}
	mesh := &kernel.Mesh{PartName: partName}
	index := make(map[vkey]uint32)

	emit := func(pos, normal Vec3) uint32 {
		k := vkey{
			x: float32(pos.X), y: float32(pos.Y), z: float32(pos.Z),
			nx: float32(normal.X), ny: float32(normal.Y), nz: float32(normal.Z),
		}
		if idx, ok := index[k]; ok {
			return idx
		}
		idx := uint32(len(mesh.Vertices) / 3)
		mesh.Vertices = append(mesh.Vertices, k.x, k.y, k.z)
		mesh.Normals = append(mesh.Normals, k.nx, k.ny, k.nz)
		index[k] = idx
		return idx
	}

	for _, poly := range solid.Polygons {
		n := poly.Plane.Normal
		for _, tri := range triangleFan(poly.Vertices) {
			i0 := emit(tri[0].Pos, n)
			i1 := emit(tri[1].Pos, n)
			i2 := emit(tri[2].Pos, n)
			mesh.Indices = append(mesh.Indices, i0, i1, i2)
		}
	}
	return mesh
}

func vertexAt(vertices []float32, i uint32) Vec3 {
	return Vec3{X: float64(vertices[i*3]), Y: float64(vertices[i*3+1]), Z: float64(vertices[i*3+2])}
}

// PolygonsFromTriangles builds one triangular Polygon per input
// triangle from a flat vertex/index buffer — the import-side reverse of
// TrianglesFromSolid. Degenerate (zero-area) triangles are dropped
// rather than failing the whole import.
func PolygonsFromTriangles(vertices []float32, indices []uint32, shared Shared, opts Options) []*Polygon {
	triCount := len(indices) / 3
	triIdx := make([]int, triCount)
	for i := range triIdx {
		triIdx[i] = i
	}
	return lo.FilterMap(triIdx, func(t int, _ int) (*Polygon, bool) {
		i0, i1, i2 := indices[t*3], indices[t*3+1], indices[t*3+2]
		verts := []Vertex{
			NewVertex(vertexAt(vertices, i0)),
			NewVertex(vertexAt(vertices, i1)),
			NewVertex(vertexAt(vertices, i2)),
		}
		poly, err := NewPolygon(verts, shared, opts)
		if err != nil {
			return nil, false
		}
		return poly, true
	})
}
