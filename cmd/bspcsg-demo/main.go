// Command bspcsg-demo exercises the BSP/CSG kernel end to end: build two
// primitives, run all three Booleans between them, and report the
// resulting mesh sizes.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/glyph3d/bspcsg/pkg/kernel"
	"github.com/glyph3d/bspcsg/pkg/kernel/bsp"
)

func main() {
	boxSize := flag.Float64("box", 20, "edge length of the box operand")
	radius := flag.Float64("radius", 12, "radius of the cylinder operand")
	height := flag.Float64("height", 30, "height of the cylinder operand")
	segments := flag.Int("segments", 32, "cylinder side-face count")
	flag.Parse()

	k := bsp.New()

	a := k.Box(*boxSize, *boxSize, *boxSize)
	b := k.Translate(k.Cylinder(*height, *radius, *segments), *boxSize/2, *boxSize/2, -(*height-*boxSize)/2)

	report(k, "union", k.Union(a, b))
	report(k, "difference", k.Difference(a, b))
	report(k, "intersection", k.Intersection(a, b))
}

func report(k kernel.Kernel, name string, s kernel.Solid) {
	mesh, err := k.ToMesh(s)
	if err != nil {
		log.Fatalf("%s: ToMesh: %v", name, err)
	}
	min, max := s.BoundingBox()
	fmt.Printf("%-12s vertices=%-5d triangles=%-5d bbox=[%.2f,%.2f,%.2f]-[%.2f,%.2f,%.2f]\n",
		name, mesh.VertexCount(), mesh.TriangleCount(),
		min[0], min[1], min[2], max[0], max[1], max[2])
}
