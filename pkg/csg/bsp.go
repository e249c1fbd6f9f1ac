package csg

// BspNode is one node of the spatial BSP index (§3/§4.3). plane is nil
// until the first polygon reaches this node. polygons holds the
// PolygonTreeNode references classified as lying on this node's plane
// (front- or back-facing).
type BspNode struct {
	plane    *Plane
	front    *BspNode
	back     *BspNode
	polygons []*PolygonTreeNode
}

func newBspNode() *BspNode {
	return &BspNode{}
}

type bspInsertWork struct {
	node  *BspNode
	nodes []*PolygonTreeNode
}

// AddPolygonTreeNodes inserts nodes into the tree rooted at n. If n has
// no plane yet, the first input node's polygon plane is chosen (no SAH,
// no median heuristic — see §4.3). The recursion is an explicit work
// stack, per §9's recursion-depth discipline.
func (n *BspNode) AddPolygonTreeNodes(nodes []*PolygonTreeNode, opts Options) {
	if len(nodes) == 0 {
		return
	}
	stack := []bspInsertWork{{node: n, nodes: nodes}}
	for len(stack) > 0 {
		work := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		node, in := work.node, work.nodes
		if len(in) == 0 {
			continue
		}
		if node.plane == nil {
			first := in[0].Polygon()
			if first == nil {
				// the chosen node has already been clipped away; fall back
				// to the next live polygon in this batch.
				var chosen *Plane
				for _, cand := range in {
					if p := cand.Polygon(); p != nil {
						pl := p.Plane
						chosen = &pl
						break
					}
				}
				if chosen == nil {
					continue
				}
				node.plane = chosen
			} else {
				pl := first.Plane
				node.plane = &pl
			}
		}

		var coplanarFront, coplanarBack, front, back []*PolygonTreeNode
		for _, tn := range in {
			tn.SplitByPlane(*node.plane, &coplanarFront, &coplanarBack, &front, &back, opts)
		}
		node.polygons = append(node.polygons, coplanarFront...)
		node.polygons = append(node.polygons, coplanarBack...)

		if len(front) > 0 {
			if node.front == nil {
				node.front = newBspNode()
			}
			stack = append(stack, bspInsertWork{node: node.front, nodes: front})
		}
		if len(back) > 0 {
			if node.back == nil {
				node.back = newBspNode()
			}
			stack = append(stack, bspInsertWork{node: node.back, nodes: back})
		}
	}
}

// Invert swaps solid/empty meaning for the spatial index: flip every
// node's plane and swap front/back. It does not touch polygon data —
// that lives in the parallel PolygonTreeNode tree and is inverted
// separately by BspTree.Invert (§4.3).
func (n *BspNode) Invert() {
	stack := []*BspNode{n}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if node.plane != nil {
			flipped := node.plane.Flipped()
			node.plane = &flipped
		}
		node.front, node.back = node.back, node.front
		if node.front != nil {
			stack = append(stack, node.front)
		}
		if node.back != nil {
			stack = append(stack, node.back)
		}
	}
}

// clipFrame is one stack frame of the iterative clipPolygons descent
// (§4.3: "An iterative stack drives the descent"). Converting the
// natural two-recursive-call shape (clip against front, then against
// back) into an explicit stack needs a small phase state machine: phase
// 0 computes this node's own split and may push a front frame; phase 1
// consumes the front child's result and may push a back frame; phase 2
// consumes the back child's result; phase 3 hands the combined result to
// the parent frame (or the caller, at the root).
type clipFrame struct {
	parent *clipFrame
	node   *BspNode
	input  []*PolygonTreeNode
	flag   bool

	front []*PolygonTreeNode
	back  []*PolygonTreeNode
	phase int

	childResult []*PolygonTreeNode
}

// ClipPolygons classifies nodes against the tree rooted at n, discarding
// (via PolygonTreeNode.Remove) anything that reaches a missing back
// subtree while on the back side, per §4.3.
func (n *BspNode) ClipPolygons(nodes []*PolygonTreeNode, alsoRemoveCoplanarFront bool, opts Options) []*PolygonTreeNode {
	if len(nodes) == 0 {
		return nil
	}
	start := &clipFrame{node: n, input: nodes, flag: alsoRemoveCoplanarFront}
	stack := []*clipFrame{start}
	var finalResult []*PolygonTreeNode

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		switch f.phase {
		case 0:
			if f.node.plane == nil {
				// Empty subtree: everything passed in is "outside" and
				// survives untouched.
				f.front = append([]*PolygonTreeNode(nil), f.input...)
				f.back = nil
				f.phase = 3
				continue
			}

			var coplanarFront, coplanarBack, front, back []*PolygonTreeNode
			for _, tn := range f.input {
				tn.SplitByPlane(*f.node.plane, &coplanarFront, &coplanarBack, &front, &back, opts)
			}
			if f.flag {
				back = append(back, coplanarFront...)
			} else {
				front = append(front, coplanarFront...)
			}
			back = append(back, coplanarBack...)
			f.front = front
			f.back = back
			f.phase = 1

			if f.node.front != nil {
				stack = append(stack, &clipFrame{parent: f, node: f.node.front, input: f.front, flag: f.flag})
				continue
			}
			fallthrough

		case 1:
			if f.phase == 1 {
				if f.node.front != nil {
					f.front = f.childResult
				}
				f.phase = 2
			}

			if f.node.back != nil {
				stack = append(stack, &clipFrame{parent: f, node: f.node.back, input: f.back, flag: f.flag})
				continue
			}
			for _, tn := range f.back {
				tn.Remove()
			}
			f.back = nil
			f.phase = 3
			continue

		case 2:
			if f.node.back != nil {
				f.back = f.childResult
			}
			f.phase = 3
			continue

		case 3:
			result := append(append([]*PolygonTreeNode(nil), f.front...), f.back...)
			stack = stack[:len(stack)-1]
			if f.parent != nil {
				f.parent.childResult = result
			} else {
				finalResult = result
			}
		}
	}
	return finalResult
}

// BspTree owns one PolygonTreeNode root (the authoritative geometry,
// with full derivation history) and one BspNode root (the spatial
// index over references into it), per §3.
type BspTree struct {
	root     *BspNode
	polyRoot *PolygonTreeNode
	opts     Options
}

// NewBspTree returns an empty tree.
func NewBspTree(opts Options) *BspTree {
	return &BspTree{root: newBspNode(), polyRoot: NewPolygonTreeRoot(), opts: opts}
}

// AddPolygons adds polygons as new top-level children of the polygon
// tree root and inserts them into the spatial index.
func (t *BspTree) AddPolygons(polys []*Polygon) {
	nodes := make([]*PolygonTreeNode, 0, len(polys))
	for _, p := range polys {
		nodes = append(nodes, t.polyRoot.AddChild(p))
	}
	t.root.AddPolygonTreeNodes(nodes, t.opts)
}

// AllPolygons harvests the surviving polygons from the polygon tree.
func (t *BspTree) AllPolygons() []*Polygon {
	var out []*Polygon
	t.polyRoot.GetPolygons(&out)
	return out
}

// Invert swaps solid/empty meaning of the whole tree: the spatial index
// (plane/front/back) and the polygon tree (leaf polygons) invert
// independently, per §4.3.
func (t *BspTree) Invert() {
	t.root.Invert()
	t.polyRoot.Invert()
}

// ClipTo clips every polygon currently live in t against other's spatial
// index, per §4.3.
func (t *BspTree) ClipTo(other *BspTree, alsoRemoveCoplanarFront bool) {
	var nodes []*PolygonTreeNode
	t.polyRoot.collectLive(&nodes)
	other.root.ClipPolygons(nodes, alsoRemoveCoplanarFront, other.opts)
}
