package csg

import "github.com/glyph3d/bspcsg/pkg/csg/csgerr"

// PolygonTreeNode is a node in the derivation tree over one original
// polygon (§3/§4.2). Splitting a node adds children but does not clear
// its own polygon field; a node's polygon is read as the authoritative
// fragment whenever it's still set, children or not. Invariants:
//
//	I2: removing a leaf invalidates (nils) every ancestor's polygon up to
//	    (but excluding) the root.
//	I3: if every descendant spawned by a node's split is still live, that
//	    node's own (pre-split) polygon remains non-nil and is the
//	    authoritative, un-fragmented output for that surface — it only
//	    becomes dead weight once Remove() on a descendant invalidates it.
type PolygonTreeNode struct {
	parent   *PolygonTreeNode
	children []*PolygonTreeNode
	polygon  *Polygon
	removed  bool
}

// NewPolygonTreeRoot returns an empty root node. A root holds only
// children — it never carries a polygon itself.
func NewPolygonTreeRoot() *PolygonTreeNode {
	return &PolygonTreeNode{}
}

// Polygon returns the node's live polygon, or nil if the node was removed,
// its polygon was invalidated by a descendant's Remove, or it is the root.
// A split node whose fragments are all still live keeps returning its
// pre-split polygon (I3).
func (n *PolygonTreeNode) Polygon() *Polygon {
	if n.removed {
		return nil
	}
	return n.polygon
}

// Removed reports whether Remove has been called on this node.
func (n *PolygonTreeNode) Removed() bool { return n.removed }

// AddChild appends a new leaf child holding polygon and returns it. It
// does not touch n's own polygon field: per I3, a split node keeps its
// pre-split polygon live until a descendant's Remove() invalidates it.
func (n *PolygonTreeNode) AddChild(polygon *Polygon) *PolygonTreeNode {
	child := &PolygonTreeNode{parent: n, polygon: polygon}
	n.children = append(n.children, child)
	return child
}

// GetPolygons performs a breadth-first traversal, appending node.polygon
// when non-nil and otherwise recursing into children, so a
// historically-split-but-still-intact ancestor re-emits as one polygon
// (§4.2).
func (n *PolygonTreeNode) GetPolygons(out *[]*Polygon) {
	queue := []*PolygonTreeNode{n}
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		if node.removed {
			continue
		}
		if node.polygon != nil {
			*out = append(*out, node.polygon)
			continue
		}
		queue = append(queue, node.children...)
	}
}

// collectLive performs the same breadth-first traversal as GetPolygons
// but collects node references instead of flattened polygons — the input
// BspTree.ClipTo hands to ClipPolygons, which needs to mutate the nodes
// themselves, not just read their polygons.
func (n *PolygonTreeNode) collectLive(out *[]*PolygonTreeNode) {
	queue := []*PolygonTreeNode{n}
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		if node.removed {
			continue
		}
		if node.polygon != nil {
			*out = append(*out, node)
			continue
		}
		queue = append(queue, node.children...)
	}
}

// Invert walks the whole tree, replacing every non-nil polygon (leaves and
// still-intact split ancestors alike) with its flipped version. Iterative,
// per §9's recursion-depth discipline.
func (n *PolygonTreeNode) Invert() {
	stack := []*PolygonTreeNode{n}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if node.polygon != nil {
			node.polygon = node.polygon.Flipped()
		}
		stack = append(stack, node.children...)
	}
}

// SplitByPlane classifies n against plane. A node whose own polygon is
// still live (I3 — not yet invalidated by a descendant Remove(), whether
// or not it has children from an earlier split) is classified directly,
// performing a cheap sphere-vs-plane early-out before falling back to
// SplitPolygonByPlane; only once a node's polygon has been invalidated
// does classification recurse into its surviving children (§4.2).
func (n *PolygonTreeNode) SplitByPlane(plane Plane, coplanarFront, coplanarBack, front, back *[]*PolygonTreeNode, opts Options) {
	if n.removed {
		return
	}
	if n.polygon == nil {
		for _, c := range n.children {
			c.SplitByPlane(plane, coplanarFront, coplanarBack, front, back, opts)
		}
		return
	}

	center, radius := n.polygon.BoundingSphere()
	d := plane.SignedDistance(center)
	tol := radius + opts.EPS
	if d > tol {
		*front = append(*front, n)
		return
	}
	if d < -tol {
		*back = append(*back, n)
		return
	}

	kind, frontPoly, backPoly, err := SplitPolygonByPlane(plane, n.polygon, opts)
	if err != nil {
		panic(csgerr.Wrap(csgerr.Assertion, "SplitByPlane: classification failed", err))
	}
	switch kind {
	case CoplanarFront:
		*coplanarFront = append(*coplanarFront, n)
	case CoplanarBack:
		*coplanarBack = append(*coplanarBack, n)
	case Front:
		*front = append(*front, n)
	case Back:
		*back = append(*back, n)
	case Spanning:
		if frontPoly != nil {
			*front = append(*front, n.AddChild(frontPoly))
		}
		if backPoly != nil {
			*back = append(*back, n.AddChild(backPoly))
		}
	}
}

// Remove marks the node removed, detaches it from its parent's children,
// and invalidates every ancestor's polygon up to (but excluding) the
// root (I2). A node carrying a still-live (historically-split-but-intact,
// I3) polygon may itself have children from an earlier split; removing
// it discards that whole subtree along with it, the same as removing a
// plain leaf. Removing the root, or a node missing from its parent's
// children list, are invariant violations (§7's Assertion kind) and
// panic with a *csgerr.Error; the Boolean operations in solid.go (Union,
// Difference, Intersection) recover these into ordinary errors.
func (n *PolygonTreeNode) Remove() {
	if n.removed {
		return
	}
	if n.parent == nil {
		panic(csgerr.NewAssertion("cannot remove the polygon tree root"))
	}

	n.removed = true
	n.polygon = nil

	idx := -1
	for i, c := range n.parent.children {
		if c == n {
			idx = i
			break
		}
	}
	if idx < 0 {
		panic(csgerr.NewAssertion("node missing from parent's children list"))
	}
	n.parent.children = append(n.parent.children[:idx], n.parent.children[idx+1:]...)

	node := n.parent
	for node != nil && node.polygon != nil {
		node.polygon = nil
		node = node.parent
	}
}
