package aabbtree

import "github.com/o0olele/collision-go/numeric"

// Intersects reports whether the two placed meshes' surfaces intersect.
// Each tree accounts for its own placement; the two placements are
// unrelated. An empty tree intersects nothing.
func (t *Tree) Intersects(other *Tree) bool {
	if t.root == nil || other.root == nil {
		return false
	}
	return intersectNodes(t, t.root, other, other.root)
}

func intersectNodes(ta *Tree, na *node, tb *Tree, nb *node) bool {
	// conservative world boxes, so pruning never loses a true pair
	ba := ta.worldNodeBounds(na)
	bb := tb.worldNodeBounds(nb)
	if !ba.Intersects(bb) {
		return false
	}
	if na.isLeaf() && nb.isLeaf() {
		for _, fa := range na.faces {
			for _, fb := range nb.faces {
				triA := ta.mesh.Face(fa)
				triB := tb.mesh.Face(fb)
				if numeric.TrianglesIntersect(triA, ta.transform, triB, tb.transform) {
					return true
				}
			}
		}
		return false
	}
	if na.isLeaf() {
		return intersectNodes(ta, na, tb, nb.left) ||
			intersectNodes(ta, na, tb, nb.right)
	}
	return intersectNodes(ta, na.left, tb, nb) ||
		intersectNodes(ta, na.right, tb, nb)
}
