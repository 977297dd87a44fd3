// Package aabbtree implements a bounding volume hierarchy over one
// triangle mesh's faces. The tree is built once in the mesh's local
// frame; a mutable affine placement maps it into the world frame, so a
// moving body never rebuilds its tree.
package aabbtree

import (
	"sort"

	"github.com/o0olele/collision-go/geometry"
)

// maxLeafFaces is the face count below which a subtree becomes a leaf.
const maxLeafFaces = 4

// Tree is the bounding volume hierarchy of a single mesh.
type Tree struct {
	mesh          *geometry.TriMesh
	root          *node
	transform     geometry.Affine
	rotationAware bool
}

type node struct {
	bounds geometry.AABB // local frame
	left   *node
	right  *node
	faces  []int // leaf payload, nil for internal nodes
}

func (n *node) isLeaf() bool {
	return n.left == nil
}

// NewTree builds the hierarchy over the mesh faces. When rotationAware
// is false the tree assumes pure-translation placements and computes
// world boxes by offsetting local boxes, which is cheaper; setting a
// rotating transform on such a tree breaks the conservative box
// guarantee.
func NewTree(mesh *geometry.TriMesh, rotationAware bool) *Tree {
	t := &Tree{
		mesh:          mesh,
		transform:     geometry.Identity(),
		rotationAware: rotationAware,
	}
	if mesh.NumFaces() > 0 {
		faces := make([]int, mesh.NumFaces())
		for i := range faces {
			faces[i] = i
		}
		t.root = t.buildNode(faces)
	}
	return t
}

// buildNode splits the faces at the median centroid along the longest
// axis of the centroid bounds.
func (t *Tree) buildNode(faces []int) *node {
	bounds := geometry.NewEmptyAABB()
	for _, f := range faces {
		tri := t.mesh.Face(f)
		bounds = bounds.Union(tri.GetBounds())
	}
	if len(faces) <= maxLeafFaces {
		return &node{bounds: bounds, faces: faces}
	}

	centroidBounds := geometry.NewEmptyAABB()
	for _, f := range faces {
		tri := t.mesh.Face(f)
		centroidBounds = centroidBounds.AddPoint(tri.Centroid())
	}
	axis := centroidBounds.LongestAxis()
	sort.Slice(faces, func(i, j int) bool {
		ti := t.mesh.Face(faces[i])
		tj := t.mesh.Face(faces[j])
		return geometry.Component(ti.Centroid(), axis) < geometry.Component(tj.Centroid(), axis)
	})
	mid := len(faces) / 2
	return &node{
		bounds: bounds,
		left:   t.buildNode(faces[:mid]),
		right:  t.buildNode(faces[mid:]),
	}
}

// Mesh returns the borrowed mesh the tree was built over.
func (t *Tree) Mesh() *geometry.TriMesh {
	return t.mesh
}

// IsEmpty reports whether the tree holds no faces.
func (t *Tree) IsEmpty() bool {
	return t.root == nil
}

// SetTransform stores the placement without touching the tree structure.
func (t *Tree) SetTransform(transform geometry.Affine) {
	t.transform = transform
}

// Transform returns the current placement.
func (t *Tree) Transform() geometry.Affine {
	return t.transform
}

// WorldBounds returns a conservative world-frame bounding box of the
// placed mesh.
func (t *Tree) WorldBounds() geometry.AABB {
	if t.root == nil {
		return geometry.NewEmptyAABB()
	}
	return t.worldNodeBounds(t.root)
}

// worldNodeBounds maps a node's local box into the world frame. With
// rotation-aware placement the box of the 8 transformed corners is
// used, a conservative superset of the placed content.
func (t *Tree) worldNodeBounds(n *node) geometry.AABB {
	if !t.rotationAware || t.transform.IsTranslationOnly() {
		return n.bounds.Translate(t.transform.Translation())
	}
	out := geometry.NewEmptyAABB()
	for _, corner := range n.bounds.Corners() {
		out = out.AddPoint(t.transform.Apply(corner))
	}
	return out
}
