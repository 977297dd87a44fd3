// Package collision implements pairwise collision and containment
// detection among a dynamic set of rigid, independently transformable
// triangle meshes. Each registered mesh owns one bounding volume
// hierarchy, built once over its local-frame faces; moving a body only
// updates its placement, never its geometry or its hierarchy.
//
// A Detector is single-threaded: callers needing parallel queries must
// use distinct Detector instances or serialize access to one.
package collision

import (
	"fmt"

	"github.com/o0olele/collision-go/aabbtree"
	"github.com/o0olele/collision-go/geometry"
	"github.com/o0olele/collision-go/numeric"
)

// Detector owns one hierarchy per registered mesh and answers
// intersection and inclusion queries under the meshes' current
// placements. Bodies are addressed by dense slot ids in [0, Len());
// removing a body shifts the ids of all later bodies down by one.
type Detector struct {
	meshes   []*geometry.TriMesh // borrowed
	trees    []*aabbtree.Tree    // owned
	isClosed []bool

	cacheBoxes    bool
	rotationAware bool
	boxes         []geometry.AABB
	dirty         bitmap

	guard numeric.Guard
}

// NewDetector builds a detector over the meshes. The meshes are
// borrowed, never mutated, and must stay alive while registered.
func NewDetector(meshes []*geometry.TriMesh, opts ...Option) *Detector {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	d := &Detector{
		cacheBoxes:    cfg.cacheBoxes,
		rotationAware: cfg.rotationAware,
	}
	d.Init(meshes)
	return d
}

// Init replaces the entire collection, dropping every owned hierarchy
// first. All previously issued slot ids become invalid.
func (d *Detector) Init(meshes []*geometry.TriMesh) {
	n := len(meshes)
	d.meshes = make([]*geometry.TriMesh, 0, n)
	d.trees = make([]*aabbtree.Tree, 0, n)
	d.isClosed = make([]bool, 0, n)
	d.boxes = nil
	d.dirty = nil
	for _, m := range meshes {
		d.AddMesh(m)
	}
}

// AddMesh appends the mesh as a new body at the identity placement and
// returns its slot id. The hierarchy is built and closedness computed
// immediately.
func (d *Detector) AddMesh(m *geometry.TriMesh) int {
	d.meshes = append(d.meshes, m)
	d.trees = append(d.trees, aabbtree.NewTree(m, d.rotationAware))
	d.isClosed = append(d.isClosed, m.IsClosed())
	if d.cacheBoxes {
		d.boxes = append(d.boxes, geometry.NewEmptyAABB())
		d.dirty.Set(uint32(len(d.boxes) - 1))
	}
	return len(d.trees) - 1
}

// RemoveMesh drops the body at the slot. The slots of all later bodies
// shift down by one; callers must not hold slot ids across a removal.
func (d *Detector) RemoveMesh(slot int) {
	d.checkSlot(slot)
	d.meshes = append(d.meshes[:slot], d.meshes[slot+1:]...)
	d.trees = append(d.trees[:slot], d.trees[slot+1:]...)
	d.isClosed = append(d.isClosed[:slot], d.isClosed[slot+1:]...)
	if d.cacheBoxes {
		d.boxes = append(d.boxes[:slot], d.boxes[slot+1:]...)
		// every box may now sit at a new slot, refresh them all lazily
		d.dirty.SetAll(len(d.boxes))
	}
}

// SetTransform places the body at the slot. The placement maps the
// mesh's local frame into the world frame.
func (d *Detector) SetTransform(slot int, transform geometry.Affine) {
	d.checkSlot(slot)
	d.trees[slot].SetTransform(transform)
	if d.cacheBoxes {
		d.dirty.Set(uint32(slot))
	}
}

// Transform returns the current placement of the body at the slot.
func (d *Detector) Transform(slot int) geometry.Affine {
	d.checkSlot(slot)
	return d.trees[slot].Transform()
}

// IsClosed reports whether the body's surface was closed at
// registration time.
func (d *Detector) IsClosed(slot int) bool {
	d.checkSlot(slot)
	return d.isClosed[slot]
}

// Len returns the number of registered bodies.
func (d *Detector) Len() int {
	return len(d.trees)
}

func (d *Detector) checkSlot(slot int) {
	if slot < 0 || slot >= len(d.trees) {
		panic(fmt.Sprintf("collision: slot %d out of range [0,%d)", slot, len(d.trees)))
	}
}

// refreshBoxes recomputes exactly the stale cached world boxes, in slot
// order. After it returns every dirty bit is clear.
func (d *Detector) refreshBoxes() {
	if !d.cacheBoxes {
		return
	}
	for k := range d.boxes {
		if !d.dirty.Contains(uint32(k)) {
			continue
		}
		d.boxes[k] = d.trees[k].WorldBounds()
		d.dirty.Remove(uint32(k))
	}
}
