package collision

import (
	"github.com/o0olele/collision-go/aabbtree"
	"github.com/o0olele/collision-go/geometry"
	"github.com/o0olele/collision-go/numeric"
)

// Intersection is one entry of an inclusion-aware query result.
type Intersection struct {
	ID int `json:"id"`
	// PureInclusion is true when one body's solid entirely contains the
	// other body with no surface crossing between them.
	PureInclusion bool `json:"pure_inclusion"`
}

// Intersections returns the slots of every other body whose surface
// intersects body x's surface, in ascending slot order.
func (d *Detector) Intersections(x int) []int {
	d.checkSlot(x)
	protector := d.guard.Protect()
	defer protector.Release()
	d.refreshBoxes()

	res := make([]int, 0)
	for k := range d.trees {
		if k == x {
			continue
		}
		if d.cacheBoxes && !d.boxes[k].Intersects(d.boxes[x]) {
			continue
		}
		if d.trees[k].Intersects(d.trees[x]) {
			res = append(res, k)
		}
	}
	return res
}

// IntersectionsAndInclusions returns, in ascending slot order, every
// other body whose surface crosses body x's (PureInclusion false) or
// that nests entirely inside x, or swallows x entirely, without surface
// contact (PureInclusion true). Disjoint bodies are omitted. At most
// one entry is produced per body: a crossing wins over containment, and
// the x-contains-k direction is tried before k-contains-x.
func (d *Detector) IntersectionsAndInclusions(x int) []Intersection {
	d.checkSlot(x)
	protector := d.guard.Protect()
	defer protector.Release()
	d.refreshBoxes()

	res := make([]Intersection, 0)
	for k := range d.trees {
		if k == x {
			continue
		}
		if d.cacheBoxes && !d.boxes[k].Intersects(d.boxes[x]) {
			continue
		}
		if d.trees[k].Intersects(d.trees[x]) {
			res = append(res, Intersection{ID: k})
			continue
		}
		if d.isClosed[x] && d.solidContainsBody(x, k) {
			res = append(res, Intersection{ID: k, PureInclusion: true})
			continue
		}
		if d.isClosed[k] && d.solidContainsBody(k, x) {
			res = append(res, Intersection{ID: k, PureInclusion: true})
		}
	}
	return res
}

// SetTransformAndIntersections places body x and returns its
// intersections under the new placement.
func (d *Detector) SetTransformAndIntersections(x int, transform geometry.Affine) []int {
	d.SetTransform(x, transform)
	return d.Intersections(x)
}

// SetTransformAndIntersectionsAndInclusions places body x and returns
// its intersections and inclusions under the new placement.
func (d *Detector) SetTransformAndIntersectionsAndInclusions(x int, transform geometry.Affine) []Intersection {
	d.SetTransform(x, transform)
	return d.IntersectionsAndInclusions(x)
}

// solidContainsBody reports whether the solid bounded by the container
// body strictly contains a representative point of the other body. The
// sample is the other body's first vertex carried to the world frame by
// that body's own placement; the container's hierarchy accounts for the
// container's placement. With no surface crossing between the two
// bodies, one sample point decides containment of the whole body.
func (d *Detector) solidContainsBody(container, body int) bool {
	mesh := d.meshes[body]
	if mesh.NumVertices() == 0 {
		return false
	}
	sample := numeric.PlaceAt(mesh.Vertices[0], d.trees[body].Transform())
	return d.trees[container].Locate(sample) == aabbtree.Inside
}
