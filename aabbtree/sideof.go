package aabbtree

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/o0olele/collision-go/geometry"
	"github.com/o0olele/collision-go/numeric"
)

// Location classifies a point against the solid bounded by a closed mesh.
type Location int

const (
	// Outside means the point is strictly outside the solid.
	Outside Location = iota
	// Inside means the point is strictly inside the solid.
	Inside
	// OnBoundary means the point lies on the mesh surface.
	OnBoundary
)

// maxCastAttempts bounds the number of ray directions tried before a
// degenerate configuration is considered unresolvable.
const maxCastAttempts = 64

// Locate classifies a placed sample point against the solid bounded by
// the tree's mesh under the tree's current placement, by certified
// ray-crossing parity. The mesh must be closed for the answer to be
// meaningful; an empty tree reports Outside.
func (t *Tree) Locate(sample numeric.PlacedPoint) Location {
	if t.root == nil {
		return Outside
	}
	world := t.WorldBounds()
	approx := sample.World()
	margin := locateMargin(world, approx)
	expanded := world.Expand(margin)
	if !expanded.Contains(approx) {
		return Outside
	}

	length := world.Size().Norm() + 2*margin + 1
	for attempt := 0; attempt < maxCastAttempts; attempt++ {
		dir := castDirection(attempt)
		far := approx.Add(dir.Mul(length))
		crossings, hit := t.castRay(sample, far, margin)
		switch hit {
		case numeric.RayOnFace:
			return OnBoundary
		case numeric.RayDegenerate:
			continue
		}
		if crossings%2 == 1 {
			return Inside
		}
		return Outside
	}
	panic("aabbtree: point location could not be certified, mesh likely degenerate")
}

// castRay counts certified crossings of the segment sample->far against
// the placed faces. The second result is RayOnFace when the sample lies
// on a face, RayDegenerate when the cast grazed an edge, a vertex or a
// supporting plane and must be retried, RayMiss otherwise.
func (t *Tree) castRay(sample numeric.PlacedPoint, far r3.Vector, margin float64) (int, numeric.RayHit) {
	segBounds := geometry.NewEmptyAABB()
	segBounds = segBounds.AddPoint(sample.World())
	segBounds = segBounds.AddPoint(far)
	segBounds = segBounds.Expand(margin)
	return t.castRayNode(t.root, sample, far, segBounds)
}

func (t *Tree) castRayNode(n *node, sample numeric.PlacedPoint, far r3.Vector, segBounds geometry.AABB) (int, numeric.RayHit) {
	nodeBounds := t.worldNodeBounds(n)
	if !nodeBounds.Intersects(segBounds) {
		return 0, numeric.RayMiss
	}
	if n.isLeaf() {
		crossings := 0
		for _, f := range n.faces {
			switch numeric.RayCrossing(sample, far, t.mesh.Face(f), t.transform) {
			case numeric.RayCross:
				crossings++
			case numeric.RayOnFace:
				return 0, numeric.RayOnFace
			case numeric.RayDegenerate:
				return 0, numeric.RayDegenerate
			}
		}
		return crossings, numeric.RayMiss
	}
	leftCount, leftHit := t.castRayNode(n.left, sample, far, segBounds)
	if leftHit != numeric.RayMiss {
		return 0, leftHit
	}
	rightCount, rightHit := t.castRayNode(n.right, sample, far, segBounds)
	if rightHit != numeric.RayMiss {
		return 0, rightHit
	}
	return leftCount + rightCount, numeric.RayMiss
}

// locateMargin absorbs the floating-point error of the approximate
// world-frame sample position inside conservative box tests.
func locateMargin(world geometry.AABB, approx r3.Vector) float64 {
	scale := world.Size().Norm() + approx.Norm() + 1
	return 1e-9 * scale
}

// castDirection returns the attempt-th direction of a deterministic
// spherical Fibonacci sweep, so retries after a degenerate cast make
// progress instead of repeating the same grazing ray.
func castDirection(attempt int) r3.Vector {
	const golden = 2.399963229728653
	z := 1 - 2*(float64(attempt)+0.5)/float64(maxCastAttempts)
	r := math.Sqrt(1 - z*z)
	phi := float64(attempt) * golden
	return r3.Vector{X: r * math.Cos(phi), Y: r * math.Sin(phi), Z: z}
}
