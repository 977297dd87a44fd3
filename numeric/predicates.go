package numeric

import (
	"math/big"

	"github.com/golang/geo/r3"
	"github.com/o0olele/collision-go/geometry"
)

// RayHit classifies one triangle against a cast segment during
// point-in-solid parity counting.
type RayHit int

const (
	// RayMiss means the segment does not touch the triangle.
	RayMiss RayHit = iota
	// RayCross means the segment crosses the triangle interior exactly once.
	RayCross
	// RayOnFace means the segment source lies on the triangle itself.
	RayOnFace
	// RayDegenerate means the segment grazes an edge, a vertex or the
	// supporting plane; the caller must recast in another direction.
	RayDegenerate
)

// TrianglesIntersect reports whether two placed triangles intersect,
// boundaries included. Zero-area triangles never intersect anything.
func TrianglesIntersect(t1 geometry.Triangle, trans1 geometry.Affine, t2 geometry.Triangle, trans2 geometry.Affine) bool {
	p0 := PlaceAt(t1.A, trans1)
	p1 := PlaceAt(t1.B, trans1)
	p2 := PlaceAt(t1.C, trans1)
	q0 := PlaceAt(t2.A, trans2)
	q1 := PlaceAt(t2.B, trans2)
	q2 := PlaceAt(t2.C, trans2)

	if _, _, ok := projectionAxis(p0, p1, p2); !ok {
		return false
	}
	if _, _, ok := projectionAxis(q0, q1, q2); !ok {
		return false
	}

	d0 := Orient3D(q0, q1, q2, p0)
	d1 := Orient3D(q0, q1, q2, p1)
	d2 := Orient3D(q0, q1, q2, p2)
	if d0 != 0 && d0 == d1 && d1 == d2 {
		return false
	}
	e0 := Orient3D(p0, p1, p2, q0)
	e1 := Orient3D(p0, p1, p2, q1)
	e2 := Orient3D(p0, p1, p2, q2)
	if e0 != 0 && e0 == e1 && e1 == e2 {
		return false
	}

	if d0 == 0 && d1 == 0 && d2 == 0 {
		// all six points share one plane
		if coplanarSegTriIntersect(p0, p1, q0, q1, q2) ||
			coplanarSegTriIntersect(p1, p2, q0, q1, q2) ||
			coplanarSegTriIntersect(p2, p0, q0, q1, q2) {
			return true
		}
		return pointInTriangleCoplanar(q0, p0, p1, p2)
	}

	return segTriIntersect(p0, p1, q0, q1, q2) ||
		segTriIntersect(p1, p2, q0, q1, q2) ||
		segTriIntersect(p2, p0, q0, q1, q2) ||
		segTriIntersect(q0, q1, p0, p1, p2) ||
		segTriIntersect(q1, q2, p0, p1, p2) ||
		segTriIntersect(q2, q0, p0, p1, p2)
}

// RayCrossing classifies the segment from the placed source point to the
// far endpoint against one placed triangle. The far endpoint must lie
// outside the solid (beyond its bounding box) for parity counting to be
// meaningful.
func RayCrossing(source PlacedPoint, far r3.Vector, tri geometry.Triangle, trans geometry.Affine) RayHit {
	a := PlaceAt(tri.A, trans)
	b := PlaceAt(tri.B, trans)
	c := PlaceAt(tri.C, trans)
	if _, _, ok := projectionAxis(a, b, c); !ok {
		// zero-area face, never crossed
		return RayMiss
	}
	farPt := Place(far)

	sp := Orient3D(a, b, c, source)
	if sp == 0 {
		if pointInTriangleCoplanar(source, a, b, c) {
			return RayOnFace
		}
		if Orient3D(a, b, c, farPt) == 0 {
			return RayDegenerate
		}
		return RayMiss
	}
	sq := Orient3D(a, b, c, farPt)
	if sq == 0 {
		return RayDegenerate
	}
	if sp == sq {
		return RayMiss
	}
	u := Orient3D(source, farPt, a, b)
	v := Orient3D(source, farPt, b, c)
	w := Orient3D(source, farPt, c, a)
	if conflictingSigns(u, v, w) {
		return RayMiss
	}
	if u == 0 || v == 0 || w == 0 {
		// through an edge or vertex, recast
		return RayDegenerate
	}
	return RayCross
}

// segTriIntersect is the closed segment vs triangle test. The triangle
// must be non-degenerate.
func segTriIntersect(p, q, a, b, c PlacedPoint) bool {
	sp := Orient3D(a, b, c, p)
	sq := Orient3D(a, b, c, q)
	if sp == 0 && sq == 0 {
		return coplanarSegTriIntersect(p, q, a, b, c)
	}
	if sp == 0 {
		return pointInTriangleCoplanar(p, a, b, c)
	}
	if sq == 0 {
		return pointInTriangleCoplanar(q, a, b, c)
	}
	if sp == sq {
		return false
	}
	u := Orient3D(p, q, a, b)
	v := Orient3D(p, q, b, c)
	w := Orient3D(p, q, c, a)
	return !conflictingSigns(u, v, w)
}

// coplanarSegTriIntersect handles a segment lying in the plane of a
// non-degenerate triangle.
func coplanarSegTriIntersect(p, q, a, b, c PlacedPoint) bool {
	axis, _, _ := projectionAxis(a, b, c)
	if pointInTriangleCoplanar(p, a, b, c) || pointInTriangleCoplanar(q, a, b, c) {
		return true
	}
	return segSeg2D(p, q, a, b, axis) ||
		segSeg2D(p, q, b, c, axis) ||
		segSeg2D(p, q, c, a, axis)
}

// pointInTriangleCoplanar is the closed point-in-triangle test for a
// point already known to lie in the plane of a non-degenerate triangle.
func pointInTriangleCoplanar(p, a, b, c PlacedPoint) bool {
	axis, orient, _ := projectionAxis(a, b, c)
	s1 := orient2dAxis(a, b, p, axis)
	s2 := orient2dAxis(b, c, p, axis)
	s3 := orient2dAxis(c, a, p, axis)
	return s1 != -orient && s2 != -orient && s3 != -orient
}

// projectionAxis picks an axis along which the triangle projects with
// nonzero area and returns the orientation sign of that projection. ok
// is false when the triangle is degenerate (its vertices collinear).
func projectionAxis(a, b, c PlacedPoint) (axis, orient int, ok bool) {
	for axis = 0; axis < 3; axis++ {
		if orient = orient2dAxis(a, b, c, axis); orient != 0 {
			return axis, orient, true
		}
	}
	return 0, 0, false
}

// segSeg2D is the closed coplanar segment vs segment test evaluated in
// the projection orthogonal to the given axis.
func segSeg2D(p, q, a, b PlacedPoint, axis int) bool {
	s1 := orient2dAxis(p, q, a, axis)
	s2 := orient2dAxis(p, q, b, axis)
	if s1 == 0 && s2 == 0 {
		return collinearSegmentsOverlap(p, q, a, b, axis)
	}
	if s1 == s2 {
		return false
	}
	s3 := orient2dAxis(a, b, p, axis)
	s4 := orient2dAxis(a, b, q, axis)
	return s3 != s4 || s3 == 0
}

// collinearSegmentsOverlap checks whether two collinear segments share a
// point, by exact coordinate interval overlap in the projection plane.
func collinearSegmentsOverlap(p, q, a, b PlacedPoint, axis int) bool {
	i, j := dropAxis(axis)
	wp := p.worldRat()
	wq := q.worldRat()
	wa := a.worldRat()
	wb := b.worldRat()
	return ratIntervalsOverlap(wp[i], wq[i], wa[i], wb[i]) &&
		ratIntervalsOverlap(wp[j], wq[j], wa[j], wb[j])
}

func ratIntervalsOverlap(a0, a1, b0, b1 *big.Rat) bool {
	aLo, aHi := ratMinMax(a0, a1)
	bLo, bHi := ratMinMax(b0, b1)
	return aHi.Cmp(bLo) >= 0 && bHi.Cmp(aLo) >= 0
}

func ratMinMax(a, b *big.Rat) (lo, hi *big.Rat) {
	if a.Cmp(b) <= 0 {
		return a, b
	}
	return b, a
}

// conflictingSigns reports whether two of the signs are nonzero with
// opposite values.
func conflictingSigns(signs ...int) bool {
	seen := 0
	for _, s := range signs {
		if s == 0 {
			continue
		}
		if seen != 0 && s != seen {
			return true
		}
		seen = s
	}
	return false
}
