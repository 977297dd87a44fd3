package geometry

import (
	"math"

	"github.com/golang/geo/r3"
)

// Triangle is a triangle geometry
type Triangle struct {
	A r3.Vector `json:"a"`
	B r3.Vector `json:"b"`
	C r3.Vector `json:"c"`
}

// GetBounds returns the bounding box of the triangle
func (t *Triangle) GetBounds() AABB {
	minX := math.Min(math.Min(t.A.X, t.B.X), t.C.X)
	maxX := math.Max(math.Max(t.A.X, t.B.X), t.C.X)
	minY := math.Min(math.Min(t.A.Y, t.B.Y), t.C.Y)
	maxY := math.Max(math.Max(t.A.Y, t.B.Y), t.C.Y)
	minZ := math.Min(math.Min(t.A.Z, t.B.Z), t.C.Z)
	maxZ := math.Max(math.Max(t.A.Z, t.B.Z), t.C.Z)
	return AABB{
		Min: r3.Vector{X: minX, Y: minY, Z: minZ},
		Max: r3.Vector{X: maxX, Y: maxY, Z: maxZ},
	}
}

// Centroid returns the centroid of the triangle
func (t *Triangle) Centroid() r3.Vector {
	return t.A.Add(t.B).Add(t.C).Mul(1.0 / 3.0)
}

// GetNormal returns the normal of the triangle
func (t *Triangle) GetNormal() r3.Vector {
	edge1 := t.B.Sub(t.A)
	edge2 := t.C.Sub(t.A)
	return edge1.Cross(edge2).Normalize()
}
