package geometry

import (
	"math"

	"github.com/golang/geo/r3"
)

// AABB is axis-aligned bounding box
type AABB struct {
	Min r3.Vector `json:"min"`
	Max r3.Vector `json:"max"`
}

// NewEmptyAABB returns an inverted AABB that behaves as the identity for Union.
func NewEmptyAABB() AABB {
	return AABB{
		Min: r3.Vector{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)},
		Max: r3.Vector{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)},
	}
}

// Contains checks if the point is inside the AABB
func (aabb *AABB) Contains(point r3.Vector) bool {
	return point.X >= aabb.Min.X && point.X <= aabb.Max.X &&
		point.Y >= aabb.Min.Y && point.Y <= aabb.Max.Y &&
		point.Z >= aabb.Min.Z && point.Z <= aabb.Max.Z
}

// Center returns the center of the AABB
func (aabb *AABB) Center() r3.Vector {
	return r3.Vector{
		X: (aabb.Min.X + aabb.Max.X) / 2,
		Y: (aabb.Min.Y + aabb.Max.Y) / 2,
		Z: (aabb.Min.Z + aabb.Max.Z) / 2,
	}
}

// Size returns the size of the AABB
func (aabb *AABB) Size() r3.Vector {
	return aabb.Max.Sub(aabb.Min)
}

// Intersects checks if the AABB intersects with another AABB
func (aabb *AABB) Intersects(other AABB) bool {
	return aabb.Min.X <= other.Max.X && aabb.Max.X >= other.Min.X &&
		aabb.Min.Y <= other.Max.Y && aabb.Max.Y >= other.Min.Y &&
		aabb.Min.Z <= other.Max.Z && aabb.Max.Z >= other.Min.Z
}

// IsEmpty checks if the AABB is empty (invalid)
func (aabb *AABB) IsEmpty() bool {
	return aabb.Min.X > aabb.Max.X || aabb.Min.Y > aabb.Max.Y || aabb.Min.Z > aabb.Max.Z
}

// Union returns the smallest AABB enclosing both boxes.
func (aabb *AABB) Union(other AABB) AABB {
	return AABB{
		Min: r3.Vector{
			X: math.Min(aabb.Min.X, other.Min.X),
			Y: math.Min(aabb.Min.Y, other.Min.Y),
			Z: math.Min(aabb.Min.Z, other.Min.Z),
		},
		Max: r3.Vector{
			X: math.Max(aabb.Max.X, other.Max.X),
			Y: math.Max(aabb.Max.Y, other.Max.Y),
			Z: math.Max(aabb.Max.Z, other.Max.Z),
		},
	}
}

// AddPoint returns the AABB grown to enclose the point.
func (aabb *AABB) AddPoint(point r3.Vector) AABB {
	return AABB{
		Min: r3.Vector{
			X: math.Min(aabb.Min.X, point.X),
			Y: math.Min(aabb.Min.Y, point.Y),
			Z: math.Min(aabb.Min.Z, point.Z),
		},
		Max: r3.Vector{
			X: math.Max(aabb.Max.X, point.X),
			Y: math.Max(aabb.Max.Y, point.Y),
			Z: math.Max(aabb.Max.Z, point.Z),
		},
	}
}

// Translate returns the AABB shifted by the offset.
func (aabb *AABB) Translate(offset r3.Vector) AABB {
	return AABB{Min: aabb.Min.Add(offset), Max: aabb.Max.Add(offset)}
}

// Expand returns the AABB grown by margin on every side.
func (aabb *AABB) Expand(margin float64) AABB {
	m := r3.Vector{X: margin, Y: margin, Z: margin}
	return AABB{Min: aabb.Min.Sub(m), Max: aabb.Max.Add(m)}
}

// LongestAxis returns the axis index (0=X, 1=Y, 2=Z) of the largest extent.
func (aabb *AABB) LongestAxis() int {
	size := aabb.Size()
	axis := 0
	if size.Y > size.X {
		axis = 1
	}
	if size.Z > Component(size, axis) {
		axis = 2
	}
	return axis
}

// Corners returns the 8 corner points of the AABB.
func (aabb *AABB) Corners() [8]r3.Vector {
	return [8]r3.Vector{
		{X: aabb.Min.X, Y: aabb.Min.Y, Z: aabb.Min.Z},
		{X: aabb.Max.X, Y: aabb.Min.Y, Z: aabb.Min.Z},
		{X: aabb.Min.X, Y: aabb.Max.Y, Z: aabb.Min.Z},
		{X: aabb.Max.X, Y: aabb.Max.Y, Z: aabb.Min.Z},
		{X: aabb.Min.X, Y: aabb.Min.Y, Z: aabb.Max.Z},
		{X: aabb.Max.X, Y: aabb.Min.Y, Z: aabb.Max.Z},
		{X: aabb.Min.X, Y: aabb.Max.Y, Z: aabb.Max.Z},
		{X: aabb.Max.X, Y: aabb.Max.Y, Z: aabb.Max.Z},
	}
}

// Component returns the value of the vector on the given axis (0=X, 1=Y, 2=Z).
func Component(v r3.Vector, axis int) float64 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	case 2:
		return v.Z
	}
	return 0
}
