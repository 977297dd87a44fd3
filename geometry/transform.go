package geometry

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
)

// Affine is a rigid or general affine placement mapping a body's local
// frame into the world frame. The zero value is not a valid transform,
// use Identity.
type Affine struct {
	mat mgl64.Mat4
}

// Identity returns the identity placement.
func Identity() Affine {
	return Affine{mat: mgl64.Ident4()}
}

// NewTranslation returns a pure translation.
func NewTranslation(offset r3.Vector) Affine {
	return Affine{mat: mgl64.Translate3D(offset.X, offset.Y, offset.Z)}
}

// NewRotation returns a rotation of angle radians around the axis through the origin.
func NewRotation(angle float64, axis r3.Vector) Affine {
	return Affine{mat: mgl64.HomogRotate3D(angle, mgl64.Vec3{axis.X, axis.Y, axis.Z}.Normalize())}
}

// NewScale returns a uniform scaling around the origin.
func NewScale(factor float64) Affine {
	return Affine{mat: mgl64.Scale3D(factor, factor, factor)}
}

// NewAffine wraps an arbitrary 4x4 homogeneous matrix.
func NewAffine(mat mgl64.Mat4) Affine {
	return Affine{mat: mat}
}

// Compose returns the transform applying other first, then a.
func (a Affine) Compose(other Affine) Affine {
	return Affine{mat: a.mat.Mul4(other.mat)}
}

// Inverse returns the inverse transform.
func (a Affine) Inverse() Affine {
	return Affine{mat: a.mat.Inv()}
}

// Apply maps a point from the local frame to the world frame.
func (a Affine) Apply(point r3.Vector) r3.Vector {
	out := mgl64.TransformCoordinate(mgl64.Vec3{point.X, point.Y, point.Z}, a.mat)
	return r3.Vector{X: out.X(), Y: out.Y(), Z: out.Z()}
}

// Translation returns the translational component.
func (a Affine) Translation() r3.Vector {
	return r3.Vector{X: a.mat.At(0, 3), Y: a.mat.At(1, 3), Z: a.mat.At(2, 3)}
}

// IsTranslationOnly reports whether the linear part is exactly the identity.
func (a Affine) IsTranslationOnly() bool {
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			want := 0.0
			if row == col {
				want = 1.0
			}
			if a.mat.At(row, col) != want {
				return false
			}
		}
	}
	return true
}

// Mat returns the underlying homogeneous matrix.
func (a Affine) Mat() mgl64.Mat4 {
	return a.mat
}

// Coeffs returns the top three rows of the homogeneous matrix, the
// coefficients feeding the certified predicate kernel.
func (a Affine) Coeffs() [3][4]float64 {
	var c [3][4]float64
	for row := 0; row < 3; row++ {
		for col := 0; col < 4; col++ {
			c[row][col] = a.mat.At(row, col)
		}
	}
	return c
}
