package numeric

import (
	"math/big"

	"github.com/golang/geo/r3"
	"github.com/o0olele/collision-go/geometry"
)

// PlacedPoint is a mesh-local point paired with the affine placement of
// its body. Predicates apply the placement inside the interval or exact
// computation, so the world position is never pre-rounded.
type PlacedPoint struct {
	Local r3.Vector
	T     geometry.Affine
}

// Place returns a placed point with the identity placement.
func Place(p r3.Vector) PlacedPoint {
	return PlacedPoint{Local: p, T: geometry.Identity()}
}

// PlaceAt returns a point placed by the given transform.
func PlaceAt(p r3.Vector, t geometry.Affine) PlacedPoint {
	return PlacedPoint{Local: p, T: t}
}

// World returns the floating-point approximation of the world position.
// Only usable for conservative bookkeeping (ray lengths, pruning boxes),
// never inside a predicate.
func (p PlacedPoint) World() r3.Vector {
	return p.T.Apply(p.Local)
}

// worldInterval encloses the exact world coordinates of the point.
func (p PlacedPoint) worldInterval() [3]interval {
	if p.T.IsTranslationOnly() {
		t := p.T.Translation()
		return [3]interval{
			single(p.Local.X).add(single(t.X)),
			single(p.Local.Y).add(single(t.Y)),
			single(p.Local.Z).add(single(t.Z)),
		}
	}
	c := p.T.Coeffs()
	x := single(p.Local.X)
	y := single(p.Local.Y)
	z := single(p.Local.Z)
	var out [3]interval
	for row := 0; row < 3; row++ {
		out[row] = single(c[row][0]).mul(x).
			add(single(c[row][1]).mul(y)).
			add(single(c[row][2]).mul(z)).
			add(single(c[row][3]))
	}
	return out
}

// worldRat computes the exact world coordinates of the point. float64
// inputs convert to rationals without loss.
func (p PlacedPoint) worldRat() [3]*big.Rat {
	c := p.T.Coeffs()
	local := [3]*big.Rat{
		new(big.Rat).SetFloat64(p.Local.X),
		new(big.Rat).SetFloat64(p.Local.Y),
		new(big.Rat).SetFloat64(p.Local.Z),
	}
	var out [3]*big.Rat
	tmp := new(big.Rat)
	for row := 0; row < 3; row++ {
		acc := new(big.Rat).SetFloat64(c[row][3])
		for col := 0; col < 3; col++ {
			tmp.SetFloat64(c[row][col])
			tmp.Mul(tmp, local[col])
			acc.Add(acc, tmp)
		}
		out[row] = acc
	}
	return out
}
