package numeric

import "math/big"

// Orient3D returns the sign of the orientation determinant of four
// placed points: +1 when d lies on the positive side of the plane
// through a, b, c (the side the normal (b-a)x(c-a) points to), -1 on
// the negative side, 0 when the four points are coplanar.
func Orient3D(a, b, c, d PlacedPoint) int {
	if s, ok := orient3dFiltered(a, b, c, d); ok {
		return s
	}
	return orient3dExact(a, b, c, d)
}

func orient3dFiltered(a, b, c, d PlacedPoint) (int, bool) {
	wa := a.worldInterval()
	wb := b.worldInterval()
	wc := c.worldInterval()
	wd := d.worldInterval()
	var u, v, w [3]interval
	for i := 0; i < 3; i++ {
		u[i] = wb[i].sub(wa[i])
		v[i] = wc[i].sub(wa[i])
		w[i] = wd[i].sub(wa[i])
	}
	det := u[0].mul(v[1].mul(w[2]).sub(v[2].mul(w[1]))).
		sub(u[1].mul(v[0].mul(w[2]).sub(v[2].mul(w[0])))).
		add(u[2].mul(v[0].mul(w[1]).sub(v[1].mul(w[0]))))
	return det.sign()
}

func orient3dExact(a, b, c, d PlacedPoint) int {
	wa := a.worldRat()
	wb := b.worldRat()
	wc := c.worldRat()
	wd := d.worldRat()
	var u, v, w [3]*big.Rat
	for i := 0; i < 3; i++ {
		u[i] = new(big.Rat).Sub(wb[i], wa[i])
		v[i] = new(big.Rat).Sub(wc[i], wa[i])
		w[i] = new(big.Rat).Sub(wd[i], wa[i])
	}
	m0 := new(big.Rat).Sub(new(big.Rat).Mul(v[1], w[2]), new(big.Rat).Mul(v[2], w[1]))
	m1 := new(big.Rat).Sub(new(big.Rat).Mul(v[0], w[2]), new(big.Rat).Mul(v[2], w[0]))
	m2 := new(big.Rat).Sub(new(big.Rat).Mul(v[0], w[1]), new(big.Rat).Mul(v[1], w[0]))
	det := new(big.Rat).Mul(u[0], m0)
	det.Sub(det, new(big.Rat).Mul(u[1], m1))
	det.Add(det, new(big.Rat).Mul(u[2], m2))
	return det.Sign()
}

// orient2dAxis returns the orientation sign of three placed points
// projected onto the plane orthogonal to the given axis (0=X, 1=Y,
// 2=Z). The projection keeps the remaining two coordinates in axis
// order, so the sign is consistent for points sharing one plane.
func orient2dAxis(a, b, c PlacedPoint, axis int) int {
	i, j := dropAxis(axis)
	if s, ok := orient2dFiltered(a, b, c, i, j); ok {
		return s
	}
	return orient2dExact(a, b, c, i, j)
}

func dropAxis(axis int) (int, int) {
	switch axis {
	case 0:
		return 1, 2
	case 1:
		return 0, 2
	default:
		return 0, 1
	}
}

func orient2dFiltered(a, b, c PlacedPoint, i, j int) (int, bool) {
	wa := a.worldInterval()
	wb := b.worldInterval()
	wc := c.worldInterval()
	det := wb[i].sub(wa[i]).mul(wc[j].sub(wa[j])).
		sub(wb[j].sub(wa[j]).mul(wc[i].sub(wa[i])))
	return det.sign()
}

func orient2dExact(a, b, c PlacedPoint, i, j int) int {
	wa := a.worldRat()
	wb := b.worldRat()
	wc := c.worldRat()
	l := new(big.Rat).Mul(new(big.Rat).Sub(wb[i], wa[i]), new(big.Rat).Sub(wc[j], wa[j]))
	r := new(big.Rat).Mul(new(big.Rat).Sub(wb[j], wa[j]), new(big.Rat).Sub(wc[i], wa[i]))
	return l.Cmp(r)
}
