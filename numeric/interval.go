// Package numeric provides the certified arithmetic kernel behind the
// collision predicates: geometric signs are first evaluated with
// outward-rounded interval arithmetic and escalate to exact rational
// arithmetic whenever the filtered result is inconclusive.
package numeric

import "math"

// interval is a closed interval enclosing the exact real value of a
// computation. Every arithmetic op widens the endpoints by one ulp so
// the enclosure stays valid without touching the FPU rounding mode.
type interval struct {
	lo, hi float64
}

func single(v float64) interval {
	return interval{lo: v, hi: v}
}

func (i interval) widened() interval {
	return interval{
		lo: math.Nextafter(i.lo, math.Inf(-1)),
		hi: math.Nextafter(i.hi, math.Inf(1)),
	}
}

func (i interval) add(other interval) interval {
	return interval{lo: i.lo + other.lo, hi: i.hi + other.hi}.widened()
}

func (i interval) sub(other interval) interval {
	return interval{lo: i.lo - other.hi, hi: i.hi - other.lo}.widened()
}

func (i interval) mul(other interval) interval {
	a := i.lo * other.lo
	b := i.lo * other.hi
	c := i.hi * other.lo
	d := i.hi * other.hi
	return interval{
		lo: math.Min(math.Min(a, b), math.Min(c, d)),
		hi: math.Max(math.Max(a, b), math.Max(c, d)),
	}.widened()
}

// sign returns the certified sign of the enclosed value. ok is false
// when the interval straddles zero without being exactly zero, i.e. the
// filter is inconclusive.
func (i interval) sign() (s int, ok bool) {
	if i.lo > 0 {
		return 1, true
	}
	if i.hi < 0 {
		return -1, true
	}
	if i.lo == 0 && i.hi == 0 {
		return 0, true
	}
	return 0, false
}
