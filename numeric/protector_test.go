package numeric

import (
	"testing"

	"go.viam.com/test"
)

func TestProtector(t *testing.T) {
	t.Run("scopes open and close", func(t *testing.T) {
		var g Guard
		p := g.Protect()
		p.Release()
		p = g.Protect()
		p.Release()
	})

	t.Run("nesting panics", func(t *testing.T) {
		var g Guard
		p := g.Protect()
		defer p.Release()
		test.That(t, func() { g.Protect() }, test.ShouldPanic)
	})

	t.Run("double release panics", func(t *testing.T) {
		var g Guard
		p := g.Protect()
		p.Release()
		test.That(t, func() { p.Release() }, test.ShouldPanic)
	})

	t.Run("independent guards do not interfere", func(t *testing.T) {
		var g1, g2 Guard
		p1 := g1.Protect()
		p2 := g2.Protect()
		p1.Release()
		p2.Release()
	})
}

func TestIntervalSign(t *testing.T) {
	t.Run("definite signs", func(t *testing.T) {
		s, ok := single(2).mul(single(3)).sign()
		test.That(t, ok, test.ShouldBeTrue)
		test.That(t, s, test.ShouldEqual, 1)

		s, ok = single(2).sub(single(5)).sign()
		test.That(t, ok, test.ShouldBeTrue)
		test.That(t, s, test.ShouldEqual, -1)
	})

	t.Run("cancellation is inconclusive", func(t *testing.T) {
		// 0.1 + 0.2 - 0.3 is a few ulps away from zero
		sum := single(0.1).add(single(0.2)).sub(single(0.3))
		_, ok := sum.sign()
		test.That(t, ok, test.ShouldBeFalse)
	})

	t.Run("exact zero stays zero", func(t *testing.T) {
		s, ok := single(0).sign()
		test.That(t, ok, test.ShouldBeTrue)
		test.That(t, s, test.ShouldEqual, 0)
	})
}
