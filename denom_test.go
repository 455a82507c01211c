package risch

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathanmweiss/go-risch/field"
	"github.com/jonathanmweiss/go-risch/tower"
)

func TestNormalDenom(t *testing.T) {
	a := assert.New(t)

	t.Run("polynomialInputsPassThrough", func(t *testing.T) {
		tw := expTower()
		one := field.One(1)
		aP, ba, bd, ca, cd, h, err := normalDenom(field.Gen(1), one, intPoly(1, 0, 1, 1), one, tw)
		a.NoError(err)
		a.True(aP.IsOne())
		a.True(ba.Equal(field.Gen(1)))
		a.True(bd.IsOne())
		a.True(ca.Equal(intPoly(1, 0, 1, 1)))
		a.True(cd.IsOne())
		a.True(h.IsOne())
	})

	t.Run("poleOfGWithoutMatchingF", func(t *testing.T) {
		// Dy + 0*y = 1/x: g has a simple pole at x that no choice of y
		// can produce, so dn*h^2 misses a factor of the denominator.
		tw := baseTower()
		_, _, _, _, _, _, err := normalDenom(field.Zero(0), field.One(0), field.One(0), field.Gen(0), tw)
		a.ErrorIs(err, ErrUnsolvable)
	})

	t.Run("clearsASharedNormalPole", func(t *testing.T) {
		// f = 1/x, g = 1/x^2 over Q(x): h = x and the outputs satisfy
		// a = dn*h, c = a*h divisible by the denominator of g.
		tw := baseTower()
		x := field.Gen(0)
		aP, ba, bd, ca, cd, h, err := normalDenom(field.One(0), x, field.One(0), x.Mul(x), tw)
		a.NoError(err)
		a.True(h.Equal(x))
		a.True(aP.Equal(x.Mul(x)))
		// b = a*f - dn*Dh = x - x = 0 after clearing fd
		a.True(ba.IsZero())
		a.True(bd.Equal(x))
		a.True(ca.Equal(x))
		a.True(cd.IsOne())
	})
}

func TestSpecialDenom(t *testing.T) {
	a := assert.New(t)

	t.Run("primitivePassThrough", func(t *testing.T) {
		tw := logTower()
		one := field.One(1)
		A, B, C, h, err := specialDenom(one, field.Gen(1), one, intPoly(1, 1, 1), one, tw)
		a.NoError(err)
		a.True(A.IsOne())
		a.True(B.Equal(field.Gen(1)))
		a.True(C.Equal(intPoly(1, 1, 1)))
		a.True(h.IsOne())
	})

	t.Run("expPolynomialInputs", func(t *testing.T) {
		// b = t has order 1 at t, so no power of t is needed
		tw := expTower()
		one := field.One(1)
		A, B, C, h, err := specialDenom(one, field.Gen(1), one, intPoly(1, 0, 1, 1), one, tw)
		a.NoError(err)
		a.True(A.IsOne())
		a.True(B.Equal(field.Gen(1)))
		a.True(C.Equal(intPoly(1, 0, 1, 1)))
		a.True(h.IsOne())
	})

	t.Run("tanClearsTheSpecialPole", func(t *testing.T) {
		// b = 2t/(t^2+1) has order -1 at t^2+1: A and C pick up one power
		// of the special prime.
		tw := tanTower()
		one := field.One(1)
		sq := intPoly(1, 1, 0, 1)
		A, B, C, h, err := specialDenom(one, intPoly(1, 0, 2), sq, intPoly(1, 0, 4, 0, 2), one, tw)
		a.NoError(err)
		a.True(A.Equal(sq))
		a.True(B.Equal(intPoly(1, 0, 2)))
		a.True(C.Equal(intPoly(1, 0, 4, 0, 2).Mul(sq)))
		a.True(h.IsOne())
	})

	t.Run("orderZeroIsIncomplete", func(t *testing.T) {
		tw := expTower()
		one := field.One(1)
		_, _, _, _, err := specialDenom(one, one, one, one, one, tw)
		var inc *IncompleteError
		a.ErrorAs(err, &inc)
		a.Equal("special denominator", inc.Step)
		a.Equal(tower.Exp, inc.Case)
	})
}
