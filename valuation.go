package risch

import (
	"github.com/jonathanmweiss/go-risch/field"
)

// orderAt computes the order of a at the monic irreducible p: the largest n
// with p^n dividing a. Zero has infinite order and is rejected as input.
func orderAt(a, p *field.Poly) (int, error) {
	if a.IsZero() {
		return 0, &InputError{Op: "orderAt", Reason: "the zero polynomial has infinite order"}
	}
	if p.IsZero() || p.Degree() <= 0 {
		return 0, &InputError{Op: "orderAt", Reason: "order is only defined at a nonconstant irreducible"}
	}
	if p.Equal(field.Gen(p.Level())) {
		// Order at the generator is the lowest nonzero coefficient index.
		for i := 0; ; i++ {
			if !a.Coeff(i).IsZero() {
				return i, nil
			}
		}
	}
	n := -1
	pow := field.One(p.Level())
	for r := field.Zero(p.Level()); r.IsZero(); {
		n++
		pow = pow.Mul(p)
		r = a.Rem(pow)
	}
	return n, nil
}

// orderInfinity is the order assigned to a zero numerator where a plain
// order would be undefined.
const orderInfinity = degreeUnbounded
