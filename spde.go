package risch

import (
	"github.com/pkg/errors"

	"github.com/jonathanmweiss/go-risch/field"
	"github.com/jonathanmweiss/go-risch/tower"
)

// spde is Rothstein's Special Polynomial Differential Equation algorithm:
// it reduces a*Dq + b*q = c with deg(q) <= n to an equation with a = 1,
// returning (B, C, m, alpha, beta) such that any h with deg(h) <= m and
// Dh + B*h = C yields the solution q = alpha*h + beta. The degree budget n
// shrinks by deg(a) on every round, so the recursion is finite whenever the
// bound is; with the unbounded sentinel an explicit depth ceiling fails
// closed instead.
func spde(a, b, c *field.Poly, n int, tw tower.Tower) (B, C *field.Poly, m int, alpha, beta *field.Poly, err error) {
	return spdeStep(a, b, c, n, tw, 0)
}

func spdeStep(a, b, c *field.Poly, n int, tw tower.Tower, depth int) (B, C *field.Poly, m int, alpha, beta *field.Poly, err error) {
	t := tw.TopIndex()
	zero := field.Zero(t)

	if n < 0 {
		if c.IsZero() {
			return zero, zero, 0, zero, zero, nil
		}
		return nil, nil, 0, nil, nil,
			errors.Wrap(ErrUnsolvable, "spde: the degree budget is exhausted but the right-hand side is nonzero")
	}
	if depth > maxSPDEDepth {
		return nil, nil, 0, nil, nil, &IncompleteError{
			Step:   "spde",
			Case:   tw.Classify(),
			Reason: "the reduction did not terminate within the recursion ceiling",
		}
	}

	g := a.Gcd(b)
	if !c.Rem(g).IsZero() {
		return nil, nil, 0, nil, nil,
			errors.Wrap(ErrUnsolvable, "spde: gcd(a, b) does not divide c")
	}
	a, b, c = a.Quo(g), b.Quo(g), c.Quo(g)

	if a.Degree() == 0 {
		inv := a.LeadCoeff().Inv()
		return b.MulElem(inv), c.MulElem(inv), n, field.One(t), zero, nil
	}

	r, z, derr := field.GcdexDiophantine(b, a, c)
	if derr != nil {
		return nil, nil, 0, nil, nil, errors.Wrap(ErrUnsolvable, derr.Error())
	}
	B, C, m, alpha, beta, err = spdeStep(a, b.Add(tw.Derive(a)), z.Sub(tw.Derive(r)), n-a.Degree(), tw, depth+1)
	if err != nil {
		return nil, nil, 0, nil, nil, err
	}
	return B, C, m, a.Mul(alpha), a.Mul(beta).Add(r), nil
}
