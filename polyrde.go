package risch

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/jonathanmweiss/go-risch/field"
	"github.com/jonathanmweiss/go-risch/tower"
)

// solvePolyRDE solves Dq + b*q = c for a polynomial q with deg(q) <= n over
// the top extension of tw, dispatching on the size of b relative to the
// derivation. Only the no-cancellation branches are implemented; inputs
// that land in a cancellation case fail as incomplete.
func solvePolyRDE(b, c *field.Poly, n int, tw tower.Tower) (*field.Poly, error) {
	if c.IsZero() {
		// q = 0 solves the homogeneous equation for every b and budget,
		// including shapes the dispatch below has no branch for.
		return field.Zero(tw.TopIndex()), nil
	}

	d := tw.Top().D
	dd := d.Degree()

	switch {
	case !b.IsZero() && (d.IsOne() || b.Degree() > maxInt(0, dd-1)):
		return noCancelBLarge(b, c, n, tw)

	case (b.IsZero() || b.Degree() < dd-1) && (d.IsOne() || dd >= 2):
		q, red, err := noCancelBSmall(b, c, n, tw)
		if err != nil {
			return nil, err
		}
		if red == nil {
			return q, nil
		}
		// The residual equation Dy + b0*y = c0 lives one level down, with
		// y allowed to be a rational function there; hand it back to the
		// full solver on the shrunk tower.
		if tw.Height() == 1 {
			return nil, &IncompleteError{
				Step:   "polynomial solver",
				Case:   tw.Classify(),
				Reason: "the residual constant equation has no lower level to descend to",
			}
		}
		sub := tw.Shrink()
		l := sub.TopIndex()
		b0n, b0d := red.b0.AsFraction(l)
		c0n, c0d := red.c0.AsFraction(l)
		sol, err := SolveRDE(b0n, b0d, c0n, c0d, sub)
		if err != nil {
			return nil, err
		}
		y := field.Quot(sol.Num, sol.Den)
		return q.Add(field.Const(tw.TopIndex(), y)), nil

	case dd >= 2 && b.Degree() == dd-1 &&
		budgetExceeds(n, b.LeadCoeff().Neg().Div(d.LeadCoeff())):
		q, red, err := noCancelEqual(b, c, n, tw)
		if err != nil {
			return nil, err
		}
		if red == nil {
			return q, nil
		}
		y, err := solvePolyRDE(b, red.c, red.m, tw)
		if err != nil {
			return nil, err
		}
		return q.Add(y), nil

	default:
		return nil, &IncompleteError{
			Step:   "polynomial solver",
			Case:   tw.Classify(),
			Reason: "the cancellation case of the polynomial equation is not implemented",
		}
	}
}

// budgetExceeds reports n > e for a rational e; non-rational thresholds and
// the unbounded sentinel compare conservatively.
func budgetExceeds(n int, e field.Elem) bool {
	if n == degreeUnbounded {
		return true
	}
	r, ok := e.Rational()
	if !ok {
		return false
	}
	return new(big.Rat).SetInt64(int64(n)).Cmp(r) > 0
}

// smallReduction is the leftover of noCancelBSmall when b drops to a
// constant: the remaining equation Dy + b0*y = c0 over the field below.
type smallReduction struct {
	b0, c0 field.Elem
}

// equalReduction is the leftover of noCancelEqual when the head coefficient
// m*lc(D) + lc(b) vanishes: the same equation with right-hand side c and
// degree bound m.
type equalReduction struct {
	m int
	c *field.Poly
}

// noCancelBLarge handles deg(b) large enough that the b*q term alone fixes
// the leading coefficient of q: peel deg(c) - deg(b) monomials until c is
// exhausted.
func noCancelBLarge(b, c *field.Poly, n int, tw tower.Tower) (*field.Poly, error) {
	t := tw.TopIndex()
	q := field.Zero(t)
	for iter := 0; !c.IsZero(); iter++ {
		if iter > maxPeelIterations {
			return nil, &IncompleteError{
				Step:   "polynomial solver",
				Case:   tw.Classify(),
				Reason: "term peeling exceeded the iteration ceiling",
			}
		}
		m := c.Degree() - b.Degree()
		if m < 0 || m > n {
			return nil, errors.Wrap(ErrUnsolvable,
				"polynomial solver: the required term degree falls outside the admissible range")
		}
		p := field.Monomial(t, c.LeadCoeff().Div(b.LeadCoeff()), m)
		q = q.Add(p)
		n = m - 1
		c = c.Sub(tw.Derive(p)).Sub(b.Mul(p))
	}
	return q, nil
}

// noCancelBSmall handles deg(b) < deg(D) - 1, where the derivation term
// fixes the leading coefficient of q. When b is a nonzero constant the last
// coefficient cannot be peeled at this level; the reduction is returned for
// the caller to descend with.
func noCancelBSmall(b, c *field.Poly, n int, tw tower.Tower) (*field.Poly, *smallReduction, error) {
	t := tw.TopIndex()
	d := tw.Top().D
	q := field.Zero(t)
	for iter := 0; !c.IsZero(); iter++ {
		if iter > maxPeelIterations {
			return nil, nil, &IncompleteError{
				Step:   "polynomial solver",
				Case:   tw.Classify(),
				Reason: "term peeling exceeded the iteration ceiling",
			}
		}
		var m int
		if n == 0 {
			m = 0
		} else {
			m = c.Degree() - d.Degree() + 1
		}
		if m < 0 || m > n {
			return nil, nil, errors.Wrap(ErrUnsolvable,
				"polynomial solver: the required term degree falls outside the admissible range")
		}
		var p *field.Poly
		if m > 0 {
			p = field.Monomial(t, c.LeadCoeff().Div(d.LeadCoeff().Mul(field.Int(int64(m)))), m)
		} else {
			if b.Degree() != c.Degree() {
				return nil, nil, errors.Wrap(ErrUnsolvable,
					"polynomial solver: the constant terms cannot match")
			}
			if b.Degree() == 0 {
				return q, &smallReduction{b0: b.Coeff(0), c0: c.Coeff(0)}, nil
			}
			p = field.Const(t, c.LeadCoeff().Div(b.LeadCoeff()))
		}
		q = q.Add(p)
		n = m - 1
		c = c.Sub(tw.Derive(p)).Sub(b.Mul(p))
	}
	return q, nil, nil
}

// noCancelEqual handles deg(b) == deg(D) - 1 with -lc(b)/lc(D) below the
// degree budget: the two head terms can still cancel at one degree M, where
// peeling stops and the leftover is returned for re-dispatch.
func noCancelEqual(b, c *field.Poly, n int, tw tower.Tower) (*field.Poly, *equalReduction, error) {
	t := tw.TopIndex()
	d := tw.Top().D
	q := field.Zero(t)

	M := -1
	if lc := b.LeadCoeff().Neg().Div(d.LeadCoeff()); lc.IsInt() && lc.Sign() > 0 {
		M = int(lc.Int64())
	}

	for iter := 0; !c.IsZero(); iter++ {
		if iter > maxPeelIterations {
			return nil, nil, &IncompleteError{
				Step:   "polynomial solver",
				Case:   tw.Classify(),
				Reason: "term peeling exceeded the iteration ceiling",
			}
		}
		m := maxInt(M, c.Degree()-d.Degree()+1)
		if m < 0 || m > n {
			return nil, nil, errors.Wrap(ErrUnsolvable,
				"polynomial solver: the required term degree falls outside the admissible range")
		}
		u := d.LeadCoeff().Mul(field.Int(int64(m))).Add(b.LeadCoeff())
		if u.IsZero() {
			return q, &equalReduction{m: m, c: c}, nil
		}
		var p *field.Poly
		if m > 0 {
			p = field.Monomial(t, c.LeadCoeff().Div(u), m)
		} else {
			if c.Degree() != d.Degree()-1 {
				return nil, nil, errors.Wrap(ErrUnsolvable,
					"polynomial solver: the trailing term degrees cannot match")
			}
			p = field.Const(t, c.LeadCoeff().Div(b.LeadCoeff()))
		}
		q = q.Add(p)
		n = m - 1
		c = c.Sub(tw.Derive(p)).Sub(b.Mul(p))
	}
	return q, nil, nil
}
