package risch

import (
	"github.com/pkg/errors"

	"github.com/jonathanmweiss/go-risch/field"
	"github.com/jonathanmweiss/go-risch/tower"
)

// normalDenom clears the normal part of the denominators: given
// Dy + (ba/bd)*y = (ca/cd) with f = ba/bd weakly normalized, it finds the
// normal polynomial h and returns a, b, c with a*h*Dq + b*q = c for q = y*h,
// where b = a*f - a*Dh/h stays polynomial in the special part. A failure of
// the divisibility condition proves the equation unsolvable.
func normalDenom(fa, fd, ga, gd *field.Poly, tw tower.Tower) (a, ba, bd, ca, cd, h *field.Poly, err error) {
	dn, _ := tw.SplitFactor(fd)
	en, _ := tw.SplitFactor(gd)

	p := dn.Gcd(en)
	h = en.Gcd(en.Diff()).Quo(p.Gcd(p.Diff()))

	a = dn.Mul(h)
	c := a.Mul(h)
	if !c.Rem(en).IsZero() {
		return nil, nil, nil, nil, nil, nil,
			errors.Wrap(ErrUnsolvable, "normal denominator: dn*h^2 is not divisible by the denominator of g")
	}

	ca, cd = cancel(c.Mul(ga), gd)
	ba, bd = cancel(a.Mul(fa).Sub(dn.Mul(tw.Derive(h)).Mul(fd)), fd)
	return a, ba, bd, ca, cd, h, nil
}

// specialDenom clears the special part of the denominators, turning
// a*Dq + b*q = c into A*Dh + B*h = C with everything polynomial and
// h = q*p^-n for the special irreducible p of the top extension. Primitive
// and base extensions have no special part and pass through. A b of order
// exactly zero at p lands on the parametric logarithmic derivative problem,
// which this solver does not implement.
func specialDenom(a, ba, bd, ca, cd *field.Poly, tw tower.Tower) (A, B, C, h *field.Poly, err error) {
	t := tw.TopIndex()
	cse := tw.Classify()

	p, ok := tw.SpecialPrime()
	if !ok {
		switch cse {
		case tower.Primitive, tower.Base:
			return a, ba.Quo(bd), ca.Quo(cd), field.One(t), nil
		default:
			return nil, nil, nil, nil, &IncompleteError{
				Step:   "special denominator",
				Case:   cse,
				Reason: "no special-part treatment for this extension shape",
			}
		}
	}

	nb := orderInfinity
	if !ba.IsZero() {
		oa, oerr := orderAt(ba, p)
		if oerr != nil {
			return nil, nil, nil, nil, oerr
		}
		od, oerr := orderAt(bd, p)
		if oerr != nil {
			return nil, nil, nil, nil, oerr
		}
		nb = oa - od
	}
	nc := orderInfinity
	if !ca.IsZero() {
		oa, oerr := orderAt(ca, p)
		if oerr != nil {
			return nil, nil, nil, nil, oerr
		}
		od, oerr := orderAt(cd, p)
		if oerr != nil {
			return nil, nil, nil, nil, oerr
		}
		nc = oa - od
	}

	n := minInt(0, nc-minInt(0, nb))
	if nb == 0 {
		// b has a simple presence at p; deciding the equation needs the
		// parametric logarithmic derivative problem.
		return nil, nil, nil, nil, &IncompleteError{
			Step:   "special denominator",
			Case:   cse,
			Reason: "solving this equation requires the parametric logarithmic derivative problem",
		}
	}

	N := maxInt(0, maxInt(-nb, n-nc))
	pN := p.Pow(N)
	pn := p.Pow(-n) // n <= 0

	A = a.Mul(pN)
	B = ba.Mul(pN).Quo(bd)
	if n != 0 {
		dp := tw.Derive(p)
		B = B.Add(a.Mul(dp.Quo(p)).Mul(pN).MulElem(field.Int(int64(n))))
	}
	C = ca.Mul(pN).Mul(pn).Quo(cd)
	return A, B, C, pn, nil
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
