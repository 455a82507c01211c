package risch

import (
	"github.com/jonathanmweiss/go-risch/field"
	"github.com/jonathanmweiss/go-risch/tower"
)

// weakNormalizer makes f = a/d weakly normalized with respect to the
// derivation of tw: it returns q and the fraction f - Dq/q, which has no
// residue that is a positive integer at any normal irreducible of d.
// This is the entry normalization of the solver; the returned q multiplies
// back into the final answer's denominator.
//
// q is built as the product of gcd(a - n*Dd1, d1) over the positive integer
// roots n of the residue resultant r(z) = res_t(a - z*Dd1, d1), with each
// root contributing once per multiplicity.
func weakNormalizer(a, d *field.Poly, tw tower.Tower) (q, num, den *field.Poly, err error) {
	t := tw.TopIndex()

	dn, _ := tw.SplitFactor(d)
	g := dn.Gcd(dn.Diff())
	dstar := dn.Quo(g)
	d1 := dstar.Quo(dstar.Gcd(g))
	if d1.Degree() <= 0 {
		return field.One(t), a, d, nil
	}

	dd1 := tw.Derive(d1)
	if dd1.IsZero() {
		// The residue resultant has no z dependence.
		return field.One(t), a, d, nil
	}

	r, err := residueResultant(a, d1, dd1, t)
	if err != nil {
		return nil, nil, nil, err
	}
	roots, err := field.PositiveIntegerRoots(r)
	if err != nil {
		// Without the full root set the normalization could silently miss
		// a residue; the equation stays undecided.
		return nil, nil, nil, &IncompleteError{
			Step:   "weak normalizer",
			Case:   tw.Classify(),
			Reason: err.Error(),
		}
	}

	q = field.One(t)
	for _, n := range roots {
		q = q.Mul(a.Sub(dd1.MulElem(field.Int(int64(n)))).Gcd(d1))
	}

	dq := tw.Derive(q)
	num, den = cancel(q.Mul(a).Sub(d.Mul(dq)), q.Mul(d))
	return q, num, den, nil
}

// residueResultant computes res_t(a - z*Dd1, d1) as a polynomial in z. The
// residue variable z is never a tower generator, so the bivariate resultant
// is recovered from deg(d1)+1 specializations z = j and one interpolation;
// the z polynomial is parked at the top level index purely as a container.
func residueResultant(a, d1, dd1 *field.Poly, t int) (*field.Poly, error) {
	m := d1.Degree()
	genDeg := a.Degree()
	if dd1.Degree() > genDeg {
		genDeg = dd1.Degree()
	}
	lc := d1.LeadCoeff()
	if m&1 == 1 {
		lc = lc.Neg() // padding A by one degree scales res by (-1)^deg(d1)*lc(d1)
	}

	xs := make([]field.Elem, m+1)
	ys := make([]field.Elem, m+1)
	for j := 0; j <= m; j++ {
		xs[j] = field.Int(int64(j))
		aj := a.Sub(dd1.MulElem(xs[j]))
		if aj.IsZero() {
			ys[j] = field.Int(0)
			continue
		}
		res := aj.Resultant(d1)
		// The generic a - z*Dd1 has degree genDeg in t; a specialization
		// that drops below it needs the padding correction to stay on the
		// same Sylvester determinant.
		if drop := genDeg - aj.Degree(); drop > 0 {
			res = res.Mul(lc.Pow(drop))
		}
		ys[j] = res
	}
	return field.Interpolate(t, xs, ys)
}
