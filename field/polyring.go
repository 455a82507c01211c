package field

import (
	"github.com/pkg/errors"
)

var errNotInIdeal = errors.New("field: right-hand side is not in the ideal generated by the inputs")

func checkLevels(p, q *Poly) {
	if p.lvl != q.lvl {
		panic("field: level mismatch")
	}
}

func (p *Poly) Add(q *Poly) *Poly {
	checkLevels(p, q)
	n := maxInt(len(p.coeffs), len(q.coeffs))
	out := make([]Elem, n)
	for i := 0; i < n; i++ {
		out[i] = p.Coeff(i).Add(q.Coeff(i))
	}
	return (&Poly{lvl: p.lvl, coeffs: out}).trim()
}

func (p *Poly) Sub(q *Poly) *Poly { return p.Add(q.Neg()) }

func (p *Poly) Neg() *Poly {
	out := make([]Elem, len(p.coeffs))
	for i, c := range p.coeffs {
		out[i] = c.Neg()
	}
	return &Poly{lvl: p.lvl, coeffs: out}
}

// Mul performs schoolbook convolution: out[i+j] += p[i] * q[j].
func (p *Poly) Mul(q *Poly) *Poly {
	checkLevels(p, q)
	if p.IsZero() || q.IsZero() {
		return Zero(p.lvl)
	}
	out := make([]Elem, len(p.coeffs)+len(q.coeffs)-1)
	for i := range out {
		out[i] = Int(0)
	}
	for i, a := range p.coeffs {
		if a.IsZero() {
			continue
		}
		for j, b := range q.coeffs {
			out[i+j] = out[i+j].Add(a.Mul(b))
		}
	}
	return (&Poly{lvl: p.lvl, coeffs: out}).trim()
}

// MulElem scales every coefficient by c.
func (p *Poly) MulElem(c Elem) *Poly {
	if c.IsZero() {
		return Zero(p.lvl)
	}
	out := make([]Elem, len(p.coeffs))
	for i, a := range p.coeffs {
		out[i] = a.Mul(c)
	}
	return (&Poly{lvl: p.lvl, coeffs: out}).trim()
}

// Pow raises p to a non-negative integer power.
func (p *Poly) Pow(k int) *Poly {
	if k < 0 {
		panic("field: negative exponent")
	}
	out := One(p.lvl)
	base := p
	for k > 0 {
		if k&1 == 1 {
			out = out.Mul(base)
		}
		k >>= 1
		if k > 0 {
			base = base.Mul(base)
		}
	}
	return out
}

// monomialMul returns c * gen^deg * p.
func (p *Poly) monomialMul(c Elem, deg int) *Poly {
	if p.IsZero() || c.IsZero() {
		return Zero(p.lvl)
	}
	out := make([]Elem, len(p.coeffs)+deg)
	for i := 0; i < deg; i++ {
		out[i] = Int(0)
	}
	for i, a := range p.coeffs {
		out[i+deg] = a.Mul(c)
	}
	return (&Poly{lvl: p.lvl, coeffs: out}).trim()
}

// LongDiv returns q, r with p = q*b + r and deg(r) < deg(b), following
// Algorithm 2.5 (polynomial division with remainder) in `Modern Computer
// Algebra` by Joachim von zur Gathen and Jürgen Gerhard. Panics when b is
// the zero polynomial.
func (p *Poly) LongDiv(b *Poly) (q, r *Poly) {
	checkLevels(p, b)
	if b.IsZero() {
		panic("field: division by the zero polynomial")
	}
	n, m := p.Degree(), b.Degree()
	if n < m {
		return Zero(p.lvl), p
	}
	u := b.LeadCoeff().Inv()
	rem := p
	qCoeffs := make([]Elem, n-m+1)
	for i := n - m; i >= 0; i-- {
		if rem.Degree() == m+i {
			qCoeffs[i] = rem.LeadCoeff().Mul(u)
			rem = rem.Sub(b.monomialMul(qCoeffs[i], i))
		} else {
			qCoeffs[i] = Int(0)
		}
	}
	return (&Poly{lvl: p.lvl, coeffs: qCoeffs}).trim(), rem
}

// Quo returns p/b and panics when the division is not exact.
func (p *Poly) Quo(b *Poly) *Poly {
	q, r := p.LongDiv(b)
	if !r.IsZero() {
		panic("field: inexact division")
	}
	return q
}

// Rem returns the remainder of p divided by b.
func (p *Poly) Rem(b *Poly) *Poly {
	_, r := p.LongDiv(b)
	return r
}

// Monic scales p by the inverse of its leading coefficient; the zero
// polynomial is returned unchanged.
func (p *Poly) Monic() *Poly {
	if p.IsZero() {
		return p
	}
	return p.MulElem(p.LeadCoeff().Inv())
}

// Gcd returns the monic greatest common divisor of p and b.
func (p *Poly) Gcd(b *Poly) *Poly {
	checkLevels(p, b)
	a, c := p, b
	for !c.IsZero() {
		a, c = c, a.Rem(c)
	}
	return a.Monic()
}

// extendedGcd returns monic g = gcd(a, b) along with x, y such that
// x*a + y*b = g, by the Bézout rotation (x0, x1) = (x1, x0 - q*x1).
func extendedGcd(a, b *Poly) (g, x, y *Poly) {
	checkLevels(a, b)
	lvl := a.lvl
	A, B := a, b
	x0, x1 := One(lvl), Zero(lvl)
	y0, y1 := Zero(lvl), One(lvl)
	for !B.IsZero() {
		q, r := A.LongDiv(B)
		A, B = B, r
		x0, x1 = x1, x0.Sub(q.Mul(x1))
		y0, y1 = y1, y0.Sub(q.Mul(y1))
	}
	if !A.IsZero() {
		inv := A.LeadCoeff().Inv()
		A, x0, y0 = A.MulElem(inv), x0.MulElem(inv), y0.MulElem(inv)
	}
	return A, x0, y0
}

// GcdexDiophantine solves s*a + t*b = c for s, t with deg(s) < deg(b),
// assuming gcd(a, b) divides c. Fails with errNotInIdeal otherwise.
func GcdexDiophantine(a, b, c *Poly) (s, t *Poly, err error) {
	checkLevels(a, b)
	checkLevels(a, c)
	if b.IsZero() {
		panic("field: diophantine division by the zero polynomial")
	}
	if b.Degree() == 0 {
		return Zero(a.lvl), c.MulElem(b.LeadCoeff().Inv()), nil
	}
	g, x, _ := extendedGcd(a, b)
	q, r := c.LongDiv(g)
	if !r.IsZero() {
		return nil, nil, errNotInIdeal
	}
	s = x.Mul(q).Rem(b)
	t = c.Sub(s.Mul(a)).Quo(b)
	return s, t, nil
}

// Resultant computes the resultant of p and q via the Euclidean remainder
// sequence: res(A, B) = (-1)^(deg A * deg B) * lc(B)^(deg A - deg R) *
// res(B, R) with R = A rem B. Either argument being zero yields zero.
func (p *Poly) Resultant(q *Poly) Elem {
	checkLevels(p, q)
	if p.IsZero() || q.IsZero() {
		return Int(0)
	}
	A, B := p, q
	out := Int(1)
	for {
		if B.Degree() == 0 {
			return out.Mul(B.LeadCoeff().powInt(A.Degree()))
		}
		if A.Degree() < B.Degree() {
			if A.Degree()&1 == 1 && B.Degree()&1 == 1 {
				out = out.Neg()
			}
			A, B = B, A
			continue
		}
		R := A.Rem(B)
		if R.IsZero() {
			return Int(0)
		}
		if A.Degree()&1 == 1 && B.Degree()&1 == 1 {
			out = out.Neg()
		}
		out = out.Mul(B.LeadCoeff().powInt(A.Degree() - R.Degree()))
		A, B = B, R
	}
}

// Diff returns the formal derivative of p with respect to its own generator.
func (p *Poly) Diff() *Poly {
	if p.Degree() <= 0 {
		return Zero(p.lvl)
	}
	out := make([]Elem, len(p.coeffs)-1)
	for i := 1; i < len(p.coeffs); i++ {
		out[i-1] = p.coeffs[i].Mul(Int(int64(i)))
	}
	return (&Poly{lvl: p.lvl, coeffs: out}).trim()
}

// Eval evaluates p at x by Horner's rule. The point must live below the
// level of p.
func (p *Poly) Eval(x Elem) Elem {
	out := Int(0)
	for i := len(p.coeffs) - 1; i >= 0; i-- {
		out = out.Mul(x).Add(p.coeffs[i])
	}
	return out
}
