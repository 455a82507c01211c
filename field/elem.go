package field

import (
	"math/big"
)

// Elem is an immutable element of a coefficient field inside a differential
// tower. The base field is Q, held as an exact rational. Above the base,
// an element of Q(g0, ..., gi) is held as a reduced quotient num/den of
// polynomials in the generator gi over the field below; den is monic and
// coprime with num. Elements always collapse to the lowest level that can
// represent them, so a quotient never has a constant numerator over a
// constant denominator.
type Elem struct {
	rat *big.Rat // set iff num == nil
	num *Poly
	den *Poly
}

// Int returns n as a base-field element.
func Int(n int64) Elem { return Elem{rat: new(big.Rat).SetInt64(n)} }

// Rat returns p/q as a base-field element.
func Rat(p, q int64) Elem {
	if q == 0 {
		panic("field: denominator is zero")
	}
	return Elem{rat: new(big.Rat).SetFrac(big.NewInt(p), big.NewInt(q))}
}

// FromBigRat copies r into a base-field element.
func FromBigRat(r *big.Rat) Elem { return Elem{rat: new(big.Rat).Set(r)} }

// Quot returns num/den as a reduced field element. Both arguments must be
// polynomials at the same level; den must be nonzero.
func Quot(num, den *Poly) Elem {
	if num.lvl != den.lvl {
		panic("field: level mismatch in Quot")
	}
	return newQuot(num, den)
}

func newQuot(num, den *Poly) Elem {
	if den.IsZero() {
		panic("field: zero denominator")
	}
	if num.IsZero() {
		return Int(0)
	}
	g := num.Gcd(den)
	if g.Degree() > 0 {
		num, den = num.Quo(g), den.Quo(g)
	}
	if lc := den.LeadCoeff(); !lc.IsOne() {
		inv := lc.Inv()
		num, den = num.MulElem(inv), den.MulElem(inv)
	}
	if den.Degree() == 0 && num.Degree() == 0 {
		return num.Coeff(0)
	}
	return Elem{num: num, den: den}
}

// norm maps the zero value of Elem to the rational zero.
func (e Elem) norm() Elem {
	if e.rat == nil && e.num == nil {
		return Int(0)
	}
	return e
}

// level returns -1 for rationals, otherwise the level of the quotient.
func (e Elem) level() int {
	if e.rat != nil || e.num == nil {
		return -1
	}
	return e.num.lvl
}

// Rational reports e as an exact rational if it lives in the base field.
func (e Elem) Rational() (*big.Rat, bool) {
	e = e.norm()
	if e.rat == nil {
		return nil, false
	}
	return new(big.Rat).Set(e.rat), true
}

// Quotient reports e as a num/den pair if it lives above the base field.
func (e Elem) Quotient() (num, den *Poly, ok bool) {
	e = e.norm()
	if e.rat != nil {
		return nil, nil, false
	}
	return e.num, e.den, true
}

// AsFraction returns e as a num/den pair of polynomials at level lvl,
// lifting constants from below. Panics if e lives above lvl.
func (e Elem) AsFraction(lvl int) (num, den *Poly) {
	e = e.norm()
	switch l := e.level(); {
	case l == lvl:
		return e.num, e.den
	case l < lvl:
		return Const(lvl, e), One(lvl)
	default:
		panic("field: level mismatch in AsFraction")
	}
}

// lift returns e as a num/den pair at exactly lvl.
func (e Elem) lift(lvl int) (*Poly, *Poly) { return e.AsFraction(lvl) }

func (e Elem) IsZero() bool {
	e = e.norm()
	return e.rat != nil && e.rat.Sign() == 0
}

func (e Elem) IsOne() bool {
	e = e.norm()
	return e.rat != nil && e.rat.Cmp(ratOne) == 0
}

// IsInt reports whether e is a rational integer.
func (e Elem) IsInt() bool {
	e = e.norm()
	return e.rat != nil && e.rat.IsInt()
}

// Int64 returns the integer value of e. Panics unless IsInt holds.
func (e Elem) Int64() int64 {
	e = e.norm()
	if e.rat == nil || !e.rat.IsInt() {
		panic("field: element is not an integer")
	}
	return e.rat.Num().Int64()
}

// Sign returns the sign of a base-field element. Panics above the base.
func (e Elem) Sign() int {
	e = e.norm()
	if e.rat == nil {
		panic("field: sign of a non-rational element")
	}
	return e.rat.Sign()
}

var ratOne = new(big.Rat).SetInt64(1)

func (e Elem) Add(o Elem) Elem {
	e, o = e.norm(), o.norm()
	if e.rat != nil && o.rat != nil {
		return Elem{rat: new(big.Rat).Add(e.rat, o.rat)}
	}
	lvl := maxInt(e.level(), o.level())
	en, ed := e.lift(lvl)
	on, od := o.lift(lvl)
	return newQuot(en.Mul(od).Add(on.Mul(ed)), ed.Mul(od))
}

func (e Elem) Sub(o Elem) Elem { return e.Add(o.Neg()) }

func (e Elem) Neg() Elem {
	e = e.norm()
	if e.rat != nil {
		return Elem{rat: new(big.Rat).Neg(e.rat)}
	}
	return Elem{num: e.num.Neg(), den: e.den}
}

func (e Elem) Mul(o Elem) Elem {
	e, o = e.norm(), o.norm()
	if e.rat != nil && o.rat != nil {
		return Elem{rat: new(big.Rat).Mul(e.rat, o.rat)}
	}
	if e.IsZero() || o.IsZero() {
		return Int(0)
	}
	lvl := maxInt(e.level(), o.level())
	en, ed := e.lift(lvl)
	on, od := o.lift(lvl)
	return newQuot(en.Mul(on), ed.Mul(od))
}

// Inv returns 1/e. Panics on zero.
func (e Elem) Inv() Elem {
	e = e.norm()
	if e.IsZero() {
		panic("field: zero has no inverse")
	}
	if e.rat != nil {
		return Elem{rat: new(big.Rat).Inv(e.rat)}
	}
	return newQuot(e.den, e.num)
}

func (e Elem) Div(o Elem) Elem { return e.Mul(o.Inv()) }

func (e Elem) Equal(o Elem) bool { return e.Sub(o).IsZero() }

// Pow raises e to a non-negative integer power.
func (e Elem) Pow(k int) Elem { return e.powInt(k) }

func (e Elem) powInt(k int) Elem {
	if k < 0 {
		panic("field: negative exponent")
	}
	out := Int(1)
	for i := 0; i < k; i++ {
		out = out.Mul(e)
	}
	return out
}

func (e Elem) String() string {
	e = e.norm()
	if e.rat != nil {
		return e.rat.RatString()
	}
	if e.den.IsOne() {
		return "(" + e.num.String() + ")"
	}
	return "(" + e.num.String() + ")/(" + e.den.String() + ")"
}

// evalRat evaluates e at the rational points vals, indexed by level.
// Fails when a denominator vanishes at the chosen point.
func (e Elem) evalRat(vals []*big.Rat) (*big.Rat, bool) {
	e = e.norm()
	if e.rat != nil {
		return new(big.Rat).Set(e.rat), true
	}
	n, ok := e.num.evalRat(vals)
	if !ok {
		return nil, false
	}
	d, ok := e.den.evalRat(vals)
	if !ok || d.Sign() == 0 {
		return nil, false
	}
	return n.Quo(n, d), true
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
