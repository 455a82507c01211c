// Package tower models a tower of monomial extensions of Q: an ordered list
// of generators, each with the derivative of that generator expressed as a
// polynomial over the levels below. The tower fixes the derivation D that
// every algorithm in this module differentiates with.
package tower

import (
	"github.com/jonathanmweiss/go-risch/field"
)

// Case classifies the top extension of a tower by the shape of the top
// generator's derivative.
type Case int

const (
	// Base is the ground level: Dt = 1, t behaves as the integration variable.
	Base Case = iota
	// Primitive has Dt in the field below (a constant polynomial).
	Primitive
	// Exp has Dt = a*t with a below, i.e. Dt/t lies in the field below.
	Exp
	// Tan has Dt divisible by t^2+1 with degree exactly 2, i.e. Dt/(t^2+1)
	// lies in the field below.
	Tan
	// OtherNonlinear covers deg(Dt) >= 2 outside the hypertangent shape.
	OtherNonlinear
	// OtherLinear covers deg(Dt) == 1 outside the exponential shape.
	OtherLinear
)

func (c Case) String() string {
	switch c {
	case Base:
		return "base"
	case Primitive:
		return "primitive"
	case Exp:
		return "exponential"
	case Tan:
		return "hypertangent"
	case OtherNonlinear:
		return "other nonlinear"
	case OtherLinear:
		return "other linear"
	}
	return "unknown"
}

// Level is one extension: a named generator and its derivative. D is a
// polynomial at the level's own index (its coefficients live below).
type Level struct {
	Var string
	D   *field.Poly
}

// Tower is an immutable ordered list of levels. The zero tower is invalid;
// use NewBase or New.
type Tower struct {
	levels []Level
}

// NewBase returns the one-level tower ({name}, Dname = 1).
func NewBase(name string) Tower {
	return Tower{levels: []Level{{Var: name, D: field.One(0)}}}
}

// New builds a tower from levels bottom-up. Panics when a level's derivative
// is zero or sits at the wrong level.
func New(levels ...Level) Tower {
	if len(levels) == 0 {
		panic("tower: empty tower")
	}
	cp := make([]Level, len(levels))
	for i, l := range levels {
		if l.D == nil || l.D.IsZero() {
			panic("tower: generator with zero derivative")
		}
		if l.D.Level() != i {
			panic("tower: derivative at the wrong level")
		}
		cp[i] = l
	}
	return Tower{levels: cp}
}

// Extend returns a new tower with one more level on top.
func (tw Tower) Extend(name string, d *field.Poly) Tower {
	levels := append(append([]Level{}, tw.levels...), Level{Var: name, D: d})
	return New(levels...)
}

// Height returns the number of levels.
func (tw Tower) Height() int { return len(tw.levels) }

// TopIndex returns the level index of the top generator.
func (tw Tower) TopIndex() int { return len(tw.levels) - 1 }

// Top returns the top level.
func (tw Tower) Top() Level { return tw.levels[len(tw.levels)-1] }

// Level returns the i-th level from the bottom.
func (tw Tower) Level(i int) Level { return tw.levels[i] }

// Gen returns the generator monomial of the top level.
func (tw Tower) Gen() *field.Poly { return field.Gen(tw.TopIndex()) }

// Shrink returns the tower with the top level removed. It is a fresh
// snapshot; the receiver is never mutated. Panics on a one-level tower.
func (tw Tower) Shrink() Tower {
	if len(tw.levels) <= 1 {
		panic("tower: cannot shrink below the base level")
	}
	return Tower{levels: tw.levels[:len(tw.levels)-1]}
}

// Classify reports the case of the top extension.
func (tw Tower) Classify() Case {
	d := tw.Top().D
	switch deg := d.Degree(); {
	case deg <= 0:
		if d.IsOne() {
			return Base
		}
		return Primitive
	case deg == 1:
		if d.Coeff(0).IsZero() {
			return Exp
		}
		return OtherLinear
	case deg == 2:
		tsq1 := field.NewPoly(d.Level(), []field.Elem{field.Int(1), field.Int(0), field.Int(1)})
		if d.Rem(tsq1).IsZero() {
			return Tan
		}
		return OtherNonlinear
	default:
		return OtherNonlinear
	}
}

// SpecialPrime returns the irreducible special polynomial of the top
// extension for the cases that have one: t for exponentials, t^2+1 for
// hypertangents.
func (tw Tower) SpecialPrime() (*field.Poly, bool) {
	t := tw.TopIndex()
	switch tw.Classify() {
	case Exp:
		return field.Gen(t), true
	case Tan:
		return field.NewPoly(t, []field.Elem{field.Int(1), field.Int(0), field.Int(1)}), true
	}
	return nil, false
}

// Derive applies the derivation to a polynomial at any level of the tower:
// D(sum c_i t^i) = sum D(c_i) t^i + (d/dt sum c_i t^i) * Dt.
func (tw Tower) Derive(p *field.Poly) *field.Poly {
	l := p.Level()
	if l >= len(tw.levels) {
		panic("tower: polynomial above the tower")
	}
	if p.IsZero() {
		return p
	}
	coeffs := make([]field.Elem, p.Degree()+1)
	for i := range coeffs {
		coeffs[i] = tw.DeriveElem(p.Coeff(i))
	}
	head := field.NewPoly(l, coeffs)
	return head.Add(p.Diff().Mul(tw.levels[l].D))
}

// DeriveElem applies the derivation to a field element. Rationals have
// derivative zero; quotients go through the quotient rule.
func (tw Tower) DeriveElem(e field.Elem) field.Elem {
	num, den, ok := e.Quotient()
	if !ok {
		return field.Int(0)
	}
	dn, dd := tw.Derive(num), tw.Derive(den)
	return field.Quot(dn.Mul(den).Sub(num.Mul(dd)), den.Mul(den))
}

// SplitFactor splits a polynomial into its normal and special parts with
// respect to the derivation: p = pn * ps where every irreducible factor q of
// ps divides Dq and no factor of pn does (Bronstein's SplitFactor).
func (tw Tower) SplitFactor(p *field.Poly) (normal, special *field.Poly) {
	lvl := p.Level()
	if p.Degree() <= 0 {
		return p, field.One(lvl)
	}
	dp := tw.Derive(p)
	if dp.IsZero() {
		return p, field.One(lvl)
	}
	s := p.Gcd(dp).Quo(p.Gcd(p.Diff()))
	if s.Degree() == 0 {
		return p, field.One(lvl)
	}
	normal, special = tw.SplitFactor(p.Quo(s))
	return normal, special.Mul(s)
}
