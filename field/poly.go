package field

import (
	"math"
	"math/big"
	"strconv"
	"strings"
)

// Poly is an immutable dense polynomial in the generator of tower level lvl.
// Coefficients are stored in ascending degree order and live strictly below
// lvl. Leading zeroes are always trimmed away, so the zero polynomial has an
// empty coefficient slice.
type Poly struct {
	lvl    int
	coeffs []Elem
}

// NewPoly builds a polynomial at level lvl from ascending coefficients.
// Panics when a coefficient does not live below lvl.
func NewPoly(lvl int, coeffs []Elem) *Poly {
	if lvl < 0 {
		panic("field: negative level")
	}
	cp := make([]Elem, len(coeffs))
	for i, c := range coeffs {
		c = c.norm()
		if c.level() >= lvl {
			panic("field: coefficient level too high")
		}
		cp[i] = c
	}
	return (&Poly{lvl: lvl, coeffs: cp}).trim()
}

// Zero returns the zero polynomial at level lvl.
func Zero(lvl int) *Poly { return NewPoly(lvl, nil) }

// One returns the unit polynomial at level lvl.
func One(lvl int) *Poly { return Const(lvl, Int(1)) }

// Const lifts e to a constant polynomial at level lvl.
func Const(lvl int, e Elem) *Poly { return NewPoly(lvl, []Elem{e}) }

// Gen returns the generator monomial of level lvl.
func Gen(lvl int) *Poly { return NewPoly(lvl, []Elem{Int(0), Int(1)}) }

// Monomial returns c times the generator of lvl raised to deg.
func Monomial(lvl int, c Elem, deg int) *Poly {
	if deg < 0 {
		panic("field: negative monomial degree")
	}
	coeffs := make([]Elem, deg+1)
	for i := 0; i < deg; i++ {
		coeffs[i] = Int(0)
	}
	coeffs[deg] = c
	return NewPoly(lvl, coeffs)
}

// trim drops leading zero coefficients in place.
func (p *Poly) trim() *Poly {
	i := len(p.coeffs)
	for i > 0 && p.coeffs[i-1].IsZero() {
		i--
	}
	p.coeffs = p.coeffs[:i]
	return p
}

// Level returns the tower level of the main variable.
func (p *Poly) Level() int { return p.lvl }

// Degree returns the degree of p, or math.MinInt for the zero polynomial.
func (p *Poly) Degree() int {
	if len(p.coeffs) == 0 {
		return math.MinInt
	}
	return len(p.coeffs) - 1
}

// Coeff returns the coefficient of the generator to the i-th power; out of
// range indices read as zero.
func (p *Poly) Coeff(i int) Elem {
	if i < 0 || i >= len(p.coeffs) {
		return Int(0)
	}
	return p.coeffs[i]
}

// LeadCoeff returns the leading coefficient, or zero for the zero polynomial.
func (p *Poly) LeadCoeff() Elem {
	if len(p.coeffs) == 0 {
		return Int(0)
	}
	return p.coeffs[len(p.coeffs)-1]
}

func (p *Poly) IsZero() bool { return len(p.coeffs) == 0 }

func (p *Poly) IsOne() bool { return len(p.coeffs) == 1 && p.coeffs[0].IsOne() }

func (p *Poly) Equal(o *Poly) bool {
	if p.lvl != o.lvl || len(p.coeffs) != len(o.coeffs) {
		return false
	}
	for i := range p.coeffs {
		if !p.coeffs[i].Equal(o.coeffs[i]) {
			return false
		}
	}
	return true
}

func (p *Poly) String() string {
	if p.IsZero() {
		return "0"
	}
	v := "t" + strconv.Itoa(p.lvl)
	var sb strings.Builder
	first := true
	for i := len(p.coeffs) - 1; i >= 0; i-- {
		c := p.coeffs[i]
		if c.IsZero() {
			continue
		}
		if !first {
			sb.WriteString(" + ")
		}
		first = false
		switch {
		case i == 0:
			sb.WriteString(c.String())
		case c.IsOne():
			sb.WriteString(v)
		default:
			sb.WriteString(c.String() + "*" + v)
		}
		if i > 1 {
			sb.WriteString("^" + strconv.Itoa(i))
		}
	}
	return sb.String()
}

// evalRat evaluates p at the rational points vals, indexed by level, by
// Horner's rule. Fails when a coefficient's denominator vanishes.
func (p *Poly) evalRat(vals []*big.Rat) (*big.Rat, bool) {
	if p.lvl >= len(vals) {
		return nil, false
	}
	x := vals[p.lvl]
	out := new(big.Rat)
	for i := len(p.coeffs) - 1; i >= 0; i-- {
		c, ok := p.coeffs[i].evalRat(vals)
		if !ok {
			return nil, false
		}
		out.Mul(out, x)
		out.Add(out, c)
	}
	return out, true
}
