// Package risch solves the Risch differential equation Dy + f*y = g over a
// tower of monomial extensions of Q, using exact arithmetic throughout. It
// either finds the unique solution y in the top field of the tower, proves
// that no such y exists, or reports precisely which algorithmic gap stopped
// it.
package risch

import (
	"fmt"
	"math"

	"github.com/pkg/errors"

	"github.com/jonathanmweiss/go-risch/field"
	"github.com/jonathanmweiss/go-risch/tower"
)

// ErrUnsolvable reports a proof that the equation has no solution in the
// given differential field. It is a definitive mathematical answer, not a
// failure of the solver.
var ErrUnsolvable = errors.New("equation has no solution in the given differential field")

// IncompleteError reports an input the solver cannot decide: the algorithm
// reached a sub-problem (typically a cancellation case or the parametric
// logarithmic derivative problem) that is not implemented. The equation may
// or may not have a solution.
type IncompleteError struct {
	Step   string
	Case   tower.Case
	Reason string
}

func (e *IncompleteError) Error() string {
	return fmt.Sprintf("%s (%s, %s case)", e.Reason, e.Step, e.Case)
}

// InputError reports arguments that violate a documented precondition.
type InputError struct {
	Op     string
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

// degreeUnbounded stands in for an infinite degree bound when the bounding
// step cannot produce one. Far below overflow range so the budget can still
// be decremented.
const degreeUnbounded = math.MaxInt / 4

// Iteration and recursion ceilings for the loops whose termination is only
// guaranteed by a finite degree bound. With an unbounded bound they fail
// closed instead of spinning.
const (
	maxPeelIterations = 10_000
	maxSPDEDepth      = 1_000
)

// diagUnboundedDegree is attached to a Solution when the degree bound was
// unavailable and the solver continued with an unbounded budget.
const diagUnboundedDegree = "no degree bound is available for this extension; " +
	"continuing with an unbounded degree budget, termination is no longer guaranteed"

// Solution is a solved equation: y = Num/Den in the top field of the tower.
// Diagnostics carries non-fatal notes about how the answer was obtained.
type Solution struct {
	Num, Den    *field.Poly
	Diagnostics []string
}

// SolveRDE solves Dy + f*y = g for y in the top field of tw, with
// f = fa/fd and g = ga/gd given as fractions of polynomials at the top
// level. It returns ErrUnsolvable when no solution exists, *IncompleteError
// when the algorithm cannot decide, and *InputError on malformed arguments.
func SolveRDE(fa, fd, ga, gd *field.Poly, tw tower.Tower) (*Solution, error) {
	t := tw.TopIndex()
	if fd == nil || gd == nil || fd.IsZero() || gd.IsZero() {
		return nil, &InputError{Op: "SolveRDE", Reason: "zero denominator"}
	}
	for _, p := range []*field.Poly{fa, fd, ga, gd} {
		if p.Level() != t {
			return nil, &InputError{Op: "SolveRDE", Reason: "argument is not at the top level of the tower"}
		}
	}

	// Make f weakly normalized. A solution z of Dz + (f - Dq/q)z = g*q
	// gives back y = z/q for the original equation.
	q, fa, fd, err := weakNormalizer(fa, fd, tw)
	if err != nil {
		return nil, err
	}
	ga, gd = cancel(ga.Mul(q), gd)

	a, ba, bd, ca, cd, hn, err := normalDenom(fa, fd, ga, gd, tw)
	if err != nil {
		return nil, err
	}
	aa, b, c, hs, err := specialDenom(a, ba, bd, ca, cd, tw)
	if err != nil {
		return nil, err
	}

	var diags []string
	n, err := boundDegree(aa, b, c, tw)
	if err != nil {
		var inc *IncompleteError
		if !errors.As(err, &inc) {
			return nil, err
		}
		n = degreeUnbounded
		diags = append(diags, diagUnboundedDegree)
	}

	bb, cc, m, alpha, beta, err := spde(aa, b, c, n, tw)
	if err != nil {
		return nil, err
	}
	poly, err := solvePolyRDE(bb, cc, m, tw)
	if err != nil {
		return nil, err
	}

	num := alpha.Mul(poly).Add(beta)
	den := hn.Mul(hs).Mul(q)
	num, den = cancel(num, den)
	return &Solution{Num: num, Den: den, Diagnostics: diags}, nil
}

// cancel divides num and den by their common factor and makes den monic.
// A zero numerator is returned unchanged: the denominator still carries
// pole information the callers rely on.
func cancel(num, den *field.Poly) (*field.Poly, *field.Poly) {
	if num.IsZero() {
		return num, den
	}
	if g := num.Gcd(den); g.Degree() > 0 {
		num, den = num.Quo(g), den.Quo(g)
	}
	if lc := den.LeadCoeff(); !lc.IsOne() {
		inv := lc.Inv()
		num, den = num.MulElem(inv), den.MulElem(inv)
	}
	return num, den
}
