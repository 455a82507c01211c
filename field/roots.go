package field

import (
	"math/big"
	"sort"

	"github.com/pkg/errors"
)

var (
	errNoSpecialization      = errors.New("field: no admissible specialization of the lower variables")
	errRootCandidateOverflow = errors.New("field: specialized constant term is too large to enumerate root candidates")
)

// PositiveIntegerRoots returns the positive integer roots of p, each
// repeated to its multiplicity, in ascending order. Candidates come from
// the rational root theorem applied to a numeric specialization of the
// lower tower variables; every candidate is verified symbolically before
// it is accepted, so a bad specialization can only cost retries, never
// correctness.
func PositiveIntegerRoots(p *Poly) ([]int, error) {
	if p.Degree() <= 0 {
		return nil, nil
	}
	candidates, err := integerRootCandidates(p)
	if err != nil {
		return nil, err
	}
	var roots []int
	for _, n := range candidates {
		x := Int(n)
		lin := NewPoly(p.lvl, []Elem{x.Neg(), Int(1)})
		for !p.IsZero() && p.Eval(x).IsZero() {
			roots = append(roots, int(n))
			p = p.Quo(lin)
		}
	}
	sort.Ints(roots)
	return roots, nil
}

// integerRootCandidates specializes the variables below p's level at small
// integer points and returns the positive divisors of the resulting trailing
// coefficient. A positive integer root of p divides that coefficient for
// every admissible specialization.
func integerRootCandidates(p *Poly) ([]int64, error) {
	overflow := false
	for base := int64(2); base < 32; base++ {
		vals := make([]*big.Rat, p.lvl)
		for i := range vals {
			vals[i] = new(big.Rat).SetInt64(base + int64(i))
		}
		coeffs := make([]*big.Rat, len(p.coeffs))
		ok := true
		for i, c := range p.coeffs {
			coeffs[i], ok = c.evalRat(vals)
			if !ok {
				break
			}
		}
		if !ok {
			continue
		}
		// Clear denominators, then strip the trailing zero coefficients:
		// a positive root cannot be zero, and it divides the lowest
		// surviving integer coefficient.
		den := big.NewInt(1)
		for _, c := range coeffs {
			den.Mul(den, c.Denom())
		}
		var a0 *big.Int
		for _, c := range coeffs {
			if c.Sign() == 0 {
				continue
			}
			a0 = new(big.Int).Mul(c.Num(), new(big.Int).Quo(den, c.Denom()))
			break
		}
		if a0 == nil {
			continue // specialization collapsed p entirely, try another
		}
		a0.Abs(a0)
		if a0.BitLen() > 31 {
			// Trial division is only cheap for small constants, and a
			// candidate set that might be missing a root would silently
			// under-normalize. Try another specialization; fail closed
			// when none produces a tractable constant.
			overflow = true
			continue
		}
		return positiveDivisors(a0.Int64()), nil
	}
	if overflow {
		return nil, errRootCandidateOverflow
	}
	return nil, errNoSpecialization
}

func positiveDivisors(v int64) []int64 {
	var out []int64
	for d := int64(1); d*d <= v; d++ {
		if v%d != 0 {
			continue
		}
		out = append(out, d)
		if d != v/d {
			out = append(out, v/d)
		}
	}
	return out
}
