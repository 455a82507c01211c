package field

import "github.com/pkg/errors"

var (
	errPointsSizeMismatch = errors.New("field: points size mismatch")
	errNonUniqueXs        = errors.New("field: non-unique x values")
)

// Interpolate recovers the unique polynomial of degree < len(xs) at level
// lvl through the given points, by the Lagrange method
// https://en.wikipedia.org/wiki/Lagrange_polynomial
// The algorithm is O(n^2) in total:
// 1. Create m(x) = \prod_{0\le i \le n} m_i(x) = \prod_{0\le i \le n} (x - x_i)
// 2. For each i, create q_i(x) = m(x) / m_i(x) by fast linear division.
// 3. From each q_i create l_i by scaling with the inverse of q_i(x_i).
// 4. Sum all l_i * y_i.
// The points must live strictly below lvl.
func Interpolate(lvl int, xs, ys []Elem) (*Poly, error) {
	if err := validateInterpolationPoints(xs, ys); err != nil {
		return nil, err
	}

	m := One(lvl)
	for _, x := range xs {
		m = m.Mul(NewPoly(lvl, []Elem{x.Neg(), Int(1)}))
	}

	out := Zero(lvl)
	for i, x := range xs {
		qi := mDivMi(m, x)
		s := qi.Eval(x)
		out = out.Add(qi.MulElem(s.Inv().Mul(ys[i])))
	}
	return out, nil
}

// mDivMi divides m by (x - ui). Quicker than long division since the divisor
// has degree 1 and the division is known to be exact.
func mDivMi(m *Poly, ui Elem) *Poly {
	q := make([]Elem, len(m.coeffs)-1)
	carry := Int(0)
	for i := len(m.coeffs) - 1; i > 0; i-- {
		q[i-1] = m.coeffs[i].Add(carry)
		carry = q[i-1].Mul(ui)
	}
	return (&Poly{lvl: m.lvl, coeffs: q}).trim()
}

func validateInterpolationPoints(xs, ys []Elem) error {
	if len(xs) != len(ys) || len(xs) == 0 {
		return errPointsSizeMismatch
	}
	for i := range xs {
		for j := i + 1; j < len(xs); j++ {
			if xs[i].Equal(xs[j]) {
				return errNonUniqueXs
			}
		}
	}
	return nil
}
