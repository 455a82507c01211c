package risch

import (
	"math"

	"github.com/jonathanmweiss/go-risch/field"
	"github.com/jonathanmweiss/go-risch/tower"
)

// boundDegree returns an upper bound on the degree of a polynomial solution
// q of a*Dq + b*q = c over the top extension of tw. The cancellation
// sub-cases, where the bound depends on recognizing logarithmic derivatives
// or in-field integrals, are not implemented and fail as incomplete.
func boundDegree(a, b, c *field.Poly, tw tower.Tower) (int, error) {
	cse := tw.Classify()
	da, db, dc := a.Degree(), b.Degree(), c.Degree()
	// alpha = -lc(b)/lc(a) is the candidate cancellation degree.
	alpha := b.LeadCoeff().Neg().Div(a.LeadCoeff())

	var n int
	switch cse {
	case tower.Base:
		n = maxInt(0, degSub(dc, maxInt(db, da-1)))
		if db == da-1 && alpha.IsInt() {
			n = maxInt(n, maxInt(int(alpha.Int64()), degSub(dc, db)))
		}

	case tower.Primitive:
		if db > da {
			n = maxInt(0, degSub(dc, db))
		} else {
			n = maxInt(0, degSub(dc, da-1))
		}
		if db == da-1 {
			return 0, &IncompleteError{
				Step:   "degree bound",
				Case:   cse,
				Reason: "the cancellation bound needs to recognize in-field integrals",
			}
		}
		if db == da {
			return 0, &IncompleteError{
				Step:   "degree bound",
				Case:   cse,
				Reason: "the cancellation bound needs to recognize logarithmic derivatives",
			}
		}

	case tower.Exp:
		n = maxInt(0, degSub(dc, maxInt(db, da)))
		if da == db {
			return 0, &IncompleteError{
				Step:   "degree bound",
				Case:   cse,
				Reason: "the cancellation bound needs the parametric logarithmic derivative problem",
			}
		}

	case tower.Tan, tower.OtherNonlinear:
		d := tw.Top().D
		delta := d.Degree()
		alpha = alpha.Div(d.LeadCoeff())
		n = maxInt(0, degSub(dc, maxInt(da+delta-1, db)))
		if db == da+delta-1 && alpha.IsInt() {
			n = maxInt(n, maxInt(int(alpha.Int64()), degSub(dc, db)))
		}

	default:
		return 0, &IncompleteError{
			Step:   "degree bound",
			Case:   cse,
			Reason: "no degree bound for this extension shape",
		}
	}
	return n, nil
}

// degSub is x - y with the zero-polynomial degree sentinel absorbing: a
// degree of -inf stays -inf instead of wrapping around.
func degSub(x, y int) int {
	if x == math.MinInt {
		return math.MinInt
	}
	return x - y
}
