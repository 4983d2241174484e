// Package exact provides overflow-checked and floor-division integer helpers.
//
// The checked helpers return ok=false instead of wrapping. Callers translate
// that into a calerr overflow error at the public boundary. The floor helpers
// never fail; they exist because Go's / and % truncate toward zero, which is
// wrong for calendar math on negative years and day counts.
package exact

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Add returns a+b and whether the sum fits in T.
func Add[T constraints.Signed](a, b T) (T, bool) {
	c := a + b
	if (c > a) == (b > 0) {
		return c, true
	}
	return c, false
}

// Sub returns a-b and whether the difference fits in T.
func Sub[T constraints.Signed](a, b T) (T, bool) {
	c := a - b
	if (c < a) == (b > 0) {
		return c, true
	}
	return c, false
}

// Neg returns -a and whether the negation fits in T.
// Only the minimum value of T fails.
func Neg[T constraints.Signed](a T) (T, bool) {
	if a != 0 && a == -a {
		return a, false
	}
	return -a, true
}

// Abs returns |a| and whether it fits in T.
func Abs[T constraints.Signed](a T) (T, bool) {
	if a < 0 {
		return Neg(a)
	}
	return a, true
}

// Mul returns a*b and whether the product fits in T.
func Mul[T constraints.Signed](a, b T) (T, bool) {
	switch {
	case a == 0 || b == 0:
		return 0, true
	case a == 1:
		return b, true
	case b == 1:
		return a, true
	case a == -1:
		return Neg(b)
	case b == -1:
		return Neg(a)
	}
	c := a * b
	if c/b != a {
		return c, false
	}
	return c, true
}

// FloorDiv returns the largest integer q with q*b <= a.
// b must be nonzero.
func FloorDiv[T constraints.Signed](a, b T) T {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// FloorMod returns a - FloorDiv(a, b)*b, which carries the sign of b.
// b must be nonzero.
func FloorMod[T constraints.Signed](a, b T) T {
	m := a % b
	if m != 0 && (m < 0) != (b < 0) {
		m += b
	}
	return m
}

// Narrow converts an int64 to int32, reporting whether it fits.
func Narrow(v int64) (int32, bool) {
	if v < math.MinInt32 || v > math.MaxInt32 {
		return int32(v), false
	}
	return int32(v), true
}
