package measures

import (
	"cmp"
	"math"

	"github.com/roach88/almanac/calerr"
	"github.com/roach88/almanac/internal/exact"
)

// Int is a 32-bit amount of unit U.
type Int[U Unit] int32

// Long is a 64-bit amount of unit U.
type Long[U Unit] int64

// Common instantiations.
type (
	IntNanoseconds   = Int[Nanosecond]
	IntMicroseconds  = Int[Microsecond]
	IntMilliseconds  = Int[Millisecond]
	IntSeconds       = Int[Second]
	IntMinutes       = Int[Minute]
	IntHours         = Int[Hour]
	IntDays          = Int[Day]
	IntWeeks         = Int[Week]
	IntMonths        = Int[Month]
	IntYears         = Int[Year]
	LongNanoseconds  = Long[Nanosecond]
	LongMicroseconds = Long[Microsecond]
	LongMilliseconds = Long[Millisecond]
	LongSeconds      = Long[Second]
	LongMinutes      = Long[Minute]
	LongHours        = Long[Hour]
	LongDays         = Long[Day]
	LongWeeks        = Long[Week]
	LongMonths       = Long[Month]
	LongYears        = Long[Year]
)

func opName[U Unit](width, method string) string {
	return width + "[" + KindOf[U]().String() + "]." + method
}

// Long methods

// Kind returns the unit of v.
func (v Long[U]) Kind() Kind { return KindOf[U]() }

// Value returns the raw amount.
func (v Long[U]) Value() int64 { return int64(v) }

// IsZero reports whether the amount is zero.
func (v Long[U]) IsZero() bool { return v == 0 }

// IsNegative reports whether the amount is below zero.
func (v Long[U]) IsNegative() bool { return v < 0 }

// IsPositive reports whether the amount is above zero.
func (v Long[U]) IsPositive() bool { return v > 0 }

// Compare returns -1, 0 or +1.
func (v Long[U]) Compare(o Long[U]) int { return cmp.Compare(v, o) }

// Neg returns -v.
func (v Long[U]) Neg() (Long[U], error) {
	r, ok := exact.Neg(int64(v))
	if !ok {
		return 0, calerr.NewOverflow(opName[U]("Long", "Neg"))
	}
	return Long[U](r), nil
}

// Abs returns |v|.
func (v Long[U]) Abs() (Long[U], error) {
	r, ok := exact.Abs(int64(v))
	if !ok {
		return 0, calerr.NewOverflow(opName[U]("Long", "Abs"))
	}
	return Long[U](r), nil
}

// Plus returns v+o.
func (v Long[U]) Plus(o Long[U]) (Long[U], error) {
	r, ok := exact.Add(int64(v), int64(o))
	if !ok {
		return 0, calerr.NewOverflow(opName[U]("Long", "Plus"))
	}
	return Long[U](r), nil
}

// Minus returns v-o.
func (v Long[U]) Minus(o Long[U]) (Long[U], error) {
	r, ok := exact.Sub(int64(v), int64(o))
	if !ok {
		return 0, calerr.NewOverflow(opName[U]("Long", "Minus"))
	}
	return Long[U](r), nil
}

// Times returns v*scalar.
func (v Long[U]) Times(scalar int64) (Long[U], error) {
	r, ok := exact.Mul(int64(v), scalar)
	if !ok {
		return 0, calerr.NewOverflow(opName[U]("Long", "Times"))
	}
	return Long[U](r), nil
}

// Div returns v/scalar, truncated toward zero.
func (v Long[U]) Div(scalar int64) (Long[U], error) {
	switch scalar {
	case 0:
		return 0, calerr.NewDivisionByZero(opName[U]("Long", "Div"))
	case -1:
		r, ok := exact.Neg(int64(v))
		if !ok {
			return 0, calerr.NewOverflow(opName[U]("Long", "Div"))
		}
		return Long[U](r), nil
	}
	return v / Long[U](scalar), nil
}

// Rem returns the remainder of v/scalar, carrying the sign of v.
func (v Long[U]) Rem(scalar int64) (Long[U], error) {
	if scalar == 0 {
		return 0, calerr.NewDivisionByZero(opName[U]("Long", "Rem"))
	}
	return v % Long[U](scalar), nil
}

// Int narrows v to 32 bits.
func (v Long[U]) Int() (Int[U], error) {
	r, ok := exact.Narrow(int64(v))
	if !ok {
		return 0, calerr.NewOverflow(opName[U]("Long", "Int"))
	}
	return Int[U](r), nil
}

// String returns the ISO-8601 representation, e.g. "PT5H" or "-P3D".
func (v Long[U]) String() string { return isoString(KindOf[U](), int64(v)) }

// Int methods

// Kind returns the unit of v.
func (v Int[U]) Kind() Kind { return KindOf[U]() }

// Value returns the raw amount.
func (v Int[U]) Value() int32 { return int32(v) }

// IsZero reports whether the amount is zero.
func (v Int[U]) IsZero() bool { return v == 0 }

// IsNegative reports whether the amount is below zero.
func (v Int[U]) IsNegative() bool { return v < 0 }

// IsPositive reports whether the amount is above zero.
func (v Int[U]) IsPositive() bool { return v > 0 }

// Compare returns -1, 0 or +1.
func (v Int[U]) Compare(o Int[U]) int { return cmp.Compare(v, o) }

// Long widens v to 64 bits. It never fails.
func (v Int[U]) Long() Long[U] { return Long[U](v) }

// Neg returns -v.
func (v Int[U]) Neg() (Int[U], error) {
	r, ok := exact.Neg(int32(v))
	if !ok {
		return 0, calerr.NewOverflow(opName[U]("Int", "Neg"))
	}
	return Int[U](r), nil
}

// Abs returns |v|.
func (v Int[U]) Abs() (Int[U], error) {
	r, ok := exact.Abs(int32(v))
	if !ok {
		return 0, calerr.NewOverflow(opName[U]("Int", "Abs"))
	}
	return Int[U](r), nil
}

// Plus returns v+o.
func (v Int[U]) Plus(o Int[U]) (Int[U], error) {
	r, ok := exact.Add(int32(v), int32(o))
	if !ok {
		return 0, calerr.NewOverflow(opName[U]("Int", "Plus"))
	}
	return Int[U](r), nil
}

// Minus returns v-o.
func (v Int[U]) Minus(o Int[U]) (Int[U], error) {
	r, ok := exact.Sub(int32(v), int32(o))
	if !ok {
		return 0, calerr.NewOverflow(opName[U]("Int", "Minus"))
	}
	return Int[U](r), nil
}

// Times returns v*scalar.
func (v Int[U]) Times(scalar int32) (Int[U], error) {
	r, ok := exact.Mul(int32(v), scalar)
	if !ok {
		return 0, calerr.NewOverflow(opName[U]("Int", "Times"))
	}
	return Int[U](r), nil
}

// Div returns v/scalar, truncated toward zero.
func (v Int[U]) Div(scalar int32) (Int[U], error) {
	switch scalar {
	case 0:
		return 0, calerr.NewDivisionByZero(opName[U]("Int", "Div"))
	case -1:
		if v == math.MinInt32 {
			return 0, calerr.NewOverflow(opName[U]("Int", "Div"))
		}
		return -v, nil
	}
	return v / Int[U](scalar), nil
}

// Rem returns the remainder of v/scalar, carrying the sign of v.
func (v Int[U]) Rem(scalar int32) (Int[U], error) {
	if scalar == 0 {
		return 0, calerr.NewDivisionByZero(opName[U]("Int", "Rem"))
	}
	return v % Int[U](scalar), nil
}

// String returns the ISO-8601 representation.
func (v Int[U]) String() string { return isoString(KindOf[U](), int64(v)) }
