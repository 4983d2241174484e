package measures

import (
	"github.com/roach88/almanac/calerr"
	"github.com/roach88/almanac/internal/exact"
)

// scale converts value between two kinds whose lengths are given in a shared
// base (nanoseconds or months). Converting to a finer unit multiplies and can
// overflow; converting to a coarser unit truncates toward zero.
func scale(value, fromLen, toLen int64, op string) (int64, error) {
	if fromLen >= toLen {
		r, ok := exact.Mul(value, fromLen/toLen)
		if !ok {
			return 0, calerr.NewOverflow(op)
		}
		return r, nil
	}
	return value / (toLen / fromLen), nil
}

// Convert expresses v in unit To. Converting up to a coarser unit keeps only
// the whole amount.
//
//	m, err := measures.Convert[measures.Minute](measures.LongHours(2)) // 120 minutes
func Convert[To, From Fixed](v Long[From]) (Long[To], error) {
	r, err := scale(int64(v), KindOf[From]().Nanos(), KindOf[To]().Nanos(), "measures.Convert")
	return Long[To](r), err
}

// ConvertInt is Convert for 32-bit amounts.
func ConvertInt[To, From Fixed](v Int[From]) (Int[To], error) {
	r, err := scale(int64(v), KindOf[From]().Nanos(), KindOf[To]().Nanos(), "measures.ConvertInt")
	if err != nil {
		return 0, err
	}
	n, ok := exact.Narrow(r)
	if !ok {
		return 0, calerr.NewOverflow("measures.ConvertInt")
	}
	return Int[To](n), nil
}

// ConvertCalendar expresses a month-based amount in unit To.
func ConvertCalendar[To, From Calendar](v Long[From]) (Long[To], error) {
	r, err := scale(int64(v), KindOf[From]().Months(), KindOf[To]().Months(), "measures.ConvertCalendar")
	return Long[To](r), err
}

// ConvertCalendarInt is ConvertCalendar for 32-bit amounts.
func ConvertCalendarInt[To, From Calendar](v Int[From]) (Int[To], error) {
	r, err := scale(int64(v), KindOf[From]().Months(), KindOf[To]().Months(), "measures.ConvertCalendarInt")
	if err != nil {
		return 0, err
	}
	n, ok := exact.Narrow(r)
	if !ok {
		return 0, calerr.NewOverflow("measures.ConvertCalendarInt")
	}
	return Int[To](n), nil
}

func checkResultUnit[R, A, B Fixed](op string) error {
	r := KindOf[R]()
	for _, k := range []Kind{KindOf[A](), KindOf[B]()} {
		if k.Finer(r) {
			return calerr.NewInvalidArgument(op, "result unit %s is coarser than operand unit %s", r, k)
		}
	}
	return nil
}

// Plus adds amounts of two units, expressing the sum in R. R must be at least
// as fine as both operands so that neither operand is truncated.
//
//	sum, err := measures.Plus[measures.Minute](hours, minutes)
func Plus[R, A, B Fixed](a Long[A], b Long[B]) (Long[R], error) {
	const op = "measures.Plus"
	if err := checkResultUnit[R, A, B](op); err != nil {
		return 0, err
	}
	x, err := Convert[R](a)
	if err != nil {
		return 0, err
	}
	y, err := Convert[R](b)
	if err != nil {
		return 0, err
	}
	return x.Plus(y)
}

// Minus subtracts b from a, expressing the difference in R.
func Minus[R, A, B Fixed](a Long[A], b Long[B]) (Long[R], error) {
	const op = "measures.Minus"
	if err := checkResultUnit[R, A, B](op); err != nil {
		return 0, err
	}
	x, err := Convert[R](a)
	if err != nil {
		return 0, err
	}
	y, err := Convert[R](b)
	if err != nil {
		return 0, err
	}
	return x.Minus(y)
}

// PlusInt is Plus for 32-bit amounts.
func PlusInt[R, A, B Fixed](a Int[A], b Int[B]) (Int[R], error) {
	const op = "measures.PlusInt"
	if err := checkResultUnit[R, A, B](op); err != nil {
		return 0, err
	}
	x, err := ConvertInt[R](a)
	if err != nil {
		return 0, err
	}
	y, err := ConvertInt[R](b)
	if err != nil {
		return 0, err
	}
	return x.Plus(y)
}

// MinusInt is Minus for 32-bit amounts.
func MinusInt[R, A, B Fixed](a Int[A], b Int[B]) (Int[R], error) {
	const op = "measures.MinusInt"
	if err := checkResultUnit[R, A, B](op); err != nil {
		return 0, err
	}
	x, err := ConvertInt[R](a)
	if err != nil {
		return 0, err
	}
	y, err := ConvertInt[R](b)
	if err != nil {
		return 0, err
	}
	return x.Minus(y)
}

// Split breaks v into a whole number of Big units and the remainder in
// Small. Both parts carry the sign of v. Big must be at least as coarse as
// Small.
//
//	h, m, err := measures.Split[measures.Hour](measures.LongMinutes(-135)) // -2h, -15m
func Split[Big, Small Fixed](v Long[Small]) (Long[Big], Long[Small], error) {
	big, small := KindOf[Big](), KindOf[Small]()
	if big.Finer(small) {
		return 0, 0, calerr.NewInvalidArgument("measures.Split", "%s is finer than %s", big, small)
	}
	ratio := big.Nanos() / small.Nanos()
	whole := int64(v) / ratio
	return Long[Big](whole), Long[Small](int64(v) - whole*ratio), nil
}

// Components is a fixed-unit amount broken into parts, largest first.
// Every part carries the sign of the original amount.
type Components struct {
	Weeks        LongWeeks
	Days         LongDays
	Hours        LongHours
	Minutes      LongMinutes
	Seconds      LongSeconds
	Milliseconds LongMilliseconds
	Microseconds LongMicroseconds
	Nanoseconds  LongNanoseconds
}

func (c *Components) set(k Kind, v int64) {
	switch k {
	case Weeks:
		c.Weeks = LongWeeks(v)
	case Days:
		c.Days = LongDays(v)
	case Hours:
		c.Hours = LongHours(v)
	case Minutes:
		c.Minutes = LongMinutes(v)
	case Seconds:
		c.Seconds = LongSeconds(v)
	case Milliseconds:
		c.Milliseconds = LongMilliseconds(v)
	case Microseconds:
		c.Microseconds = LongMicroseconds(v)
	case Nanoseconds:
		c.Nanoseconds = LongNanoseconds(v)
	}
}

// ToComponents decomposes v into parts from largest down to U. Parts coarser
// than largest stay zero and are folded into largest. A largest finer than U
// is treated as U.
//
//	c := measures.ToComponents(measures.LongMinutes(1501), measures.Days)
//	// c.Days == 1, c.Hours == 1, c.Minutes == 1
func ToComponents[U Fixed](v Long[U], largest Kind) Components {
	unit := KindOf[U]()
	if !largest.IsFixed() || largest.Finer(unit) {
		largest = unit
	}
	var c Components
	rem := int64(v)
	for k := largest; k > unit; k-- {
		ratio := k.Nanos() / unit.Nanos()
		whole := rem / ratio
		c.set(k, whole)
		rem -= whole * ratio
	}
	c.set(unit, rem)
	return c
}
