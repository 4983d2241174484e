package almanac

import (
	"cmp"
	"math"
	"strconv"
	"strings"

	"github.com/roach88/almanac/calerr"
	"github.com/roach88/almanac/internal/exact"
	"github.com/roach88/almanac/measures"
)

const (
	nanosPerSecond = 1_000_000_000
	secondsPerDay  = 86_400
)

// Duration is an exact amount of elapsed time stored as whole seconds plus a
// nanosecond adjustment.
//
// The adjustment is always in (-1s, 1s) and is either zero or has the same
// sign as the seconds, so every Duration has exactly one representation.
// The zero value is ZeroDuration.
type Duration struct {
	seconds int64
	nanos   int32
}

var (
	ZeroDuration = Duration{}
	MinDuration  = Duration{seconds: math.MinInt64, nanos: -999_999_999}
	MaxDuration  = Duration{seconds: math.MaxInt64, nanos: 999_999_999}
)

// DurationOf returns seconds plus nanos, normalized. nanos may exceed one
// second and may disagree in sign with seconds.
func DurationOf(seconds measures.LongSeconds, nanos measures.LongNanoseconds) (Duration, error) {
	return normalize("DurationOf", seconds.Value(), nanos.Value())
}

// MustDuration is like DurationOf but panics on overflow.
func MustDuration(seconds measures.LongSeconds, nanos measures.LongNanoseconds) Duration {
	d, err := DurationOf(seconds, nanos)
	if err != nil {
		panic(err)
	}
	return d
}

func normalize(op string, seconds, nanos int64) (Duration, error) {
	sec, ok := exact.Add(seconds, nanos/nanosPerSecond)
	if !ok {
		return Duration{}, calerr.NewOverflow(op)
	}
	nano := nanos % nanosPerSecond
	switch {
	case nano < 0 && sec > 0:
		sec--
		nano += nanosPerSecond
	case nano > 0 && sec < 0:
		sec++
		nano -= nanosPerSecond
	}
	return Duration{seconds: sec, nanos: int32(nano)}, nil
}

// DurationFrom converts a fixed-unit amount to a Duration.
//
//	d, err := almanac.DurationFrom(measures.LongHours(2))
func DurationFrom[U measures.Fixed](v measures.Long[U]) (Duration, error) {
	unit := measures.KindOf[U]()
	if !unit.Finer(measures.Seconds) {
		sec, err := measures.Convert[measures.Second](v)
		if err != nil {
			return Duration{}, err
		}
		return Duration{seconds: sec.Value()}, nil
	}
	sec, rem, err := measures.Split[measures.Second](v)
	if err != nil {
		return Duration{}, err
	}
	return Duration{seconds: sec.Value(), nanos: int32(rem.Value() * unit.Nanos())}, nil
}

// Seconds returns the whole-second part.
func (d Duration) Seconds() measures.LongSeconds { return measures.LongSeconds(d.seconds) }

// NanosecondAdjustment returns the sub-second part. It has the sign of d.
func (d Duration) NanosecondAdjustment() measures.IntNanoseconds {
	return measures.IntNanoseconds(d.nanos)
}

// IsZero reports whether d is ZeroDuration.
func (d Duration) IsZero() bool { return d == ZeroDuration }

// IsNegative reports whether d is below zero.
func (d Duration) IsNegative() bool { return d.seconds < 0 || d.nanos < 0 }

// IsPositive reports whether d is above zero.
func (d Duration) IsPositive() bool { return d.seconds > 0 || d.nanos > 0 }

// Compare orders by seconds, then by nanosecond adjustment.
func (d Duration) Compare(o Duration) int {
	if c := cmp.Compare(d.seconds, o.seconds); c != 0 {
		return c
	}
	return cmp.Compare(d.nanos, o.nanos)
}

// Neg returns -d.
func (d Duration) Neg() (Duration, error) {
	sec, ok := exact.Neg(d.seconds)
	if !ok {
		return Duration{}, calerr.NewOverflow("Duration.Neg")
	}
	return Duration{seconds: sec, nanos: -d.nanos}, nil
}

// Abs returns |d|.
func (d Duration) Abs() (Duration, error) {
	if d.IsNegative() {
		return d.Neg()
	}
	return d, nil
}

// Plus returns d+o.
func (d Duration) Plus(o Duration) (Duration, error) {
	const op = "Duration.Plus"
	sec, ok := exact.Add(d.seconds, o.seconds)
	if !ok {
		return Duration{}, calerr.NewOverflow(op)
	}
	return normalize(op, sec, int64(d.nanos)+int64(o.nanos))
}

// Minus returns d-o.
func (d Duration) Minus(o Duration) (Duration, error) {
	const op = "Duration.Minus"
	sec, ok := exact.Sub(d.seconds, o.seconds)
	if !ok {
		return Duration{}, calerr.NewOverflow(op)
	}
	return normalize(op, sec, int64(d.nanos)-int64(o.nanos))
}

// Times returns d*scalar.
func (d Duration) Times(scalar int32) (Duration, error) {
	const op = "Duration.Times"
	switch scalar {
	case 0:
		return ZeroDuration, nil
	case 1:
		return d, nil
	}
	sec, ok := exact.Mul(d.seconds, int64(scalar))
	if !ok {
		return Duration{}, calerr.NewOverflow(op)
	}
	return normalize(op, sec, int64(d.nanos)*int64(scalar))
}

// Div returns d/scalar.
//
// The whole seconds are divided in double precision and the fractional
// second is redistributed into the nanosecond adjustment. The result is
// exact while |seconds| < 2^53; beyond that it is an approximation and is
// not guaranteed to be the inverse of Times.
func (d Duration) Div(scalar int32) (Duration, error) {
	const op = "Duration.Div"
	switch scalar {
	case 0:
		return Duration{}, calerr.NewDivisionByZero(op)
	case 1:
		return d, nil
	case -1:
		return d.Neg()
	}
	fractional := float64(d.seconds) / float64(scalar)
	sec := int64(fractional)
	nanos := int64(d.nanos)/int64(scalar) + int64((fractional-float64(sec))*nanosPerSecond)
	return normalize(op, sec, nanos)
}

// TruncatedTo drops every component finer than unit. Calendar units are rejected.
func (d Duration) TruncatedTo(unit measures.Kind) (Duration, error) {
	if !unit.IsFixed() {
		return Duration{}, calerr.NewInvalidArgument("Duration.TruncatedTo", "cannot truncate to %s", unit)
	}
	if unit.Finer(measures.Seconds) {
		step := int32(unit.Nanos())
		return Duration{seconds: d.seconds, nanos: d.nanos / step * step}, nil
	}
	step := unit.Nanos() / nanosPerSecond
	return Duration{seconds: d.seconds / step * step}, nil
}

func (d Duration) truncated(unit measures.Kind) Duration {
	r, _ := d.TruncatedTo(unit)
	return r
}

// TruncatedToDays and its siblings drop everything finer than the unit,
// rounding toward zero. They never fail.
func (d Duration) TruncatedToDays() Duration         { return d.truncated(measures.Days) }
func (d Duration) TruncatedToHours() Duration        { return d.truncated(measures.Hours) }
func (d Duration) TruncatedToMinutes() Duration      { return d.truncated(measures.Minutes) }
func (d Duration) TruncatedToSeconds() Duration      { return d.truncated(measures.Seconds) }
func (d Duration) TruncatedToMilliseconds() Duration { return d.truncated(measures.Milliseconds) }
func (d Duration) TruncatedToMicroseconds() Duration { return d.truncated(measures.Microseconds) }

// Components breaks d into parts from largest down to seconds, plus the
// nanosecond adjustment. Days are 24 hours long. A largest unit finer than
// seconds is treated as seconds.
func (d Duration) Components(largest measures.Kind) measures.Components {
	if largest.Finer(measures.Seconds) {
		largest = measures.Seconds
	}
	c := measures.ToComponents(measures.LongSeconds(d.seconds), largest)
	c.Nanoseconds = measures.LongNanoseconds(d.nanos)
	return c
}

// InWhole returns the number of whole units of U in d, truncated toward zero.
func InWhole[U measures.Fixed](d Duration) (measures.Long[U], error) {
	unit := measures.KindOf[U]()
	whole, err := measures.Convert[U](measures.LongSeconds(d.seconds))
	if err != nil || !unit.Finer(measures.Seconds) {
		return whole, err
	}
	r, ok := exact.Add(whole.Value(), int64(d.nanos)/unit.Nanos())
	if !ok {
		return 0, calerr.NewOverflow("Duration.InWhole")
	}
	return measures.Long[U](r), nil
}

// InDays returns the whole 24-hour days in d.
func (d Duration) InDays() measures.LongDays { return measures.LongDays(d.seconds / secondsPerDay) }

// InHours returns the whole hours in d.
func (d Duration) InHours() measures.LongHours { return measures.LongHours(d.seconds / 3600) }

// InMinutes returns the whole minutes in d.
func (d Duration) InMinutes() measures.LongMinutes { return measures.LongMinutes(d.seconds / 60) }

// InSeconds returns the whole seconds in d.
func (d Duration) InSeconds() measures.LongSeconds { return measures.LongSeconds(d.seconds) }

// InMilliseconds returns the whole milliseconds in d, or ArithmeticOverflow.
func (d Duration) InMilliseconds() (measures.LongMilliseconds, error) {
	return InWhole[measures.Millisecond](d)
}

// InMicroseconds returns the whole microseconds in d, or ArithmeticOverflow.
func (d Duration) InMicroseconds() (measures.LongMicroseconds, error) {
	return InWhole[measures.Microsecond](d)
}

// InNanoseconds returns d in nanoseconds, or ArithmeticOverflow beyond
// about 292 years.
func (d Duration) InNanoseconds() (measures.LongNanoseconds, error) {
	return InWhole[measures.Nanosecond](d)
}

// String returns the ISO-8601 representation. Days are folded into hours,
// zero components are omitted and trailing fractional zeros are dropped:
//
//	PT0S, PT36H, PT1M0.5S, PT-1.5S, PT-0.25S
func (d Duration) String() string {
	if d.IsZero() {
		return "PT0S"
	}
	hours := d.seconds / 3600
	minutes := d.seconds % 3600 / 60
	seconds := d.seconds % 60

	var b strings.Builder
	b.WriteString("PT")
	if hours != 0 {
		b.WriteString(strconv.FormatInt(hours, 10))
		b.WriteByte('H')
	}
	if minutes != 0 {
		b.WriteString(strconv.FormatInt(minutes, 10))
		b.WriteByte('M')
	}
	if seconds != 0 || d.nanos != 0 {
		if seconds == 0 && d.nanos < 0 {
			b.WriteByte('-')
		}
		b.WriteString(strconv.FormatInt(seconds, 10))
		if d.nanos != 0 {
			b.WriteByte('.')
			b.WriteString(fractionString(d.nanos))
		}
		b.WriteByte('S')
	}
	return b.String()
}

// fractionString renders |nanos| as nine digits without trailing zeros.
func fractionString(nanos int32) string {
	if nanos < 0 {
		nanos = -nanos
	}
	s := strconv.FormatInt(int64(nanos), 10)
	s = strings.Repeat("0", 9-len(s)) + s
	return strings.TrimRight(s, "0")
}
