package almanac

import (
	"iter"
	"math/rand/v2"
	"strings"

	"github.com/roach88/almanac/calerr"
	"github.com/roach88/almanac/measures"
)

// DateRange is an inclusive range of dates with a step of one day.
//
// MinDate as the start or MaxDate as the end mark that side as unbounded.
// A range whose end is before its start is empty; EmptyDateRange is the
// canonical empty range.
type DateRange struct {
	start Date
	end   Date
}

var (
	// EmptyDateRange is the canonical empty range, 1970-01-02..1970-01-01.
	EmptyDateRange = DateRange{start: MustDate(1970, 1, 2), end: MustDate(1970, 1, 1)}
	// UnboundedDateRange contains every supported date.
	UnboundedDateRange = DateRange{start: MinDate, end: MaxDate}
)

// NewDateRange returns the dates from start through endInclusive.
func NewDateRange(start, endInclusive Date) DateRange {
	return DateRange{start: start, end: endInclusive}
}

// Until returns the dates from start up to, but excluding, endExclusive.
func Until(start, endExclusive Date) (DateRange, error) {
	end, err := endExclusive.MinusDays(1)
	if err != nil {
		return DateRange{}, err
	}
	return DateRange{start: start, end: end}, nil
}

// Start returns the first date, MinDate when the start is unbounded.
func (r DateRange) Start() Date { return r.start }

// EndInclusive returns the last date, MaxDate when the end is unbounded.
func (r DateRange) EndInclusive() Date { return r.end }

// HasUnboundedStart reports whether the range reaches back to MinDate.
func (r DateRange) HasUnboundedStart() bool { return r.start == MinDate }

// HasUnboundedEnd reports whether the range reaches forward to MaxDate.
func (r DateRange) HasUnboundedEnd() bool { return r.end == MaxDate }

// HasBoundedStart and HasBoundedEnd are the negations of the above.
func (r DateRange) HasBoundedStart() bool { return !r.HasUnboundedStart() }
func (r DateRange) HasBoundedEnd() bool   { return !r.HasUnboundedEnd() }

// IsBounded reports whether both sides are bounded.
func (r DateRange) IsBounded() bool { return r.HasBoundedStart() && r.HasBoundedEnd() }

// IsUnbounded reports whether both sides are unbounded.
func (r DateRange) IsUnbounded() bool { return r.HasUnboundedStart() && r.HasUnboundedEnd() }

// IsEmpty reports whether the range contains no dates. A range with a zero
// Date on either side, including the zero DateRange, is empty.
func (r DateRange) IsEmpty() bool {
	if !r.start.IsValid() || !r.end.IsValid() {
		return true
	}
	return r.start.After(r.end) || r.end == MinDate || r.start == MaxDate
}

// Contains reports whether d is within the range.
func (r DateRange) Contains(d Date) bool {
	return !r.IsEmpty() && !d.Before(r.start) && !d.After(r.end)
}

// Equal reports whether r and o contain the same dates. All empty ranges are
// equal.
func (r DateRange) Equal(o DateRange) bool {
	if r.IsEmpty() || o.IsEmpty() {
		return r.IsEmpty() && o.IsEmpty()
	}
	return r == o
}

// Progression returns the range as a one-day progression. A range with a
// zero Date side becomes an empty progression.
func (r DateRange) Progression() DateDayProgression {
	if !r.start.IsValid() || !r.end.IsValid() {
		return dayProgression(1, 0, 1)
	}
	return dayProgression(r.start.EpochDay(), r.end.EpochDay(), 1)
}

// All yields every date in the range.
func (r DateRange) All() iter.Seq[Date] { return r.Progression().All() }

// Reversed returns the dates from the end down to the start.
func (r DateRange) Reversed() DateDayProgression { return r.Progression().Reversed() }

// Step returns the dates of r, step days apart.
func (r DateRange) Step(step measures.IntDays) (DateDayProgression, error) {
	return r.Progression().StepBy(step)
}

// StepMonths returns the dates of r, step months apart.
func (r DateRange) StepMonths(step measures.IntMonths) (DateMonthProgression, error) {
	return r.Progression().StepMonths(step)
}

// StepYears returns the dates of r, step years apart.
func (r DateRange) StepYears(step measures.IntYears) (DateMonthProgression, error) {
	return r.Progression().StepYears(step)
}

func (r DateRange) requireBounded(op string) error {
	if !r.IsBounded() {
		return calerr.NewInvalidArgument(op, "range is unbounded")
	}
	return nil
}

// endExclusive is only valid for bounded ranges.
func (r DateRange) endExclusive() Date {
	return fromEpochDay(r.end.EpochDay() + 1)
}

// LengthInDays returns the number of dates in r.
func (r DateRange) LengthInDays() (measures.LongDays, error) {
	if r.IsEmpty() {
		return 0, nil
	}
	if err := r.requireBounded("DateRange.LengthInDays"); err != nil {
		return 0, err
	}
	return DaysBetween(r.start, r.endExclusive()), nil
}

// LengthInWeeks returns the number of whole weeks in r.
func (r DateRange) LengthInWeeks() (measures.LongWeeks, error) {
	if r.IsEmpty() {
		return 0, nil
	}
	if err := r.requireBounded("DateRange.LengthInWeeks"); err != nil {
		return 0, err
	}
	return WeeksBetween(r.start, r.endExclusive()), nil
}

// LengthInMonths returns the number of whole months in r.
func (r DateRange) LengthInMonths() (measures.LongMonths, error) {
	if r.IsEmpty() {
		return 0, nil
	}
	if err := r.requireBounded("DateRange.LengthInMonths"); err != nil {
		return 0, err
	}
	return MonthsBetween(r.start, r.endExclusive()), nil
}

// LengthInYears returns the number of whole years in r.
func (r DateRange) LengthInYears() (measures.LongYears, error) {
	if r.IsEmpty() {
		return 0, nil
	}
	if err := r.requireBounded("DateRange.LengthInYears"); err != nil {
		return 0, err
	}
	return YearsBetween(r.start, r.endExclusive()), nil
}

// AsPeriod returns the period spanned by r, counting the end date in full.
func (r DateRange) AsPeriod() (Period, error) {
	if r.IsEmpty() {
		return ZeroPeriod, nil
	}
	if err := r.requireBounded("DateRange.AsPeriod"); err != nil {
		return Period{}, err
	}
	return PeriodBetween(r.start, r.endExclusive()), nil
}

// Random returns a uniformly chosen date in r. A nil rng uses the global
// source.
func (r DateRange) Random(rng *rand.Rand) (Date, error) {
	if r.IsEmpty() {
		return Date{}, calerr.NewInvalidArgument("DateRange.Random", "range is empty")
	}
	first := r.start.EpochDay()
	n := r.end.EpochDay() - first + 1
	var offset int64
	if rng != nil {
		offset = rng.Int64N(n)
	} else {
		offset = rand.Int64N(n)
	}
	return fromEpochDay(first + offset), nil
}

// String returns the ISO-8601 interval, e.g. "2019-01-01/2019-01-31".
// Unbounded sides are written as "..". The empty range is "".
func (r DateRange) String() string {
	if r.IsEmpty() {
		return ""
	}
	var b strings.Builder
	if r.HasBoundedStart() {
		b.WriteString(r.start.String())
	} else {
		b.WriteString("..")
	}
	b.WriteByte('/')
	if r.HasBoundedEnd() {
		b.WriteString(r.end.String())
	} else {
		b.WriteString("..")
	}
	return b.String()
}

// ParseDateRange parses the output of DateRange.String. Both "" and "/"
// denote the empty range.
func ParseDateRange(text string) (DateRange, error) {
	const op = "ParseDateRange"
	if text == "" || text == "/" {
		return EmptyDateRange, nil
	}
	startText, endText, ok := strings.Cut(text, "/")
	if !ok {
		return DateRange{}, calerr.NewParse(op, text, "expected '/'")
	}
	if startText == "" || endText == "" {
		return DateRange{}, calerr.NewParse(op, text, "ranges with an unknown start or end are not supported")
	}
	start, err := rangeSide(op, text, startText, MinDate)
	if err != nil {
		return DateRange{}, err
	}
	end, err := rangeSide(op, text, endText, MaxDate)
	if err != nil {
		return DateRange{}, err
	}
	return DateRange{start: start, end: end}, nil
}

func rangeSide(op, whole, side string, unbounded Date) (Date, error) {
	if side == ".." {
		return unbounded, nil
	}
	d, err := ParseDate(side)
	if err != nil {
		return Date{}, calerr.NewParse(op, whole, "invalid date "+side)
	}
	return d, nil
}

// MarshalText implements encoding.TextMarshaler with the ISO interval form.
func (r DateRange) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *DateRange) UnmarshalText(text []byte) error {
	v, err := ParseDateRange(string(text))
	if err != nil {
		return err
	}
	*r = v
	return nil
}
