package almanac

import (
	"iter"
	"math"

	"github.com/roach88/almanac/calerr"
	"github.com/roach88/almanac/measures"
)

func checkEnds(op string, start, end Date) error {
	if !start.IsValid() || !end.IsValid() {
		return calerr.NewInvalidDate(op, "progression ends must be valid dates")
	}
	return nil
}

func checkStep(op string, step int32) error {
	switch step {
	case 0:
		return calerr.NewInvalidArgument(op, "step must be nonzero")
	case math.MinInt32:
		return calerr.NewInvalidArgument(op, "step must be greater than %d", math.MinInt32)
	}
	return nil
}

// DateDayProgression is an inclusive sequence of dates a fixed number of
// days apart. The last element is the furthest date reachable from the
// first by whole steps without passing the requested end.
type DateDayProgression struct {
	first int64
	last  int64
	step  measures.IntDays
}

// NewDateDayProgression returns the dates from start toward endInclusive,
// step days apart. A negative step counts down.
func NewDateDayProgression(start, endInclusive Date, step measures.IntDays) (DateDayProgression, error) {
	const op = "NewDateDayProgression"
	if err := checkStep(op, step.Value()); err != nil {
		return DateDayProgression{}, err
	}
	if err := checkEnds(op, start, endInclusive); err != nil {
		return DateDayProgression{}, err
	}
	return dayProgression(start.EpochDay(), endInclusive.EpochDay(), step), nil
}

// dayProgression assumes a valid step.
func dayProgression(first, end int64, step measures.IntDays) DateDayProgression {
	s := int64(step)
	last := end
	switch {
	case s > 0 && first < end:
		last = end - (end-first)%s
	case s < 0 && first > end:
		last = end + (first-end)%(-s)
	}
	return DateDayProgression{first: first, last: last, step: step}
}

// DownTo returns the dates from start down to end, one day apart. It is
// empty when either date is the zero Date.
func DownTo(start, end Date) DateDayProgression {
	if !start.IsValid() || !end.IsValid() {
		return dayProgression(0, 1, -1)
	}
	return dayProgression(start.EpochDay(), end.EpochDay(), -1)
}

// First returns the first element, or the would-be start when empty.
func (p DateDayProgression) First() Date { return fromEpochDay(p.first) }

// Last returns the last element.
func (p DateDayProgression) Last() Date { return fromEpochDay(p.last) }

// Step returns the signed distance between elements.
func (p DateDayProgression) Step() measures.IntDays { return p.step }

// IsEmpty reports whether the progression has no elements. The zero
// DateDayProgression has no step and is empty.
func (p DateDayProgression) IsEmpty() bool {
	switch {
	case p.step == 0:
		return true
	case p.step > 0:
		return p.first > p.last
	}
	return p.first < p.last
}

// Len returns the number of elements.
func (p DateDayProgression) Len() int64 {
	if p.IsEmpty() {
		return 0
	}
	span := p.last - p.first
	if span < 0 {
		span = -span
	}
	s := int64(p.step)
	if s < 0 {
		s = -s
	}
	return span/s + 1
}

// All yields every element in order. It may be ranged over any number of
// times; each pass starts again from First.
func (p DateDayProgression) All() iter.Seq[Date] {
	return func(yield func(Date) bool) {
		if p.IsEmpty() {
			return
		}
		for ed := p.first; ; ed += int64(p.step) {
			if !yield(fromEpochDay(ed)) || ed == p.last {
				return
			}
		}
	}
}

// Reversed returns the same elements in the opposite order.
func (p DateDayProgression) Reversed() DateDayProgression {
	if p.IsEmpty() {
		return DateDayProgression{first: p.last, last: p.first, step: -p.step}
	}
	return dayProgression(p.last, p.first, -p.step)
}

// StepBy returns a progression over the same span with a new step
// magnitude. The direction is kept.
func (p DateDayProgression) StepBy(step measures.IntDays) (DateDayProgression, error) {
	if step <= 0 {
		return DateDayProgression{}, calerr.NewInvalidArgument("DateDayProgression.StepBy", "step must be positive")
	}
	if p.step == 0 {
		return dayProgression(1, 0, step), nil
	}
	if p.step < 0 {
		step = -step
	}
	return dayProgression(p.first, p.last, step), nil
}

// StepMonths returns a progression over the same span, step months apart.
func (p DateDayProgression) StepMonths(step measures.IntMonths) (DateMonthProgression, error) {
	if step <= 0 {
		return DateMonthProgression{}, calerr.NewInvalidArgument("DateDayProgression.StepMonths", "step must be positive")
	}
	if p.step == 0 {
		return DateMonthProgression{step: step, steps: -1}, nil
	}
	if p.step < 0 {
		step = -step
	}
	return NewDateMonthProgression(p.First(), p.Last(), step)
}

// StepYears returns a progression over the same span, step years apart.
func (p DateDayProgression) StepYears(step measures.IntYears) (DateMonthProgression, error) {
	months, err := measures.ConvertCalendarInt[measures.Month](step)
	if err != nil {
		return DateMonthProgression{}, err
	}
	return p.StepMonths(months)
}

// Equal reports whether p and o yield the same elements. All empty
// progressions are equal.
func (p DateDayProgression) Equal(o DateDayProgression) bool {
	if p.IsEmpty() || o.IsEmpty() {
		return p.IsEmpty() && o.IsEmpty()
	}
	return p == o
}

// String returns e.g. "2019-01-21..2019-01-27 step P2D" or
// "2019-01-27 downTo 2019-01-21 step P2D".
func (p DateDayProgression) String() string {
	return progressionString(p.First(), p.Last(), p.step < 0, int64(p.step), measures.Days)
}

func progressionString(first, last Date, down bool, step int64, unit measures.Kind) string {
	if down {
		return first.String() + " downTo " + last.String() + " step " + stepString(-step, unit)
	}
	return first.String() + ".." + last.String() + " step " + stepString(step, unit)
}

func stepString(step int64, unit measures.Kind) string {
	if unit == measures.Months {
		return measures.LongMonths(step).String()
	}
	return measures.LongDays(step).String()
}

// DateMonthProgression is an inclusive sequence of dates a fixed number of
// months apart. Each element is First plus a whole multiple of the step, so
// a day-of-month clamped in a short month is restored in a longer one.
type DateMonthProgression struct {
	first Date
	last  Date
	step  measures.IntMonths
	// steps is the number of steps from first to last; -1 when empty.
	steps int64
}

// NewDateMonthProgression returns the dates from start toward endInclusive,
// step months apart. A negative step counts down.
func NewDateMonthProgression(start, endInclusive Date, step measures.IntMonths) (DateMonthProgression, error) {
	const op = "NewDateMonthProgression"
	if err := checkStep(op, step.Value()); err != nil {
		return DateMonthProgression{}, err
	}
	if err := checkEnds(op, start, endInclusive); err != nil {
		return DateMonthProgression{}, err
	}
	s := int64(step)
	c := start.Compare(endInclusive)
	if (s > 0 && c >= 0) || (s < 0 && c <= 0) {
		p := DateMonthProgression{first: start, last: endInclusive, step: step, steps: -1}
		if c == 0 {
			p.steps = 0
		}
		return p, nil
	}
	between := progressionMonthsBetween(start, endInclusive)
	steps := between / s
	last, err := start.PlusMonths(measures.LongMonths(steps * s))
	if err != nil {
		return DateMonthProgression{}, err
	}
	return DateMonthProgression{first: start, last: last, step: step, steps: steps}, nil
}

// progressionMonthsBetween counts whole months from start to end, comparing
// days of month after clamping start's day to the length of end's month.
func progressionMonthsBetween(start, end Date) int64 {
	months := end.monthIndex() - start.monthIndex()
	startDay := min(start.Day(), end.LengthOfMonth())
	switch c := start.Compare(end); {
	case c > 0 && end.Day() > startDay:
		months++
	case c < 0 && end.Day() < startDay:
		months--
	}
	return months
}

// First returns the first element.
func (p DateMonthProgression) First() Date { return p.first }

// Last returns the last element.
func (p DateMonthProgression) Last() Date { return p.last }

// Step returns the signed number of months between elements.
func (p DateMonthProgression) Step() measures.IntMonths { return p.step }

// IsEmpty reports whether the progression has no elements. The zero
// DateMonthProgression is empty.
func (p DateMonthProgression) IsEmpty() bool { return p.steps < 0 || !p.first.IsValid() }

// Len returns the number of elements.
func (p DateMonthProgression) Len() int64 {
	if p.IsEmpty() {
		return 0
	}
	return p.steps + 1
}

// All yields every element in order.
func (p DateMonthProgression) All() iter.Seq[Date] {
	return func(yield func(Date) bool) {
		if p.IsEmpty() {
			return
		}
		for i := int64(0); i <= p.steps; i++ {
			d, err := p.first.PlusMonths(measures.LongMonths(i * int64(p.step)))
			if err != nil || !yield(d) {
				return
			}
		}
	}
}

// Reversed returns a progression from Last back toward First.
func (p DateMonthProgression) Reversed() DateMonthProgression {
	if p.IsEmpty() {
		return DateMonthProgression{first: p.last, last: p.first, step: -p.step, steps: -1}
	}
	r, _ := NewDateMonthProgression(p.last, p.first, -p.step)
	return r
}

// Equal reports whether p and o yield the same elements.
func (p DateMonthProgression) Equal(o DateMonthProgression) bool {
	if p.IsEmpty() || o.IsEmpty() {
		return p.IsEmpty() && o.IsEmpty()
	}
	return p == o
}

// String returns e.g. "2019-01-31..2019-05-31 step P1M".
func (p DateMonthProgression) String() string {
	return progressionString(p.first, p.last, p.step < 0, int64(p.step), measures.Months)
}
