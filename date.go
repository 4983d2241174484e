package almanac

import (
	"cmp"

	"github.com/roach88/almanac/calendar"
	"github.com/roach88/almanac/calerr"
	"github.com/roach88/almanac/internal/exact"
	"github.com/roach88/almanac/measures"
)

// Date is a date in the proleptic Gregorian calendar, without a time of day
// or a time zone.
//
// Dates are comparable with == and usable as map keys. The zero Date is not
// a valid date; construct dates with NewDate, DateFromEpochDay or ParseDate.
// Arithmetic on the zero Date reports InvalidDate, and its calendar
// accessors (EpochDay, DayOfWeek, DayOfYear, LengthOfMonth) panic.
type Date struct {
	year  int32
	month calendar.Month
	day   int8
}

var (
	// MinDate is the earliest supported date, -999999999-01-01.
	MinDate = Date{year: calendar.MinYear, month: calendar.January, day: 1}
	// MaxDate is the latest supported date, +999999999-12-31.
	MaxDate = Date{year: calendar.MaxYear, month: calendar.December, day: 31}
)

// NewDate returns the date year-month-day, or an InvalidDate error if it
// does not exist.
func NewDate(year int, month calendar.Month, day int) (Date, error) {
	if err := calendar.ValidateDate(int64(year), month, day); err != nil {
		return Date{}, err
	}
	return Date{year: int32(year), month: month, day: int8(day)}, nil
}

// MustDate is like NewDate but panics on an invalid date. Use it only with
// values already known to be valid.
func MustDate(year int, month calendar.Month, day int) Date {
	d, err := NewDate(year, month, day)
	if err != nil {
		panic(err)
	}
	return d
}

// DateFromEpochDay returns the date epochDay days after 1970-01-01.
func DateFromEpochDay(epochDay int64) (Date, error) {
	if err := calendar.CheckEpochDay("DateFromEpochDay", epochDay); err != nil {
		return Date{}, err
	}
	return fromEpochDay(epochDay), nil
}

// fromEpochDay skips the range check; epochDay must be within range.
func fromEpochDay(epochDay int64) Date {
	y, m, d := calendar.EpochDayToDate(epochDay)
	return Date{year: int32(y), month: m, day: int8(d)}
}

// DateOfYearDay returns the date of the 1-based day-of-year in year.
func DateOfYearDay(year, dayOfYear int) (Date, error) {
	if !calendar.IsValidYear(int64(year)) {
		return Date{}, calerr.NewInvalidDate("DateOfYearDay", "year %d is out of range", year)
	}
	leap := calendar.IsLeapYear(int64(year))
	if dayOfYear < 1 || dayOfYear > calendar.LengthOfYear(int64(year)) {
		return Date{}, calerr.NewInvalidDate("DateOfYearDay", "day-of-year %d is invalid for %d", dayOfYear, year)
	}
	m := calendar.MonthOfDayOfYear(dayOfYear, leap)
	return Date{year: int32(year), month: m, day: int8(dayOfYear - m.FirstDayOfYearIn(leap) + 1)}, nil
}

// IsValid reports whether d was built by a constructor. The zero Date is invalid.
func (d Date) IsValid() bool { return d.day != 0 }

// checkValid rejects the zero Date before arithmetic reaches the calendar
// tables.
func (d Date) checkValid(op string) error {
	if !d.IsValid() {
		return calerr.NewInvalidDate(op, "zero Date")
	}
	return nil
}

// Year returns the proleptic year; 0 is 1 BC.
func (d Date) Year() int { return int(d.year) }

// Month returns the month of the year.
func (d Date) Month() calendar.Month { return d.month }

// Day returns the day of the month, starting at 1.
func (d Date) Day() int { return int(d.day) }

// IsLeapYear reports whether d falls in a leap year.
func (d Date) IsLeapYear() bool { return calendar.IsLeapYear(int64(d.year)) }

// LengthOfMonth returns the number of days in d's month.
func (d Date) LengthOfMonth() int { return calendar.LastDayOfMonth(int64(d.year), d.month) }

// LengthOfYear returns 365 or 366.
func (d Date) LengthOfYear() int { return calendar.LengthOfYear(int64(d.year)) }

// DayOfYear returns the 1-based day of the year.
func (d Date) DayOfYear() int { return calendar.DayOfYear(int64(d.year), d.month, int(d.day)) }

// DayOfWeek returns the ISO day of the week.
func (d Date) DayOfWeek() calendar.DayOfWeek { return calendar.DayOfWeekOf(d.EpochDay()) }

// EpochDay returns the number of days since 1970-01-01.
func (d Date) EpochDay() int64 {
	return calendar.DateToEpochDay(int64(d.year), d.month, int(d.day))
}

// DaysSinceEpoch is EpochDay as a typed measure.
func (d Date) DaysSinceEpoch() measures.LongDays { return measures.LongDays(d.EpochDay()) }

// monthIndex is the proleptic month count year*12 + (month-1).
func (d Date) monthIndex() int64 { return int64(d.year)*12 + int64(d.month) - 1 }

// Compare returns -1, 0 or +1 ordering d against o chronologically.
func (d Date) Compare(o Date) int {
	if c := cmp.Compare(d.year, o.year); c != 0 {
		return c
	}
	if c := cmp.Compare(d.month, o.month); c != 0 {
		return c
	}
	return cmp.Compare(d.day, o.day)
}

// Before reports whether d is earlier than o.
func (d Date) Before(o Date) bool { return d.Compare(o) < 0 }

// After reports whether d is later than o.
func (d Date) After(o Date) bool { return d.Compare(o) > 0 }

// PlusDays returns d shifted by days.
func (d Date) PlusDays(days measures.LongDays) (Date, error) {
	const op = "Date.PlusDays"
	if err := d.checkValid(op); err != nil {
		return Date{}, err
	}
	ed, ok := exact.Add(d.EpochDay(), days.Value())
	if !ok {
		return Date{}, calerr.NewOverflow(op)
	}
	if err := calendar.CheckEpochDay(op, ed); err != nil {
		return Date{}, err
	}
	return fromEpochDay(ed), nil
}

// MinusDays returns d shifted back by days.
func (d Date) MinusDays(days measures.LongDays) (Date, error) {
	const op = "Date.MinusDays"
	if err := d.checkValid(op); err != nil {
		return Date{}, err
	}
	ed, ok := exact.Sub(d.EpochDay(), days.Value())
	if !ok {
		return Date{}, calerr.NewOverflow(op)
	}
	if err := calendar.CheckEpochDay(op, ed); err != nil {
		return Date{}, err
	}
	return fromEpochDay(ed), nil
}

// PlusWeeks returns d shifted by weeks.
func (d Date) PlusWeeks(weeks measures.LongWeeks) (Date, error) {
	days, err := measures.Convert[measures.Day](weeks)
	if err != nil {
		return Date{}, err
	}
	return d.PlusDays(days)
}

// MinusWeeks returns d shifted back by weeks.
func (d Date) MinusWeeks(weeks measures.LongWeeks) (Date, error) {
	days, err := measures.Convert[measures.Day](weeks)
	if err != nil {
		return Date{}, err
	}
	return d.MinusDays(days)
}

// PlusMonths returns d shifted by months. The day is clamped to the length of
// the resulting month, so 2019-01-31 plus one month is 2019-02-28.
func (d Date) PlusMonths(months measures.LongMonths) (Date, error) {
	const op = "Date.PlusMonths"
	if err := d.checkValid(op); err != nil {
		return Date{}, err
	}
	idx, ok := exact.Add(d.monthIndex(), months.Value())
	if !ok {
		return Date{}, calerr.NewOverflow(op)
	}
	return d.atMonthIndex(op, idx)
}

// MinusMonths returns d shifted back by months, clamping the day.
func (d Date) MinusMonths(months measures.LongMonths) (Date, error) {
	const op = "Date.MinusMonths"
	if err := d.checkValid(op); err != nil {
		return Date{}, err
	}
	idx, ok := exact.Sub(d.monthIndex(), months.Value())
	if !ok {
		return Date{}, calerr.NewOverflow(op)
	}
	return d.atMonthIndex(op, idx)
}

func (d Date) atMonthIndex(op string, idx int64) (Date, error) {
	year := exact.FloorDiv(idx, 12)
	if !calendar.IsValidYear(year) {
		return Date{}, calerr.NewOverflow(op)
	}
	return clamped(year, calendar.Month(exact.FloorMod(idx, 12)+1), int(d.day)), nil
}

// PlusYears returns d shifted by years. February 29 becomes February 28 in a
// common year.
func (d Date) PlusYears(years measures.LongYears) (Date, error) {
	const op = "Date.PlusYears"
	if err := d.checkValid(op); err != nil {
		return Date{}, err
	}
	year, ok := exact.Add(int64(d.year), years.Value())
	if !ok || !calendar.IsValidYear(year) {
		return Date{}, calerr.NewOverflow(op)
	}
	return clamped(year, d.month, int(d.day)), nil
}

// MinusYears returns d shifted back by years, clamping February 29.
func (d Date) MinusYears(years measures.LongYears) (Date, error) {
	const op = "Date.MinusYears"
	if err := d.checkValid(op); err != nil {
		return Date{}, err
	}
	year, ok := exact.Sub(int64(d.year), years.Value())
	if !ok || !calendar.IsValidYear(year) {
		return Date{}, calerr.NewOverflow(op)
	}
	return clamped(year, d.month, int(d.day)), nil
}

func clamped(year int64, month calendar.Month, day int) Date {
	day = min(day, calendar.LastDayOfMonth(year, month))
	return Date{year: int32(year), month: month, day: int8(day)}
}

// PlusPeriod returns d shifted by p. The years and months of p are applied
// together as a single month shift, then the days.
func (d Date) PlusPeriod(p Period) (Date, error) {
	shifted, err := d.PlusMonths(p.TotalMonths())
	if err != nil {
		return Date{}, err
	}
	return shifted.PlusDays(p.Days().Long())
}

// MinusPeriod returns d shifted back by p.
func (d Date) MinusPeriod(p Period) (Date, error) {
	shifted, err := d.MinusMonths(p.TotalMonths())
	if err != nil {
		return Date{}, err
	}
	return shifted.MinusDays(p.Days().Long())
}

// WithDay returns d with the day-of-month replaced.
func (d Date) WithDay(day int) (Date, error) {
	return NewDate(int(d.year), d.month, day)
}

// StartOfMonth returns the first day of d's month. The zero Date is
// returned unchanged.
func (d Date) StartOfMonth() Date {
	if !d.IsValid() {
		return d
	}
	return Date{year: d.year, month: d.month, day: 1}
}

// EndOfMonth returns the last day of d's month. The zero Date is returned
// unchanged.
func (d Date) EndOfMonth() Date {
	if !d.IsValid() {
		return d
	}
	return Date{year: d.year, month: d.month, day: int8(d.LengthOfMonth())}
}
