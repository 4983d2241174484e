package almanac

import (
	"github.com/roach88/almanac/calerr"
	"github.com/roach88/almanac/internal/exact"
	"github.com/roach88/almanac/measures"
)

// Period is a calendar-based span of years, months and days.
//
// Unlike Duration, a Period has no fixed length: one month may be 28 to 31
// days. The three components are independent and may have different signs
// until the Period is normalized.
type Period struct {
	years  int32
	months int32
	days   int32
}

// ZeroPeriod is the empty Period, "P0D".
var ZeroPeriod = Period{}

// PeriodOf returns a Period with the given components.
func PeriodOf(years measures.IntYears, months measures.IntMonths, days measures.IntDays) Period {
	return Period{years: years.Value(), months: months.Value(), days: days.Value()}
}

// PeriodOfYears returns a Period of only years.
func PeriodOfYears(years measures.IntYears) Period { return Period{years: years.Value()} }

// PeriodOfMonths returns a Period of only months.
func PeriodOfMonths(months measures.IntMonths) Period { return Period{months: months.Value()} }

// PeriodOfDays returns a Period of only days.
func PeriodOfDays(days measures.IntDays) Period { return Period{days: days.Value()} }

// PeriodOfWeeks returns a Period of 7*weeks days.
func PeriodOfWeeks(weeks measures.IntWeeks) (Period, error) {
	days, err := measures.ConvertInt[measures.Day](weeks)
	if err != nil {
		return Period{}, err
	}
	return PeriodOfDays(days), nil
}

// Years returns the years component as written, not normalized.
func (p Period) Years() measures.IntYears { return measures.IntYears(p.years) }

// Months returns the months component as written, not normalized.
func (p Period) Months() measures.IntMonths { return measures.IntMonths(p.months) }

// Days returns the days component.
func (p Period) Days() measures.IntDays { return measures.IntDays(p.days) }

// TotalMonths returns years*12 + months. It cannot overflow.
func (p Period) TotalMonths() measures.LongMonths {
	return measures.LongMonths(int64(p.years)*12 + int64(p.months))
}

// IsZero reports whether all components are zero.
func (p Period) IsZero() bool { return p == ZeroPeriod }

// IsNegative reports whether any component is negative.
func (p Period) IsNegative() bool { return p.years < 0 || p.months < 0 || p.days < 0 }

// Neg negates every component.
func (p Period) Neg() (Period, error) {
	y, ok1 := exact.Neg(p.years)
	m, ok2 := exact.Neg(p.months)
	d, ok3 := exact.Neg(p.days)
	if !ok1 || !ok2 || !ok3 {
		return Period{}, calerr.NewOverflow("Period.Neg")
	}
	return Period{years: y, months: m, days: d}, nil
}

// Plus adds o componentwise. Months are not folded into years.
func (p Period) Plus(o Period) (Period, error) {
	y, ok1 := exact.Add(p.years, o.years)
	m, ok2 := exact.Add(p.months, o.months)
	d, ok3 := exact.Add(p.days, o.days)
	if !ok1 || !ok2 || !ok3 {
		return Period{}, calerr.NewOverflow("Period.Plus")
	}
	return Period{years: y, months: m, days: d}, nil
}

// Minus subtracts o componentwise.
func (p Period) Minus(o Period) (Period, error) {
	y, ok1 := exact.Sub(p.years, o.years)
	m, ok2 := exact.Sub(p.months, o.months)
	d, ok3 := exact.Sub(p.days, o.days)
	if !ok1 || !ok2 || !ok3 {
		return Period{}, calerr.NewOverflow("Period.Minus")
	}
	return Period{years: y, months: m, days: d}, nil
}

// PlusYears adds years to the years component.
func (p Period) PlusYears(years measures.IntYears) (Period, error) {
	return p.Plus(PeriodOfYears(years))
}

// PlusMonths adds months to the months component without normalizing.
func (p Period) PlusMonths(months measures.IntMonths) (Period, error) {
	return p.Plus(PeriodOfMonths(months))
}

// PlusDays adds days to the days component.
func (p Period) PlusDays(days measures.IntDays) (Period, error) {
	return p.Plus(PeriodOfDays(days))
}

// Times multiplies every component by scalar.
func (p Period) Times(scalar int32) (Period, error) {
	y, ok1 := exact.Mul(p.years, scalar)
	m, ok2 := exact.Mul(p.months, scalar)
	d, ok3 := exact.Mul(p.days, scalar)
	if !ok1 || !ok2 || !ok3 {
		return Period{}, calerr.NewOverflow("Period.Times")
	}
	return Period{years: y, months: m, days: d}, nil
}

// Normalized folds months into years so that |months| < 12 and months has
// the sign of the total. Days are left untouched.
//
//	P1Y14M3D -> P2Y2M3D
//	P1Y-14M  -> P-2M
func (p Period) Normalized() (Period, error) {
	total := p.TotalMonths().Value()
	y, ok := exact.Narrow(total / 12)
	if !ok {
		return Period{}, calerr.NewOverflow("Period.Normalized")
	}
	return Period{years: y, months: int32(total % 12), days: p.days}, nil
}

// PeriodBetween returns the period from start up to end. Adding the result to
// start with PlusPeriod yields end.
//
// Whole months are counted first, one fewer when end's day-of-month has not
// yet been reached in the direction of travel. The remaining days are the
// distance from start plus those months to end.
func PeriodBetween(start, end Date) Period {
	months := monthsBetween(start, end)
	// anchor lies between start and end, so it is always in range.
	anchor, _ := start.PlusMonths(measures.LongMonths(months))
	days := end.EpochDay() - anchor.EpochDay()
	return Period{years: int32(months / 12), months: int32(months % 12), days: int32(days)}
}

// DaysBetween returns the number of days from start to end.
func DaysBetween(start, end Date) measures.LongDays {
	return measures.LongDays(end.EpochDay() - start.EpochDay())
}

// WeeksBetween returns the number of whole weeks from start to end.
func WeeksBetween(start, end Date) measures.LongWeeks {
	return measures.LongWeeks(DaysBetween(start, end) / 7)
}

// MonthsBetween returns the number of whole months from start to end. A month
// counts only once end's day-of-month reaches start's.
func MonthsBetween(start, end Date) measures.LongMonths {
	return measures.LongMonths(monthsBetween(start, end))
}

// YearsBetween returns the number of whole years from start to end.
func YearsBetween(start, end Date) measures.LongYears {
	return measures.LongYears(monthsBetween(start, end) / 12)
}

func monthsBetween(start, end Date) int64 {
	packedStart := start.monthIndex()*32 + int64(start.day)
	packedEnd := end.monthIndex()*32 + int64(end.day)
	return (packedEnd - packedStart) / 32
}
