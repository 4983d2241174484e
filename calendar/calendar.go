// Package calendar converts between proleptic Gregorian dates and epoch days.
//
// An epoch day counts days from 1970-01-01 (day 0). Dates before the epoch,
// including year 0 and negative years, have negative epoch days. All year
// arithmetic uses floor division so that negative years follow the same
// leap cycle as positive ones.
package calendar

import (
	"github.com/roach88/almanac/calerr"
	"github.com/roach88/almanac/internal/exact"
)

// Supported range.
const (
	MinYear = -999_999_999
	MaxYear = 999_999_999

	// MinEpochDay is the epoch day of -999999999-01-01.
	MinEpochDay int64 = -365_243_219_162
	// MaxEpochDay is the epoch day of +999999999-12-31.
	MaxEpochDay int64 = 365_241_780_471
)

const (
	daysPer400Years = 146_097
	// Days from 0000-01-01 to 1970-01-01.
	daysZeroTo1970 = 719_528
	// Days from 0000-01-01 to 0000-03-01 (year 0 is a leap year).
	daysJanToMarch = 60
)

// IsLeapYear reports whether year has 366 days.
func IsLeapYear(year int64) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// LengthOfYear returns 365 or 366.
func LengthOfYear(year int64) int {
	if IsLeapYear(year) {
		return 366
	}
	return 365
}

// LastDayOfMonth returns the number of days in month of year.
func LastDayOfMonth(year int64, month Month) int {
	return month.LengthIn(IsLeapYear(year))
}

// IsValidYear reports whether year is within [MinYear, MaxYear].
func IsValidYear(year int64) bool {
	return year >= MinYear && year <= MaxYear
}

// ValidateDate checks that (year, month, day) names a date in the supported range.
func ValidateDate(year int64, month Month, day int) error {
	const op = "calendar.ValidateDate"
	if !IsValidYear(year) {
		return calerr.NewInvalidDate(op, "year %d is outside [%d, %d]", year, MinYear, MaxYear)
	}
	if !month.IsValid() {
		return calerr.NewInvalidDate(op, "month %d is outside [1, 12]", int(month))
	}
	if last := LastDayOfMonth(year, month); day < 1 || day > last {
		return calerr.NewInvalidDate(op, "day %d is invalid for %s %d", day, month, year)
	}
	return nil
}

// CheckEpochDay returns an overflow error if epochDay is outside the supported range.
func CheckEpochDay(op string, epochDay int64) error {
	if epochDay < MinEpochDay || epochDay > MaxEpochDay {
		return calerr.NewOverflow(op)
	}
	return nil
}

// leapDaysBefore counts leap days in years [0, year) for year >= 0 and the
// negative count in [year, 0) otherwise.
func leapDaysBefore(year int64) int64 {
	return exact.FloorDiv(year+3, 4) - exact.FloorDiv(year+99, 100) + exact.FloorDiv(year+399, 400)
}

// DayOfYear returns the 1-based ordinal of (month, day) within year.
func DayOfYear(year int64, month Month, day int) int {
	return month.FirstDayOfYearIn(IsLeapYear(year)) + day - 1
}

// DateToEpochDay returns the epoch day of a valid date. The caller is
// responsible for validation; see ValidateDate.
func DateToEpochDay(year int64, month Month, day int) int64 {
	days := 365*year + leapDaysBefore(year)
	days += int64(DayOfYear(year, month, day) - 1)
	return days - daysZeroTo1970
}

// EpochDayToDate returns the date of epochDay.
//
// The computation shifts the count so that 0000-03-01 is day zero, which puts
// the leap day at the end of each shifted year. The 400-year cycle is taken
// with floor division; the year-of-cycle estimate is off by at most one.
func EpochDayToDate(epochDay int64) (year int64, month Month, day int) {
	z := epochDay + daysZeroTo1970 - daysJanToMarch
	cycles := exact.FloorDiv(z, daysPer400Years)
	z -= cycles * daysPer400Years

	yearOfCycle := (400*z + 591) / daysPer400Years
	dayOfYear := z - daysBeforeShiftedYear(yearOfCycle)
	if dayOfYear < 0 {
		yearOfCycle--
		dayOfYear = z - daysBeforeShiftedYear(yearOfCycle)
	}

	marchMonth0 := (dayOfYear*5 + 2) / 153
	month = Month((marchMonth0+2)%12 + 1)
	day = int(dayOfYear-(marchMonth0*306+5)/10) + 1
	year = cycles*400 + yearOfCycle + marchMonth0/10
	return year, month, day
}

func daysBeforeShiftedYear(y int64) int64 {
	return 365*y + y/4 - y/100 + y/400
}

// DayOfWeekOf returns the day of week of epochDay. 1970-01-01 was a Thursday.
func DayOfWeekOf(epochDay int64) DayOfWeek {
	return DayOfWeek(exact.FloorMod(epochDay+3, 7) + 1)
}
