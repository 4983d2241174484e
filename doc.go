// Package almanac provides calendar dates, exact durations and calendar
// periods with overflow-checked arithmetic.
//
// The value types are:
//   - Date: a proleptic Gregorian year-month-day between MinDate and MaxDate
//   - Duration: elapsed time as seconds plus a nanosecond adjustment
//   - Period: a span of years, months and days with no fixed length
//   - DateRange, DateDayProgression, DateMonthProgression: lazy, restartable
//     sequences of dates
//
// Every value is immutable. Operations that can leave the representable
// range return a *calerr.Error with code ARITHMETIC_OVERFLOW instead of
// wrapping. Every type has a canonical ISO-8601 string form with a matching
// Parse function, and implements encoding.TextMarshaler, driver.Valuer and
// sql.Scanner using that form.
//
// The package never reads the wall clock; see package clock for "today"
// helpers. Unit-typed amounts come from package measures, and the raw
// calendar algorithms from package calendar.
package almanac
