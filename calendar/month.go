package calendar

import "fmt"

// Month is a month of the year, January = 1.
type Month int

const (
	January Month = 1 + iota
	February
	March
	April
	May
	June
	July
	August
	September
	October
	November
	December
)

var monthNames = [...]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

var monthLengths = [...]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// Days before the first of each month in a common year.
var daysBeforeMonth = [...]int{0, 31, 59, 90, 120, 151, 181, 212, 243, 273, 304, 334}

// IsValid reports whether m is in [January, December].
func (m Month) IsValid() bool { return m >= January && m <= December }

// String returns the English month name.
func (m Month) String() string {
	if !m.IsValid() {
		return fmt.Sprintf("%%!Month(%d)", int(m))
	}
	return monthNames[m-1]
}

// LengthIn returns the number of days in m, given whether the year is a leap year.
func (m Month) LengthIn(leap bool) int {
	if m == February && leap {
		return 29
	}
	return monthLengths[m-1]
}

// FirstDayOfYearIn returns the day-of-year of the first of m.
func (m Month) FirstDayOfYearIn(leap bool) int {
	d := daysBeforeMonth[m-1] + 1
	if leap && m > February {
		d++
	}
	return d
}

// Plus returns the month n months after m, wrapping around December.
func (m Month) Plus(n int) Month {
	return Month(((int(m)-1+n%12)+12)%12 + 1)
}

// MonthOfDayOfYear returns the month containing day-of-year doy.
func MonthOfDayOfYear(doy int, leap bool) Month {
	m := December
	for m > January && m.FirstDayOfYearIn(leap) > doy {
		m--
	}
	return m
}

// DayOfWeek is a day of the ISO week, Monday = 1.
type DayOfWeek int

const (
	Monday DayOfWeek = 1 + iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var dayNames = [...]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// IsValid reports whether d is in [Monday, Sunday].
func (d DayOfWeek) IsValid() bool { return d >= Monday && d <= Sunday }

// String returns the English day name.
func (d DayOfWeek) String() string {
	if !d.IsValid() {
		return fmt.Sprintf("%%!DayOfWeek(%d)", int(d))
	}
	return dayNames[d-1]
}

// Plus returns the day n days after d.
func (d DayOfWeek) Plus(n int) DayOfWeek {
	return DayOfWeek(((int(d)-1+n%7)+7)%7 + 1)
}
