// Package measures provides strongly typed duration amounts.
//
// An amount is an Int[U] (32-bit) or Long[U] (64-bit) where U is a unit
// marker type such as Hour or Day. Amounts of different units are distinct
// Go types, so passing minutes where hours are expected does not compile.
// Cross-unit arithmetic goes through the explicit generic functions in
// convert.go, which detect overflow instead of wrapping.
package measures

// Kind identifies a unit at runtime.
type Kind uint8

const (
	Nanoseconds Kind = iota + 1
	Microseconds
	Milliseconds
	Seconds
	Minutes
	Hours
	Days
	Weeks
	Months
	Years
)

var kindNames = [...]string{
	Nanoseconds:  "nanoseconds",
	Microseconds: "microseconds",
	Milliseconds: "milliseconds",
	Seconds:      "seconds",
	Minutes:      "minutes",
	Hours:        "hours",
	Days:         "days",
	Weeks:        "weeks",
	Months:       "months",
	Years:        "years",
}

var kindNanos = [...]int64{
	Nanoseconds:  1,
	Microseconds: 1_000,
	Milliseconds: 1_000_000,
	Seconds:      1_000_000_000,
	Minutes:      60_000_000_000,
	Hours:        3_600_000_000_000,
	Days:         86_400_000_000_000,
	Weeks:        604_800_000_000_000,
}

// String returns the lowercase plural unit name.
func (k Kind) String() string {
	if k == 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// IsFixed reports whether k has a fixed length in nanoseconds.
func (k Kind) IsFixed() bool { return k >= Nanoseconds && k <= Weeks }

// IsCalendar reports whether k is a calendar unit (months or years).
func (k Kind) IsCalendar() bool { return k == Months || k == Years }

// Nanos returns the length of one unit in nanoseconds, or 0 for calendar units.
func (k Kind) Nanos() int64 {
	if !k.IsFixed() {
		return 0
	}
	return kindNanos[k]
}

// Months returns the length of one unit in months, or 0 for fixed units.
func (k Kind) Months() int64 {
	switch k {
	case Months:
		return 1
	case Years:
		return 12
	}
	return 0
}

// Finer reports whether k is a strictly smaller unit than o.
func (k Kind) Finer(o Kind) bool { return k < o }

// ParseKind returns the Kind named s ("hours", "days", ...).
func ParseKind(s string) (Kind, bool) {
	for k := Nanoseconds; k <= Years; k++ {
		if kindNames[k] == s {
			return k, true
		}
	}
	return 0, false
}

// Unit is implemented by the zero-size unit marker types.
type Unit interface {
	Kind() Kind
}

// Fixed is satisfied by units with a fixed length.
type Fixed interface {
	Nanosecond | Microsecond | Millisecond | Second | Minute | Hour | Day | Week
	Unit
}

// Calendar is satisfied by month-based units.
type Calendar interface {
	Month | Year
	Unit
}

// Unit markers.
type (
	Nanosecond  struct{}
	Microsecond struct{}
	Millisecond struct{}
	Second      struct{}
	Minute      struct{}
	Hour        struct{}
	Day         struct{}
	Week        struct{}
	Month       struct{}
	Year        struct{}
)

// Kind identifies each unit marker at run time.
func (Nanosecond) Kind() Kind  { return Nanoseconds }
func (Microsecond) Kind() Kind { return Microseconds }
func (Millisecond) Kind() Kind { return Milliseconds }
func (Second) Kind() Kind      { return Seconds }
func (Minute) Kind() Kind      { return Minutes }
func (Hour) Kind() Kind        { return Hours }
func (Day) Kind() Kind         { return Days }
func (Week) Kind() Kind        { return Weeks }
func (Month) Kind() Kind       { return Months }
func (Year) Kind() Kind        { return Years }

// KindOf returns the Kind of unit U.
func KindOf[U Unit]() Kind {
	var u U
	return u.Kind()
}
