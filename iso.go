package almanac

import (
	"errors"
	"strconv"
	"strings"

	"github.com/roach88/almanac/calendar"
	"github.com/roach88/almanac/calerr"
	"github.com/roach88/almanac/internal/exact"
	"github.com/roach88/almanac/measures"
)

// String returns the ISO-8601 calendar date, e.g. "2019-01-31". Years outside
// 0000..9999 carry a sign: "-0044-03-15", "+10000-01-01".
func (d Date) String() string {
	var b strings.Builder
	y := int64(d.year)
	switch {
	case y < 0 && y > -1000:
		b.WriteByte('-')
		writePadded(&b, -y, 4)
	case y >= 0 && y < 1000:
		writePadded(&b, y, 4)
	case y > 9999:
		b.WriteByte('+')
		b.WriteString(strconv.FormatInt(y, 10))
	default:
		b.WriteString(strconv.FormatInt(y, 10))
	}
	b.WriteByte('-')
	writePadded(&b, int64(d.month), 2)
	b.WriteByte('-')
	writePadded(&b, int64(d.day), 2)
	return b.String()
}

func writePadded(b *strings.Builder, v int64, width int) {
	s := strconv.FormatInt(v, 10)
	for i := len(s); i < width; i++ {
		b.WriteByte('0')
	}
	b.WriteString(s)
}

// String returns the ISO-8601 representation, e.g. "P1Y-2M3D". The zero
// Period is "P0D".
func (p Period) String() string {
	if p.IsZero() {
		return "P0D"
	}
	var b strings.Builder
	b.WriteByte('P')
	for _, c := range []struct {
		v    int32
		unit byte
	}{{p.years, 'Y'}, {p.months, 'M'}, {p.days, 'D'}} {
		if c.v != 0 {
			b.WriteString(strconv.FormatInt(int64(c.v), 10))
			b.WriteByte(c.unit)
		}
	}
	return b.String()
}

// scanner walks an ISO-8601 string.
type scanner struct {
	op    string
	input string
	pos   int
}

func (s *scanner) fail(reason string) error {
	return calerr.NewParse(s.op, s.input, reason)
}

func (s *scanner) done() bool { return s.pos >= len(s.input) }

func (s *scanner) peek() byte {
	if s.done() {
		return 0
	}
	return s.input[s.pos]
}

func (s *scanner) accept(c byte) bool {
	if s.peek() == c {
		s.pos++
		return true
	}
	return false
}

// digits consumes a run of ASCII digits and returns it.
func (s *scanner) digits() string {
	start := s.pos
	for !s.done() && s.input[s.pos] >= '0' && s.input[s.pos] <= '9' {
		s.pos++
	}
	return s.input[start:s.pos]
}

// sign consumes an optional leading '+' or '-'.
func (s *scanner) sign() (negative, present bool) {
	switch {
	case s.accept('-'):
		return true, true
	case s.accept('+'):
		return false, true
	}
	return false, false
}

// signedNumber consumes an optional '-' and a run of digits. It returns
// ok=false without consuming anything if no digits follow.
func (s *scanner) signedNumber() (value int64, negative, ok bool, err error) {
	start := s.pos
	negative = s.accept('-')
	ds := s.digits()
	if ds == "" {
		s.pos = start
		return 0, false, false, nil
	}
	v, perr := strconv.ParseInt(ds, 10, 64)
	if perr != nil {
		return 0, false, false, s.fail("number out of range")
	}
	if negative {
		v = -v
	}
	return v, negative, true, nil
}

// ParseDate parses an ISO-8601 calendar date in extended ("2019-01-31") or
// basic ("20190131") format. Years with more than four digits need a sign.
func ParseDate(text string) (Date, error) {
	s := &scanner{op: "ParseDate", input: text}
	d, err := s.date()
	if err != nil {
		return Date{}, err
	}
	if !s.done() {
		return Date{}, s.fail("unexpected trailing characters")
	}
	return d, nil
}

func (s *scanner) date() (Date, error) {
	negative, signed := s.sign()
	yearDigits := s.digits()
	extended := s.peek() == '-'
	if !extended && len(yearDigits) == 8 && !signed {
		// Basic format: YYYYMMDD.
		s.pos -= 4
		yearDigits = yearDigits[:4]
	}
	switch {
	case len(yearDigits) < 4:
		return Date{}, s.fail("year must have at least four digits")
	case len(yearDigits) > 4 && !signed:
		return Date{}, s.fail("years beyond four digits need a sign")
	case len(yearDigits) > 9:
		return Date{}, s.fail("year out of range")
	}
	year, _ := strconv.ParseInt(yearDigits, 10, 64)
	if negative {
		year = -year
	}

	if extended {
		s.accept('-')
	}
	month, err := s.fixedDigits(2, "month")
	if err != nil {
		return Date{}, err
	}
	if extended && !s.accept('-') {
		return Date{}, s.fail("expected '-' after month")
	}
	day, err := s.fixedDigits(2, "day")
	if err != nil {
		return Date{}, err
	}
	if err := calendar.ValidateDate(year, calendar.Month(month), day); err != nil {
		reason := "invalid date"
		var ce *calerr.Error
		if errors.As(err, &ce) {
			reason = ce.Message
		}
		return Date{}, s.fail(reason)
	}
	return Date{year: int32(year), month: calendar.Month(month), day: int8(day)}, nil
}

func (s *scanner) fixedDigits(n int, field string) (int, error) {
	if s.pos+n > len(s.input) {
		return 0, s.fail(field + " must have two digits")
	}
	v := 0
	for _, c := range []byte(s.input[s.pos : s.pos+n]) {
		if c < '0' || c > '9' {
			return 0, s.fail(field + " must have two digits")
		}
		v = v*10 + int(c-'0')
	}
	s.pos += n
	return v, nil
}

// ParsePeriod parses an ISO-8601 period such as "P1Y2M3D", "P-2M" or "-P4W".
// Weeks are converted to days. A leading sign negates every component.
func ParsePeriod(text string) (Period, error) {
	s := &scanner{op: "ParsePeriod", input: text}
	negative, _ := s.sign()
	if !s.accept('P') {
		return Period{}, s.fail("expected 'P'")
	}

	var p Period
	var days int32
	seen := false
	for _, unit := range []byte{'Y', 'M', 'W', 'D'} {
		start := s.pos
		v, _, ok, err := s.signedNumber()
		if err != nil {
			return Period{}, err
		}
		if !ok {
			continue
		}
		if !s.accept(unit) {
			// The number belongs to a later designator.
			s.pos = start
			continue
		}
		n, fits := exact.Narrow(v)
		if !fits {
			return Period{}, s.fail("component out of range")
		}
		seen = true
		switch unit {
		case 'Y':
			p.years = n
		case 'M':
			p.months = n
		case 'W':
			w, err := measures.ConvertInt[measures.Day](measures.IntWeeks(n))
			if err != nil {
				return Period{}, s.fail("weeks out of range")
			}
			days = w.Value()
		case 'D':
			var ok bool
			if days, ok = exact.Add(days, n); !ok {
				return Period{}, s.fail("days out of range")
			}
		}
	}
	p.days = days
	if !seen {
		return Period{}, s.fail("no components")
	}
	if !s.done() {
		return Period{}, s.fail("unexpected trailing characters")
	}
	if negative {
		neg, err := p.Neg()
		if err != nil {
			return Period{}, s.fail("component out of range")
		}
		p = neg
	}
	return p, nil
}

// ParseDuration parses an ISO-8601 duration limited to days and time
// components, such as "PT1H30M", "P2DT0.5S" or "PT-0.25S". Days are 24 hours.
func ParseDuration(text string) (Duration, error) {
	s := &scanner{op: "ParseDuration", input: text}
	negative, _ := s.sign()
	if !s.accept('P') {
		return Duration{}, s.fail("expected 'P'")
	}

	var seconds, nanos int64
	seen := false
	add := func(v, perUnit int64) error {
		scaled, ok := exact.Mul(v, perUnit)
		if ok {
			seconds, ok = exact.Add(seconds, scaled)
		}
		if !ok {
			return s.fail("duration out of range")
		}
		seen = true
		return nil
	}

	if v, _, ok, err := s.signedNumber(); err != nil {
		return Duration{}, err
	} else if ok {
		if !s.accept('D') {
			return Duration{}, s.fail("expected 'D'")
		}
		if err := add(v, secondsPerDay); err != nil {
			return Duration{}, err
		}
	}

	if s.accept('T') {
		timeSeen := false
		for _, unit := range []struct {
			designator byte
			seconds    int64
		}{{'H', 3600}, {'M', 60}, {'S', 1}} {
			start := s.pos
			v, neg, ok, err := s.signedNumber()
			if err != nil {
				return Duration{}, err
			}
			if !ok {
				continue
			}
			var fraction int64
			if unit.designator == 'S' && (s.peek() == '.' || s.peek() == ',') {
				s.pos++
				frac := s.digits()
				if frac == "" || len(frac) > 9 {
					return Duration{}, s.fail("fraction must have one to nine digits")
				}
				fraction, _ = strconv.ParseInt(frac+strings.Repeat("0", 9-len(frac)), 10, 64)
				if neg {
					fraction = -fraction
				}
			}
			if !s.accept(unit.designator) {
				s.pos = start
				continue
			}
			nanos = fraction
			if err := add(v, unit.seconds); err != nil {
				return Duration{}, err
			}
			timeSeen = true
		}
		if !timeSeen {
			return Duration{}, s.fail("expected a time component after 'T'")
		}
	}

	if !seen {
		return Duration{}, s.fail("no components")
	}
	if !s.done() {
		return Duration{}, s.fail("unexpected trailing characters")
	}
	d, err := normalize(s.op, seconds, nanos)
	if err != nil {
		return Duration{}, s.fail("duration out of range")
	}
	if negative {
		if d, err = d.Neg(); err != nil {
			return Duration{}, s.fail("duration out of range")
		}
	}
	return d, nil
}
