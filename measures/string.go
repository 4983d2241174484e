package measures

import (
	"strconv"
	"strings"
)

// fractionDigits is the number of fractional-second digits for sub-second kinds.
func fractionDigits(k Kind) int {
	switch k {
	case Nanoseconds:
		return 9
	case Microseconds:
		return 6
	case Milliseconds:
		return 3
	}
	return 0
}

func designator(k Kind) (prefix string, suffix byte) {
	switch k {
	case Minutes:
		return "PT", 'M'
	case Hours:
		return "PT", 'H'
	case Days:
		return "P", 'D'
	case Weeks:
		return "P", 'W'
	case Months:
		return "P", 'M'
	case Years:
		return "P", 'Y'
	}
	return "PT", 'S'
}

func isoString(k Kind, value int64) string {
	var b strings.Builder
	prefix, suffix := designator(k)

	// uint64 holds |MinInt64| without overflow.
	mag := uint64(value)
	if value < 0 {
		b.WriteByte('-')
		mag = -mag
	}
	b.WriteString(prefix)

	digits := fractionDigits(k)
	if digits == 0 {
		b.WriteString(strconv.FormatUint(mag, 10))
		b.WriteByte(suffix)
		return b.String()
	}

	scale := uint64(1)
	for range digits {
		scale *= 10
	}
	b.WriteString(strconv.FormatUint(mag/scale, 10))
	if frac := mag % scale; frac != 0 {
		s := strconv.FormatUint(frac, 10)
		b.WriteByte('.')
		b.WriteString(strings.Repeat("0", digits-len(s)))
		b.WriteString(strings.TrimRight(s, "0"))
	}
	b.WriteByte('S')
	return b.String()
}
