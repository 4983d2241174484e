package almanac

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/roach88/almanac/calendar"
)

// Date, Period and Duration are stored as their ISO-8601 strings, both as
// text (JSON, YAML, flags) and in SQL columns.

// MarshalText implements encoding.TextMarshaler.
func (d Date) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Date) UnmarshalText(text []byte) error {
	v, err := ParseDate(string(text))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// Value implements driver.Valuer.
func (d Date) Value() (driver.Value, error) { return d.String(), nil }

// Scan implements sql.Scanner. It accepts ISO-8601 text and time.Time, which
// some drivers return for DATE columns. Use sql.Null[Date] for nullable columns.
func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case string:
		return d.UnmarshalText([]byte(v))
	case []byte:
		return d.UnmarshalText(v)
	case time.Time:
		parsed, err := NewDate(v.Year(), calendar.Month(v.Month()), v.Day())
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	}
	return fmt.Errorf("almanac: cannot scan %T into Date", src)
}

// MarshalText implements encoding.TextMarshaler.
func (p Period) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Period) UnmarshalText(text []byte) error {
	v, err := ParsePeriod(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// Value implements driver.Valuer.
func (p Period) Value() (driver.Value, error) { return p.String(), nil }

// Scan implements sql.Scanner.
func (p *Period) Scan(src any) error {
	switch v := src.(type) {
	case string:
		return p.UnmarshalText([]byte(v))
	case []byte:
		return p.UnmarshalText(v)
	}
	return fmt.Errorf("almanac: cannot scan %T into Period", src)
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// Value implements driver.Valuer.
func (d Duration) Value() (driver.Value, error) { return d.String(), nil }

// Scan implements sql.Scanner.
func (d *Duration) Scan(src any) error {
	switch v := src.(type) {
	case string:
		return d.UnmarshalText([]byte(v))
	case []byte:
		return d.UnmarshalText(v)
	}
	return fmt.Errorf("almanac: cannot scan %T into Duration", src)
}
