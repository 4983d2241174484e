package harness

import (
	"errors"
	"fmt"
	"iter"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/roach88/almanac"
	"github.com/roach88/almanac/measures"
)

// maxListed bounds the number of dates a range operation will print.
const maxListed = 1000

// ErrBadArgs marks a step whose arguments are missing or have the wrong
// type. It is a scenario defect, not an almanac error.
var ErrBadArgs = errors.New("bad arguments")

// Args holds a step's arguments after decoding.
type Args map[string]any

func (a Args) raw(name string) (any, error) {
	v, ok := a[name]
	if !ok {
		return nil, fmt.Errorf("%w: missing %q", ErrBadArgs, name)
	}
	return v, nil
}

// String returns a string argument.
func (a Args) String(name string) (string, error) {
	v, err := a.raw(name)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: %q must be a string, got %T", ErrBadArgs, name, v)
	}
	return s, nil
}

// Int returns an integer argument. Numeric strings are accepted so that
// values beyond what a scenario format can carry natively still work.
func (a Args) Int(name string) (int64, error) {
	v, err := a.raw(name)
	if err != nil {
		return 0, err
	}
	switch v := v.(type) {
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q: %v", ErrBadArgs, name, err)
		}
		return n, nil
	}
	return 0, fmt.Errorf("%w: %q must be an integer, got %T", ErrBadArgs, name, v)
}

// Int32 returns an integer argument that must fit in 32 bits.
func (a Args) Int32(name string) (int32, error) {
	n, err := a.Int(name)
	if err != nil {
		return 0, err
	}
	if int64(int32(n)) != n {
		return 0, fmt.Errorf("%w: %q out of 32-bit range: %d", ErrBadArgs, name, n)
	}
	return int32(n), nil
}

// IntOr returns the integer argument name, or def when it is absent.
func (a Args) IntOr(name string, def int32) (int32, error) {
	if _, ok := a[name]; !ok {
		return def, nil
	}
	return a.Int32(name)
}

// Date parses an ISO-8601 date argument. Parse failures are almanac errors
// so that scenarios can expect them.
func (a Args) Date(name string) (almanac.Date, error) {
	s, err := a.String(name)
	if err != nil {
		return almanac.Date{}, err
	}
	return almanac.ParseDate(s)
}

// Period parses an ISO-8601 period argument.
func (a Args) Period(name string) (almanac.Period, error) {
	s, err := a.String(name)
	if err != nil {
		return almanac.Period{}, err
	}
	return almanac.ParsePeriod(s)
}

// Duration parses an ISO-8601 duration argument.
func (a Args) Duration(name string) (almanac.Duration, error) {
	s, err := a.String(name)
	if err != nil {
		return almanac.Duration{}, err
	}
	return almanac.ParseDuration(s)
}

// Kind returns a unit name argument such as "hours".
func (a Args) Kind(name string) (measures.Kind, error) {
	s, err := a.String(name)
	if err != nil {
		return 0, err
	}
	k, ok := measures.ParseKind(s)
	if !ok {
		return 0, fmt.Errorf("%w: %q: unknown unit %q", ErrBadArgs, name, s)
	}
	return k, nil
}

// Op runs one operation and renders its result as a string.
type Op func(args Args) (string, error)

// Registry maps operation names to implementations.
type Registry struct {
	ops map[string]Op
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{ops: make(map[string]Op)}
}

// Register adds op under name, replacing any earlier registration.
func (r *Registry) Register(name string, op Op) {
	r.ops[name] = op
}

// Lookup returns the operation registered under name.
func (r *Registry) Lookup(name string) (Op, bool) {
	op, ok := r.ops[name]
	return op, ok
}

// Names returns the registered operation names in sorted order.
func (r *Registry) Names() []string {
	return slices.Sorted(maps.Keys(r.ops))
}

// DefaultRegistry returns a registry holding every almanac operation the
// harness knows about.
func DefaultRegistry() *Registry {
	r := NewRegistry()

	r.Register("date.parse", func(a Args) (string, error) {
		d, err := a.Date("text")
		return stringOf(d, err)
	})
	r.Register("date.plus_days", func(a Args) (string, error) {
		return dateWithInt(a, "days", func(d almanac.Date, n int64) (almanac.Date, error) {
			return d.PlusDays(measures.LongDays(n))
		})
	})
	r.Register("date.plus_weeks", func(a Args) (string, error) {
		return dateWithInt(a, "weeks", func(d almanac.Date, n int64) (almanac.Date, error) {
			return d.PlusWeeks(measures.LongWeeks(n))
		})
	})
	r.Register("date.plus_months", func(a Args) (string, error) {
		return dateWithInt(a, "months", func(d almanac.Date, n int64) (almanac.Date, error) {
			return d.PlusMonths(measures.LongMonths(n))
		})
	})
	r.Register("date.plus_years", func(a Args) (string, error) {
		return dateWithInt(a, "years", func(d almanac.Date, n int64) (almanac.Date, error) {
			return d.PlusYears(measures.LongYears(n))
		})
	})
	r.Register("date.plus_period", func(a Args) (string, error) {
		d, err := a.Date("date")
		if err != nil {
			return "", err
		}
		p, err := a.Period("period")
		if err != nil {
			return "", err
		}
		return stringOf(d.PlusPeriod(p))
	})
	r.Register("date.day_of_week", func(a Args) (string, error) {
		d, err := a.Date("date")
		if err != nil {
			return "", err
		}
		return d.DayOfWeek().String(), nil
	})
	r.Register("date.epoch_day", func(a Args) (string, error) {
		d, err := a.Date("date")
		if err != nil {
			return "", err
		}
		return strconv.FormatInt(d.EpochDay(), 10), nil
	})
	r.Register("date.from_epoch_day", func(a Args) (string, error) {
		n, err := a.Int("epoch_day")
		if err != nil {
			return "", err
		}
		return stringOf(almanac.DateFromEpochDay(n))
	})
	r.Register("date.between", func(a Args) (string, error) {
		start, end, err := datePair(a)
		if err != nil {
			return "", err
		}
		return almanac.PeriodBetween(start, end).String(), nil
	})
	r.Register("date.days_between", func(a Args) (string, error) {
		start, end, err := datePair(a)
		if err != nil {
			return "", err
		}
		return strconv.FormatInt(almanac.DaysBetween(start, end).Value(), 10), nil
	})

	r.Register("period.parse", func(a Args) (string, error) {
		p, err := a.Period("text")
		return stringOf(p, err)
	})
	r.Register("period.normalized", func(a Args) (string, error) {
		p, err := a.Period("period")
		if err != nil {
			return "", err
		}
		return stringOf(p.Normalized())
	})
	r.Register("period.plus", func(a Args) (string, error) {
		p, err := a.Period("a")
		if err != nil {
			return "", err
		}
		q, err := a.Period("b")
		if err != nil {
			return "", err
		}
		return stringOf(p.Plus(q))
	})
	r.Register("period.times", func(a Args) (string, error) {
		p, err := a.Period("period")
		if err != nil {
			return "", err
		}
		n, err := a.Int32("scalar")
		if err != nil {
			return "", err
		}
		return stringOf(p.Times(n))
	})

	r.Register("duration.parse", func(a Args) (string, error) {
		d, err := a.Duration("text")
		return stringOf(d, err)
	})
	r.Register("duration.plus", func(a Args) (string, error) {
		return durationPair(a, almanac.Duration.Plus)
	})
	r.Register("duration.minus", func(a Args) (string, error) {
		return durationPair(a, almanac.Duration.Minus)
	})
	r.Register("duration.times", func(a Args) (string, error) {
		return durationScalar(a, almanac.Duration.Times)
	})
	r.Register("duration.div", func(a Args) (string, error) {
		return durationScalar(a, almanac.Duration.Div)
	})
	r.Register("duration.truncate", func(a Args) (string, error) {
		d, err := a.Duration("duration")
		if err != nil {
			return "", err
		}
		unit, err := a.Kind("unit")
		if err != nil {
			return "", err
		}
		return stringOf(d.TruncatedTo(unit))
	})

	r.Register("range.parse", func(a Args) (string, error) {
		s, err := a.String("text")
		if err != nil {
			return "", err
		}
		return stringOf(almanac.ParseDateRange(s))
	})
	r.Register("range.days", func(a Args) (string, error) {
		start, end, err := datePair(a)
		if err != nil {
			return "", err
		}
		step, err := a.IntOr("step", 1)
		if err != nil {
			return "", err
		}
		p, err := almanac.NewDateDayProgression(start, end, measures.IntDays(step))
		if err != nil {
			return "", err
		}
		return listDates(p.Len(), p.All())
	})
	r.Register("range.months", func(a Args) (string, error) {
		start, end, err := datePair(a)
		if err != nil {
			return "", err
		}
		step, err := a.IntOr("step", 1)
		if err != nil {
			return "", err
		}
		p, err := almanac.NewDateMonthProgression(start, end, measures.IntMonths(step))
		if err != nil {
			return "", err
		}
		return listDates(p.Len(), p.All())
	})
	r.Register("range.length_in_days", func(a Args) (string, error) {
		s, err := a.String("range")
		if err != nil {
			return "", err
		}
		rng, err := almanac.ParseDateRange(s)
		if err != nil {
			return "", err
		}
		n, err := rng.LengthInDays()
		if err != nil {
			return "", err
		}
		return strconv.FormatInt(n.Value(), 10), nil
	})

	return r
}

func stringOf[T fmt.Stringer](v T, err error) (string, error) {
	if err != nil {
		return "", err
	}
	return v.String(), nil
}

func dateWithInt(a Args, name string, fn func(almanac.Date, int64) (almanac.Date, error)) (string, error) {
	d, err := a.Date("date")
	if err != nil {
		return "", err
	}
	n, err := a.Int(name)
	if err != nil {
		return "", err
	}
	return stringOf(fn(d, n))
}

func datePair(a Args) (almanac.Date, almanac.Date, error) {
	start, err := a.Date("start")
	if err != nil {
		return almanac.Date{}, almanac.Date{}, err
	}
	end, err := a.Date("end")
	if err != nil {
		return almanac.Date{}, almanac.Date{}, err
	}
	return start, end, nil
}

func durationPair(a Args, fn func(almanac.Duration, almanac.Duration) (almanac.Duration, error)) (string, error) {
	d, err := a.Duration("a")
	if err != nil {
		return "", err
	}
	o, err := a.Duration("b")
	if err != nil {
		return "", err
	}
	return stringOf(fn(d, o))
}

func durationScalar(a Args, fn func(almanac.Duration, int32) (almanac.Duration, error)) (string, error) {
	d, err := a.Duration("duration")
	if err != nil {
		return "", err
	}
	n, err := a.Int32("scalar")
	if err != nil {
		return "", err
	}
	return stringOf(fn(d, n))
}

func listDates(n int64, all iter.Seq[almanac.Date]) (string, error) {
	if n > maxListed {
		return "", fmt.Errorf("%w: %d dates exceed the listing limit of %d", ErrBadArgs, n, maxListed)
	}
	parts := make([]string, 0, n)
	for d := range all {
		parts = append(parts, d.String())
	}
	return strings.Join(parts, ","), nil
}
