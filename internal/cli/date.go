package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/roach88/almanac"
	"github.com/roach88/almanac/calendar"
	"github.com/roach88/almanac/locale"
)

// valueResult is the payload of commands that produce a single value.
type valueResult struct {
	Value string `json:"value"`
}

func (r valueResult) String() string { return r.Value }

// emit runs fn and reports its result or error in the configured format.
func emit(opts *RootOptions, cmd *cobra.Command, fn func() (any, error)) error {
	f := newFormatter(opts, cmd)
	data, err := fn()
	if err != nil {
		if opts.logger != nil {
			opts.logger.Debug("command failed", "command", cmd.CommandPath(), "error", err)
		}
		return f.Fail(err)
	}
	return f.Success(data)
}

func stringValue[T fmt.Stringer](v T, err error) (any, error) {
	if err != nil {
		return nil, err
	}
	return valueResult{Value: v.String()}, nil
}

func parseInt(name, s string) (int64, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %q", name, s)
	}
	return n, nil
}

func parseInt32(name, s string) (int32, error) {
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%s must be a 32-bit integer: %q", name, s)
	}
	return int32(n), nil
}

// NewDateCommand creates the date command group.
func NewDateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "date",
		Short: "Inspect and do arithmetic on calendar dates",
		Long: `Inspect and do arithmetic on ISO-8601 calendar dates.

Dates are written as YYYY-MM-DD. Years outside 0000-9999 carry a sign,
for example +10000-01-01 or -0044-03-15.`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "info <date>",
		Short: "Show the fields of a date",
		Example: `  almanac date info 2020-02-29
  almanac date info 2020-02-29 --lang de`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return emit(rootOpts, cmd, func() (any, error) {
				d, err := almanac.ParseDate(args[0])
				if err != nil {
					return nil, err
				}
				return newDateInfo(d, rootOpts), nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:     "add <date> <period>",
		Short:   "Add a period to a date",
		Example: `  almanac date add 2020-02-29 P1Y1M`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return emit(rootOpts, cmd, func() (any, error) {
				return datePeriod(args, almanac.Date.PlusPeriod)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:     "sub <date> <period>",
		Short:   "Subtract a period from a date",
		Example: `  almanac date sub 2020-02-29 P1M1D`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return emit(rootOpts, cmd, func() (any, error) {
				return datePeriod(args, almanac.Date.MinusPeriod)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "diff <start> <end>",
		Short: "Show the period and whole units between two dates",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return emit(rootOpts, cmd, func() (any, error) {
				start, err := almanac.ParseDate(args[0])
				if err != nil {
					return nil, err
				}
				end, err := almanac.ParseDate(args[1])
				if err != nil {
					return nil, err
				}
				return dateDiff{
					Period: almanac.PeriodBetween(start, end).String(),
					Years:  almanac.YearsBetween(start, end).Value(),
					Months: almanac.MonthsBetween(start, end).Value(),
					Weeks:  almanac.WeeksBetween(start, end).Value(),
					Days:   almanac.DaysBetween(start, end).Value(),
				}, nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "parse <text>",
		Short: "Parse a date and print it in canonical form",
		Long: `Parse a date in extended (2019-01-31) or basic (20190131) ISO-8601
format and print it in canonical extended form.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return emit(rootOpts, cmd, func() (any, error) {
				return stringValue(almanac.ParseDate(args[0]))
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "of <year> <month> <day>",
		Short: "Build a date from its fields",
		Long: `Build a date from a year, a month and a day of the month.

The month may be a number or a month name in the --lang language, full or
abbreviated, in any letter case.`,
		Example: `  almanac date of 2019 3 15
  almanac date of 2019 März 15 --lang de`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return emit(rootOpts, cmd, func() (any, error) {
				year, err := parseInt32("year", args[0])
				if err != nil {
					return nil, err
				}
				month, err := parseMonth(rootOpts, args[1])
				if err != nil {
					return nil, err
				}
				day, err := parseInt32("day", args[2])
				if err != nil {
					return nil, err
				}
				return stringValue(almanac.NewDate(int(year), month, int(day)))
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "from-epoch <days>",
		Short: "Convert days since 1970-01-01 to a date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return emit(rootOpts, cmd, func() (any, error) {
				n, err := parseInt("days", args[0])
				if err != nil {
					return nil, err
				}
				return stringValue(almanac.DateFromEpochDay(n))
			})
		},
	})

	return cmd
}

func datePeriod(args []string, fn func(almanac.Date, almanac.Period) (almanac.Date, error)) (any, error) {
	d, err := almanac.ParseDate(args[0])
	if err != nil {
		return nil, err
	}
	p, err := almanac.ParsePeriod(args[1])
	if err != nil {
		return nil, err
	}
	return stringValue(fn(d, p))
}

// parseMonth accepts a month number or a localized month name.
func parseMonth(opts *RootOptions, s string) (calendar.Month, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return calendar.Month(n), nil
	}
	v, ok := opts.catalog.ParseText(locale.MonthOfYear, s, opts.tag, locale.Full, locale.Short)
	if !ok {
		return 0, fmt.Errorf("unknown month %q for language %s", s, opts.tag)
	}
	return calendar.Month(v), nil
}

// dateInfo describes every field of a date.
type dateInfo struct {
	Date          string `json:"date"`
	Year          int    `json:"year"`
	Month         int    `json:"month"`
	MonthName     string `json:"month_name"`
	Day           int    `json:"day"`
	DayOfWeek     string `json:"day_of_week"`
	DayOfYear     int    `json:"day_of_year"`
	EpochDay      int64  `json:"epoch_day"`
	LeapYear      bool   `json:"leap_year"`
	LengthOfMonth int    `json:"length_of_month"`
}

func newDateInfo(d almanac.Date, opts *RootOptions) dateInfo {
	monthName, ok := locale.MonthName(opts.catalog, d.Month(), locale.Full, opts.tag)
	if !ok {
		monthName = d.Month().String()
	}
	dayName, ok := locale.DayOfWeekName(opts.catalog, d.DayOfWeek(), locale.Full, opts.tag)
	if !ok {
		dayName = d.DayOfWeek().String()
	}
	return dateInfo{
		Date:          d.String(),
		Year:          d.Year(),
		Month:         int(d.Month()),
		MonthName:     monthName,
		Day:           d.Day(),
		DayOfWeek:     dayName,
		DayOfYear:     d.DayOfYear(),
		EpochDay:      d.EpochDay(),
		LeapYear:      d.IsLeapYear(),
		LengthOfMonth: d.LengthOfMonth(),
	}
}

func (i dateInfo) renderText(f *OutputFormatter) string {
	cat, tag := f.opts.catalog, f.opts.tag
	label := func(name string) string { return cat.Label(tag, name) }
	leap := label("no")
	if i.LeapYear {
		leap = label("yes")
	}
	return f.styles().Table([][2]string{
		{label("date"), i.Date},
		{label("year"), strconv.Itoa(i.Year)},
		{label("month"), i.MonthName},
		{label("day"), strconv.Itoa(i.Day)},
		{label("day_of_week"), i.DayOfWeek},
		{label("day_of_year"), strconv.Itoa(i.DayOfYear)},
		{label("epoch_day"), cat.FormatNumber(tag, i.EpochDay)},
		{label("leap_year"), leap},
		{label("length_of_month"), strconv.Itoa(i.LengthOfMonth)},
	})
}

// dateDiff is the distance between two dates in several units.
type dateDiff struct {
	Period string `json:"period"`
	Years  int64  `json:"years"`
	Months int64  `json:"months"`
	Weeks  int64  `json:"weeks"`
	Days   int64  `json:"days"`
}

func (d dateDiff) renderText(f *OutputFormatter) string {
	return f.styles().Table([][2]string{
		{"Period", d.Period},
		{"Years", strconv.FormatInt(d.Years, 10)},
		{"Months", strconv.FormatInt(d.Months, 10)},
		{"Weeks", strconv.FormatInt(d.Weeks, 10)},
		{"Days", strconv.FormatInt(d.Days, 10)},
	})
}
