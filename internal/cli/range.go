package cli

import (
	"fmt"
	"iter"
	"math/rand/v2"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/almanac"
	"github.com/roach88/almanac/measures"
)

// progression is satisfied by both day and month progressions.
type progression interface {
	fmt.Stringer
	Len() int64
	All() iter.Seq[almanac.Date]
}

type rangeOptions struct {
	step   int32
	unit   string
	limit  int64
	random bool
	seed   uint64
}

// NewRangeCommand creates the range command.
func NewRangeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &rangeOptions{}

	cmd := &cobra.Command{
		Use:   "range <start> <end> | range <interval>",
		Short: "List the dates of a range or progression",
		Long: `List the dates from start through end, or the dates of an ISO-8601
interval such as 2020-01-01/2020-03-31. Both ends are included.

A negative --step counts down from start to end. Month and year steps keep
the day of month of the start date where the month is long enough.`,
		Example: `  almanac range 2020-01-31 2020-12-31 --unit months
  almanac range 2020-03-10 2020-03-01 --step -3
  almanac range 2020-01-01/2020-12-31 --random --seed 7`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return emit(rootOpts, cmd, func() (any, error) {
				return runRange(cmd, opts, args)
			})
		},
	}

	cmd.Flags().Int32Var(&opts.step, "step", 1, "distance between dates, in --unit")
	cmd.Flags().StringVar(&opts.unit, "unit", "days", "step unit: days, weeks, months or years")
	cmd.Flags().Int64Var(&opts.limit, "limit", 1000, "refuse to list more dates than this")
	cmd.Flags().BoolVar(&opts.random, "random", false, "print one date chosen at random")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "seed for --random (default: unseeded)")

	return cmd
}

func runRange(cmd *cobra.Command, opts *rangeOptions, args []string) (any, error) {
	r, err := parseRangeArgs(args)
	if err != nil {
		return nil, err
	}

	if opts.random {
		var rng *rand.Rand
		if cmd.Flags().Changed("seed") {
			rng = rand.New(rand.NewPCG(opts.seed, opts.seed))
		}
		return stringValue(r.Random(rng))
	}

	p, err := newProgression(r, opts.step, opts.unit)
	if err != nil {
		return nil, err
	}
	n := p.Len()
	if n > opts.limit {
		return nil, fmt.Errorf("%d dates exceed --limit %d", n, opts.limit)
	}
	res := rangeResult{Progression: p.String(), Dates: make([]string, 0, n), Count: n}
	for d := range p.All() {
		res.Dates = append(res.Dates, d.String())
	}
	return res, nil
}

// parseRangeArgs accepts either two dates or one bounded interval.
func parseRangeArgs(args []string) (almanac.DateRange, error) {
	if len(args) == 2 {
		start, err := almanac.ParseDate(args[0])
		if err != nil {
			return almanac.DateRange{}, err
		}
		end, err := almanac.ParseDate(args[1])
		if err != nil {
			return almanac.DateRange{}, err
		}
		return almanac.NewDateRange(start, end), nil
	}
	r, err := almanac.ParseDateRange(args[0])
	if err != nil {
		return almanac.DateRange{}, err
	}
	if _, err := r.LengthInDays(); err != nil {
		return almanac.DateRange{}, err
	}
	return r, nil
}

func newProgression(r almanac.DateRange, step int32, unit string) (progression, error) {
	start, end := r.Start(), r.EndInclusive()
	switch unit {
	case "days":
		return almanac.NewDateDayProgression(start, end, measures.IntDays(step))
	case "weeks":
		days, err := measures.ConvertInt[measures.Day](measures.IntWeeks(step))
		if err != nil {
			return nil, err
		}
		return almanac.NewDateDayProgression(start, end, days)
	case "months":
		return almanac.NewDateMonthProgression(start, end, measures.IntMonths(step))
	case "years":
		months, err := measures.ConvertCalendarInt[measures.Month](measures.IntYears(step))
		if err != nil {
			return nil, err
		}
		return almanac.NewDateMonthProgression(start, end, months)
	}
	return nil, fmt.Errorf("unknown --unit %q (expected days, weeks, months or years)", unit)
}

type rangeResult struct {
	Progression string   `json:"progression"`
	Dates       []string `json:"dates"`
	Count       int64    `json:"count"`
}

func (r rangeResult) renderText(f *OutputFormatter) string {
	s := f.styles()
	var b strings.Builder
	for _, d := range r.Dates {
		b.WriteString(d)
		b.WriteByte('\n')
	}
	b.WriteString(s.Muted.Render(fmt.Sprintf("%d dates (%s)", r.Count, r.Progression)))
	return b.String()
}
