package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/almanac"
	"github.com/roach88/almanac/measures"
)

// NewDurationCommand creates the duration command group.
func NewDurationCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "duration",
		Short: "Arithmetic on exact durations (PTnHnMnS)",
		Long: `Arithmetic on exact durations written in ISO-8601 time form,
for example PT1H30M or PT-0.5S. Durations have nanosecond precision.`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add <duration> <duration>",
		Short: "Add two durations",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return emit(rootOpts, cmd, func() (any, error) {
				return durationPair(args, almanac.Duration.Plus)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "sub <duration> <duration>",
		Short: "Subtract the second duration from the first",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return emit(rootOpts, cmd, func() (any, error) {
				return durationPair(args, almanac.Duration.Minus)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "mul <duration> <n>",
		Short: "Multiply a duration by an integer",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return emit(rootOpts, cmd, func() (any, error) {
				return durationScalar(args, almanac.Duration.Times)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "div <duration> <n>",
		Short: "Divide a duration by an integer",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return emit(rootOpts, cmd, func() (any, error) {
				return durationScalar(args, almanac.Duration.Div)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:     "truncate <duration> <unit>",
		Short:   "Drop every component finer than unit",
		Example: `  almanac duration truncate PT1H2M3.5S minutes`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return emit(rootOpts, cmd, func() (any, error) {
				d, err := almanac.ParseDuration(args[0])
				if err != nil {
					return nil, err
				}
				unit, err := parseKind(args[1])
				if err != nil {
					return nil, err
				}
				return stringValue(d.TruncatedTo(unit))
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:     "from <amount> <unit>",
		Short:   "Build a duration from an amount of a fixed unit",
		Example: `  almanac duration from 90 minutes`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return emit(rootOpts, cmd, func() (any, error) {
				n, err := parseInt("amount", args[0])
				if err != nil {
					return nil, err
				}
				unit, err := parseKind(args[1])
				if err != nil {
					return nil, err
				}
				return stringValue(durationFrom(n, unit))
			})
		},
	})

	var largest string
	parts := &cobra.Command{
		Use:     "parts <duration>",
		Short:   "Break a duration into whole units",
		Example: `  almanac duration parts PT25H1M1.5S --largest days`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return emit(rootOpts, cmd, func() (any, error) {
				d, err := almanac.ParseDuration(args[0])
				if err != nil {
					return nil, err
				}
				unit, err := parseKind(largest)
				if err != nil {
					return nil, err
				}
				return newDurationParts(d.Components(unit)), nil
			})
		},
	}
	parts.Flags().StringVar(&largest, "largest", "hours", "largest unit to break into")
	cmd.AddCommand(parts)

	return cmd
}

func parseKind(s string) (measures.Kind, error) {
	k, ok := measures.ParseKind(s)
	if !ok {
		return 0, fmt.Errorf("unknown unit %q", s)
	}
	return k, nil
}

func durationPair(args []string, fn func(almanac.Duration, almanac.Duration) (almanac.Duration, error)) (any, error) {
	a, err := almanac.ParseDuration(args[0])
	if err != nil {
		return nil, err
	}
	b, err := almanac.ParseDuration(args[1])
	if err != nil {
		return nil, err
	}
	return stringValue(fn(a, b))
}

func durationScalar(args []string, fn func(almanac.Duration, int32) (almanac.Duration, error)) (any, error) {
	d, err := almanac.ParseDuration(args[0])
	if err != nil {
		return nil, err
	}
	n, err := parseInt32("n", args[1])
	if err != nil {
		return nil, err
	}
	return stringValue(fn(d, n))
}

// durationFrom dispatches a runtime unit onto the typed constructors.
func durationFrom(n int64, unit measures.Kind) (almanac.Duration, error) {
	switch unit {
	case measures.Nanoseconds:
		return almanac.DurationFrom(measures.LongNanoseconds(n))
	case measures.Microseconds:
		return almanac.DurationFrom(measures.LongMicroseconds(n))
	case measures.Milliseconds:
		return almanac.DurationFrom(measures.LongMilliseconds(n))
	case measures.Seconds:
		return almanac.DurationFrom(measures.LongSeconds(n))
	case measures.Minutes:
		return almanac.DurationFrom(measures.LongMinutes(n))
	case measures.Hours:
		return almanac.DurationFrom(measures.LongHours(n))
	case measures.Days:
		return almanac.DurationFrom(measures.LongDays(n))
	case measures.Weeks:
		return almanac.DurationFrom(measures.LongWeeks(n))
	}
	return almanac.Duration{}, fmt.Errorf("%s is not a fixed-length unit", unit)
}

// durationPart is one non-zero component of a duration.
type durationPart struct {
	Unit  string `json:"unit"`
	Value int64  `json:"value"`
}

type durationParts struct {
	Parts []durationPart `json:"parts"`
}

func newDurationParts(c measures.Components) durationParts {
	all := []durationPart{
		{measures.Weeks.String(), c.Weeks.Value()},
		{measures.Days.String(), c.Days.Value()},
		{measures.Hours.String(), c.Hours.Value()},
		{measures.Minutes.String(), c.Minutes.Value()},
		{measures.Seconds.String(), c.Seconds.Value()},
		{measures.Milliseconds.String(), c.Milliseconds.Value()},
		{measures.Microseconds.String(), c.Microseconds.Value()},
		{measures.Nanoseconds.String(), c.Nanoseconds.Value()},
	}
	p := durationParts{Parts: []durationPart{}}
	for _, part := range all {
		if part.Value != 0 {
			p.Parts = append(p.Parts, part)
		}
	}
	return p
}

func (p durationParts) String() string {
	if len(p.Parts) == 0 {
		return "0 seconds"
	}
	fields := make([]string, len(p.Parts))
	for i, part := range p.Parts {
		fields[i] = strconv.FormatInt(part.Value, 10) + " " + part.Unit
	}
	return strings.Join(fields, ", ")
}
