package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/almanac"
)

// NewPeriodCommand creates the period command group.
func NewPeriodCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "period",
		Short: "Arithmetic on ISO-8601 periods (PnYnMnD)",
	}

	cmd.AddCommand(&cobra.Command{
		Use:     "normalize <period>",
		Short:   "Fold months into years so that both share one sign",
		Example: `  almanac period normalize P1Y14M3D`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return emit(rootOpts, cmd, func() (any, error) {
				p, err := almanac.ParsePeriod(args[0])
				if err != nil {
					return nil, err
				}
				return stringValue(p.Normalized())
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "add <period> <period>",
		Short: "Add two periods component by component",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return emit(rootOpts, cmd, func() (any, error) {
				return periodPair(args, almanac.Period.Plus)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "sub <period> <period>",
		Short: "Subtract the second period from the first",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return emit(rootOpts, cmd, func() (any, error) {
				return periodPair(args, almanac.Period.Minus)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "mul <period> <n>",
		Short: "Multiply every component of a period",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return emit(rootOpts, cmd, func() (any, error) {
				p, err := almanac.ParsePeriod(args[0])
				if err != nil {
					return nil, err
				}
				n, err := parseInt32("n", args[1])
				if err != nil {
					return nil, err
				}
				return stringValue(p.Times(n))
			})
		},
	})

	return cmd
}

func periodPair(args []string, fn func(almanac.Period, almanac.Period) (almanac.Period, error)) (any, error) {
	a, err := almanac.ParsePeriod(args[0])
	if err != nil {
		return nil, err
	}
	b, err := almanac.ParsePeriod(args[1])
	if err != nil {
		return nil, err
	}
	return stringValue(fn(a, b))
}
