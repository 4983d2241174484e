package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/almanac/clock"
)

// NewTodayCommand creates the today command.
func NewTodayCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Show the current date in the --tz time zone",
		Example: `  almanac today
  almanac today --tz Pacific/Kiritimati --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return emit(rootOpts, cmd, func() (any, error) {
				loc, err := time.LoadLocation(rootOpts.Timezone)
				if err != nil {
					return nil, fmt.Errorf("unknown time zone %q", rootOpts.Timezone)
				}
				d, err := clock.Today(rootOpts.clock, clock.Location(loc))
				if err != nil {
					return nil, err
				}
				return newDateInfo(d, rootOpts), nil
			})
		},
	}
}
