package cli

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"github.com/roach88/almanac/clock"
	"github.com/roach88/almanac/locale"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose  bool
	Format   string // "json" | "text"
	Lang     string // BCP 47 tag for names and labels
	Timezone string // IANA zone for "today"
	Config   string // explicit config file
	DB       string // check history database, bound by check and history

	// Resolved in PersistentPreRunE.
	tag     language.Tag
	catalog *locale.Catalog
	logger  *slog.Logger

	clock clock.Clock
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the almanac CLI.
func NewRootCommand() *cobra.Command {
	return newRootCommand(clock.System())
}

func newRootCommand(c clock.Clock) *cobra.Command {
	opts := &RootOptions{clock: c}

	cmd := &cobra.Command{
		Use:   "almanac",
		Short: "Calendar dates, periods and durations",
		Long: `Work with ISO-8601 calendar dates, periods and durations from the command line.

Every value is read and written in ISO-8601 form. Arithmetic is exact:
results that do not fit are reported as overflow instead of wrapping.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.resolve(cmd)
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Lang, "lang", "en", "language for month and day names")
	cmd.PersistentFlags().StringVar(&opts.Timezone, "tz", "UTC", "time zone used by today")
	cmd.PersistentFlags().StringVar(&opts.Config, "config", "", "config file (default: .almanac.yaml in the working directory)")

	cmd.AddCommand(NewDateCommand(opts))
	cmd.AddCommand(NewPeriodCommand(opts))
	cmd.AddCommand(NewDurationCommand(opts))
	cmd.AddCommand(NewRangeCommand(opts))
	cmd.AddCommand(NewTodayCommand(opts))
	cmd.AddCommand(NewCheckCommand(opts))
	cmd.AddCommand(NewHistoryCommand(opts))

	return cmd
}

// resolve merges config into unset flags and builds the shared state every
// command needs.
func (o *RootOptions) resolve(cmd *cobra.Command) error {
	cfg, err := loadConfig(o.Config)
	if err != nil {
		return WrapExitError(ExitCommandError, "loading config", err)
	}
	flags := cmd.Flags()
	if !flags.Changed("format") {
		o.Format = cfg.GetString(cfgKeyFormat)
	}
	if !flags.Changed("lang") {
		o.Lang = cfg.GetString(cfgKeyLang)
	}
	if !flags.Changed("tz") {
		o.Timezone = cfg.GetString(cfgKeyTimezone)
	}
	if f := flags.Lookup("db"); f != nil && !f.Changed {
		o.DB = cfg.GetString(cfgKeyDB)
	}
	if !flags.Changed("verbose") && cfg.GetBool(cfgKeyVerbose) {
		o.Verbose = true
	}

	if !isValidFormat(o.Format) {
		return NewExitError(ExitCommandError, fmt.Sprintf("invalid format %q: must be one of %v", o.Format, ValidFormats))
	}
	o.tag, err = language.Parse(o.Lang)
	if err != nil {
		return WrapExitError(ExitCommandError, fmt.Sprintf("invalid language %q", o.Lang), err)
	}
	o.catalog, err = locale.Default()
	if err != nil {
		return WrapExitError(ExitCommandError, "loading locale tables", err)
	}

	level := slog.LevelWarn
	if o.Verbose {
		level = slog.LevelDebug
	}
	o.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	o.logger.Debug("options resolved",
		"format", o.Format,
		"lang", o.tag.String(),
		"tz", o.Timezone,
		"config", cfg.ConfigFileUsed(),
		"db", o.DB,
	)
	return nil
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}
