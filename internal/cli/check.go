package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/roach88/almanac/internal/harness"
	"github.com/roach88/almanac/internal/store"
)

// CheckOptions holds flags for the check command.
type CheckOptions struct {
	*RootOptions
	Update bool   // regenerate golden files
	Filter string // scenario filter (glob pattern)
}

// ScenarioResult holds the result of a single scenario execution.
type ScenarioResult struct {
	Name   string   `json:"name"`
	Pass   bool     `json:"pass"`
	Golden string   `json:"golden,omitempty"` // "match", "updated" or "missing"
	Errors []string `json:"errors,omitempty"`

	trace []harness.TraceEvent
}

// CheckResult holds the overall check result.
type CheckResult struct {
	Scenarios []ScenarioResult `json:"scenarios"`
	Passed    int              `json:"passed"`
	Failed    int              `json:"failed"`
	Total     int              `json:"total"`
	RunID     string           `json:"run_id,omitempty"`  // set when recorded with --db
	RunSeq    int64            `json:"run_seq,omitempty"` // history number of the recorded run
}

// goldenDir is the directory, relative to the scenarios directory, that
// holds one <scenario-name>.golden trace snapshot per scenario.
const goldenDir = "golden"

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CheckOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "check <scenarios-dir>",
		Short: "Run scenario files against the almanac operations",
		Long: `Run every YAML or TOML scenario below a directory.

Each step's result must match its expectation. When golden/<name>.golden
exists next to the scenarios, the recorded trace must also match it.

Exit codes:
  0 - All scenarios passed
  1 - One or more scenarios failed
  2 - Command error (missing directory, bad filter)`,
		Example: `  almanac check ./scenarios
  almanac check ./scenarios --filter "month_*"
  almanac check ./scenarios --update
  almanac check ./scenarios --format json
  almanac check ./scenarios --db history.db`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Update, "update", false, "regenerate golden files")
	cmd.Flags().StringVar(&opts.Filter, "filter", "", "filter scenarios by glob pattern on the file name")
	cmd.Flags().StringVar(&rootOpts.DB, "db", "", "record the run in this SQLite history database")

	return cmd
}

func runCheck(opts *CheckOptions, dir string, cmd *cobra.Command) error {
	f := newFormatter(opts.RootOptions, cmd)

	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		msg := fmt.Sprintf("scenarios directory not found: %s", dir)
		if outErr := f.Error(ErrCodeNotFound, msg, nil); outErr != nil {
			return outErr
		}
		return NewExitError(ExitCommandError, msg)
	}
	if opts.Filter != "" && !doublestar.ValidatePattern(opts.Filter) {
		msg := fmt.Sprintf("invalid filter pattern: %s", opts.Filter)
		if outErr := f.Error(ErrCodeBadInput, msg, nil); outErr != nil {
			return outErr
		}
		return NewExitError(ExitCommandError, msg)
	}

	fsys := afero.NewBasePathFs(afero.NewOsFs(), dir)
	files, err := harness.Discover(fsys, ".")
	if err != nil {
		return f.Fail(err)
	}

	var runOpts []harness.Option
	if opts.logger != nil {
		runOpts = append(runOpts, harness.WithLogger(opts.logger))
	}
	runner := harness.New(harness.DefaultRegistry(), runOpts...)
	result := CheckResult{Scenarios: []ScenarioResult{}}
	for _, file := range files {
		if !matchesFilter(opts.Filter, file) {
			continue
		}
		sr := checkScenario(cmd, opts, runner, fsys, file)
		result.Scenarios = append(result.Scenarios, sr)
		result.Total++
		if sr.Pass {
			result.Passed++
		} else {
			result.Failed++
		}
	}

	if opts.DB != "" {
		if err := recordRun(cmd.Context(), opts.DB, f.TraceID, dir, &result); err != nil {
			if outErr := f.Error(ErrCodeGeneric, err.Error(), nil); outErr != nil {
				return outErr
			}
			return WrapExitError(ExitCommandError, ErrCodeGeneric, err)
		}
		f.VerboseLog("recorded run %d in %s", result.RunSeq, opts.DB)
	}

	if err := outputCheck(f, result); err != nil {
		return err
	}
	if result.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d of %d scenarios failed", result.Failed, result.Total))
	}
	return nil
}

// matchesFilter matches the file name without its extension.
func matchesFilter(filter, file string) bool {
	if filter == "" {
		return true
	}
	base := path.Base(file)
	ok, _ := doublestar.Match(filter, strings.TrimSuffix(base, path.Ext(base)))
	return ok
}

func checkScenario(cmd *cobra.Command, opts *CheckOptions, runner *harness.Runner, fsys afero.Fs, file string) ScenarioResult {
	scenario, err := harness.LoadScenario(fsys, file)
	if err != nil {
		return ScenarioResult{Name: file, Errors: []string{fmt.Sprintf("load error: %v", err)}}
	}

	res, err := runner.Run(cmd.Context(), scenario)
	if err != nil {
		return ScenarioResult{Name: scenario.Name, Errors: []string{fmt.Sprintf("execution error: %v", err)}}
	}

	sr := ScenarioResult{Name: scenario.Name, Pass: res.Pass, Errors: res.Errors, trace: res.Trace}
	snapshot, err := harness.MarshalSnapshot(scenario.Name, res)
	if err != nil {
		sr.Pass = false
		sr.Errors = append(sr.Errors, fmt.Sprintf("failed to marshal trace: %v", err))
		return sr
	}

	goldenPath := path.Join(goldenDir, scenario.Name+".golden")
	if opts.Update {
		if err := writeGolden(fsys, goldenPath, snapshot); err != nil {
			sr.Pass = false
			sr.Errors = append(sr.Errors, err.Error())
			return sr
		}
		sr.Golden = "updated"
		return sr
	}

	want, err := afero.ReadFile(fsys, goldenPath)
	switch {
	case os.IsNotExist(err):
		// No golden file: the expectations alone decide.
		sr.Golden = "missing"
	case err != nil:
		sr.Pass = false
		sr.Errors = append(sr.Errors, fmt.Sprintf("failed to read golden file: %v", err))
	case string(want) != string(snapshot):
		sr.Pass = false
		sr.Errors = append(sr.Errors, "trace does not match golden file (run with --update to regenerate)")
	default:
		sr.Golden = "match"
	}
	return sr
}

func writeGolden(fsys afero.Fs, name string, data []byte) error {
	if err := fsys.MkdirAll(path.Dir(name), 0o755); err != nil {
		return fmt.Errorf("failed to create golden directory: %w", err)
	}
	if err := afero.WriteFile(fsys, name, data, 0o644); err != nil {
		return fmt.Errorf("failed to write golden file: %w", err)
	}
	return nil
}

// recordRun stores result under runID and fills in its history number.
func recordRun(ctx context.Context, dbPath, runID, dir string, result *CheckResult) error {
	s, err := store.Open(ctx, dbPath)
	if err != nil {
		return err
	}
	defer s.Close()

	run := store.Run{ID: runID, Dir: dir}
	for _, sr := range result.Scenarios {
		run.Scenarios = append(run.Scenarios, store.ScenarioRecord{
			Name:   sr.Name,
			Pass:   sr.Pass,
			Golden: sr.Golden,
			Errors: sr.Errors,
			Trace:  sr.trace,
		})
	}
	seq, err := s.WriteRun(ctx, run)
	if err != nil {
		return err
	}
	result.RunID, result.RunSeq = runID, seq
	return nil
}

func outputCheck(f *OutputFormatter, result CheckResult) error {
	if f.Format == "json" {
		status := "ok"
		if result.Failed > 0 {
			status = "error"
		}
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status:  status,
			Data:    result,
			TraceID: f.TraceID,
		})
	}

	if result.Total == 0 {
		fmt.Fprintln(f.Writer, "No scenarios found.")
		return nil
	}
	fmt.Fprintln(f.Writer, result.renderText(f))
	return nil
}

func (r CheckResult) renderText(f *OutputFormatter) string {
	s := f.styles()
	var b strings.Builder
	for _, sr := range r.Scenarios {
		if sr.Pass {
			line := "✓ " + sr.Name
			if sr.Golden == "updated" {
				line += " (golden updated)"
			}
			b.WriteString(s.Pass.Render(line))
		} else {
			b.WriteString(s.Fail.Render("✗ " + sr.Name))
		}
		b.WriteByte('\n')
		for _, e := range sr.Errors {
			b.WriteString("  " + e + "\n")
		}
	}
	summary := fmt.Sprintf("%d passed, %d failed, %d total", r.Passed, r.Failed, r.Total)
	if r.Failed > 0 {
		b.WriteString(s.Fail.Render(summary))
	} else {
		b.WriteString(s.Pass.Render(summary))
	}
	if r.RunSeq != 0 {
		b.WriteByte('\n')
		b.WriteString(s.Muted.Render(fmt.Sprintf("recorded as run %d (%s)", r.RunSeq, r.RunID)))
	}
	return b.String()
}
