package cli

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/almanac/internal/harness"
	"github.com/roach88/almanac/internal/store"
)

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history [run-id|latest]",
		Short: "Show scenario checks recorded with check --db",
		Long: `Show scenario checks recorded with check --db.

Without arguments, lists the most recent runs. With a run ID, or "latest",
shows every scenario of that run.

The database comes from --db, the db key of the config file or ALMANAC_DB.`,
		Example: `  almanac history --db history.db
  almanac history latest --db history.db --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := newFormatter(rootOpts, cmd)
			if rootOpts.DB == "" {
				return f.Fail(errors.New("no history database: pass --db or set db in the config file"))
			}

			s, err := store.Open(cmd.Context(), rootOpts.DB)
			if err != nil {
				return f.Fail(err)
			}
			defer s.Close()

			if len(args) == 0 {
				runs, err := s.ListRuns(cmd.Context(), limit)
				if err != nil {
					return f.Fail(err)
				}
				return f.Success(runList(runs))
			}

			var run store.Run
			if args[0] == "latest" {
				run, err = s.ReadLatestRun(cmd.Context())
			} else {
				run, err = s.ReadRun(cmd.Context(), args[0])
			}
			if errors.Is(err, sql.ErrNoRows) {
				msg := fmt.Sprintf("run not found: %s", args[0])
				if outErr := f.Error(ErrCodeNotFound, msg, nil); outErr != nil {
					return outErr
				}
				return NewExitError(ExitFailure, msg)
			}
			if err != nil {
				return f.Fail(err)
			}
			return f.Success(newRunDetail(run))
		},
	}

	cmd.Flags().StringVar(&rootOpts.DB, "db", "", "SQLite history database written by check --db")
	cmd.Flags().IntVar(&limit, "limit", 20, "number of runs to list (0 for all)")

	return cmd
}

type runList []store.RunSummary

func (l runList) renderText(f *OutputFormatter) string {
	if len(l) == 0 {
		return "No runs recorded."
	}
	s := f.styles()
	rows := make([][2]string, len(l))
	for i, r := range l {
		status := s.Pass.Render(fmt.Sprintf("%d passed", r.Passed))
		if r.Failed > 0 {
			status = s.Fail.Render(fmt.Sprintf("%d failed", r.Failed)) + ", " + status
		}
		rows[i] = [2]string{"#" + strconv.FormatInt(r.Seq, 10), fmt.Sprintf("%s  %s  %s", r.ID, r.Dir, status)}
	}
	return s.Table(rows)
}

// runDetail is the JSON form of a recorded run.
type runDetail struct {
	ID        string             `json:"id"`
	Seq       int64              `json:"seq"`
	Dir       string             `json:"dir"`
	Passed    int                `json:"passed"`
	Failed    int                `json:"failed"`
	Scenarios []recordedScenario `json:"scenarios"`
}

// recordedScenario is a scenario result with its trace.
type recordedScenario struct {
	ScenarioResult
	Trace []harness.TraceEvent `json:"trace"`
}

func newRunDetail(run store.Run) runDetail {
	d := runDetail{
		ID:        run.ID,
		Seq:       run.Seq,
		Dir:       run.Dir,
		Passed:    run.Passed(),
		Failed:    run.Failed(),
		Scenarios: make([]recordedScenario, 0, len(run.Scenarios)),
	}
	for _, sc := range run.Scenarios {
		d.Scenarios = append(d.Scenarios, recordedScenario{
			ScenarioResult: ScenarioResult{Name: sc.Name, Pass: sc.Pass, Golden: sc.Golden, Errors: sc.Errors},
			Trace:          sc.Trace,
		})
	}
	return d
}

func (d runDetail) renderText(f *OutputFormatter) string {
	s := f.styles()
	var b strings.Builder
	b.WriteString(s.Muted.Render(fmt.Sprintf("run %d (%s) in %s", d.Seq, d.ID, d.Dir)))
	b.WriteByte('\n')
	res := CheckResult{Passed: d.Passed, Failed: d.Failed, Total: len(d.Scenarios)}
	for _, sc := range d.Scenarios {
		res.Scenarios = append(res.Scenarios, sc.ScenarioResult)
	}
	b.WriteString(res.renderText(f))
	return b.String()
}
