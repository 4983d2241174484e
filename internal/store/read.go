package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/roach88/almanac/internal/harness"
)

// RunSummary is a run without its scenarios.
type RunSummary struct {
	ID     string `json:"id"`
	Seq    int64  `json:"seq"`
	Dir    string `json:"dir"`
	Passed int    `json:"passed"`
	Failed int    `json:"failed"`
}

// ListRuns returns up to limit runs, newest first. A limit of zero or less
// returns every run.
//
// Returns an empty slice (not nil) if nothing has been recorded.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, seq, dir, passed, failed
		FROM runs
		ORDER BY seq DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []RunSummary{}
	for rows.Next() {
		var r RunSummary
		if err := rows.Scan(&r.ID, &r.Seq, &r.Dir, &r.Passed, &r.Failed); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// ReadRun retrieves a run with its scenarios and traces.
// Returns sql.ErrNoRows if not found.
func (s *Store) ReadRun(ctx context.Context, id string) (Run, error) {
	run := Run{ID: id}
	err := s.db.QueryRowContext(ctx, `SELECT seq, dir FROM runs WHERE id = ?`, id).Scan(&run.Seq, &run.Dir)
	if err != nil {
		return Run{}, err
	}

	scenarios, err := s.readScenarios(ctx, id)
	if err != nil {
		return Run{}, err
	}
	for i := range scenarios {
		scenarios[i].Trace, err = s.readTrace(ctx, id, i)
		if err != nil {
			return Run{}, err
		}
	}
	run.Scenarios = scenarios
	return run, nil
}

// ReadLatestRun retrieves the run with the highest seq.
// Returns sql.ErrNoRows if nothing has been recorded.
func (s *Store) ReadLatestRun(ctx context.Context) (Run, error) {
	var id string
	if err := s.db.QueryRowContext(ctx, `SELECT id FROM runs ORDER BY seq DESC LIMIT 1`).Scan(&id); err != nil {
		return Run{}, err
	}
	return s.ReadRun(ctx, id)
}

func (s *Store) readScenarios(ctx context.Context, runID string) ([]ScenarioRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, pass, golden, errors
		FROM scenario_results
		WHERE run_id = ?
		ORDER BY position ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query scenario results: %w", err)
	}
	defer rows.Close()

	scenarios := []ScenarioRecord{}
	for rows.Next() {
		var (
			sc       ScenarioRecord
			errsJSON string
		)
		if err := rows.Scan(&sc.Name, &sc.Pass, &sc.Golden, &errsJSON); err != nil {
			return nil, fmt.Errorf("scan scenario result: %w", err)
		}
		if sc.Errors, err = unmarshalErrors(errsJSON); err != nil {
			return nil, err
		}
		scenarios = append(scenarios, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate scenario results: %w", err)
	}
	return scenarios, nil
}

func (s *Store) readTrace(ctx context.Context, runID string, pos int) ([]harness.TraceEvent, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT seq, type, op, args, value, error
		FROM trace_events
		WHERE run_id = ? AND position = ?
		ORDER BY seq ASC
	`, runID, pos)
	if err != nil {
		return nil, fmt.Errorf("query trace: %w", err)
	}
	defer rows.Close()

	trace := []harness.TraceEvent{}
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		trace = append(trace, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate trace: %w", err)
	}
	return trace, nil
}

func scanEvent(rows *sql.Rows) (harness.TraceEvent, error) {
	var (
		ev    harness.TraceEvent
		args  sql.NullString
		value sql.NullString
	)
	if err := rows.Scan(&ev.Seq, &ev.Type, &ev.Op, &args, &value, &ev.Error); err != nil {
		return harness.TraceEvent{}, fmt.Errorf("scan trace event: %w", err)
	}
	var err error
	if ev.Args, err = unmarshalArgs(args); err != nil {
		return harness.TraceEvent{}, err
	}
	if value.Valid {
		ev.Value = &value.String
	}
	return ev, nil
}
