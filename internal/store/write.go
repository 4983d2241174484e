package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/almanac/internal/harness"
)

// Run is one recorded invocation of the check command.
type Run struct {
	ID        string // trace ID of the invocation
	Seq       int64  // assigned by WriteRun; ignored on input
	Dir       string // scenarios directory as given on the command line
	Scenarios []ScenarioRecord
}

// Passed returns the number of passing scenarios.
func (r Run) Passed() int {
	n := 0
	for _, s := range r.Scenarios {
		if s.Pass {
			n++
		}
	}
	return n
}

// Failed returns the number of failing scenarios.
func (r Run) Failed() int { return len(r.Scenarios) - r.Passed() }

// ScenarioRecord is the outcome of one scenario within a run.
type ScenarioRecord struct {
	Name   string
	Pass   bool
	Golden string
	Errors []string
	Trace  []harness.TraceEvent
}

// WriteRun records run and returns the seq it was stored under.
//
// Writes are idempotent on run.ID: writing the same ID again stores nothing
// and returns the seq of the existing run.
func (s *Store) WriteRun(ctx context.Context, run Run) (int64, error) {
	if run.ID == "" {
		return 0, fmt.Errorf("write run: id is required")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("write run: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	var existing int64
	err = tx.QueryRowContext(ctx, `SELECT seq FROM runs WHERE id = ?`, run.ID).Scan(&existing)
	switch {
	case err == nil:
		return existing, nil
	case !errors.Is(err, sql.ErrNoRows):
		return 0, fmt.Errorf("write run: lookup: %w", err)
	}

	var seq int64
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) + 1 FROM runs`).Scan(&seq); err != nil {
		return 0, fmt.Errorf("write run: next seq: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, seq, dir, passed, failed)
		VALUES (?, ?, ?, ?, ?)
	`, run.ID, seq, run.Dir, run.Passed(), run.Failed())
	if err != nil {
		return 0, fmt.Errorf("write run: %w", err)
	}

	for pos, sc := range run.Scenarios {
		if err := writeScenario(ctx, tx, run.ID, pos, sc); err != nil {
			return 0, fmt.Errorf("write run: scenario %s: %w", sc.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("write run: commit: %w", err)
	}
	return seq, nil
}

func writeScenario(ctx context.Context, tx *sql.Tx, runID string, pos int, sc ScenarioRecord) error {
	errsJSON, err := marshalErrors(sc.Errors)
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO scenario_results (run_id, position, name, pass, golden, errors)
		VALUES (?, ?, ?, ?, ?, ?)
	`, runID, pos, sc.Name, sc.Pass, sc.Golden, errsJSON)
	if err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO trace_events (run_id, position, seq, type, op, args, value, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, ev := range sc.Trace {
		args, err := marshalArgs(ev.Args)
		if err != nil {
			return err
		}
		var value sql.NullString
		if ev.Value != nil {
			value = sql.NullString{String: *ev.Value, Valid: true}
		}
		if _, err := stmt.ExecContext(ctx, runID, pos, ev.Seq, ev.Type, ev.Op, args, value, ev.Error); err != nil {
			return fmt.Errorf("event %d: %w", ev.Seq, err)
		}
	}
	return nil
}
