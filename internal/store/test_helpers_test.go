package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/roach88/almanac/internal/harness"
)

// createTestStore creates a new store in a temporary directory.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(context.Background(), path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func strPtr(s string) *string { return &s }

// createTestRun creates a run with one passing and one failing scenario.
func createTestRun(id string) Run {
	return Run{
		ID:  id,
		Dir: "scenarios",
		Scenarios: []ScenarioRecord{
			{
				Name:   "leap_day",
				Pass:   true,
				Golden: "match",
				Trace: []harness.TraceEvent{
					{Type: harness.EventCall, Op: "date.plus_years", Args: map[string]any{"date": "2020-02-29", "years": int64(1)}, Seq: 1},
					{Type: harness.EventReturn, Value: strPtr("2021-02-28"), Seq: 2},
					{Type: harness.EventCall, Op: "date.parse", Args: map[string]any{"text": "2021-02-29"}, Seq: 3},
					{Type: harness.EventReturn, Error: "PARSE_FAILURE", Seq: 4},
				},
			},
			{
				Name:   "wrong",
				Pass:   false,
				Errors: []string{`step 0 (date.day_of_week): expected value "Sunday", got "Saturday"`},
				Trace: []harness.TraceEvent{
					{Type: harness.EventCall, Op: "date.day_of_week", Args: map[string]any{"date": "2020-02-29"}, Seq: 1},
					{Type: harness.EventReturn, Value: strPtr("Saturday"), Seq: 2},
				},
			},
		},
	}
}
