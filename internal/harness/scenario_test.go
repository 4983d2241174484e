package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memFS(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	for name, content := range files {
		require.NoError(t, afero.WriteFile(fs, name, []byte(content), 0o644))
	}
	return fs
}

func TestLoadScenario_YAML(t *testing.T) {
	s, err := LoadScenario(afero.NewOsFs(), "testdata/scenarios/month_arithmetic.yaml")
	require.NoError(t, err)

	assert.Equal(t, "month_arithmetic", s.Name)
	require.Len(t, s.Steps, 10)
	assert.Equal(t, "date.plus_months", s.Steps[0].Op)
	assert.Equal(t, map[string]any{"date": "2019-01-31", "months": int64(1)}, s.Steps[0].Args)
	require.NotNil(t, s.Steps[0].Expect.Value)
	assert.Equal(t, "2019-02-28", *s.Steps[0].Expect.Value)
	assert.Equal(t, "ARITHMETIC_OVERFLOW", s.Steps[8].Expect.Error)
	assert.Nil(t, s.Steps[8].Expect.Value)
	require.Len(t, s.Assertions, 2)
}

func TestLoadScenario_TOML(t *testing.T) {
	s, err := LoadScenario(afero.NewOsFs(), "testdata/scenarios/durations.toml")
	require.NoError(t, err)

	assert.Equal(t, "durations", s.Name)
	require.Len(t, s.Steps, 7)
	assert.Equal(t, map[string]any{"duration": "PT7S", "scalar": int64(2)}, s.Steps[1].Args)
	assert.Equal(t, "DIVISION_BY_ZERO", s.Steps[2].Expect.Error)
	assert.Equal(t, []string{"duration.plus", "duration.div", "period.normalized"}, s.Assertions[0].Ops)
}

func TestLoadScenario_UnquotedDates(t *testing.T) {
	fs := memFS(t, map[string]string{
		"s.yaml": `
name: unquoted
description: "dates written as YAML timestamps"
steps:
  - op: date.plus_days
    args: { date: 2019-01-31, days: 1 }
    expect: { value: "2019-02-01" }
`,
		"s.toml": `
name = "unquoted"
description = "dates written as TOML local dates"
[[steps]]
op = "date.plus_days"
args = { date = 2019-01-31, days = 1 }
expect = { value = "2019-02-01" }
`,
	})

	for _, name := range []string{"s.yaml", "s.toml"} {
		t.Run(name, func(t *testing.T) {
			s, err := LoadScenario(fs, name)
			require.NoError(t, err)
			assert.Equal(t, "2019-01-31", s.Steps[0].Args["date"])
			assert.Equal(t, int64(1), s.Steps[0].Args["days"])
		})
	}
}

func TestLoadScenario_UnknownFields(t *testing.T) {
	fs := memFS(t, map[string]string{
		"typo.yaml": `
name: typo
description: "misspelled field"
step:
  - op: date.parse
`,
		"typo.toml": `
name = "typo"
description = "misspelled field"
[[steps]]
op = "date.parse"
args = { text = "2019-01-01" }
expect = { value = "2019-01-01" }
expected = "oops"
`,
	})

	_, err := LoadScenario(fs, "typo.yaml")
	assert.ErrorContains(t, err, "failed to parse YAML")

	_, err = LoadScenario(fs, "typo.toml")
	assert.ErrorContains(t, err, "unknown field")

	_, err = LoadScenario(fs, "missing.yaml")
	assert.ErrorContains(t, err, "failed to read scenario file")
}

func validScenario() *Scenario {
	v := "2019-02-01"
	return &Scenario{
		Name:        "valid",
		Description: "a valid scenario",
		Steps: []Step{{
			Op:     "date.plus_days",
			Args:   map[string]any{"date": "2019-01-31", "days": int64(1)},
			Expect: Expect{Value: &v},
		}},
	}
}

func TestValidateScenario(t *testing.T) {
	require.NoError(t, ValidateScenario(validScenario()))

	empty := ""
	tests := []struct {
		name    string
		mutate  func(s *Scenario)
		wantErr string
	}{
		{"missing description", func(s *Scenario) { s.Description = "" }, "schema"},
		{"bad name", func(s *Scenario) { s.Name = "Has Spaces" }, "schema"},
		{"no steps", func(s *Scenario) { s.Steps = nil }, "schema"},
		{"bad op", func(s *Scenario) { s.Steps[0].Op = "Date.PlusDays" }, "schema"},
		{"no expectation", func(s *Scenario) { s.Steps[0].Expect = Expect{} }, "schema"},
		{"value and error", func(s *Scenario) { s.Steps[0].Expect.Error = "PARSE_FAILURE" }, "schema"},
		{"unknown error code", func(s *Scenario) {
			s.Steps[0].Expect = Expect{Error: "SOMETHING_ELSE"}
		}, "schema"},
		{"float argument", func(s *Scenario) { s.Steps[0].Args["days"] = 1.5 }, "schema"},
		{"unknown assertion", func(s *Scenario) {
			s.Assertions = []Assertion{{Type: "final_state"}}
		}, "schema"},
		{"short trace_order", func(s *Scenario) {
			s.Assertions = []Assertion{{Type: AssertTraceOrder, Ops: []string{"date.parse"}}}
		}, "at least 2 ops"},
		{"trace_count without op", func(s *Scenario) {
			s.Assertions = []Assertion{{Type: AssertTraceCount, Count: 1}}
		}, "requires op"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validScenario()
			tt.mutate(s)
			err := ValidateScenario(s)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	t.Run("empty expected value", func(t *testing.T) {
		s := validScenario()
		s.Steps[0].Expect = Expect{Value: &empty}
		assert.NoError(t, ValidateScenario(s))
	})
}

func TestDiscover(t *testing.T) {
	files, err := Discover(afero.NewOsFs(), "testdata/scenarios")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"testdata/scenarios/durations.toml",
		"testdata/scenarios/month_arithmetic.yaml",
		"testdata/scenarios/progressions/day_steps.yaml",
	}, files)

	based := afero.NewBasePathFs(afero.NewOsFs(), "testdata/scenarios/progressions")
	files, err = Discover(based, ".")
	require.NoError(t, err)
	assert.Equal(t, []string{"day_steps.yaml"}, files)
}

func TestLoadAll(t *testing.T) {
	scenarios, err := LoadAll(afero.NewOsFs(), "testdata/scenarios")
	require.NoError(t, err)
	require.Len(t, scenarios, 3)
	assert.Equal(t, "durations", scenarios[0].Name)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte("name: [unterminated"), 0o644))
	_, err = LoadAll(afero.NewBasePathFs(afero.NewOsFs(), dir), ".")
	assert.ErrorContains(t, err, "failed to parse YAML")
}
