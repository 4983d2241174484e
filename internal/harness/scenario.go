package harness

import (
	"bytes"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Scenario is a scripted sequence of almanac operations with the outcome
// each one must produce.
type Scenario struct {
	// Name uniquely identifies this scenario. It also names the golden file.
	Name string `yaml:"name" toml:"name"`

	// Description explains what this scenario checks.
	Description string `yaml:"description" toml:"description"`

	// Steps run in order. A failing step does not stop the run.
	Steps []Step `yaml:"steps" toml:"steps"`

	// Assertions run against the trace after every step has executed.
	Assertions []Assertion `yaml:"assertions,omitempty" toml:"assertions,omitempty"`
}

// Step invokes one registered operation.
type Step struct {
	// Op is the operation name, e.g. "date.plus_months".
	Op string `yaml:"op" toml:"op"`

	// Args holds the operation's arguments. Dates, periods and durations
	// are written in ISO-8601 form.
	Args map[string]any `yaml:"args,omitempty" toml:"args,omitempty"`

	// Expect is the required outcome.
	Expect Expect `yaml:"expect" toml:"expect"`
}

// Expect holds either the exact string form of the result or the error code
// the step must fail with.
type Expect struct {
	Value *string `yaml:"value,omitempty" toml:"value,omitempty"`
	Error string  `yaml:"error,omitempty" toml:"error,omitempty"`
}

// Assertion checks the trace as a whole.
type Assertion struct {
	// Type is one of trace_contains, trace_order or trace_count.
	Type string `yaml:"type" toml:"type"`

	// Op is the operation name (trace_contains, trace_count).
	Op string `yaml:"op,omitempty" toml:"op,omitempty"`

	// Args are matched as a subset of the call's arguments (trace_contains).
	Args map[string]any `yaml:"args,omitempty" toml:"args,omitempty"`

	// Count is the exact number of calls (trace_count).
	Count int `yaml:"count,omitempty" toml:"count,omitempty"`

	// Ops lists operations that must be called in this order (trace_order).
	Ops []string `yaml:"ops,omitempty" toml:"ops,omitempty"`
}

// Assertion type constants.
const (
	AssertTraceContains = "trace_contains"
	AssertTraceOrder    = "trace_order"
	AssertTraceCount    = "trace_count"
)

// LoadScenario reads a scenario file from fsys. Files ending in .toml are
// decoded as TOML and everything else as YAML. Both decoders reject unknown
// fields, and the result is checked against the scenario schema.
func LoadScenario(fsys afero.Fs, name string) (*Scenario, error) {
	data, err := afero.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var scenario Scenario
	if strings.EqualFold(path.Ext(name), ".toml") {
		err = decodeTOML(data, &scenario)
	} else {
		err = decodeYAML(data, &scenario)
	}
	if err != nil {
		return nil, err
	}
	normalizeScenario(&scenario)

	if err := ValidateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario %s: %w", name, err)
	}
	return &scenario, nil
}

func decodeYAML(data []byte, s *Scenario) error {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(s); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}
	return nil
}

func decodeTOML(data []byte, s *Scenario) error {
	md, err := toml.Decode(string(data), s)
	if err != nil {
		return fmt.Errorf("failed to parse TOML: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("failed to parse TOML: unknown field %q", undecoded[0].String())
	}
	return nil
}

// normalizeScenario maps decoder-specific argument types onto strings and
// int64 so YAML and TOML scenarios produce identical traces.
func normalizeScenario(s *Scenario) {
	for i := range s.Steps {
		s.Steps[i].Args = normalizeArgs(s.Steps[i].Args)
	}
	for i := range s.Assertions {
		s.Assertions[i].Args = normalizeArgs(s.Assertions[i].Args)
	}
}

func normalizeArgs(args map[string]any) map[string]any {
	if args == nil {
		return nil
	}
	out := make(map[string]any, len(args))
	for k, v := range args {
		switch v := v.(type) {
		case int:
			out[k] = int64(v)
		case time.Time:
			// Unquoted YAML dates and TOML local dates.
			out[k] = v.Format(time.DateOnly)
		default:
			out[k] = v
		}
	}
	return out
}

// ValidateScenario checks a decoded scenario against the embedded CUE schema
// and then applies the checks the schema cannot express.
func ValidateScenario(s *Scenario) error {
	if err := validateSchema(s); err != nil {
		return err
	}
	for i, a := range s.Assertions {
		if err := validateAssertion(i, &a); err != nil {
			return err
		}
	}
	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	switch a.Type {
	case AssertTraceContains:
		if a.Op == "" {
			return fmt.Errorf("assertions[%d]: trace_contains requires op", index)
		}
	case AssertTraceCount:
		if a.Op == "" {
			return fmt.Errorf("assertions[%d]: trace_count requires op", index)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative", index)
		}
	case AssertTraceOrder:
		if len(a.Ops) < 2 {
			return fmt.Errorf("assertions[%d]: trace_order requires at least 2 ops", index)
		}
	case "":
		return fmt.Errorf("assertions[%d]: type is required", index)
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	return nil
}
