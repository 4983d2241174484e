package harness

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/almanac/calerr"
)

// Runner executes scenarios against a Registry.
type Runner struct {
	registry *Registry
	logger   *slog.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the logger that receives one debug record per step.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) { r.logger = logger }
}

// New returns a Runner over registry. Logs are discarded unless WithLogger
// is given.
func New(registry *Registry, opts ...Option) *Runner {
	r := &Runner{
		registry: registry,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes every step of scenario in order and then evaluates its
// assertions.
//
// A step whose outcome differs from its expectation fails the Result but
// does not stop the run. Run itself only returns an error for defects in the
// scenario: an unregistered op, missing or mistyped arguments, or a
// cancelled context.
func (r *Runner) Run(ctx context.Context, scenario *Scenario) (*Result, error) {
	result := NewResult()
	var seq int64

	for i, step := range scenario.Steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		op, ok := r.registry.Lookup(step.Op)
		if !ok {
			return nil, fmt.Errorf("step %d: unknown op %q", i, step.Op)
		}

		seq++
		result.AddCallTrace(step.Op, step.Args, seq)

		value, err := op(Args(step.Args))
		if errors.Is(err, ErrBadArgs) {
			return nil, fmt.Errorf("step %d (%s): %w", i, step.Op, err)
		}
		code := string(calerr.CodeOf(err))
		if err != nil && code == "" {
			return nil, fmt.Errorf("step %d (%s): %w", i, step.Op, err)
		}

		seq++
		result.AddReturnTrace(value, code, seq)

		r.logger.Debug("step executed",
			"scenario", scenario.Name,
			"step", i,
			"op", step.Op,
			"value", value,
			"error", code,
		)

		if msg := checkExpect(step.Expect, value, code); msg != "" {
			result.AddError(fmt.Sprintf("step %d (%s): %s", i, step.Op, msg))
		}
	}

	for _, msg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(msg)
	}

	r.logger.Info("scenario finished",
		"scenario", scenario.Name,
		"pass", result.Pass,
		"errors", len(result.Errors),
	)
	return result, nil
}

// checkExpect returns a description of the mismatch, or "" if the outcome
// matches.
func checkExpect(want Expect, value, code string) string {
	switch {
	case want.Error != "" && code == "":
		return fmt.Sprintf("expected error %s, got value %q", want.Error, value)
	case want.Error != "" && code != want.Error:
		return fmt.Sprintf("expected error %s, got error %s", want.Error, code)
	case want.Error != "":
		return ""
	case code != "":
		return fmt.Sprintf("expected value %q, got error %s", deref(want.Value), code)
	case want.Value != nil && *want.Value != value:
		return fmt.Sprintf("expected value %q, got %q", *want.Value, value)
	}
	return ""
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
