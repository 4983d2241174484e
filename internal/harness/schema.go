package harness

import (
	_ "embed"
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
)

//go:embed schema.cue
var schemaSource string

// validateSchema unifies s with #Scenario and requires a concrete result.
func validateSchema(s *Scenario) error {
	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile scenario schema: %w", err)
	}

	def := schema.LookupPath(cue.ParsePath("#Scenario"))
	value := def.Unify(ctx.Encode(s.schemaInput()))
	if err := value.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("schema: %s", cueerrors.Details(err, nil))
	}
	return nil
}

// schemaInput renders s as plain maps, leaving out unset fields so that the
// schema sees exactly what the file contained.
func (s *Scenario) schemaInput() map[string]any {
	steps := make([]any, len(s.Steps))
	for i, st := range s.Steps {
		expect := map[string]any{}
		if st.Expect.Value != nil {
			expect["value"] = *st.Expect.Value
		}
		if st.Expect.Error != "" {
			expect["error"] = st.Expect.Error
		}
		step := map[string]any{"op": st.Op, "expect": expect}
		if st.Args != nil {
			step["args"] = st.Args
		}
		steps[i] = step
	}

	in := map[string]any{
		"name":        s.Name,
		"description": s.Description,
		"steps":       steps,
	}
	if len(s.Assertions) > 0 {
		assertions := make([]any, len(s.Assertions))
		for i, a := range s.Assertions {
			m := map[string]any{"type": a.Type}
			if a.Op != "" {
				m["op"] = a.Op
			}
			if a.Args != nil {
				m["args"] = a.Args
			}
			if a.Count != 0 {
				m["count"] = a.Count
			}
			if a.Ops != nil {
				m["ops"] = a.Ops
			}
			assertions[i] = m
		}
		in["assertions"] = assertions
	}
	return in
}
