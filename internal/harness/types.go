package harness

// Trace event types.
const (
	EventCall   = "call"
	EventReturn = "return"
)

// TraceEvent records one operation call or its outcome.
type TraceEvent struct {
	Type  string         `json:"type"` // "call" or "return"
	Op    string         `json:"op,omitempty"`
	Args  map[string]any `json:"args,omitempty"`
	Value *string        `json:"value,omitempty"`
	Error string         `json:"error,omitempty"`
	Seq   int64          `json:"seq"`
}

// Result is the outcome of running a scenario.
type Result struct {
	// Pass is true when every step matched its expectation and every
	// assertion held.
	Pass bool `json:"pass"`

	// Trace holds a call and a return event per executed step.
	Trace []TraceEvent `json:"trace"`

	// Errors holds mismatch messages. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
	}
}

// AddError records a mismatch and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddCallTrace appends the call of op.
func (r *Result) AddCallTrace(op string, args map[string]any, seq int64) {
	r.Trace = append(r.Trace, TraceEvent{
		Type: EventCall,
		Op:   op,
		Args: args,
		Seq:  seq,
	})
}

// AddReturnTrace appends the outcome of a call. Exactly one of value and
// code is meaningful: a failed call carries its error code.
func (r *Result) AddReturnTrace(value string, code string, seq int64) {
	ev := TraceEvent{Type: EventReturn, Seq: seq}
	if code != "" {
		ev.Error = code
	} else {
		ev.Value = &value
	}
	r.Trace = append(r.Trace, ev)
}
