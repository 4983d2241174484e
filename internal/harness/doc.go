// Package harness runs conformance scenarios against the almanac types.
//
// A scenario is a list of steps. Each step names a registered operation,
// passes it arguments in ISO-8601 text form and states either the exact
// string the operation must return or the error code it must fail with.
//
// # Scenario Format
//
// Scenarios are YAML or TOML files:
//
//	name: month_end_clamping
//	description: "Adding months clamps to the last day"
//	steps:
//	  - op: date.plus_months
//	    args: { date: "2019-01-31", months: 1 }
//	    expect:
//	      value: "2019-02-28"
//	  - op: date.plus_days
//	    args: { date: "+999999999-12-31", days: 1 }
//	    expect:
//	      error: ARITHMETIC_OVERFLOW
//	assertions:
//	  - type: trace_count
//	    op: date.plus_months
//	    count: 1
//
// Unknown fields are rejected and every file is checked against the CUE
// schema in schema.cue before it runs.
//
// # Assertion Types
//
//   - trace_contains: an op was called with (at least) the given args
//   - trace_order: ops were first called in the given order
//   - trace_count: an op was called exactly N times
//
// # Golden Files
//
// Every run produces a trace of call and return events numbered by a
// logical sequence, so traces are deterministic and can be compared against
// golden files with RunWithGolden.
package harness
