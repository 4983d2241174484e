// Package store provides SQLite-backed history for scenario checks.
//
// Every run of the check command can be recorded with:
//   - Runs: one row per invocation, keyed by its trace ID
//   - Scenario results: pass/fail, golden status and mismatch messages
//   - Trace events: the call and return events of each scenario
//
// Runs are numbered by a logical seq assigned on write, never by wall time,
// so listings are deterministic. Writes are idempotent on the run ID.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
//
// The layout is versioned through PRAGMA user_version. Opening an older
// database upgrades it one version at a time; a newer one is refused.
package store
