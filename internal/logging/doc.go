// Package logging builds the slog loggers used by the engine binary.
//
// The launcher deliberately has no logging subsystem: its only output is the
// short diagnostic it prints before a precondition exit or a contention
// skip. The engine logs operationally -- what was scanned, routed, moved, or
// failed -- on stderr so stdout stays reserved for the run report.
package logging
