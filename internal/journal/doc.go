// Package journal persists run history in SQLite so past cleanup runs and
// their moves can be inspected after the fact. Recording is best effort from
// the engine's point of view: journal failures are logged, never fatal.
package journal
