// Package launcher gates and starts cleanup engine runs.
//
// A run passes three preconditions (runtime resolvable, engine present,
// rules file present), takes a non-blocking exclusive file lock so
// overlapping schedule triggers cannot race, and then relays the engine
// subprocess's exit code untouched. Lock contention is a quiet skip with
// exit 0, not an error: concurrent triggers are expected. The lock is
// released on every return path, and the OS drops it with the process if
// the launcher dies first.
package launcher
