// Package settings loads the launcher-side configuration: where the engine,
// its optional interpreter, the rules file, and the run lock live.
//
// A missing settings file is not an error -- defaults apply -- because the
// launcher's preflight checks gate the run either way. Rules semantics are
// owned entirely by the engine; this package only knows the rules file path.
package settings
