// Package config loads, normalizes, and validates broom routing rules.
//
// Rules files are TOML: a [paths] section naming the downloads directory and
// the archive base, ordered [[routing.keyword]] rules, a [routing.extensions]
// table, and a [routing.mime] table. Keyword rules match in file order, so
// the slice preserves what the author wrote.
//
// Validation is strict and collects every problem before reporting: a target
// directory that does not exist is a configuration error, never something the
// engine creates on its own. Archive date folders are the one exception and
// are handled by the engine at move time.
package config
