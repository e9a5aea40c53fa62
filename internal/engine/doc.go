// Package engine implements the cleanup pass over a downloads directory.
//
// A run scans the top level of the downloads directory, routes each file
// through the keyword, extension, and MIME rules in that order, and falls
// back to a dated folder under the archive base when nothing matches.
// Destinations are collision safe, only archive date folders are created on
// demand, and per-file failures are counted and recorded without aborting
// the run. Dry runs plan every action without touching the filesystem.
package engine
