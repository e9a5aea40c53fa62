// Package routing decides where a scanned file belongs.
//
// Matching is first-match-wins across three rule families in fixed order:
// keyword (caseless substring against the file name, in rules-file order),
// extension (lowercased suffix, exact), and MIME (content sniff, exact type
// then type prefix). A file no family claims has no Decision and falls back
// to the caller's archive handling.
package routing
